package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Ack is the standard body for mutations that return no entity.
type Ack struct {
	Success bool `json:"success"`
}

// AckOK is the canonical success acknowledgement.
var AckOK = Ack{Success: true}
