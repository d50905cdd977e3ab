package responses

import (
	"encoding/json"
	"net/http"

	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/types"
)

// WriteSuccess writes the standard data envelope with a 200.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteSuccessStatus(w, http.StatusOK, data)
}

// WriteSuccessStatus writes the standard data envelope with the given
// status.
func WriteSuccessStatus(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteError maps the error to its HTTP status and public shape, logging
// the full chain. Untyped errors surface as INTERNAL_ERROR so driver
// detail never reaches the client.
func WriteError(w http.ResponseWriter, r *http.Request, logg *logger.Logger, err error) {
	code := pkgerrors.CodeInternal
	message := ""
	var details any

	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
		message = typed.Message()
		details = typed.Details()
	}

	meta := pkgerrors.MetadataFor(code)
	if message == "" {
		message = meta.PublicMessage
	}
	if !meta.DetailsAllowed {
		details = nil
	}

	if logg != nil {
		ctx := logg.WithFields(r.Context(), map[string]any{
			"error_code": string(code),
			"dump":       pkgerrors.Dump(err),
		})
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, "request failed", err)
		} else {
			logg.Warn(ctx, "request rejected")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: types.APIError{
		Code:    string(code),
		Message: message,
		Details: details,
	}})
}
