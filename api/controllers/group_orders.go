package controllers

import (
	"net/http"

	"github.com/juanfvasquez/pedidos-backend/api/middleware"
	"github.com/juanfvasquez/pedidos-backend/api/responses"
	"github.com/juanfvasquez/pedidos-backend/api/validators"
	"github.com/juanfvasquez/pedidos-backend/internal/grouporders"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/types"
)

type createGroupOrderRequest struct {
	DeliveryCost *int `json:"deliveryCost" validate:"omitempty,gte=0"`
}

type updateDeliveryCostRequest struct {
	DeliveryCost *int `json:"deliveryCost" validate:"required,gte=0"`
}

// GetActiveGroupOrder returns the open order, or null when none exists.
func GetActiveGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		order, err := svc.GetActive(r.Context())
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CreateGroupOrder opens a new order. Admin only.
func CreateGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createGroupOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		deliveryCost := 0
		if body.DeliveryCost != nil {
			deliveryCost = *body.DeliveryCost
		}

		actor := middleware.PrincipalFromContext(r.Context())
		order, err := svc.Create(r.Context(), actor, deliveryCost)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// UpdateGroupOrderDeliveryCost sets the shared delivery cost. Admin only.
func UpdateGroupOrderDeliveryCost(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "groupOrderId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		var body updateDeliveryCostRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		if err := svc.UpdateDeliveryCost(r.Context(), actor, id, *body.DeliveryCost); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, types.AckOK)
	}
}

// CloseGroupOrder marks the order closed. Admin only.
func CloseGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "groupOrderId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		if err := svc.Close(r.Context(), actor, id); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, types.AckOK)
	}
}

// GetConsolidatedGroupOrder serves the admin summary of a group order.
func GetConsolidatedGroupOrder(svc grouporders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupOrderID, err := idParam(r, "groupOrderId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		consolidated, err := svc.GetConsolidated(r.Context(), actor, groupOrderID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, consolidated)
	}
}
