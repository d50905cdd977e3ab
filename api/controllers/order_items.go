package controllers

import (
	"net/http"

	"github.com/juanfvasquez/pedidos-backend/api/middleware"
	"github.com/juanfvasquez/pedidos-backend/api/responses"
	"github.com/juanfvasquez/pedidos-backend/api/validators"
	"github.com/juanfvasquez/pedidos-backend/internal/orderitems"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/types"
)

type addOrderItemRequest struct {
	GroupOrderID int64 `json:"groupOrderId" validate:"required,gt=0"`
	ProductID    int64 `json:"productId" validate:"required,gt=0"`
	Quantity     int   `json:"quantity" validate:"required,gt=0"`
}

type updateOrderItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,gt=0"`
}

// MyOrderItems lists the caller's items in the group order.
func MyOrderItems(svc orderitems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupOrderID, err := idParam(r, "groupOrderId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		items, err := svc.MyItems(r.Context(), actor, groupOrderID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// MyOrderTotal serves the caller's cost split for a group order.
func MyOrderTotal(svc orderitems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groupOrderID, err := idParam(r, "groupOrderId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		total, err := svc.CalculateMyTotal(r.Context(), actor, groupOrderID)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, total)
	}
}

// AddOrderItem records a new item for the caller.
func AddOrderItem(svc orderitems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addOrderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		input := orderitems.AddItemInput{
			GroupOrderID: body.GroupOrderID,
			ProductID:    body.ProductID,
			Quantity:     body.Quantity,
		}
		item, err := svc.Add(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// UpdateOrderItem changes an item's quantity.
func UpdateOrderItem(svc orderitems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "itemId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		var body updateOrderItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		if err := svc.Update(r.Context(), actor, id, *body.Quantity); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, types.AckOK)
	}
}

// DeleteOrderItem removes an item row.
func DeleteOrderItem(svc orderitems.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "itemId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		if err := svc.Delete(r.Context(), actor, id); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, types.AckOK)
	}
}
