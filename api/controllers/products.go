package controllers

import (
	"net/http"

	"github.com/juanfvasquez/pedidos-backend/api/middleware"
	"github.com/juanfvasquez/pedidos-backend/api/responses"
	"github.com/juanfvasquez/pedidos-backend/api/validators"
	"github.com/juanfvasquez/pedidos-backend/internal/products"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
	"github.com/juanfvasquez/pedidos-backend/pkg/types"
)

type createProductRequest struct {
	Name  string `json:"name" validate:"required"`
	Price int    `json:"price" validate:"required,gt=0"`
}

type updateProductRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Price *int    `json:"price" validate:"omitempty,gt=0"`
}

// ListProducts serves the public catalog.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

// CreateProduct adds a catalog entry. Admin only.
func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		input := products.CreateProductInput{Name: body.Name, Price: body.Price}
		if err := svc.Create(r.Context(), actor, input); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, types.AckOK)
	}
}

// UpdateProduct patches name and/or price. Admin only.
func UpdateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "productId")
		if err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		var body updateProductRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}

		actor := middleware.PrincipalFromContext(r.Context())
		input := products.UpdateProductInput{Name: body.Name, Price: body.Price}
		if err := svc.Update(r.Context(), actor, id, input); err != nil {
			responses.WriteError(w, r, logg, err)
			return
		}
		responses.WriteSuccess(w, types.AckOK)
	}
}

// DeleteProduct soft deletes a catalog entry. Admin only, idempotent.
func DeleteProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := idParam(r, "productId")
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
