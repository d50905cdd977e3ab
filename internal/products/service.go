package products

import (
	"context"
	"fmt"
	"strings"

	"github.com/juanfvasquez/pedidos-backend/internal/authz"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
)

// Service exposes catalog reads and admin-only catalog mutations.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, actor *authz.Principal, input CreateProductInput) error
	Update(ctx context.Context, actor *authz.Principal, id int64, input UpdateProductInput) error
	Delete(ctx context.Context, actor *authz.Principal, id int64) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Name  string
	Price int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Name  *string
	Price *int
}

type repository interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, id int64, assignments map[string]any) error
	SoftDelete(ctx context.Context, id int64) error
}

type service struct {
	repo repository
	logg *logger.Logger
}

// NewService constructs the product service.
func NewService(repo repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// List returns the active catalog. A storage failure degrades to an empty
// catalog so the public listing never errors.
func (s *service) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "products.list degraded to empty", err)
		}
		return []models.Product{}, nil
	}
	return items, nil
}

func (s *service) Create(ctx context.Context, actor *authz.Principal, input CreateProductInput) error {
	if err := authz.RequireAdmin(actor, "create products"); err != nil {
		return err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
	}
	if input.Price <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price must be a positive integer")
	}

	product := models.Product{Name: name, Price: input.Price, Active: true}
	if err := s.repo.Create(ctx, &product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return nil
}

func (s *service) Update(ctx context.Context, actor *authz.Principal, id int64, input UpdateProductInput) error {
	if err := authz.RequireAdmin(actor, "update products"); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}

	assignments := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		assignments["name"] = name
	}
	if input.Price != nil {
		if *input.Price <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "product price must be a positive integer")
		}
		assignments["price"] = *input.Price
	}
	if len(assignments) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	if err := s.repo.Update(ctx, id, assignments); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actor *authz.Principal, id int64) error {
	if err := authz.RequireAdmin(actor, "delete products"); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}

	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}
