package grouporders

import (
	"context"
	"fmt"
	"time"

	"github.com/juanfvasquez/pedidos-backend/internal/authz"
	"github.com/juanfvasquez/pedidos-backend/pkg/db"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	"github.com/juanfvasquez/pedidos-backend/pkg/enums"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
)

// Service exposes group order lifecycle operations plus the consolidated
// admin view.
type Service interface {
	GetActive(ctx context.Context) (*models.GroupOrder, error)
	Create(ctx context.Context, actor *authz.Principal, deliveryCost int) (*models.GroupOrder, error)
	UpdateDeliveryCost(ctx context.Context, actor *authz.Principal, id int64, deliveryCost int) error
	Close(ctx context.Context, actor *authz.Principal, id int64) error
	GetConsolidated(ctx context.Context, actor *authz.Principal, groupOrderID int64) (*Consolidated, error)
}

type repository interface {
	GetActive(ctx context.Context) (*models.GroupOrder, error)
	Create(ctx context.Context, order *models.GroupOrder) error
	UpdateDeliveryCost(ctx context.Context, id int64, deliveryCost int) error
	Close(ctx context.Context, id int64, closedAt time.Time) error
}

type itemReader interface {
	ListByGroupOrder(ctx context.Context, groupOrderID int64) ([]models.OrderItem, error)
}

type productLister interface {
	ListActive(ctx context.Context) ([]models.Product, error)
}

type userReader interface {
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

type service struct {
	repo     repository
	items    itemReader
	products productLister
	users    userReader
	logg     *logger.Logger
}

// NewService constructs the group order service.
func NewService(repo repository, items itemReader, products productLister, users userReader, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("group order repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("order item reader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	if users == nil {
		return nil, fmt.Errorf("user reader required")
	}
	return &service{repo: repo, items: items, products: products, users: users, logg: logg}, nil
}

// GetActive returns the current open order, or nil when none is open. A
// storage failure also degrades to nil so the landing page keeps rendering.
func (s *service) GetActive(ctx context.Context) (*models.GroupOrder, error) {
	order, err := s.repo.GetActive(ctx)
	if err != nil {
		if !db.IsNotFound(err) && s.logg != nil {
			s.logg.Error(ctx, "grouporders.active degraded to nil", err)
		}
		return nil, nil
	}
	return order, nil
}

// Create opens a new group order with the given delivery cost as a single
// insert. Existing open orders are left untouched; the newest one simply
// becomes the active order.
func (s *service) Create(ctx context.Context, actor *authz.Principal, deliveryCost int) (*models.GroupOrder, error) {
	if err := authz.RequireAdmin(actor, "create group orders"); err != nil {
		return nil, err
	}
	if deliveryCost < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "delivery cost cannot be negative")
	}

	order := models.GroupOrder{DeliveryCost: deliveryCost, Status: enums.GroupOrderStatusOpen}
	if err := s.repo.Create(ctx, &order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create group order")
	}
	return &order, nil
}

func (s *service) UpdateDeliveryCost(ctx context.Context, actor *authz.Principal, id int64, deliveryCost int) error {
	if err := authz.RequireAdmin(actor, "update the delivery cost"); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "group order id must be a positive integer")
	}
	if deliveryCost < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery cost cannot be negative")
	}

	if err := s.repo.UpdateDeliveryCost(ctx, id, deliveryCost); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery cost")
	}
	return nil
}

// Close transitions the order to closed and records when. Closing an
// already-closed order rewrites the same status and refreshes the
// timestamp.
func (s *service) Close(ctx context.Context, actor *authz.Principal, id int64) error {
	if err := authz.RequireAdmin(actor, "close group orders"); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "group order id must be a positive integer")
	}

	if err := s.repo.Close(ctx, id, time.Now().UTC()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close group order")
	}
	return nil
}

// GetConsolidated assembles the admin summary. Items are read by the
// requested order id; the attached order record is the active one, which
// may be nil when every order is closed. The reads are independent
// queries, not a snapshot; an item added mid-call can appear in Items but
// not in a total.
func (s *service) GetConsolidated(ctx context.Context, actor *authz.Principal, groupOrderID int64) (*Consolidated, error) {
	if err := authz.RequireAdmin(actor, "view the consolidated order"); err != nil {
		return nil, err
	}
	if groupOrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group order id must be a positive integer")
	}

	order, err := s.repo.GetActive(ctx)
	if err != nil {
		if !db.IsNotFound(err) && s.logg != nil {
			s.logg.Error(ctx, "grouporders.consolidated order read degraded to nil", err)
		}
		order = nil
	}

	items, err := s.items.ListByGroupOrder(ctx, groupOrderID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "grouporders.consolidated items read degraded to empty", err)
		}
		items = []models.OrderItem{}
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "grouporders.consolidated products read degraded to empty", err)
		}
		products = []models.Product{}
	}

	participants, err := s.users.FindByIDs(ctx, distinctUserIDs(items))
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "grouporders.consolidated users read degraded to empty", err)
		}
		participants = []models.User{}
	}

	return &Consolidated{
		Items:         items,
		ProductTotals: buildProductTotals(items, products),
		GroupOrder:    order,
		Users:         participants,
	}, nil
}
