package orderitems

import (
	"context"
	"fmt"

	"github.com/juanfvasquez/pedidos-backend/internal/authz"
	"github.com/juanfvasquez/pedidos-backend/pkg/db"
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
	pkgerrors "github.com/juanfvasquez/pedidos-backend/pkg/errors"
	"github.com/juanfvasquez/pedidos-backend/pkg/logger"
)

// Service exposes per-user item operations within a group order.
//
// Update and Delete address items by row id without checking who created
// the row. Any signed-in user can therefore edit another participant's
// item; the web client only ever shows users their own rows.
type Service interface {
	MyItems(ctx context.Context, actor *authz.Principal, groupOrderID int64) ([]models.OrderItem, error)
	Add(ctx context.Context, actor *authz.Principal, input AddItemInput) (*models.OrderItem, error)
	Update(ctx context.Context, actor *authz.Principal, id int64, quantity int) error
	Delete(ctx context.Context, actor *authz.Principal, id int64) error
	CalculateMyTotal(ctx context.Context, actor *authz.Principal, groupOrderID int64) (*MyTotal, error)
}

// AddItemInput holds the validated payload to add an item.
type AddItemInput struct {
	GroupOrderID int64
	ProductID    int64
	Quantity     int
}

type repository interface {
	ListByGroupOrder(ctx context.Context, groupOrderID int64) ([]models.OrderItem, error)
	ListByUser(ctx context.Context, userID, groupOrderID int64) ([]models.OrderItem, error)
	Create(ctx context.Context, item *models.OrderItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
}

type orderReader interface {
	GetActive(ctx context.Context) (*models.GroupOrder, error)
}

type productLister interface {
	ListActive(ctx context.Context) ([]models.Product, error)
}

type service struct {
	repo     repository
	orders   orderReader
	products productLister
	logg     *logger.Logger
}

// NewService constructs the order item service.
func NewService(repo repository, orders orderReader, products productLister, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order item repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("group order reader required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lister required")
	}
	return &service{repo: repo, orders: orders, products: products, logg: logg}, nil
}

// MyItems lists the caller's items in the given group order. A storage
// failure degrades to an empty list.
func (s *service) MyItems(ctx context.Context, actor *authz.Principal, groupOrderID int64) ([]models.OrderItem, error) {
	if err := authz.RequirePrincipal(actor); err != nil {
		return nil, err
	}
	if groupOrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group order id must be a positive integer")
	}

	items, err := s.repo.ListByUser(ctx, actor.UserID, groupOrderID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "orderitems.mine degraded to empty", err)
		}
		return []models.OrderItem{}, nil
	}
	return items, nil
}

// Add records a new item for the caller. Picking the same product twice
// creates two rows; totals sum them at read time.
func (s *service) Add(ctx context.Context, actor *authz.Principal, input AddItemInput) (*models.OrderItem, error) {
	if err := authz.RequirePrincipal(actor); err != nil {
		return nil, err
	}
	if input.GroupOrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group order id must be a positive integer")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	item := models.OrderItem{
		GroupOrderID: input.GroupOrderID,
		UserID:       actor.UserID,
		ProductID:    input.ProductID,
		Quantity:     input.Quantity,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add order item")
	}
	return &item, nil
}

func (s *service) Update(ctx context.Context, actor *authz.Principal, id int64, quantity int) error {
	if err := authz.RequirePrincipal(actor); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order item id must be a positive integer")
	}
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	if err := s.repo.UpdateQuantity(ctx, id, quantity); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order item")
	}
	return nil
}

func (s *service) Delete(ctx context.Context, actor *authz.Principal, id int64) error {
	if err := authz.RequirePrincipal(actor); err != nil {
		return err
	}
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order item id must be a positive integer")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order item")
	}
	return nil
}

// CalculateMyTotal prices the caller's items in the requested order and
// adds their ceiling-rounded share of the delivery cost. The cost comes
// from the active order record; with no open order the items still price
// and the share is zero. The underlying reads are separate queries, so a
// concurrent item write can land between them.
func (s *service) CalculateMyTotal(ctx context.Context, actor *authz.Principal, groupOrderID int64) (*MyTotal, error) {
	if err := authz.RequirePrincipal(actor); err != nil {
		return nil, err
	}
	if groupOrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group order id must be a positive integer")
	}

	order, err := s.orders.GetActive(ctx)
	if err != nil {
		if !db.IsNotFound(err) && s.logg != nil {
			s.logg.Error(ctx, "orderitems.mytotal order read degraded to nil", err)
		}
		order = nil
	}
	deliveryCost := 0
	if order != nil {
		deliveryCost = order.DeliveryCost
	}

	mine, err := s.repo.ListByUser(ctx, actor.UserID, groupOrderID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "orderitems.mytotal my items read degraded to empty", err)
		}
		mine = []models.OrderItem{}
	}

	all, err := s.repo.ListByGroupOrder(ctx, groupOrderID)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "orderitems.mytotal items read degraded to empty", err)
		}
		all = []models.OrderItem{}
	}

	products, err := s.products.ListActive(ctx)
	if err != nil {
		if s.logg != nil {
			s.logg.Error(ctx, "orderitems.mytotal products read degraded to empty", err)
		}
		products = []models.Product{}
	}

	participants := participantCount(all)
	total := MyTotal{
		ProductsTotal:    sumProductsTotal(mine, products),
		DeliveryShare:    ceilDiv(deliveryCost, participants),
		ParticipantCount: participants,
	}
	total.GrandTotal = total.ProductsTotal + total.DeliveryShare
	return &total, nil
}
