package orderitems

import (
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
)

// MyTotal is one participant's share of the active group order.
type MyTotal struct {
	ProductsTotal    int `json:"productsTotal"`
	DeliveryShare    int `json:"deliveryShare"`
	GrandTotal       int `json:"grandTotal"`
	ParticipantCount int `json:"participantCount"`
}

// ceilDiv divides cost across n participants, rounding up so the shares
// always cover the full amount.
func ceilDiv(cost, n int) int {
	if n <= 0 {
		return 0
	}
	return (cost + n - 1) / n
}

// participantCount counts distinct users across the item rows.
func participantCount(items []models.OrderItem) int {
	seen := make(map[int64]struct{})
	for _, item := range items {
		seen[item.UserID] = struct{}{}
	}
	return len(seen)
}

// sumProductsTotal prices one user's items against the catalog lookup.
// Items whose product is missing contribute nothing.
func sumProductsTotal(items []models.OrderItem, products []models.Product) int {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	total := 0
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		total += item.Quantity * product.Price
	}
	return total
}
