package grouporders

import (
	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
)

// ProductTotal aggregates every item row for one product across the whole
// group order.
type ProductTotal struct {
	Product       models.Product `json:"product"`
	TotalQuantity int            `json:"totalQuantity"`
	TotalPrice    int            `json:"totalPrice"`
}

// Consolidated is the admin-facing summary of a group order.
type Consolidated struct {
	Items         []models.OrderItem `json:"items"`
	ProductTotals []ProductTotal     `json:"productTotals"`
	GroupOrder    *models.GroupOrder `json:"groupOrder"`
	Users         []models.User      `json:"users"`
}

// buildProductTotals groups items by product, summing quantities and prices.
// Products appear in the order their first item row does. Items whose product
// is missing from the catalog lookup are skipped entirely.
func buildProductTotals(items []models.OrderItem, products []models.Product) []ProductTotal {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	totals := make([]ProductTotal, 0)
	index := make(map[int64]int)
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		i, seen := index[item.ProductID]
		if !seen {
			index[item.ProductID] = len(totals)
			totals = append(totals, ProductTotal{Product: product})
			i = len(totals) - 1
		}
		totals[i].TotalQuantity += item.Quantity
		totals[i].TotalPrice += item.Quantity * product.Price
	}
	return totals
}

// distinctUserIDs returns the participating user ids in first-appearance
// order.
func distinctUserIDs(items []models.OrderItem) []int64 {
	ids := make([]int64, 0)
	seen := make(map[int64]struct{})
	for _, item := range items {
		if _, ok := seen[item.UserID]; ok {
			continue
		}
		seen[item.UserID] = struct{}{}
		ids = append(ids, item.UserID)
	}
	return ids
}
