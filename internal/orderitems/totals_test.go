package orderitems

import (
	"testing"

	"github.com/juanfvasquez/pedidos-backend/pkg/db/models"
)

func TestCeilDiv(t *testing.T) {
	cases := []struct {
		name string
		cost int
		n    int
		want int
	}{
		{"exact split", 900, 3, 300},
		{"rounds up", 1000, 3, 334},
		{"single participant", 1000, 1, 1000},
		{"zero cost", 0, 4, 0},
		{"zero participants", 1000, 0, 0},
		{"one short of exact", 999, 10, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ceilDiv(tc.cost, tc.n); got != tc.want {
				t.Errorf("ceilDiv(%d, %d) = %d, want %d", tc.cost, tc.n, got, tc.want)
			}
		})
	}
}

func TestParticipantCount(t *testing.T) {
	items := []models.OrderItem{
		{UserID: 1}, {UserID: 2}, {UserID: 1}, {UserID: 3},
	}
	if got := participantCount(items); got != 3 {
		t.Errorf("participantCount = %d, want 3", got)
	}
	if got := participantCount(nil); got != 0 {
		t.Errorf("participantCount(nil) = %d, want 0", got)
	}
}

func TestSumProductsTotal(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: 500},
		{ID: 2, Price: 300},
	}
	items := []models.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
		{ProductID: 999, Quantity: 10}, // orphaned reference contributes nothing
		{ProductID: 1, Quantity: 1},
	}

	if got := sumProductsTotal(items, products); got != 1800 {
		t.Errorf("sumProductsTotal = %d, want 1800", got)
	}
}
