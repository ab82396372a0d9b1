package queries

import (
	"time"

	"orderboard/internal/core/domain/model/order"
)

// ItemView is the read-model shape of one line item.
type ItemView struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// OrderView is the read-model shape of one order card.
type OrderView struct {
	ID          string     `json:"orderId"`
	Number      string     `json:"orderNumber"`
	TableNumber string     `json:"tableNumber"`
	Status      string     `json:"status"`
	Items       []ItemView `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Version     int64      `json:"version"`
}

// BoardView is the read-model shape of the whole board: four lanes in
// lifecycle order, each sorted oldest first.
type BoardView struct {
	New       []OrderView `json:"new"`
	Preparing []OrderView `json:"preparing"`
	Ready     []OrderView `json:"ready"`
	Served    []OrderView `json:"served"`
}

// newOrderView maps a domain order onto its read model.
func newOrderView(o *order.Order) OrderView {
	items := o.Items()
	views := make([]ItemView, len(items))
	for i, item := range items {
		views[i] = ItemView{
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			PriceCents: item.PriceCents(),
		}
	}

	return OrderView{
		ID:          o.ID().String(),
		Number:      o.Number(),
		TableNumber: o.TableNumber(),
		Status:      o.Status().String(),
		Items:       views,
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Version:     o.Version(),
	}
}

// newLaneView maps a projected lane onto its read model.
func newLaneView(lane []*order.Order) []OrderView {
	views := make([]OrderView, len(lane))
	for i, o := range lane {
		views[i] = newOrderView(o)
	}
	return views
}
