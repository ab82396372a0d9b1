package ordersapi

import (
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// orderDTO is the Orders service snapshot representation.
type orderDTO struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	TableNumber string    `json:"tableNumber"`
	Status      string    `json:"status"`
	Items       []itemDTO `json:"items"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Version     int64     `json:"version"`
}

type itemDTO struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

// transitionRequestDTO is the PATCH body for pushing a transition.
type transitionRequestDTO struct {
	ToStatus        string `json:"toStatus"`
	ExpectedVersion int64  `json:"expectedVersion"`
	ClientRequestID string `json:"clientRequestId"`
}

// toDomain restores the aggregate from a server snapshot.
func (dto orderDTO) toDomain() (*order.Order, error) {
	id, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		lineItem, err := order.NewLineItem(item.Name, item.Quantity, item.PriceCents)
		if err != nil {
			return nil, err
		}
		items = append(items, lineItem)
	}

	return order.RestoreOrder(id, dto.OrderNumber, dto.TableNumber, status,
		items, dto.CreatedAt, dto.UpdatedAt, dto.Version)
}
