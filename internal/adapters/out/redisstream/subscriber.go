// Package redisstream subscribes to the Orders service push channel. The
// backend publishes the same JSON snapshot it serves over REST whenever an
// order changes, letting the board see other devices' transitions without
// waiting for the next poll. The channel is best-effort: a missed message is
// repaired by the poll job, so dirty payloads are discarded, never retried.
package redisstream

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	rd "github.com/redis/go-redis/v9"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
)

// Subscriber consumes order snapshots published to orders:{venueId}.
// Implements ports.OrderStream.
type Subscriber struct {
	client  *rd.Client
	channel string
	logger  *slog.Logger
}

// NewSubscriber creates a subscriber for the given venue's channel.
func NewSubscriber(client *rd.Client, venueID string, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		client:  client,
		channel: "orders:" + venueID,
		logger:  logger.With("component", "redis_stream"),
	}
}

// Run consumes the channel until the context is cancelled, feeding every
// decodable snapshot to sink. Reconnects are handled by the client; payloads
// that fail to decode are dropped.
func (s *Subscriber) Run(ctx context.Context, sink func(*order.Order)) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer pubsub.Close()

	// fail fast when redis is unreachable at startup
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "Subscribed to push channel", "channel", s.channel)

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			o, err := decodeSnapshot([]byte(msg.Payload))
			if err != nil {
				s.logger.Warn("Discarding undecodable snapshot", "error", err)
				continue
			}
			sink(o)
		}
	}
}

// streamOrderDTO mirrors the REST snapshot shape; the backend publishes the
// identical JSON document on both surfaces.
type streamOrderDTO struct {
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber"`
	TableNumber string          `json:"tableNumber"`
	Status      string          `json:"status"`
	Items       []streamItemDTO `json:"items"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
	Version     int64           `json:"version"`
}

type streamItemDTO struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"priceCents"`
}

func decodeSnapshot(payload []byte) (*order.Order, error) {
	var dto streamOrderDTO
	if err := json.Unmarshal(payload, &dto); err != nil {
		return nil, err
	}

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
