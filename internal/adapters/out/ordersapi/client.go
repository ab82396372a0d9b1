// Package ordersapi implements the outbound gateway to the Orders service
// over its REST API. The service is the source of truth for order records;
// this client only reads snapshots and submits transition intents.
package ordersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"
)

const defaultTimeout = 10 * time.Second

// Client talks to the Orders service. Implements ports.OrdersGateway.
type Client struct {
	baseURL    string
	venueID    string
	token      string
	httpClient *http.Client
}

// NewClient creates a gateway for the given venue. An empty token disables
// the Authorization header. Each request carries its own 10 s timeout via the
// caller's context; the underlying client enforces the same bound as a
// backstop.
func NewClient(baseURL, venueID, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		venueID:    venueID,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// ListOrders fetches snapshots of all active orders for the venue.
func (c *Client) ListOrders(ctx context.Context) ([]*order.Order, error) {
	url := fmt.Sprintf("%s/venues/%s/orders", c.baseURL, c.venueID)

	body, err := c.do(ctx, http.MethodGet, url, nil, kernel.UUID{}, ports.TransitionPush{})
	if err != nil {
		return nil, err
	}

	var dtos []orderDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("orders api: decoding list response: %w", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := dto.toDomain()
		if err != nil {
			return nil, fmt.Errorf("orders api: invalid snapshot %s: %w", dto.OrderID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// GetOrder fetches the authoritative snapshot of a single order.
func (c *Client) GetOrder(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	url := fmt.Sprintf("%s/venues/%s/orders/%s", c.baseURL, c.venueID, id.String())

	body, err := c.do(ctx, http.MethodGet, url, nil, id, ports.TransitionPush{})
	if err != nil {
		return nil, err
	}
	return decodeOrder(body)
}

// PushTransition submits a transition intent and returns the server's
// resulting snapshot. Rejections map onto the error taxonomy:
// 409 ⇒ errs.ErrVersionConflict, 422 ⇒ errs.ErrIllegalTransition,
// 404 ⇒ errs.ErrObjectNotFound. Anything else is retryable.
func (c *Client) PushTransition(ctx context.Context, push ports.TransitionPush) (*order.Order, error) {
	url := fmt.Sprintf("%s/venues/%s/orders/%s", c.baseURL, c.venueID, push.OrderID.String())

	payload, err := json.Marshal(transitionRequestDTO{
		ToStatus:        push.ToStatus.String(),
		ExpectedVersion: push.ExpectedVersion,
		ClientRequestID: push.ClientRequestID.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("orders api: encoding transition request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPatch, url, payload, push.OrderID, push)
	if err != nil {
		return nil, err
	}
	return decodeOrder(body)
}

// do runs one request and maps the response status onto the error taxonomy.
// orderID and push give the mapping its context; both may be zero for list
// requests, which never produce 409 or 422.
func (c *Client) do(ctx context.Context, method, url string, payload []byte,
	orderID kernel.UUID, push ports.TransitionPush) ([]byte, error) {

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("orders api: building request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("orders api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("orders api: reading response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return body, nil
	case resp.StatusCode == http.StatusConflict:
		// the conflict body carries the authoritative snapshot when the
		// server provides one; its version names the actual
		actual := int64(0)
		var dto orderDTO
		if json.Unmarshal(body, &dto) == nil {
			actual = dto.Version
		}
		return nil, errs.NewVersionConflictError(orderID.String(), push.ExpectedVersion, actual)
	case resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, errs.NewIllegalTransitionError(order.Unknown.String(), push.ToStatus.String())
	case resp.StatusCode == http.StatusNotFound:
		return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
	default:
		return nil, fmt.Errorf("orders api: unexpected status %d", resp.StatusCode)
	}
}

func decodeOrder(body []byte) (*order.Order, error) {
	var dto orderDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("orders api: decoding order response: %w", err)
	}
	return dto.toDomain()
}
