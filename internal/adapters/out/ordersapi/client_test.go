package ordersapi_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"orderboard/internal/adapters/out/ordersapi"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
	"orderboard/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotTemplate = `{
	"orderId": %q,
	"orderNumber": "SKN-20250922-007",
	"tableNumber": "3",
	"status": %q,
	"items": [{"name": "Margherita", "quantity": 2, "priceCents": 1200}],
	"createdAt": "2025-09-22T18:00:00Z",
	"updatedAt": "2025-09-22T18:05:00Z",
	"version": %d
}`

func snapshotJSON(id kernel.UUID, status string, version int64) string {
	return fmt.Sprintf(snapshotTemplate, id.String(), status, version)
}

func TestClient_ListOrders(t *testing.T) {
	t.Run("fetches and decodes snapshots", func(t *testing.T) {
		first := kernel.NewUUID()
		second := kernel.NewUUID()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/venues/venue-1/orders", r.URL.Path)
			assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

			fmt.Fprintf(w, "[%s,%s]",
				snapshotJSON(first, "new", 1),
				snapshotJSON(second, "preparing", 3))
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "secret-token")
		orders, err := client.ListOrders(context.Background())

		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.True(t, orders[0].ID().IsEqual(first))
		assert.Equal(t, order.New, orders[0].Status())
		assert.Equal(t, order.Preparing, orders[1].Status())
		assert.Equal(t, int64(3), orders[1].Version())
		assert.Equal(t, time.Date(2025, 9, 22, 18, 0, 0, 0, time.UTC), orders[0].CreatedAt())
	})

	t.Run("rejects malformed snapshot", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			fmt.Fprintf(w, "[%s]", snapshotJSON(kernel.NewUUID(), "fried", 1))
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		_, err := client.ListOrders(context.Background())

		require.Error(t, err)
	})
}

func TestClient_GetOrder(t *testing.T) {
	t.Run("fetches a single order", func(t *testing.T) {
		id := kernel.NewUUID()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/venues/venue-1/orders/"+id.String(), r.URL.Path)
			fmt.Fprint(w, snapshotJSON(id, "ready", 4))
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		o, err := client.GetOrder(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, order.Ready, o.Status())
		assert.Equal(t, int64(4), o.Version())
	})

	t.Run("maps 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		_, err := client.GetOrder(context.Background(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestClient_PushTransition(t *testing.T) {
	id := kernel.NewUUID()
	requestID := kernel.NewUUID()
	push := ports.TransitionPush{
		OrderID:         id,
		ToStatus:        order.Preparing,
		ExpectedVersion: 3,
		ClientRequestID: requestID,
	}

	t.Run("submits the transition intent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPatch, r.Method)
			assert.Equal(t, "/venues/venue-1/orders/"+id.String(), r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "preparing", body["toStatus"])
			assert.Equal(t, float64(3), body["expectedVersion"])
			assert.Equal(t, requestID.String(), body["clientRequestId"])

			fmt.Fprint(w, snapshotJSON(id, "preparing", 4))
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		o, err := client.PushTransition(context.Background(), push)

		require.NoError(t, err)
		assert.Equal(t, order.Preparing, o.Status())
		assert.Equal(t, int64(4), o.Version())
	})

	t.Run("maps 409 with the server's actual version", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			fmt.Fprint(w, snapshotJSON(id, "preparing", 4))
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		_, err := client.PushTransition(context.Background(), push)

		require.ErrorIs(t, err, errs.ErrVersionConflict)
		var conflict *errs.VersionConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, int64(3), conflict.ExpectedVersion)
		assert.Equal(t, int64(4), conflict.ActualVersion)
	})

	t.Run("maps 422", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		_, err := client.PushTransition(context.Background(), push)

		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("maps 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		_, err := client.PushTransition(context.Background(), push)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("server errors stay retryable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := ordersapi.NewClient(server.URL, "venue-1", "")
		_, err := client.PushTransition(context.Background(), push)

		require.Error(t, err)
		assert.NotErrorIs(t, err, errs.ErrVersionConflict)
		assert.NotErrorIs(t, err, errs.ErrIllegalTransition)
		assert.NotErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
