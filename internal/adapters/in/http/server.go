// Package http exposes the board over REST: the four-lane view, the drop
// intent, and drained notifications. It is a thin translation layer; all
// semantics live in the use case handlers.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"orderboard/internal/core/application/notify"
	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/pkg/errs"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	proposeTransitionHandler commands.ProposeTransitionCommandHandler
	getBoardHandler          *queries.GetBoardQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	notifier                 *notify.Notifier
}

// NewServer creates an HTTP server with the required handlers.
func NewServer(
	proposeTransitionHandler commands.ProposeTransitionCommandHandler,
	getBoardHandler *queries.GetBoardQueryHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	notifier *notify.Notifier,
) *Server {
	return &Server{
		proposeTransitionHandler: proposeTransitionHandler,
		getBoardHandler:          getBoardHandler,
		getOrderHandler:          getOrderHandler,
		notifier:                 notifier,
	}
}

// RegisterRoutes mounts all endpoints on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/board", s.GetBoard)
	e.GET("/api/v1/orders/:orderId", s.GetOrder)
	e.POST("/api/v1/orders/:orderId/move", s.MoveOrder)
	e.GET("/api/v1/notifications", s.GetNotifications)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type moveRequest struct {
	ToStatus        string `json:"toStatus"`
	ActorID         string `json:"actorId"`
	ExpectedVersion int64  `json:"expectedVersion"`
}

type transitionResponse struct {
	OrderID    string `json:"orderId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	Version    int64  `json:"version"`
}

type notificationResponse struct {
	Kind       string `json:"kind"`
	OrderID    string `json:"orderId"`
	Message    string `json:"message"`
	OccurredAt string `json:"occurredAt"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// GetBoard handles GET /api/v1/board - the four-lane view.
func (s *Server) GetBoard(ctx echo.Context) error {
	board, err := s.getBoardHandler.Handle(ctx.Request().Context(), queries.NewGetBoardQuery())
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to project the board",
		})
	}

	return ctx.JSON(http.StatusOK, board)
}

// GetOrder handles GET /api/v1/orders/:orderId - a single card.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	view, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, errorResponse{
				Code:    http.StatusNotFound,
				Message: "Order is not on the board",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load order",
		})
	}

	return ctx.JSON(http.StatusOK, view)
}

// MoveOrder handles POST /api/v1/orders/:orderId/move - the drop intent.
// Responds 202 on acceptance: the transition is applied optimistically and
// delivered to the backend asynchronously.
func (s *Server) MoveOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid order id",
		})
	}

	var req moveRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	target, err := order.ParseStatus(req.ToStatus)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Unknown target status: " + req.ToStatus,
		})
	}

	cmd, err := commands.NewProposeTransitionCommand(orderID, target, req.ActorID, req.ExpectedVersion)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid move request: " + err.Error(),
		})
	}

	record, err := s.proposeTransitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.mapMoveError(ctx, err)
	}

	return ctx.JSON(http.StatusAccepted, transitionResponse{
		OrderID:    record.OrderID.String(),
		FromStatus: record.FromStatus.String(),
		ToStatus:   record.ToStatus.String(),
		Version:    record.Version,
	})
}

// GetNotifications handles GET /api/v1/notifications?max= - drains the
// notification buffer for polling UIs.
func (s *Server) GetNotifications(ctx echo.Context) error {
	max := 0
	if raw := ctx.QueryParam("max"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "Invalid max parameter",
			})
		}
		max = parsed
	}

	drained := s.notifier.Drain(max)
	response := make([]notificationResponse, len(drained))
	for i, notification := range drained {
		response[i] = notificationResponse{
			Kind:       string(notification.Kind),
			OrderID:    notification.OrderID,
			Message:    notification.Message,
			OccurredAt: notification.OccurredAt.Format(time.RFC3339),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func (s *Server) mapMoveError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrVersionConflict), errors.Is(err, errs.ErrTransitionPending):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrIllegalTransition):
		return ctx.JSON(http.StatusUnprocessableEntity, errorResponse{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrStaleOrder):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to move order",
		})
	}
}
