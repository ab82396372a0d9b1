package services

import (
	"sort"

	"orderboard/internal/core/domain/model/order"
)

// Board is the projected four-lane view of the order store: one lane per
// visible lifecycle status. Cancelled orders are not displayed.
type Board struct {
	New       []*order.Order
	Preparing []*order.Order
	Ready     []*order.Order
	Served    []*order.Order
}

// Lane returns the lane holding orders with the given status, or nil for
// statuses that have no lane (Cancelled, Unknown).
func (b Board) Lane(status order.Status) []*order.Order {
	switch status {
	case order.New:
		return b.New
	case order.Preparing:
		return b.Preparing
	case order.Ready:
		return b.Ready
	case order.Served:
		return b.Served
	default:
		return nil
	}
}

// LaneProjector is a domain service that projects a snapshot of orders into
// the four board lanes.
//
// Key properties:
//   - Pure: the same input always yields the same Board
//   - Stable: lanes are ordered by createdAt ascending (first-in-first-out
//     service discipline) with orderId as the deterministic tie-breaker, so
//     recomputation never visually reshuffles unrelated cards
//   - Cancelled orders are excluded from the projection
//
// Example usage:
//
//	projector := services.NewLaneProjector()
//	board, err := projector.Project(store.Snapshot())
//	if err != nil {
//	    // a snapshot contained an unconstructed order
//	    return err
//	}
//	for _, card := range board.Preparing {
//	    fmt.Println(card.Number())
//	}
type LaneProjector struct{}

// NewLaneProjector creates a new LaneProjector instance.
func NewLaneProjector() LaneProjector {
	return LaneProjector{}
}

// Project groups the given orders by status into a Board.
//
// Returns an error if any order fails validation; the projection never
// silently drops malformed input.
func (p LaneProjector) Project(orders []*order.Order) (Board, error) {
	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return Board{}, err
		}
	}

	sorted := make([]*order.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt().Equal(sorted[j].CreatedAt()) {
			return sorted[i].CreatedAt().Before(sorted[j].CreatedAt())
		}
		return sorted[i].ID().Less(sorted[j].ID())
	})

	var board Board
	for _, o := range sorted {
		switch o.Status() {
		case order.New:
			board.New = append(board.New, o)
		case order.Preparing:
			board.Preparing = append(board.Preparing, o)
		case order.Ready:
			board.Ready = append(board.Ready, o)
		case order.Served:
			board.Served = append(board.Served, o)
		case order.Cancelled:
			// cancelled orders leave the board
		}
	}

	return board, nil
}
