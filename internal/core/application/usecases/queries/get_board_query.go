package queries

import (
	"errors"

	"orderboard/internal/pkg/guard"
)

var (
	ErrGetBoardQueryIsNotConstructed = errors.New(
		"GetBoardQuery must be created via NewGetBoardQuery constructor",
	)
)

// GetBoardQuery retrieves the current four-lane board view.
//
// Example:
//
//	query := NewGetBoardQuery()
//	board, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read board: %w", err)
//	}
//	fmt.Printf("%d orders waiting, %d in preparation\n",
//	    len(board.New), len(board.Preparing))
type GetBoardQuery struct {
	guard guard.ConstructorGuard
}

// NewGetBoardQuery creates a query for the full board.
// This is a parameterless query; lanes always cover the whole visible window.
func NewGetBoardQuery() GetBoardQuery {
	return GetBoardQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetBoardQueryIsNotConstructed if validation fails.
func (q GetBoardQuery) Validate() error {
	return q.guard.Validate(ErrGetBoardQueryIsNotConstructed)
}
