// Package journal persists pending transitions in a local sqlite file so an
// accepted drop survives a process restart. Entries are keyed by client
// request ID; replaying them with the original key preserves the
// at-most-once effect on the server.
package journal

import (
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/domain/model/order"
	"orderboard/internal/core/ports"
)

// PendingTransitionDTO is the database row for one journaled transition.
type PendingTransitionDTO struct {
	ClientRequestID string `gorm:"primaryKey"`
	OrderID         string `gorm:"index"`
	FromStatus      int
	ToStatus        int
	ExpectedVersion int64
	SubmittedAt     time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming convention.
func (PendingTransitionDTO) TableName() string {
	return "pending_transitions"
}

func fromDomain(pending ports.PendingTransition) PendingTransitionDTO {
	return PendingTransitionDTO{
		ClientRequestID: pending.ClientRequestID.String(),
		OrderID:         pending.OrderID.String(),
		FromStatus:      int(pending.FromStatus),
		ToStatus:        int(pending.ToStatus),
		ExpectedVersion: pending.ExpectedVersion,
		SubmittedAt:     pending.SubmittedAt,
	}
}

func toDomain(dto PendingTransitionDTO) (ports.PendingTransition, error) {
	requestID, err := kernel.UUIDFromString(dto.ClientRequestID)
	if err != nil {
		return ports.PendingTransition{}, err
	}

	orderID, err := kernel.UUIDFromString(dto.OrderID)
	if err != nil {
		return ports.PendingTransition{}, err
	}

	from := order.Status(dto.FromStatus)
	if err := from.Validate(); err != nil {
		return ports.PendingTransition{}, err
	}
	to := order.Status(dto.ToStatus)
	if err := to.Validate(); err != nil {
		return ports.PendingTransition{}, err
	}

	return ports.PendingTransition{
		OrderID:         orderID,
		FromStatus:      from,
		ToStatus:        to,
		ExpectedVersion: dto.ExpectedVersion,
		ClientRequestID: requestID,
		SubmittedAt:     dto.SubmittedAt,
	}, nil
}
