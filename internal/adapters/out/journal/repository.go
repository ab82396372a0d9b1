package journal

import (
	"context"

	"gorm.io/gorm"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/core/ports"
)

// GormTransitionJournal implements ports.TransitionJournal using GORM.
type GormTransitionJournal struct {
	db *gorm.DB
}

// NewGormTransitionJournal creates the journal and migrates its schema.
func NewGormTransitionJournal(db *gorm.DB) (*GormTransitionJournal, error) {
	if err := db.AutoMigrate(&PendingTransitionDTO{}); err != nil {
		return nil, err
	}
	return &GormTransitionJournal{db: db}, nil
}

// Append persists a pending transition.
func (j *GormTransitionJournal) Append(ctx context.Context, pending ports.PendingTransition) error {
	dto := fromDomain(pending)
	return j.db.WithContext(ctx).Create(&dto).Error
}

// Delete removes the entry with the given client request ID. Deleting an
// absent entry is not an error.
func (j *GormTransitionJournal) Delete(ctx context.Context, clientRequestID kernel.UUID) error {
	return j.db.WithContext(ctx).
		Delete(&PendingTransitionDTO{}, "client_request_id = ?", clientRequestID.String()).Error
}

// Pending returns all journaled transitions, oldest first.
func (j *GormTransitionJournal) Pending(ctx context.Context) ([]ports.PendingTransition, error) {
	var dtos []PendingTransitionDTO
	if err := j.db.WithContext(ctx).Order("submitted_at asc").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]ports.PendingTransition, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
