package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntityBase holds the identity and audit information shared by all ledger
// entities. UIDs are random 128-bit identifiers, usable as primary and foreign
// keys by whichever storage layer owns persistence; no central sequence is assumed.
type EntityBase struct {
	UID           string    `json:"uid"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// NewEntityBase mints a fresh identity with both audit timestamps set to now.
func NewEntityBase() EntityBase {
	now := time.Now().UTC()
	return EntityBase{
		UID:           uuid.NewString(),
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
}

// Touch records a modification on the entity.
func (b *EntityBase) Touch() {
	b.LastUpdatedAt = time.Now().UTC()
}
