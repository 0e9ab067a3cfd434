package pg

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Timestamps provides created_at/updated_at columns maintained by a bun model hook.
// Embed it next to bun.BaseModel.
type Timestamps struct {
	// CreatedAt is set once on insert.
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at"`
	// UpdatedAt is refreshed on every update query built from the model.
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

var _ bun.BeforeAppendModelHook = (*Timestamps)(nil)

// BeforeAppendModel sets the timestamps before insert and update queries.
func (m *Timestamps) BeforeAppendModel(_ context.Context, query bun.Query) error {
	now := time.Now().UTC()
	switch query.(type) {
	case *bun.InsertQuery:
		m.CreatedAt = now
		m.UpdatedAt = now
	case *bun.UpdateQuery:
		m.UpdatedAt = now
	}
	return nil
}
