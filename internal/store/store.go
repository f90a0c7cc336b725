// Package store owns the persisted record set. The entire data set round-trips
// as one JSON blob under a single slot: Load reads (or seeds) the blob, callers
// mutate the returned value in memory, and Save writes the whole thing back.
//
// This is a single-writer design. Two contexts interleaving load → mutate →
// save lose the first writer's changes; last writer wins on the whole blob.
// Higher layers accept that contract instead of adding locking.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tin229oo/nadias-lending/internal/kv"
	"github.com/tin229oo/nadias-lending/internal/models"
)

// Version tags the blob layout. There is no migration path: bumping it
// invalidates previously persisted data.
const Version = 1

// Data is the full persisted record set.
type Data struct {
	Version    int           `json:"version"`
	Users      []models.User `json:"users"`
	Loans      []models.Loan `json:"loans"`
	NextLoanID int64         `json:"next_loan_id"`
}

// SeedAdmin holds the credentials for the bootstrap administrator created on
// first initialization.
type SeedAdmin struct {
	Name     string
	Email    string
	Password string
}

// Records is the record store handle shared by the identity and lending
// managers.
type Records struct {
	slots kv.Store
	key   string
	seed  SeedAdmin
}

// New creates a record store over the given slot backend and key.
func New(slots kv.Store, key string, seed SeedAdmin) *Records {
	return &Records{slots: slots, key: key, seed: seed}
}

// Load returns the current record set, seeding and persisting the default one
// when the slot is absent. Repeated calls are idempotent.
func (r *Records) Load(ctx context.Context) (*Data, error) {
	raw, err := r.slots.Get(ctx, r.key)
	if errors.Is(err, kv.ErrNotFound) {
		return r.initialize(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("load record store: %w", err)
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode record store: %w", err)
	}
	return &data, nil
}

// Save persists the full record set, replacing any prior value. Callers must
// pass a fully updated Data; skipping Save silently loses in-memory changes.
func (r *Records) Save(ctx context.Context, data *Data) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode record store: %w", err)
	}
	if err := r.slots.Set(ctx, r.key, raw, 0); err != nil {
		return fmt.Errorf("save record store: %w", err)
	}
	return nil
}

func (r *Records) initialize(ctx context.Context) (*Data, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(r.seed.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed admin password: %w", err)
	}
	data := &Data{
		Version: Version,
		Users: []models.User{{
			ID:           1,
			Name:         r.seed.Name,
			Email:        r.seed.Email,
			Role:         models.RoleAdmin,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC(),
		}},
		Loans:      []models.Loan{},
		NextLoanID: 1,
	}
	if err := r.Save(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}
