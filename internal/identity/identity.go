// Package identity implements registration, credential checks, and the session
// lifecycle. User records live in the durable record store; sessions live in
// their own short-lived slots, so losing the session backend logs everyone out
// without touching stored users.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tin229oo/nadias-lending/internal/kv"
	"github.com/tin229oo/nadias-lending/internal/models"
	"github.com/tin229oo/nadias-lending/internal/store"
)

// ErrDuplicateEmail indicates a registration attempt with an email that is
// already taken. Matching is exact and case-sensitive.
var ErrDuplicateEmail = errors.New("email already registered")

const sessionPrefix = "nadialend:session:"

type session struct {
	UserID int64 `json:"user_id"`
}

// Manager is the identity and session manager.
type Manager struct {
	records *store.Records
	slots   kv.Store
	ttl     time.Duration
	log     *zap.Logger
}

// NewManager creates a manager persisting users through records and sessions
// through slots with the given lifetime.
func NewManager(records *store.Records, slots kv.Store, ttl time.Duration, log *zap.Logger) *Manager {
	return &Manager{records: records, slots: slots, ttl: ttl, log: log}
}

// Register creates a customer account and persists it.
func (m *Manager) Register(ctx context.Context, name, email, phone, password string) (models.User, error) {
	data, err := m.records.Load(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range data.Users {
		if u.Email == email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           nextUserID(data.Users),
		Name:         name,
		Email:        email,
		Phone:        phone,
		Role:         models.RoleCustomer,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	data.Users = append(data.Users, user)
	if err := m.records.Save(ctx, data); err != nil {
		return models.User{}, err
	}

	m.log.Info("user registered", zap.Int64("user_id", user.ID))
	return user, nil
}

// The seed admin always holds id 1, so the scan starts at 2.
func nextUserID(users []models.User) int64 {
	next := int64(2)
	for _, u := range users {
		if u.ID+1 > next {
			next = u.ID + 1
		}
	}
	return next
}

// Login checks credentials and, on a match, opens a session and returns its
// id. A mismatch is a normal outcome, not an error: the bool reports whether a
// user matched.
func (m *Manager) Login(ctx context.Context, email, password string) (models.User, string, bool, error) {
	data, err := m.records.Load(ctx)
	if err != nil {
		return models.User{}, "", false, err
	}
	for _, u := range data.Users {
		if u.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			continue
		}

		sid := uuid.NewString()
		raw, err := json.Marshal(session{UserID: u.ID})
		if err != nil {
			return models.User{}, "", false, fmt.Errorf("encode session: %w", err)
		}
		if err := m.slots.Set(ctx, sessionPrefix+sid, raw, m.ttl); err != nil {
			return models.User{}, "", false, fmt.Errorf("open session: %w", err)
		}

		m.log.Info("login", zap.Int64("user_id", u.ID))
		return u, sid, true, nil
	}
	return models.User{}, "", false, nil
}

// Logout destroys the session unconditionally; a missing session is fine.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.slots.Delete(ctx, sessionPrefix+sessionID); err != nil && !errors.Is(err, kv.ErrNotFound) {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}

// CurrentUser resolves the session slot to its user. A missing slot and a
// dangling user reference both read as nobody logged in.
func (m *Manager) CurrentUser(ctx context.Context, sessionID string) (models.User, bool, error) {
	if sessionID == "" {
		return models.User{}, false, nil
	}
	raw, err := m.slots.Get(ctx, sessionPrefix+sessionID)
	if errors.Is(err, kv.ErrNotFound) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, err
	}
	var s session
	if err := json.Unmarshal(raw, &s); err != nil {
		return models.User{}, false, fmt.Errorf("decode session: %w", err)
	}

	data, err := m.records.Load(ctx)
	if err != nil {
		return models.User{}, false, err
	}
	for _, u := range data.Users {
		if u.ID == s.UserID {
			return u, true, nil
		}
	}
	return models.User{}, false, nil
}
