// Package userdir implements the store.UserDirectory interface against a
// static user listing. The user directory is externally managed; this
// adapter serves a JSON snapshot (or built-in sample data) and keeps status
// changes in memory only.
package userdir

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// StaticDirectory is an in-memory store.UserDirectory backed by a static
// user list. Safe for concurrent use.
type StaticDirectory struct {
	mu    sync.RWMutex
	users map[int64]*domain.User
	log   *slog.Logger
}

// Ensure StaticDirectory implements store.UserDirectory.
var _ store.UserDirectory = (*StaticDirectory)(nil)

// New creates a directory seeded with the given users. A nil logger falls
// back to the process default.
func New(users []domain.User, log *slog.Logger) *StaticDirectory {
	if log == nil {
		log = slog.Default()
	}
	d := &StaticDirectory{
		users: make(map[int64]*domain.User, len(users)),
		log:   log.With(slog.String("component", "user_directory")),
	}
	for i := range users {
		u := users[i]
		d.users[u.ID] = &u
	}
	d.log.Info("user directory initialized", slog.Int("total_users", len(users)))
	return d
}

// NewFromFile creates a directory from a JSON file containing an array of
// user objects.
func NewFromFile(path string, log *slog.Logger) (*StaticDirectory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read user directory file: %w", err)
	}
	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse user directory file: %w", err)
	}
	return New(users, log), nil
}

// NewWithSampleUsers creates a directory with the default development data
// set. User 4 is inactive so the inactive-owner path can be exercised
// without editing fixtures.
func NewWithSampleUsers(log *slog.Logger) *StaticDirectory {
	return New([]domain.User{
		{ID: 1, Name: "Juan Pérez", Email: "juan.perez@company.com", Status: domain.UserStatusActive},
		{ID: 2, Name: "María García", Email: "maria.garcia@company.com", Status: domain.UserStatusActive},
		{ID: 3, Name: "Carlos López", Email: "carlos.lopez@company.com", Status: domain.UserStatusActive},
		{ID: 4, Name: "Ana Martínez", Email: "ana.martinez@company.com", Status: domain.UserStatusInactive},
		{ID: 5, Name: "Luis Rodríguez", Email: "luis.rodriguez@company.com", Status: domain.UserStatusActive},
	}, log)
}

// ExistsAndActive implements store.UserDirectory.ExistsAndActive.
func (d *StaticDirectory) ExistsAndActive(ctx context.Context, userID int64) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[userID]
	return ok && u.IsActive(), nil
}

// GetByID implements store.UserDirectory.GetByID.
func (d *StaticDirectory) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

// ListAll implements store.UserDirectory.ListAll.
func (d *StaticDirectory) ListAll(ctx context.Context) ([]*domain.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	users := make([]*domain.User, 0, len(d.users))
	for _, u := range d.users {
		copied := *u
		users = append(users, &copied)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// SetStatus implements store.UserDirectory.SetStatus. The change is held in
// memory only; it exists to simulate directory updates in development.
func (d *StaticDirectory) SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Status = status
	d.log.Info("user status changed",
		slog.Int64("user_id", userID),
		slog.String("status", string(status)))
	return nil
}
