package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"

	"github.com/google/uuid"
	"github.com/ledgerline/taskboard-api/internal/domain"
	"github.com/ledgerline/taskboard-api/internal/events"
	"github.com/ledgerline/taskboard-api/internal/store"
)

// noopDriver is a database/sql driver whose connections support only
// transaction begin/commit/rollback. It lets transactional service code run
// against in-memory stores.
type noopDriver struct{}

func (noopDriver) Open(name string) (driver.Conn, error) { return noopConn{}, nil }

type noopConn struct{}

func (noopConn) Prepare(query string) (driver.Stmt, error) { return nil, driver.ErrSkip }
func (noopConn) Close() error                              { return nil }
func (noopConn) Begin() (driver.Tx, error)                 { return noopTx{}, nil }

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

var registerNoopDriver sync.Once

// newTestDB returns a *sql.DB backed by the no-op driver.
func newTestDB() *sql.DB {
	registerNoopDriver.Do(func() {
		sql.Register("service_noop", noopDriver{})
	})
	db, err := sql.Open("service_noop", "")
	if err != nil {
		panic(err)
	}
	return db
}

// memoryTaskRepository is an in-memory TaskRepository. Individual operations
// can be overridden to inject failures.
type memoryTaskRepository struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	db    *sql.DB

	saveErr    error
	getErr     error
	updateErr  error
	saveCalls  int
	savedTasks []*domain.Task
}

func newMemoryTaskRepository() *memoryTaskRepository {
	return &memoryTaskRepository{
		tasks: make(map[uuid.UUID]*domain.Task),
		db:    newTestDB(),
	}
}

func (r *memoryTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saveCalls++
	if r.saveErr != nil {
		return r.saveErr
	}
	copied := *task
	r.tasks[task.ID] = &copied
	r.savedTasks = append(r.savedTasks, &copied)
	return nil
}

func (r *memoryTaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return nil, r.getErr
	}
	task, ok := r.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

func (r *memoryTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	copied := *task
	r.tasks[task.ID] = &copied
	return nil
}

func (r *memoryTaskRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []*domain.Task{}
	for _, task := range r.tasks {
		if task.OwnerID == ownerID {
			copied := *task
			result = append(result, &copied)
		}
	}
	// created_at ascending, matching the store contract
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].CreatedAt.Before(result[j-1].CreatedAt); j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}
	return result, nil
}

func (r *memoryTaskRepository) CountActiveByOwner(ctx context.Context, ownerID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, task := range r.tasks {
		if task.OwnerID == ownerID && task.IsActive() {
			count++
		}
	}
	return count, nil
}

func (r *memoryTaskRepository) WithTx(tx *sql.Tx) store.TaskStore { return r }

func (r *memoryTaskRepository) DB() *sql.DB { return r.db }

var _ TaskRepository = (*memoryTaskRepository)(nil)

// memoryUserDirectory is an in-memory store.UserDirectory seeded per test.
type memoryUserDirectory struct {
	mu    sync.Mutex
	users map[int64]domain.User
}

func newMemoryUserDirectory(users ...domain.User) *memoryUserDirectory {
	d := &memoryUserDirectory{users: make(map[int64]domain.User, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

func (d *memoryUserDirectory) ExistsAndActive(ctx context.Context, userID int64) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[userID]
	return ok && u.IsActive(), nil
}

func (d *memoryUserDirectory) GetByID(ctx context.Context, userID int64) (*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[userID]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &u, nil
}

func (d *memoryUserDirectory) ListAll(ctx context.Context) ([]*domain.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	users := make([]*domain.User, 0, len(d.users))
	for _, u := range d.users {
		copied := u
		users = append(users, &copied)
	}
	for i := 1; i < len(users); i++ {
		for j := i; j > 0 && users[j].ID < users[j-1].ID; j-- {
			users[j], users[j-1] = users[j-1], users[j]
		}
	}
	return users, nil
}

func (d *memoryUserDirectory) SetStatus(ctx context.Context, userID int64, status domain.UserStatus) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u, ok := d.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	u.Status = status
	d.users[userID] = u
	return nil
}

var _ store.UserDirectory = (*memoryUserDirectory)(nil)

// capturingEmitter records emitted events so tests can assert notifications.
type capturingEmitter struct {
	mu      sync.Mutex
	events  []*events.TaskEvent
	emitErr error
}

func (e *capturingEmitter) EmitEvent(ctx context.Context, event *events.TaskEvent) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.emitErr
}

func (e *capturingEmitter) byType(eventType string) []*events.TaskEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	var matched []*events.TaskEvent
	for _, ev := range e.events {
		if ev.Type == eventType {
			matched = append(matched, ev)
		}
	}
	return matched
}

var _ events.Emitter = (*capturingEmitter)(nil)
