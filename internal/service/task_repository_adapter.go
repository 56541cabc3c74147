package service

import (
	"database/sql"

	"github.com/ledgerline/taskboard-api/internal/store"
)

// TaskRepositoryAdapter joins a store.TaskStore with its *sql.DB to satisfy
// TaskRepository, keeping the store implementation unaware of how use cases
// open transactions.
type TaskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// NewTaskRepositoryAdapter creates an adapter delegating to the given store.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) *TaskRepositoryAdapter {
	return &TaskRepositoryAdapter{TaskStore: taskStore, db: db}
}

// DB returns the underlying database connection.
func (a *TaskRepositoryAdapter) DB() *sql.DB {
	return a.db
}

// Ensure TaskRepositoryAdapter implements TaskRepository.
var _ TaskRepository = (*TaskRepositoryAdapter)(nil)
