package domain

// UserStatus represents the activation state of a user in the directory.
type UserStatus string

// Possible user status values.
const (
	UserStatusActive   UserStatus = "active"
	UserStatusInactive UserStatus = "inactive"
)

// User is a read-only view of an externally managed directory entry. Tasks
// reference users by ID only; there is no referential integrity between
// tasks and users at the storage layer.
type User struct {
	ID     int64      `json:"id"`
	Name   string     `json:"name"`
	Email  string     `json:"email"`
	Status UserStatus `json:"status"`
}

// IsActive reports whether tasks may be assigned to the user.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
