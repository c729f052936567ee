package models

import "time"

// User represents an account on the remote service. Username is unique and
// immutable after creation; tasks reference users by username rather than ID.
type User struct {
	ID        string     `json:"id" yaml:"id"`
	Username  string     `json:"username" yaml:"username"`
	FullName  string     `json:"full_name" yaml:"full_name"`
	Email     string     `json:"email" yaml:"email"`
	Role      UserRole   `json:"role" yaml:"role"`
	Status    UserStatus `json:"status" yaml:"status"`
	CreatedAt time.Time  `json:"created_at" yaml:"created_at"`
}
