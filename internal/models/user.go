package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns transactions. Password holds the bcrypt hash,
// never the plain text.
type User struct {
	ID        uuid.UUID `db:"id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

