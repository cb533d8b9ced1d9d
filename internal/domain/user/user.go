package user

import (
	"time"

	"github.com/studycards/backend/internal/id"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

func New(email, name, passwordHash string, role Role) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{
		ID:           id.GenerateID(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthSession is a server-side record of an issued token. A token is only
// honoured while its session row exists.
type AuthSession struct {
	ID        string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
}
