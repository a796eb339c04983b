// Package model defines domain entities for the application.
package model

import (
	"strconv"
	"time"
)

// User represents an account identified by a unique username.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// CachedUser represents user data stored in Redis cache.
// Uses string types for Redis hash compatibility.
type CachedUser struct {
	Username  string `redis:"username"`
	CreatedAt string `redis:"created_at"` // Unix timestamp
}

// ToUser converts CachedUser to the User domain model.
func (c *CachedUser) ToUser(id string) *User {
	user := &User{
		ID:       id,
		Username: c.Username,
	}

	if c.CreatedAt != "" {
		if ts, err := strconv.ParseInt(c.CreatedAt, 10, 64); err == nil {
			user.CreatedAt = time.Unix(ts, 0)
		}
	}

	return user
}

// ToCachedUser converts the User domain model to CachedUser.
func (u *User) ToCachedUser() *CachedUser {
	return &CachedUser{
		Username:  u.Username,
		CreatedAt: strconv.FormatInt(u.CreatedAt.Unix(), 10),
	}
}
