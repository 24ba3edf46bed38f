package model

import "time"

// User is a registered account, as exposed to callers. The stored record
// (including the password hash) never leaves the auth package.
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
