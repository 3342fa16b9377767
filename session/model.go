package session

import "time"

// Snapshot is the user record cached in the session store at login time.
// Only identity and liveness are ever taken from it; authorization-relevant
// fields are re-read from the live user record by the caller.
type Snapshot struct {
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Photo      string    `json:"photo"`
	Verified   bool      `json:"verified"`
	LoggedInAt time.Time `json:"loggedInAt"`
}
