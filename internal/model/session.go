package model

import (
	"strings"
	"time"
)

// Session is the authentication context handed to everything that talks to the API.
// It is written at sign-in, cleared at sign-out and read-only everywhere else.
type Session struct {
	SignedInAt time.Time
	Token      string
	Username   string
	Alias      string
}

// IsAuthenticated reports whether the session carries a bearer token.
func (s Session) IsAuthenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// DisplayName returns the name shown in the welcome screen.
func (s Session) DisplayName() string {
	if s.Alias != "" {
		return s.Alias
	}
	if s.Username != "" {
		return s.Username
	}
	return "User"
}

// Owner returns the username used to label cart activity.
func (s Session) Owner() string {
	if s.Username != "" {
		return s.Username
	}
	return "Guest"
}
