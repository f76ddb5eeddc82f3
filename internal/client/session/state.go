package session

import "github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/client/models"

// State is a snapshot of the session as seen by front-ends.
type State struct {
	User      *models.UserProfile
	IsLoading bool
}

// IsAuthenticated is true iff a user is present.
func (s State) IsAuthenticated() bool {
	return s.User != nil
}

// clone returns a snapshot that shares no memory with s.
func (s State) clone() State {
	return State{User: s.User.Clone(), IsLoading: s.IsLoading}
}
