// Package models defines the client-side account model: the single persisted
// user profile, the partial update applied to it and the request payloads
// produced by the signup and login forms.
package models

import (
	"fmt"
	"strings"

	"github.com/FIAP-1TDSPS-2024/smart-desk-mobile/internal/common"
)

// WorkMode describes where the user usually works.
type WorkMode string

const (
	WorkModeRemote WorkMode = "remote"
	WorkModeHybrid WorkMode = "hybrid"
	WorkModeOffice WorkMode = "office"
)

// DefaultWorkMode is preselected on the signup form.
const DefaultWorkMode = WorkModeHybrid

// Valid reports whether m is one of the known work modes.
func (m WorkMode) Valid() bool {
	switch m {
	case WorkModeRemote, WorkModeHybrid, WorkModeOffice:
		return true
	}
	return false
}

// ParseWorkMode accepts a work mode name in any case, ignoring surrounding
// whitespace. The error wraps common.ErrInvalidWorkMode.
func ParseWorkMode(s string) (WorkMode, error) {
	m := WorkMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidWorkMode, s)
	}
	return m, nil
}

// UserProfile is the single account record persisted on the device.
// ID is assigned at signup and never changes afterwards.
//
// Password is kept exactly as typed; there is no hashing in the local
// single-device model.
type UserProfile struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Company  string   `json:"company,omitempty"`
	WorkMode WorkMode `json:"workMode,omitempty"`
	Phone    string   `json:"phone,omitempty"`
	Position string   `json:"position,omitempty"`
	Avatar   string   `json:"avatar,omitempty"`
}

// Clone returns a copy of p that shares nothing with it.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	return &c
}

// ProfileUpdate is a partial update of a UserProfile. A nil field is absent
// from the update and leaves the stored value as it is.
//
// ID may be set by callers that pass a whole profile back, but it is never
// applied.
type ProfileUpdate struct {
	ID       *string   `json:"id,omitempty"`
	Name     *string   `json:"name,omitempty"`
	Email    *string   `json:"email,omitempty"`
	Password *string   `json:"password,omitempty"`
	Company  *string   `json:"company,omitempty"`
	WorkMode *WorkMode `json:"workMode,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Position *string   `json:"position,omitempty"`
	Avatar   *string   `json:"avatar,omitempty"`
}

// IsEmpty reports whether u carries no applicable field.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Email == nil && u.Password == nil &&
		u.Company == nil && u.WorkMode == nil && u.Phone == nil &&
		u.Position == nil && u.Avatar == nil
}

// Validate checks the fields that have a closed set of values.
func (u ProfileUpdate) Validate() error {
	if u.WorkMode != nil && !u.WorkMode.Valid() {
		return fmt.Errorf("%w: %q", common.ErrInvalidWorkMode, *u.WorkMode)
	}
	return nil
}

// ApplyTo merges u over p field by field and returns the result. p.ID is
// kept even when u.ID is set.
func (u ProfileUpdate) ApplyTo(p UserProfile) UserProfile {
	set(&p.Name, u.Name)
	set(&p.Email, u.Email)
	set(&p.Password, u.Password)
	set(&p.Company, u.Company)
	set(&p.Phone, u.Phone)
	set(&p.Position, u.Position)
	set(&p.Avatar, u.Avatar)
	if u.WorkMode != nil {
		p.WorkMode = *u.WorkMode
	}
	return p
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// String returns a pointer to s, for building a ProfileUpdate inline.
func String(s string) *string {
	return &s
}
