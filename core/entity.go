package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ID namespace prefixes. Company and meeting identifiers never collide because
// every stored ID carries its namespace prefix.
const (
	CompanyIDPrefix = "cmp_"
	MeetingIDPrefix = "mtg_"
)

// EntityRef is an immutable reference to a resolved business entity.
// Company and meeting references share this shape but live in distinct
// identity namespaces (see CompanyIDPrefix / MeetingIDPrefix).
type EntityRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// Meeting is the store-level view of a meeting used during resolution.
type Meeting struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Title       string    `json:"title,omitempty"`
	Date        time.Time `json:"date"`
}

// Ref returns the meeting as an EntityRef using its title (or date) as display name.
func (m Meeting) Ref() EntityRef {
	name := m.Title
	if name == "" {
		name = m.CompanyName + " meeting on " + m.Date.Format("Jan 2, 2006")
	}
	return EntityRef{ID: m.ID, DisplayName: name}
}

// IsMeetingID reports whether s looks like a meeting identifier.
func IsMeetingID(s string) bool { return strings.HasPrefix(s, MeetingIDPrefix) }

// IsCompanyID reports whether s looks like a company identifier.
func IsCompanyID(s string) bool { return strings.HasPrefix(s, CompanyIDPrefix) }

// NewID generates a new unique identifier for interactions and events.
//
// Returns a string representation of a new UUID.
func NewID() string { return uuid.NewString() }
