package core

import "time"

// Resolution is the outcome of one entity resolution attempt. Concrete outcome
// types implement the unexported isResolution marker enabling a closed set.
// Exactly one variant is produced per attempt; ambiguity and not-found are
// routine outcomes modeled as values, never as errors.
type Resolution interface{ isResolution() }

// Resolved carries a fully identified company and meeting.
type Resolved struct {
	Meeting     EntityRef `json:"meeting"`
	Company     EntityRef `json:"company"`
	MeetingDate time.Time `json:"meeting_date,omitempty"`
	// WasAutoSelected is set when the most recent meeting was assumed from a
	// bare company mention so downstream consumers can disclose the assumption.
	WasAutoSelected bool `json:"was_auto_selected,omitempty"`
}

// isResolution implements the Resolution interface for Resolved.
func (Resolved) isResolution() {}

// MeetingOption enumerates one candidate meeting offered for disambiguation.
type MeetingOption struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Date        time.Time `json:"date"`
}

// NeedsClarification signals that more than one candidate (or none) matched and
// the user must be asked before proceeding. Options, when present, enumerate
// every candidate meeting; the caller must present them rather than guess.
type NeedsClarification struct {
	Message string          `json:"message"`
	Options []MeetingOption `json:"options,omitempty"`
}

// isResolution implements the Resolution interface for NeedsClarification.
func (NeedsClarification) isResolution() {}

// Unresolved signals that no company, temporal signal or thread context was
// available to anchor the message to an entity.
type Unresolved struct {
	Reason string `json:"reason"`
}

// isResolution implements the Resolution interface for Unresolved.
func (Unresolved) isResolution() {}
