// Package store implements the read-only entity lookup layer over the
// persisted company / meeting records. The decision core only ever issues
// parameterized read queries; schema ownership and writes belong to external
// collaborators.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/leverageai/dealdesk/core"
)

// ErrNotFound is returned when a lookup matches no record. Callers translate
// it into user-facing clarification messages, never into generic failures.
var ErrNotFound = errors.New("store: not found")

// Store is the entity lookup capability consumed by the resolver.
//
// Implementations must be safe for concurrent use; the resolver issues at most
// one lookup round trip per cascade step.
type Store interface {
	// CompanyNames returns every known company display name. Used by the
	// resolver's in-message company extraction.
	CompanyNames(ctx context.Context) ([]string, error)

	// CompanyByName resolves an exact (case-insensitive) company name.
	CompanyByName(ctx context.Context, name string) (*core.EntityRef, error)

	// CompanyByID refetches a company display name for output formatting.
	CompanyByID(ctx context.Context, id string) (*core.EntityRef, error)

	// CompaniesMatching finds companies by fragment: exact match first, then
	// prefix, then word-boundary containment.
	CompaniesMatching(ctx context.Context, fragment string) ([]core.EntityRef, error)

	// MeetingByID resolves an explicit meeting identifier.
	MeetingByID(ctx context.Context, id string) (*core.Meeting, error)

	// MeetingsInRange returns a company's meetings within [from, to], newest first.
	MeetingsInRange(ctx context.Context, companyID string, from, to time.Time) ([]core.Meeting, error)

	// LatestMeetings returns every meeting sharing the company's most recent
	// meeting date. More than one element means the "last meeting" is ambiguous.
	LatestMeetings(ctx context.Context, companyID string) ([]core.Meeting, error)
}
