package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/logging"
)

// dateLayout is the canonical meeting date encoding in the entity store.
// ISO dates compare lexically, which keeps range queries index-friendly.
const dateLayout = "2006-01-02"

// SQLStore implements Store over any database/sql driver. Every query is
// parameterized and read-only; the store never issues schema-mutating
// statements.
type SQLStore struct {
	db     *sql.DB
	logger logging.Logger
}

// SQLOptions configure the SQLStore.
type SQLOptions struct {
	Logger logging.Logger
}

// NewSQLStore wraps an open database handle. The handle's lifecycle (pooling,
// close) remains with the caller.
func NewSQLStore(db *sql.DB, optFns ...func(o *SQLOptions)) *SQLStore {
	opts := SQLOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &SQLStore{db: db, logger: opts.Logger}
}

// CompanyNames implements Store.
func (s *SQLStore) CompanyNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM companies ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query company names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan company name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CompanyByName implements Store with an exact case-insensitive match.
func (s *SQLStore) CompanyByName(ctx context.Context, name string) (*core.EntityRef, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM companies WHERE LOWER(name) = LOWER(?)`, name)
	return scanCompany(row)
}

// CompanyByID implements Store.
func (s *SQLStore) CompanyByID(ctx context.Context, id string) (*core.EntityRef, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name FROM companies WHERE id = ?`, id)
	return scanCompany(row)
}

// CompaniesMatching implements Store. Exact matches win outright; otherwise
// prefix matches are returned ahead of word-boundary containment matches.
func (s *SQLStore) CompaniesMatching(ctx context.Context, fragment string) ([]core.EntityRef, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, nil
	}

	if exact, err := s.CompanyByName(ctx, fragment); err == nil {
		return []core.EntityRef{*exact}, nil
	} else if err != ErrNotFound {
		return nil, err
	}

	escaped := escapeLike(fragment)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name FROM companies
		WHERE LOWER(name) LIKE LOWER(?) ESCAPE '\'
		   OR LOWER(name) LIKE LOWER(?) ESCAPE '\'
		ORDER BY CASE WHEN LOWER(name) LIKE LOWER(?) ESCAPE '\' THEN 0 ELSE 1 END, name`,
		escaped+"%", "% "+escaped+"%", escaped+"%")
	if err != nil {
		return nil, fmt.Errorf("query companies matching %q: %w", fragment, err)
	}
	defer rows.Close()

	var refs []core.EntityRef
	for rows.Next() {
		var ref core.EntityRef
		if err := rows.Scan(&ref.ID, &ref.DisplayName); err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// MeetingByID implements Store.
func (s *SQLStore) MeetingByID(ctx context.Context, id string) (*core.Meeting, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.company_id, c.name, m.title, m.meeting_date
		FROM meetings m JOIN companies c ON c.id = m.company_id
		WHERE m.id = ?`, id)
	return scanMeeting(row)
}

// MeetingsInRange implements Store, newest first.
func (s *SQLStore) MeetingsInRange(ctx context.Context, companyID string, from, to time.Time) ([]core.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.company_id, c.name, m.title, m.meeting_date
		FROM meetings m JOIN companies c ON c.id = m.company_id
		WHERE m.company_id = ? AND m.meeting_date >= ? AND m.meeting_date <= ?
		ORDER BY m.meeting_date DESC`,
		companyID, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("query meetings in range: %w", err)
	}
	defer rows.Close()
	return collectMeetings(rows)
}

// LatestMeetings implements Store. Every meeting on the most recent date is
// returned so the resolver can detect same-date ambiguity.
func (s *SQLStore) LatestMeetings(ctx context.Context, companyID string) ([]core.Meeting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.company_id, c.name, m.title, m.meeting_date
		FROM meetings m JOIN companies c ON c.id = m.company_id
		WHERE m.company_id = ?
		  AND m.meeting_date = (SELECT MAX(meeting_date) FROM meetings WHERE company_id = ?)
		ORDER BY m.id`,
		companyID, companyID)
	if err != nil {
		return nil, fmt.Errorf("query latest meetings: %w", err)
	}
	defer rows.Close()
	return collectMeetings(rows)
}

func scanCompany(row *sql.Row) (*core.EntityRef, error) {
	var ref core.EntityRef
	if err := row.Scan(&ref.ID, &ref.DisplayName); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &ref, nil
}

func scanMeeting(row *sql.Row) (*core.Meeting, error) {
	var m core.Meeting
	var title sql.NullString
	var date string
	if err := row.Scan(&m.ID, &m.CompanyID, &m.CompanyName, &title, &date); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan meeting: %w", err)
	}
	m.Title = title.String
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("meeting %s has malformed date %q: %w", m.ID, date, err)
	}
	m.Date = parsed
	return &m, nil
}

func collectMeetings(rows *sql.Rows) ([]core.Meeting, error) {
	var meetings []core.Meeting
	for rows.Next() {
		var m core.Meeting
		var title sql.NullString
		var date string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.CompanyName, &title, &date); err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		m.Title = title.String
		parsed, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("meeting %s has malformed date %q: %w", m.ID, date, err)
		}
		m.Date = parsed
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

// escapeLike escapes LIKE metacharacters in user-derived fragments.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
