package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "modernc.org/sqlite"
)

// entitySchema mirrors the read-side subset of the production schema that the
// decision core queries.
const entitySchema = `
CREATE TABLE companies (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL
);
CREATE TABLE meetings (
	id           TEXT PRIMARY KEY,
	company_id   TEXT NOT NULL REFERENCES companies(id),
	title        TEXT,
	meeting_date TEXT NOT NULL
);
`

// StoreBuilder constructs an in-memory sqlite entity store with fluent
// chaining for tests.
// Example:
//
//	db := NewStoreBuilder(t).
//		Company("cmp_1", "ACE Corp").
//		Meeting("mtg_1", "cmp_1", "Kickoff", "2025-01-10").
//		Build()
type StoreBuilder struct {
	t         *testing.T
	companies [][2]string
	meetings  [][4]string
}

// NewStoreBuilder creates a new builder bound to the test's lifecycle.
func NewStoreBuilder(t *testing.T) *StoreBuilder {
	t.Helper()
	return &StoreBuilder{t: t}
}

// Company registers a company row (chainable).
func (b *StoreBuilder) Company(id, name string) *StoreBuilder {
	b.companies = append(b.companies, [2]string{id, name})
	return b
}

// Meeting registers a meeting row with an ISO date (chainable).
func (b *StoreBuilder) Meeting(id, companyID, title, date string) *StoreBuilder {
	b.meetings = append(b.meetings, [4]string{id, companyID, title, date})
	return b
}

// Build opens an in-memory sqlite database, applies the schema and seeds the
// registered rows. The handle is closed automatically via t.Cleanup.
func (b *StoreBuilder) Build() *sql.DB {
	b.t.Helper()

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", b.t.Name()))
	if err != nil {
		b.t.Fatalf("open sqlite: %v", err)
	}
	// A second connection to a private in-memory db would see an empty schema.
	db.SetMaxOpenConns(1)
	b.t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(entitySchema); err != nil {
		b.t.Fatalf("apply schema: %v", err)
	}
	for _, c := range b.companies {
		if _, err := db.Exec(`INSERT INTO companies (id, name) VALUES (?, ?)`, c[0], c[1]); err != nil {
			b.t.Fatalf("seed company %s: %v", c[0], err)
		}
	}
	for _, m := range b.meetings {
		if _, err := db.Exec(
			`INSERT INTO meetings (id, company_id, title, meeting_date) VALUES (?, ?, ?, ?)`,
			m[0], m[1], m[2], m[3],
		); err != nil {
			b.t.Fatalf("seed meeting %s: %v", m[0], err)
		}
	}
	return db
}
