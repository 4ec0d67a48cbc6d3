package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverageai/dealdesk/internal/testutil"
	"github.com/leverageai/dealdesk/store"
)

var _ store.Store = (*store.SQLStore)(nil)

func newSeededStore(t *testing.T) *store.SQLStore {
	t.Helper()
	db := testutil.NewStoreBuilder(t).
		Company("cmp_ace", "ACE Corp").
		Company("cmp_acme", "Acme Widgets").
		Company("cmp_beta", "Beta LLC").
		Meeting("mtg_1", "cmp_ace", "Q3 Kickoff", "2025-08-07").
		Meeting("mtg_2", "cmp_ace", "Pricing Review", "2025-08-21").
		Meeting("mtg_3", "cmp_ace", "", "2025-08-21").
		Build()
	return store.NewSQLStore(db)
}

func TestSQLStore_CompanyLookups(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	names, err := s.CompanyNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACE Corp", "Acme Widgets", "Beta LLC"}, names)

	// Name matching is case-insensitive; ID matching is exact.
	ref, err := s.CompanyByName(ctx, "ace corp")
	require.NoError(t, err)
	assert.Equal(t, "cmp_ace", ref.ID)
	assert.Equal(t, "ACE Corp", ref.DisplayName)

	ref, err = s.CompanyByID(ctx, "cmp_beta")
	require.NoError(t, err)
	assert.Equal(t, "Beta LLC", ref.DisplayName)

	_, err = s.CompanyByName(ctx, "Unknown Co")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.CompanyByID(ctx, "cmp_nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_CompaniesMatching(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	// An exact match short-circuits fragment matching entirely.
	refs, err := s.CompaniesMatching(ctx, "ACE Corp")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "cmp_ace", refs[0].ID)

	// Prefix matches come before word-boundary containment matches.
	refs, err = s.CompaniesMatching(ctx, "ac")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "ACE Corp", refs[0].DisplayName)
	assert.Equal(t, "Acme Widgets", refs[1].DisplayName)

	refs, err = s.CompaniesMatching(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, refs)

	// LIKE metacharacters in the fragment are literals, not wildcards.
	refs, err = s.CompaniesMatching(ctx, "%")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestSQLStore_MeetingByID(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	m, err := s.MeetingByID(ctx, "mtg_1")
	require.NoError(t, err)
	assert.Equal(t, "cmp_ace", m.CompanyID)
	assert.Equal(t, "ACE Corp", m.CompanyName)
	assert.Equal(t, "Q3 Kickoff", m.Title)
	assert.Equal(t, time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC), m.Date)

	_, err = s.MeetingByID(ctx, "mtg_nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSQLStore_MeetingsInRange(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	from := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)

	meetings, err := s.MeetingsInRange(ctx, "cmp_ace", from, to)
	require.NoError(t, err)
	require.Len(t, meetings, 3)
	// Newest first.
	assert.Equal(t, time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC), meetings[0].Date)
	assert.Equal(t, "mtg_1", meetings[2].ID)

	// Bounds are inclusive on both ends.
	day := time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)
	meetings, err = s.MeetingsInRange(ctx, "cmp_ace", day, day)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	assert.Equal(t, "mtg_1", meetings[0].ID)

	meetings, err = s.MeetingsInRange(ctx, "cmp_beta", from, to)
	require.NoError(t, err)
	assert.Empty(t, meetings)
}

func TestSQLStore_LatestMeetings(t *testing.T) {
	s := newSeededStore(t)
	ctx := context.Background()

	// Every meeting on the most recent date is returned so callers can see
	// same-date ambiguity.
	meetings, err := s.LatestMeetings(ctx, "cmp_ace")
	require.NoError(t, err)
	require.Len(t, meetings, 2)
	assert.Equal(t, "mtg_2", meetings[0].ID)
	assert.Equal(t, "mtg_3", meetings[1].ID)
	assert.Empty(t, meetings[1].Title)

	meetings, err = s.LatestMeetings(ctx, "cmp_beta")
	require.NoError(t, err)
	assert.Empty(t, meetings)
}
