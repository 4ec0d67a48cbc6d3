package thread

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverageai/dealdesk/core"
)

var _ Store = (*InMemoryStore)(nil)

func TestInMemoryStore_RoundTrip(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	// A thread without history returns (nil, nil), not an error.
	got, err := s.LastInteraction(ctx, "thread-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	saved := &Interaction{
		ID:           "int_1",
		Context:      core.ThreadContext{MeetingID: "mtg_1", CompanyID: "cmp_1"},
		QuestionText: "next steps?",
		ResponseType: "answer",
		Timestamp:    time.Now(),
	}
	require.NoError(t, s.SaveInteraction(ctx, "thread-1", saved))

	got, err = s.LastInteraction(ctx, "thread-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "mtg_1", got.Context.MeetingID)
}

func TestInMemoryStore_CloneIsolation(t *testing.T) {
	s := NewInMemoryStore()
	ctx := context.Background()

	saved := &Interaction{ID: "int_1", Context: core.ThreadContext{MeetingID: "mtg_1"}}
	require.NoError(t, s.SaveInteraction(ctx, "thread-1", saved))

	// Mutating either side never leaks into the store.
	saved.Context.MeetingID = "mtg_mutated"
	first, err := s.LastInteraction(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "mtg_1", first.Context.MeetingID)

	first.Context.MeetingID = "mtg_mutated_again"
	second, err := s.LastInteraction(ctx, "thread-1")
	require.NoError(t, err)
	assert.Equal(t, "mtg_1", second.Context.MeetingID)
}
