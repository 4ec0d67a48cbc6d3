package thread

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverageai/dealdesk/core"
)

func newTestManager(start time.Time) (*Manager, *time.Time) {
	current := start
	m := NewManager(func(o *Options) {
		o.Now = func() time.Time { return current }
	})
	return m, &current
}

func lastWithContext() *Interaction {
	return &Interaction{
		ID:              "int_1",
		Context:         core.ThreadContext{MeetingID: "mtg_1", CompanyID: "cmp_1"},
		QuestionText:    "what were the next steps from the ACE call",
		ResponseType:    "answer",
		PendingQuestion: "Which meeting did you mean?",
	}
}

func TestDecide_NoHistory(t *testing.T) {
	m, _ := newTestManager(time.Now())

	assert.Equal(t, Decision{}, m.Decide("thread-1", "anything", nil))
	assert.Equal(t, Decision{}, m.Decide("thread-1", "anything", &Interaction{}))
}

func TestDecide_ShortReplyAlwaysReuses(t *testing.T) {
	m, _ := newTestManager(time.Now())

	// Even override wording reuses context below the word threshold; a short
	// reply is an answer to us, not a topic change.
	d := m.Decide("thread-1", "different company", lastWithContext())

	assert.True(t, d.ReuseContext)
	require.NotNil(t, d.Context)
	assert.Equal(t, "mtg_1", d.Context.MeetingID)
	assert.Equal(t, "Which meeting did you mean?", d.PendingQuestion)
	assert.Equal(t, "what were the next steps from the ACE call", d.OriginalQuestion)
}

func TestDecide_OverridePatternsForceFresh(t *testing.T) {
	m, _ := newTestManager(time.Now())

	overrides := []string{
		"let's look at a different company this time",
		"actually show me another meeting from them instead",
		"what did they promise during last quarter reviews",
		"the call with Beta LLC about pricing next steps",
		"ok now switch to the Beta account please",
	}
	for _, message := range overrides {
		d := m.Decide("thread-1", message, lastWithContext())
		assert.False(t, d.ReuseContext, "message: %s", message)
	}
}

func TestDecide_LongMessageWithoutOverrideReuses(t *testing.T) {
	m, _ := newTestManager(time.Now())

	d := m.Decide("thread-1", "what else did they commit to during that discussion", lastWithContext())

	assert.True(t, d.ReuseContext)
}

func TestPendingOffer_TTL(t *testing.T) {
	start := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	m, clock := newTestManager(start)

	m.OfferInterpretation("thread-1", "the Aug 7 meeting with ACE Corp")

	d := m.Decide("thread-1", "yes", lastWithContext())
	assert.True(t, d.ReuseContext)
	require.NotNil(t, d.Offer)
	assert.Equal(t, "the Aug 7 meeting with ACE Corp", d.Offer.Value)

	// Past the TTL the offer is silently absent, never honored.
	*clock = start.Add(core.PendingOfferTTL + time.Second)
	d = m.Decide("thread-1", "yes", lastWithContext())
	assert.Nil(t, d.Offer)
}

func TestPendingOffer_PerThreadIsolation(t *testing.T) {
	m, _ := newTestManager(time.Now())

	m.OfferInterpretation("thread-1", "the pricing review")

	assert.Nil(t, m.Decide("thread-2", "yes", lastWithContext()).Offer)
	assert.NotNil(t, m.Decide("thread-1", "yes", lastWithContext()).Offer)
}
