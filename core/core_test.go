package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Closed-set compliance (compile-time assertions)
var (
	_ Resolution = Resolved{}
	_ Resolution = NeedsClarification{}
	_ Resolution = Unresolved{}
	_ Routing    = RoutingDecision{}
	_ Routing    = Fallback{}
)

func TestThreadContext_CompleteAndEmpty(t *testing.T) {
	assert.True(t, ThreadContext{}.Empty())
	assert.False(t, ThreadContext{}.Complete())

	partial := ThreadContext{CompanyID: "cmp_1"}
	assert.False(t, partial.Empty())
	assert.False(t, partial.Complete())

	full := ThreadContext{MeetingID: "mtg_1", CompanyID: "cmp_1"}
	assert.True(t, full.Complete())
	assert.False(t, full.Empty())
}

func TestPendingOffer_Expired(t *testing.T) {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)
	offer := PendingOffer{Value: "the Aug 7 meeting", Timestamp: now}

	assert.False(t, offer.Expired(now))
	assert.False(t, offer.Expired(now.Add(PendingOfferTTL)))
	assert.True(t, offer.Expired(now.Add(PendingOfferTTL+time.Second)))
}

func TestActionItem_ConfidenceTiers(t *testing.T) {
	assert.True(t, ActionItem{Confidence: 0.85}.Primary())
	assert.False(t, ActionItem{Confidence: 0.84}.Primary())
	assert.True(t, ActionItem{Confidence: 0.84}.Secondary())
	assert.True(t, ActionItem{Confidence: 0.70}.Secondary())
	assert.False(t, ActionItem{Confidence: 0.69}.Secondary())
	assert.False(t, ActionItem{Confidence: 0.69}.Primary())
}

func TestMeeting_Ref(t *testing.T) {
	date := time.Date(2025, 8, 7, 0, 0, 0, 0, time.UTC)

	titled := Meeting{ID: "mtg_1", CompanyName: "ACE Corp", Title: "Q3 Kickoff", Date: date}
	assert.Equal(t, EntityRef{ID: "mtg_1", DisplayName: "Q3 Kickoff"}, titled.Ref())

	untitled := Meeting{ID: "mtg_2", CompanyName: "ACE Corp", Date: date}
	assert.Equal(t, "ACE Corp meeting on Aug 7, 2025", untitled.Ref().DisplayName)
}

func TestIDNamespaces(t *testing.T) {
	assert.True(t, IsMeetingID("mtg_abc"))
	assert.False(t, IsMeetingID("cmp_abc"))
	assert.True(t, IsCompanyID("cmp_abc"))

	assert.NotEmpty(t, NewID())
	assert.NotEqual(t, NewID(), NewID())
}
