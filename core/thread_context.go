package core

import "time"

// PendingOfferTTL bounds how long a proposed interpretation stays honorable.
const PendingOfferTTL = 5 * time.Minute

// ThreadContext carries resolved entity identifiers across the turns of one
// conversation thread. It deliberately excludes any prior natural-language
// answer: a model must never see its own or another turn's generated answer as
// conversational memory, only resolved IDs may persist.
type ThreadContext struct {
	MeetingID string `json:"meeting_id,omitempty"`
	CompanyID string `json:"company_id,omitempty"`
}

// Complete reports whether both a meeting and a company are attached.
func (tc ThreadContext) Complete() bool { return tc.MeetingID != "" && tc.CompanyID != "" }

// Empty reports whether no entity is attached at all.
func (tc ThreadContext) Empty() bool { return tc.MeetingID == "" && tc.CompanyID == "" }

// PendingOffer is a proposed interpretation awaiting user confirmation,
// stored alongside thread state. It must not be honored once expired.
type PendingOffer struct {
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// Expired reports whether the offer is older than PendingOfferTTL at now.
func (o PendingOffer) Expired(now time.Time) bool {
	return now.Sub(o.Timestamp) > PendingOfferTTL
}
