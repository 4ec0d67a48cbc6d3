package core

// ActionType classifies an extracted action item.
type ActionType string

const (
	// ActionCommitment is a promised deliverable ("I'll send the proposal").
	ActionCommitment ActionType = "commitment"
	// ActionRequest is an ask directed at someone else.
	ActionRequest ActionType = "request"
	// ActionBlocker is an impediment someone must clear.
	ActionBlocker ActionType = "blocker"
	// ActionPlan is an agreed future activity without a hard owner commitment.
	ActionPlan ActionType = "plan"
	// ActionScheduling is a follow-up about setting up time.
	ActionScheduling ActionType = "scheduling"
)

// Confidence tier boundaries. Items at or above PrimaryConfidence land in the
// primary list, items in [SecondaryConfidence, PrimaryConfidence) in the
// secondary list, anything below is discarded. Precision over recall.
const (
	PrimaryConfidence   = 0.85
	SecondaryConfidence = 0.70
)

// DeadlineNotSpecified is the literal deadline value substituted for blank or
// missing deadlines during normalization.
const DeadlineNotSpecified = "Not specified"

// ActionItem is a discrete, attributable follow-up obligation extracted from a
// meeting transcript. Instances are transient: created per extraction call,
// normalized, bucketed by confidence and never persisted in raw form.
type ActionItem struct {
	Action     string     `json:"action"`
	Owner      string     `json:"owner"`
	Type       ActionType `json:"type"`
	Deadline   string     `json:"deadline"`
	Evidence   string     `json:"evidence"`
	Confidence float64    `json:"confidence"`
}

// Primary reports whether the item belongs to the high-confidence tier.
func (a ActionItem) Primary() bool { return a.Confidence >= PrimaryConfidence }

// Secondary reports whether the item belongs to the likely-but-less-certain tier.
func (a ActionItem) Secondary() bool {
	return a.Confidence >= SecondaryConfidence && a.Confidence < PrimaryConfidence
}
