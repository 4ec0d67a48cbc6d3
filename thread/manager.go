package thread

import (
	"regexp"
	"strings"
	"time"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/logging"
	gocache "github.com/patrickmn/go-cache"
)

// shortReplyWords is the word-count threshold below which a reply is treated
// as a clarification answer and always reuses carried context, bypassing the
// override scan entirely.
const shortReplyWords = 5

// overridePatterns force fresh resolution for this turn only. The stored
// thread record is not mutated until a new result is produced.
var overridePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bdifferent\s+(meeting|call|company)\b`),
	regexp.MustCompile(`(?i)\banother\s+(meeting|call|company)\b`),
	regexp.MustCompile(`(?i)\blast\s+quarter\b`),
	regexp.MustCompile(`(?i)\bwith\s+\S+(?:\s+\S+)?\s+about\b`),
	regexp.MustCompile(`(?i)\bswitch\s+to\b`),
}

// Decision is the manager's verdict for one inbound reply.
type Decision struct {
	// ReuseContext reports whether the previously resolved entities should be
	// carried into this turn.
	ReuseContext bool
	// Context holds the carried entity IDs when ReuseContext is set.
	Context *core.ThreadContext
	// PendingQuestion is an outstanding clarification question, if any.
	PendingQuestion string
	// ProposedInterpretation is a previously offered reading of the request,
	// surfaced so numbered or "yes" replies can be resolved against it.
	ProposedInterpretation string
	// OriginalQuestion is the question text of the last turn.
	OriginalQuestion string
	// LastResponseType is the type of the last response given.
	LastResponseType string
	// Offer is an unexpired pending offer, if one exists.
	Offer *core.PendingOffer
}

// Options configure the Manager.
type Options struct {
	Logger logging.Logger
	Now    func() time.Time
}

// Manager decides context reuse for thread replies and owns the short-lived
// pending-offer state. Offers expire after core.PendingOfferTTL and are never
// honored past expiry; expired offers are silently absent, not errors.
type Manager struct {
	offers *gocache.Cache
	logger logging.Logger
	now    func() time.Time
}

// NewManager constructs a Manager with its own offer cache.
func NewManager(optFns ...func(o *Options)) *Manager {
	opts := Options{Logger: logging.NoOpLogger{}, Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{
		offers: gocache.New(core.PendingOfferTTL, time.Minute),
		logger: opts.Logger,
		now:    opts.Now,
	}
}

// Decide determines whether message should reuse the thread's carried context.
// Replies under shortReplyWords words always reuse; longer messages reuse
// unless an override pattern signals an explicit subject change. The read has
// no side effects; writing updated context back is the caller's job.
func (m *Manager) Decide(threadID, message string, last *Interaction) Decision {
	if last == nil || last.Context.Empty() {
		return Decision{}
	}

	words := len(strings.Fields(message))
	if words >= shortReplyWords && matchesOverride(message) {
		m.logger.Debug("thread.context.override", "thread_id", threadID, "words", words)
		return Decision{}
	}

	ctx := last.Context
	return Decision{
		ReuseContext:           true,
		Context:                &ctx,
		PendingQuestion:        last.PendingQuestion,
		ProposedInterpretation: last.ProposedInterpretation,
		OriginalQuestion:       last.QuestionText,
		LastResponseType:       last.ResponseType,
		Offer:                  m.pendingOffer(threadID),
	}
}

// OfferInterpretation records a proposed interpretation for the thread,
// honorable for core.PendingOfferTTL.
func (m *Manager) OfferInterpretation(threadID, value string) {
	m.offers.Set(threadID, core.PendingOffer{Value: value, Timestamp: m.now()}, gocache.DefaultExpiration)
}

// pendingOffer returns the thread's unexpired offer, if any. The timestamp is
// re-checked against the injected clock so tests with a synthetic clock see
// the same expiry the cache enforces in production.
func (m *Manager) pendingOffer(threadID string) *core.PendingOffer {
	v, ok := m.offers.Get(threadID)
	if !ok {
		return nil
	}
	offer, ok := v.(core.PendingOffer)
	if !ok || offer.Expired(m.now()) {
		return nil
	}
	return &offer
}

func matchesOverride(message string) bool {
	for _, p := range overridePatterns {
		if p.MatchString(message) {
			return true
		}
	}
	return false
}
