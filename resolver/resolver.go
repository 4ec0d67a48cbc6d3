package resolver

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/logging"
	"github.com/leverageai/dealdesk/store"
)

// meetingIDPattern matches an explicit meeting identifier embedded in a message.
var meetingIDPattern = regexp.MustCompile(`\bmtg_[A-Za-z0-9]+\b`)

// Input is one resolution request.
type Input struct {
	// Message is the raw user text.
	Message string
	// Context carries previously resolved entity IDs for this thread, if any.
	Context *core.ThreadContext
	// CompanyName is an optional pre-extracted company name from an upstream
	// semantic classifier; it takes precedence over in-message extraction.
	CompanyName string
	// MeetingHint is set when an upstream classifier believes the message
	// references some meeting even though no temporal pattern may match.
	MeetingHint bool
}

// Options configure the Resolver.
type Options struct {
	Logger logging.Logger
	// Now supplies the clock; override in tests for deterministic rolling
	// windows and year defaulting.
	Now func() time.Time
}

// Resolver resolves a company and meeting from a message via the priority
// cascade. It is stateless and safe for concurrent use.
type Resolver struct {
	store  store.Store
	logger logging.Logger
	now    func() time.Time
}

// New creates a Resolver over the given entity store.
func New(entityStore store.Store, optFns ...func(o *Options)) *Resolver {
	opts := Options{Logger: logging.NoOpLogger{}, Now: time.Now}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Resolver{store: entityStore, logger: opts.Logger, now: opts.Now}
}

// Resolve runs the cascade in strict order, first match wins:
//
//  1. Thread context with both IDs resolves immediately, regardless of any
//     new temporal language in the message.
//  2. An explicit meeting identifier resolves directly; unknown IDs fall through.
//  3. Temporal language combined with a resolved company maps to a date-range
//     query (zero matches clarify, one resolves, several clarify with options).
//  4. A semantic meeting hint without a temporal pattern defaults to the most
//     recent meeting.
//  5. A bare company mention auto-selects the most recent meeting and marks
//     the result so downstream consumers can disclose the assumption.
//  6. Otherwise the message is unresolved.
//
// Ambiguity and not-found are values, not errors; only store failures return
// a non-nil error.
func (r *Resolver) Resolve(ctx context.Context, in Input) (core.Resolution, error) {
	start := r.now()

	if in.Context != nil && in.Context.Complete() {
		res, err := r.fromThreadContext(ctx, *in.Context)
		if err != nil {
			return nil, err
		}
		if res != nil {
			r.logStep("thread_context", res, start)
			return res, nil
		}
		// Stale context (meeting deleted): fall through to fresh resolution.
	}

	if id := meetingIDPattern.FindString(in.Message); id != "" {
		meeting, err := r.store.MeetingByID(ctx, id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if meeting != nil {
			res := resolvedFromMeeting(*meeting, false)
			r.logStep("explicit_id", res, start)
			return res, nil
		}
		r.logger.Debug("resolver.explicit_id.miss", "meeting_id", id)
	}

	company, err := r.resolveCompany(ctx, in)
	if err != nil {
		return nil, err
	}

	signal := detectTemporal(in.Message, r.now())

	if signal.class != temporalNone {
		if signal.err != nil {
			res := core.NeedsClarification{
				Message: fmt.Sprintf("I couldn't understand the date in your message (%v). Could you rephrase it, for example \"Aug 7\" or \"8/7/2025\"?", signal.err),
			}
			r.logStep(signal.class.String(), res, start)
			return res, nil
		}
		if company == nil {
			res := core.NeedsClarification{
				Message: "Which company is this about? I found a time reference but no company I recognize.",
			}
			r.logStep(signal.class.String(), res, start)
			return res, nil
		}
		res, err := r.byTemporal(ctx, *company, signal)
		if err != nil {
			return nil, err
		}
		r.logStep(signal.class.String(), res, start)
		return res, nil
	}

	if in.MeetingHint && company != nil {
		res, err := r.byLatest(ctx, *company, false)
		if err != nil {
			return nil, err
		}
		r.logStep("semantic_fallback", res, start)
		return res, nil
	}

	if company != nil {
		res, err := r.byLatest(ctx, *company, true)
		if err != nil {
			return nil, err
		}
		r.logStep("bare_company", res, start)
		return res, nil
	}

	res := core.Unresolved{Reason: "no company, temporal signal or thread context in message"}
	r.logStep("none", res, start)
	return res, nil
}

// fromThreadContext re-fetches only display names and dates for output
// formatting; the carried IDs always win over new message content.
func (r *Resolver) fromThreadContext(ctx context.Context, tc core.ThreadContext) (core.Resolution, error) {
	meeting, err := r.store.MeetingByID(ctx, tc.MeetingID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return resolvedFromMeeting(*meeting, false), nil
}

// resolveCompany picks the company for cascade steps 3-5: the pre-extracted
// name wins, then in-message extraction, then a company carried in thread
// context. A single lookup round trip per source.
func (r *Resolver) resolveCompany(ctx context.Context, in Input) (*core.EntityRef, error) {
	if name := strings.TrimSpace(in.CompanyName); name != "" {
		company, err := r.store.CompanyByName(ctx, name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if company != nil {
			return company, nil
		}
	}

	names, err := r.store.CompanyNames(ctx)
	if err != nil {
		return nil, err
	}
	if name := extractCompanyName(in.Message, names); name != "" {
		company, err := r.store.CompanyByName(ctx, name)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		if company != nil {
			return company, nil
		}
	}

	if in.Context != nil && in.Context.CompanyID != "" {
		company, err := r.store.CompanyByID(ctx, in.Context.CompanyID)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return company, nil
	}

	return nil, nil
}

// byTemporal maps the temporal class onto a date-range query for the company.
func (r *Resolver) byTemporal(ctx context.Context, company core.EntityRef, signal temporalSignal) (core.Resolution, error) {
	now := r.now()
	switch signal.class {
	case temporalLastMeeting:
		return r.byLatest(ctx, company, false)
	case temporalOnDate:
		meetings, err := r.store.MeetingsInRange(ctx, company.ID, signal.date, signal.date)
		if err != nil {
			return nil, err
		}
		return pickSingle(company, meetings, false, fmt.Sprintf("on %s", signal.date.Format("Jan 2, 2006"))), nil
	case temporalLastWeek:
		meetings, err := r.store.MeetingsInRange(ctx, company.ID, now.AddDate(0, 0, -7), now)
		if err != nil {
			return nil, err
		}
		return pickSingle(company, meetings, false, "in the last week"), nil
	case temporalLastMonth:
		meetings, err := r.store.MeetingsInRange(ctx, company.ID, now.AddDate(0, 0, -30), now)
		if err != nil {
			return nil, err
		}
		return pickSingle(company, meetings, false, "in the last month"), nil
	}
	return core.Unresolved{Reason: "unrecognized temporal signal"}, nil
}

// byLatest resolves to the company's most recent meeting, clarifying when
// several meetings share the latest date.
func (r *Resolver) byLatest(ctx context.Context, company core.EntityRef, autoSelected bool) (core.Resolution, error) {
	meetings, err := r.store.LatestMeetings(ctx, company.ID)
	if err != nil {
		return nil, err
	}
	return pickSingle(company, meetings, autoSelected, "recently"), nil
}

// pickSingle enforces the ambiguity invariant: exactly one candidate resolves,
// zero or several clarify. The clarification always names the company and
// lists every candidate with its date.
func pickSingle(company core.EntityRef, meetings []core.Meeting, autoSelected bool, criterion string) core.Resolution {
	switch len(meetings) {
	case 0:
		return core.NeedsClarification{
			Message: fmt.Sprintf("I couldn't find any meetings with %s %s.", company.DisplayName, criterion),
		}
	case 1:
		return resolvedFromMeeting(meetings[0], autoSelected)
	default:
		options := make([]core.MeetingOption, len(meetings))
		for i, m := range meetings {
			options[i] = core.MeetingOption{ID: m.ID, CompanyName: m.CompanyName, Date: m.Date}
		}
		return core.NeedsClarification{
			Message: fmt.Sprintf("I found %d meetings with %s %s. Which one did you mean?", len(meetings), company.DisplayName, criterion),
			Options: options,
		}
	}
}

func resolvedFromMeeting(m core.Meeting, autoSelected bool) core.Resolved {
	return core.Resolved{
		Meeting:         m.Ref(),
		Company:         core.EntityRef{ID: m.CompanyID, DisplayName: m.CompanyName},
		MeetingDate:     m.Date,
		WasAutoSelected: autoSelected,
	}
}

func (r *Resolver) logStep(step string, res core.Resolution, start time.Time) {
	outcome := "unresolved"
	switch res.(type) {
	case core.Resolved:
		outcome = "resolved"
	case core.NeedsClarification:
		outcome = "needs_clarification"
	}
	r.logger.Debug("resolver.cascade.done", "cascade_step", step, "outcome", outcome, "duration_ms", r.now().Sub(start).Milliseconds())
}
