package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/logging"
	"github.com/leverageai/dealdesk/notify"
	"github.com/leverageai/dealdesk/resolver"
	"github.com/leverageai/dealdesk/router"
	"github.com/leverageai/dealdesk/thread"
)

// Inbound is one user turn entering the pipeline.
type Inbound struct {
	// ThreadID identifies the conversation thread.
	ThreadID string
	// Message is the raw user text.
	Message string
	// CompanyHint is an optional pre-extracted company name from an upstream
	// classifier.
	CompanyHint string
	// MeetingHint marks the message as meeting-related even when no temporal
	// pattern is present.
	MeetingHint bool
}

// ResponseType classifies the outcome of a turn for thread state write-back.
const (
	ResponseAnswer        = "answer"
	ResponseClarification = "clarification"
	ResponseFallback      = "fallback"
)

// Outcome is the completed result of one pipeline turn.
type Outcome struct {
	// InteractionID uniquely identifies this turn.
	InteractionID string
	// Resolution is the entity resolution verdict for the turn.
	Resolution core.Resolution
	// Routing is the capability selection, or a fallback. Nil when resolution
	// required clarification and routing was discarded.
	Routing core.Routing
	// Result is the dispatched capability output, when a capability ran.
	Result any
	// ResponseType is the turn classification written back to thread state.
	ResponseType string
	// ReusedContext reports whether carried thread context drove resolution.
	ReusedContext bool
}

// Options configure the Engine.
type Options struct {
	Logger logging.Logger
	// ThreadStore persists per-thread interaction state. Defaults to an
	// in-memory store.
	ThreadStore thread.Store
	// Manager decides context reuse. Defaults to a fresh Manager.
	Manager *thread.Manager
	// Notifier emits progress notices for slow turns. Optional.
	Notifier *notify.Notifier
	// Dispatch controls whether routed capabilities execute as part of
	// Handle. When false the Outcome carries the decision only.
	Dispatch bool
}

// Engine wires the resolver, router and thread state into one turn pipeline.
type Engine struct {
	res      *resolver.Resolver
	rtr      *router.Router
	threads  thread.Store
	manager  *thread.Manager
	notifier *notify.Notifier
	logger   logging.Logger
	dispatch bool
}

// New creates an Engine over a resolver and router.
func New(res *resolver.Resolver, rtr *router.Router, optFns ...func(o *Options)) *Engine {
	opts := Options{Logger: logging.NoOpLogger{}, Dispatch: true}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ThreadStore == nil {
		opts.ThreadStore = thread.NewInMemoryStore()
	}
	if opts.Manager == nil {
		opts.Manager = thread.NewManager()
	}
	return &Engine{
		res:      res,
		rtr:      rtr,
		threads:  opts.ThreadStore,
		manager:  opts.Manager,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		dispatch: opts.Dispatch,
	}
}

// Handle runs one full turn. Resolution and routing are independent of each
// other and run concurrently; their results are joined before dispatch.
func (e *Engine) Handle(ctx context.Context, in Inbound) (*Outcome, error) {
	start := time.Now()
	interactionID := uuid.NewString()

	if e.notifier != nil {
		e.notifier.Begin(in.ThreadID)
		defer e.notifier.MarkResponded(in.ThreadID)
	}

	last, err := e.threads.LastInteraction(ctx, in.ThreadID)
	if err != nil {
		// A broken thread store degrades to a context-free turn.
		e.logger.Warn("engine.thread_read_failed", "thread_id", in.ThreadID, "error", err.Error())
		last = nil
	}
	decision := e.manager.Decide(in.ThreadID, in.Message, last)

	var (
		resolution core.Resolution
		routing    core.Routing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var rerr error
		resolution, rerr = e.res.Resolve(gctx, resolver.Input{
			Message:     in.Message,
			Context:     decision.Context,
			CompanyName: in.CompanyHint,
			MeetingHint: in.MeetingHint,
		})
		if rerr != nil {
			return fmt.Errorf("resolve: %w", rerr)
		}
		return nil
	})
	g.Go(func() error {
		var rerr error
		routing, rerr = e.rtr.Route(gctx, in.Message)
		if rerr != nil {
			return fmt.Errorf("route: %w", rerr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Outcome{
		InteractionID: interactionID,
		Resolution:    resolution,
		Routing:       routing,
		ResponseType:  ResponseAnswer,
		ReusedContext: decision.ReuseContext,
	}

	switch res := resolution.(type) {
	case core.NeedsClarification:
		// Clarification preempts capability execution for this turn.
		out.Routing = nil
		out.ResponseType = ResponseClarification
	case core.Resolved:
		if dec, ok := routing.(core.RoutingDecision); ok {
			e.fillEntityArguments(dec.Arguments, res)
			out.Routing = dec
			if e.dispatch {
				result, derr := e.rtr.Dispatch(ctx, dec)
				if derr != nil {
					return nil, derr
				}
				out.Result = result
			}
		} else {
			out.ResponseType = ResponseFallback
		}
	case core.Unresolved:
		if _, ok := routing.(core.RoutingDecision); !ok {
			out.ResponseType = ResponseFallback
		}
		// A decision without resolved entities still returns to the caller;
		// capabilities that need no entity can be dispatched by the caller.
	}

	e.saveTurn(ctx, in, out, resolution)

	e.logger.Info("engine.turn.done",
		"thread_id", in.ThreadID,
		"interaction_id", interactionID,
		"response_type", out.ResponseType,
		"reused_context", out.ReusedContext,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return out, nil
}

// fillEntityArguments backfills resolved identifiers into routed arguments
// when the model left them empty. Model-invented identifiers never survive; a
// resolved ID always wins.
func (e *Engine) fillEntityArguments(args map[string]any, res core.Resolved) {
	if args == nil {
		return
	}
	args["meeting_id"] = res.Meeting.ID
	args["company_id"] = res.Company.ID
}

// saveTurn writes the completed turn back to thread state. Failures are
// logged and swallowed so a broken store never loses the user's answer.
func (e *Engine) saveTurn(ctx context.Context, in Inbound, out *Outcome, resolution core.Resolution) {
	interaction := &thread.Interaction{
		ID:           out.InteractionID,
		QuestionText: in.Message,
		ResponseType: out.ResponseType,
		Timestamp:    time.Now(),
	}
	switch res := resolution.(type) {
	case core.Resolved:
		interaction.Context = core.ThreadContext{MeetingID: res.Meeting.ID, CompanyID: res.Company.ID}
	case core.NeedsClarification:
		interaction.PendingQuestion = res.Message
		// Carry forward whatever context the previous turn had so a short
		// clarification answer still lands on the same entities.
		if last, err := e.threads.LastInteraction(ctx, in.ThreadID); err == nil && last != nil {
			interaction.Context = last.Context
		}
	}
	if err := e.threads.SaveInteraction(ctx, in.ThreadID, interaction); err != nil && !errors.Is(err, context.Canceled) {
		e.logger.Warn("engine.thread_write_failed", "thread_id", in.ThreadID, "error", err.Error())
	}
}
