// Package dealdesk provides a high-level façade over the turn pipeline
// (entity resolution, capability routing, thread state & extraction) enabling
// rapid construction of chat-based business assistants. Most applications
// interact with this package by:
//  1. Creating a DealDesk via New() with an entity store, a model and a
//     capability registry (optionally overriding the in-memory thread store)
//  2. Registering a progress callback for slow turns
//  3. Handling inbound messages and extracting action items from transcripts
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable thread store and
// a structured logger.
package dealdesk

import (
	"context"
	"time"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/engine"
	"github.com/leverageai/dealdesk/extract"
	"github.com/leverageai/dealdesk/logging"
	"github.com/leverageai/dealdesk/model"
	"github.com/leverageai/dealdesk/notify"
	"github.com/leverageai/dealdesk/resolver"
	"github.com/leverageai/dealdesk/router"
	"github.com/leverageai/dealdesk/store"
	"github.com/leverageai/dealdesk/thread"
)

// Options configures the DealDesk instance.
type Options struct {
	// ThreadStore persists per-thread interaction state. Defaults to an
	// in-memory implementation.
	ThreadStore thread.Store

	// ProgressSend receives periodic progress notices for slow turns. Leave
	// nil to disable progress notifications.
	ProgressSend notify.SendFunc
	// ProgressInterval is the delay before and between progress notices.
	ProgressInterval time.Duration

	// Dispatch controls whether routed capabilities execute inside Handle.
	Dispatch bool

	// Now supplies the clock for temporal resolution and offer expiry;
	// override in tests.
	Now func() time.Time

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// DealDesk is the high-level façade aggregating the pipeline components.
type DealDesk struct {
	opts      Options
	engine    *engine.Engine
	extractor *extract.Extractor
	manager   *thread.Manager
}

// New creates a DealDesk over an entity store, a model and a capability
// registry. Any unset service is initialized with an in-memory implementation.
func New(entityStore store.Store, mdl model.Model, registry *router.Registry, optFns ...func(o *Options)) *DealDesk {
	opts := Options{
		ThreadStore:      thread.NewInMemoryStore(),
		ProgressInterval: notify.DefaultInterval,
		Dispatch:         true,
		Now:              time.Now,
		Logger:           logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	res := resolver.New(entityStore, func(o *resolver.Options) {
		o.Logger = opts.Logger
		o.Now = opts.Now
	})
	rtr := router.New(mdl, registry, func(o *router.Options) {
		o.Logger = opts.Logger
	})
	manager := thread.NewManager(func(o *thread.Options) {
		o.Logger = opts.Logger
		o.Now = opts.Now
	})

	var notifier *notify.Notifier
	if opts.ProgressSend != nil {
		notifier = notify.New(opts.ProgressSend, func(o *notify.Options) {
			o.Logger = opts.Logger
			o.Interval = opts.ProgressInterval
		})
	}

	eng := engine.New(res, rtr, func(o *engine.Options) {
		o.Logger = opts.Logger
		o.ThreadStore = opts.ThreadStore
		o.Manager = manager
		o.Notifier = notifier
		o.Dispatch = opts.Dispatch
	})

	return &DealDesk{
		opts:   opts,
		engine: eng,
		extractor: extract.New(mdl, func(o *extract.Options) {
			o.Logger = opts.Logger
		}),
		manager: manager,
	}
}

// Handle processes one inbound user turn end to end.
func (d *DealDesk) Handle(ctx context.Context, in engine.Inbound) (*engine.Outcome, error) {
	return d.engine.Handle(ctx, in)
}

// ExtractActionItems produces normalized two-tier action items from a
// meeting's ordered transcript chunks.
func (d *DealDesk) ExtractActionItems(ctx context.Context, chunks []core.TranscriptChunk, attendees extract.Attendees) (*extract.Result, error) {
	return d.extractor.Extract(ctx, chunks, attendees)
}

// OfferInterpretation records a proposed reading of a thread's request so a
// short confirmation reply can be tied back to it within the offer TTL.
func (d *DealDesk) OfferInterpretation(threadID, value string) {
	d.manager.OfferInterpretation(threadID, value)
}
