package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/logging"
	"github.com/leverageai/dealdesk/model"
)

// routingInstructions frame the function-selection request. The router always
// selects a capability when intent is plausible, even with missing arguments;
// downstream fills missing identifiers from thread context. It never reasons
// over retrieved domain data.
const routingInstructions = `You route messages for a business assistant that answers questions about companies and their meetings.

Select the single capability that best matches the user's intent and extract any arguments present in the message.

Rules:
- If the message plausibly asks for something a capability covers, select it even when arguments such as meeting or company identifiers are missing. Missing identifiers are filled in later from conversation context; never invent them.
- Do not answer the question yourself and do not use any knowledge about specific companies or meetings.
- Only respond without selecting a capability for genuinely unrelated input such as greetings or questions about what you can do. In that case reply with a short helpful message.`

// Options configure the Router.
type Options struct {
	Logger logging.Logger
	// Temperature for the selection call. Kept at zero by default so
	// routing stays repeatable.
	Temperature float64
}

// Router classifies messages against the capability registry via one
// function-selection model call.
type Router struct {
	mdl         model.Model
	registry    *Registry
	logger      logging.Logger
	temperature float64
}

// New creates a Router over the given model and registry.
func New(mdl model.Model, registry *Registry, optFns ...func(o *Options)) *Router {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{mdl: mdl, registry: registry, logger: opts.Logger, temperature: opts.Temperature}
}

// Route submits the message plus the full registry as a function-selection
// request and returns either a capability decision or a free-text fallback.
//
// Error semantics follow the core taxonomy: transport/model failures are
// propagated; a refusal, absent selection or malformed argument payload is a
// Fallback, never an invented capability call and never an error.
func (r *Router) Route(ctx context.Context, message string) (core.Routing, error) {
	start := time.Now()

	resp, err := r.mdl.Submit(ctx, model.Request{
		Instructions: routingInstructions,
		UserContent:  message,
		Tools:        r.registry.ToolDefinitions(),
		Temperature:  r.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("routing model call: %w", err)
	}

	if resp.Refusal != "" {
		r.logger.Warn("router.refusal", "refusal", resp.Refusal)
		return core.Fallback{Text: fallbackText(resp.Content)}, nil
	}

	if resp.ToolCall == nil {
		r.logger.Debug("router.no_selection", "duration_ms", time.Since(start).Milliseconds())
		return core.Fallback{Text: fallbackText(resp.Content)}, nil
	}

	if _, ok := r.registry.Get(resp.ToolCall.Name); !ok {
		r.logger.Warn("router.unknown_capability", "capability", resp.ToolCall.Name)
		return core.Fallback{Text: fallbackText(resp.Content)}, nil
	}

	args := map[string]any{}
	if len(resp.ToolCall.Arguments) > 0 {
		if err := json.Unmarshal(resp.ToolCall.Arguments, &args); err != nil {
			r.logger.Warn("router.malformed_arguments", "capability", resp.ToolCall.Name, "error", err.Error())
			return core.Fallback{Text: fallbackText(resp.Content)}, nil
		}
	}

	r.logger.Info("router.selected", "capability", resp.ToolCall.Name, "duration_ms", time.Since(start).Milliseconds())
	return core.RoutingDecision{Capability: resp.ToolCall.Name, Arguments: args}, nil
}

// Dispatch executes a routing decision through the registry's uniform
// validate/handle contract.
func (r *Router) Dispatch(ctx context.Context, decision core.RoutingDecision) (any, error) {
	capability, ok := r.registry.Get(decision.Capability)
	if !ok {
		return nil, &CapabilityError{
			Capability: decision.Capability,
			Message:    "capability not registered",
			Code:       "UNKNOWN_CAPABILITY",
		}
	}

	validated, err := capability.Validate(decision.Arguments)
	if err != nil {
		return nil, err
	}
	return capability.Handle(ctx, validated)
}

// fallbackText guarantees a non-empty user-facing fallback message.
func fallbackText(content string) string {
	if text := strings.TrimSpace(content); text != "" {
		return text
	}
	return "I can answer questions about your companies and meetings, such as summaries, next steps and action items. What would you like to know?"
}
