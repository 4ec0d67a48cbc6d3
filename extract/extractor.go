package extract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/logging"
	"github.com/leverageai/dealdesk/model"
)

// ErrEmptyExtraction is returned when the model produced no parsable
// structured output at all. There is no silent empty-result fallback.
var ErrEmptyExtraction = errors.New("extract: model returned no structured output")

// Attendees carries the canonical attendee name lists for one meeting.
type Attendees struct {
	Team     []string
	Customer []string
}

// All returns the combined roster used for owner normalization.
func (a Attendees) All() []string {
	all := make([]string, 0, len(a.Team)+len(a.Customer))
	all = append(all, a.Team...)
	all = append(all, a.Customer...)
	return all
}

// Result is the bucketed outcome of one extraction call. Items below the
// secondary confidence floor are discarded entirely.
type Result struct {
	Primary   []core.ActionItem
	Secondary []core.ActionItem
}

// Options configure the Extractor.
type Options struct {
	Logger logging.Logger
	// MaxTokens bounds the extraction response size.
	MaxTokens int64
}

// Extractor produces normalized two-tier action item lists from transcript
// chunks. It is stateless and safe for concurrent use.
type Extractor struct {
	mdl       model.Model
	logger    logging.Logger
	maxTokens int64
}

// New creates an Extractor over the given model.
func New(mdl model.Model, optFns ...func(o *Options)) *Extractor {
	opts := Options{Logger: logging.NoOpLogger{}, MaxTokens: 8192}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Extractor{mdl: mdl, logger: opts.Logger, maxTokens: opts.MaxTokens}
}

// rawItem is the wire shape of one extracted item before normalization.
type rawItem struct {
	Action     string  `json:"action"`
	Owner      string  `json:"owner"`
	Type       string  `json:"type"`
	Deadline   string  `json:"deadline"`
	Evidence   string  `json:"evidence"`
	Confidence float64 `json:"confidence"`
}

// recordPayload is the argument payload of the extraction tool call.
type recordPayload struct {
	ActionItems []rawItem `json:"action_items"`
}

// Extract issues one structured extraction request for the meeting's ordered
// transcript chunks and post-processes the response deterministically: owner
// normalization against the attendee roster, deadline defaulting, and
// confidence bucketing into primary (>= 0.85) and secondary (0.70-0.84).
//
// Model failures and unparsable responses are propagated as errors.
func (e *Extractor) Extract(ctx context.Context, chunks []core.TranscriptChunk, attendees Attendees) (*Result, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("extract: no transcript chunks")
	}

	start := time.Now()
	resp, err := e.mdl.Submit(ctx, model.Request{
		Instructions: extractionInstructions,
		UserContent:  buildUserContent(chunks, attendees),
		Tools: []model.ToolDefinition{{
			Name:        recordToolName,
			Description: "Record the final list of extracted action items",
			Parameters:  recordToolSchema(),
		}},
		Temperature: 0,
		MaxTokens:   e.maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("extraction model call: %w", err)
	}
	if resp.Refusal != "" {
		return nil, fmt.Errorf("extraction refused: %s", resp.Refusal)
	}

	items, err := parseItems(resp)
	if err != nil {
		return nil, err
	}

	result := e.normalize(items, attendees.All())
	e.logger.Info("extract.done",
		"chunks", len(chunks),
		"primary", len(result.Primary),
		"secondary", len(result.Secondary),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, nil
}

// parseItems accepts the expected tool call or, as a fallback, a strict JSON
// body. Anything else is a hard error.
func parseItems(resp *model.Response) ([]rawItem, error) {
	if resp.ToolCall != nil {
		if resp.ToolCall.Name != recordToolName {
			return nil, fmt.Errorf("extract: unexpected tool call %q", resp.ToolCall.Name)
		}
		var payload recordPayload
		if err := json.Unmarshal(resp.ToolCall.Arguments, &payload); err != nil {
			return nil, fmt.Errorf("extract: malformed tool arguments: %w", err)
		}
		return payload.ActionItems, nil
	}

	body := strings.TrimSpace(resp.Content)
	if body == "" {
		return nil, ErrEmptyExtraction
	}
	var payload recordPayload
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.ActionItems != nil {
		return payload.ActionItems, nil
	}
	var items []rawItem
	if err := json.Unmarshal([]byte(body), &items); err != nil {
		return nil, fmt.Errorf("extract: unparsable response body: %w", err)
	}
	return items, nil
}

// normalize applies the deterministic local post-processing pipeline.
func (e *Extractor) normalize(items []rawItem, canonical []string) *Result {
	result := &Result{}
	for _, item := range items {
		normalized := core.ActionItem{
			Action:     strings.TrimSpace(item.Action),
			Owner:      NormalizeOwner(item.Owner, canonical),
			Type:       core.ActionType(item.Type),
			Deadline:   normalizeDeadline(item.Deadline),
			Evidence:   item.Evidence,
			Confidence: item.Confidence,
		}
		switch {
		case normalized.Primary():
			result.Primary = append(result.Primary, normalized)
		case normalized.Secondary():
			result.Secondary = append(result.Secondary, normalized)
		default:
			e.logger.Debug("extract.discarded", "action", normalized.Action, "confidence", normalized.Confidence)
		}
	}
	return result
}
