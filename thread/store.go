// Package thread manages conversational state for message threads: deciding
// whether a reply should reuse previously resolved entities, surfacing
// outstanding clarification questions and short-lived interpretation offers,
// and storing the last interaction per thread.
//
// Thread state deliberately carries resolved entity IDs and routing metadata
// only; generated answer text never persists across turns.
package thread

import (
	"context"
	"sync"
	"time"

	"github.com/leverageai/dealdesk/core"
)

// Interaction is the retained record of the last completed turn in a thread.
type Interaction struct {
	ID string `json:"id"`
	// Context holds the entity IDs resolved during the turn.
	Context core.ThreadContext `json:"context"`
	// QuestionText is the original user question of the turn.
	QuestionText string `json:"question_text,omitempty"`
	// ResponseType records what kind of response was given
	// ("answer", "clarification", "fallback").
	ResponseType string `json:"response_type,omitempty"`
	// PendingQuestion is an outstanding clarification awaiting the user.
	PendingQuestion string `json:"pending_question,omitempty"`
	// ProposedInterpretation is a previously offered reading of the request,
	// kept so numbered or "yes" replies can be tied back to it.
	ProposedInterpretation string    `json:"proposed_interpretation,omitempty"`
	Timestamp              time.Time `json:"timestamp"`
}

// Clone returns a copy safe for independent mutation.
func (i *Interaction) Clone() *Interaction {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}

// Store persists the last interaction per thread. Reads are non-fatal for the
// pipeline: on failure callers log and proceed with empty context.
type Store interface {
	// LastInteraction returns the thread's last interaction, or (nil, nil)
	// when the thread has no history.
	LastInteraction(ctx context.Context, threadID string) (*Interaction, error)

	// SaveInteraction writes back the newly completed turn. Write-back is the
	// caller's responsibility after resolution completes; the manager itself
	// never mutates stored state.
	SaveInteraction(ctx context.Context, threadID string, interaction *Interaction) error
}

// InMemoryStore is a volatile Store implementation keeping interactions in a
// process local map. It is safe for concurrent access and best suited for
// tests or ephemeral demo servers. Each returned interaction is cloned to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu           sync.RWMutex
	interactions map[string]*Interaction
}

// NewInMemoryStore constructs an empty in-memory thread store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{interactions: make(map[string]*Interaction)}
}

// LastInteraction implements Store.
func (s *InMemoryStore) LastInteraction(_ context.Context, threadID string) (*Interaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.interactions[threadID].Clone(), nil
}

// SaveInteraction implements Store.
func (s *InMemoryStore) SaveInteraction(_ context.Context, threadID string, interaction *Interaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interactions[threadID] = interaction.Clone()
	return nil
}
