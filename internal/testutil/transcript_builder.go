package testutil

import "github.com/leverageai/dealdesk/core"

// TranscriptBuilder helps construct ordered transcript fixtures.
// Example:
//
//	chunks := NewTranscriptBuilder().
//		Team("Sarah", "I'll share my screen").
//		Customer("Mike Chen", "Can you see it now?").
//		Build()
type TranscriptBuilder struct {
	chunks []core.TranscriptChunk
}

// NewTranscriptBuilder creates an empty transcript builder.
func NewTranscriptBuilder() *TranscriptBuilder {
	return &TranscriptBuilder{}
}

// Team appends a chunk spoken by the internal team (chainable).
func (b *TranscriptBuilder) Team(speaker, text string) *TranscriptBuilder {
	return b.add(core.SpeakerLeverage, speaker, text)
}

// Customer appends a chunk spoken by the customer side (chainable).
func (b *TranscriptBuilder) Customer(speaker, text string) *TranscriptBuilder {
	return b.add(core.SpeakerCustomer, speaker, text)
}

// Unknown appends a chunk with unattributed speaker side (chainable).
func (b *TranscriptBuilder) Unknown(text string) *TranscriptBuilder {
	return b.add(core.SpeakerUnknown, "", text)
}

func (b *TranscriptBuilder) add(role core.SpeakerRole, speaker, text string) *TranscriptBuilder {
	b.chunks = append(b.chunks, core.TranscriptChunk{
		Index:       len(b.chunks),
		SpeakerRole: role,
		SpeakerName: speaker,
		Text:        text,
	})
	return b
}

// Build returns the ordered chunk slice.
func (b *TranscriptBuilder) Build() []core.TranscriptChunk {
	return b.chunks
}
