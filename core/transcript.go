package core

// SpeakerRole identifies which side of the call a transcript chunk belongs to.
type SpeakerRole string

const (
	// SpeakerLeverage marks a chunk spoken by the internal team.
	SpeakerLeverage SpeakerRole = "leverage"
	// SpeakerCustomer marks a chunk spoken by the customer side.
	SpeakerCustomer SpeakerRole = "customer"
	// SpeakerUnknown marks a chunk whose side could not be attributed.
	SpeakerUnknown SpeakerRole = "unknown"
)

// TranscriptChunk is one ordered, append-only segment of a meeting transcript.
// Chunks are produced by an external ingestion collaborator; this core only
// reads them.
type TranscriptChunk struct {
	Index       int         `json:"chunk_index"`
	SpeakerRole SpeakerRole `json:"speaker_role"`
	SpeakerName string      `json:"speaker_name,omitempty"`
	Text        string      `json:"text"`
}
