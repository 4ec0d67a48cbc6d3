// Package core provides the foundational domain types used across DealDesk.
// It defines the shared abstractions for:
//
//   - Entity references (companies and meetings with distinct identity namespaces)
//   - Thread context carried across conversational turns (resolved IDs only)
//   - Resolution outcomes as a closed tagged union (resolved / clarification / unresolved)
//   - Routing outcomes (capability selection or free-text fallback)
//   - Transcript chunks and extracted action items
//
// The package intentionally keeps implementation concerns (persistence, model
// calls, orchestration) out of scope, exposing small value types so components
// can exchange results without depending on each other. All exported
// identifiers include concise documentation to aid discoverability.
package core
