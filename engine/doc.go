// Package engine orchestrates one conversational turn end to end: it loads
// the thread's last interaction, decides context reuse, runs entity
// resolution and capability routing concurrently, and writes the updated
// thread state back.
//
// The engine owns turn-level error semantics. Thread store reads are
// non-fatal (a failed read degrades to an empty context), while model call
// failures from routing propagate to the caller. Resolution ambiguity is a
// value, never an error, and always short-circuits capability dispatch.
package engine
