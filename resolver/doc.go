// Package resolver maps free-text messages onto concrete company and meeting
// records using a strict priority cascade: carried thread context, explicit
// meeting identifiers, temporal language combined with a company mention,
// a semantic meeting hint, and finally a bare company mention with
// auto-selection of the most recent meeting.
//
// Ambiguity is never guessed away: whenever more than one meeting matches the
// same criterion the resolver returns a clarification listing every candidate.
package resolver
