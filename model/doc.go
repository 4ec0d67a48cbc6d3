// Package model defines the language-model capability contract consumed by the
// router and extractor: a normalized Request (system instructions, user
// content, optional tool schemas) submitted for a single completed Response
// (content, tool call or explicit refusal). Provider adapters live in
// subpackages (openai, anthropic); a MockModel supports deterministic tests.
//
// The core treats the model as a black box with bounded latency under a
// caller-supplied timeout. Errors are always propagated, never converted into
// partial structured output.
package model
