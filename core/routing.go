package core

// Routing is the outcome of one capability routing attempt. Concrete outcome
// types implement the unexported isRouting marker enabling a closed set.
type Routing interface{ isRouting() }

// RoutingDecision selects a named capability with extracted call arguments.
// Arguments may be incomplete; missing identifiers are expected to be filled
// from thread context downstream, not by the router.
type RoutingDecision struct {
	Capability string         `json:"capability"`
	Arguments  map[string]any `json:"arguments"`
}

// isRouting implements the Routing interface for RoutingDecision.
func (RoutingDecision) isRouting() {}

// Fallback carries the free-text response produced when no capability clearly
// applies (greetings, meta-questions) or when the selection output was
// malformed. It is a routine outcome, not an error.
type Fallback struct {
	Text string `json:"text"`
}

// isRouting implements the Routing interface for Fallback.
func (Fallback) isRouting() {}
