// Package router implements the capability selection subsystem: a registry of
// schema-described capabilities, a model-backed router that classifies a
// message against the registry, and uniform validate/handle dispatch keyed by
// capability name.
package router

import (
	"context"
	"fmt"
	"time"

	"github.com/leverageai/dealdesk/internal/util"
	"github.com/leverageai/dealdesk/logging"
)

// Capability is a named, schema-described unit of functionality the router
// can select. Descriptors (name, description, schema) are immutable at
// request time; behavior follows the uniform validate/handle contract so
// dispatch stays a plain lookup-table call.
//
// Capability implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for arguments
//   - Handle errors gracefully
//   - Be thread-safe if used concurrently
type Capability interface {
	// Name returns the unique identifier for this capability.
	// Names should follow function naming conventions (snake_case recommended).
	Name() string

	// Description returns a human-readable description of what this
	// capability does. It is provided to the model to guide selection.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Validate checks raw extracted arguments against the schema and returns
	// the typed argument value Handle expects.
	Validate(args map[string]any) (any, error)

	// Handle executes the capability with validated arguments.
	Handle(ctx context.Context, args any) (any, error)
}

// ValidationError represents argument validation errors with detailed information.
type ValidationError = util.ValidationError

// CapabilityError represents errors that occur during capability dispatch.
type CapabilityError struct {
	Capability string `json:"capability"`        // Name of the capability that failed
	Message    string `json:"message"`           // Error message
	Code       string `json:"code"`              // Error code for categorization
	Details    any    `json:"details,omitempty"` // Additional error details
}

func (e *CapabilityError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("capability error [%s] in %s: %s", e.Code, e.Capability, e.Message)
	}
	return fmt.Sprintf("capability error in %s: %s", e.Capability, e.Message)
}

// FuncCapability is a generic adapter that exposes a plain Go function as a
// capability. It validates arguments against the declared schema before
// invocation and normalizes failures into *CapabilityError with consistent
// codes (VALIDATION_ERROR for schema mismatches, EXECUTION_ERROR otherwise;
// custom codes are preserved when the function returns *CapabilityError
// directly).
//
// A FuncCapability has no internal mutable state after construction and is
// safe for concurrent use by multiple goroutines.
type FuncCapability struct {
	name        string
	description string
	parameters  map[string]any
	logger      logging.Logger
	fn          func(ctx context.Context, args map[string]any) (any, error)
}

// NewFuncCapability constructs a FuncCapability from explicit schema and function.
//
// Example:
//
//	getSteps := NewFuncCapability(
//	  "get_next_steps",
//	  "List the agreed next steps from a meeting",
//	  map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	      "meeting_id": map[string]any{"type": "string"},
//	    },
//	  },
//	  func(ctx context.Context, args map[string]any) (any, error) { ... },
//	)
func NewFuncCapability(
	name, description string,
	parameters map[string]any,
	fn func(ctx context.Context, args map[string]any) (any, error),
	optFns ...func(o *CapabilityOptions),
) *FuncCapability {
	opts := CapabilityOptions{Logger: logging.NoOpLogger{}}
	for _, optFn := range optFns {
		optFn(&opts)
	}
	return &FuncCapability{
		name:        name,
		description: description,
		parameters:  parameters,
		logger:      opts.Logger,
		fn:          fn,
	}
}

// CapabilityOptions configure a FuncCapability.
type CapabilityOptions struct {
	Logger logging.Logger
}

// NewFuncCapabilityFromStruct derives the argument schema from a struct using
// reflection, equivalent to util.CreateSchema(structType).
func NewFuncCapabilityFromStruct(
	name, description string,
	structType any,
	fn func(ctx context.Context, args map[string]any) (any, error),
	optFns ...func(o *CapabilityOptions),
) *FuncCapability {
	return NewFuncCapability(name, description, util.CreateSchema(structType), fn, optFns...)
}

// Name returns the unique capability name used in selection and dispatch.
func (c *FuncCapability) Name() string { return c.name }

// Description returns the short natural language description exposed to models.
func (c *FuncCapability) Description() string { return c.description }

// Parameters returns the (minimal) JSON schema describing expected arguments.
func (c *FuncCapability) Parameters() map[string]any { return c.parameters }

// Validate checks args against the declared schema. The validated value is
// the args map itself; typed decoding is left to the handler.
func (c *FuncCapability) Validate(args map[string]any) (any, error) {
	if args == nil {
		args = map[string]any{}
	}
	if err := util.ValidateParameters(args, c.parameters); err != nil {
		c.logger.Warn("capability.validation_failed", "capability", c.name, "error", err.Error())
		return nil, &CapabilityError{
			Capability: c.name,
			Message:    fmt.Sprintf("argument validation failed: %v", err),
			Code:       "VALIDATION_ERROR",
			Details:    err,
		}
	}
	return args, nil
}

// Handle invokes the underlying function with validated arguments.
func (c *FuncCapability) Handle(ctx context.Context, args any) (any, error) {
	argMap, ok := args.(map[string]any)
	if !ok {
		return nil, &CapabilityError{
			Capability: c.name,
			Message:    fmt.Sprintf("expected map arguments, got %T", args),
			Code:       "VALIDATION_ERROR",
		}
	}

	start := time.Now()
	result, err := c.fn(ctx, argMap)
	if err != nil {
		if capErr, ok := err.(*CapabilityError); ok {
			c.logger.Error("capability.handle.error", "capability", c.name, "error", capErr.Message)
			return nil, capErr
		}
		c.logger.Error("capability.handle.error", "capability", c.name, "error", err.Error())
		return nil, &CapabilityError{
			Capability: c.name,
			Message:    err.Error(),
			Code:       "EXECUTION_ERROR",
		}
	}

	c.logger.Info("capability.handle.success", "capability", c.name, "duration_ms", time.Since(start).Milliseconds())
	return result, nil
}
