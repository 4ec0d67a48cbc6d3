package router

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leverageai/dealdesk/core"
	"github.com/leverageai/dealdesk/model"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	registry, err := NewRegistry(
		NewFuncCapability(
			"get_next_steps",
			"List the agreed next steps from a meeting",
			map[string]any{
				"type": "object",
				"properties": map[string]any{
					"meeting_id": map[string]any{"type": "string"},
				},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				return args, nil
			},
		),
		NewFuncCapability(
			"get_meeting_summary",
			"Summarize a meeting",
			map[string]any{
				"type":       "object",
				"properties": map[string]any{"meeting_id": map[string]any{"type": "string"}},
				"required":   []string{"meeting_id"},
			},
			func(_ context.Context, args map[string]any) (any, error) {
				return "summary of " + args["meeting_id"].(string), nil
			},
		),
	)
	require.NoError(t, err)
	return registry
}

// -------------------- Selection --------------------

func TestRoute_SelectsCapability(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.AddToolCall("next steps from the ACE call", "get_next_steps", `{"meeting_id":"mtg_1"}`)
	r := New(mock, newTestRegistry(t))

	routing, err := r.Route(context.Background(), "next steps from the ACE call")
	require.NoError(t, err)

	decision, ok := routing.(core.RoutingDecision)
	require.True(t, ok, "got %T", routing)
	assert.Equal(t, "get_next_steps", decision.Capability)
	assert.Equal(t, "mtg_1", decision.Arguments["meeting_id"])

	// The selection request carries the full registry at zero temperature.
	require.NotNil(t, mock.LastRequest)
	require.Len(t, mock.LastRequest.Tools, 2)
	assert.Equal(t, "get_next_steps", mock.LastRequest.Tools[0].Name)
	assert.Zero(t, mock.LastRequest.Temperature)
}

func TestRoute_ModelErrorPropagates(t *testing.T) {
	mock := model.NewMockModel("test")
	wantErr := errors.New("rate limited")
	mock.Fail(wantErr)
	r := New(mock, newTestRegistry(t))

	_, err := r.Route(context.Background(), "anything")
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

// -------------------- Fallback paths --------------------

func TestRoute_NoSelectionFallsBack(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.AddResponse("hello there", "Hi! Ask me about your meetings.")
	r := New(mock, newTestRegistry(t))

	routing, err := r.Route(context.Background(), "hello there")
	require.NoError(t, err)

	fb, ok := routing.(core.Fallback)
	require.True(t, ok, "got %T", routing)
	assert.Equal(t, "Hi! Ask me about your meetings.", fb.Text)
}

func TestRoute_RefusalFallsBack(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.AddRefusal("bad request", "I can't help with that.")
	r := New(mock, newTestRegistry(t))

	routing, err := r.Route(context.Background(), "bad request")
	require.NoError(t, err)

	fb, ok := routing.(core.Fallback)
	require.True(t, ok, "got %T", routing)
	assert.NotEmpty(t, fb.Text)
}

func TestRoute_UnknownCapabilityFallsBack(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.AddToolCall("do something", "made_up_capability", `{}`)
	r := New(mock, newTestRegistry(t))

	routing, err := r.Route(context.Background(), "do something")
	require.NoError(t, err)
	assert.IsType(t, core.Fallback{}, routing)
}

func TestRoute_MalformedArgumentsFallBack(t *testing.T) {
	mock := model.NewMockModel("test")
	mock.AddToolCall("next steps", "get_next_steps", `{"meeting_id": `)
	r := New(mock, newTestRegistry(t))

	routing, err := r.Route(context.Background(), "next steps")
	require.NoError(t, err)

	// Malformed selection output degrades to fallback, never to an error and
	// never to an invented call.
	fb, ok := routing.(core.Fallback)
	require.True(t, ok, "got %T", routing)
	assert.NotEmpty(t, fb.Text)
}

// -------------------- Dispatch --------------------

func TestDispatch_ValidateThenHandle(t *testing.T) {
	r := New(model.NewMockModel("test"), newTestRegistry(t))

	result, err := r.Dispatch(context.Background(), core.RoutingDecision{
		Capability: "get_meeting_summary",
		Arguments:  map[string]any{"meeting_id": "mtg_1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "summary of mtg_1", result)
}

func TestDispatch_ValidationFailure(t *testing.T) {
	r := New(model.NewMockModel("test"), newTestRegistry(t))

	_, err := r.Dispatch(context.Background(), core.RoutingDecision{
		Capability: "get_meeting_summary",
		Arguments:  map[string]any{},
	})
	require.Error(t, err)

	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "VALIDATION_ERROR", capErr.Code)
	assert.Equal(t, "get_meeting_summary", capErr.Capability)
}

func TestDispatch_UnknownCapability(t *testing.T) {
	r := New(model.NewMockModel("test"), newTestRegistry(t))

	_, err := r.Dispatch(context.Background(), core.RoutingDecision{Capability: "nope"})
	require.Error(t, err)

	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "UNKNOWN_CAPABILITY", capErr.Code)
}

func TestDispatch_ExecutionErrorWrapped(t *testing.T) {
	registry, err := NewRegistry(NewFuncCapability(
		"explode", "Always fails",
		map[string]any{"type": "object", "properties": map[string]any{}},
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, errors.New("backend down")
		},
	))
	require.NoError(t, err)
	r := New(model.NewMockModel("test"), registry)

	_, err = r.Dispatch(context.Background(), core.RoutingDecision{Capability: "explode"})
	require.Error(t, err)

	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, "EXECUTION_ERROR", capErr.Code)
	assert.Contains(t, capErr.Message, "backend down")
}
