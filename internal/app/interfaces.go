package app

import "context"

// LLMAdapter defines the interface for interacting with an LLM provider
type LLMAdapter interface {
	// Call sends the prompt under the request's system instruction and returns
	// the tool call the model answered with. Implementations must constrain the
	// model to the request's tools and return ErrNoToolCall when it answers
	// without one.
	Call(ctx context.Context, req Request) (*ToolCall, error)
}

// EventRecorder persists what happened while processing an input
type EventRecorder interface {
	Record(inputID string, eventType EventType, payload interface{}) error
}
