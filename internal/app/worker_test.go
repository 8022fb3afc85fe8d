package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// mockLLMAdapter is a mock implementation of LLMAdapter for testing.
// It answers each call with the next scripted response.
type mockLLMAdapter struct {
	responses []mockResponse
	requests  []Request
}

type mockResponse struct {
	call *ToolCall
	err  error
}

func (m *mockLLMAdapter) Call(ctx context.Context, req Request) (*ToolCall, error) {
	m.requests = append(m.requests, req)
	if len(m.requests) > len(m.responses) {
		return nil, errors.New("unexpected model call")
	}
	resp := m.responses[len(m.requests)-1]
	return resp.call, resp.err
}

func taskCall(text string, priority Priority) *ToolCall {
	return &ToolCall{
		Name: TaskCategorizerTool,
		Args: map[string]interface{}{
			"raw_task_text": text,
			"action":        "do",
			"priority":      string(priority),
			"context_tag":   "#Work",
		},
	}
}

func noteCall(embeddedTask interface{}) *ToolCall {
	return &ToolCall{
		Name: NoteSynthesizerTool,
		Args: map[string]interface{}{
			"original_source": "Meeting summary",
			"summary_bullets": []interface{}{"Scaling issues", "Budget follow-up"},
			"conceptual_tags": []interface{}{"RAG Systems"},
			"embedded_task":   embeddedTask,
		},
	}
}

func TestProcess_TaskInput(t *testing.T) {
	adapter := &mockLLMAdapter{responses: []mockResponse{
		{call: taskCall("Need to review the Q3 report by Friday.", PriorityHigh)},
	}}
	processor := NewProcessor(adapter, WithLogger(zaptest.NewLogger(t)))

	results, err := processor.Process(context.Background(), "", "Need to review the Q3 report by Friday.")
	require.NoError(t, err)

	require.Len(t, adapter.requests, 1)
	assert.Equal(t, SystemInstructions, adapter.requests[0].System)
	assert.Equal(t, "Need to review the Q3 report by Friday.", adapter.requests[0].Prompt)
	require.Len(t, adapter.requests[0].Tools, 2)

	require.Len(t, results, 1)
	assert.Equal(t, TaskCategorizerTool, results[0].ToolUsed)
	require.NotNil(t, results[0].TaskOutput)
	assert.Nil(t, results[0].NoteOutput)
	assert.Equal(t, PriorityHigh, results[0].TaskOutput.Priority)
	assert.Equal(t, 1, processor.Session().HighCount())
}

func TestProcess_NoteHandoff(t *testing.T) {
	adapter := &mockLLMAdapter{responses: []mockResponse{
		{call: noteCall("Follow up with Jane on the final budget")},
		{call: taskCall("Follow up with Jane on the final budget", PriorityMedium)},
	}}
	processor := NewProcessor(adapter, WithLogger(zaptest.NewLogger(t)))

	results, err := processor.Process(context.Background(), "", "Meeting summary from yesterday...")
	require.NoError(t, err)

	require.Len(t, adapter.requests, 2)
	followUp := adapter.requests[1]
	assert.Equal(t, HandoffPrompt("Follow up with Jane on the final budget"), followUp.Prompt)
	require.Len(t, followUp.Tools, 1)
	assert.Equal(t, TaskCategorizerTool, followUp.Tools[0].Name)

	require.Len(t, results, 2)
	assert.Equal(t, NoteSynthesizerTool, results[0].ToolUsed)
	assert.Equal(t, TaskCategorizerTool, results[1].ToolUsed)
}

func TestProcess_NoteWithoutTask(t *testing.T) {
	for name, embedded := range map[string]interface{}{
		"null":  nil,
		"blank": "   ",
	} {
		t.Run(name, func(t *testing.T) {
			adapter := &mockLLMAdapter{responses: []mockResponse{{call: noteCall(embedded)}}}
			processor := NewProcessor(adapter)

			results, err := processor.Process(context.Background(), "", "Some long note")
			require.NoError(t, err)
			assert.Len(t, adapter.requests, 1)
			require.Len(t, results, 1)
			assert.Equal(t, NoteSynthesizerTool, results[0].ToolUsed)
		})
	}
}

func TestProcess_HandoffWithoutToolCall(t *testing.T) {
	adapter := &mockLLMAdapter{responses: []mockResponse{
		{call: noteCall("Follow up with Jane")},
		{err: ErrNoToolCall},
	}}
	recorder := &memoryRecorder{}
	processor := NewProcessor(adapter, WithRecorder(recorder))

	results, err := processor.Process(context.Background(), "input-1", "Some long note")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, NoteSynthesizerTool, results[0].ToolUsed)
	assert.Equal(t, []EventType{EventInputReceived, EventNoteSynthesized, EventHandoffFailed}, recorder.types())
}

func TestProcess_HandoffError(t *testing.T) {
	apiErr := errors.New("503 service unavailable")
	adapter := &mockLLMAdapter{responses: []mockResponse{
		{call: noteCall("Follow up with Jane")},
		{err: apiErr},
	}}
	processor := NewProcessor(adapter)

	results, err := processor.Process(context.Background(), "", "Some long note")
	require.ErrorIs(t, err, apiErr)
	require.Len(t, results, 1)
	assert.Equal(t, NoteSynthesizerTool, results[0].ToolUsed)
}

func TestProcess_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		resp    mockResponse
		wantErr error
	}{
		{
			name:    "empty input",
			input:   "  \n",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "no tool call",
			input:   "hello",
			resp:    mockResponse{err: ErrNoToolCall},
			wantErr: ErrNoToolCall,
		},
		{
			name:    "unknown tool",
			input:   "hello",
			resp:    mockResponse{call: &ToolCall{Name: "Calendar", Args: map[string]interface{}{}}},
			wantErr: ErrUnknownTool,
		},
		{
			name:  "invalid enum",
			input: "hello",
			resp: mockResponse{call: &ToolCall{Name: TaskCategorizerTool, Args: map[string]interface{}{
				"raw_task_text": "hello",
				"action":        "procrastinate",
				"priority":      "low",
				"context_tag":   "#Work",
			}}},
			wantErr: ErrSchemaViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := &mockLLMAdapter{responses: []mockResponse{tt.resp}}
			results, err := NewProcessor(adapter).Process(context.Background(), "", tt.input)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, results)
		})
	}
}

func TestProcess_HighPriorityBudget(t *testing.T) {
	var responses []mockResponse
	for i := 0; i < 4; i++ {
		responses = append(responses, mockResponse{call: taskCall("urgent thing", PriorityHigh)})
	}
	adapter := &mockLLMAdapter{responses: responses}
	processor := NewProcessor(adapter, WithSession(NewSession(3)))

	var priorities []Priority
	for i := 0; i < 4; i++ {
		results, err := processor.Process(context.Background(), "", "urgent thing")
		require.NoError(t, err)
		priorities = append(priorities, results[0].TaskOutput.Priority)
	}

	assert.Equal(t, []Priority{PriorityHigh, PriorityHigh, PriorityHigh, PriorityMedium}, priorities)
	assert.Equal(t, 3, processor.Session().HighCount())
}

func TestProcess_RecordsEvents(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	defer db.Close()
	store := NewEventStore(db)

	adapter := &mockLLMAdapter{responses: []mockResponse{
		{call: noteCall("Follow up with Jane on the final budget")},
		{call: taskCall("Follow up with Jane on the final budget", PriorityHigh)},
	}}
	processor := NewProcessor(adapter, WithRecorder(store))

	inputID := "20251120-143022-a1b2c3d4"
	_, err = processor.Process(context.Background(), inputID, "Meeting summary from yesterday...")
	require.NoError(t, err)

	events, err := store.List(0)
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, EventInputReceived, events[0].Type)
	assert.Equal(t, EventNoteSynthesized, events[1].Type)
	assert.Equal(t, EventTaskCategorized, events[2].Type)
	for _, event := range events {
		assert.Equal(t, inputID, event.SourceInputID)
	}
	assert.JSONEq(t, `{"text":"Meeting summary from yesterday..."}`, events[0].PayloadJSON)
	assert.Contains(t, events[2].PayloadJSON, `"context_tag":"#Work"`)
}

type memoryRecorder struct {
	events []EventType
}

func (m *memoryRecorder) Record(inputID string, eventType EventType, payload interface{}) error {
	m.events = append(m.events, eventType)
	return nil
}

func (m *memoryRecorder) types() []EventType {
	return m.events
}
