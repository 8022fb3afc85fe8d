package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Processor routes an input through the model and hands embedded tasks off
// for categorization
type Processor struct {
	adapter  LLMAdapter
	session  *Session
	recorder EventRecorder
	logger   *zap.Logger
}

type Option func(*Processor)

// WithRecorder records processing events; without it nothing is persisted
func WithRecorder(recorder EventRecorder) Option {
	return func(p *Processor) {
		p.recorder = recorder
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

func WithSession(session *Session) Option {
	return func(p *Processor) {
		if session != nil {
			p.session = session
		}
	}
}

// NewProcessor creates a processor around an LLM adapter
func NewProcessor(adapter LLMAdapter, opts ...Option) *Processor {
	p := &Processor{
		adapter: adapter,
		session: NewSession(DefaultMaxHighPriority),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Session returns the priority budget shared by every input this processor handles
func (p *Processor) Session() *Session {
	return p.session
}

// Process sends the input to the model with both tools available and returns
// the recorded results. A note carrying an embedded task triggers exactly one
// follow-up call restricted to the TaskCategorizer. When the follow-up fails,
// the results gathered so far are returned together with the error.
func (p *Processor) Process(ctx context.Context, inputID, input string) ([]Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}

	p.record(inputID, EventInputReceived, map[string]string{"text": input})

	call, err := p.adapter.Call(ctx, Request{
		System: SystemInstructions,
		Prompt: input,
		Tools:  Tools(TaskCategorizerTool, NoteSynthesizerTool),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process input: %w", err)
	}

	p.logger.Info("Tool called", zap.String("input_id", inputID), zap.String("tool", call.Name))

	switch call.Name {
	case TaskCategorizerTool:
		task, err := DecodeTask(call.Args)
		if err != nil {
			return nil, err
		}
		return []Result{p.acceptTask(inputID, task)}, nil

	case NoteSynthesizerTool:
		note, err := DecodeNote(call.Args)
		if err != nil {
			return nil, err
		}
		results := []Result{{ToolUsed: NoteSynthesizerTool, NoteOutput: note}}
		p.record(inputID, EventNoteSynthesized, note)

		if !note.HasEmbeddedTask() {
			return results, nil
		}

		task, err := p.handoff(ctx, inputID, strings.TrimSpace(*note.EmbeddedTask))
		if errors.Is(err, ErrNoToolCall) {
			p.logger.Warn("Hand-off failed: model did not categorize the embedded task",
				zap.String("input_id", inputID), zap.Error(err))
			p.record(inputID, EventHandoffFailed, map[string]string{
				"embedded_task": *note.EmbeddedTask,
				"error":         err.Error(),
			})
			return results, nil
		}
		if err != nil {
			return results, fmt.Errorf("failed to categorize embedded task: %w", err)
		}
		return append(results, p.acceptTask(inputID, task)), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}
}

func (p *Processor) handoff(ctx context.Context, inputID, embeddedTask string) (*TaskCategorization, error) {
	p.logger.Info("Hand-off: re-routing embedded task to TaskCategorizer",
		zap.String("input_id", inputID), zap.String("embedded_task", embeddedTask))

	call, err := p.adapter.Call(ctx, Request{
		System: SystemInstructions,
		Prompt: HandoffPrompt(embeddedTask),
		Tools:  Tools(TaskCategorizerTool),
	})
	if err != nil {
		return nil, err
	}
	if call.Name != TaskCategorizerTool {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, call.Name)
	}
	return DecodeTask(call.Args)
}

func (p *Processor) acceptTask(inputID string, task *TaskCategorization) Result {
	if p.session.Admit(task) {
		p.logger.Info("Priority downgraded: high priority budget exhausted",
			zap.String("input_id", inputID),
			zap.String("task", task.RawTaskText),
			zap.Int("high_count", p.session.HighCount()))
	}
	p.record(inputID, EventTaskCategorized, task)
	return Result{ToolUsed: TaskCategorizerTool, TaskOutput: task}
}

func (p *Processor) record(inputID string, eventType EventType, payload interface{}) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.Record(inputID, eventType, payload); err != nil {
		p.logger.Warn("Failed to record event", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
