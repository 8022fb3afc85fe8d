package app

import "strings"

const (
	TaskCategorizerTool = "TaskCategorizer"
	NoteSynthesizerTool = "NoteSynthesizer"
)

// ToolRegistry holds the in-memory tool definitions the model may answer with
var ToolRegistry = map[string]ToolDefinition{
	TaskCategorizerTool: {
		Name: TaskCategorizerTool,
		Description: "Classifies and prioritizes a raw task, enforcing minimalist rules. " +
			"Outputs structured data for actionable tasks.",
		Schema: TaskCategorization{},
	},
	NoteSynthesizerTool: {
		Name: NoteSynthesizerTool,
		Description: "Processes long, unstructured text, condensing it into key takeaways " +
			"and identifying any embedded actionable tasks.",
		Schema: NoteSynthesis{},
	},
}

// ToolDefinition represents metadata about a registered tool
type ToolDefinition struct {
	Name        string
	Description string
	Schema      interface{}
}

// Tools returns the registered definitions for the given names, in order.
// Unknown names are skipped.
func Tools(names ...string) []ToolDefinition {
	var defs []ToolDefinition
	for _, name := range names {
		if def, ok := ToolRegistry[name]; ok {
			defs = append(defs, def)
		}
	}
	return defs
}

type Action string

const (
	ActionDo       Action = "do"
	ActionDelegate Action = "delegate"
	ActionDefer    Action = "defer"
	ActionDelete   Action = "delete"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

type ContextTag string

const (
	TagWork     ContextTag = "#Work"
	TagPersonal ContextTag = "#Personal"
	TagLearning ContextTag = "#Learning"
	TagFinance  ContextTag = "#Finance"
)

// TaskCategorization is the output of the TaskCategorizer tool
type TaskCategorization struct {
	RawTaskText string     `json:"raw_task_text" mapstructure:"raw_task_text" validate:"required" jsonschema_description:"The original, unstructured text of the task to be processed."`
	Action      Action     `json:"action" mapstructure:"action" validate:"required,oneof=do delegate defer delete" jsonschema:"enum=do,enum=delegate,enum=defer,enum=delete" jsonschema_description:"The required immediate action for the task."`
	Priority    Priority   `json:"priority" mapstructure:"priority" validate:"required,oneof=high medium low" jsonschema:"enum=high,enum=medium,enum=low" jsonschema_description:"The urgency of the task. At most 3 tasks per session may be high."`
	ContextTag  ContextTag `json:"context_tag" mapstructure:"context_tag" validate:"required,oneof=#Work #Personal #Learning #Finance" jsonschema:"enum=#Work,enum=#Personal,enum=#Learning,enum=#Finance" jsonschema_description:"The relevant area of life for the task. Only one tag is allowed."`
	DueDate     *string    `json:"due_date,omitempty" mapstructure:"due_date" validate:"omitempty,datetime=2006-01-02" jsonschema:"format=date" jsonschema_description:"The required completion date in YYYY-MM-DD format. Omit or null if no specific due date is identified."`
}

// NoteSynthesis is the output of the NoteSynthesizer tool
type NoteSynthesis struct {
	OriginalSource string   `json:"original_source" mapstructure:"original_source" validate:"required" jsonschema_description:"A brief identifier for the source of the note (e.g. 'Meeting with John')."`
	SummaryBullets []string `json:"summary_bullets" mapstructure:"summary_bullets" validate:"required,min=1,max=5,dive,required" jsonschema:"minItems=1,maxItems=5" jsonschema_description:"At most 5 highly condensed bullet points summarizing the key takeaways."`
	ConceptualTags []string `json:"conceptual_tags" mapstructure:"conceptual_tags" validate:"required,max=3,dive,required" jsonschema:"maxItems=3" jsonschema_description:"Up to 3 thematic tags derived from the content (e.g. 'RAG Systems')."`
	EmbeddedTask   *string  `json:"embedded_task,omitempty" mapstructure:"embedded_task" jsonschema_description:"An actionable task found within the note, as raw text. Omit or null when there is none."`
}

// HasEmbeddedTask reports whether the note carries a task to hand off
func (n NoteSynthesis) HasEmbeddedTask() bool {
	return n.EmbeddedTask != nil && strings.TrimSpace(*n.EmbeddedTask) != ""
}

// Result is one tool invocation recorded for output, shaped as
// {"tool_used": ..., "task_output"|"note_output": ...}
type Result struct {
	ToolUsed   string              `json:"tool_used"`
	TaskOutput *TaskCategorization `json:"task_output,omitempty"`
	NoteOutput *NoteSynthesis      `json:"note_output,omitempty"`
}

// ToolCall is a function call returned by the model
type ToolCall struct {
	Name string
	Args map[string]interface{}
}

// Request is a single model call
type Request struct {
	System string
	Prompt string
	Tools  []ToolDefinition
}
