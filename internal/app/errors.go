package app

import "errors"

var (
	ErrEmptyInput      = errors.New("input is empty")
	ErrNoToolCall      = errors.New("model did not call a tool")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrSchemaViolation = errors.New("tool output does not match schema")
)
