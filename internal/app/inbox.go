package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReadInput resolves the raw text to process. With fromFile set the operand is a
// path, and "-" reads from stdin.
func ReadInput(operand string, fromFile bool, stdin io.Reader) (string, error) {
	content := operand

	if fromFile {
		var data []byte
		var err error
		if operand == "-" {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(operand)
		}
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		content = string(data)
	}

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyInput
	}
	return content, nil
}

// NewInputID returns a timestamp-based ID with a random suffix (YYYYMMDD-HHMMSS-xxxxxxxx)
func NewInputID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s", now.Format("20060102-150405"), suffix)
}

// ArchiveInput writes the input to dir as <id>.txt
func ArchiveInput(dir, inputID, content string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create inbox directory: %w", err)
	}

	path := filepath.Join(dir, inputID+".txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write input: %w", err)
	}

	return path, nil
}
