// Package transcript appends chat turns to a human-readable markdown log that
// accumulates across runs.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const DefaultPath = "historial_sesion.md"

const (
	RoleUser  = "Usuario"
	RoleModel = "Gemini"
)

const timestampLayout = "2006-01-02 15:04:05"

// Transcript is an append-only log file. Each write opens, appends and closes
// the file, so there is never an open handle between turns.
type Transcript struct {
	path string
}

// Open appends a session header stamped with now and returns the transcript.
// Existing content is never truncated.
func Open(path string, now time.Time) (*Transcript, error) {
	if path == "" {
		path = DefaultPath
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create transcript dir: %w", err)
		}
	}

	t := &Transcript{path: path}
	header := fmt.Sprintf("\n\n--- NUEVA SESIÓN: %s ---\n", now.Format(timestampLayout))
	if err := t.write(header); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Transcript) Path() string {
	return t.path
}

// Append writes one entry as a bold upper-cased role header followed by text.
func (t *Transcript) Append(role, text string) error {
	return t.write(fmt.Sprintf("\n**%s:**\n%s\n", strings.ToUpper(role), text))
}

func (t *Transcript) write(s string) error {
	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}

	if _, err := f.WriteString(s); err != nil {
		_ = f.Close()
		return fmt.Errorf("write transcript: %w", err)
	}

	return f.Close()
}
