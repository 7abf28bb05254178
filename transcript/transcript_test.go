package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var stamp = time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	return string(data)
}

func TestOpenWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historial.md")

	if _, err := Open(path, stamp); err != nil {
		t.Fatalf("Open: %v", err)
	}

	got := read(t, path)
	want := "\n\n--- NUEVA SESIÓN: 2026-10-17 09:30:00 ---\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAppendEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historial.md")

	tr, err := Open(path, stamp)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := tr.Append(RoleUser, "hello"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := tr.Append(RoleModel, "X"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := read(t, path)
	want := "\n\n--- NUEVA SESIÓN: 2026-10-17 09:30:00 ---\n" +
		"\n**USUARIO:**\nhello\n" +
		"\n**GEMINI:**\nX\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReopenIsAdditive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "historial.md")

	first, err := Open(path, stamp)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Append(RoleUser, "primera"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	before := read(t, path)

	second, err := Open(path, stamp.Add(time.Hour))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := second.Append(RoleUser, "segunda"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	after := read(t, path)
	if !strings.HasPrefix(after, before) {
		t.Fatalf("reopen lost prior content:\n%s", after)
	}
	if strings.Count(after, "--- NUEVA SESIÓN:") != 2 {
		t.Errorf("expected two session headers, got:\n%s", after)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "nested", "historial.md")

	tr, err := Open(path, stamp)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if tr.Path() != path {
		t.Errorf("got %q, want %q", tr.Path(), path)
	}
}
