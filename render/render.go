// Package render prints user-facing console text. Plain and Styled produce the
// same words; Styled only adds color and a border around banners.
package render

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Renderer interface {
	Banner(title, text string)
	Info(text string)
	Dim(text string)
	Success(text string)
	Warn(text string)
	Error(text string)
	// Prompt starts a new line and writes label without a trailing newline.
	Prompt(label string)
	// Fragment writes streamed model output as-is.
	Fragment(text string)
	Newline()
}

const (
	ModeAuto   = ""
	ModePlain  = "plain"
	ModeStyled = "styled"
)

// New picks a renderer for mode. In auto mode output is styled only when w is
// a terminal.
func New(mode string, w io.Writer) Renderer {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModePlain:
		return NewPlain(w)
	case ModeStyled:
		return NewStyled(w)
	}

	if IsTerminal(w) {
		return NewStyled(w)
	}
	return NewPlain(w)
}

func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
