package render

import (
	"fmt"
	"io"
)

type Plain struct {
	w io.Writer
}

func NewPlain(w io.Writer) *Plain {
	return &Plain{w: w}
}

func (p *Plain) Banner(title, text string) {
	fmt.Fprintf(p.w, "%s\n%s\n", title, text)
}

func (p *Plain) Info(text string)    { p.line(text) }
func (p *Plain) Dim(text string)     { p.line(text) }
func (p *Plain) Success(text string) { p.line(text) }
func (p *Plain) Warn(text string)    { p.line(text) }
func (p *Plain) Error(text string)   { p.line(text) }

func (p *Plain) Prompt(label string) {
	fmt.Fprint(p.w, "\n"+label)
}

func (p *Plain) Fragment(text string) {
	_, _ = io.WriteString(p.w, text)
}

func (p *Plain) Newline() {
	_, _ = io.WriteString(p.w, "\n")
}

func (p *Plain) line(text string) {
	fmt.Fprintln(p.w, text)
}
