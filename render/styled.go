package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	colorAccent  = lipgloss.Color("#22c55e")
	colorPrompt  = lipgloss.Color("#06b6d4")
	colorPrimary = lipgloss.Color("#e0e0e8")
	colorDim     = lipgloss.Color("#5a5a70")
	colorWarning = lipgloss.Color("#eab308")
	colorError   = lipgloss.Color("#ef4444")
)

// Styled renders with lipgloss. The color profile is detected from w and
// raised to 256 colors when w is not a terminal, so forced styling still
// colors piped output.
type Styled struct {
	w io.Writer

	banner  lipgloss.Style
	title   lipgloss.Style
	info    lipgloss.Style
	dim     lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	prompt  lipgloss.Style
}

func NewStyled(w io.Writer) *Styled {
	r := lipgloss.NewRenderer(w)
	if r.ColorProfile() == termenv.Ascii {
		r.SetColorProfile(termenv.ANSI256)
	}

	return &Styled{
		w: w,

		banner: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(0, 1),
		title:   r.NewStyle().Foreground(colorAccent).Bold(true),
		info:    r.NewStyle().Foreground(colorPrimary).Bold(true),
		dim:     r.NewStyle().Foreground(colorDim),
		success: r.NewStyle().Foreground(colorAccent),
		warn:    r.NewStyle().Foreground(colorWarning),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
		prompt:  r.NewStyle().Foreground(colorPrompt).Bold(true),
	}
}

func (s *Styled) Banner(title, text string) {
	fmt.Fprintln(s.w, s.banner.Render(s.title.Render(title)+"\n"+text))
}

func (s *Styled) Info(text string)    { fmt.Fprintln(s.w, s.info.Render(text)) }
func (s *Styled) Dim(text string)     { fmt.Fprintln(s.w, s.dim.Render(text)) }
func (s *Styled) Success(text string) { fmt.Fprintln(s.w, s.success.Render(text)) }
func (s *Styled) Warn(text string)    { fmt.Fprintln(s.w, s.warn.Render(text)) }
func (s *Styled) Error(text string)   { fmt.Fprintln(s.w, s.err.Render(text)) }

func (s *Styled) Prompt(label string) {
	fmt.Fprint(s.w, "\n"+s.prompt.Render(label))
}

// Fragment is unstyled so partial markdown and multi-byte runes pass through
// untouched.
func (s *Styled) Fragment(text string) {
	_, _ = io.WriteString(s.w, text)
}

func (s *Styled) Newline() {
	_, _ = io.WriteString(s.w, "\n")
}
