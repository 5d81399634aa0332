// Package render writes parsed diffs to a terminal, with optional color,
// line-number gutters and syntax highlighting.
package render

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/diffcore"
	"github.com/muesli/termenv"
)

// Compile-time interface verification.
var _ diffcore.Renderer = (*Renderer)(nil)

// DefaultWidth is the width of the rule drawn under each file title.
const DefaultWidth = 80

// Renderer renders diffs as styled text.
type Renderer struct {
	lg          *lipgloss.Renderer
	tokenizer   diffcore.Tokenizer
	detector    diffcore.LanguageDetector
	lineNumbers bool
	tabWidth    int
	width       int
	styles      styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColorProfile sets the color profile. termenv.Ascii disables color.
func WithColorProfile(p termenv.Profile) Option {
	return func(r *Renderer) {
		r.lg.SetColorProfile(p)
	}
}

// WithLineNumbers toggles the old/new line number gutter.
func WithLineNumbers(enabled bool) Option {
	return func(r *Renderer) {
		r.lineNumbers = enabled
	}
}

// WithTabWidth sets the tab stop interval used to expand tabs in content.
func WithTabWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.tabWidth = n
		}
	}
}

// WithWidth sets the width of file title rules.
func WithWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.width = n
		}
	}
}

// WithHighlighter enables syntax highlighting of line content. The detector
// picks the language from the file path.
func WithHighlighter(t diffcore.Tokenizer, d diffcore.LanguageDetector) Option {
	return func(r *Renderer) {
		r.tokenizer = t
		r.detector = d
	}
}

// NewRenderer creates a renderer whose color profile is detected from w
// unless overridden with WithColorProfile.
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		lg:          lipgloss.NewRenderer(w),
		lineNumbers: true,
		tabWidth:    DefaultTabWidth,
		width:       DefaultWidth,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.styles = newStyles(r.lg)
	return r
}

// ProfileFor maps a color mode ("auto", "always" or "never") to a termenv
// profile. Auto inspects w and the environment.
func ProfileFor(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case "", "auto":
		return termenv.NewOutput(w).EnvColorProfile(), nil
	case "always":
		return termenv.TrueColor, nil
	case "never":
		return termenv.Ascii, nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color mode %q", mode)
	}
}

type styles struct {
	title   lipgloss.Style
	rule    lipgloss.Style
	meta    lipgloss.Style
	hunk    lipgloss.Style
	gutter  lipgloss.Style
	added   lipgloss.Style
	deleted lipgloss.Style
	context lipgloss.Style
}

func newStyles(lg *lipgloss.Renderer) styles {
	return styles{
		title:   lg.NewStyle().Bold(true),
		rule:    lg.NewStyle().Foreground(lipgloss.Color("#5c6370")),
		meta:    lg.NewStyle().Foreground(lipgloss.Color("#5c6370")).Italic(true),
		hunk:    lg.NewStyle().Foreground(lipgloss.Color("#61afef")),
		gutter:  lg.NewStyle().Foreground(lipgloss.Color("#5c6370")),
		added:   lg.NewStyle().Foreground(lipgloss.Color("#98c379")),
		deleted: lg.NewStyle().Foreground(lipgloss.Color("#e06c75")),
		context: lg.NewStyle(),
	}
}

// Render writes every file of diff to w.
func (r *Renderer) Render(w io.Writer, diff *diffcore.Diff) error {
	if diff == nil {
		return nil
	}
	bw := bufio.NewWriter(w)
	for i, f := range diff.Files {
		if i > 0 {
			bw.WriteString("\n")
		}
		r.renderFile(bw, f)
	}
	return bw.Flush()
}

func (r *Renderer) renderFile(w *bufio.Writer, f diffcore.FileDiff) {
	title := fileTitle(f)
	fill := r.width - DisplayWidth(title, r.tabWidth) - 4
	if fill < 3 {
		fill = 3
	}
	w.WriteString(r.styles.rule.Render("──"))
	w.WriteString(" " + r.styles.title.Render(title) + " ")
	w.WriteString(r.styles.rule.Render(strings.Repeat("─", fill)))
	w.WriteString("\n")

	if f.OldMode != nil && f.NewMode != nil && *f.OldMode != *f.NewMode {
		w.WriteString(r.styles.meta.Render("mode " + *f.OldMode + " → " + *f.NewMode))
		w.WriteString("\n")
	}
	if f.IsBinary {
		w.WriteString(r.styles.meta.Render("binary file"))
		w.WriteString("\n")
		return
	}

	lang := ""
	if r.tokenizer != nil && r.detector != nil {
		lang = r.detector.DetectFromPath(f.Path)
	}
	digits := gutterDigits(f.Hunks)
	for _, h := range f.Hunks {
		w.WriteString(r.styles.hunk.Render(h.Header))
		w.WriteString("\n")
		for _, l := range h.Lines {
			r.renderLine(w, l, lang, digits)
		}
	}
}

func (r *Renderer) renderLine(w *bufio.Writer, l diffcore.Line, lang string, digits int) {
	if r.lineNumbers {
		gutter := fmt.Sprintf("%*s %*s │", digits, lineNum(l.OldLineNum), digits, lineNum(l.NewLineNum))
		w.WriteString(r.styles.gutter.Render(gutter))
	}

	style := r.styles.context
	switch l.Type {
	case diffcore.LineAdded:
		style = r.styles.added
	case diffcore.LineDeleted:
		style = r.styles.deleted
	}
	w.WriteString(style.Render(string(l.Type.Marker())))

	content := ExpandTabs(l.Content, r.tabWidth)
	w.WriteString(r.highlight(content, lang, style))
	w.WriteString("\n")

	if l.NoNewline {
		w.WriteString(r.styles.meta.Render(`\ No newline at end of file`))
		w.WriteString("\n")
	}
}

func (r *Renderer) highlight(content, lang string, fallback lipgloss.Style) string {
	if content == "" {
		return ""
	}
	if lang == "" {
		return fallback.Render(content)
	}
	tokens := r.tokenizer.Tokenize(lang, content)
	if tokens == nil {
		return fallback.Render(content)
	}
	var b strings.Builder
	for _, tok := range tokens {
		text := strings.TrimSuffix(tok.Text, "\n")
		if text == "" {
			continue
		}
		s := r.lg.NewStyle().Bold(tok.Style.Bold)
		if tok.Style.Foreground != "" {
			s = s.Foreground(lipgloss.Color(tok.Style.Foreground))
		}
		b.WriteString(s.Render(text))
	}
	return b.String()
}

func fileTitle(f diffcore.FileDiff) string {
	var b strings.Builder
	b.WriteString(f.Change.String())
	b.WriteString(": ")
	if f.OldPath != nil {
		b.WriteString(*f.OldPath)
		b.WriteString(" → ")
	}
	b.WriteString(f.Path)
	if add, del := f.Additions(), f.Deletions(); add > 0 || del > 0 {
		fmt.Fprintf(&b, " (+%d -%d)", add, del)
	}
	return b.String()
}

func gutterDigits(hunks []diffcore.Hunk) int {
	maxNum := 0
	for _, h := range hunks {
		maxNum = max(maxNum, h.OldStart+h.OldCount, h.NewStart+h.NewCount)
	}
	return max(len(strconv.Itoa(maxNum)), 1)
}

func lineNum(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}
