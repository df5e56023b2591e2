package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"
)

// BubbleWidth is the wrap width of speech bubbles.
const BubbleWidth = 60

// Tone selects the colour of a printed block.
type Tone int

const (
	ToneInfo Tone = iota
	ToneJudge
	ToneDetective
	ToneWarn
	ToneError
	ToneSuccess
	ToneEnd
)

var toneColors = map[Tone]lipgloss.Color{
	ToneInfo:      lipgloss.Color("6"),
	ToneJudge:     lipgloss.Color("2"),
	ToneDetective: lipgloss.Color("1"),
	ToneWarn:      lipgloss.Color("3"),
	ToneError:     lipgloss.Color("9"),
	ToneSuccess:   lipgloss.Color("10"),
	ToneEnd:       lipgloss.Color("5"),
}

// Printer writes coloured game output to a terminal.
type Printer struct {
	w      io.Writer
	styles map[Tone]lipgloss.Style
}

// NewPrinter creates a Printer on w. Colour is dropped when color is false.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	styles := make(map[Tone]lipgloss.Style, len(toneColors))
	for tone, c := range toneColors {
		styles[tone] = r.NewStyle().Foreground(c)
	}
	return &Printer{w: w, styles: styles}
}

// Line prints a single coloured line.
func (p *Printer) Line(tone Tone, text string) {
	fmt.Fprintln(p.w, p.styles[tone].Render(text))
}

// Bubble prints text inside a speech bubble labelled with speaker.
func (p *Printer) Bubble(tone Tone, speaker, text string) {
	fmt.Fprintln(p.w, p.styles[tone].Render(Bubble(speaker, text)))
}

// TurnBanner prints the turn header.
func (p *Printer) TurnBanner(turn int) {
	p.Line(ToneInfo, fmt.Sprintf("\n--- Turno %d ---", turn))
}

// LongStory prints the long story as a log record.
func (p *Printer) LongStory(long string, at time.Time) {
	p.Line(ToneInfo, fmt.Sprintf("\n[Registro de Historia Larga]\n[%s]\n%s\n---", at.Format("2006-01-02 15:04"), long))
}

// Bubble renders text as an ASCII speech bubble wrapped at BubbleWidth.
//
//	  ________
//	 / Juez:   \
//	 |        |
//	 | texto  |
//	 |        |
//	  \________/
func Bubble(speaker, text string) string {
	var lines []string
	if wrapped := strings.TrimSpace(wordwrap.String(text, BubbleWidth)); wrapped != "" {
		lines = strings.Split(wrapped, "\n")
	}
	width := lipgloss.Width(speaker) + 2
	for _, l := range lines {
		width = max(width, lipgloss.Width(l))
	}

	var b strings.Builder
	b.WriteString("  " + strings.Repeat("_", width+2) + "\n")
	b.WriteString(" / " + speaker + ":" + pad(width-lipgloss.Width(speaker)) + " \\\n")
	b.WriteString(" | " + pad(width) + " |\n")
	for _, l := range lines {
		b.WriteString(" | " + l + pad(width-lipgloss.Width(l)) + " |\n")
	}
	b.WriteString(" | " + pad(width) + " |\n")
	b.WriteString("  \\" + strings.Repeat("_", width+2) + "/")
	return b.String()
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
