// Package console renders the interactive terminal surface.
package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dimiro1/banner"
	"github.com/fatih/color"
)

// Version is printed under the banner.
const Version = "1.0.0"

const bannerTemplate = `{{ .Title "MCPCHAT" "" 0 }}
Weather and news assistant over MCP. Version: ` + Version + `
`

// Style selects the border colour of a panel
type Style int

const (
	StyleInfo Style = iota
	StyleSuccess
	StyleWarning
	StyleError
)

// Console writes everything the user sees. Construct one per process and
// pass it to whoever prints.
type Console struct {
	out     io.Writer
	colored bool

	blue   *color.Color
	green  *color.Color
	yellow *color.Color
	red    *color.Color
	dim    *color.Color
	bold   *color.Color
	hint   *color.Color
}

// New returns a console writing to out. With colored false no escape
// sequences are emitted.
func New(out io.Writer, colored bool) *Console {
	c := &Console{
		out:     out,
		colored: colored,
		blue:    color.New(color.FgBlue, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow),
		red:     color.New(color.FgRed),
		dim:     color.New(color.Faint),
		bold:    color.New(color.Bold),
		hint:    color.New(color.FgYellow, color.Bold),
	}
	for _, col := range []*color.Color{c.blue, c.green, c.yellow, c.red, c.dim, c.bold, c.hint} {
		if colored {
			col.EnableColor()
		} else {
			col.DisableColor()
		}
	}
	return c
}

// Banner prints the startup banner.
func (c *Console) Banner() {
	banner.Init(c.out, true, c.colored, bytes.NewBufferString(bannerTemplate))
}

// Panel prints body inside a titled frame.
func (c *Console) Panel(title, body string, style Style) {
	border := c.styleColor(style)

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, border.Sprintf("╭─ %s %s", c.bold.Sprint(title), strings.Repeat("─", 40)))
	for _, line := range strings.Split(strings.TrimRight(body, "\n"), "\n") {
		fmt.Fprintf(c.out, "%s %s\n", border.Sprint("│"), line)
	}
	fmt.Fprintln(c.out, border.Sprint("╰"+strings.Repeat("─", 44)))
}

func (c *Console) styleColor(style Style) *color.Color {
	switch style {
	case StyleSuccess:
		return c.green
	case StyleWarning:
		return c.yellow
	case StyleError:
		return c.red
	default:
		return c.blue
	}
}

// Prompt prints the input prompt without a trailing newline.
func (c *Console) Prompt() {
	fmt.Fprint(c.out, "\n"+c.blue.Sprint("mcp>")+" ")
}

// Thinking tells the user a turn is in progress.
func (c *Console) Thinking() {
	fmt.Fprintln(c.out, c.dim.Sprint("Agent thinking and using tools..."))
}

// Answer prints the agent's reply.
func (c *Console) Answer(text string) {
	fmt.Fprintf(c.out, "\n%s %s\n", c.green.Sprint("🤖 Agent:"), text)
}

func (c *Console) Status(format string, args ...any) {
	fmt.Fprintln(c.out, c.dim.Sprintf(format, args...))
}

func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.green.Sprintf("✅ "+format, args...))
}

func (c *Console) Error(format string, args ...any) {
	fmt.Fprintln(c.out, c.red.Sprintf(format, args...))
}

// Hint prints a labelled suggestion.
func (c *Console) Hint(text string) {
	fmt.Fprintf(c.out, "%s %s\n", c.hint.Sprint("Hint:"), text)
}

// Newline ends the current line.
func (c *Console) Newline() {
	fmt.Fprintln(c.out)
}

// Farewell prints the goodbye line.
func (c *Console) Farewell() {
	fmt.Fprintln(c.out, c.yellow.Sprint("Goodbye! 👋"))
}
