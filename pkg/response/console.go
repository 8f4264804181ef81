package response

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Console prints the pre-commit hook output. Progress and the accepted
// verdict go to out, findings and rejections go to err.
type Console struct {
	out       io.Writer
	err       io.Writer
	formatter *Formatter
	ok        lipgloss.Style
	warn      lipgloss.Style
	fail      lipgloss.Style
}

// NewConsole returns a Console writing to the provided streams. Styling is
// only applied when the stream is a terminal.
func NewConsole(out, err io.Writer) *Console {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(err)

	return &Console{
		out:       out,
		err:       err,
		formatter: &Formatter{format: HUMAN},
		ok:        outRenderer.NewStyle().Foreground(lipgloss.Color("2")).TabWidth(lipgloss.NoTabConversion),
		warn:      errRenderer.NewStyle().Foreground(lipgloss.Color("3")).TabWidth(lipgloss.NoTabConversion),
		fail:      errRenderer.NewStyle().Foreground(lipgloss.Color("1")).TabWidth(lipgloss.NoTabConversion).Bold(true),
	}
}

// Start prints the banner
func (c *Console) Start() {
	fmt.Fprintln(c.out, "🔍 Running pre-commit checks...")
}

// NoFiles reports that there is nothing to check
func (c *Console) NoFiles() {
	fmt.Fprintln(c.out, c.ok.Render("✅ No files to check."))
}

// Checking reports how many candidate files are about to be scanned
func (c *Console) Checking(count int) {
	fmt.Fprintf(c.out, "Checking %d file(s)...\n", count)
}

// Report prints every finding followed by the verdict
func (c *Console) Report(r *Report) {
	if !r.HasSecrets() {
		fmt.Fprintln(c.out, c.ok.Render("✅ No potential secrets detected."))
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(c.formatter.Format(r), "\n"), "\n") {
		fmt.Fprintln(c.err, c.warn.Render(line))
	}

	fmt.Fprintln(c.err)
	fmt.Fprintln(c.err, c.fail.Render(fmt.Sprintf("❌ Commit rejected: %d potential secret(s) detected!", len(r.Findings))))
	fmt.Fprintln(c.err, "Please remove sensitive data before committing.")
}

// Failed reports an error that stopped the checks
func (c *Console) Failed(err error) {
	fmt.Fprintln(c.err, c.fail.Render(fmt.Sprintf("❌ Error running pre-commit hook: %s", err)))
}
