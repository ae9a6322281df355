// Package view holds the non-interactive View implementations used by the
// one-shot commands.
package view

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/amishk599/cvcoach/internal/controller"
	"github.com/amishk599/cvcoach/internal/intake"
	"github.com/amishk599/cvcoach/internal/model"
	"github.com/amishk599/cvcoach/internal/render"
)

// Ensure ConsoleView implements controller.View.
var _ controller.View = (*ConsoleView)(nil)

// ConsoleView prints rendered blocks to out and errors to errOut. When an
// HTML path is set, each rendered panel is also written there as a fragment.
type ConsoleView struct {
	mu       sync.Mutex
	out      io.Writer
	errOut   io.Writer
	width    int
	htmlPath string
	lastErr  string
	htmlErr  error
}

// NewConsoleView returns a view that renders for a terminal of the given width.
func NewConsoleView(out, errOut io.Writer, width int) *ConsoleView {
	return &ConsoleView{out: out, errOut: errOut, width: width}
}

// WithHTMLReport makes the view also write panels as HTML to path.
func (v *ConsoleView) WithHTMLReport(path string) *ConsoleView {
	v.htmlPath = path
	return v
}

// LastError returns the most recent error message shown, if any.
func (v *ConsoleView) LastError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// HTMLErr returns the first failure writing the HTML report.
func (v *ConsoleView) HTMLErr() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.htmlErr
}

func (v *ConsoleView) ShowFile(f model.SelectedFile) {
	v.mu.Lock()
	defer v.mu.Unlock()
	line := fmt.Sprintf("📄 %s (%s", f.Name, intake.FormatFileSize(f.Size))
	if f.Pages > 0 {
		line += fmt.Sprintf(", %d str.", f.Pages)
	}
	fmt.Fprintln(v.out, line+")")
}

func (v *ConsoleView) ClearFile()            {}
func (v *ConsoleView) SetSubmitEnabled(bool) {}
func (v *ConsoleView) SetBusy(bool)          {}
func (v *ConsoleView) HideError()            {}
func (v *ConsoleView) HideAnalysis()         {}
func (v *ConsoleView) HideJobs()             {}

func (v *ConsoleView) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastErr = msg
	fmt.Fprintln(v.errOut, "❌ "+msg)
}

func (v *ConsoleView) ShowAnalysis(a model.CVAnalysis) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, render.Summary(a, v.width))
	if v.htmlPath != "" {
		v.writeHTML(render.SummaryHTML(a))
	}
}

func (v *ConsoleView) ShowJobs(title string, jobs []model.JobListing) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintln(v.out, render.Jobs(title, jobs, -1, v.width))
	if v.htmlPath != "" {
		v.writeHTML(render.JobsHTML(title, jobs))
	}
}

// writeHTML must be called with mu held.
func (v *ConsoleView) writeHTML(fragment string, err error) {
	if err == nil {
		err = os.WriteFile(v.htmlPath, []byte(fragment), 0644)
	}
	if err != nil && v.htmlErr == nil {
		v.htmlErr = fmt.Errorf("write html report %s: %w", v.htmlPath, err)
	}
}
