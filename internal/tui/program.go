package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/cvcoach/internal/controller"
	"github.com/amishk599/cvcoach/internal/model"
)

// Ensure programView implements controller.View.
var _ controller.View = (*programView)(nil)

// programView forwards view calls into the running program's event loop.
type programView struct {
	send func(tea.Msg)
}

func (v *programView) post(msg tea.Msg) {
	if v.send != nil {
		v.send(msg)
	}
}

func (v *programView) ShowFile(f model.SelectedFile) { v.post(fileShownMsg{file: f}) }
func (v *programView) ClearFile()                    { v.post(fileClearedMsg{}) }
func (v *programView) SetSubmitEnabled(enabled bool) { v.post(submitMsg{enabled: enabled}) }
func (v *programView) SetBusy(busy bool)             { v.post(busyMsg{busy: busy}) }
func (v *programView) ShowError(msg string)          { v.post(errorShownMsg{text: msg}) }
func (v *programView) HideError()                    { v.post(errorHiddenMsg{}) }
func (v *programView) ShowAnalysis(a model.CVAnalysis) {
	v.post(analysisShownMsg{analysis: a})
}
func (v *programView) HideAnalysis() { v.post(analysisHiddenMsg{}) }
func (v *programView) ShowJobs(title string, jobs []model.JobListing) {
	v.post(jobsShownMsg{title: title, jobs: jobs})
}
func (v *programView) HideJobs() { v.post(jobsHiddenMsg{}) }

// Run launches the interactive client in the alternate screen. build
// receives the view the controller must render to. initialPath, when set, is
// selected as soon as the program starts.
func Run(ctx context.Context, build func(controller.View) Actions, initialPath string) error {
	pv := &programView{}
	m := newModel(ctx, build(pv), initialPath)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	pv.send = p.Send

	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
