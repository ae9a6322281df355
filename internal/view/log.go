package view

import (
	"log/slog"

	"github.com/amishk599/cvcoach/internal/controller"
	"github.com/amishk599/cvcoach/internal/model"
)

// Ensure LogView implements controller.View.
var _ controller.View = (*LogView)(nil)

// LogView writes every view transition to the logger as a structured debug
// message. Errors are logged at warn level.
type LogView struct {
	logger *slog.Logger
}

// NewLogView returns a view that logs each transition via slog.
func NewLogView(logger *slog.Logger) *LogView {
	return &LogView{logger: logger}
}

func (v *LogView) ShowFile(f model.SelectedFile) {
	v.logger.Debug("view: file shown", "file", f.Name, "size", f.Size, "mime", f.MIMEType, "pages", f.Pages)
}

func (v *LogView) ClearFile() {
	v.logger.Debug("view: file cleared")
}

func (v *LogView) SetSubmitEnabled(enabled bool) {
	v.logger.Debug("view: submit", "enabled", enabled)
}

func (v *LogView) SetBusy(busy bool) {
	v.logger.Debug("view: busy", "busy", busy)
}

func (v *LogView) ShowError(msg string) {
	v.logger.Warn("view: error shown", "message", msg)
}

func (v *LogView) HideError() {
	v.logger.Debug("view: error hidden")
}

func (v *LogView) ShowAnalysis(a model.CVAnalysis) {
	v.logger.Debug("view: analysis shown", "location", a.Location, "branch", a.JobBranch,
		"total_years", a.TotalExperienceYears, "branch_years", a.BranchExperienceYears)
}

func (v *LogView) HideAnalysis() {
	v.logger.Debug("view: analysis hidden")
}

func (v *LogView) ShowJobs(title string, jobs []model.JobListing) {
	v.logger.Debug("view: jobs shown", "title", title, "count", len(jobs))
	for i, j := range jobs {
		v.logger.Debug("view: job", "n", i+1, "position", j.Position, "company", j.Company)
	}
}

func (v *LogView) HideJobs() {
	v.logger.Debug("view: jobs hidden")
}
