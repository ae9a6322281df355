package view

import (
	"github.com/amishk599/cvcoach/internal/controller"
	"github.com/amishk599/cvcoach/internal/model"
)

// Tee fans every call out to each view in order.
type Tee []controller.View

func (t Tee) ShowFile(f model.SelectedFile) {
	for _, v := range t {
		v.ShowFile(f)
	}
}

func (t Tee) ClearFile() {
	for _, v := range t {
		v.ClearFile()
	}
}

func (t Tee) SetSubmitEnabled(enabled bool) {
	for _, v := range t {
		v.SetSubmitEnabled(enabled)
	}
}

func (t Tee) SetBusy(busy bool) {
	for _, v := range t {
		v.SetBusy(busy)
	}
}

func (t Tee) ShowError(msg string) {
	for _, v := range t {
		v.ShowError(msg)
	}
}

func (t Tee) HideError() {
	for _, v := range t {
		v.HideError()
	}
}

func (t Tee) ShowAnalysis(a model.CVAnalysis) {
	for _, v := range t {
		v.ShowAnalysis(a)
	}
}

func (t Tee) HideAnalysis() {
	for _, v := range t {
		v.HideAnalysis()
	}
}

func (t Tee) ShowJobs(title string, jobs []model.JobListing) {
	for _, v := range t {
		v.ShowJobs(title, jobs)
	}
}

func (t Tee) HideJobs() {
	for _, v := range t {
		v.HideJobs()
	}
}
