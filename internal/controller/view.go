package controller

import "github.com/amishk599/cvcoach/internal/model"

// View is the rendering side of the controller. Implementations must be safe
// to call from any goroutine and must not call back into the controller
// synchronously.
type View interface {
	ShowFile(f model.SelectedFile)
	// ClearFile hides the file info and resets the input control.
	ClearFile()
	SetSubmitEnabled(enabled bool)
	SetBusy(busy bool)

	// ShowError reveals msg and brings it into view.
	ShowError(msg string)
	HideError()

	// ShowAnalysis renders and reveals the results panel, scrolled into view.
	ShowAnalysis(a model.CVAnalysis)
	HideAnalysis()

	// ShowJobs renders one card per listing, in order, under title.
	ShowJobs(title string, jobs []model.JobListing)
	HideJobs()
}
