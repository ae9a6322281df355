package tui

import "github.com/amishk599/cvcoach/internal/model"

// View transitions arrive from controller goroutines as these messages.
type (
	fileShownMsg      struct{ file model.SelectedFile }
	fileClearedMsg    struct{}
	submitMsg         struct{ enabled bool }
	busyMsg           struct{ busy bool }
	errorShownMsg     struct{ text string }
	errorHiddenMsg    struct{}
	analysisShownMsg  struct{ analysis model.CVAnalysis }
	analysisHiddenMsg struct{}
	jobsShownMsg      struct {
		title string
		jobs  []model.JobListing
	}
	jobsHiddenMsg struct{}
)

// revealTickMsg reveals the next job card. gen ties it to one ShowJobs.
type revealTickMsg struct{ gen int }
