package model

import (
	"context"
	"time"
)

// JobListing is a single job suggestion returned by a search endpoint.
type JobListing struct {
	Position     string `json:"position"`
	Company      string `json:"company"`
	Requirements string `json:"requirements"`
	MatchReason  string `json:"matchReason"`
}

// SearchKind selects which job-search endpoint is queried.
type SearchKind string

const (
	SearchMatching    SearchKind = "matching"
	SearchAlternative SearchKind = "alternative"
)

// Path returns the endpoint path for the search kind.
func (k SearchKind) Path() string {
	return "/api/cv/jobs/" + string(k)
}

// Title returns the heading shown above the rendered results.
func (k SearchKind) Title() string {
	switch k {
	case SearchAlternative:
		return "🔄 Alternatywne ścieżki kariery"
	default:
		return "🎯 Dopasowane oferty pracy dla Ciebie"
	}
}

// Valid reports whether k names a known endpoint.
func (k SearchKind) Valid() bool {
	return k == SearchMatching || k == SearchAlternative
}

// CVUploader submits a selected file for analysis.
type CVUploader interface {
	UploadCV(ctx context.Context, file SelectedFile) (CVAnalysis, error)
}

// JobSearcher fetches job listings for the most recently analyzed CV.
type JobSearcher interface {
	SearchJobs(ctx context.Context, kind SearchKind) ([]JobListing, error)
}

// Attempt is one finished flow as recorded in the local journal.
// It never carries CV fields or listings, only the outcome.
type Attempt struct {
	ID       string
	Flow     string // "upload", "matching" or "alternative"
	FileName string
	FileSize int64
	OK       bool
	Message  string // user-facing error text, empty on success
	Results  int    // number of listings rendered, 0 for uploads
	At       time.Time
}

// HistoryStore records finished flows.
type HistoryStore interface {
	Record(a Attempt) error
	Recent(limit int) ([]Attempt, error)
	Cleanup(olderThan time.Duration) error
}
