// Package controller sequences file intake, CV analysis and job search
// against an injected View.
package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/cvcoach/internal/intake"
	"github.com/amishk599/cvcoach/internal/model"
)

// DefaultErrorDismiss is how long an error stays visible.
const DefaultErrorDismiss = 8 * time.Second

var (
	ErrNoFile    = errors.New("no file selected")
	ErrBusy      = errors.New("upload already in progress")
	ErrNoResults = errors.New("no job listings returned")
	ErrStale     = errors.New("superseded by a newer search")
)

type stopper interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) stopper

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// State is a snapshot of the controller's application state.
type State struct {
	File          *model.SelectedFile
	SubmitEnabled bool
	Uploading     bool
	Busy          bool
}

// Controller owns the selected file and runs the three user flows.
// It is safe for concurrent use.
type Controller struct {
	uploader     model.CVUploader
	searcher     model.JobSearcher
	view         View
	history      model.HistoryStore
	logger       *slog.Logger
	errorDismiss time.Duration
	afterFunc    afterFunc
	countPages   func(path string) (int, error)
	now          func() time.Time

	mu        sync.Mutex
	selected  *model.SelectedFile
	uploading bool
	searchSeq uint64

	// errMu is held across the view call so error transitions reach the view
	// in the same order as their generations.
	errMu    sync.Mutex
	errGen   uint64
	errTimer stopper

	// busyMu serialises busy transitions with their view calls so two flows
	// finishing and starting back to back cannot reorder SetBusy.
	busyMu sync.Mutex
	busy   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithHistory records every finished flow in store.
func WithHistory(store model.HistoryStore) Option {
	return func(c *Controller) { c.history = store }
}

// WithErrorDismiss overrides how long errors stay visible.
func WithErrorDismiss(d time.Duration) Option {
	return func(c *Controller) { c.errorDismiss = d }
}

// WithPageCounter sets the function used to show a PDF's page count.
// Pass nil to skip page counting.
func WithPageCounter(fn func(path string) (int, error)) Option {
	return func(c *Controller) { c.countPages = fn }
}

// New creates a controller. logger may be nil.
func New(uploader model.CVUploader, searcher model.JobSearcher, view View, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Controller{
		uploader:     uploader,
		searcher:     searcher,
		view:         view,
		logger:       logger,
		errorDismiss: DefaultErrorDismiss,
		afterFunc:    realAfterFunc,
		countPages:   intake.CountPages,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busyMu.Lock()
	defer c.busyMu.Unlock()

	s := State{
		Uploading: c.uploading,
		Busy:      c.busy > 0,
	}
	if c.selected != nil {
		f := *c.selected
		s.File = &f
	}
	s.SubmitEnabled = s.File != nil && !c.uploading
	return s
}

// SelectFile inspects and validates path. On success it replaces the current
// selection; on rejection the previous selection is kept and the error shown.
func (c *Controller) SelectFile(path string) error {
	f, err := intake.Inspect(path)
	if err == nil {
		err = intake.Validate(f)
	}
	if err != nil {
		c.logger.Info("file rejected", "path", path, "error", err)
		c.showError(userMessage(err))
		return err
	}

	if c.countPages != nil {
		if n, err := c.countPages(f.Path); err == nil {
			f.Pages = n
		} else {
			c.logger.Debug("page count unavailable", "file", f.Name, "error", err)
		}
	}

	c.mu.Lock()
	c.selected = &f
	uploading := c.uploading
	c.mu.Unlock()

	c.logger.Info("file selected", "file", f.Name, "size", f.Size, "mime", f.MIMEType)
	c.view.ShowFile(f)
	c.view.SetSubmitEnabled(!uploading)
	c.hideError()
	return nil
}

// RemoveFile clears the selection and disables submission.
func (c *Controller) RemoveFile() {
	c.mu.Lock()
	c.selected = nil
	c.mu.Unlock()

	c.view.ClearFile()
	c.view.SetSubmitEnabled(false)
}

// Submit uploads the selected file and renders the analysis.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.uploading {
		c.mu.Unlock()
		return ErrBusy
	}
	if c.selected == nil {
		c.mu.Unlock()
		c.showError(msgNoFile)
		return ErrNoFile
	}
	file := *c.selected
	c.uploading = true
	c.mu.Unlock()

	c.beginBusy()
	c.view.SetSubmitEnabled(false)
	c.hideError()
	c.view.HideJobs()
	c.view.HideAnalysis()

	defer func() {
		c.mu.Lock()
		c.uploading = false
		hasFile := c.selected != nil
		c.mu.Unlock()
		c.endBusy()
		c.view.SetSubmitEnabled(hasFile)
	}()

	c.logger.Info("uploading cv", "file", file.Name, "size", file.Size)
	analysis, err := c.uploader.UploadCV(ctx, file)
	if err != nil {
		msg := failureMessage(err, msgUploadFailed, msgUploadUnexpected)
		c.logger.Error("cv analysis failed", "file", file.Name, "error", err)
		c.showError(msg)
		c.record("upload", file, false, msg, 0)
		return err
	}

	c.logger.Info("cv analyzed", "file", file.Name, "location", analysis.Location, "branch", analysis.JobBranch)
	c.view.ShowAnalysis(analysis)
	c.record("upload", file, true, "", 0)
	return nil
}

// FindMatching searches for listings matching the analyzed CV.
func (c *Controller) FindMatching(ctx context.Context) error {
	return c.SearchJobs(ctx, model.SearchMatching)
}

// FindAlternative searches for alternative career paths.
func (c *Controller) FindAlternative(ctx context.Context) error {
	return c.SearchJobs(ctx, model.SearchAlternative)
}

// SearchJobs runs one job search. Only the most recently issued search may
// render; responses to earlier ones are dropped and ErrStale is returned.
func (c *Controller) SearchJobs(ctx context.Context, kind model.SearchKind) error {
	c.mu.Lock()
	c.searchSeq++
	token := c.searchSeq
	c.mu.Unlock()

	c.beginBusy()
	defer c.endBusy()
	c.view.HideJobs()
	c.hideError()

	c.logger.Info("searching jobs", "kind", kind)
	jobs, err := c.searcher.SearchJobs(ctx, kind)

	if !c.isLatestSearch(token) {
		c.logger.Debug("dropping stale job search response", "kind", kind, "token", token, "error", err)
		return ErrStale
	}

	flow := string(kind)
	if err != nil {
		msg := failureMessage(err, msgNoCVData, msgSearchFailed)
		c.logger.Error("job search failed", "kind", kind, "error", err)
		c.showError(msg)
		c.record(flow, model.SelectedFile{}, false, msg, 0)
		return err
	}
	if len(jobs) == 0 {
		c.logger.Info("job search returned no listings", "kind", kind)
		c.showError(msgNoJobsResults)
		c.record(flow, model.SelectedFile{}, false, msgNoJobsResults, 0)
		return ErrNoResults
	}

	c.logger.Info("jobs found", "kind", kind, "count", len(jobs))
	c.view.ShowJobs(kind.Title(), jobs)
	c.record(flow, model.SelectedFile{}, true, "", len(jobs))
	return nil
}

func (c *Controller) isLatestSearch(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.searchSeq
}

func (c *Controller) beginBusy() {
	c.busyMu.Lock()
	defer c.busyMu.Unlock()
	c.busy++
	if c.busy == 1 {
		c.view.SetBusy(true)
	}
}

func (c *Controller) endBusy() {
	c.busyMu.Lock()
	defer c.busyMu.Unlock()
	c.busy--
	if c.busy == 0 {
		c.view.SetBusy(false)
	}
}

func (c *Controller) record(flow string, file model.SelectedFile, ok bool, msg string, results int) {
	if c.history == nil {
		return
	}
	a := model.Attempt{
		ID:       uuid.NewString(),
		Flow:     flow,
		FileName: file.Name,
		FileSize: file.Size,
		OK:       ok,
		Message:  msg,
		Results:  results,
		At:       c.now(),
	}
	if err := c.history.Record(a); err != nil {
		c.logger.Warn("failed to record attempt", "flow", flow, "error", err)
	}
}

// userMessage extracts the text to show for a validation failure.
func userMessage(err error) string {
	var ve *intake.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}

// failureMessage normalises a flow failure: a server message wins, then the
// server fallback for any other non-2xx, then the exception fallback.
func failureMessage(err error, serverFallback, exceptionFallback string) string {
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Message != "" {
			return httpErr.Message
		}
		return serverFallback
	}
	return exceptionFallback
}
