package controller

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/cvcoach/internal/intake"
	"github.com/amishk599/cvcoach/internal/model"
)

// --- fakes ---

type fakeView struct {
	mu            sync.Mutex
	file          *model.SelectedFile
	clearedFile   int
	submitEnabled bool
	busyCalls     []bool
	errorVisible  bool
	errorMsg      string
	analysis      *model.CVAnalysis
	jobsVisible   bool
	jobsTitle     string
	jobs          []model.JobListing
}

func (v *fakeView) ShowFile(f model.SelectedFile) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.file = &f
}

func (v *fakeView) ClearFile() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.file = nil
	v.clearedFile++
}

func (v *fakeView) SetSubmitEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.submitEnabled = enabled
}

func (v *fakeView) SetBusy(busy bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.busyCalls = append(v.busyCalls, busy)
}

func (v *fakeView) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorVisible = true
	v.errorMsg = msg
}

func (v *fakeView) HideError() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.errorVisible = false
}

func (v *fakeView) ShowAnalysis(a model.CVAnalysis) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.analysis = &a
}

func (v *fakeView) HideAnalysis() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.analysis = nil
}

func (v *fakeView) ShowJobs(title string, jobs []model.JobListing) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jobsVisible = true
	v.jobsTitle = title
	v.jobs = jobs
}

func (v *fakeView) HideJobs() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jobsVisible = false
}

func (v *fakeView) busyNow() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.busyCalls) > 0 && v.busyCalls[len(v.busyCalls)-1]
}

type fakeUploader struct {
	calls    int
	got      model.SelectedFile
	analysis model.CVAnalysis
	err      error
}

func (u *fakeUploader) UploadCV(_ context.Context, f model.SelectedFile) (model.CVAnalysis, error) {
	u.calls++
	u.got = f
	return u.analysis, u.err
}

type searchFunc func(ctx context.Context, kind model.SearchKind) ([]model.JobListing, error)

func (f searchFunc) SearchJobs(ctx context.Context, kind model.SearchKind) ([]model.JobListing, error) {
	return f(ctx, kind)
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

// fakeClock captures scheduled callbacks so tests can fire them at will.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) stopper {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, fn: fn}
	c.timers = append(c.timers, t)
	return t
}

// fire runs timer i even if stopped, mimicking a callback already in flight.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.fn()
}

type memHistory struct {
	mu       sync.Mutex
	attempts []model.Attempt
}

func (h *memHistory) Record(a model.Attempt) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.attempts = append(h.attempts, a)
	return nil
}

func (h *memHistory) Recent(limit int) ([]model.Attempt, error) { return h.attempts, nil }
func (h *memHistory) Cleanup(time.Duration) error               { return nil }

type harness struct {
	c       *Controller
	view    *fakeView
	clock   *fakeClock
	up      *fakeUploader
	history *memHistory
}

func newHarness(t *testing.T, search searchFunc) *harness {
	t.Helper()
	h := &harness{
		view:    &fakeView{},
		clock:   &fakeClock{},
		up:      &fakeUploader{},
		history: &memHistory{},
	}
	if search == nil {
		search = func(context.Context, model.SearchKind) ([]model.JobListing, error) { return nil, nil }
	}
	h.c = New(h.up, search, h.view, nil, WithHistory(h.history), WithPageCounter(nil))
	h.c.afterFunc = h.clock.AfterFunc
	return h
}

func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n"), 0644))
	return path
}

// --- file intake ---

func TestSelectFile_AcceptsPDF(t *testing.T) {
	h := newHarness(t, nil)
	path := writePDF(t, "cv.pdf")

	require.NoError(t, h.c.SelectFile(path))

	require.NotNil(t, h.view.file)
	assert.Equal(t, "cv.pdf", h.view.file.Name)
	assert.True(t, h.view.submitEnabled)
	assert.False(t, h.view.errorVisible)

	st := h.c.State()
	require.NotNil(t, st.File)
	assert.Equal(t, path, st.File.Path)
	assert.True(t, st.SubmitEnabled)
}

func TestSelectFile_RejectsNonPDF(t *testing.T) {
	h := newHarness(t, nil)
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello there"), 0644))

	err := h.c.SelectFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, intake.ErrNotPDF))

	assert.Nil(t, h.c.State().File)
	assert.Nil(t, h.view.file)
	assert.True(t, h.view.errorVisible)
	assert.Equal(t, "Proszę wybrać plik PDF. Wybrany plik: text/plain", h.view.errorMsg)
}

func TestSelectFile_RejectsOversize(t *testing.T) {
	h := newHarness(t, nil)
	path := filepath.Join(t.TempDir(), "big.pdf")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Truncate(intake.MaxFileSize+1))
	require.NoError(t, f.Close())

	err = h.c.SelectFile(path)
	assert.True(t, errors.Is(err, intake.ErrTooLarge))
	assert.Nil(t, h.c.State().File)
	assert.Equal(t, "Plik jest za duży (5.0 MB). Maksymalny rozmiar to 5MB.", h.view.errorMsg)
}

func TestSelectFile_RejectionKeepsPreviousSelection(t *testing.T) {
	h := newHarness(t, nil)
	good := writePDF(t, "good.pdf")
	require.NoError(t, h.c.SelectFile(good))

	bad := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("text"), 0644))
	require.Error(t, h.c.SelectFile(bad))

	st := h.c.State()
	require.NotNil(t, st.File)
	assert.Equal(t, "good.pdf", st.File.Name)
}

func TestSelectFile_NewSelectionOverwrites(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.c.SelectFile(writePDF(t, "first.pdf")))
	require.NoError(t, h.c.SelectFile(writePDF(t, "second.pdf")))

	assert.Equal(t, "second.pdf", h.c.State().File.Name)
}

func TestSelectFile_UsesPageCounter(t *testing.T) {
	h := newHarness(t, nil)
	h.c.countPages = func(string) (int, error) { return 2, nil }

	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))
	assert.Equal(t, 2, h.view.file.Pages)
}

func TestRemoveFile(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))

	h.c.RemoveFile()

	assert.Nil(t, h.c.State().File)
	assert.False(t, h.c.State().SubmitEnabled)
	assert.Equal(t, 1, h.view.clearedFile)
	assert.False(t, h.view.submitEnabled)
}

// --- upload ---

func TestSubmit_NoFile(t *testing.T) {
	h := newHarness(t, nil)

	err := h.c.Submit(context.Background())

	assert.ErrorIs(t, err, ErrNoFile)
	assert.Zero(t, h.up.calls)
	assert.Equal(t, "Proszę wybrać plik PDF", h.view.errorMsg)
	assert.Empty(t, h.view.busyCalls)
}

func TestSubmit_Success(t *testing.T) {
	h := newHarness(t, nil)
	h.up.analysis = model.CVAnalysis{Location: "Poznań", JobBranch: "IT", TotalExperienceYears: 5}
	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))
	h.view.ShowJobs("old", []model.JobListing{{Position: "stale"}})

	require.NoError(t, h.c.Submit(context.Background()))

	assert.Equal(t, 1, h.up.calls)
	assert.Equal(t, "cv.pdf", h.up.got.Name)
	require.NotNil(t, h.view.analysis)
	assert.Equal(t, "Poznań", h.view.analysis.Location)
	assert.False(t, h.view.jobsVisible, "previous job panel should be hidden")
	assert.Equal(t, []bool{true, false}, h.view.busyCalls)
	assert.True(t, h.view.submitEnabled)
	assert.False(t, h.c.State().Uploading)

	require.Len(t, h.history.attempts, 1)
	assert.Equal(t, "upload", h.history.attempts[0].Flow)
	assert.True(t, h.history.attempts[0].OK)
	assert.Equal(t, "cv.pdf", h.history.attempts[0].FileName)
}

func TestSubmit_ServerMessage(t *testing.T) {
	h := newHarness(t, nil)
	h.up.err = &model.HTTPError{StatusCode: 500, Message: "Failed to analyze CV: quota"}
	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))

	err := h.c.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, "Failed to analyze CV: quota", h.view.errorMsg)
	assert.Nil(t, h.view.analysis)
	assert.Equal(t, []bool{true, false}, h.view.busyCalls)
	assert.True(t, h.view.submitEnabled)
	assert.False(t, h.history.attempts[0].OK)
}

func TestSubmit_ServerFallback(t *testing.T) {
	h := newHarness(t, nil)
	h.up.err = &model.HTTPError{StatusCode: 502}
	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))

	require.Error(t, h.c.Submit(context.Background()))
	assert.Equal(t, "Błąd podczas analizy CV", h.view.errorMsg)
}

func TestSubmit_TransportError(t *testing.T) {
	h := newHarness(t, nil)
	h.up.err = errors.New("dial tcp 127.0.0.1:8080: connect: connection refused")
	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))

	require.Error(t, h.c.Submit(context.Background()))
	assert.Equal(t, "Wystąpił nieoczekiwany błąd podczas analizy CV", h.view.errorMsg)
	assert.True(t, h.view.submitEnabled)
}

func TestSubmit_RejectsReentry(t *testing.T) {
	h := newHarness(t, nil)
	require.NoError(t, h.c.SelectFile(writePDF(t, "cv.pdf")))
	h.c.mu.Lock()
	h.c.uploading = true
	h.c.mu.Unlock()

	assert.ErrorIs(t, h.c.Submit(context.Background()), ErrBusy)
	assert.Zero(t, h.up.calls)
}

// --- job search ---

func TestSearchJobs_RendersAllInOrder(t *testing.T) {
	jobs := []model.JobListing{
		{Position: "A"}, {Position: "B"}, {Position: "C"}, {Position: "D"},
	}
	var gotKind model.SearchKind
	h := newHarness(t, func(_ context.Context, k model.SearchKind) ([]model.JobListing, error) {
		gotKind = k
		return jobs, nil
	})

	require.NoError(t, h.c.FindAlternative(context.Background()))

	assert.Equal(t, model.SearchAlternative, gotKind)
	assert.True(t, h.view.jobsVisible)
	assert.Equal(t, "🔄 Alternatywne ścieżki kariery", h.view.jobsTitle)
	assert.Equal(t, jobs, h.view.jobs)
	assert.Equal(t, []bool{true, false}, h.view.busyCalls)

	last := h.history.attempts[len(h.history.attempts)-1]
	assert.Equal(t, "alternative", last.Flow)
	assert.Equal(t, 4, last.Results)
}

func TestSearchJobs_EmptyShowsError(t *testing.T) {
	for _, result := range [][]model.JobListing{nil, {}} {
		h := newHarness(t, func(context.Context, model.SearchKind) ([]model.JobListing, error) {
			return result, nil
		})

		err := h.c.FindMatching(context.Background())

		assert.ErrorIs(t, err, ErrNoResults)
		assert.False(t, h.view.jobsVisible)
		assert.True(t, h.view.errorVisible)
		assert.Equal(t, "Nie znaleziono ofert pracy. Spróbuj ponownie później.", h.view.errorMsg)
		assert.Equal(t, []bool{true, false}, h.view.busyCalls)
	}
}

func TestSearchJobs_ServerMessageShownVerbatim(t *testing.T) {
	h := newHarness(t, func(context.Context, model.SearchKind) ([]model.JobListing, error) {
		return nil, &model.HTTPError{StatusCode: 404, Message: "no CV found"}
	})

	require.Error(t, h.c.FindMatching(context.Background()))
	assert.Equal(t, "no CV found", h.view.errorMsg)
	assert.False(t, h.view.jobsVisible)
}

func TestSearchJobs_Fallbacks(t *testing.T) {
	h := newHarness(t, func(context.Context, model.SearchKind) ([]model.JobListing, error) {
		return nil, &model.HTTPError{StatusCode: 500}
	})
	require.Error(t, h.c.FindMatching(context.Background()))
	assert.Equal(t, "Nie znaleziono danych CV", h.view.errorMsg)

	h = newHarness(t, func(context.Context, model.SearchKind) ([]model.JobListing, error) {
		return nil, errors.New("unexpected EOF")
	})
	require.Error(t, h.c.FindMatching(context.Background()))
	assert.Equal(t, "Wystąpił błąd podczas wyszukiwania ofert pracy", h.view.errorMsg)
}

func TestSearchJobs_StaleResponseIsDropped(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	h := newHarness(t, func(_ context.Context, k model.SearchKind) ([]model.JobListing, error) {
		if k == model.SearchMatching {
			close(started)
			<-release
			return []model.JobListing{{Position: "stale"}}, nil
		}
		return []model.JobListing{{Position: "fresh"}}, nil
	})

	done := make(chan error, 1)
	go func() { done <- h.c.FindMatching(context.Background()) }()
	<-started

	require.NoError(t, h.c.FindAlternative(context.Background()))
	assert.True(t, h.view.busyNow(), "busy should stay on while the first search is in flight")

	close(release)
	assert.ErrorIs(t, <-done, ErrStale)

	assert.Equal(t, []model.JobListing{{Position: "fresh"}}, h.view.jobs)
	assert.Equal(t, "🔄 Alternatywne ścieżki kariery", h.view.jobsTitle)
	assert.False(t, h.view.busyNow())
	assert.Len(t, h.history.attempts, 1)
}

// --- error presentation ---

func TestError_AutoHidesAfterDismiss(t *testing.T) {
	h := newHarness(t, nil)

	_ = h.c.Submit(context.Background())
	require.True(t, h.view.errorVisible)
	require.Len(t, h.clock.timers, 1)
	assert.Equal(t, DefaultErrorDismiss, h.clock.timers[0].d)

	h.clock.fire(0)
	assert.False(t, h.view.errorVisible)
}

func TestError_OlderTimerDoesNotHideNewerError(t *testing.T) {
	h := newHarness(t, func(context.Context, model.SearchKind) ([]model.JobListing, error) {
		return nil, &model.HTTPError{StatusCode: 404, Message: "no CV found"}
	})

	_ = h.c.Submit(context.Background()) // first error, no file
	_ = h.c.FindMatching(context.Background())
	require.Equal(t, "no CV found", h.view.errorMsg)
	require.Len(t, h.clock.timers, 2)
	assert.True(t, h.clock.timers[0].stopped)

	h.clock.fire(0)
	assert.True(t, h.view.errorVisible, "stale timer must not hide the newer error")

	h.clock.fire(1)
	assert.False(t, h.view.errorVisible)
}

func TestError_CustomDismiss(t *testing.T) {
	h := newHarness(t, nil)
	WithErrorDismiss(3 * time.Second)(h.c)

	_ = h.c.Submit(context.Background())
	assert.Equal(t, 3*time.Second, h.clock.timers[0].d)
}

// gateView holds the first ShowError until release is closed.
type gateView struct {
	*fakeView
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (g *gateView) ShowError(msg string) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	g.fakeView.ShowError(msg)
}

func TestError_HideDuringSlowShowDoesNotStrandError(t *testing.T) {
	inner := &fakeView{}
	gv := &gateView{fakeView: inner, entered: make(chan struct{}), release: make(chan struct{})}
	search := searchFunc(func(context.Context, model.SearchKind) ([]model.JobListing, error) {
		return []model.JobListing{{Position: "A"}}, nil
	})
	c := New(&fakeUploader{}, search, gv, nil,
		WithErrorDismiss(50*time.Millisecond),
		WithPageCounter(nil),
	)
	missing := filepath.Join(t.TempDir(), "cv.pdf")

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.SelectFile(missing)
	}()
	<-gv.entered
	go func() {
		defer wg.Done()
		_ = c.FindMatching(context.Background())
	}()
	time.Sleep(20 * time.Millisecond) // let the search reach hideError
	close(gv.release)
	wg.Wait()

	assert.Eventually(t, func() bool {
		inner.mu.Lock()
		defer inner.mu.Unlock()
		return !inner.errorVisible
	}, time.Second, 10*time.Millisecond, "error must not stay visible without a pending auto-hide")

	inner.mu.Lock()
	defer inner.mu.Unlock()
	assert.True(t, inner.jobsVisible)
}
