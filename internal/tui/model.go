// Package tui is the interactive terminal front end: a file picker, a busy
// spinner, an error banner and a scrollable results pane.
package tui

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/cvcoach/internal/model"
)

// revealInterval is the delay between successive job cards.
const revealInterval = 100 * time.Millisecond

// Actions is the part of the controller the TUI drives. Every call runs in a
// tea.Cmd goroutine, never inside Update.
type Actions interface {
	SelectFile(path string) error
	RemoveFile()
	Submit(ctx context.Context) error
	FindMatching(ctx context.Context) error
	FindAlternative(ctx context.Context) error
}

type appModel struct {
	ctx         context.Context
	actions     Actions
	initialPath string

	picker   filepicker.Model
	picking  bool
	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool

	file          *model.SelectedFile
	submitEnabled bool
	busy          bool
	errText       string

	analysis *model.CVAnalysis

	jobsVisible bool
	jobsTitle   string
	jobs        []model.JobListing
	revealed    int
	revealGen   int
}

func newModel(ctx context.Context, actions Actions, initialPath string) appModel {
	dir, _ := os.Getwd()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return appModel{
		ctx:         ctx,
		actions:     actions,
		initialPath: initialPath,
		picker:      newPicker(dir),
		spinner:     sp,
	}
}

func newPicker(dir string) filepicker.Model {
	fp := filepicker.New()
	fp.AutoHeight = true
	if dir != "" {
		fp.CurrentDirectory = dir
	}
	return fp
}

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.picker.Init()}
	if m.initialPath != "" {
		cmds = append(cmds, m.selectCmd(m.initialPath))
	}
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case fileShownMsg:
		f := msg.file
		m.file = &f
		return m, nil

	case fileClearedMsg:
		// Reset the picker too so the removed file is no longer its selection.
		m.file = nil
		m.picker = newPicker(m.picker.CurrentDirectory)
		if m.ready {
			m.picker, _ = m.picker.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		}
		return m, m.picker.Init()

	case submitMsg:
		m.submitEnabled = msg.enabled
		return m, nil

	case busyMsg:
		m.busy = msg.busy
		if m.busy {
			return m, m.spinner.Tick
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case errorShownMsg:
		m.errText = msg.text
		m.recalcLayout()
		return m, nil

	case errorHiddenMsg:
		m.errText = ""
		m.recalcLayout()
		return m, nil

	case analysisShownMsg:
		a := msg.analysis
		m.analysis = &a
		m.recalcContent()
		m.viewport.GotoTop()
		return m, nil

	case analysisHiddenMsg:
		m.analysis = nil
		m.recalcContent()
		return m, nil

	case jobsShownMsg:
		m.jobsVisible = true
		m.jobsTitle = msg.title
		m.jobs = msg.jobs
		m.revealGen++
		m.revealed = min(1, len(m.jobs))
		m.recalcContent()
		m.scrollToJobs()
		return m, m.revealCmd()

	case jobsHiddenMsg:
		m.jobsVisible = false
		m.jobs = nil
		m.revealGen++
		m.recalcContent()
		return m, nil

	case revealTickMsg:
		if msg.gen != m.revealGen || m.revealed >= len(m.jobs) {
			return m, nil
		}
		m.revealed++
		m.recalcContent()
		return m, m.revealCmd()

	case tea.KeyMsg:
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateMain(msg)
	}

	// Directory listings and other internal picker messages.
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m appModel) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Paste {
		if path := cleanDroppedPath(string(msg.Runes)); path != "" {
			return m, m.selectCmd(path)
		}
		return m, nil
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		// A selected file with submit disabled means an upload is in flight.
		if m.file != nil && !m.submitEnabled {
			return m, nil
		}
		return m, m.runCmd(m.actions.Submit)
	case "m":
		return m, m.runCmd(m.actions.FindMatching)
	case "l":
		return m, m.runCmd(m.actions.FindAlternative)
	case "x", "delete":
		actions := m.actions
		return m, func() tea.Msg {
			actions.RemoveFile()
			return nil
		}
	case "b", "tab":
		m.picking = true
		return m, m.picker.Init()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m appModel) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		return m, tea.Batch(cmd, m.selectCmd(path))
	}
	return m, cmd
}

func (m appModel) selectCmd(path string) tea.Cmd {
	actions := m.actions
	return func() tea.Msg {
		_ = actions.SelectFile(path) // rejection is shown by the controller
		return nil
	}
}

func (m appModel) runCmd(flow func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_ = flow(ctx)
		return nil
	}
}

func (m appModel) revealCmd() tea.Cmd {
	if m.revealed >= len(m.jobs) {
		return nil
	}
	gen := m.revealGen
	return tea.Tick(revealInterval, func(time.Time) tea.Msg {
		return revealTickMsg{gen: gen}
	})
}

// cleanDroppedPath turns a pasted or dropped path into a plain file path.
// Terminals quote or backslash-escape dropped paths; only the first one counts.
func cleanDroppedPath(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	s = strings.TrimPrefix(s, "file://")
	return strings.ReplaceAll(s, `\ `, " ")
}
