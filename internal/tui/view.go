package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/cvcoach/internal/intake"
	"github.com/amishk599/cvcoach/internal/render"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Padding(0, 1)

	dropZoneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	fileInfoStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("39")).
			Padding(0, 1)

	fileSizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("160")).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	resultsBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))
)

func (m *appModel) recalcLayout() {
	// Title (1) + file box (3) + error line (1 when shown) + results border (2) + status bar (1).
	overhead := 7
	if m.errText != "" {
		overhead++
	}
	w := max(m.width-2, 20)
	h := max(m.height-overhead, 3)

	if !m.ready {
		m.viewport = viewport.New(w, h)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = h
	}
	m.recalcContent()
}

func (m *appModel) recalcContent() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderResults())
}

// scrollToJobs brings the job panel heading into view.
func (m *appModel) scrollToJobs() {
	if m.analysis == nil {
		m.viewport.GotoTop()
		return
	}
	m.viewport.SetYOffset(lipgloss.Height(render.Summary(*m.analysis, m.viewport.Width)))
}

func (m appModel) renderResults() string {
	var parts []string
	if m.analysis != nil {
		parts = append(parts, render.Summary(*m.analysis, m.viewport.Width))
	}
	if m.jobsVisible {
		parts = append(parts, render.Jobs(m.jobsTitle, m.jobs, m.revealed, m.viewport.Width-2))
	}
	return strings.Join(parts, "\n")
}

func (m appModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.picking {
		return titleStyle.Render("Wybierz plik PDF") + "\n" + m.picker.View() + "\n" +
			statusBarStyle.Width(m.width).Render("↑/↓ nawigacja  enter wybierz  esc wróć")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("CV Coach"))
	b.WriteByte('\n')
	b.WriteString(m.renderFileBox())
	b.WriteByte('\n')
	if m.errText != "" {
		b.WriteString(errorStyle.Width(m.width).Render("⚠ " + m.errText))
		b.WriteByte('\n')
	}
	b.WriteString(resultsBorderStyle.Width(m.viewport.Width).Render(m.viewport.View()))
	b.WriteByte('\n')
	b.WriteString(m.renderStatusBar())
	return b.String()
}

func (m appModel) renderFileBox() string {
	w := max(m.width-4, 20)
	if m.file == nil {
		return dropZoneStyle.Width(w).Render("Upuść lub wklej ścieżkę pliku PDF albo naciśnij b, aby wybrać plik")
	}
	info := "📄 " + m.file.Name + "  " + fileSizeStyle.Render(intake.FormatFileSize(m.file.Size))
	if m.file.Pages > 0 {
		info += fileSizeStyle.Render(fmt.Sprintf(" · %d str.", m.file.Pages))
	}
	return fileInfoStyle.Width(w).Render(info)
}

func (m appModel) renderStatusBar() string {
	submit := "enter analizuj"
	if !m.submitEnabled {
		submit = disabledStyle.Render(submit)
	}
	text := submit + "  m dopasowane  l alternatywne  b wybierz  x usuń  ↑/↓ przewiń  q wyjście"
	if m.busy {
		text = m.spinner.View() + " Przetwarzanie...  " + text
	}
	return statusBarStyle.Width(m.width).Render(text)
}
