package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/cvcoach/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(20)

	valueStyle = lipgloss.NewStyle()

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cardTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	companyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))
)

// Summary renders the analysis as a labelled block for a terminal of the
// given width. Values are wrapped to fit.
func Summary(a model.CVAnalysis, width int) string {
	valueWidth := max(width-labelStyle.GetWidth(), 20)

	var b strings.Builder
	b.WriteString(headingStyle.Render("✨ Wyniki analizy AI"))
	b.WriteByte('\n')

	row := func(label, value string) {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(label),
			valueStyle.Width(valueWidth).Render(value),
		))
		b.WriteByte('\n')
	}
	row("📍 Lokalizacja:", a.Location)
	row("💼 Branża:", a.JobBranch)
	row("🎓 Wykształcenie:", a.Education)
	row("⏱️ Doświadczenie:", ExperienceLine(a.TotalExperienceYears, a.BranchExperienceYears))
	row("🔧 Hard Skills:", a.HardSkills)
	row("💡 Soft Skills:", a.SoftSkills)
	return b.String()
}

// JobCard renders listing i (0-based) as a bordered card.
func JobCard(i int, job model.JobListing, width int) string {
	inner := max(width-4, 20)

	var b strings.Builder
	b.WriteString(cardTitleStyle.Render(fmt.Sprintf("%d. %s", i+1, job.Position)))
	b.WriteByte('\n')
	b.WriteString(companyStyle.Render("🏢 " + job.Company))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("📋 Wymagania:"))
	b.WriteByte('\n')
	b.WriteString(valueStyle.Width(inner).Render(job.Requirements))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("✨ Dlaczego pasuje:"))
	b.WriteByte('\n')
	b.WriteString(valueStyle.Width(inner).Render(job.MatchReason))

	return cardStyle.Width(inner + 2).Render(b.String())
}

// Jobs renders the title and the first visible cards. visible < 0 shows all.
func Jobs(title string, jobs []model.JobListing, visible, width int) string {
	if visible < 0 || visible > len(jobs) {
		visible = len(jobs)
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteByte('\n')
	for i := 0; i < visible; i++ {
		b.WriteString(JobCard(i, jobs[i], width))
		b.WriteByte('\n')
	}
	return b.String()
}
