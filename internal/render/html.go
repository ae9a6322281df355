package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"

	"github.com/amishk599/cvcoach/internal/model"
)

var summaryTmpl = template.Must(template.New("summary").Parse(`
<h3>✨ Wyniki analizy AI</h3>
<p><strong>📍 Lokalizacja:</strong> {{.Location}}</p>
<p><strong>💼 Branża:</strong> {{.JobBranch}}</p>
<p><strong>🎓 Wykształcenie:</strong> {{.Education}}</p>
<p><strong>⏱️ Doświadczenie:</strong> {{.Experience}}</p>
<p><strong>🔧 Hard Skills:</strong> {{.HardSkills}}</p>
<p><strong>💡 Soft Skills:</strong> {{.SoftSkills}}</p>
`))

var jobsTmpl = template.Must(template.New("jobs").Parse(`<h2 id="jobsTitle">{{.Title}}</h2>
<div id="jobsList">
{{- range .Cards}}
<div class="job-card" style="animation: fadeIn 0.5s ease {{.Delay}}s both">
    <h3>{{.Number}}. {{.Position}}</h3>
    <p class="company">🏢 {{.Company}}</p>
    <div class="requirements">
        <strong>📋 Wymagania:</strong>
        <p>{{.Requirements}}</p>
    </div>
    <div class="match-reason">
        <strong>✨ Dlaczego pasuje:</strong>
        <p>{{.MatchReason}}</p>
    </div>
</div>
{{- end}}
</div>
`))

type summaryData struct {
	model.CVAnalysis
	Experience string
}

type cardData struct {
	model.JobListing
	Number int
	Delay  string
}

// SummaryHTML renders the analysis block. Every field is escaped.
func SummaryHTML(a model.CVAnalysis) (string, error) {
	var buf bytes.Buffer
	data := summaryData{
		CVAnalysis: a,
		Experience: ExperienceLine(a.TotalExperienceYears, a.BranchExperienceYears),
	}
	if err := summaryTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}
	return buf.String(), nil
}

// JobsHTML renders the titled job panel, one card per listing in order.
func JobsHTML(title string, jobs []model.JobListing) (string, error) {
	cards := make([]cardData, len(jobs))
	for i, j := range jobs {
		cards[i] = cardData{
			JobListing: j,
			Number:     i + 1,
			Delay:      CardDelaySeconds(i),
		}
	}

	var buf bytes.Buffer
	if err := jobsTmpl.Execute(&buf, struct {
		Title string
		Cards []cardData
	}{title, cards}); err != nil {
		return "", fmt.Errorf("render jobs: %w", err)
	}
	return buf.String(), nil
}

// CardDelaySeconds is the entrance-animation offset for card i (i × 0.1s).
func CardDelaySeconds(i int) string {
	return strconv.FormatFloat(float64(i)/10, 'f', -1, 64)
}
