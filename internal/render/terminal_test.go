package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amishk599/cvcoach/internal/model"
)

func TestSummary_ShowsFields(t *testing.T) {
	out := Summary(model.CVAnalysis{
		Location:              "Gdańsk",
		JobBranch:             "IT",
		TotalExperienceYears:  2,
		BranchExperienceYears: 2,
	}, 80)
	assert.Contains(t, out, "Gdańsk")
	assert.Contains(t, out, "2 lata (w tym 2 lata w branży)")
}

func TestJobs_VisibleLimitsCards(t *testing.T) {
	jobs := []model.JobListing{{Position: "Pierwsza"}, {Position: "Druga"}, {Position: "Trzecia"}}

	partial := Jobs("Oferty", jobs, 2, 80)
	assert.Contains(t, partial, "1. Pierwsza")
	assert.Contains(t, partial, "2. Druga")
	assert.NotContains(t, partial, "3. Trzecia")

	all := Jobs("Oferty", jobs, -1, 80)
	assert.True(t, strings.Contains(all, "3. Trzecia"))
}
