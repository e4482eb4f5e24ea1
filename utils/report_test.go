package utils

import (
	"strings"
	"testing"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/stretchr/testify/assert"
)

func TestRenderMatchReportEmpty(t *testing.T) {
	assert.Equal(t, "No matching accounts found.", RenderMatchReport(nil))
}

func TestRenderMatchReport(t *testing.T) {
	rows := []dto.MatchRow{
		{
			AccountNumber: "R0001234",
			Name:          "SMITH JOHN",
			Address:       "12 Main St",
			FilerName:     "SMITH, JOHN",
			FilerAddress:  "PO Box 9",
			FilerPhone:    "307-555-0100",
		},
	}

	report := RenderMatchReport(rows)
	lines := strings.Split(report, "\n")

	assert.Equal(t, "ALL MATCHING ACCOUNTS WITH DATA FROM HO APPLICANT FILE", lines[0])
	assert.Equal(t, "", lines[1])
	assert.Contains(t, lines[2], "Account Number")
	assert.Contains(t, lines[2], "Filer Phone #")
	assert.True(t, strings.HasPrefix(lines[3], strings.Repeat("-", 15)+" "+strings.Repeat("-", 40)))

	// Fixed column offsets: 15/40/30/40/30/20 plus one space between.
	data := lines[4]
	assert.Equal(t, "R0001234", strings.TrimSpace(data[0:15]))
	assert.Equal(t, "SMITH JOHN", strings.TrimSpace(data[16:56]))
	assert.Equal(t, "12 Main St", strings.TrimSpace(data[57:87]))
	assert.Equal(t, "SMITH, JOHN", strings.TrimSpace(data[88:128]))
	assert.Equal(t, "PO Box 9", strings.TrimSpace(data[129:159]))
	assert.Equal(t, "307-555-0100", strings.TrimSpace(data[160:]))
}
