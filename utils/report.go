package utils

import (
	"fmt"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/dto"
)

const reportTitle = "ALL MATCHING ACCOUNTS WITH DATA FROM HO APPLICANT FILE"

// Column widths of the comparison report, left-justified, space-padded.
var reportWidths = []int{15, 40, 30, 40, 30, 20}

var reportHeaders = []string{"Account Number", "Name", "Address", "Filer Name", "Filer Address", "Filer Phone #"}

// RenderMatchReport renders the comparison output as a fixed-width text
// table, matching the downloadable .txt the county offices file away.
func RenderMatchReport(rows []dto.MatchRow) string {
	if len(rows) == 0 {
		return "No matching accounts found."
	}

	var b strings.Builder
	b.WriteString(reportTitle + "\n\n")

	writeReportRow(&b, reportHeaders)

	separators := make([]string, len(reportWidths))
	for i, w := range reportWidths {
		separators[i] = strings.Repeat("-", w)
	}
	writeReportRow(&b, separators)

	for _, row := range rows {
		writeReportRow(&b, []string{
			row.AccountNumber,
			row.Name,
			row.Address,
			row.FilerName,
			row.FilerAddress,
			row.FilerPhone,
		})
	}
	return b.String()
}

func writeReportRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(b, "%-*s", reportWidths[i], cell)
	}
	b.WriteString("\n")
}
