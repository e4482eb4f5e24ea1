package utils

import (
	"regexp"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/dto"
)

// Account numbering used on scanned county mailings: classification letter
// then "000" then 4-5 digits, e.g. R0007425. Mailings print it in mixed
// case, so matching is case-insensitive and the result upper-cased.
var (
	docAccountRe     = regexp.MustCompile(`(?i)[RMPO]000\d{4,5}`)
	DocAccountExact  = regexp.MustCompile(`(?i)^[RMPO]000\d{4,5}$`)
	localNumberRe    = regexp.MustCompile(`^\d{4,6}$`)
	declarationNumRe = regexp.MustCompile(`^\d{4}$`)
	taxNoticeIDRe    = regexp.MustCompile(`(?i)LOCAL/REALWARE ID #\s*(\d+)/([RMPO]000\d{4,5})`)
)

const declarationDateLine = "January 1, 2025"

// ExtractDocumentInfo runs the document-type-specific identifier rule
// against one page of extracted text. Either value may come back empty.
func ExtractDocumentInfo(text string, docType dto.DocumentType) (account, localNumber string) {
	switch docType {
	case dto.DocTypeNoticeOfValue:
		return extractNoticeOfValue(text)
	case dto.DocTypeDeclaration:
		return extractDeclaration(text)
	case dto.DocTypeTaxNotice:
		return extractTaxNotice(text)
	}
	return "", ""
}

// extractNoticeOfValue finds the first account match over whitespace-
// normalized lines; the local number, if present, sits on the next line as
// a bare 4-6 digit value.
func extractNoticeOfValue(text string) (string, string) {
	lines := normalizeLines(splitLines(text))
	account := ""
	localNumber := ""

	accountIndex := -1
	for i, line := range lines {
		if m := docAccountRe.FindString(line); m != "" {
			account = strings.ToUpper(m)
			accountIndex = i
			break
		}
	}

	if accountIndex != -1 && accountIndex+1 < len(lines) {
		candidate := lines[accountIndex+1]
		if localNumberRe.MatchString(candidate) {
			localNumber = PadLocalNumber(candidate)
		}
	}

	return account, localNumber
}

// extractDeclaration takes the first account match anywhere on the page.
// The local number is the 4-digit line right after the assessment date
// line, kept verbatim.
func extractDeclaration(text string) (string, string) {
	lines := splitLines(text)
	account := ""
	localNumber := ""

	for _, line := range lines {
		if m := docAccountRe.FindString(line); m != "" {
			account = strings.ToUpper(m)
			break
		}
	}

	for i, line := range lines {
		if strings.Contains(line, declarationDateLine) {
			if i+1 < len(lines) && declarationNumRe.MatchString(lines[i+1]) {
				localNumber = lines[i+1]
			}
			break
		}
	}

	return account, localNumber
}

// extractTaxNotice pulls local number and account together from the first
// "LOCAL/REALWARE ID #" line. Scanning stops at that line even if the pair
// does not parse.
func extractTaxNotice(text string) (string, string) {
	account := ""
	localNumber := ""

	for _, line := range splitLines(text) {
		if strings.Contains(line, "LOCAL/REALWARE ID #") {
			if m := taxNoticeIDRe.FindStringSubmatch(line); m != nil {
				localNumber = PadLocalNumber(m[1])
				account = strings.ToUpper(m[2])
			}
			break
		}
	}

	return account, localNumber
}

// PadLocalNumber strips leading zeros then left-pads back to 4 digits, so
// "00042" and "42" both display as "0042".
func PadLocalNumber(s string) string {
	s = strings.TrimLeft(s, "0")
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}

// splitLines returns the non-empty trimmed lines of a page.
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func normalizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = strings.TrimSpace(whitespaceRe.ReplaceAllString(line, " "))
	}
	return out
}
