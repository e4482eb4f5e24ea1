package utils

import (
	"regexp"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/dto"
)

// suffixAbbrevs maps full street-suffix words to their canonical
// abbreviations. Substitution is whole-word so "Streeter" stays intact.
var suffixAbbrevs = []struct {
	re   *regexp.Regexp
	abbr string
}{
	{regexp.MustCompile(`\bstreet\b`), "st"},
	{regexp.MustCompile(`\bavenue\b`), "ave"},
	{regexp.MustCompile(`\bboulevard\b`), "blvd"},
	{regexp.MustCompile(`\bdrive\b`), "dr"},
	{regexp.MustCompile(`\broad\b`), "rd"},
	{regexp.MustCompile(`\bcircle\b`), "cir"},
	{regexp.MustCompile(`\bcourt\b`), "ct"},
	{regexp.MustCompile(`\blane\b`), "ln"},
	{regexp.MustCompile(`\bplace\b`), "pl"},
	{regexp.MustCompile(`\balley\b`), "aly"},
	{regexp.MustCompile(`\bcenter\b`), "ctr"},
	{regexp.MustCompile(`\bhighway\b`), "hwy"},
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeAddress canonicalizes a free-text street address for equality
// comparison: lower-case, suffix words abbreviated, whitespace collapsed.
// Normalization is idempotent; empty input yields "".
func NormalizeAddress(address string) string {
	s := strings.ToLower(strings.TrimSpace(address))
	if s == "" {
		return ""
	}
	for _, sub := range suffixAbbrevs {
		s = sub.re.ReplaceAllString(s, sub.abbr)
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ComposeAddress joins the named columns of a record with single spaces,
// skipping empty components.
func ComposeAddress(rec dto.Record, cols ...string) string {
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		if v := rec.Get(col); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// ApplicantAddressCols are the street components of applicant and master
// list rows, in display order.
var ApplicantAddressCols = []string{"Predirection", "Street Number", "Street Name", "Street Type"}
