package utils

import "strings"

// ParseFilerName reformats a surname-first name as "<surname>, <given names>".
// A single token yields "<surname>, " with an empty given-name part.
func ParseFilerName(fullName string) string {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return ""
	}
	parts := strings.Fields(fullName)
	last := parts[0]
	first := ""
	if len(parts) > 1 {
		first = strings.Join(parts[1:], " ")
	}
	return last + ", " + first
}
