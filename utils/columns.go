package utils

import (
	"regexp"

	"github.com/ToTheRepublic/assessor-tools/dto"
)

// DefaultAccountKeyPattern matches the account numbering used by the
// applicant and master lists: classification letter M or R plus 7 digits.
// Account values are case-insensitive on input.
const DefaultAccountKeyPattern = `^[MR]\d{7}$`

var (
	nameColRe   = regexp.MustCompile(`(?i)name|owner`)
	phoneColRe  = regexp.MustCompile(`(?i)phone`)
	filerAddrRe = regexp.MustCompile(`Filer Address`)
)

// ColumnProbe is the discovered column layout of a dataset. Empty fields
// mean the column was not found; downstream code degrades gracefully
// instead of re-probing.
type ColumnProbe struct {
	AccountCol      string
	NameCol         string
	PhoneCol        string
	FilerAddressCol string
}

// ProbeColumns locates the account, name, phone and filer-address columns
// in one pass. Only the account column is probed by value; the rest by
// column name.
func ProbeColumns(ds *dto.Dataset, accountPattern *regexp.Regexp) ColumnProbe {
	return ColumnProbe{
		AccountCol:      FindAccountColumn(ds, accountPattern),
		NameCol:         FindNameColumn(ds),
		PhoneCol:        FindPhoneColumn(ds),
		FilerAddressCol: FindFilerAddressColumn(ds),
	}
}

// FindAccountColumn returns the first column where at least one cell value
// matches the account pattern, or "" if none qualifies.
func FindAccountColumn(ds *dto.Dataset, accountPattern *regexp.Regexp) string {
	for _, col := range ds.Columns {
		for _, row := range ds.Rows {
			if accountPattern.MatchString(row.Get(col)) {
				return col
			}
		}
	}
	return ""
}

// FindNameColumn returns the first column whose name contains "name" or
// "owner" (case-insensitive), or "".
func FindNameColumn(ds *dto.Dataset) string {
	for _, col := range ds.Columns {
		if nameColRe.MatchString(col) {
			return col
		}
	}
	return ""
}

// FindPhoneColumn returns the first column whose name contains "phone"
// (case-insensitive), or "".
func FindPhoneColumn(ds *dto.Dataset) string {
	for _, col := range ds.Columns {
		if phoneColRe.MatchString(col) {
			return col
		}
	}
	return ""
}

// FindFilerAddressColumn returns the first column whose name contains the
// literal "Filer Address", or "".
func FindFilerAddressColumn(ds *dto.Dataset) string {
	for _, col := range ds.Columns {
		if filerAddrRe.MatchString(col) {
			return col
		}
	}
	return ""
}
