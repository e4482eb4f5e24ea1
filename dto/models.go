package dto

import (
	"fmt"
	"sort"
	"strings"
)

// DocumentType identifies which identifier-extraction rule applies to a
// scanned county mailing.
type DocumentType string

const (
	DocTypeNoticeOfValue DocumentType = "Notice of Value"
	DocTypeDeclaration   DocumentType = "Declaration"
	DocTypeTaxNotice     DocumentType = "Tax Notice"
)

// DocTypes lists every supported document type.
var DocTypes = []DocumentType{DocTypeNoticeOfValue, DocTypeDeclaration, DocTypeTaxNotice}

// FileStem returns the on-disk stem for this document type, e.g.
// "notice_of_value" for the PDF, Excel and index files.
func (t DocumentType) FileStem() string {
	return strings.ToLower(strings.ReplaceAll(string(t), " ", "_"))
}

// ParseDocType accepts either the display name or the file stem.
func ParseDocType(s string) (DocumentType, error) {
	for _, t := range DocTypes {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.FileStem()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown document type: %q", s)
}

// IndexEntry holds everything indexed for one account in one document.
// Pages are 1-based and appended in scan order, so they are strictly
// increasing within a single indexing pass.
type IndexEntry struct {
	LocalNumber   string `json:"local_number"`
	BusinessName  string `json:"business_name"`
	Address       string `json:"address"`
	OwnershipName string `json:"ownership_name"`
	Pages         []int  `json:"pages"`
}

// DocumentIndex maps AccountKey -> IndexEntry for one document type.
type DocumentIndex map[string]*IndexEntry

// Accounts returns account keys in insertion order. The order is not
// persisted in the JSON object, but a scan pass inserts accounts in
// first-sighting page order, so sorting by first page reconstructs it.
func (idx DocumentIndex) Accounts() []string {
	accounts := make([]string, 0, len(idx))
	for acc := range idx {
		accounts = append(accounts, acc)
	}
	sort.Slice(accounts, func(i, j int) bool {
		pi, pj := firstPage(idx[accounts[i]]), firstPage(idx[accounts[j]])
		if pi != pj {
			return pi < pj
		}
		return accounts[i] < accounts[j]
	})
	return accounts
}

func firstPage(e *IndexEntry) int {
	if e == nil || len(e.Pages) == 0 {
		return 0
	}
	return e.Pages[0]
}

// SearchResult is one index hit for a search query.
type SearchResult struct {
	Account       string `json:"acc"`
	LocalNumber   string `json:"local_number"` // leading zeros stripped for display
	OwnershipName string `json:"ownership_name"`
	BusinessName  string `json:"business_name"`
	Address       string `json:"address"`
	Pages         []int  `json:"pages"`
}

// ExclusionEntry is a confirmed-benign match pair suppressed from future
// potential-match reports. Legacy blacklists stored bare account strings;
// those load with empty address fields.
type ExclusionEntry struct {
	ApplicantAccount  string `json:"applicant_account"`
	Account           string `json:"account"`
	ApplicantAddress  string `json:"applicant_address"`
	NormalizedAddress string `json:"norm_addr"`
}

// MatchRow is one display row of the account comparison output. Marker
// rows announcing duplicate accounts carry the note in AccountNumber and
// leave every other field empty.
type MatchRow struct {
	AccountNumber string `json:"account_number"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	FilerName     string `json:"filer_name"`
	FilerAddress  string `json:"filer_address"`
	FilerPhone    string `json:"filer_phone"`
}

// MultipleEntriesMarker builds the marker row emitted before a group of
// rows sharing one account number.
func MultipleEntriesMarker(count int) MatchRow {
	return MatchRow{
		AccountNumber: fmt.Sprintf("*** The below account has %d entries ***", count),
	}
}

// AddressMatch is a potential undisclosed-relationship pair: an applicant
// record and a county account record sharing a normalized street address.
type AddressMatch struct {
	ApplicantAccount  string `json:"applicant_account"`
	ApplicantName     string `json:"applicant_name"`
	ApplicantAddress  string `json:"applicant_address"`
	MatchedAccount    string `json:"matched_account"`
	MatchedAddress    string `json:"matched_address"`
	NormalizedAddress string `json:"norm_addr"`
}
