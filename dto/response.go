package dto

import "errors"

// Comparison and indexing failures callers are expected to check for.
var (
	ErrMissingKeyColumn = errors.New("could not identify account number column")
	ErrEmptyDataset     = errors.New("dataset has no rows")
	ErrNoValidKeys      = errors.New("no valid account numbers found after filtering")
	ErrIndexingFailure  = errors.New("document indexing failed")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// CompareResponse is the account comparison result: structured rows plus
// the rendered fixed-width text report offered for download.
type CompareResponse struct {
	County  string     `json:"county"`
	Matches []MatchRow `json:"matches"`
	Report  string     `json:"report"`
}

// AddressMatchResponse carries potential same-address matches.
type AddressMatchResponse struct {
	County  string         `json:"county"`
	Matches []AddressMatch `json:"matches"`
}

// SearchResponse carries index search hits in index order.
type SearchResponse struct {
	County  string         `json:"county"`
	DocType DocumentType   `json:"doc_type"`
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

// DocStatus reports the stored files and index state for one document type.
type DocStatus struct {
	DocType     DocumentType `json:"doc_type"`
	PDFExists   bool         `json:"pdf_exists"`
	PDFSize     int64        `json:"pdf_size"`
	ExcelExists bool         `json:"excel_exists"`
	ExcelSize   int64        `json:"excel_size"`
	Indexed     bool         `json:"indexed"`
}
