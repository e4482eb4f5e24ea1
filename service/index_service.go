package service

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/ToTheRepublic/assessor-tools/utils"
)

// Columns the companion workbook must all carry before it is used for
// enrichment.
var enrichmentColumns = []string{
	"ACCOUNTNO", "NAME1", "BUSINESSNAME",
	"PREDIRECTION", "STREETNO", "POSTDIRECTION", "STREETNAME", "STREETTYPE",
}

var excelLocalNumberRe = regexp.MustCompile(`^\d{4,6}$`)

// IndexService scans stored county PDFs page by page and maintains the
// per-document-type account index on disk.
type IndexService struct {
	baseDir   string
	processor PDFProcessor

	// Rebuilds are skipped while the PDF, the companion workbook and the
	// document type are all unchanged. Guarded only because the router
	// serves requests concurrently; indexing itself is synchronous.
	mu    sync.Mutex
	cache map[indexCacheKey]*indexCacheEntry
}

type indexCacheKey struct {
	pdfPath   string
	excelPath string
	docType   dto.DocumentType
}

type indexCacheEntry struct {
	pdfModTime   time.Time
	excelModTime time.Time
	index        dto.DocumentIndex
}

func NewIndexService(baseDir string, processor PDFProcessor) *IndexService {
	return &IndexService{
		baseDir:   baseDir,
		processor: processor,
		cache:     make(map[indexCacheKey]*indexCacheEntry),
	}
}

// CountyDir returns the storage directory for a county.
func (s *IndexService) CountyDir(county string) string {
	return filepath.Join(s.baseDir, strings.ReplaceAll(county, " ", "_"))
}

// DocPath returns the stored file path for a county document, e.g.
// county_docs/Hot_Springs/tax_notice.pdf.
func (s *IndexService) DocPath(county string, docType dto.DocumentType, extension string) string {
	return filepath.Join(s.CountyDir(county), docType.FileStem()+"."+extension)
}

// IndexDocument builds the account index for the stored PDF of the given
// type, enriched from the companion workbook when present, persists it and
// returns it. Unchanged inputs return the cached index without a rescan.
func (s *IndexService) IndexDocument(county string, docType dto.DocumentType) (dto.DocumentIndex, error) {
	pdfPath := s.DocPath(county, docType, "pdf")
	excelPath := s.DocPath(county, docType, "xlsx")

	pdfInfo, err := os.Stat(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrIndexingFailure, err)
	}
	var excelModTime time.Time
	if excelInfo, err := os.Stat(excelPath); err == nil {
		excelModTime = excelInfo.ModTime()
	} else {
		excelPath = ""
	}

	key := indexCacheKey{pdfPath: pdfPath, excelPath: excelPath, docType: docType}
	s.mu.Lock()
	if entry, ok := s.cache[key]; ok &&
		entry.pdfModTime.Equal(pdfInfo.ModTime()) && entry.excelModTime.Equal(excelModTime) {
		index := entry.index
		s.mu.Unlock()
		log.Printf("Index for %s / %s unchanged, skipping rescan", county, docType)
		return index, nil
	}
	s.mu.Unlock()

	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrIndexingFailure, err)
	}
	pageTexts, err := s.processor.ExtractPageTexts(pdfData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", dto.ErrIndexingFailure, err)
	}

	var enrichment *dto.Dataset
	if excelPath != "" {
		enrichment, err = LoadWorkbookFile(excelPath)
		if err != nil {
			// Enrichment is optional; index from the PDF alone.
			log.Printf("Companion workbook unusable for %s / %s: %v", county, docType, err)
			enrichment = nil
		}
	}

	index := BuildIndex(pageTexts, enrichment, docType)

	if err := s.SaveIndex(county, docType, index); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = &indexCacheEntry{
		pdfModTime:   pdfInfo.ModTime(),
		excelModTime: excelModTime,
		index:        index,
	}
	s.mu.Unlock()

	log.Printf("Indexed %d account(s) for %s / %s", len(index), county, docType)
	return index, nil
}

// BuildIndex scans page texts in ascending page order and accumulates the
// account index. Pages without text or without an account contribute
// nothing. Descriptive fields are set at first sighting; a re-mention on
// the first-sighting page may backfill fields still empty, later pages
// never overwrite.
func BuildIndex(pageTexts []string, enrichment *dto.Dataset, docType dto.DocumentType) dto.DocumentIndex {
	lookup := enrichmentLookup(enrichment)

	index := make(dto.DocumentIndex)
	firstPage := make(map[string]int)

	for i, text := range pageTexts {
		pageNum := i + 1
		if strings.TrimSpace(text) == "" {
			continue
		}
		account, localNumber := utils.ExtractDocumentInfo(text, docType)
		if account == "" {
			continue
		}

		ownershipName := ""
		businessName := ""
		propertyAddress := ""
		if rec, ok := lookup[account]; ok {
			ownershipName = rec.Get("NAME1")
			businessName = rec.Get("BUSINESSNAME")
			propertyAddress = utils.ComposeAddress(rec,
				"PREDIRECTION", "STREETNO", "POSTDIRECTION", "STREETNAME", "STREETTYPE")
			if excelLocal := rec.Get("Local Number"); excelLocalNumberRe.MatchString(excelLocal) {
				localNumber = utils.PadLocalNumber(excelLocal)
			}
		}

		entry, seen := index[account]
		if !seen {
			index[account] = &dto.IndexEntry{
				LocalNumber:   localNumber,
				BusinessName:  businessName,
				Address:       propertyAddress,
				OwnershipName: ownershipName,
				Pages:         []int{pageNum},
			}
			firstPage[account] = pageNum
			continue
		}

		entry.Pages = append(entry.Pages, pageNum)
		if pageNum == firstPage[account] {
			if entry.BusinessName == "" && businessName != "" {
				entry.BusinessName = businessName
			}
			if entry.Address == "" && propertyAddress != "" {
				entry.Address = propertyAddress
			}
			if entry.OwnershipName == "" && ownershipName != "" {
				entry.OwnershipName = ownershipName
			}
		}
	}
	return index
}

// enrichmentLookup indexes the companion workbook by account number, but
// only when every required column is present.
func enrichmentLookup(ds *dto.Dataset) map[string]dto.Record {
	if ds.Empty() {
		return nil
	}
	for _, required := range enrichmentColumns {
		if !hasColumn(ds, required) {
			return nil
		}
	}
	lookup := make(map[string]dto.Record, len(ds.Rows))
	for _, rec := range ds.Rows {
		if account := strings.ToUpper(rec.Get("ACCOUNTNO")); account != "" {
			if _, ok := lookup[account]; !ok {
				lookup[account] = rec
			}
		}
	}
	return lookup
}

// SaveIndex persists the index as <doctype>.json in the county directory.
func (s *IndexService) SaveIndex(county string, docType dto.DocumentType, index dto.DocumentIndex) error {
	path := s.DocPath(county, docType, "json")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create county dir: %w", err)
	}
	data, err := json.MarshalIndent(index, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

// LoadIndex reads a persisted index; a missing file is an empty index.
func (s *IndexService) LoadIndex(county string, docType dto.DocumentType) (dto.DocumentIndex, error) {
	data, err := os.ReadFile(s.DocPath(county, docType, "json"))
	if err != nil {
		if os.IsNotExist(err) {
			return dto.DocumentIndex{}, nil
		}
		return nil, fmt.Errorf("failed to read index: %w", err)
	}
	var index dto.DocumentIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to decode index: %w", err)
	}
	return index, nil
}

var searchDigitsRe = regexp.MustCompile(`^\d{4,}$`)

// SearchIndex resolves a query against a built index: exact account key,
// exact local number (leading zeros ignored on both sides), or
// case-insensitive substring over ownership name, business name and
// address. Results follow index insertion order.
func SearchIndex(index dto.DocumentIndex, query string) []dto.SearchResult {
	query = strings.TrimSpace(query)
	results := []dto.SearchResult{}

	switch {
	case utils.DocAccountExact.MatchString(query):
		account := strings.ToUpper(query)
		if entry, ok := index[account]; ok {
			results = append(results, toSearchResult(account, entry))
		}

	case searchDigitsRe.MatchString(query):
		want := strings.TrimLeft(query, "0")
		for _, account := range index.Accounts() {
			entry := index[account]
			if strings.TrimLeft(entry.LocalNumber, "0") == want {
				results = append(results, toSearchResult(account, entry))
			}
		}

	default:
		needle := strings.ToLower(query)
		for _, account := range index.Accounts() {
			entry := index[account]
			if strings.Contains(strings.ToLower(entry.OwnershipName), needle) ||
				strings.Contains(strings.ToLower(entry.BusinessName), needle) ||
				strings.Contains(strings.ToLower(entry.Address), needle) {
				results = append(results, toSearchResult(account, entry))
			}
		}
	}
	return results
}

func toSearchResult(account string, entry *dto.IndexEntry) dto.SearchResult {
	return dto.SearchResult{
		Account:       account,
		LocalNumber:   strings.TrimLeft(entry.LocalNumber, "0"),
		OwnershipName: entry.OwnershipName,
		BusinessName:  entry.BusinessName,
		Address:       entry.Address,
		Pages:         entry.Pages,
	}
}
