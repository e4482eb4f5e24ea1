package service

import (
	"os"
	"testing"
	"time"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/stretchr/testify/assert"
)

// stubProcessor returns canned page texts and counts extraction calls.
type stubProcessor struct {
	pages []string
	calls int
}

func (p *stubProcessor) ExtractPageTexts(data []byte) ([]string, error) {
	p.calls++
	return p.pages, nil
}

func (p *stubProcessor) ExtractPages(data []byte, pages []int) ([]byte, error) {
	return data, nil
}

func noticePage(account, localNumber string) string {
	text := "NOTICE OF VALUE\n" + account + "\n"
	if localNumber != "" {
		text += localNumber + "\n"
	}
	return text + "Tax District 100\n"
}

func enrichmentDataset(rows ...dto.Record) *dto.Dataset {
	return &dto.Dataset{
		Columns: []string{
			"ACCOUNTNO", "NAME1", "BUSINESSNAME",
			"PREDIRECTION", "STREETNO", "POSTDIRECTION", "STREETNAME", "STREETTYPE",
			"Local Number",
		},
		Rows: rows,
	}
}

func TestBuildIndexPagesAndLocalNumbers(t *testing.T) {
	pages := []string{
		noticePage("R0007425", "00042"),
		"",
		noticePage("r0007425", "00042"),
		noticePage("M0007419", ""),
		"no account on this page",
	}

	index := BuildIndex(pages, nil, dto.DocTypeNoticeOfValue)

	assert.Len(t, index, 2)
	assert.Equal(t, []int{1, 3}, index["R0007425"].Pages)
	assert.Equal(t, "0042", index["R0007425"].LocalNumber)
	assert.Equal(t, []int{4}, index["M0007419"].Pages)
	assert.Equal(t, "", index["M0007419"].LocalNumber)
}

func TestBuildIndexAccountsOrderedByFirstPage(t *testing.T) {
	pages := []string{
		noticePage("R0009999", "0001"),
		noticePage("M0001111", "0002"),
		noticePage("R0009999", "0001"),
	}

	index := BuildIndex(pages, nil, dto.DocTypeNoticeOfValue)

	assert.Equal(t, []string{"R0009999", "M0001111"}, index.Accounts())
}

func TestBuildIndexEnrichment(t *testing.T) {
	pages := []string{noticePage("R0007425", "00042")}
	enrichment := enrichmentDataset(dto.Record{
		"ACCOUNTNO":    "r0007425",
		"NAME1":        "SMITH JOHN",
		"BUSINESSNAME": "SMITH HOLDINGS LLC",
		"STREETNO":     "789",
		"STREETNAME":   "ELM",
		"STREETTYPE":   "DR",
		"Local Number": "00420",
	})

	index := BuildIndex(pages, enrichment, dto.DocTypeNoticeOfValue)

	entry := index["R0007425"]
	assert.NotNil(t, entry)
	assert.Equal(t, "SMITH JOHN", entry.OwnershipName)
	assert.Equal(t, "SMITH HOLDINGS LLC", entry.BusinessName)
	assert.Equal(t, "789 ELM DR", entry.Address)
	assert.Equal(t, "0420", entry.LocalNumber)
}

func TestBuildIndexEnrichmentRequiresAllColumns(t *testing.T) {
	pages := []string{noticePage("R0007425", "00042")}
	partial := &dto.Dataset{
		Columns: []string{"ACCOUNTNO", "NAME1"},
		Rows:    []dto.Record{{"ACCOUNTNO": "R0007425", "NAME1": "SMITH JOHN"}},
	}

	index := BuildIndex(pages, partial, dto.DocTypeNoticeOfValue)

	entry := index["R0007425"]
	assert.NotNil(t, entry)
	assert.Equal(t, "", entry.OwnershipName)
	assert.Equal(t, "0042", entry.LocalNumber)
}

func TestSearchIndexExactAccount(t *testing.T) {
	index := dto.DocumentIndex{
		"R0007425": {LocalNumber: "0042", OwnershipName: "SMITH JOHN", Pages: []int{1}},
	}

	results := SearchIndex(index, "r0007425")

	assert.Len(t, results, 1)
	assert.Equal(t, "R0007425", results[0].Account)
	assert.Equal(t, "42", results[0].LocalNumber)

	assert.Empty(t, SearchIndex(index, "M0001234"))
}

func TestSearchIndexLocalNumber(t *testing.T) {
	index := dto.DocumentIndex{
		"R0007425": {LocalNumber: "0042", Pages: []int{1}},
		"M0007419": {LocalNumber: "1234", Pages: []int{2}},
	}

	results := SearchIndex(index, "0042")
	assert.Len(t, results, 1)
	assert.Equal(t, "R0007425", results[0].Account)

	// Leading zeros are ignored on both sides.
	assert.Equal(t, results, SearchIndex(index, "000042"))
}

func TestSearchIndexFreeText(t *testing.T) {
	index := dto.DocumentIndex{
		"R0007425": {OwnershipName: "SMITH JOHN", Pages: []int{1}},
		"M0007419": {BusinessName: "SMITH HOLDINGS LLC", Pages: []int{2}},
		"P0001111": {Address: "789 ELM DR", Pages: []int{3}},
	}

	results := SearchIndex(index, "smith")
	assert.Len(t, results, 2)
	assert.Equal(t, "R0007425", results[0].Account)
	assert.Equal(t, "M0007419", results[1].Account)

	results = SearchIndex(index, "elm")
	assert.Len(t, results, 1)
	assert.Equal(t, "P0001111", results[0].Account)

	assert.Empty(t, SearchIndex(index, "nomatch"))
}

func TestSaveLoadIndexRoundtrip(t *testing.T) {
	svc := NewIndexService(t.TempDir(), &stubProcessor{})

	index := dto.DocumentIndex{
		"R0007425": {
			LocalNumber:   "0042",
			BusinessName:  "SMITH HOLDINGS LLC",
			Address:       "789 ELM DR",
			OwnershipName: "SMITH JOHN",
			Pages:         []int{1, 3},
		},
	}
	assert.NoError(t, svc.SaveIndex("Laramie", dto.DocTypeNoticeOfValue, index))

	loaded, err := svc.LoadIndex("Laramie", dto.DocTypeNoticeOfValue)
	assert.NoError(t, err)
	assert.Equal(t, index, loaded)
}

func TestLoadIndexMissingFile(t *testing.T) {
	svc := NewIndexService(t.TempDir(), &stubProcessor{})

	index, err := svc.LoadIndex("Laramie", dto.DocTypeTaxNotice)

	assert.NoError(t, err)
	assert.Empty(t, index)
}

func TestIndexDocumentCaching(t *testing.T) {
	dir := t.TempDir()
	processor := &stubProcessor{pages: []string{noticePage("R0007425", "00042")}}
	svc := NewIndexService(dir, processor)

	pdfPath := svc.DocPath("Laramie", dto.DocTypeNoticeOfValue, "pdf")
	assert.NoError(t, os.MkdirAll(svc.CountyDir("Laramie"), 0755))
	assert.NoError(t, os.WriteFile(pdfPath, []byte("%PDF-fake"), 0644))

	index, err := svc.IndexDocument("Laramie", dto.DocTypeNoticeOfValue)
	assert.NoError(t, err)
	assert.Len(t, index, 1)
	assert.Equal(t, 1, processor.calls)

	// Unchanged file: served from cache, no rescan.
	_, err = svc.IndexDocument("Laramie", dto.DocTypeNoticeOfValue)
	assert.NoError(t, err)
	assert.Equal(t, 1, processor.calls)

	// Touch the PDF: rescan.
	later := time.Now().Add(2 * time.Second)
	assert.NoError(t, os.Chtimes(pdfPath, later, later))
	_, err = svc.IndexDocument("Laramie", dto.DocTypeNoticeOfValue)
	assert.NoError(t, err)
	assert.Equal(t, 2, processor.calls)
}

func TestIndexDocumentMissingPDF(t *testing.T) {
	svc := NewIndexService(t.TempDir(), &stubProcessor{})

	_, err := svc.IndexDocument("Laramie", dto.DocTypeNoticeOfValue)

	assert.ErrorIs(t, err, dto.ErrIndexingFailure)
}
