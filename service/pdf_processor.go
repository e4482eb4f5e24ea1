package service

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type PDFProcessor interface {
	// ExtractPageTexts returns the plain text of every page in order.
	// Pages with no extractable text come back as "".
	ExtractPageTexts(pdfData []byte) ([]string, error)
	// ExtractPages produces a new PDF containing exactly the given
	// 1-based pages, sorted ascending and de-duplicated.
	ExtractPages(pdfData []byte, pages []int) ([]byte, error)
}

type pdfProcessor struct{}

func NewPDFProcessor() PDFProcessor {
	return &pdfProcessor{}
}

func (p *pdfProcessor) ExtractPageTexts(pdfData []byte) ([]string, error) {
	r, err := pdf.NewReader(bytes.NewReader(pdfData), int64(len(pdfData)))
	if err != nil {
		return nil, err
	}

	totalPage := r.NumPage()
	texts := make([]string, 0, totalPage)

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			texts = append(texts, "")
			continue
		}

		var textBuilder bytes.Buffer
		rows, _ := page.GetTextByRow()
		for _, row := range rows {
			for _, word := range row.Content {
				textBuilder.WriteString(word.S)
			}
			textBuilder.WriteString("\n")
		}
		texts = append(texts, textBuilder.String())
	}
	return texts, nil
}

func (p *pdfProcessor) ExtractPages(pdfData []byte, pages []int) ([]byte, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages selected")
	}

	// Sort and de-dup so a malformed index cannot duplicate pages.
	seen := make(map[int]bool, len(pages))
	selected := make([]int, 0, len(pages))
	for _, n := range pages {
		if n > 0 && !seen[n] {
			seen[n] = true
			selected = append(selected, n)
		}
	}
	sort.Ints(selected)

	// pdfcpu operates on files, so round-trip through temp files.
	inFile, err := os.CreateTemp("", "doc-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(inFile.Name())

	if _, err := inFile.Write(pdfData); err != nil {
		inFile.Close()
		return nil, fmt.Errorf("failed to write pdf data: %w", err)
	}
	inFile.Close()

	outFile, err := os.CreateTemp("", "extract-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	outFile.Close()
	defer os.Remove(outFile.Name())

	pageSel := make([]string, len(selected))
	for i, n := range selected {
		pageSel[i] = strconv.Itoa(n)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.TrimFile(inFile.Name(), outFile.Name(), pageSel, conf); err != nil {
		return nil, fmt.Errorf("failed to extract pages: %w", err)
	}

	return os.ReadFile(outFile.Name())
}
