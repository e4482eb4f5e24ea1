package handler

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/ToTheRepublic/assessor-tools/service"

	"github.com/gin-gonic/gin"
)

type DocsHandler struct {
	indexService *service.IndexService
	processor    service.PDFProcessor
}

func NewDocsHandler(indexService *service.IndexService, processor service.PDFProcessor) *DocsHandler {
	return &DocsHandler{
		indexService: indexService,
		processor:    processor,
	}
}

func docTypeParam(c *gin.Context) (dto.DocumentType, bool) {
	docType, err := dto.ParseDocType(c.Param("doctype"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return docType, true
}

// UploadFiles handles POST /counties/:county/docs/:doctype/files. Form
// fields "pdf" and "excel" are both optional; replacing either one
// invalidates the stored index for that type.
func (h *DocsHandler) UploadFiles(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}
	docType, ok := docTypeParam(c)
	if !ok {
		return
	}

	saved := map[string]string{}
	for field, ext := range map[string]string{"pdf": "pdf", "excel": "xlsx"} {
		fileHeader, err := c.FormFile(field)
		if err != nil {
			continue
		}
		path := h.indexService.DocPath(county, docType, ext)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			h.sendError(c, http.StatusInternalServerError, "Failed to create county dir", err)
			return
		}
		if err := c.SaveUploadedFile(fileHeader, path); err != nil {
			h.sendError(c, http.StatusInternalServerError, fmt.Sprintf("Failed to save %s", field), err)
			return
		}
		saved[field] = filepath.Base(path)
	}

	if len(saved) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no pdf or excel file provided"})
		return
	}

	log.Printf("Stored %d file(s) for %s / %s", len(saved), county, docType)
	c.JSON(http.StatusOK, gin.H{"county": county, "doc_type": docType, "saved": saved})
}

// Status handles GET /counties/:county/docs/status
func (h *DocsHandler) Status(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	statuses := make([]dto.DocStatus, 0, len(dto.DocTypes))
	for _, docType := range dto.DocTypes {
		status := dto.DocStatus{DocType: docType}
		if info, err := os.Stat(h.indexService.DocPath(county, docType, "pdf")); err == nil {
			status.PDFExists = true
			status.PDFSize = info.Size()
		}
		if info, err := os.Stat(h.indexService.DocPath(county, docType, "xlsx")); err == nil {
			status.ExcelExists = true
			status.ExcelSize = info.Size()
		}
		if _, err := os.Stat(h.indexService.DocPath(county, docType, "json")); err == nil {
			status.Indexed = true
		}
		statuses = append(statuses, status)
	}
	c.JSON(http.StatusOK, gin.H{"county": county, "docs": statuses})
}

// Index handles POST /counties/:county/docs/:doctype/index
func (h *DocsHandler) Index(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}
	docType, ok := docTypeParam(c)
	if !ok {
		return
	}

	log.Printf("Indexing %s for %s County", docType, county)
	index, err := h.indexService.IndexDocument(county, docType)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Indexing failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"county": county, "doc_type": docType, "accounts": len(index)})
}

// Search handles GET /counties/:county/docs/:doctype/search?q=
func (h *DocsHandler) Search(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}
	docType, ok := docTypeParam(c)
	if !ok {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q missing"})
		return
	}

	index, err := h.indexService.LoadIndex(county, docType)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load index", err)
		return
	}

	results := service.SearchIndex(index, query)
	c.JSON(http.StatusOK, dto.SearchResponse{
		County:  county,
		DocType: docType,
		Query:   query,
		Results: results,
	})
}

type extractRequest struct {
	Account string `json:"account" binding:"required"`
}

// Extract handles POST /counties/:county/docs/:doctype/extract, returning
// a PDF with just the indexed pages of one account.
func (h *DocsHandler) Extract(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}
	docType, ok := docTypeParam(c)
	if !ok {
		return
	}

	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	index, err := h.indexService.LoadIndex(county, docType)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load index", err)
		return
	}
	entry, ok := index[req.Account]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("account %s not in index", req.Account)})
		return
	}

	pdfData, err := os.ReadFile(h.indexService.DocPath(county, docType, "pdf"))
	if err != nil {
		h.sendError(c, http.StatusNotFound, "PDF not found. Please upload it first", err)
		return
	}

	extracted, err := h.processor.ExtractPages(pdfData, entry.Pages)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to extract pages", err)
		return
	}

	filename := fmt.Sprintf("%s_%s_%s.pdf", county, docType.FileStem(), req.Account)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", extracted)
}

// sendError sends a structured error response
func (h *DocsHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "DOCUMENT_OPERATION_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
