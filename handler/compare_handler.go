package handler

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/config"
	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/ToTheRepublic/assessor-tools/service"
	"github.com/ToTheRepublic/assessor-tools/utils"

	"github.com/gin-gonic/gin"
)

type CompareHandler struct {
	compareService *service.CompareService
	addressService *service.AddressMatchService
	blacklist      *service.BlacklistStore
	masterDir      string
	accountPattern *regexp.Regexp
}

func NewCompareHandler(
	compareService *service.CompareService,
	addressService *service.AddressMatchService,
	blacklist *service.BlacklistStore,
	masterDir string,
	accountPattern *regexp.Regexp,
) *CompareHandler {
	return &CompareHandler{
		compareService: compareService,
		addressService: addressService,
		blacklist:      blacklist,
		masterDir:      masterDir,
		accountPattern: accountPattern,
	}
}

func (h *CompareHandler) masterPath(county string) string {
	return filepath.Join(h.masterDir, strings.ReplaceAll(county, " ", "_"), "master.xlsx")
}

// UploadMaster handles POST /counties/:county/master
func (h *CompareHandler) UploadMaster(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}

	path := h.masterPath(county)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to create county dir", err)
		return
	}
	if err := c.SaveUploadedFile(file, path); err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to save master list", err)
		return
	}

	log.Printf("Master list saved for %s County", county)
	c.JSON(http.StatusOK, gin.H{"county": county, "saved": filepath.Base(path)})
}

// MasterStatus handles GET /counties/:county/master
func (h *CompareHandler) MasterStatus(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	info, err := os.Stat(h.masterPath(county))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"county": county, "exists": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"county": county, "exists": true, "size": info.Size()})
}

// Compare handles POST /counties/:county/compare
func (h *CompareHandler) Compare(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}
	log.Printf("Received comparison request for %s County", county)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "applicant file missing"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open applicant file", err)
		return
	}
	defer file.Close()

	applicant, err := service.LoadWorkbook(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read applicant list", err)
		return
	}

	master, err := service.LoadWorkbookFile(h.masterPath(county))
	if err != nil {
		h.sendError(c, http.StatusNotFound, "No master list found for this county", err)
		return
	}

	entries, err := h.blacklist.Load(county)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load blacklist", err)
		return
	}

	matches, err := h.compareService.CompareLists(applicant, master, entries, h.accountPattern)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to compare files", err)
		return
	}

	log.Printf("Comparison complete: %d row(s)", len(matches))
	c.JSON(http.StatusOK, dto.CompareResponse{
		County:  county,
		Matches: matches,
		Report:  utils.RenderMatchReport(matches),
	})
}

// AddressMatches handles POST /counties/:county/address-matches
func (h *CompareHandler) AddressMatches(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	applicant, err := datasetFromForm(c, "applicant")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read applicant list", err)
		return
	}
	accounts, err := datasetFromForm(c, "accounts")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read accounts list", err)
		return
	}

	entries, err := h.blacklist.Load(county)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to load blacklist", err)
		return
	}

	matches, err := h.addressService.FindMatches(applicant, accounts, entries, h.accountPattern)
	if err != nil {
		h.sendError(c, http.StatusUnprocessableEntity, "Failed to match addresses", err)
		return
	}

	c.JSON(http.StatusOK, dto.AddressMatchResponse{County: county, Matches: matches})
}

func datasetFromForm(c *gin.Context, field string) (*dto.Dataset, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, fmt.Errorf("%s file missing", field)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return service.LoadWorkbook(file)
}

// countyParam validates the :county path segment against the county list.
func countyParam(c *gin.Context) (string, bool) {
	county := c.Param("county")
	if !config.ValidCounty(county) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown county: %q", county)})
		return "", false
	}
	return county, true
}

// sendError sends a structured error response
func (h *CompareHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "COMPARISON_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
