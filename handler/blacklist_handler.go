package handler

import (
	"net/http"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/ToTheRepublic/assessor-tools/service"
	"github.com/ToTheRepublic/assessor-tools/utils"

	"github.com/gin-gonic/gin"
)

type BlacklistHandler struct {
	store *service.BlacklistStore
}

func NewBlacklistHandler(store *service.BlacklistStore) *BlacklistHandler {
	return &BlacklistHandler{store: store}
}

// List handles GET /counties/:county/blacklist
func (h *BlacklistHandler) List(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	entries, err := h.store.Load(county)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"county": county, "entries": entries})
}

type blacklistRequest struct {
	ApplicantAccount string `json:"applicant_account"`
	Account          string `json:"account" binding:"required"`
	ApplicantAddress string `json:"applicant_address"`
}

// Add handles POST /counties/:county/blacklist. Confirming a potential
// match as benign suppresses the pair from future runs.
func (h *BlacklistHandler) Add(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	var req blacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.store.Load(county)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for _, e := range entries {
		if e.ApplicantAccount == req.ApplicantAccount && e.Account == req.Account {
			c.JSON(http.StatusOK, gin.H{"county": county, "entries": entries})
			return
		}
	}

	entries = append(entries, dto.ExclusionEntry{
		ApplicantAccount:  req.ApplicantAccount,
		Account:           req.Account,
		ApplicantAddress:  req.ApplicantAddress,
		NormalizedAddress: utils.NormalizeAddress(req.ApplicantAddress),
	})
	if err := h.store.Save(county, entries); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"county": county, "entries": entries})
}

// Remove handles DELETE /counties/:county/blacklist
func (h *BlacklistHandler) Remove(c *gin.Context) {
	county, ok := countyParam(c)
	if !ok {
		return
	}

	var req blacklistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.store.Load(county)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.ApplicantAccount == req.ApplicantAccount && e.Account == req.Account {
			continue
		}
		kept = append(kept, e)
	}
	if err := h.store.Save(county, kept); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"county": county, "entries": kept})
}
