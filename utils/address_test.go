package utils

import (
	"testing"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "123 main st", NormalizeAddress("123 Main Street"))
	assert.Equal(t, "456 oak blvd", NormalizeAddress("  456  Oak   Blvd "))
	assert.Equal(t, "789 elm dr", NormalizeAddress("789 ELM DRIVE"))
	assert.Equal(t, "789 elm dr", NormalizeAddress("789 Elm Dr"))
	assert.Equal(t, "", NormalizeAddress(""))
	assert.Equal(t, "", NormalizeAddress("   "))
}

func TestNormalizeAddressWholeWordOnly(t *testing.T) {
	// "Streeter" must not become "ster"
	assert.Equal(t, "12 streeter ln", NormalizeAddress("12 Streeter Lane"))
	assert.Equal(t, "1 center hwy", NormalizeAddress("1 Center Highway"))
}

func TestNormalizeAddressIdempotent(t *testing.T) {
	inputs := []string{
		"123 Main Street",
		"  456  Oak   Blvd ",
		"789 ELM DRIVE",
		"N 42 Washington Court",
		"",
		"1600 Pennsylvania Avenue",
	}
	for _, in := range inputs {
		once := NormalizeAddress(in)
		assert.Equal(t, once, NormalizeAddress(once), "normalize not idempotent for %q", in)
	}
}

func TestComposeAddress(t *testing.T) {
	rec := dto.Record{
		"Predirection":  "",
		"Street Number": "12",
		"Street Name":   "Main",
		"Street Type":   "St",
	}
	assert.Equal(t, "12 Main St", ComposeAddress(rec, ApplicantAddressCols...))

	rec["Predirection"] = "N"
	assert.Equal(t, "N 12 Main St", ComposeAddress(rec, ApplicantAddressCols...))

	assert.Equal(t, "", ComposeAddress(dto.Record{}, ApplicantAddressCols...))
}
