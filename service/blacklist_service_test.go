package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/stretchr/testify/assert"
)

func TestBlacklistLoadMissingFile(t *testing.T) {
	store := NewBlacklistStore(t.TempDir())

	entries, err := store.Load("Laramie")

	assert.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestBlacklistSaveLoadRoundtrip(t *testing.T) {
	store := NewBlacklistStore(t.TempDir())

	want := []dto.ExclusionEntry{
		{
			ApplicantAccount:  "R0001111",
			Account:           "R0002222",
			ApplicantAddress:  "789 Elm Dr",
			NormalizedAddress: "789 elm dr",
		},
		{Account: "M0003333"},
	}
	err := store.Save("Hot Springs", want)
	assert.NoError(t, err)

	got, err := store.Load("Hot Springs")
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBlacklistCountyDirUnderscored(t *testing.T) {
	dir := t.TempDir()
	store := NewBlacklistStore(dir)

	err := store.Save("Hot Springs", []dto.ExclusionEntry{{Account: "R0001111"}})
	assert.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "Hot_Springs", "blacklist.json"))
	assert.NoError(t, err)
}

func TestBlacklistLegacyMigration(t *testing.T) {
	dir := t.TempDir()
	countyDir := filepath.Join(dir, "Laramie")
	assert.NoError(t, os.MkdirAll(countyDir, 0755))
	legacy := []byte(`["R0001111", "M0002222"]`)
	assert.NoError(t, os.WriteFile(filepath.Join(countyDir, "blacklist.json"), legacy, 0644))

	store := NewBlacklistStore(dir)
	entries, err := store.Load("Laramie")

	assert.NoError(t, err)
	assert.Equal(t, []dto.ExclusionEntry{
		{Account: "R0001111"},
		{Account: "M0002222"},
	}, entries)
}

func TestBlacklistUnrecognizedFormat(t *testing.T) {
	dir := t.TempDir()
	countyDir := filepath.Join(dir, "Laramie")
	assert.NoError(t, os.MkdirAll(countyDir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(countyDir, "blacklist.json"), []byte(`{"bad": 1}`), 0644))

	store := NewBlacklistStore(dir)
	_, err := store.Load("Laramie")

	assert.Error(t, err)
}

func TestBlacklistSaveNilEntries(t *testing.T) {
	store := NewBlacklistStore(t.TempDir())

	assert.NoError(t, store.Save("Park", nil))

	entries, err := store.Load("Park")
	assert.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestExcludedSets(t *testing.T) {
	entries := []dto.ExclusionEntry{
		{Account: "R0002222", NormalizedAddress: "789 elm dr"},
		{Account: "M0003333"},
		{},
	}

	accounts := ExcludedAccounts(entries)
	assert.Equal(t, map[string]bool{"R0002222": true, "M0003333": true}, accounts)

	addrs := ExcludedAddresses(entries)
	assert.Equal(t, map[string]bool{"789 elm dr": true}, addrs)
}
