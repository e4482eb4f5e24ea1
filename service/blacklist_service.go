package service

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/dto"
)

// BlacklistStore persists confirmed-benign match pairs per county. Adds
// and removes are driven by the handlers; the store only loads, saves and
// derives lookup sets.
type BlacklistStore struct {
	baseDir string
}

func NewBlacklistStore(baseDir string) *BlacklistStore {
	return &BlacklistStore{baseDir: baseDir}
}

func (s *BlacklistStore) path(county string) string {
	return filepath.Join(s.baseDir, strings.ReplaceAll(county, " ", "_"), "blacklist.json")
}

// Load reads the county blacklist. A missing file is an empty list.
// Legacy blacklists were flat arrays of account strings; those migrate
// into the current entry shape with empty address fields, once, at load.
func (s *BlacklistStore) Load(county string) ([]dto.ExclusionEntry, error) {
	data, err := os.ReadFile(s.path(county))
	if err != nil {
		if os.IsNotExist(err) {
			return []dto.ExclusionEntry{}, nil
		}
		return nil, fmt.Errorf("failed to read blacklist: %w", err)
	}
	return decodeEntries(data)
}

func decodeEntries(data []byte) ([]dto.ExclusionEntry, error) {
	var entries []dto.ExclusionEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("unrecognized blacklist format: %w", err)
	}
	entries = make([]dto.ExclusionEntry, 0, len(legacy))
	for _, account := range legacy {
		entries = append(entries, dto.ExclusionEntry{Account: account})
	}
	return entries, nil
}

// Save overwrites the persisted entries atomically: write to a temp file
// in the same directory, then rename over the old one.
func (s *BlacklistStore) Save(county string, entries []dto.ExclusionEntry) error {
	if entries == nil {
		entries = []dto.ExclusionEntry{}
	}

	path := s.path(county)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create county dir: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal blacklist: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "blacklist-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write blacklist: %w", err)
	}
	tmp.Close()

	return os.Rename(tmp.Name(), path)
}

// ExcludedAccounts returns the matched-account side of every entry, for
// filtering the account comparison.
func ExcludedAccounts(entries []dto.ExclusionEntry) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Account != "" {
			set[e.Account] = true
		}
	}
	return set
}

// ExcludedAddresses returns the normalized addresses of every entry, for
// filtering the address matcher's candidate pool. Legacy entries carry no
// address and contribute nothing here.
func ExcludedAddresses(entries []dto.ExclusionEntry) map[string]bool {
	set := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.NormalizedAddress != "" {
			set[e.NormalizedAddress] = true
		}
	}
	return set
}
