package service

import (
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/ToTheRepublic/assessor-tools/utils"
)

// CompareService joins applicant records against the county master list
// by account key.
type CompareService struct{}

func NewCompareService() *CompareService {
	return &CompareService{}
}

// CompareLists returns one display row per applicant record whose account
// key also appears in the master list, in ascending key order, preceded by
// a marker row whenever a key maps to more than one applicant record.
// Accounts on the exclusion list are suppressed.
func (s *CompareService) CompareLists(applicant, master *dto.Dataset, exclusions []dto.ExclusionEntry, accountPattern *regexp.Regexp) ([]dto.MatchRow, error) {
	if applicant.Empty() || master.Empty() {
		return nil, dto.ErrEmptyDataset
	}

	probe := utils.ProbeColumns(applicant, accountPattern)
	masterKeyCol := utils.FindAccountColumn(master, accountPattern)
	if probe.AccountCol == "" || masterKeyCol == "" {
		return nil, dto.ErrMissingKeyColumn
	}

	if probe.NameCol == "" {
		log.Println("Name column not found. Skipping name fields.")
	}
	if probe.PhoneCol == "" {
		log.Println("Phone column not found. Skipping filer phone.")
	}
	if probe.FilerAddressCol == "" {
		log.Println("Filer Address column not found. Skipping filer address.")
	}

	applicantByKey := groupByKey(applicant, probe.AccountCol, accountPattern)
	masterByKey := groupByKey(master, masterKeyCol, accountPattern)
	if len(applicantByKey) == 0 || len(masterByKey) == 0 {
		return nil, dto.ErrNoValidKeys
	}

	excluded := ExcludedAccounts(exclusions)

	var keys []string
	for key := range applicantByKey {
		if _, ok := masterByKey[key]; ok && !excluded[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var out []dto.MatchRow
	for _, key := range keys {
		group := applicantByKey[key]
		if len(group) > 1 {
			out = append(out, dto.MultipleEntriesMarker(len(group)))
		}
		for _, rec := range group {
			name := ""
			if probe.NameCol != "" {
				name = rec.Get(probe.NameCol)
			}
			row := dto.MatchRow{
				AccountNumber: key,
				Name:          name,
				Address:       utils.ComposeAddress(rec, utils.ApplicantAddressCols...),
				FilerName:     utils.ParseFilerName(name),
			}
			if probe.FilerAddressCol != "" {
				row.FilerAddress = rec.Get(probe.FilerAddressCol)
			}
			if probe.PhoneCol != "" {
				row.FilerPhone = rec.Get(probe.PhoneCol)
			}
			out = append(out, row)
		}
	}
	return out, nil
}

// groupByKey filters rows to valid account values and groups them by
// upper-cased key.
func groupByKey(ds *dto.Dataset, keyCol string, accountPattern *regexp.Regexp) map[string][]dto.Record {
	groups := make(map[string][]dto.Record)
	for _, rec := range ds.Rows {
		value := rec.Get(keyCol)
		if !accountPattern.MatchString(value) {
			continue
		}
		key := strings.ToUpper(value)
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// CompileAccountPattern builds the case-insensitive account key matcher
// from a configured pattern string.
func CompileAccountPattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid account key pattern %q: %w", pattern, err)
	}
	return re, nil
}
