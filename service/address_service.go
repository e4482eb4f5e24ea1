package service

import (
	"regexp"
	"strings"

	"github.com/ToTheRepublic/assessor-tools/dto"
	"github.com/ToTheRepublic/assessor-tools/utils"
)

// AddressMatchService surfaces applicant and county accounts that share a
// street address, which can indicate an undisclosed relationship between
// the two accounts.
type AddressMatchService struct{}

func NewAddressMatchService() *AddressMatchService {
	return &AddressMatchService{}
}

type refEntry struct {
	account string
	address string
}

// FindMatches groups both datasets by normalized address and returns one
// match per (applicant address, county account) pair. Self-matches (same
// account on both sides) and addresses already on the exclusion list are
// dropped. When several applicants share an address, the first one stands
// as representative for the group.
func (s *AddressMatchService) FindMatches(applicant, reference *dto.Dataset, exclusions []dto.ExclusionEntry, accountPattern *regexp.Regexp) ([]dto.AddressMatch, error) {
	if applicant.Empty() || reference.Empty() {
		return nil, dto.ErrEmptyDataset
	}

	applicantKeyCol := utils.FindAccountColumn(applicant, accountPattern)
	referenceKeyCol := utils.FindAccountColumn(reference, accountPattern)
	if applicantKeyCol == "" || referenceKeyCol == "" {
		return nil, dto.ErrMissingKeyColumn
	}

	nameCol := utils.FindNameColumn(applicant)
	excludedAddrs := ExcludedAddresses(exclusions)

	// Reference pool grouped by normalized address.
	byAddress := make(map[string][]refEntry)
	for _, rec := range reference.Rows {
		raw := recordAddress(rec, reference)
		norm := utils.NormalizeAddress(raw)
		if norm == "" {
			continue
		}
		account := strings.ToUpper(rec.Get(referenceKeyCol))
		byAddress[norm] = append(byAddress[norm], refEntry{account: account, address: raw})
	}

	var out []dto.AddressMatch
	seen := make(map[string]bool)
	for _, rec := range applicant.Rows {
		raw := recordAddress(rec, applicant)
		norm := utils.NormalizeAddress(raw)
		if norm == "" || excludedAddrs[norm] || seen[norm] {
			continue
		}
		seen[norm] = true

		applicantAccount := strings.ToUpper(rec.Get(applicantKeyCol))
		matchedAccounts := make(map[string]bool)
		for _, ref := range byAddress[norm] {
			if ref.account == applicantAccount || matchedAccounts[ref.account] {
				continue
			}
			matchedAccounts[ref.account] = true

			match := dto.AddressMatch{
				ApplicantAccount:  applicantAccount,
				ApplicantAddress:  raw,
				MatchedAccount:    ref.account,
				MatchedAddress:    ref.address,
				NormalizedAddress: norm,
			}
			if nameCol != "" {
				match.ApplicantName = rec.Get(nameCol)
			}
			out = append(out, match)
		}
	}
	return out, nil
}

var addressColRe = regexp.MustCompile(`(?i)address`)

// recordAddress composes a street address from component columns when the
// dataset has them, falling back to the first column named like an address.
func recordAddress(rec dto.Record, ds *dto.Dataset) string {
	if hasColumn(ds, "Street Name") {
		return utils.ComposeAddress(rec, utils.ApplicantAddressCols...)
	}
	for _, col := range ds.Columns {
		if addressColRe.MatchString(col) {
			return rec.Get(col)
		}
	}
	return ""
}

func hasColumn(ds *dto.Dataset, name string) bool {
	for _, col := range ds.Columns {
		if col == name {
			return true
		}
	}
	return false
}
