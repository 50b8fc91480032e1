package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// BeneficiaryType classifies a beneficiary for reporting.
type BeneficiaryType string

const (
	BeneficiaryFamily      BeneficiaryType = "FAMILY"
	BeneficiaryCharity     BeneficiaryType = "CHARITY"
	BeneficiaryInstitution BeneficiaryType = "INSTITUTION"
	BeneficiaryIndividual  BeneficiaryType = "INDIVIDUAL"
)

func (t BeneficiaryType) Valid() bool {
	switch t {
	case BeneficiaryFamily, BeneficiaryCharity, BeneficiaryInstitution, BeneficiaryIndividual:
		return true
	}
	return false
}

func ParseBeneficiaryType(s string) (BeneficiaryType, error) {
	t := BeneficiaryType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown beneficiary type %q", s)
	}
	return t, nil
}

// Beneficiary receives a share of the distributable amount.
type Beneficiary struct {
	BeneficiaryID   string          `json:"beneficiaryID"`
	Name            string          `json:"name"`
	BeneficiaryType BeneficiaryType `json:"beneficiaryType"`
	// SharePercentage is relative; allocation normalises over all eligible shares.
	SharePercentage decimal.Decimal `json:"sharePercentage"`
	Archival        ArchivalState   `json:"archival"`
	AuditFields
}

// IsEligible reports whether the beneficiary takes part in a new distribution.
func (b Beneficiary) IsEligible() bool {
	return b.Archival.IsActive() && b.SharePercentage.IsPositive()
}
