package models

import "github.com/shopspring/decimal"

// Beneficiary is a row of the beneficiaries table.
type Beneficiary struct {
	BeneficiaryID   string          `db:"beneficiary_id"`
	Name            string          `db:"name"`
	BeneficiaryType string          `db:"beneficiary_type"`
	SharePercentage decimal.Decimal `db:"share_percentage"`
	ArchivalColumns
	AuditFields
}
