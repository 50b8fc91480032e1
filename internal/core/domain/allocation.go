package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Allocation is one beneficiary's share of a distributable amount.
type Allocation struct {
	BeneficiaryID   string
	BeneficiaryType BeneficiaryType
	SharePercentage decimal.Decimal
	Amount          decimal.Decimal
	Residual        decimal.Decimal
}

// ResidualLeakageError reports a residual that exceeds one unit per line.
type ResidualLeakageError struct {
	Residual decimal.Decimal
}

func (e *ResidualLeakageError) Error() string {
	return fmt.Sprintf("rounding residual %s exceeds tolerance", e.Residual)
}

// Allocate splits amount across beneficiaries by relative share.
//
// Beneficiaries are ordered by id. Each line receives amount*share/total
// truncated to the smallest currency unit. The residual (always non-negative
// and below one unit per line) is added to the line with the largest share,
// the first in id order on ties. The allocations sum to amount exactly.
func Allocate(amount decimal.Decimal, beneficiaries []Beneficiary) ([]Allocation, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("cannot allocate negative amount %s", amount)
	}
	if len(beneficiaries) == 0 {
		return nil, fmt.Errorf("no beneficiaries to allocate to")
	}

	ordered := make([]Beneficiary, len(beneficiaries))
	copy(ordered, beneficiaries)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].BeneficiaryID < ordered[j].BeneficiaryID })

	totalShare := decimal.Zero
	for _, b := range ordered {
		if !b.SharePercentage.IsPositive() {
			return nil, fmt.Errorf("beneficiary %s has non-positive share", b.BeneficiaryID)
		}
		totalShare = totalShare.Add(b.SharePercentage)
	}

	allocs := make([]Allocation, len(ordered))
	allocated := decimal.Zero
	designated := 0
	for i, b := range ordered {
		// QuoRem truncates toward zero at the currency scale without an
		// intermediate rounding step.
		amt, _ := amount.Mul(b.SharePercentage).QuoRem(totalShare, MoneyScale)
		allocs[i] = Allocation{
			BeneficiaryID:   b.BeneficiaryID,
			BeneficiaryType: b.BeneficiaryType,
			SharePercentage: b.SharePercentage,
			Amount:          amt,
			Residual:        decimal.Zero,
		}
		allocated = allocated.Add(amt)
		if b.SharePercentage.GreaterThan(ordered[designated].SharePercentage) {
			designated = i
		}
	}

	residual := amount.Sub(allocated)
	tolerance := SmallestUnit().Mul(decimal.NewFromInt(int64(len(ordered))))
	if residual.IsNegative() || residual.GreaterThanOrEqual(tolerance) {
		return nil, &ResidualLeakageError{Residual: residual}
	}
	allocs[designated].Amount = allocs[designated].Amount.Add(residual)
	allocs[designated].Residual = residual
	return allocs, nil
}
