package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ben(id string, share int64) Beneficiary {
	return Beneficiary{
		BeneficiaryID:   id,
		BeneficiaryType: BeneficiaryFamily,
		SharePercentage: decimal.NewFromInt(share),
		Archival:        Active(),
	}
}

func sumAllocations(allocs []Allocation) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range allocs {
		sum = sum.Add(a.Amount)
	}
	return sum
}

func TestApplySplit_ReferenceScenario(t *testing.T) {
	cfg := SplitConfig{
		NazerPercent:   decimal.NewFromInt(10),
		CharityPercent: decimal.NewFromInt(5),
		CorpusPercent:  decimal.NewFromInt(15),
	}
	snap := LedgerSnapshot{TotalRevenues: decimal.NewFromInt(120000), TotalExpenses: decimal.NewFromInt(20000)}

	res := ApplySplit(snap.NetRevenues(), cfg)

	assert.True(t, res.NetRevenues.Equal(decimal.NewFromInt(100000)))
	assert.True(t, res.NazerShare.Equal(decimal.NewFromInt(10000)))
	assert.True(t, res.WaqifCharity.Equal(decimal.NewFromInt(5000)))
	assert.True(t, res.WaqfCorpus.Equal(decimal.NewFromInt(15000)))
	assert.True(t, res.DistributableAmount.Equal(decimal.NewFromInt(70000)))

	allocs, err := Allocate(res.DistributableAmount, []Beneficiary{ben("b1", 50), ben("b2", 30), ben("b3", 20)})
	require.NoError(t, err)
	require.Len(t, allocs, 3)
	assert.True(t, allocs[0].Amount.Equal(decimal.NewFromInt(35000)))
	assert.True(t, allocs[1].Amount.Equal(decimal.NewFromInt(21000)))
	assert.True(t, allocs[2].Amount.Equal(decimal.NewFromInt(14000)))
	assert.True(t, sumAllocations(allocs).Equal(decimal.NewFromInt(70000)))
}

func TestAllocate_ResidualGoesToLargestShare(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		beneficiary  []Beneficiary
		wantResidual string
		designatedID string
	}{
		{
			name:         "thirds",
			amount:       "100.00",
			beneficiary:  []Beneficiary{ben("a", 1), ben("b", 1), ben("c", 1)},
			wantResidual: "0.01",
			designatedID: "a", // tie broken by id order
		},
		{
			name:         "uneven shares",
			amount:       "1000.01",
			beneficiary:  []Beneficiary{ben("z", 3), ben("m", 7)},
			wantResidual: "0.01",
			designatedID: "m",
		},
		{
			name:         "exact split has zero residual",
			amount:       "70000",
			beneficiary:  []Beneficiary{ben("b1", 50), ben("b2", 30), ben("b3", 20)},
			wantResidual: "0",
			designatedID: "b1",
		},
		{
			name:         "seven ways",
			amount:       "0.10",
			beneficiary:  []Beneficiary{ben("1", 1), ben("2", 1), ben("3", 1), ben("4", 1), ben("5", 1), ben("6", 1), ben("7", 1)},
			wantResidual: "0.03",
			designatedID: "1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tt.amount)
			allocs, err := Allocate(amount, tt.beneficiary)
			require.NoError(t, err)

			assert.True(t, sumAllocations(allocs).Equal(amount), "allocations must sum exactly")
			for _, a := range allocs {
				if a.BeneficiaryID == tt.designatedID {
					assert.True(t, a.Residual.Equal(decimal.RequireFromString(tt.wantResidual)), "residual %s", a.Residual)
				} else {
					assert.True(t, a.Residual.IsZero())
				}
				assert.True(t, a.Amount.Equal(TruncateMoney(a.Amount)), "no sub-unit amounts")
			}
		})
	}
}

func TestAllocate_DeterministicRegardlessOfInputOrder(t *testing.T) {
	amount := decimal.RequireFromString("12345.67")
	first, err := Allocate(amount, []Beneficiary{ben("c", 2), ben("a", 5), ben("b", 3)})
	require.NoError(t, err)
	second, err := Allocate(amount, []Beneficiary{ben("b", 3), ben("c", 2), ben("a", 5)})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAllocate_Rejects(t *testing.T) {
	_, err := Allocate(decimal.NewFromInt(-1), []Beneficiary{ben("a", 1)})
	assert.Error(t, err)

	_, err = Allocate(decimal.NewFromInt(10), nil)
	assert.Error(t, err)

	_, err = Allocate(decimal.NewFromInt(10), []Beneficiary{ben("a", 0)})
	assert.Error(t, err)
}

func TestSplitConfig_Validate(t *testing.T) {
	ok := SplitConfig{NazerPercent: decimal.NewFromInt(10), CharityPercent: decimal.NewFromInt(5), CorpusPercent: decimal.NewFromInt(15)}
	assert.NoError(t, ok.Validate())

	over := SplitConfig{NazerPercent: decimal.NewFromInt(60), CharityPercent: decimal.NewFromInt(30), CorpusPercent: decimal.NewFromInt(15)}
	assert.Error(t, over.Validate())

	negative := SplitConfig{NazerPercent: decimal.NewFromInt(-1)}
	assert.Error(t, negative.Validate())
}
