package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestJournalLine_ValidateShape(t *testing.T) {
	d := decimal.NewFromInt
	tests := []struct {
		name    string
		line    JournalLine
		wantErr bool
	}{
		{"debit only", JournalLine{AccountID: "a", Debit: d(10), Credit: decimal.Zero}, false},
		{"credit only", JournalLine{AccountID: "a", Debit: decimal.Zero, Credit: d(10)}, false},
		{"both sides", JournalLine{AccountID: "a", Debit: d(10), Credit: d(10)}, true},
		{"neither side", JournalLine{AccountID: "a", Debit: decimal.Zero, Credit: decimal.Zero}, true},
		{"negative", JournalLine{AccountID: "a", Debit: d(-5), Credit: decimal.Zero}, true},
		{"missing account", JournalLine{Debit: d(10), Credit: decimal.Zero}, true},
		{"sub-unit precision", JournalLine{AccountID: "a", Debit: decimal.RequireFromString("1.005"), Credit: decimal.Zero}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.line.ValidateShape()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntry_ImbalanceAndReversal(t *testing.T) {
	entry := JournalEntry{
		EntryID:     "e1",
		EntryNumber: 7,
		Description: "rent",
		Lines: []JournalLine{
			{LineNumber: 1, AccountID: "A", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{LineNumber: 2, AccountID: "B", Debit: decimal.Zero, Credit: decimal.NewFromInt(400)},
		},
	}
	assert.True(t, entry.Imbalance().Equal(decimal.NewFromInt(100)))

	entry.Lines[1].Credit = decimal.NewFromInt(500)
	assert.True(t, entry.Imbalance().IsZero())

	n := 0
	rev := entry.BuildReversal("r1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), func() string { n++; return "line" })
	assert.Equal(t, "e1", rev.ReversalOfID)
	assert.Equal(t, EntryDraft, rev.Status)
	assert.Equal(t, 2, n)
	assert.True(t, rev.Lines[0].Credit.Equal(decimal.NewFromInt(500)))
	assert.True(t, rev.Lines[0].Debit.IsZero())
	assert.True(t, rev.Lines[1].Debit.Equal(decimal.NewFromInt(500)))
	assert.True(t, rev.Imbalance().IsZero())
	assert.Equal(t, []string{"A", "B"}, rev.AccountIDs())
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, EntryDraft.CanTransitionTo(EntryPosted))
	assert.False(t, EntryDraft.CanTransitionTo(EntryCancelled))
	assert.True(t, EntryPosted.CanTransitionTo(EntryCancelled))
	assert.False(t, EntryCancelled.CanTransitionTo(EntryPosted))

	assert.True(t, FiscalYearOpen.CanTransitionTo(FiscalYearClosed))
	assert.False(t, FiscalYearOpen.CanTransitionTo(FiscalYearPublished))
	assert.True(t, FiscalYearClosed.CanTransitionTo(FiscalYearPublished))
	assert.False(t, FiscalYearPublished.CanTransitionTo(FiscalYearOpen))

	assert.True(t, PaymentPending.CanTransitionTo(PaymentPaid))
	assert.False(t, PaymentPaid.CanTransitionTo(PaymentCancelled))

	_, err := ParseEntryStatus("archived")
	assert.Error(t, err)
	st, err := ParseEntryStatus(" posted ")
	assert.NoError(t, err)
	assert.Equal(t, EntryPosted, st)
}

func TestFiscalYear_ContainsAndSummary(t *testing.T) {
	fy := FiscalYear{
		StartDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, fy.Contains(time.Date(2025, 12, 31, 18, 0, 0, 0, time.UTC)))
	assert.False(t, fy.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))

	s := NewClosureSummary("fy", decimal.NewFromInt(120000), decimal.NewFromInt(20000), decimal.RequireFromString("2.5"))
	assert.True(t, s.NetIncome.Equal(decimal.NewFromInt(100000)))
	assert.True(t, s.ZakatDue.Equal(decimal.NewFromInt(2500)))

	loss := NewClosureSummary("fy", decimal.NewFromInt(10), decimal.NewFromInt(20), decimal.RequireFromString("2.5"))
	assert.True(t, loss.ZakatDue.IsZero())

	s.AddApprovedDistribution(Distribution{
		NazerShare:          decimal.NewFromInt(10000),
		WaqifCharity:        decimal.NewFromInt(5000),
		WaqfCorpus:          decimal.NewFromInt(15000),
		DistributableAmount: decimal.NewFromInt(70000),
	})
	assert.True(t, s.CorpusCarriedForward.Equal(decimal.NewFromInt(15000)))
	assert.Equal(t, 1, s.ApprovedDistributions)
}

func TestJournalEntry_TouchesAccount(t *testing.T) {
	e := JournalEntry{Lines: []JournalLine{
		{AccountID: "acc-bank", Credit: decimal.NewFromInt(50)},
		{AccountID: "acc-expense", Debit: decimal.NewFromInt(50)},
	}}

	assert.True(t, e.TouchesAccount("acc-bank"))
	assert.False(t, e.TouchesAccount("acc-petty-cash"))
	assert.False(t, JournalEntry{}.TouchesAccount("acc-bank"))
}
