package mapping

import (
	"github.com/awqaf-platform/waqf_ledger/internal/core/domain"
	"github.com/awqaf-platform/waqf_ledger/internal/models"
)

// ToModelBankStatement converts the statement header; transactions are mapped separately.
func ToModelBankStatement(d domain.BankStatement) models.BankStatement {
	return models.BankStatement{
		StatementID:    d.StatementID,
		BankAccountID:  d.BankAccountID,
		StatementDate:  d.StatementDate,
		PeriodStart:    d.PeriodStart,
		PeriodEnd:      d.PeriodEnd,
		OpeningBalance: d.OpeningBalance,
		ClosingBalance: d.ClosingBalance,
		IsReconciled:   d.IsReconciled,
		ReconciledAt:   d.ReconciledAt,
		ReconciledBy:   NullableString(d.ReconciledBy),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainBankStatement(m models.BankStatement) domain.BankStatement {
	return domain.BankStatement{
		StatementID:    m.StatementID,
		BankAccountID:  m.BankAccountID,
		StatementDate:  m.StatementDate,
		PeriodStart:    m.PeriodStart,
		PeriodEnd:      m.PeriodEnd,
		OpeningBalance: m.OpeningBalance,
		ClosingBalance: m.ClosingBalance,
		IsReconciled:   m.IsReconciled,
		ReconciledAt:   m.ReconciledAt,
		ReconciledBy:   StringValue(m.ReconciledBy),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelBankTransaction(d domain.BankTransaction) models.BankTransaction {
	return models.BankTransaction{
		TransactionID:  d.TransactionID,
		StatementID:    d.StatementID,
		TxnDate:        d.TxnDate,
		Description:    NullableString(d.Description),
		Reference:      NullableString(d.Reference),
		Direction:      string(d.Direction),
		Amount:         d.Amount,
		MatchedEntryID: NullableString(d.MatchedEntryID),
		MatchedAt:      d.MatchedAt,
		MatchedBy:      NullableString(d.MatchedBy),
	}
}

func ToDomainBankTransaction(m models.BankTransaction) domain.BankTransaction {
	return domain.BankTransaction{
		TransactionID:  m.TransactionID,
		StatementID:    m.StatementID,
		TxnDate:        m.TxnDate,
		Description:    StringValue(m.Description),
		Reference:      StringValue(m.Reference),
		Direction:      domain.BankTxnDirection(m.Direction),
		Amount:         m.Amount,
		MatchedEntryID: StringValue(m.MatchedEntryID),
		MatchedAt:      m.MatchedAt,
		MatchedBy:      StringValue(m.MatchedBy),
	}
}
