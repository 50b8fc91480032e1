package models

// Account is a row of the accounts table.
type Account struct {
	AccountID       string  `db:"account_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	AccountType     string  `db:"account_type"`
	Nature          string  `db:"nature"`
	ParentAccountID *string `db:"parent_account_id"` // Nullable
	IsHeader        bool    `db:"is_header"`
	Description     *string `db:"description"`
	ArchivalColumns
	AuditFields
}
