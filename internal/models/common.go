package models

import "time"

// AuditFields mirrors the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// ArchivalColumns mirrors the archival columns of accounts and beneficiaries.
type ArchivalColumns struct {
	ArchivalStatus string     `db:"archival_status"`
	ArchiveReason  *string    `db:"archive_reason"`
	ArchivedAt     *time.Time `db:"archived_at"`
	ArchivedBy     *string    `db:"archived_by"`
}
