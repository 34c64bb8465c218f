package models

// TransactionCategory is the DB shape of a transaction category row.
type TransactionCategory struct {
	CategoryID    string  `db:"category_id"`
	Name          string  `db:"name"`
	Kind          string  `db:"kind"`
	SystemRelated bool    `db:"system_related"`
	SystemKey     *string `db:"system_key"`
	AuditFields
}
