package domain

// SystemCategoryKey identifies one of the engine-generated transaction
// categories. These are seeded by migration and looked up by key; they are
// never created ad hoc inside a transaction.
type SystemCategoryKey string

const (
	CategoryMembershipPrepayment SystemCategoryKey = "membership_prepayment"
	CategoryInstallmentFee       SystemCategoryKey = "installment_fee"
	CategorySubscriptionFee      SystemCategoryKey = "subscription_fee"
	CategoryLoanDisbursement     SystemCategoryKey = "loan_disbursement"
	CategoryLoanRepayment        SystemCategoryKey = "loan_repayment"
)

// TransactionCategory classifies ledger records. System-related categories
// belong to the engine (membership fees, loan flows); the rest are entered by
// bookkeepers. Unique on (name, kind).
type TransactionCategory struct {
	CategoryID    string     `json:"categoryID"` // Primary Key (UUID)
	Name          string     `json:"name"`
	Kind          RecordKind `json:"kind"`
	SystemRelated bool       `json:"systemRelated"`
	SystemKey     *string    `json:"systemKey"` // Set only for system categories
	AuditFields
}
