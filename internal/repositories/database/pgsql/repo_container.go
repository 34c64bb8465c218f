package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository against the shared pool.
// The record and bank account repositories double as transaction support for
// the obligation, member and loan repositories, which compose record writes
// and balance deltas into their own transactions.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	bankRepo := newPgxBankAccountRepository(pool)
	recordRepo := newPgxRecordRepository(pool, bankRepo)

	return &portsrepo.RepositoryProvider{
		Record:       recordRepo,
		BankAccount:  bankRepo,
		Installment:  newPgxInstallmentRepository(pool, recordRepo, bankRepo),
		Repayment:    newPgxRepaymentRepository(pool, recordRepo, bankRepo),
		Subscription: newPgxSubscriptionRepository(pool, recordRepo, bankRepo),
		Member:       newPgxMemberRepository(pool, recordRepo, bankRepo),
		Loan:         newPgxLoanRepository(pool, recordRepo, bankRepo),
		Category:     newPgxCategoryRepository(pool),
		RankFee:      newPgxRankFeeRepository(pool),
	}
}
