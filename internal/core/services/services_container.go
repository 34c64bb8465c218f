package services

import (
	portsrepo "github.com/assocfin/afm_backend/internal/core/ports/repositories"
	portssvc "github.com/assocfin/afm_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Ledger = NewLedgerService(repos.Record, repos.Category, repos.BankAccount)
	container.BankAccount = NewBankAccountService(repos.BankAccount)
	container.Category = NewCategoryService(repos.Category)
	container.RankFee = NewRankFeeService(repos.RankFee)
	container.Obligation = NewObligationService(
		repos.Installment,
		repos.Repayment,
		repos.Subscription,
		repos.Record,
		repos.Category,
		repos.Member,
	)
	container.Membership = NewMembershipService(repos.Member, repos.Installment, repos.Category)
	container.Loan = NewLoanService(repos.Loan, repos.Repayment, repos.Record, repos.Category, repos.Member)
	container.Dues = NewDuesService(repos.Member, repos.Subscription, repos.Installment, repos.Repayment, repos.RankFee)

	return container
}
