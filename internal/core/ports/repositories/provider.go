package repositories

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	Record       RecordRepositoryFacade
	BankAccount  BankAccountRepositoryFacade
	Installment  InstallmentRepositoryFacade
	Repayment    RepaymentRepositoryFacade
	Subscription SubscriptionRepositoryFacade
	Member       MemberRepositoryFacade
	Loan         LoanRepositoryFacade
	Category     CategoryRepositoryFacade
	RankFee      RankFeeRepositoryFacade
}
