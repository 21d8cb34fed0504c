package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	TruckEntryRepo   TruckEntryRepositoryFacade
	ExpenseRepo      ExpenseRepositoryFacade
	RateRepo         RateRepositoryFacade
	UserRepo         UserRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	SummaryRepo      SummaryRepository
}
