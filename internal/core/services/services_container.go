package services

import (
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
	"github.com/StoneLedger/crusher_books_app/pkg/config"
)

// NewServiceContainer wires all services with their dependencies. The
// organization service doubles as the authorizer injected into every
// organization-scoped service.
func NewServiceContainer(
	repos *portsrepo.RepositoryProvider,
	tokenStore portsrepo.ReportTokenStore,
	renderer portssvc.ReportRenderer,
	cfg *config.Config,
) *portssvc.ServiceContainer {
	organizationSvc := NewOrganizationService(repos.OrganizationRepo)
	authorizer := organizationSvc.(portssvc.OrganizationAuthorizerSvc)

	userSvc := NewUserService(repos.UserRepo)
	tokenSvc := NewTokenService(repos.UserRepo, cfg)
	googleOAuthSvc := NewGoogleOAuthService(cfg)

	truckEntrySvc := NewTruckEntryService(repos.TruckEntryRepo, repos.RateRepo,
		WithTruckEntryOrganizationAuthorizer(authorizer))
	expenseSvc := NewExpenseService(repos.ExpenseRepo,
		WithExpenseOrganizationAuthorizer(authorizer))
	rateSvc := NewRateService(repos.RateRepo,
		WithRateOrganizationAuthorizer(authorizer))

	summarySvc := NewSummaryService(repos.SummaryRepo, repos.TruckEntryRepo, repos.ExpenseRepo,
		WithSummaryOrganizationAuthorizer(authorizer))
	summaryComputer := summarySvc.(portssvc.SummaryComputer)

	broker := NewDownloadBroker(tokenStore, cfg.DownloadTokenTTL)
	exportSvc := NewExportService(repos.TruckEntryRepo, repos.ExpenseRepo,
		summaryComputer, broker, renderer, cfg.DownloadBaseURL,
		WithExportOrganizationAuthorizer(authorizer))

	return &portssvc.ServiceContainer{
		User:               userSvc,
		Organization:       organizationSvc,
		TruckEntry:         truckEntrySvc,
		Expense:            expenseSvc,
		Rate:               rateSvc,
		Summary:            summarySvc,
		Export:             exportSvc,
		DownloadBroker:     broker,
		TokenService:       tokenSvc,
		GoogleOAuthHandler: googleOAuthSvc,
	}
}
