package pgsql

import (
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires all Postgres-backed repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		TruckEntryRepo:   NewTruckEntryRepository(pool),
		ExpenseRepo:      NewExpenseRepository(pool),
		RateRepo:         NewRateRepository(pool),
		UserRepo:         NewUserRepository(pool),
		OrganizationRepo: NewOrganizationRepository(pool),
		SummaryRepo:      NewSummaryRepository(pool),
	}
}
