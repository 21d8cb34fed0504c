package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/StoneLedger/crusher_books_app/internal/apperrors"
	"github.com/StoneLedger/crusher_books_app/internal/core/domain"
	portsrepo "github.com/StoneLedger/crusher_books_app/internal/core/ports/repositories"
	portssvc "github.com/StoneLedger/crusher_books_app/internal/core/ports/services"
)

// exportService orchestrates report generation: fetch records, compute the
// summary, flatten to the stable export row shape and render. Downloads never
// reuse bytes from issuance time; BuildReport regenerates everything from the
// bound spec.
type exportService struct {
	BaseService
	entryRepo   portsrepo.TruckEntryRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	summary     portssvc.SummaryComputer
	broker      portssvc.DownloadBrokerSvc
	renderer    portssvc.ReportRenderer
	baseURL     string
}

// ExportServiceOption is a functional option for configuring the export service.
type ExportServiceOption func(*exportService)

// WithExportOrganizationAuthorizer sets the organization authorizer for the export service.
func WithExportOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ExportServiceOption {
	return func(s *exportService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewExportService creates a new export service.
func NewExportService(
	entryRepo portsrepo.TruckEntryRepositoryFacade,
	expenseRepo portsrepo.ExpenseRepositoryFacade,
	summary portssvc.SummaryComputer,
	broker portssvc.DownloadBrokerSvc,
	renderer portssvc.ReportRenderer,
	baseURL string,
	options ...ExportServiceOption,
) portssvc.ExportSvcFacade {
	svc := &exportService{
		entryRepo:   entryRepo,
		expenseRepo: expenseRepo,
		summary:     summary,
		broker:      broker,
		renderer:    renderer,
		baseURL:     baseURL,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ExportSvcFacade = (*exportService)(nil)

// ExportReport authorizes the caller and returns the rendered file inline.
func (s *exportService) ExportReport(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (*domain.ReportFile, error) {
	spec, err := s.authorizedSpec(ctx, organizationID, from, to, format, requestingUserID)
	if err != nil {
		return nil, err
	}
	return s.BuildReport(ctx, *spec)
}

// IssueDownloadLink authorizes the caller, binds the spec to a one-time token
// and returns the URL a browser can fetch without re-authenticating.
func (s *exportService) IssueDownloadLink(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (string, string, error) {
	spec, err := s.authorizedSpec(ctx, organizationID, from, to, format, requestingUserID)
	if err != nil {
		return "", "", err
	}

	token, err := s.broker.Issue(ctx, *spec)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue download token",
			slog.String("organization_id", organizationID))
		return "", "", err
	}

	downloadURL := fmt.Sprintf("%s/download/%s", s.baseURL, token)
	return downloadURL, reportFileName(*spec), nil
}

// BuildReport regenerates a report strictly from the bound spec. The caller's
// identity at download time is irrelevant; authorization happened at issuance.
func (s *exportService) BuildReport(ctx context.Context, spec domain.ReportSpec) (*domain.ReportFile, error) {
	entries, err := s.entryRepo.ListTruckEntriesForRange(ctx, spec.OrganizationID, spec.StartDate, spec.EndDate, domain.EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load truck entries for report: %w", err)
	}

	expenses, err := s.expenseRepo.ListExpensesForRange(ctx, spec.OrganizationID, spec.StartDate, spec.EndDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for report: %w", err)
	}

	summary, err := s.summary.ComputeSummary(ctx, spec.OrganizationID, spec.StartDate, spec.EndDate, domain.EntryFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to compute summary for report: %w", err)
	}

	rows := FlattenExportRows(entries, expenses)

	file, err := s.renderer.Render(spec, rows, summary)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s report: %w", spec.Format, err)
	}

	s.LogInfo(ctx, "Report generated",
		slog.String("organization_id", spec.OrganizationID),
		slog.String("format", string(spec.Format)),
		slog.Int("row_count", len(rows)),
		slog.Int("bytes", len(file.Bytes)))
	return file, nil
}

// authorizedSpec validates inputs, checks organization scope and freezes the
// report parameters into an immutable spec.
func (s *exportService) authorizedSpec(ctx context.Context, organizationID string, from, to time.Time, format domain.ReportFormat, requestingUserID string) (*domain.ReportSpec, error) {
	if !domain.ValidReportFormat(format) {
		return nil, fmt.Errorf("%w: unsupported report format %q", apperrors.ErrValidation, format)
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: fromDate must not be after toDate", apperrors.ErrValidation)
	}

	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to export reports",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	return &domain.ReportSpec{
		OrganizationID: organizationID,
		StartDate:      from,
		EndDate:        to,
		Format:         format,
		RequestedBy:    requestingUserID,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

// FlattenExportRows maps truck entries and expenses onto the stable export
// row shape, ordered by date then time. Expenses carry entry type "Expense"
// and no units or rate.
func FlattenExportRows(entries []domain.TruckEntry, expenses []domain.Expense) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(entries)+len(expenses))

	for _, e := range entries {
		units := e.Units
		rate := e.RatePerUnit
		rows = append(rows, domain.ExportRow{
			Date:         e.EntryDate.Format("2006-01-02"),
			Time:         e.EntryTime,
			TruckNumber:  e.TruckNumber,
			EntryType:    exportEntryTypeLabel(e.EntryType),
			MaterialType: string(e.MaterialType),
			Units:        &units,
			RatePerUnit:  &rate,
			TotalAmount:  e.EffectiveTotal(),
			Description:  e.Description,
		})
	}

	for _, x := range expenses {
		rows = append(rows, domain.ExportRow{
			Date:        x.ExpenseDate.Format("2006-01-02"),
			EntryType:   "Expense",
			TotalAmount: x.Amount,
			Description: expenseDescription(x),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date != rows[j].Date {
			return rows[i].Date < rows[j].Date
		}
		return rows[i].Time < rows[j].Time
	})

	return rows
}

func exportEntryTypeLabel(t domain.EntryType) string {
	switch t {
	case domain.EntrySales:
		return "Sales"
	case domain.EntryRawStone:
		return "Raw Stone"
	}
	return string(t)
}

func expenseDescription(x domain.Expense) string {
	if x.Category != "" && x.Description != "" {
		return x.Category + ": " + x.Description
	}
	if x.Category != "" {
		return x.Category
	}
	return x.Description
}

// reportFileName derives the attachment name from the bound spec.
func reportFileName(spec domain.ReportSpec) string {
	return fmt.Sprintf("crusher-report_%s_%s.%s",
		spec.StartDate.Format("2006-01-02"),
		spec.EndDate.Format("2006-01-02"),
		spec.Format)
}
