package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFormat is the file format of a generated report.
type ReportFormat string

const (
	FormatPDF  ReportFormat = "pdf"
	FormatCSV  ReportFormat = "csv"
	FormatXLSX ReportFormat = "xlsx"
)

// ValidReportFormat reports whether f is a supported export format.
func ValidReportFormat(f ReportFormat) bool {
	switch f {
	case FormatPDF, FormatCSV, FormatXLSX:
		return true
	}
	return false
}

// ReportSpec binds everything needed to regenerate a report: the organization
// and date range, the format, and the scope captured from the requesting user
// at issuance time. It is immutable once a download token has been issued for
// it; the download path derives data strictly from the spec, never from the
// redemption-time caller.
type ReportSpec struct {
	OrganizationID string       `json:"organizationID"`
	StartDate      time.Time    `json:"startDate"`
	EndDate        time.Time    `json:"endDate"`
	Format         ReportFormat `json:"format"`
	RequestedBy    string       `json:"requestedBy"` // UserID captured at issuance
	CreatedAt      time.Time    `json:"createdAt"`
}

// EntryFilter narrows which records an aggregation or export covers.
// The zero value matches everything in the organization and date range.
type EntryFilter struct {
	EntryType    EntryType
	MaterialType MaterialType
	TruckNumber  string
	UserID       string
}

// ReportFile is a fully rendered report held in memory. No filesystem state
// persists across requests; downloads re-render from the bound ReportSpec.
type ReportFile struct {
	FileName    string
	ContentType string
	Bytes       []byte
}

// ExportRow is the flat record shape consumed by the report renderers. The
// field set is stable regardless of whether the source was a truck entry or an
// expense; expenses populate EntryType "Expense" with nil Units/RatePerUnit.
type ExportRow struct {
	Date         string
	Time         string
	TruckNumber  string
	EntryType    string
	MaterialType string
	Units        *decimal.Decimal
	RatePerUnit  *decimal.Decimal
	TotalAmount  decimal.Decimal
	Description  string
}
