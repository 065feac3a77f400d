// Package export renders reports into downloadable spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/omarrayoubb/gateway-sub003/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// LedgerReportSheet is the sheet name of the exported workbook.
const LedgerReportSheet = "Ledger Report"

// XLSXContentType is the MIME type of the exported workbook.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ledgerReportHeaders = []string{"Code", "Account", "Type", "Opening Balance", "Debit", "Credit", "Closing Balance"}

// LedgerReportFilename returns the attachment name for a report period.
func LedgerReportFilename(r *domain.LedgerReport) string {
	return fmt.Sprintf("ledger_report_%s_%s.xlsx", r.PeriodStart.Format("20060102"), r.PeriodEnd.Format("20060102"))
}

// WriteLedgerReport writes the report as a single-sheet workbook: a title row,
// a header row, one row per account and a totals row.
func WriteLedgerReport(w io.Writer, r *domain.LedgerReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", LedgerReportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	title := fmt.Sprintf("Ledger report %s to %s", r.PeriodStart.Format(domain.DateLayout), r.PeriodEnd.Format(domain.DateLayout))
	if r.AccountType != nil {
		title += fmt.Sprintf(" (%s)", *r.AccountType)
	}
	if err := f.SetCellValue(LedgerReportSheet, "A1", title); err != nil {
		return err
	}

	if err := setRow(f, 3, stringsToAny(ledgerReportHeaders)); err != nil {
		return err
	}

	row := 4
	for _, acc := range r.Accounts {
		values := []any{
			acc.AccountCode,
			acc.AccountName,
			string(acc.AccountType),
			money(acc.OpeningBalance),
			money(acc.Debit),
			money(acc.Credit),
			money(acc.ClosingBalance),
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	totalsRow := row
	balanced := "balanced"
	if !r.Totals.IsBalanced {
		balanced = "NOT balanced"
	}
	if err := setRow(f, totalsRow, []any{"Total", balanced, "", "", money(r.Totals.TotalDebit), money(r.Totals.TotalCredit), ""}); err != nil {
		return err
	}

	if err := styleSheet(f, totalsRow); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func styleSheet(f *excelize.File, lastRow int) error {
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	numFmt := "#,##0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(LedgerReportSheet, "A1", "A1", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(LedgerReportSheet, "A3", "G3", bold); err != nil {
		return err
	}
	if err := f.SetCellStyle(LedgerReportSheet, "D4", fmt.Sprintf("G%d", lastRow), amountStyle); err != nil {
		return err
	}

	widths := map[string]float64{"A": 12, "B": 32, "C": 12, "D": 18, "E": 16, "F": 16, "G": 18}
	for col, width := range widths {
		if err := f.SetColWidth(LedgerReportSheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(LedgerReportSheet, cell, &values)
}

// money keeps two decimals; spreadsheets store numbers as float64.
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func stringsToAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
