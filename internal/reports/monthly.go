// Package reports builds the monthly workbook the dashboard offers for
// download: a payment summary sheet plus a per-day delivery sheet for
// each customer.
package reports

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dairygo6311/Babu-jijaji/internal/domain/deliveries"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/payments"
	"github.com/dairygo6311/Babu-jijaji/internal/domain/settings"
)

type Rollups interface {
	MonthlyRollup(ctx context.Context, customerID int64, month string) (*deliveries.Rollup, error)
}

type Ledger interface {
	MonthlySummary(ctx context.Context, month string) (*payments.Summary, error)
}

type Builder struct {
	ledger   Ledger
	rollups  Rollups
	settings *settings.Service
}

func NewBuilder(ledger Ledger, rollups Rollups, st *settings.Service) *Builder {
	return &Builder{ledger: ledger, rollups: rollups, settings: st}
}

// Monthly renders the workbook for a YYYY-MM month and returns the
// xlsx bytes.
func (b *Builder) Monthly(ctx context.Context, month string) ([]byte, error) {
	sum, err := b.ledger.MonthlySummary(ctx, month)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, "Summary"); err != nil {
		return nil, err
	}
	sheet = "Summary"

	cfg := b.settings.Current()
	title := fmt.Sprintf("%s %s - %s", cfg.ProjectName, cfg.BusinessType, month)
	if err := f.SetCellValue(sheet, "A1", title); err != nil {
		return nil, err
	}

	header := []interface{}{
		"customer", "phone", "milk_l", "days_delivered", "days_skipped",
		"owed", "paid", "balance", "status", "payment_date",
	}
	if err := f.SetSheetRow(sheet, "A3", &header); err != nil {
		return nil, err
	}

	row := 4
	for _, r := range sum.Rows {
		excelRow := []interface{}{
			r.Customer.Name,
			r.Customer.Phone,
			r.TotalMilk,
			r.DaysDelivered,
			r.DaysSkipped,
			r.Owed,
			r.Paid,
			r.Balance,
			string(r.Status),
			r.PaymentDate,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, err
		}
		row++
	}

	totals := []interface{}{
		"TOTAL", "", sum.TotalMilk, "", "",
		sum.TotalOwed, sum.TotalPaid, sum.TotalBalance,
		fmt.Sprintf("paid %d / partial %d / pending %d", sum.PaidCount, sum.PartialCount, sum.PendingCount),
		"",
	}
	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, cell, &totals); err != nil {
		return nil, err
	}

	for _, r := range sum.Rows {
		if err := b.addCustomerSheet(ctx, f, month, r); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Builder) addCustomerSheet(ctx context.Context, f *excelize.File, month string, r payments.CustomerMonth) error {
	roll, err := b.rollups.MonthlyRollup(ctx, r.Customer.ID, month)
	if err != nil {
		return err
	}

	// sheet names are capped at 31 chars by the format
	name := fmt.Sprintf("%d %s", r.Customer.ID, r.Customer.Name)
	if len(name) > 31 {
		name = name[:31]
	}
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := []interface{}{"day", "date", "status", "qty_l", "amount"}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	row := 2
	for _, d := range roll.Days {
		excelRow := []interface{}{d.Day, d.Date, string(d.State), d.Qty, d.Amount}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &excelRow); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{"", "TOTAL", "", roll.TotalQty, roll.TotalAmount}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(name, cell, &totals)
}
