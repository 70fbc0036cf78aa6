// Package report renders ledger exports as spreadsheets.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/arsenal/internal/model"
)

// ContentType is the MIME type of the workbook written by WriteTransactions.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SheetName is the name of the ledger worksheet.
const SheetName = "Transactions"

var transactionHeaders = []any{
	"Timestamp", "Type", "Asset", "Serial / Name", "Weapon type", "From", "To",
	"Contract", "Value", "Currency", "Details", "Notes", "ID",
}

// Filename returns the download name for an export generated at t.
func Filename(t time.Time) string {
	return fmt.Sprintf("transactions_%s.xlsx", t.UTC().Format("2006-01-02"))
}

// WriteTransactions writes txs as an xlsx workbook to w, one row per entry in
// the given order.
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &transactionHeaders); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", "M1", style); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	for i, t := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := transactionRow(t)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "A", "A", 22)
	_ = f.SetColWidth(SheetName, "D", "G", 24)
	_ = f.SetColWidth(SheetName, "K", "L", 40)
	_ = f.SetColWidth(SheetName, "M", "M", 38)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func transactionRow(t model.Transaction) []any {
	var asset, subject string
	switch t.Asset.Kind {
	case model.AssetWeapon:
		asset, subject = "Weapon", t.WeaponSerial
	case model.AssetEquipment:
		asset, subject = "Equipment", t.EquipmentName
	}

	// Values are written as text so large amounts keep every digit.
	var value string
	if t.Value != nil {
		value = t.Value.StringFixed(2)
	}

	return []any{
		t.Timestamp.UTC().Format("2006-01-02 15:04:05"),
		string(t.Type), asset, subject, t.WeaponTypeName,
		t.FromName, t.ToName, t.ContractNumber,
		value, t.Currency, t.Details, t.Notes, t.ID,
	}
}
