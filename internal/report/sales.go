package report

import (
	"fmt"

	"go-sales-territory/internal/model"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const SalesSheet = "Sales"

var salesHeader = []interface{}{
	"Sale ID", "Date", "Client ID", "Client", "Wilaya", "Representative", "Pack", "Total (DZD)",
}

// FormatDZD renders an amount in centimes as dinars with two decimals
func FormatDZD(centimes int64) string {
	return decimal.New(centimes, -2).StringFixed(2)
}

// SalesWorkbook renders sales as an xlsx document, one row per sale, with a
// closing total row. Sales are expected to have Client, Representative and
// Pack preloaded; missing relations leave their cells empty.
func SalesWorkbook(sales []model.Sale) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SalesSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(SalesSheet, "A1", &salesHeader); err != nil {
		return nil, err
	}

	var total int64
	for i, sale := range sales {
		total += sale.TotalPrice

		var clientName, wilaya, repName, packName string
		if sale.Client != nil {
			clientName = sale.Client.FullName
			wilaya = sale.Client.Wilaya
		}
		if sale.Representative != nil {
			repName = sale.Representative.Username
		}
		if sale.Pack != nil {
			packName = sale.Pack.Name
		}

		row := []interface{}{
			sale.ID.String(),
			sale.CreatedAt.Format("2006-01-02 15:04"),
			sale.ClientKey,
			clientName,
			wilaya,
			repName,
			packName,
			decimal.New(sale.TotalPrice, -2).InexactFloat64(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SalesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	totalRow := len(sales) + 2
	if err := f.SetCellValue(SalesSheet, fmt.Sprintf("G%d", totalRow), "Total"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(SalesSheet, fmt.Sprintf("H%d", totalRow), decimal.New(total, -2).InexactFloat64()); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
