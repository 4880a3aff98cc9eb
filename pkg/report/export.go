// Package report renders load listings as spreadsheets for the office
// staff who reconcile settlements by hand.
package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"integrarural/entities"
)

var headers = []string{
	"ID", "Scheduled", "Truck", "Driver", "Farm", "Field", "Product",
	"Quantity", "Unit", "Destination", "Operation",
	"Gross (kg)", "Tare (kg)", "Net (kg)",
	"Moisture %", "Impurity %",
	"Farm settled (kg)", "Warehouse settled (kg)", "Final settled (kg)",
	"NFe status", "NFe key",
}

// Workbook builds a one-sheet workbook with a row per load.
func Workbook(loads []entities.Load) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i, l := range loads {
		row := []any{
			l.ID,
			l.ScheduledAt.Format("2006-01-02 15:04"),
			l.Truck, l.Driver, l.FarmName, l.Field, l.Product,
			l.Quantity, l.Unit, l.Destination, l.Operation,
			cellFloat(l.GrossKg), cellFloat(l.TareKg), cellFloat(l.NetKg),
			cellFloat(l.MoisturePct), cellFloat(l.ImpurityPct),
			cellFloat(l.FarmSettledKg), cellFloat(l.WarehouseSettledKg), cellFloat(l.FinalSettledKg),
			l.NFeStatus, l.NFeKey,
		}
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	return f, nil
}

func cellFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
