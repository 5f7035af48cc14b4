package report

import (
	"fmt"
	"sort"
	"strings"

	"golotto/ports"

	"github.com/xuri/excelize/v2"
)

// writeWorkbook writes the analysis snapshot as an XLSX workbook with one
// sheet per concern: per-number statistics, temperature buckets and the
// enabled combination tables.
func writeWorkbook(path string, snapshot ports.AnalysisSnapshot) error {
	f := excelize.NewFile()
	defer f.Close()

	const numbersSheet = "Numbers"
	if err := f.SetSheetName("Sheet1", numbersSheet); err != nil {
		return err
	}

	headers := []string{"Number", "Total", "Recent", "Draws Since Seen", "Cold", "Prime", "Low", "High Prime"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(numbersSheet, cell, h); err != nil {
			return err
		}
	}
	for i, s := range snapshot.Table.Stats {
		values := []interface{}{s.Number, s.TotalCount, s.RecentCount, s.DrawsSinceSeen, s.Cold, s.Prime, s.Low, s.HighPrime}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(numbersSheet, cell, v); err != nil {
				return err
			}
		}
	}

	const tempSheet = "Temperature"
	if _, err := f.NewSheet(tempSheet); err != nil {
		return err
	}
	tempRows := [][]interface{}{
		{"Bucket", "Numbers"},
		{"hot", joinInts(snapshot.Temperature.Hot)},
		{"warm", joinInts(snapshot.Temperature.Warm)},
		{"cold", joinInts(snapshot.Temperature.Cold)},
	}
	for rowIdx, row := range tempRows {
		for col, v := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+1)
			if err := f.SetCellValue(tempSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if len(snapshot.Combinations) > 0 {
		const comboSheet = "Combinations"
		if _, err := f.NewSheet(comboSheet); err != nil {
			return err
		}
		row := 1
		sizes := make([]int, 0, len(snapshot.Combinations))
		for size := range snapshot.Combinations {
			sizes = append(sizes, size)
		}
		sort.Ints(sizes)
		for _, size := range sizes {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetCellValue(comboSheet, cell, fmt.Sprintf("Size %d", size)); err != nil {
				return err
			}
			row++
			for _, cc := range snapshot.Combinations[size] {
				nameCell, _ := excelize.CoordinatesToCellName(1, row)
				countCell, _ := excelize.CoordinatesToCellName(2, row)
				if err := f.SetCellValue(comboSheet, nameCell, joinInts(cc.Numbers)); err != nil {
					return err
				}
				if err := f.SetCellValue(comboSheet, countCell, cc.Count); err != nil {
					return err
				}
				row++
			}
			row++
		}
	}

	return f.SaveAs(path)
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, " ")
}
