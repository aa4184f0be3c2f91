package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheet = "Rekap"
	detailSheet = "Detail"
)

// ExportFileName: rekap-<kelas>-<tanggal>.xlsx
func ExportFileName(className string, now time.Time) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '-'
	}, strings.TrimSpace(className))
	if name == "" {
		name = "kelas"
	}
	return fmt.Sprintf("rekap-%s-%s.xlsx", strings.ToLower(name), now.Format("20060102"))
}

/*
BuildWorkbook menulis matriks rekap ke xlsx:

	Rekap  : No. Absen | <mapel> (%) ... | Total | % | Status
	Detail : No. Absen | Mapel | Hadir | Pertemuan | %
*/
func BuildWorkbook(m Matrix) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(detailSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0EBF5"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	danger, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: "#C00000", Bold: true}})
	if err != nil {
		return nil, err
	}

	/* ---- Rekap ---- */
	title := fmt.Sprintf("%s (minimal %.1f%%)", m.Class.Name, m.Class.MinPercentage)
	if err := f.SetCellValue(exportSheet, "A1", title); err != nil {
		return nil, err
	}

	header := []any{"No. Absen"}
	for _, s := range m.Subjects {
		header = append(header, s.SubjectName+" (%)")
	}
	header = append(header, "Hadir/Total", "%", "Status")
	if err := f.SetSheetRow(exportSheet, "A3", &header); err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 3)
	if err := f.SetCellStyle(exportSheet, "A3", last, bold); err != nil {
		return nil, err
	}

	for i, row := range m.Rows {
		r := i + 4
		values := []any{row.RollNumber}
		for _, s := range m.Subjects {
			rec, ok := row.BySubject[s.SubjectID]
			if !ok || rec.Total == 0 {
				values = append(values, "-")
				continue
			}
			values = append(values, Round1(rec.Percentage()))
		}
		status := "Aman"
		if row.Overall.Percentage() < m.Class.MinPercentage {
			status = "Di bawah minimal"
		}
		values = append(values,
			fmt.Sprintf("%d/%d", row.Overall.Attended, row.Overall.Total),
			Round1(row.Overall.Percentage()),
			status,
		)
		cell, _ := excelize.CoordinatesToCellName(1, r)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
		if status != "Aman" {
			sc, _ := excelize.CoordinatesToCellName(len(values), r)
			if err := f.SetCellStyle(exportSheet, sc, sc, danger); err != nil {
				return nil, err
			}
		}
	}
	_ = f.SetColWidth(exportSheet, "A", "A", 12)

	/* ---- Detail ---- */
	dh := []any{"No. Absen", "Mapel", "Hadir", "Pertemuan", "%"}
	if err := f.SetSheetRow(detailSheet, "A1", &dh); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(detailSheet, "A1", "E1", bold); err != nil {
		return nil, err
	}
	r := 2
	for _, row := range m.Rows {
		for _, s := range m.Subjects {
			rec, ok := row.BySubject[s.SubjectID]
			if !ok {
				continue
			}
			values := []any{row.RollNumber, rec.SubjectName, rec.Attended, rec.Total, Round1(rec.Percentage())}
			cell, _ := excelize.CoordinatesToCellName(1, r)
			if err := f.SetSheetRow(detailSheet, cell, &values); err != nil {
				return nil, err
			}
			r++
		}
	}
	_ = f.SetColWidth(detailSheet, "B", "B", 24)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
