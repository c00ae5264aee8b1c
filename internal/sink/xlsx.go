package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rwejlgaard/timesheet/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet the XLSX sink fills in
const SheetName = "Timesheet"

// XLSX writes one workbook per submission: a header block with worker,
// date and total, then one row per entry.
type XLSX struct {
	dir string
}

// NewXLSX returns a sink writing into dir, creating it if needed
func NewXLSX(dir string) (*XLSX, error) {
	if dir == "" {
		return nil, fmt.Errorf("xlsx sink: output directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &XLSX{dir: dir}, nil
}

// Path returns the workbook a payload is written to
func (s *XLSX) Path(p model.Payload) string {
	return filepath.Join(s.dir, fileBase(p)+".xlsx")
}

func (s *XLSX) Submit(ctx context.Context, p model.Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("name worksheet: %w", err)
	}

	rows := [][]any{
		{"Worker", p.WorkerName},
		{"Date", p.Date},
		{"Total hours", p.TotalHours()},
		{},
		{"Job", "Category", "Task", "Hours", "Notes"},
	}
	for _, e := range p.Entries {
		rows = append(rows, []any{e.Job, e.Category, e.Task, e.Hours, e.Notes})
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(s.Path(p)); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
