package report

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
	"github.com/xuri/excelize/v2"
)

// ExportService renders aggregation reports as downloadable files. The
// buffer is returned to the handler, which sets the response headers.
type ExportService interface {
	AttendanceXLSX(ctx context.Context, req attendance.ReportRequest, now time.Time) (*bytes.Buffer, string, error)
}

type ExportServiceImpl struct {
	attendanceSvc attendance.AttendanceService
}

func NewExportService(attendanceSvc attendance.AttendanceService) ExportService {
	return &ExportServiceImpl{attendanceSvc: attendanceSvc}
}

const sheetName = "Attendance"

var reportHeader = []string{
	"Bucket", "Worker", "Worked (min)", "Break (min)", "Bathroom (min)", "Expected (min)",
}

// AttendanceXLSX implements ExportService. One row per aggregation bucket,
// already sorted by bucket key then worker name.
func (s *ExportServiceImpl) AttendanceXLSX(ctx context.Context, req attendance.ReportRequest, now time.Time) (*bytes.Buffer, string, error) {
	buckets, err := s.attendanceSvc.Aggregate(ctx, req, now)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	for col, title := range reportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, "", fmt.Errorf("failed to address header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := f.SetColWidth(sheetName, "A", "B", 22); err != nil {
		return nil, "", fmt.Errorf("failed to size columns: %w", err)
	}

	for i, b := range buckets {
		row := i + 2
		values := []interface{}{
			b.BucketKey, b.WorkerName,
			b.WorkedMinutes, b.BreakMinutes, b.BathroomMinutes, b.ExpectedMinutes,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, "", fmt.Errorf("failed to address cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, "", fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.xlsx", req.From.String(), req.To.String(), req.Granularity)
	return buf, filename, nil
}
