package projections

import (
	"bytes"
	"context"
	"fmt"

	"steeple/internal/domain/attendance"
	"steeple/internal/domain/kpi"
	"steeple/internal/domain/programme"
	"steeple/internal/domain/resource"

	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in descriptions stays escaped.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// ReportResourceStore defines the resource store interface needed by the report.
type ReportResourceStore interface {
	ListByProgrammeID(ctx context.Context, programmeID string) ([]resource.Resource, error)
}

// ReportKPIStore defines the KPI store interface needed by the report.
type ReportKPIStore interface {
	ListByProgrammeID(ctx context.Context, programmeID string) ([]kpi.KPI, error)
}

// GetProgrammeReportDeps holds dependencies for the report projection.
type GetProgrammeReportDeps struct {
	ProgrammeStore  AttendanceProgrammeStore
	AttendanceStore AttendanceLister
	ResourceStore   ReportResourceStore
	KPIStore        ReportKPIStore
}

// ProgrammeReport carries everything a rendered report needs: the
// programme itself, its description converted from markdown, and the
// attendance, resource and KPI detail.
type ProgrammeReport struct {
	Programme       programme.Programme
	DescriptionHTML string
	Attendance      []attendance.Attendance
	PresentCount    int
	AbsentCount     int
	Resources       []resource.Resource
	TotalCost       float64
	KPIs            []kpi.KPI
}

// GetProgrammeReport assembles the read model behind the PDF report.
// PRE: programmeID references an existing programme
func GetProgrammeReport(ctx context.Context, programmeID string, deps GetProgrammeReportDeps) (ProgrammeReport, error) {
	p, err := deps.ProgrammeStore.GetByID(ctx, programmeID)
	if err != nil {
		return ProgrammeReport{}, err
	}

	report := ProgrammeReport{Programme: p}

	if p.Description != "" {
		var buf bytes.Buffer
		if err := mdRenderer.Convert([]byte(p.Description), &buf); err == nil {
			report.DescriptionHTML = buf.String()
		}
	}

	records, err := deps.AttendanceStore.ListByProgrammeID(ctx, programmeID)
	if err != nil {
		return ProgrammeReport{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	report.Attendance = records
	for _, r := range records {
		if r.IsPresent {
			report.PresentCount++
		} else {
			report.AbsentCount++
		}
	}

	resources, err := deps.ResourceStore.ListByProgrammeID(ctx, programmeID)
	if err != nil {
		return ProgrammeReport{}, fmt.Errorf("failed to list resources: %w", err)
	}
	report.Resources = resources
	for _, r := range resources {
		report.TotalCost += r.Cost * float64(r.Quantity)
	}

	kpis, err := deps.KPIStore.ListByProgrammeID(ctx, programmeID)
	if err != nil {
		return ProgrammeReport{}, fmt.Errorf("failed to list KPIs: %w", err)
	}
	report.KPIs = kpis

	return report, nil
}
