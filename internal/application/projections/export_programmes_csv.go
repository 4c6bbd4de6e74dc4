package projections

import (
	"context"
	"fmt"
	"strings"

	"steeple/internal/domain/programme"
)

const csvDateFormat = "2006-01-02"

// ProgrammeLister defines the programme store interface needed by the CSV export.
type ProgrammeLister interface {
	List(ctx context.Context) ([]programme.Programme, error)
}

// BuildProgrammesCSVDeps holds dependencies for the programme CSV export.
type BuildProgrammesCSVDeps struct {
	ProgrammeStore ProgrammeLister
}

// BuildProgrammesCSV renders every programme as one CSV row. The output is
// byte-stable for the same input: fixed column order, string fields always
// double-quoted with internal quotes doubled, numeric fields bare, rows
// terminated by \n.
func BuildProgrammesCSV(ctx context.Context, deps BuildProgrammesCSVDeps) (string, error) {
	programmes, err := deps.ProgrammeStore.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list programmes: %w", err)
	}

	var b strings.Builder
	b.WriteString("Name,Type,Start Date,End Date,Location,Coordinator,Capacity,Attendees,Description\n")
	for _, p := range programmes {
		endDate := ""
		if !p.EndDate.IsZero() {
			endDate = p.EndDate.Format(csvDateFormat)
		}
		b.WriteString(strings.Join([]string{
			csvField(p.Name),
			csvField(p.Type),
			csvField(p.StartDate.Format(csvDateFormat)),
			csvField(endDate),
			csvField(p.Location),
			csvField(p.Coordinator),
			fmt.Sprintf("%d", p.Capacity),
			fmt.Sprintf("%d", p.CurrentAttendees),
			csvField(p.Description),
		}, ","))
		b.WriteString("\n")
	}
	return b.String(), nil
}

// csvField wraps a string field in double quotes, doubling internal quotes.
func csvField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
