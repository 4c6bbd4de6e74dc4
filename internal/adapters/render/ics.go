package render

import (
	"fmt"
	"strings"
	"time"

	"steeple/internal/domain/programme"
)

const icsDateFormat = "20060102"

// BuildICS renders one programme as a single-event iCalendar document.
// The suggested filename is "<Slug(name)>.ics".
func BuildICS(p programme.Programme, now time.Time) string {
	var b strings.Builder
	writeICSLine := func(line string) {
		b.WriteString(line)
		b.WriteString("\r\n")
	}

	end := p.EndDate
	if end.IsZero() {
		end = p.StartDate
	}

	writeICSLine("BEGIN:VCALENDAR")
	writeICSLine("VERSION:2.0")
	writeICSLine("PRODID:-//steeple//programme//EN")
	writeICSLine("BEGIN:VEVENT")
	writeICSLine(fmt.Sprintf("UID:%s@steeple", p.ID))
	writeICSLine(fmt.Sprintf("DTSTAMP:%sT000000Z", now.UTC().Format(icsDateFormat)))
	writeICSLine(fmt.Sprintf("DTSTART;VALUE=DATE:%s", p.StartDate.Format(icsDateFormat)))
	// DTEND is exclusive for all-day events.
	writeICSLine(fmt.Sprintf("DTEND;VALUE=DATE:%s", end.AddDate(0, 0, 1).Format(icsDateFormat)))
	writeICSLine(fmt.Sprintf("SUMMARY:%s", escapeICS(p.Name)))
	if p.Description != "" {
		writeICSLine(fmt.Sprintf("DESCRIPTION:%s", escapeICS(p.Description)))
	}
	if p.Location != "" {
		writeICSLine(fmt.Sprintf("LOCATION:%s", escapeICS(p.Location)))
	}
	writeICSLine("END:VEVENT")
	writeICSLine("END:VCALENDAR")
	return b.String()
}

// escapeICS escapes text per RFC 5545: backslash, semicolon, comma and
// newline.
func escapeICS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
