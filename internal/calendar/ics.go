package calendar

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const prodID = "-//Closetrack//Closetrack Calendar//EN"

// ICS renders events as an iCalendar document. Events are all-day
// (DTSTART;VALUE=DATE), lines end in CRLF per RFC 5545.
func ICS(name string, events []*Event) string {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "X-WR-CALNAME:"+escapeText(name))

	for _, e := range events {
		date := e.Date.UTC()

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, fmt.Sprintf("UID:%s@closetrack", e.ID))
		writeLine(&b, "DTSTART;VALUE=DATE:"+date.Format("20060102"))
		writeLine(&b, "DTEND;VALUE=DATE:"+date.AddDate(0, 0, 1).Format("20060102"))
		writeLine(&b, "SUMMARY:"+escapeText(e.Title))
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")

	return b.String()
}

func writeLine(b *strings.Builder, line string) {
	// RFC 5545 folds content lines at 75 octets; the leading space on a
	// continuation counts toward its limit, and folds must not split a
	// UTF-8 sequence.
	for len(line) > 75 {
		cut := 75
		for !utf8.RuneStart(line[cut]) {
			cut--
		}

		b.WriteString(line[:cut])
		b.WriteString("\r\n")
		line = " " + line[cut:]
	}

	b.WriteString(line)
	b.WriteString("\r\n")
}

func escapeText(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)
	return r.Replace(s)
}
