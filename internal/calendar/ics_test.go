package calendar_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/closetrackhq/closetrack/internal/calendar"
)

func TestICS(t *testing.T) {
	events := []*calendar.Event{
		{
			ID:            "closing-1",
			TransactionID: uuid.New(),
			Title:         "Closing — 42 Elm St, Unit 2; ask for keys",
			Date:          time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC),
		},
	}

	got := calendar.ICS("Closetrack", events)

	assert.True(t, strings.HasPrefix(got, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(got, "END:VCALENDAR\r\n"))
	assert.Contains(t, got, "VERSION:2.0\r\n")
	assert.Contains(t, got, "UID:closing-1@closetrack\r\n")

	// All-day events: date only, DTEND exclusive on the next day.
	assert.Contains(t, got, "DTSTART;VALUE=DATE:20260920\r\n")
	assert.Contains(t, got, "DTEND;VALUE=DATE:20260921\r\n")

	// Semicolons and commas in summaries are escaped per RFC 5545.
	assert.Contains(t, got, `ask for keys`)
	assert.Contains(t, got, `\;`)
	assert.Contains(t, got, `\,`)

	for _, line := range strings.Split(strings.TrimSuffix(got, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75, "content lines must be folded at 75 octets")
	}
}

func TestICS_FoldsOnRuneBoundaries(t *testing.T) {
	events := []*calendar.Event{
		{
			ID:            "closing-1",
			TransactionID: uuid.New(),
			Title:         "Closing — " + strings.Repeat("Ñandú ", 20),
			Date:          time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC),
		},
	}

	got := calendar.ICS("Closetrack", events)

	for _, line := range strings.Split(strings.TrimSuffix(got, "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(line), 75)
		assert.True(t, utf8.ValidString(line), "a fold must not split a UTF-8 sequence")
	}

	// Unfolding reassembles the summary byte for byte.
	unfolded := strings.ReplaceAll(got, "\r\n ", "")
	assert.Contains(t, unfolded, strings.Repeat("Ñandú ", 20))
}

func TestICS_Empty(t *testing.T) {
	got := calendar.ICS("Closetrack", nil)

	require.NotContains(t, got, "BEGIN:VEVENT")
	assert.Contains(t, got, "PRODID:")
}
