package client

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/mail"
	"strings"

	"github.com/closetrackhq/closetrack/internal/encoding"
)

// Imports come from several CRMs, so each logical column accepts its snake
// case, camel case, and human readable spellings. Matching is
// case-insensitive with surrounding whitespace ignored.
var headerAliases = map[string][]string{
	"firstName":   {"first_name", "firstname", "first name"},
	"lastName":    {"last_name", "lastname", "last name"},
	"email":       {"email", "email address", "e-mail"},
	"phone":       {"phone", "phone number", "home phone"},
	"mobilePhone": {"mobile_phone", "mobilephone", "mobile", "mobile phone", "cell phone"},
	"address":     {"address", "street address"},
	"type":        {"type", "client type", "client_type"},
	"status":      {"status", "client status", "client_status"},
	"notes":       {"notes", "note", "comments"},
	"labels":      {"labels", "tags"},
}

// RowError reports why one CSV row was rejected. Row numbers are 1-based
// file positions, header included, matching what the agent sees in their
// spreadsheet.
type RowError struct {
	Row     int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ParseCSV reads a client roster export and returns the create params for
// valid rows plus one RowError per rejected row. The error return is
// reserved for unreadable input (bad encoding, malformed CSV, no usable
// header).
func ParseCSV(r io.Reader) ([]CreateParams, []RowError, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("empty csv")
	}

	cols, ok := mapHeader(rows[0])
	if !ok {
		return nil, nil, fmt.Errorf("no recognizable header row: need at least first and last name columns")
	}

	var (
		params    []CreateParams
		rowErrors []RowError
	)

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, header is row 1

		if isBlank(row) {
			continue
		}

		p, errs := parseRow(cols, row, rowNum)
		if len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}

		params = append(params, p)
	}

	return params, rowErrors, nil
}

type colIndex map[string]int

func mapHeader(header []string) (colIndex, bool) {
	cols := make(colIndex)

	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for field, aliases := range headerAliases {
			for _, alias := range aliases {
				if name == alias {
					cols[field] = i
				}
			}
		}
	}

	_, hasFirst := cols["firstName"]
	_, hasLast := cols["lastName"]

	return cols, hasFirst && hasLast
}

func parseRow(cols colIndex, row []string, rowNum int) (CreateParams, []RowError) {
	var errs []RowError

	p := CreateParams{
		FirstName:   cellValue(row, cols, "firstName"),
		LastName:    cellValue(row, cols, "lastName"),
		Email:       cellValue(row, cols, "email"),
		Phone:       cellValue(row, cols, "phone"),
		MobilePhone: cellValue(row, cols, "mobilePhone"),
		Address:     cellValue(row, cols, "address"),
		Notes:       cellValue(row, cols, "notes"),
	}

	if p.FirstName == "" {
		errs = append(errs, RowError{Row: rowNum, Message: "missing firstName"})
	}

	if p.LastName == "" {
		errs = append(errs, RowError{Row: rowNum, Message: "missing lastName"})
	}

	if p.Email != "" {
		if _, err := mail.ParseAddress(p.Email); err != nil {
			errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid email %q", p.Email)})
		}
	}

	typ := Type(strings.ToLower(cellValue(row, cols, "type")))
	if typ == "" {
		typ = TypeBuyer
	}

	if !ValidType(typ) {
		errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid type %q: must be buyer or seller", typ)})
	}

	p.Type = typ

	status := Status(strings.ToLower(cellValue(row, cols, "status")))
	if status == "" {
		status = StatusActive
	}

	if !ValidClientStatus(status) {
		errs = append(errs, RowError{Row: rowNum, Message: fmt.Sprintf("invalid status %q", status)})
	}

	p.Status = status

	if raw := cellValue(row, cols, "labels"); raw != "" {
		for _, label := range strings.Split(raw, ";") {
			if label = strings.TrimSpace(label); label != "" {
				p.Labels = append(p.Labels, label)
			}
		}
	}

	return p, errs
}

func cellValue(row []string, cols colIndex, field string) string {
	idx, ok := cols[field]
	if !ok || idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
