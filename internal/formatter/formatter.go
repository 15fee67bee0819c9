// package formatter renders extracted track tables as CSV, JSON or a plain-text table
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/desertthunder/ypc/internal/models"
	"github.com/desertthunder/ypc/internal/shared"
)

// Format names an output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Formats lists the supported formats, default first.
var Formats = []Format{FormatText, FormatCSV, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown format %q (want text, csv or json)", shared.ErrInvalidFlag, s)
}

// Options controls rendering.
type Options struct {
	Format Format
	Pretty bool // indent JSON
}

// Render encodes t in the requested format.
func Render(t *models.Table, opts Options) ([]byte, error) {
	switch opts.Format {
	case FormatCSV:
		return ExportToCSV(t)
	case FormatJSON:
		return ExportToJSON(t, opts.Pretty)
	case FormatText, "":
		return ExportToText(t), nil
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, opts.Format)
	}
}

// ExportToCSV writes a header of [models.Table.Columns] followed by one record per row.
func ExportToCSV(t *models.Table) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	columns := t.Columns()
	if len(columns) == 0 {
		return buf.Bytes(), nil
	}

	if err := writer.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	if err := writer.WriteAll(t.Records()); err != nil {
		return nil, fmt.Errorf("failed to write CSV records: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON encodes the rows as an array of objects; absent columns are omitted.
func ExportToJSON(t *models.Table, pretty bool) ([]byte, error) {
	rows := t.Rows
	if rows == nil {
		rows = []models.Row{}
	}

	data, err := shared.MarshalJSON(rows, pretty)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// ExportToText renders a bordered table, or a short notice when there are no rows.
func ExportToText(t *models.Table) []byte {
	if t.Len() == 0 {
		return []byte("No tracks found.\n")
	}

	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Columns()...).
		Rows(t.Records()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	return []byte(tbl.String() + "\n")
}

// Write renders t and writes it to path, or to w when path is empty.
func Write(w io.Writer, path string, t *models.Table, opts Options) error {
	data, err := Render(t, opts)
	if err != nil {
		return err
	}

	if path != "" {
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
