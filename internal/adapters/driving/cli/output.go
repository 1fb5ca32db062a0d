package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/Alma-hanif/infinitag/internal/core/domain"
)

// Output formats accepted by --format.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

func addFormatFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "format", "o", formatTable, "Output format: table, json or yaml")
}

func validateFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	}
	return fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, format)
}

// writeStructured writes v as JSON or YAML. It reports false for the table format.
func writeStructured(w io.Writer, format string, v any) (bool, error) {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// renderTable prints a bordered table sized to the terminal when w is one.
func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...)
	if width := terminalWidth(w); width > 0 {
		t = t.Width(width)
	}
	fmt.Fprintln(w, t)
}

// terminalWidth returns the width of w when it is a terminal, otherwise 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func documentRows(docs []domain.Document, selected func(string) bool, unsynced map[string]domain.UnsyncedRow) [][]string {
	rows := make([][]string, len(docs))
	for i := range docs {
		doc := &docs[i]
		mark := "[ ]"
		if selected != nil && selected(doc.ID) {
			mark = "[x]"
		}
		id := doc.ID
		if _, ok := unsynced[doc.ID]; ok {
			id += " *"
		}
		rows[i] = []string{
			mark,
			id,
			doc.Title,
			doc.Type,
			doc.Language,
			formatSize(doc.Size),
			formatDate(doc.CreationDate),
			strings.Join(doc.KeywordValues(), ", "),
		}
	}
	return rows
}

var documentHeaders = []string{"", "ID", "Title", "Type", "Language", "Size", "Created", "Keywords"}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("2006-01-02 15:04")
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return strconv.FormatInt(size, 10) + " B"
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
