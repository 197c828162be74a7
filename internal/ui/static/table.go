// Package static provides non-interactive terminal output components.
package static

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/lilydev/bg3mm/internal/instance"
)

// InstanceHeaders are the column headers matching [InstanceTableRow].
var InstanceHeaders = []string{"ID", "NAME", "ORDER"}

// shortID is the number of id characters shown in tables. Any prefix of at
// least four characters is accepted back as a reference.
const shortID = 8

// RenderTable creates a formatted table with proper column alignment.
// No borders are rendered.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// InstanceTableRow builds one table row for info.
func InstanceTableRow(info instance.Info) []string {
	id := info.ID.String()
	return []string{id[:shortID], info.Name, strconv.Itoa(info.OrderIndex)}
}

// InstanceTable renders the instances of idx in index order.
func InstanceTable(idx instance.Index) string {
	rows := make([][]string, 0, len(idx.Instances))
	for _, info := range idx.Instances {
		rows = append(rows, InstanceTableRow(info))
	}
	return RenderTable(InstanceHeaders, rows)
}
