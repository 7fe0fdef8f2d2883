package tui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"cardboard/internal/layers"
)

// refreshAttrsFromCurrent rebuilds the table columns/rows from the loaded layers
func (m *Model) refreshAttrsFromCurrent() {
	cols, rows := buildAttributes(m.data)
	if len(cols) == 0 || len(rows) == 0 {
		m.showAttrs = false
		m.status = "no attributes for current dataset"
		return
	}
	tcols := make([]table.Column, 0, len(cols))
	maxColW := 24
	for _, c := range cols {
		w := min(len(c)+2, maxColW)
		tcols = append(tcols, table.Column{Title: c, Width: max(w, 6)})
	}
	trows := make([]table.Row, 0, len(rows))
	colCount := len(tcols)
	for _, r := range rows {
		cells := r
		if len(cells) < colCount {
			cells = append(cells, make([]string, colCount-len(cells))...)
		} else if len(cells) > colCount {
			cells = cells[:colCount]
		}
		trows = append(trows, table.Row(cells))
	}
	// Avoid transient mismatch: clear rows, set columns, then set rows
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}

// buildAttributes lists one row per feature of every layer: its layer,
// feature index, the index of the style it resolves to and the union of
// property keys across all layers.
func buildAttributes(d *layers.Data) ([]string, [][]string) {
	if d == nil {
		return nil, nil
	}
	seen := map[string]bool{}
	var keys []string
	for _, l := range d.Layers {
		for _, props := range l.Properties {
			for k := range props {
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
	}
	sort.Strings(keys)
	cols := append([]string{"layer", "feature", "style"}, keys...)

	var rows [][]string
	for li, l := range d.Layers {
		for fi, props := range l.Properties {
			row := []string{strconv.Itoa(li), strconv.Itoa(fi), styleIndex(d, li, fi)}
			for _, k := range keys {
				row = append(row, formatValue(props[k]))
			}
			rows = append(rows, row)
		}
	}
	return cols, rows
}

func styleIndex(d *layers.Data, layer, feature int) string {
	if layer >= len(d.Styles) || d.Styles[layer] == nil {
		return "-"
	}
	return strconv.Itoa(d.Styles[layer].Select(d.Layers[layer].Properties[feature]))
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%g", t)
	case bool:
		return strconv.FormatBool(t)
	default:
		bs, _ := json.Marshal(t)
		return string(bs)
	}
}
