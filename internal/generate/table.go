package generate

import (
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/fulmenhq/tonegen/internal/manifest"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// AssetTable lists every asset with its ordinal, symbol and size.
func AssetTable(m *manifest.Manifest) string {
	headers := []string{"#", "File", "Symbol", "Size", "Bytes"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight}

	recs := m.Records()
	rows := make([][]string, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, []string{
			strconv.Itoa(rec.Ordinal),
			rec.Name,
			rec.Symbol,
			humanize.IBytes(uint64(rec.Size)), // #nosec G115 -- sizes come from Stat and are non-negative
			strconv.FormatInt(rec.Size, 10),
		})
	}
	return renderTable(headers, rows, aligns)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}
