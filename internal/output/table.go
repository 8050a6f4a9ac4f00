package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/jeanpaul/unifind/internal/model"
)

// Table buffers rows and renders them with a header.
type Table struct {
	table  *tablewriter.Table
	header []string
	rows   [][]string
}

// NewTable creates a table writing to w.
func NewTable(w io.Writer, headers []string) *Table {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	return &Table{table: table, header: headers}
}

func (t *Table) AddRow(row ...string) {
	t.rows = append(t.rows, row)
}

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) Render() error {
	t.table.Header(t.header)
	if err := t.table.Bulk(t.rows); err != nil {
		return err
	}
	return t.table.Render()
}

// UniversityTable lists search results, one row per university.
func UniversityTable(w io.Writer, unis []model.University) *Table {
	t := NewTable(w, []string{"#", "Name", "Country", "State", "Web Page"})
	for i, u := range unis {
		state := ""
		if u.StateProvince != nil {
			state = *u.StateProvince
		}
		t.AddRow(strconv.Itoa(i+1), u.Name, u.Country, state, u.PrimaryWebPage())
	}
	return t
}

// FavoriteTable lists favorites in stored order.
func FavoriteTable(w io.Writer, favs []model.Favorite) *Table {
	t := NewTable(w, []string{"#", "Name", "Web Page"})
	for i, f := range favs {
		t.AddRow(strconv.Itoa(i+1), f.Name, f.WebPage)
	}
	return t
}
