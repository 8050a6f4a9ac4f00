// Package export writes the favorites list to portable files and reads it
// back.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/jeanpaul/unifind/internal/model"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// Formats lists the supported format names.
var Formats = []string{FormatJSON, FormatYAML, FormatXLSX}

const sheetName = "Favorites"

var header = []string{"Name", "Web Page"}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("cannot infer format from %q (use .json, .yaml or .xlsx)", path)
}

// Write encodes favs in format to w.
func Write(w io.Writer, format string, favs []model.Favorite) error {
	if favs == nil {
		favs = []model.Favorite{}
	}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(favs)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(favs); err != nil {
			return err
		}
		return enc.Close()
	case FormatXLSX:
		return writeXLSX(w, favs)
	}
	return fmt.Errorf("unsupported export format %q (must be one of %s)", format, strings.Join(Formats, ", "))
}

// WriteFile writes favs to path, choosing the format from the extension when
// format is empty.
func WriteFile(path, format string, favs []model.Favorite) error {
	if format == "" {
		f, err := FormatFromPath(path)
		if err != nil {
			return err
		}
		format = f
	}
	if !slices.Contains(Formats, format) {
		return fmt.Errorf("unsupported export format %q (must be one of %s)", format, strings.Join(Formats, ", "))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, format, favs); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func writeXLSX(w io.Writer, favs []model.Favorite) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, fav := range favs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []string{fav.Name, fav.WebPage}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	_ = f.SetColWidth(sheetName, "A", "A", 48)
	_ = f.SetColWidth(sheetName, "B", "B", 40)
	_, err := f.WriteTo(w)
	return err
}

// ReadFile decodes a favorites file written by WriteFile (or by hand). The
// format comes from the extension.
func ReadFile(path string) ([]model.Favorite, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if format == FormatXLSX {
		return readXLSX(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var favs []model.Favorite
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &favs)
	case FormatYAML:
		err = yaml.Unmarshal(data, &favs)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return favs, nil
}

// readXLSX reads the first sheet; the first row is a header. Rows missing a
// web page are kept so the caller decides how to reject them.
func readXLSX(path string) ([]model.Favorite, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}

	var favs []model.Favorite
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		fav := model.Favorite{Name: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			fav.WebPage = row[1]
		}
		favs = append(favs, fav)
	}
	return favs, nil
}
