// Package artifact reads and writes the CSV parameter tables produced by the
// fit stage and consumed by the predict stage. Failed categories are
// serialized as NaN rows so the artifact layout stays stable; on load a NaN
// row simply yields no table entry for that category.
package artifact

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/foodkinetics/shelflife-go/internal/arrhenius"
	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/gab"
	"github.com/foodkinetics/shelflife-go/internal/product"
	"github.com/foodkinetics/shelflife-go/internal/shelflife"
)

// WriteGABParams writes the GAB parameter table for the given categories in
// order. Categories missing from the table get a NaN row.
func WriteGABParams(path string, cats []product.Category, table map[product.Category]gab.Parameters) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeGABParams(file, cats, table)
}

func writeGABParams(w io.Writer, cats []product.Category, table map[product.Category]gab.Parameters) error {
	if _, err := io.WriteString(w, "category,W_m,C,K\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, cat := range cats {
		var wm, c, k float64
		if params, ok := table[cat]; ok {
			wm, c, k = params.Wm, params.C, params.K
		} else {
			wm, c, k = math.NaN(), math.NaN(), math.NaN()
		}
		line := fmt.Sprintf("%s,%s,%s,%s\n", cat, formatFloat(wm), formatFloat(c), formatFloat(k))
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// WriteOxidationParams writes the Arrhenius parameter table for the given
// categories in order. Categories missing from the table get a NaN row.
func WriteOxidationParams(path string, cats []product.Category, table map[product.Category]arrhenius.Parameters) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeOxidationParams(file, cats, table)
}

func writeOxidationParams(w io.Writer, cats []product.Category, table map[product.Category]arrhenius.Parameters) error {
	if _, err := io.WriteString(w, "category,e_a,k_0,ip_days_25c\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, cat := range cats {
		ea, k0, ip := math.NaN(), math.NaN(), math.NaN()
		if params, ok := table[cat]; ok {
			ea, k0, ip = params.ActivationEnergy, params.PreExponential, params.InductionDays25C
		}
		line := fmt.Sprintf("%s,%s,%s,%s\n", cat, formatFloat(ea), formatFloat(k0), formatFloat(ip))
		if _, err := io.WriteString(w, line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// WritePredictions writes the combined prediction table, one row per
// category in the fixed enumeration order. Unavailable predictions get a
// NaN shelf life and dominant model "none".
func WritePredictions(path string, predictions []shelflife.Prediction) error {
	file, err := createFile(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if _, err := io.WriteString(file, "category_code,category_name,shelf_life_pred_days,dominant_model\n"); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range predictions {
		days := math.NaN()
		if p.Available {
			days = p.Days
		}
		line := fmt.Sprintf("%s,%s,%s,%s\n", p.Category, p.Category.Name(), formatFloat(days), p.Dominant)
		if _, err := io.WriteString(file, line); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

// LoadGABParams reads a GAB parameter table. Rows with NaN or unparseable
// parameters yield no entry for that category.
func LoadGABParams(path string) (map[product.Category]gab.Parameters, error) {
	rows, err := loadRows(path, 4)
	if err != nil {
		return nil, err
	}

	table := make(map[product.Category]gab.Parameters)
	for _, row := range rows {
		cat, ok := parseCategory(row[0])
		if !ok {
			continue
		}
		wm, err1 := strconv.ParseFloat(row[1], 64)
		c, err2 := strconv.ParseFloat(row[2], 64)
		k, err3 := strconv.ParseFloat(row[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || math.IsNaN(wm) || math.IsNaN(c) || math.IsNaN(k) {
			continue
		}
		table[cat] = gab.Parameters{Wm: wm, C: c, K: k}
	}
	return table, nil
}

// LoadOxidationParams reads an Arrhenius parameter table. Rows with NaN or
// unparseable parameters yield no entry for that category.
func LoadOxidationParams(path string) (map[product.Category]arrhenius.Parameters, error) {
	rows, err := loadRows(path, 4)
	if err != nil {
		return nil, err
	}

	table := make(map[product.Category]arrhenius.Parameters)
	for _, row := range rows {
		cat, ok := parseCategory(row[0])
		if !ok {
			continue
		}
		ea, err1 := strconv.ParseFloat(row[1], 64)
		k0, err2 := strconv.ParseFloat(row[2], 64)
		ip, err3 := strconv.ParseFloat(row[3], 64)
		if err1 != nil || err2 != nil || err3 != nil || math.IsNaN(ea) || math.IsNaN(k0) {
			continue
		}
		table[cat] = arrhenius.Parameters{ActivationEnergy: ea, PreExponential: k0, InductionDays25C: ip}
	}
	return table, nil
}

// loadRows reads all data rows with at least minFields fields, skipping the
// header. A missing file is reported with CategoryNotFound so the caller can
// turn it into an instructive precondition message.
func loadRows(path string, minFields int) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(err).
				Component("artifact").
				Category(errors.CategoryNotFound).
				Context("path", path).
				Build()
		}
		return nil, errors.New(err).
			Component("artifact").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(err).
				Component("artifact").
				Category(errors.CategoryArtifact).
				Context("path", path).
				Build()
		}
		if first {
			first = false
			continue // header
		}
		if len(row) >= minFields {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func parseCategory(code string) (product.Category, bool) {
	cat := product.Category(strings.ToUpper(strings.TrimSpace(code)))
	return cat, cat.Known()
}

// createFile creates the file and any missing parent directories.
func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.New(err).
				Component("artifact").
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, errors.New(err).
			Component("artifact").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	return file, nil
}

// formatFloat renders a float for CSV output, preserving NaN for failed fits.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
