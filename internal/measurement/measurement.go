// Package measurement defines the experimental measurement types and their
// CSV ingestion and grouping helpers.
package measurement

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/foodkinetics/shelflife-go/internal/errors"
	"github.com/foodkinetics/shelflife-go/internal/logging"
	"github.com/foodkinetics/shelflife-go/internal/product"
)

// Moisture is a single moisture sorption measurement.
type Moisture struct {
	Category        product.Category
	WaterActivity   float64 // dimensionless, strictly within (0,1)
	MoistureContent float64 // g water / g dry solid, non-negative
}

// Oxidation is a single lipid oxidation induction period measurement.
type Oxidation struct {
	Category       product.Category
	SetpointC      float64 // storage temperature setpoint (°C)
	InductionHours float64 // induction period (h), strictly positive
}

// OxidationGroupKey identifies a (category, temperature setpoint) group.
type OxidationGroupKey struct {
	Category  product.Category
	SetpointC float64
}

// ReadMoistureCSV reads moisture measurements from a CSV file with columns
// category,water_activity,moisture_content. Rows with missing, non-numeric or
// out-of-range values are skipped, not fatal.
func ReadMoistureCSV(path string) ([]Moisture, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var measurements []Moisture
	skipped := 0
	for _, row := range rows {
		if len(row) < 3 {
			skipped++
			continue
		}
		cat, err := product.Parse(row[0])
		if err != nil {
			skipped++
			continue
		}
		aw, err1 := parseFloat(row[1])
		mc, err2 := parseFloat(row[2])
		if err1 != nil || err2 != nil || aw <= 0 || aw >= 1 || mc < 0 {
			skipped++
			continue
		}
		measurements = append(measurements, Moisture{Category: cat, WaterActivity: aw, MoistureContent: mc})
	}

	if skipped > 0 {
		logging.Debug("skipped invalid moisture rows", "path", path, "skipped", skipped)
	}
	return measurements, nil
}

// ReadOxidationCSV reads oxidation measurements from a CSV file with columns
// category,set_point_t,ip_h. Rows with missing, non-numeric or non-positive
// induction periods are skipped, not fatal.
func ReadOxidationCSV(path string) ([]Oxidation, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}

	var measurements []Oxidation
	skipped := 0
	for _, row := range rows {
		if len(row) < 3 {
			skipped++
			continue
		}
		cat, err := product.Parse(row[0])
		if err != nil {
			skipped++
			continue
		}
		setpoint, err1 := parseFloat(row[1])
		ip, err2 := parseFloat(row[2])
		if err1 != nil || err2 != nil || ip <= 0 {
			skipped++
			continue
		}
		measurements = append(measurements, Oxidation{Category: cat, SetpointC: setpoint, InductionHours: ip})
	}

	if skipped > 0 {
		logging.Debug("skipped invalid oxidation rows", "path", path, "skipped", skipped)
	}
	return measurements, nil
}

// readCSV reads all data rows from a CSV file, skipping a header row when the
// first field is not numeric in any column position.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(err).
				Component("measurement").
				Category(errors.CategoryNotFound).
				Context("path", path).
				Build()
		}
		return nil, errors.New(err).
			Component("measurement").
			Category(errors.CategoryFileIO).
			Context("path", path).
			Build()
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // tolerate ragged rows, validated per row

	var rows [][]string
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.New(err).
				Component("measurement").
				Category(errors.CategoryDataIngest).
				Context("path", path).
				Build()
		}
		if first {
			first = false
			if isHeader(row) {
				continue
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isHeader reports whether a CSV row looks like a header row.
func isHeader(row []string) bool {
	if len(row) < 2 {
		return false
	}
	_, err := parseFloat(row[1])
	return err != nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// GroupMoistureByCategory groups moisture measurements by category,
// preserving measurement order within each group.
func GroupMoistureByCategory(measurements []Moisture) map[product.Category][]Moisture {
	groups := make(map[product.Category][]Moisture)
	for _, m := range measurements {
		groups[m.Category] = append(groups[m.Category], m)
	}
	return groups
}

// GroupOxidation groups oxidation measurements by (category, setpoint),
// preserving measurement order within each group.
func GroupOxidation(measurements []Oxidation) map[OxidationGroupKey][]Oxidation {
	groups := make(map[OxidationGroupKey][]Oxidation)
	for _, m := range measurements {
		key := OxidationGroupKey{Category: m.Category, SetpointC: m.SetpointC}
		groups[key] = append(groups[key], m)
	}
	return groups
}

// GroupOxidationByCategory groups oxidation measurements by category only.
func GroupOxidationByCategory(measurements []Oxidation) map[product.Category][]Oxidation {
	groups := make(map[product.Category][]Oxidation)
	for _, m := range measurements {
		groups[m.Category] = append(groups[m.Category], m)
	}
	return groups
}

// MeanInductionBySetpoint averages induction periods per distinct temperature
// setpoint and returns parallel slices sorted by ascending setpoint.
func MeanInductionBySetpoint(measurements []Oxidation) (setpointsC, meanHours []float64) {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for _, m := range measurements {
		sums[m.SetpointC] += m.InductionHours
		counts[m.SetpointC]++
	}

	setpointsC = make([]float64, 0, len(sums))
	for t := range sums {
		setpointsC = append(setpointsC, t)
	}
	sort.Float64s(setpointsC)

	meanHours = make([]float64, len(setpointsC))
	for i, t := range setpointsC {
		meanHours[i] = sums[t] / float64(counts[t])
	}
	return setpointsC, meanHours
}
