// Package product defines the closed set of packaged-good categories and
// their category-dependent water activity constants.
package product

import (
	"strings"

	"github.com/foodkinetics/shelflife-go/internal/errors"
)

// Category is a single-letter code identifying a packaged-good class.
type Category string

const (
	Crackers        Category = "C"
	SweetBiscuit    Category = "D"
	CreamFilling    Category = "F"
	SnackOil        Category = "O"
	BakedSnack      Category = "P"
	SandwichBiscuit Category = "S"
	SugarWafers     Category = "W"
)

// categoryNames maps category codes to human-readable labels.
var categoryNames = map[Category]string{
	Crackers:        "Crackers",
	SweetBiscuit:    "Sweet biscuit",
	CreamFilling:    "Cream filling",
	SnackOil:        "Snack (oil)",
	BakedSnack:      "Baked snack",
	SandwichBiscuit: "Sandwich biscuit",
	SugarWafers:     "Sugar Wafers",
}

// enumeration is the fixed category order used for reports and artifacts.
var enumeration = []Category{
	Crackers,
	SweetBiscuit,
	CreamFilling,
	SnackOil,
	BakedSnack,
	SandwichBiscuit,
	SugarWafers,
}

// Categories returns all known categories in their fixed enumeration order.
// The returned slice is a copy and safe to modify.
func Categories() []Category {
	cats := make([]Category, len(enumeration))
	copy(cats, enumeration)
	return cats
}

// CodeList returns the valid category codes as a comma separated string,
// for use in error messages and CLI help text.
func CodeList() string {
	codes := make([]string, len(enumeration))
	for i, c := range enumeration {
		codes[i] = string(c)
	}
	return strings.Join(codes, ",")
}

// Name returns the human-readable label for the category, or the raw code if
// the category is not part of the known set.
func (c Category) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Known reports whether the category is part of the fixed enumeration.
func (c Category) Known() bool {
	_, ok := categoryNames[c]
	return ok
}

// Parse converts a category code string to a Category. The code is case
// insensitive. Unknown codes yield a validation error naming the valid set.
func Parse(code string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(code)))
	if !c.Known() {
		return "", errors.Newf("invalid category code: %s, must be one of %s", code, CodeList()).
			Component("product").
			Category(errors.CategoryValidation).
			Context("code", code).
			Build()
	}
	return c, nil
}

// AwValues returns the critical and initial water activity (aw_c, aw_0) for
// the category. Categories outside the known rules fall back to (0.5, 0.3),
// so the lookup is total over structurally valid codes.
func (c Category) AwValues() (awCritical, awInitial float64) {
	switch c {
	case Crackers, SweetBiscuit, BakedSnack, SandwichBiscuit:
		awCritical = 0.6
	default:
		awCritical = 0.5
	}

	switch c {
	case SweetBiscuit, SandwichBiscuit:
		awInitial = 0.4
	default:
		awInitial = 0.3
	}

	return awCritical, awInitial
}
