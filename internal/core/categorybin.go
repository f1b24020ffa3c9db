package core

import "fmt"

// RawCategoryBin is the raw (low?, high?, label) triple as it arrives over
// the wire, before the try-from rules turn it into a CategoryBin.
type RawCategoryBin struct {
	Code       int
	ValueLabel string
	Low        *int
	High       *int
}

// categoryBinKind distinguishes the three closed variants of CategoryBin.
type categoryBinKind int

const (
	binLessThan categoryBinKind = iota
	binMoreThan
	binRange
)

// CategoryBin is a tagged variant over integers: LessThan (x < value),
// MoreThan (x > value), or Range (low <= x <= high). The boundary value at
// an open end belongs to neither adjacent bin.
type CategoryBin struct {
	kind  categoryBinKind
	value int // LessThan / MoreThan
	low   int // Range
	high  int // Range
	label string
}

// NewLessThan builds the x < value bin.
func NewLessThan(value int, label string) CategoryBin {
	return CategoryBin{kind: binLessThan, value: value, label: label}
}

// NewMoreThan builds the x > value bin.
func NewMoreThan(value int, label string) CategoryBin {
	return CategoryBin{kind: binMoreThan, value: value, label: label}
}

// NewRange builds the low <= x <= high bin. Returns an error if low > high.
func NewRange(low, high int, label string) (CategoryBin, error) {
	if low > high {
		return CategoryBin{}, Msg("category bin %q has low %d greater than high %d", label, low, high)
	}
	return CategoryBin{kind: binRange, low: low, high: high, label: label}, nil
}

// NewCategoryBin applies the spec's construction rules to a raw bin: both
// present requires low <= high; only-high -> LessThan(high); only-low ->
// MoreThan(low); neither -> error.
func NewCategoryBin(raw RawCategoryBin) (CategoryBin, error) {
	switch {
	case raw.Low != nil && raw.High != nil:
		return NewRange(*raw.Low, *raw.High, raw.ValueLabel)
	case raw.High != nil:
		return NewLessThan(*raw.High, raw.ValueLabel), nil
	case raw.Low != nil:
		return NewMoreThan(*raw.Low, raw.ValueLabel), nil
	default:
		return CategoryBin{}, Msg("category bin %q has neither low nor high bound", raw.ValueLabel)
	}
}

// Within reports whether x satisfies this bin's membership rule. The
// boundary value at an open end (LessThan/MoreThan) belongs to neither
// adjacent bin; Range is closed at both ends.
func (b CategoryBin) Within(x int) bool {
	switch b.kind {
	case binLessThan:
		return x < b.value
	case binMoreThan:
		return x > b.value
	case binRange:
		return x >= b.low && x <= b.high
	default:
		return false
	}
}

// Label returns the bin's display label.
func (b CategoryBin) Label() string { return b.label }

// SQLPredicate returns the SQL boolean expression (referencing column
// expr) that matches this bin, for use in QueryGen's CASE expression.
func (b CategoryBin) SQLPredicate(expr string) string {
	switch b.kind {
	case binLessThan:
		return sqlLess(expr, b.value)
	case binMoreThan:
		return sqlMore(expr, b.value)
	default:
		return sqlBetween(expr, b.low, b.high)
	}
}

func sqlLess(expr string, value int) string {
	return fmt.Sprintf("%s < %d", expr, value)
}

func sqlMore(expr string, value int) string {
	return fmt.Sprintf("%s > %d", expr, value)
}

func sqlBetween(expr string, low, high int) string {
	return fmt.Sprintf("%s BETWEEN %d AND %d", expr, low, high)
}
