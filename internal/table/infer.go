// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package table

import (
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches plain decimal numbers. strconv.ParseFloat also
// accepts NaN, Inf and hex floats, which stay text here.
var decimalPattern = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// inferColumn picks the narrowest dtype every non-empty cell parses as, in
// the order i64, f64, bool, str. A column with no non-empty cells is Null.
func inferColumn(name string, cells []string) Column {
	dtype := Null
	for _, s := range cells {
		if s == "" {
			continue
		}
		dtype = widen(dtype, cellType(s))
		if dtype == String {
			break
		}
	}

	values := make([]any, len(cells))
	for i, s := range cells {
		if s == "" {
			continue
		}
		values[i] = convert(dtype, s)
	}
	return Column{Name: name, DType: dtype, Values: values}
}

func cellType(s string) DType {
	if _, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int64
	}
	if decimalPattern.MatchString(s) {
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return Float64
		}
	}
	if _, ok := parseBool(s); ok {
		return Bool
	}
	return String
}

// widen merges the dtype seen so far with the dtype of one more cell.
func widen(cur, next DType) DType {
	switch {
	case cur == Null:
		return next
	case cur == next:
		return cur
	case (cur == Int64 && next == Float64) || (cur == Float64 && next == Int64):
		return Float64
	default:
		return String
	}
}

func convert(dtype DType, s string) any {
	switch dtype {
	case Int64:
		v, _ := strconv.ParseInt(s, 10, 64)
		return v
	case Float64:
		v, _ := strconv.ParseFloat(s, 64)
		return v
	case Bool:
		v, _ := parseBool(s)
		return v
	default:
		return s
	}
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}
