// Package layout parses the fixed-width layout descriptors that
// accompany each IPUMS dataset. One file per dataset, one line per
// variable.
package layout

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"cimdea/internal/core"
)

// Variable is one parsed line of a layout file: name, start column,
// width, raw type code, record type code, and an optional count of
// implied decimals.
type Variable struct {
	Name            string
	Start           int
	Width           int
	TypeCode        string
	RecordTypeCode  byte
	ImpliedDecimals int
	Line            int // 1-based source line, for error messages
}

// ParseError reports a malformed layout line together with its line
// number; a malformed line is fatal, not skippable.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("layout parse error at line %d: %s", e.Line, e.Message)
}

// ParseFile reads and parses one descriptor file. A missing file is
// fatal for that dataset, reported as an MdError.
func ParseFile(path string) ([]Variable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.Msg("cannot read layout file %q: %v", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads one descriptor from r, returning an ordered sequence of
// parsed variable records. Variable order defines the layout's column
// order. Empty lines and comments (# prefix) are skipped; unknown
// trailing columns are ignored.
func Parse(r io.Reader) ([]Variable, error) {
	var vars []Variable
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		v, err := parseLine(line, lineNo)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, core.Msg("error reading layout: %v", err)
	}
	return vars, nil
}

// parseLine parses "NAME START WIDTH TYPE RECORDTYPE [IMPLIED_DECIMALS]".
func parseLine(line string, lineNo int) (Variable, error) {
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return Variable{}, &ParseError{Line: lineNo, Message: "expected at least 5 whitespace-separated fields (NAME START WIDTH TYPE RECORDTYPE)"}
	}

	start, err := strconv.Atoi(fields[1])
	if err != nil {
		return Variable{}, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid start column %q: %v", fields[1], err)}
	}
	width, err := strconv.Atoi(fields[2])
	if err != nil {
		return Variable{}, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid width %q: %v", fields[2], err)}
	}
	recordType := fields[4]
	if len(recordType) != 1 {
		return Variable{}, &ParseError{Line: lineNo, Message: fmt.Sprintf("record type code must be a single character, got %q", recordType)}
	}

	v := Variable{
		Name:           strings.ToUpper(fields[0]),
		Start:          start,
		Width:          width,
		TypeCode:       strings.ToUpper(fields[3]),
		RecordTypeCode: recordType[0],
		Line:           lineNo,
	}

	if len(fields) >= 6 {
		decimals, err := strconv.Atoi(fields[5])
		if err != nil {
			return Variable{}, &ParseError{Line: lineNo, Message: fmt.Sprintf("invalid implied decimals %q: %v", fields[5], err)}
		}
		v.ImpliedDecimals = decimals
	}

	return v, nil
}

// ToIpumsVariable converts a parsed layout line into the core.IpumsVariable
// shape used by MetadataStore, resolving the type code via
// core.ParseVariableDataType.
func (v Variable) ToIpumsVariable() (core.IpumsVariable, error) {
	dt, err := core.ParseVariableDataType(v.TypeCode, v.ImpliedDecimals)
	if err != nil {
		return core.IpumsVariable{}, &ParseError{Line: v.Line, Message: err.Error()}
	}
	rt := v.RecordTypeCode
	return core.IpumsVariable{
		Name:           v.Name,
		DataType:       dt,
		Formatting:     &core.ColumnFormatting{Start: v.Start, Width: v.Width},
		RecordTypeCode: &rt,
	}, nil
}
