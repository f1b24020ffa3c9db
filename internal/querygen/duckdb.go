package querygen

import (
	"fmt"
	"strings"

	"cimdea/internal/conventions"
	"cimdea/internal/core"
	"cimdea/internal/request"
)

// duckDBGenerator implements Generator for the DuckDB dialect: Parquet
// literal table references, standard ANSI join/aggregate SQL.
type duckDBGenerator struct{}

// source describes one record type's table: its alias and the record
// type itself (for weight/key/FK lookups).
type source struct {
	recordType core.RecordType
	alias      string
}

// Generate builds the per-dataset SQL plan: resolve sources, join along
// the hierarchy from the unit of analysis outward, filter, project
// grouping expressions, aggregate, and order.
func (g *duckDBGenerator) Generate(req request.DataRequest, sample core.RequestSample, conv *conventions.Conventions, format conventions.InputFormat) (string, error) {
	collection := conv.Collection
	uoa := req.UnitOfAnalysis()

	referenced := map[byte]bool{uoa.Code: true}
	for _, rv := range req.RequestVariables() {
		if rv.Variable.RecordTypeCode != nil {
			referenced[*rv.Variable.RecordTypeCode] = true
		}
	}
	for _, c := range req.Conditions() {
		if c.RecordTypeCode != nil {
			referenced[*c.RecordTypeCode] = true
		}
	}

	plan, err := buildJoinPlan(collection.Hierarchy, uoa.Code, referenced)
	if err != nil {
		return "", err
	}
	if len(plan.Order) == 0 {
		plan.Order = []byte{uoa.Code}
	}

	paths, err := conv.PathsFromDatasetName(sample.Dataset.Name, format)
	if err != nil {
		return "", err
	}

	sources := make(map[byte]source, len(plan.Order))
	for _, code := range plan.Order {
		rt, ok := collection.RecordTypes[code]
		if !ok {
			return "", core.MetadataErr("record type", string(code), "not present in collection")
		}
		sources[code] = source{recordType: rt, alias: conv.TableAlias(sample.Dataset.Name, rt)}
	}

	fromClause, err := g.buildFromClause(plan, sources, paths, format)
	if err != nil {
		return "", err
	}

	colRef := func(code byte, column string) string {
		return fmt.Sprintf("%s.%s", sources[code].alias, column)
	}

	var whereParts []string
	if uoa.Weight != nil && uoa.Weight.SelfWeighted {
		whereParts = append(whereParts, fmt.Sprintf("%s = 2", colRef(uoa.Code, "SELFWTSL")))
	}
	for _, c := range req.Conditions() {
		rtCode := uoa.Code
		if c.RecordTypeCode != nil {
			rtCode = *c.RecordTypeCode
		}
		pred, err := c.SQLPredicate(colRef(rtCode, c.VariableName))
		if err != nil {
			return "", err
		}
		whereParts = append(whereParts, pred)
	}
	for _, rv := range req.RequestVariables() {
		if rv.CaseSelection == nil {
			continue
		}
		rtCode := uoa.Code
		if rv.Variable.RecordTypeCode != nil {
			rtCode = *rv.Variable.RecordTypeCode
		}
		pred, err := rv.CaseSelection.SQLPredicate(colRef(rtCode, rv.Variable.Name))
		if err != nil {
			return "", err
		}
		whereParts = append(whereParts, pred)
	}

	groupExprs := make([]string, 0, len(req.RequestVariables()))
	for _, rv := range req.RequestVariables() {
		rtCode := uoa.Code
		if rv.Variable.RecordTypeCode != nil {
			rtCode = *rv.Variable.RecordTypeCode
		}
		col := colRef(rtCode, rv.Variable.Name)
		groupExprs = append(groupExprs, g.groupingExpr(rv, col))
	}

	weightCol := "1"
	if uoa.Weight != nil {
		weightCol = colRef(uoa.Code, uoa.Weight.Column)
	}

	var sb strings.Builder
	sb.WriteString("SELECT COUNT(*) AS ct, SUM(")
	sb.WriteString(weightCol)
	sb.WriteString(") AS weighted_ct")
	for _, expr := range groupExprs {
		sb.WriteString(", ")
		sb.WriteString(expr)
	}
	sb.WriteString(" FROM ")
	sb.WriteString(fromClause)
	if len(whereParts) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(whereParts, " AND "))
	}
	if len(groupExprs) > 0 {
		groupList := strings.Join(groupExprs, ", ")
		sb.WriteString(" GROUP BY ")
		sb.WriteString(groupList)
		sb.WriteString(" ORDER BY ")
		sb.WriteString(groupList)
		sb.WriteString(" ASC")
	}

	return sb.String(), nil
}

// groupingExpr projects one request variable's grouping expression: a
// CASE-over-bins for categorical variables, integer division for general
// recodes, or the raw column otherwise.
func (g *duckDBGenerator) groupingExpr(rv core.RequestVariable, col string) string {
	if rv.IsCategorical() {
		var sb strings.Builder
		sb.WriteString("CASE")
		for i, bin := range rv.Bins {
			fmt.Fprintf(&sb, " WHEN %s THEN %d", bin.SQLPredicate(col), i)
		}
		sb.WriteString(" END")
		return sb.String()
	}
	if divisor := rv.EffectiveDivisor(); divisor != 1 {
		return fmt.Sprintf("(%s / %d)", col, divisor)
	}
	return col
}

// buildFromClause emits the DuckDB FROM/JOIN clause: the driving table is
// the unit-of-analysis record type; ancestors join in parent-ward order
// by their foreign key.
func (g *duckDBGenerator) buildFromClause(plan joinPlan, sources map[byte]source, paths map[string]string, format conventions.InputFormat) (string, error) {
	driving := plan.Order[0]
	drivingSrc := sources[driving]
	fromRef, err := tableLiteral(paths, driving, format)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s AS %s", fromRef, drivingSrc.alias)

	child := driving
	for _, code := range plan.Order[1:] {
		// code is child's ancestor; the edge we need is child -> code.
		_, fk, ok := recordFK(sources, child)
		if !ok {
			return "", core.Msg("no foreign key from %q to %q", string(child), string(code))
		}
		parentSrc := sources[code]
		parentRef, err := tableLiteral(paths, code, format)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, " JOIN %s AS %s ON %s.%s = %s.%s",
			parentRef, parentSrc.alias,
			sources[child].alias, fk.Column,
			parentSrc.alias, fk.ParentColumn,
		)
		child = code
	}
	return sb.String(), nil
}

func recordFK(sources map[byte]source, code byte) (core.RecordType, core.ForeignKey, bool) {
	rt := sources[code].recordType
	if len(rt.ForeignKeys) == 0 {
		return rt, core.ForeignKey{}, false
	}
	return rt, rt.ForeignKeys[0], true
}

// tableLiteral returns the DuckDB table-producing expression for a record
// type's data file under the given input format.
func tableLiteral(paths map[string]string, code byte, format conventions.InputFormat) (string, error) {
	key := string(code)
	if format == conventions.FixedWidth {
		key = ""
	}
	path, ok := paths[key]
	if !ok {
		return "", core.MetadataErr("record type", string(code), "has no data path for this dataset")
	}
	switch format {
	case conventions.CSV:
		return fmt.Sprintf("read_csv_auto('%s')", path), nil
	default:
		return fmt.Sprintf("read_parquet('%s')", path), nil
	}
}
