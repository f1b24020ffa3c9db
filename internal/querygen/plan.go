package querygen

import "cimdea/internal/core"

// joinPlan describes which record types must be read for one query, in
// join order: the unit-of-analysis record type first (the driving table),
// followed by its ancestors out to the root, restricted to only the
// record types actually referenced by the request.
type joinPlan struct {
	// Order is the record type codes to FROM/JOIN, driving table first.
	Order []byte
}

// buildJoinPlan walks the hierarchy parent-ward from uoa and keeps only
// the record types in referenced, preserving parent-ward order. Traversal
// is parent-ward only: multi-parent hierarchies are not supported.
func buildJoinPlan(hierarchy *core.RecordHierarchy, uoa byte, referenced map[byte]bool) (joinPlan, error) {
	path, err := hierarchy.PathToRoot(uoa)
	if err != nil {
		return joinPlan{}, err
	}

	for code := range referenced {
		found := false
		for _, p := range path {
			if p == code {
				found = true
				break
			}
		}
		if !found {
			return joinPlan{}, core.Msg(
				"record type %q is not an ancestor of the unit-of-analysis record type %q; only records on the unit's chain can be joined",
				string(code), string(uoa),
			)
		}
	}

	var order []byte
	for _, p := range path {
		if referenced[p] {
			order = append(order, p)
		}
	}
	return joinPlan{Order: order}, nil
}
