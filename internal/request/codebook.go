package request

import (
	"fmt"
	"sort"
	"strings"

	"cimdea/internal/core"
)

// codebook renders requestVariables as a plain-text codebook: one block
// per variable naming its data type and, if present, its category
// labels. Grounded on the teacher's plain io.Writer/strings.Builder
// text-rendering idiom (see internal/output/human.go in the teacher).
func codebook(vars []core.RequestVariable) string {
	var sb strings.Builder
	for _, rv := range vars {
		v := rv.Variable
		fmt.Fprintf(&sb, "%s (%s)\n", v.Name, v.DataType.String())
		if len(v.Categories) > 0 {
			codes := make([]int, 0, len(v.Categories))
			for code := range v.Categories {
				codes = append(codes, code)
			}
			sort.Ints(codes)
			for _, code := range codes {
				fmt.Fprintf(&sb, "  %d  %s\n", code, v.Categories[code])
			}
		}
		if rv.IsCategorical() {
			for i, bin := range rv.Bins {
				fmt.Fprintf(&sb, "  bin %d: %s\n", i, bin.Label())
			}
		}
	}
	return sb.String()
}
