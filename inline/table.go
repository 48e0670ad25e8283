package inline

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/softglow/pyrite/buildcfg"
)

// Resolution pairs an operation with its effective variant under one
// build configuration.
type Resolution struct {
	Op
	Effective Variant
}

// Table is the resolved policy for one build configuration.
type Table struct {
	Build  buildcfg.Build
	rows   []Resolution
	byName map[string]int
}

// Variant returns the effective variant for the named operation.
func (t *Table) Variant(name string) (Variant, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Outline, false
	}
	return t.rows[i].Effective, true
}

// Rows returns the resolutions in declaration order. The slice is shared;
// callers must not modify it.
func (t *Table) Rows() []Resolution {
	return t.rows
}

// Render writes the resolved table as aligned text.
func (t *Table) Render(w io.Writer) error {
	cross := "disabled"
	if t.Build.CrossUnit {
		cross = "enabled"
	}
	fmt.Fprintf(w, "profile=%s cross-unit-optimization=%s\n", t.Build.Profile, cross)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "OPERATION\tCOST\tREQUESTED\tEFFECTIVE\tVISIBILITY")
	for _, row := range t.rows {
		vis := "public"
		if row.Internal {
			vis = "internal"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", row.Name, row.Cost, row.Requested, row.Effective, vis)
	}
	return tw.Flush()
}
