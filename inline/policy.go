// Package inline implements the build-profile-driven exposure policy for
// the runtime's operations.
//
// Each operation in the rt package carries declarative metadata here: an
// abstract body cost and a requested exposure variant. Resolving the table
// against a build configuration yields the effective variant per
// operation. The choice of variant is purely a codegen decision — it never
// changes an operation's contract or error conditions — and a
// misconfigured request fails resolution outright rather than silently
// degrading.
package inline

import (
	"fmt"

	"github.com/softglow/pyrite/buildcfg"
)

// Variant is an operation's exposure form.
type Variant int

const (
	// ForceInline bodies are always substituted at the call site.
	ForceInline Variant = iota

	// NaturalInline bodies are exposed as inlining candidates; the
	// compiler heuristic decides per call site, and an out-of-line form
	// remains addressable for separately-compiled callers.
	NaturalInline

	// Outline bodies are compiled once and called through an ordinary
	// call.
	Outline
)

func (v Variant) String() string {
	switch v {
	case ForceInline:
		return "force-inline"
	case NaturalInline:
		return "natural-inline"
	case Outline:
		return "out-of-line"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ForceBudget is the largest body cost eligible for forced inlining. A
// forced request above the budget is a misconfiguration, not a hint.
const ForceBudget = 8

// Op describes one runtime operation's inlining metadata.
type Op struct {
	Name      string
	Cost      int     // abstract body-size units
	Requested Variant // the variant the operation's definition asks for

	// CrossUnit marks natural-inline candidates whose callers live in
	// other compilation units; they need cross-unit optimization to
	// inline and resolve to Outline without it.
	CrossUnit bool

	// Internal operations are not part of the public surface; they appear
	// in the table so the policy covers every definition.
	Internal bool
}

// Ops is the declarative table for the rt package. Hot lifetime
// operations are forced; small accessors are natural candidates; the
// invocation machinery and finalization stay out of line.
var Ops = []Op{
	{Name: "Retain", Cost: 2, Requested: ForceInline},
	{Name: "Release", Cost: 6, Requested: ForceInline},
	{Name: "RetainSafe", Cost: 3, Requested: ForceInline},
	{Name: "ReleaseSafe", Cost: 7, Requested: ForceInline},

	{Name: "TypeOf", Cost: 1, Requested: NaturalInline},
	{Name: "SizeOf", Cost: 3, Requested: NaturalInline},
	{Name: "RefCount", Cost: 1, Requested: NaturalInline},
	{Name: "IsExact", Cost: 1, Requested: NaturalInline},
	{Name: "HasFeature", Cost: 1, Requested: NaturalInline},

	{Name: "Track", Cost: 5, Requested: NaturalInline},
	{Name: "Untrack", Cost: 5, Requested: NaturalInline},
	{Name: "Tracked", Cost: 1, Requested: NaturalInline},

	{Name: "Invoke", Cost: 40, Requested: Outline},
	{Name: "CallOneArg", Cost: 12, Requested: NaturalInline, CrossUnit: true},
	{Name: "ReleaseSlots", Cost: 10, Requested: NaturalInline, CrossUnit: true},

	{Name: "finalize", Cost: 24, Requested: Outline, Internal: true},
	{Name: "invokeGeneric", Cost: 30, Requested: Outline, Internal: true},
}

// Resolve produces the effective variant table for every operation under
// the given build configuration.
func Resolve(b buildcfg.Build) (*Table, error) {
	return resolve(b, Ops)
}

func resolve(b buildcfg.Build, ops []Op) (*Table, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	t := &Table{
		Build:  b,
		byName: make(map[string]int, len(ops)),
	}
	for _, op := range ops {
		if op.Name == "" {
			return nil, fmt.Errorf("inline: operation with empty name")
		}
		if _, dup := t.byName[op.Name]; dup {
			return nil, fmt.Errorf("inline: duplicate operation %q", op.Name)
		}

		eff := op.Requested
		switch op.Requested {
		case ForceInline:
			// Forced operations stay forced in every profile, debug
			// included; an impossible request fails the build.
			if op.Cost > ForceBudget {
				return nil, fmt.Errorf("inline: %s: forced inline but cost %d exceeds budget %d",
					op.Name, op.Cost, ForceBudget)
			}
			if op.CrossUnit && !b.CrossUnit {
				return nil, fmt.Errorf("inline: %s: forced inline requires cross-unit optimization, which is disabled",
					op.Name)
			}
		case NaturalInline:
			// Conservative codegen and missing cross-unit capability both
			// demote the candidate; the contract is unchanged either way.
			if b.Profile == buildcfg.ProfileDebug {
				eff = Outline
			} else if op.CrossUnit && !b.CrossUnit {
				eff = Outline
			}
		case Outline:
			// Nothing to decide.
		default:
			return nil, fmt.Errorf("inline: %s: unknown requested variant %d", op.Name, int(op.Requested))
		}

		t.byName[op.Name] = len(t.rows)
		t.rows = append(t.rows, Resolution{Op: op, Effective: eff})
	}
	return t, nil
}
