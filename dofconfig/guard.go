package dofconfig

import (
	"fmt"

	"github.com/dof-engine/dofcore/input/statemachine"
)

// BuildGuard translates a GuardConfig into the statemachine.Guard value it
// describes, via a constructor table keyed on Type.
func BuildGuard(g GuardConfig) (statemachine.Guard, error) {
	switch g.Type {
	case "", "unconditional":
		return statemachine.Unconditional(), nil
	case "timeout":
		return statemachine.OnTimeout(statemachine.Timespan(g.ThresholdMS)), nil
	case "key_down":
		return statemachine.OnKeyDown(), nil
	case "key_up":
		return statemachine.OnKeyUp(), nil
	case "delta_1d":
		return statemachine.OnDelta1D(g.Min, g.Max), nil
	case "absolute_1d":
		return statemachine.OnAbsolute1D(g.Min, g.Max), nil
	case "delta_2d":
		return statemachine.OnDelta2D([2]float64{g.Min, g.Min}, [2]float64{g.Max, g.Max}), nil
	case "absolute_2d":
		return statemachine.OnAbsolute2D([2]float64{g.Min, g.Min}, [2]float64{g.Max, g.Max}), nil
	default:
		return nil, fmt.Errorf("dofconfig: unknown guard type %q", g.Type)
	}
}
