package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ackbas/methodnet/internal/procedure"
)

// Transcript renders a reconstructed procedure as a human-readable,
// ordered list of steps — "apply Method to X, Y to get Z, W" — in the
// spirit of original_source/ackbas_core/fancy_format.py, which renders a
// catalogue back to readable text. Start objects are listed first.
func Transcript(proc *procedure.Procedure) string {
	var b strings.Builder

	var starts []string
	for _, tn := range proc.TypeNodes {
		if tn.Producer == nil {
			starts = append(starts, fmt.Sprintf("%s: %s(%s)", tn.DisplayName, tn.Instance.Type.Name, paramsSummary(tn)))
		}
	}
	sort.Strings(starts)
	for _, s := range starts {
		fmt.Fprintf(&b, "start %s\n", s)
	}

	for _, mn := range proc.MethodNodes {
		inputNames := make([]string, 0, len(mn.Method.Inputs))
		for _, in := range mn.Method.Inputs {
			if tn, ok := mn.Inputs[in.Name]; ok {
				inputNames = append(inputNames, tn.DisplayName)
			}
		}
		outputNames := make([]string, 0, len(mn.Method.Outputs))
		for _, out := range mn.Method.Outputs {
			if tn, ok := mn.Outputs[out.Name]; ok {
				suffix := ""
				if tn.IsTerminal {
					suffix = " (terminal)"
				}
				outputNames = append(outputNames, tn.DisplayName+suffix)
			}
		}
		fmt.Fprintf(&b, "apply %s to %s to get %s\n",
			mn.Method.Name, strings.Join(inputNames, ", "), strings.Join(outputNames, ", "))
	}

	return b.String()
}

func paramsSummary(tn *procedure.TypeNode) string {
	parts := make([]string, 0, len(tn.Instance.Params))
	for k, v := range tn.Instance.Params {
		parts = append(parts, k+"="+v.Render())
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}
