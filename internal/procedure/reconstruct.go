// Package procedure implements the solution reconstructor of spec.md §4.6:
// it walks a successful search's predecessor chain and replays it to emit
// a bipartite procedure graph of type nodes and method nodes.
package procedure

import (
	"fmt"

	"github.com/ackbas/methodnet/internal/apply"
	"github.com/ackbas/methodnet/internal/model"
	"github.com/ackbas/methodnet/internal/plan"
)

// TypeNode is a SolutionProcedureTypeNode (spec.md §3): the absence of a
// Producer marks a start node.
type TypeNode struct {
	Producer    *MethodNode
	Instance    model.TypeInstance
	DisplayName string
	IsTerminal  bool
}

// MethodNode is a SolutionProcedureMethodNode (spec.md §3).
type MethodNode struct {
	Method  *model.Method
	Inputs  map[string]*TypeNode
	Outputs map[string]*TypeNode
}

// Procedure is the reconstructed solution: the bipartite DAG's type and
// method nodes, in construction order, which is a topological order of
// the solution (spec.md §4.6).
type Procedure struct {
	TypeNodes   []*TypeNode
	MethodNodes []*MethodNode
}

// StartObject names one of the caller's start TypeInstances, preserving
// the external request's objectName -> instance mapping (spec.md §6).
type StartObject struct {
	Name     string
	Instance model.TypeInstance
}

// Reconstruct walks the predecessor chain from result.Goal back to
// result.Start, collecting MethodApplications in reverse, then replays
// them in forward order to build the procedure graph (spec.md §4.6).
func Reconstruct(result *plan.Result, start []StartObject, target model.TargetDescription) (*Procedure, error) {
	var applications []plan.MethodApplication
	for edge := result.Goal.Pred; edge != nil; edge = edge.From.Pred {
		applications = append(applications, edge.Application)
	}
	// reverse into forward order
	for i, j := 0, len(applications)-1; i < j; i, j = i+1, j-1 {
		applications[i], applications[j] = applications[j], applications[i]
	}

	proc := &Procedure{}
	byInstance := map[string]*TypeNode{}

	for _, so := range start {
		n := &TypeNode{
			Instance:    so.Instance,
			DisplayName: so.Name,
			IsTerminal:  so.Instance.FitsInputDescription(target.AsInput()),
		}
		proc.TypeNodes = append(proc.TypeNodes, n)
		byInstance[so.Instance.Key()] = n
	}

	label := 0
	for _, app := range applications {
		inputs := make(map[string]*TypeNode, len(app.Binding))
		for portName, inst := range app.Binding {
			node, ok := byInstance[inst.Key()]
			if !ok {
				model.InternalInvariant("reconstruct: input %s of %s not registered: %s", portName, app.Method.Name, inst.Key())
			}
			inputs[portName] = node
		}

		mn := &MethodNode{Method: app.Method, Inputs: inputs, Outputs: map[string]*TypeNode{}}
		proc.MethodNodes = append(proc.MethodNodes, mn)

		outputs, err := apply.Apply(app.Method, app.Binding)
		if err != nil {
			return nil, fmt.Errorf("procedure: replay method %s: %w", app.Method.Name, err)
		}

		for _, namedOut := range app.Method.Outputs {
			inst := outputs[namedOut.Name]
			label++
			tn := &TypeNode{
				Producer:    mn,
				Instance:    inst,
				DisplayName: fmt.Sprintf("O%d", label),
				IsTerminal:  inst.FitsInputDescription(target.AsInput()),
			}
			mn.Outputs[namedOut.Name] = tn
			proc.TypeNodes = append(proc.TypeNodes, tn)
			byInstance[inst.Key()] = tn // later producers shadow earlier ones
		}
	}

	return proc, nil
}
