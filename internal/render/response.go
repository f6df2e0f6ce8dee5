// Package render implements spec.md §6's external JSON response shape and
// the parameter-value-to-string rendering rule, plus a plain-text
// transcript renderer grounded on original_source/ackbas_core/fancy_format.py.
package render

import (
	"strings"

	"github.com/ackbas/methodnet/internal/model"
	"github.com/ackbas/methodnet/internal/procedure"
)

// ObjectRecord is one entry of the response's "objects" list (spec.md §6).
type ObjectRecord struct {
	ID              int               `json:"id"`
	Type            string            `json:"type"`
	Name            string            `json:"name"`
	IsStart         bool              `json:"is_start"`
	IsEnd           bool              `json:"is_end"`
	DistanceToStart int               `json:"distance_to_start"`
	Params          map[string]string `json:"params"`
}

// PortRecord is one input or output port entry within a MethodRecord.
type PortRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Constraints string `json:"constraints"`
}

// MethodRecord is one entry of the response's "methods" list. Outputs is a
// list of one list of port records — the canonical single-branch form
// (spec.md §6, §9).
type MethodRecord struct {
	ID          int            `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Inputs      []PortRecord   `json:"inputs"`
	Outputs     [][]PortRecord `json:"outputs"`
}

// Connection is a directed edge: object->input-port or output-port->object
// (spec.md §6).
type Connection struct {
	FromID int `json:"fromId"`
	ToID   int `json:"toId"`
}

// Response is the full planning response shape of spec.md §6.
type Response struct {
	Objects     []ObjectRecord `json:"objects"`
	Methods     []MethodRecord `json:"methods"`
	Connections []Connection   `json:"connections"`
	NextID      int            `json:"nextId"`
}

// EmptyResponse is the NoSolution response shape (spec.md §6): 200 with
// empty objects/methods/connections.
func EmptyResponse() *Response {
	return &Response{
		Objects:     []ObjectRecord{},
		Methods:     []MethodRecord{},
		Connections: []Connection{},
		NextID:      0,
	}
}

// idAllocator hands out sequential ids across objects, methods, and ports,
// all sharing one numbering space so "nextId" is unambiguous.
type idAllocator struct{ next int }

func (a *idAllocator) take() int {
	id := a.next
	a.next++
	return id
}

// formatConstraints renders an ordered parameter list as
// "name=value, name=value" using each value's §6 string rendering.
func formatConstraints(params model.ParamList) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		parts = append(parts, p.Name+"="+p.Value.Render())
	}
	return strings.Join(parts, ", ")
}

// formatParams renders a TypeInstance's parameter map into the response's
// per-object params mapping (paramName -> string-rendered value).
func formatParams(ti model.TypeInstance) map[string]string {
	out := make(map[string]string, len(ti.Params))
	for k, v := range ti.Params {
		out[k] = v.Render()
	}
	return out
}

// Render builds the §6 response shape from a reconstructed procedure.
// distanceToStart is the number of method applications between the start
// of the procedure and the node (computed via depthOf), matching the
// "distance_to_start" field named in spec.md §6.
func Render(proc *procedure.Procedure, target model.TargetDescription) *Response {
	alloc := &idAllocator{}
	objectID := map[*procedure.TypeNode]int{}
	depth := map[*procedure.TypeNode]int{}

	resp := &Response{}

	for _, tn := range proc.TypeNodes {
		objectID[tn] = alloc.take()
		depth[tn] = depthOf(tn, depth)
	}
	for _, tn := range proc.TypeNodes {
		resp.Objects = append(resp.Objects, ObjectRecord{
			ID:              objectID[tn],
			Type:            tn.Instance.Type.Name,
			Name:            tn.DisplayName,
			IsStart:         tn.Producer == nil,
			IsEnd:           tn.IsTerminal,
			DistanceToStart: depth[tn],
			Params:          formatParams(tn.Instance),
		})
	}

	for _, mn := range proc.MethodNodes {
		methodID := alloc.take()
		mr := MethodRecord{ID: methodID, Name: mn.Method.Name, Description: mn.Method.Description}

		for _, in := range mn.Method.Inputs {
			portID := alloc.take()
			mr.Inputs = append(mr.Inputs, PortRecord{
				ID:          portID,
				Name:        in.Name,
				Constraints: formatConstraints(in.Input.ParamConstraints),
			})
			if tn, ok := mn.Inputs[in.Name]; ok {
				resp.Connections = append(resp.Connections, Connection{FromID: objectID[tn], ToID: portID})
			}
		}

		var outPorts []PortRecord
		for _, out := range mn.Method.Outputs {
			portID := alloc.take()
			outPorts = append(outPorts, PortRecord{
				ID:          portID,
				Name:        out.Name,
				Constraints: formatConstraints(out.Output.ParamStatements),
			})
			if tn, ok := mn.Outputs[out.Name]; ok {
				resp.Connections = append(resp.Connections, Connection{FromID: portID, ToID: objectID[tn]})
			}
		}
		mr.Outputs = [][]PortRecord{outPorts}

		resp.Methods = append(resp.Methods, mr)
	}

	if resp.Objects == nil {
		resp.Objects = []ObjectRecord{}
	}
	if resp.Methods == nil {
		resp.Methods = []MethodRecord{}
	}
	if resp.Connections == nil {
		resp.Connections = []Connection{}
	}
	resp.NextID = alloc.next
	return resp
}

// depthOf computes a type node's distance from the start of the
// procedure: 0 for a start node, else 1 + the maximum depth among the
// producing method's input nodes.
func depthOf(tn *procedure.TypeNode, memo map[*procedure.TypeNode]int) int {
	if tn.Producer == nil {
		return 0
	}
	max := 0
	for _, in := range tn.Producer.Inputs {
		if d, ok := memo[in]; ok && d > max {
			max = d
		}
	}
	return max + 1
}
