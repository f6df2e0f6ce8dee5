package plan

import (
	"container/heap"
	"context"
	"errors"

	"github.com/ackbas/methodnet/internal/apply"
	"github.com/ackbas/methodnet/internal/model"
)

// Sentinel errors for the normal negative results of spec.md §7:
// NoSolution, Cancelled, and ResourceExhausted are not catalogue or
// request errors — they are ordinary outcomes of a search.
var (
	ErrNoSolution      = errors.New("plan: no solution")
	ErrCancelled       = errors.New("plan: cancelled")
	ErrResourceExhausted = errors.New("plan: resource exhausted")
)

// Options configures a single search (spec.md §5). The cooperative
// cancellation primitive is the ctx passed to Search: its deadline is
// checked at the top of each outer-loop iteration and before enumerating
// each method's edge set. MaxVisited optionally bounds the visited set (0
// means unbounded), yielding ErrResourceExhausted when exceeded.
type Options struct {
	MaxVisited int
}

// Result is the outcome of a successful search: the goal-satisfying
// CandidateNode and the start node, which the reconstructor (package
// procedure) walks to rebuild the solution procedure.
type Result struct {
	Start *CandidateNode
	Goal  *CandidateNode
}

// pqItem is one entry in the Dijkstra frontier heap. Entries are stale
// once a cheaper relaxation of the same node has been enqueued; staleness
// is detected by comparing dist against the node's current CumDist at pop
// time (lazy deletion), avoiding a decrease-key implementation.
type pqItem struct {
	node *CandidateNode
	dist int
	seq  int // insertion order, used for deterministic tie-breaking
}

type pq []*pqItem

func (q pq) Len() int { return len(q) }
func (q pq) Less(i, j int) bool {
	if q[i].dist != q[j].dist {
		return q[i].dist < q[j].dist
	}
	return q[i].seq < q[j].seq
}
func (q pq) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pq) Push(x any)        { *q = append(*q, x.(*pqItem)) }
func (q *pq) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Search runs the classical best-first shortest-path traversal of
// spec.md §4.5. The start CandidateNode's available types are exactly the
// start TypeInstances provided by the caller. It returns ErrNoSolution,
// ErrCancelled, or ErrResourceExhausted as normal negative results
// (spec.md §7); any other error is a genuine failure.
func Search(ctx context.Context, g *model.KnowledgeGraph, start []model.TypeInstance, target model.TargetDescription, opts Options) (*Result, error) {
	startNode := newCandidateNode(append([]model.TypeInstance(nil), start...), 0, nil)

	best := map[string]*CandidateNode{startNode.Key(): startNode}
	visited := map[string]bool{}

	queue := &pq{}
	heap.Init(queue)
	seq := 0
	heap.Push(queue, &pqItem{node: startNode, dist: 0, seq: seq})
	seq++

	for queue.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return nil, ErrCancelled
		}

		item := heap.Pop(queue).(*pqItem)
		cur := item.node
		if visited[cur.Key()] {
			continue
		}
		if item.dist != cur.CumDist {
			continue // stale entry superseded by a cheaper relaxation
		}
		visited[cur.Key()] = true

		if opts.MaxVisited > 0 && len(visited) > opts.MaxVisited {
			return nil, ErrResourceExhausted
		}

		for _, m := range g.OrderedMethods() {
			if err := ctx.Err(); err != nil {
				return nil, ErrCancelled
			}
			enumerateEdges(cur, m, func(binding apply.Binding) {
				relax(best, visited, queue, &seq, cur, m, binding)
			})
		}

		if cur.satisfiesGoal(target) {
			return &Result{Start: startNode, Goal: cur}, nil
		}
	}

	return nil, ErrNoSolution
}

// enumerateEdges computes, for the current node, the Cartesian product of
// fitting instances over method m's non-tuning input ports (in
// declaration order), and invokes yield once per resulting binding
// (spec.md §4.5 "Edge enumeration").
func enumerateEdges(cur *CandidateNode, m *model.Method, yield func(apply.Binding)) {
	ports := m.NonTuningInputs()
	combos := []apply.Binding{{}}
	for _, port := range ports {
		var fits []model.TypeInstance
		for _, t := range cur.AvailableTypes {
			if t.FitsInputDescription(port.Input) {
				fits = append(fits, t)
			}
		}
		if len(fits) == 0 {
			return // this method has no edges from cur
		}
		var next []apply.Binding
		for _, combo := range combos {
			for _, t := range fits {
				b := make(apply.Binding, len(combo)+1)
				for k, v := range combo {
					b[k] = v
				}
				b[port.Name] = t
				next = append(next, b)
			}
		}
		combos = next
	}
	for _, b := range combos {
		yield(b)
	}
}

// relax computes a method application's outputs and, if they make
// progress against the parent's available set, performs the standard
// Dijkstra relaxation: if the resulting node is new or strictly cheaper
// than a previously recorded one, record it and push it onto the
// frontier (spec.md §4.5 "Relaxation policy").
func relax(best map[string]*CandidateNode, visited map[string]bool, queue *pq, seq *int, cur *CandidateNode, m *model.Method, binding apply.Binding) {
	outputs, err := apply.Apply(m, binding)
	if err != nil {
		model.InternalInvariant("method apply failed for %s: %v", m.Name, err)
	}

	produced := make([]model.TypeInstance, 0, len(outputs))
	for _, name := range outputNames(m) {
		produced = append(produced, outputs[name])
	}

	newTypes, progress := mergeProduced(cur.AvailableTypes, produced)
	if !progress {
		return // edge would produce a node structurally equal to its parent
	}

	weight := 1 + m.OutputCount()
	cumDist := cur.CumDist + weight

	candidate := newCandidateNode(newTypes, cumDist, &CandidateEdge{
		From:        cur,
		Application: MethodApplication{Method: m, Binding: binding},
	})

	if visited[candidate.Key()] {
		return // settled nodes are never reopened
	}

	existing, ok := best[candidate.Key()]
	if ok && existing.CumDist <= candidate.CumDist {
		return
	}

	best[candidate.Key()] = candidate
	heap.Push(queue, &pqItem{node: candidate, dist: candidate.CumDist, seq: *seq})
	*seq++
}

// outputNames returns a method's output port names in declaration order,
// used to build the produced-instances list deterministically.
func outputNames(m *model.Method) []string {
	names := make([]string, len(m.Outputs))
	for i, o := range m.Outputs {
		names[i] = o.Name
	}
	return names
}
