// Package plan implements the candidate-graph search of spec.md §4.5: a
// Dijkstra traversal over candidate nodes (each identified by its set of
// available type instances), where edges are method applications.
package plan

import (
	"sort"
	"strings"

	"github.com/ackbas/methodnet/internal/apply"
	"github.com/ackbas/methodnet/internal/model"
)

// MethodApplication is (method, inputBinding) — a method paired with a
// specific binding of each non-tuning input port to a specific
// TypeInstance (spec.md §3). Value-typed: structural equality via Key.
type MethodApplication struct {
	Method  *model.Method
	Binding apply.Binding
}

// Key returns a canonical string identifying this application: the
// method name plus the sorted port=instance-key bindings.
func (a MethodApplication) Key() string {
	var b strings.Builder
	b.WriteString(a.Method.Name)
	ports := make([]string, 0, len(a.Binding))
	for p := range a.Binding {
		ports = append(ports, p)
	}
	sort.Strings(ports)
	for _, p := range ports {
		b.WriteByte('|')
		b.WriteString(p)
		b.WriteByte('=')
		b.WriteString(a.Binding[p].Key())
	}
	return b.String()
}

// CandidateEdge is (fromNode, methodApplication), the predecessor edge
// recorded on a CandidateNode for path reconstruction (spec.md §3).
type CandidateEdge struct {
	From        *CandidateNode
	Application MethodApplication
}

// CandidateNode is a node in the search space, identified purely by its
// set of available TypeInstances (spec.md §3). AvailableTypes is kept
// duplicate-free under the subsumes relation: no instance in the set is
// subsumed by another in the same set.
type CandidateNode struct {
	AvailableTypes []model.TypeInstance
	CumDist        int
	Pred           *CandidateEdge // nil for the start node

	key string // cached set-identity key
}

// newCandidateNode builds a node and computes its set-identity key.
func newCandidateNode(types []model.TypeInstance, cumDist int, pred *CandidateEdge) *CandidateNode {
	n := &CandidateNode{AvailableTypes: types, CumDist: cumDist, Pred: pred}
	n.key = setKey(types)
	return n
}

// Key returns the canonical set-identity key used for node equality and
// the Dijkstra visited/frontier maps. Two CandidateNodes are equal iff
// their AvailableTypes are equal as sets (spec.md §4.5 "Node equality").
func (n *CandidateNode) Key() string { return n.key }

// setKey hashes a slice of TypeInstances as an unordered multiset: sort
// each instance's own structural key and join (spec.md §9 "Implementations
// should hash CandidateNodes by the unordered multiset of their instance
// hashes").
func setKey(types []model.TypeInstance) string {
	keys := make([]string, len(types))
	for i, t := range types {
		keys[i] = t.Key()
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}

// satisfiesGoal reports whether any instance in the node's available set
// fits the target description (spec.md §4.5 goal predicate).
func (n *CandidateNode) satisfiesGoal(target model.TargetDescription) bool {
	input := target.AsInput()
	for _, t := range n.AvailableTypes {
		if t.FitsInputDescription(input) {
			return true
		}
	}
	return false
}

// goalInstance returns the first available instance that fits the target
// description, alongside satisfiesGoal's boolean.
func (n *CandidateNode) goalInstance(target model.TargetDescription) (model.TypeInstance, bool) {
	input := target.AsInput()
	for _, t := range n.AvailableTypes {
		if t.FitsInputDescription(input) {
			return t, true
		}
	}
	return model.TypeInstance{}, false
}

// mergeProduced integrates a method's produced outputs into a parent
// node's available-types set (spec.md §4.5 Relaxation step 2):
//
//   - if any existing instance subsumes the produced one, discard it
//     (not new);
//   - else if the produced instance subsumes existing ones, replace the
//     first of them and drop the others (progress);
//   - else append it (progress).
//
// Subsumption is checked in both directions before declaring progress, per
// spec.md §9 "Subsumption must precede deduplication". Returns the new
// set and whether any progress was made.
func mergeProduced(parent []model.TypeInstance, produced []model.TypeInstance) ([]model.TypeInstance, bool) {
	result := make([]model.TypeInstance, len(parent))
	copy(result, parent)
	progress := false

	for _, t := range produced {
		discarded := false
		replacedIdx := -1
		for i, existing := range result {
			if existing.Subsumes(t) {
				discarded = true
				break
			}
			if t.Subsumes(existing) && replacedIdx == -1 {
				replacedIdx = i
			}
		}
		if discarded {
			continue
		}
		if replacedIdx >= 0 {
			result[replacedIdx] = t
			// drop any later instances the produced one also subsumes
			kept := result[:replacedIdx+1]
			for _, existing := range result[replacedIdx+1:] {
				if !t.Subsumes(existing) {
					kept = append(kept, existing)
				}
			}
			result = kept
			progress = true
			continue
		}
		result = append(result, t)
		progress = true
	}
	return result, progress
}
