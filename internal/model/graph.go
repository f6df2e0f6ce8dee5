package model

// KnowledgeGraph holds the registries of parameter types, type
// definitions, and methods, keyed by name. Its lifetime is one planning
// request: built once by the catalogue loader, immutable thereafter
// (spec.md §3, §5).
//
// Iteration order matters to the search (spec.md §5 "Ordering"): methods,
// input ports, output ports, and parameter declarations are walked in the
// order the catalogue declared them. ParamTypes and Types are registries
// consulted by name only, so their declaration order is not observable;
// Methods additionally carries MethodOrder so the search enumerates
// methods in declaration order and therefore ties break deterministically.
type KnowledgeGraph struct {
	ParamTypes map[string]*ParameterType
	Types      map[string]*TypeDefinition
	Methods    map[string]*Method

	// MethodOrder is the catalogue's declared method order.
	MethodOrder []string
}

// NewKnowledgeGraph returns an empty graph seeded with the built-in Int
// parameter type.
func NewKnowledgeGraph() *KnowledgeGraph {
	return &KnowledgeGraph{
		ParamTypes: map[string]*ParameterType{
			IntTypeName: {Name: IntTypeName},
		},
		Types:   map[string]*TypeDefinition{},
		Methods: map[string]*Method{},
	}
}

// OrderedMethods returns the graph's methods in declaration order.
func (g *KnowledgeGraph) OrderedMethods() []*Method {
	out := make([]*Method, 0, len(g.MethodOrder))
	for _, name := range g.MethodOrder {
		if m, ok := g.Methods[name]; ok {
			out = append(out, m)
		}
	}
	return out
}
