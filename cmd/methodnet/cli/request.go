package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ackbas/methodnet/internal/planner"
)

// requestDoc is the on-disk shape of a planning request (spec.md §6,
// minus graph_name — the catalogue is given as a separate file instead of
// being looked up by name). Plain yaml.Unmarshal is enough here, unlike
// the catalogue loader: a request's object/param order has no bearing on
// search determinism.
type requestDoc struct {
	Start      map[string]objectDoc `yaml:"start"`
	Target     objectDoc            `yaml:"target"`
	MaxVisited int                  `yaml:"max_visited"`
}

type objectDoc struct {
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

func readRequest(path string) (planner.Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return planner.Request{}, fmt.Errorf("read request file: %w", err)
	}
	var doc requestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return planner.Request{}, fmt.Errorf("parse request file: %w", err)
	}

	start := make(map[string]planner.ObjectSpec, len(doc.Start))
	for name, o := range doc.Start {
		start[name] = planner.ObjectSpec{Type: o.Type, Params: normalizeParams(o.Params)}
	}
	return planner.Request{
		Start:      start,
		Target:     planner.ObjectSpec{Type: doc.Target.Type, Params: normalizeParams(doc.Target.Params)},
		MaxVisited: doc.MaxVisited,
	}, nil
}

// normalizeParams coerces yaml.v3's int-valued scalars (decoded as int)
// through unchanged and leaves strings alone; yaml.v3 already decodes
// YAML integers as Go int when the target is `any`, matching the literal
// instantiator's int/string split (spec.md §4.2).
func normalizeParams(raw map[string]any) map[string]any {
	if raw == nil {
		return map[string]any{}
	}
	return raw
}
