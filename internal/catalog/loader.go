package catalog

import (
	"fmt"
	"strings"

	"github.com/ackbas/methodnet/internal/model"
	"gopkg.in/yaml.v3"
)

// Load parses a validated catalogue document (spec.md §6) into an
// in-memory model.KnowledgeGraph (spec.md §4.1). It builds the parameter-
// type registry seeded with Int, then enumerations, then type
// definitions, then methods; each input/output is resolved to its
// TypeDefinition and each parameter literal is run through the literal
// instantiator (§4.2). All failures are fatal for the load and returned
// as a single error: unresolved names, bad enum literals and malformed
// placeholders are (or wrap) a *model.LoadError; YAML syntax and
// document-shape problems are plain errors.
func Load(data []byte) (*model.KnowledgeGraph, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}

	g := model.NewKnowledgeGraph()

	if err := loadEnums(g, doc.Enums); err != nil {
		return nil, err
	}
	if err := loadTypes(g, doc.Types); err != nil {
		return nil, err
	}
	if err := loadMethods(g, doc.Methods); err != nil {
		return nil, err
	}
	return g, nil
}

func loadEnums(g *model.KnowledgeGraph, enumsNode *yaml.Node) error {
	names, vals, err := mappingPairs(enumsNode)
	if err != nil {
		return fmt.Errorf("catalog: enums: %w", err)
	}
	for i, enumName := range names {
		items, err := sequenceItems(vals[i])
		if err != nil {
			return fmt.Errorf("catalog: enum %q: %w", enumName, err)
		}
		values := make([]string, 0, len(items))
		for _, it := range items {
			values = append(values, it.Value)
		}
		g.ParamTypes[enumName] = &model.ParameterType{Name: enumName, Values: values}
	}
	return nil
}

func loadTypes(g *model.KnowledgeGraph, typesNode *yaml.Node) error {
	names, vals, err := mappingPairs(typesNode)
	if err != nil {
		return fmt.Errorf("catalog: types: %w", err)
	}
	for i, typeName := range names {
		tKeys, tVals, err := mappingPairs(vals[i])
		if err != nil {
			return fmt.Errorf("catalog: type %q: %w", typeName, err)
		}
		paramsNode := field(tKeys, tVals, "params")
		params := map[string]model.ParameterDefinition{}

		pKeys, pVals, err := mappingPairs(paramsNode)
		if err != nil {
			return fmt.Errorf("catalog: type %q params: %w", typeName, err)
		}
		for j, paramName := range pKeys {
			pdKeys, pdVals, err := mappingPairs(pVals[j])
			if err != nil {
				return fmt.Errorf("catalog: type %q param %q: %w", typeName, paramName, err)
			}
			ptNode := field(pdKeys, pdVals, "type")
			if ptNode == nil {
				return &model.LoadError{Kind: model.UnknownParamType, Subject: paramName, Detail: "missing type"}
			}
			pt, ok := g.ParamTypes[ptNode.Value]
			if !ok {
				return &model.LoadError{Kind: model.UnknownParamType, Subject: ptNode.Value}
			}
			params[paramName] = model.ParameterDefinition{Name: paramName, Type: pt}
		}

		g.Types[typeName] = &model.TypeDefinition{Name: typeName, Params: params}
	}
	return nil
}

func loadMethods(g *model.KnowledgeGraph, methodsNode *yaml.Node) error {
	names, vals, err := mappingPairs(methodsNode)
	if err != nil {
		return fmt.Errorf("catalog: methods: %w", err)
	}
	for i, methodName := range names {
		mKeys, mVals, err := mappingPairs(vals[i])
		if err != nil {
			return fmt.Errorf("catalog: method %q: %w", methodName, err)
		}
		descNode := field(mKeys, mVals, "description")
		desc := ""
		if descNode != nil {
			desc = descNode.Value
		}

		inputs, err := loadInputs(g, methodName, field(mKeys, mVals, "inputs"))
		if err != nil {
			return err
		}

		branches, err := loadOutputBranches(g, methodName, field(mKeys, mVals, "outputs"))
		if err != nil {
			return err
		}

		for _, br := range branches {
			m := &model.Method{
				Name:        methodName,
				Description: desc,
				Inputs:      inputs,
				Outputs:     br.outputs,
			}
			key := methodName
			if br.option != "" {
				key = methodName + "#" + br.option
				m.Name = key
				m.Description = strings.TrimSpace(desc + " (branch " + br.option + ")")
			}
			if err := validatePlaceholders(m); err != nil {
				return err
			}
			g.Methods[key] = m
			g.MethodOrder = append(g.MethodOrder, key)
		}
	}
	return nil
}

func loadInputs(g *model.KnowledgeGraph, methodName string, inputsNode *yaml.Node) ([]model.NamedInput, error) {
	names, vals, err := mappingPairs(inputsNode)
	if err != nil {
		return nil, fmt.Errorf("catalog: method %q inputs: %w", methodName, err)
	}
	out := make([]model.NamedInput, 0, len(names))
	for i, portName := range names {
		typeDef, tune, params, err := loadPortSpec(g, vals[i], true)
		if err != nil {
			return nil, fmt.Errorf("catalog: method %q input %q: %w", methodName, portName, err)
		}
		out = append(out, model.NamedInput{
			Name:  portName,
			Input: model.MethodInput{Type: typeDef, ParamConstraints: params, Tune: tune},
		})
	}
	return out, nil
}

// outputBranch is one single-branch method's worth of outputs: option=""
// for the canonical single-branch form, or the option name for a branch
// split out of a legacy multi-branch declaration (spec.md §9).
type outputBranch struct {
	option  string
	outputs []model.NamedOutput
}

func loadOutputBranches(g *model.KnowledgeGraph, methodName string, outputsNode *yaml.Node) ([]outputBranch, error) {
	names, vals, err := mappingPairs(outputsNode)
	if err != nil {
		return nil, fmt.Errorf("catalog: method %q outputs: %w", methodName, err)
	}
	if len(names) == 0 {
		return []outputBranch{{outputs: nil}}, nil
	}

	if isFlatOutputForm(vals[0]) {
		ports, err := loadOutputPorts(g, methodName, names, vals)
		if err != nil {
			return nil, err
		}
		return []outputBranch{{outputs: ports}}, nil
	}

	// Legacy multi-branch form: each top-level entry is an option name
	// grouping its own portName -> portSpec mapping (spec.md §9).
	branches := make([]outputBranch, 0, len(names))
	for i, optionName := range names {
		oNames, oVals, err := mappingPairs(vals[i])
		if err != nil {
			return nil, fmt.Errorf("catalog: method %q option %q: %w", methodName, optionName, err)
		}
		ports, err := loadOutputPorts(g, methodName, oNames, oVals)
		if err != nil {
			return nil, err
		}
		branches = append(branches, outputBranch{option: optionName, outputs: ports})
	}
	return branches, nil
}

func loadOutputPorts(g *model.KnowledgeGraph, methodName string, names []string, vals []*yaml.Node) ([]model.NamedOutput, error) {
	out := make([]model.NamedOutput, 0, len(names))
	for i, portName := range names {
		typeDef, _, params, err := loadPortSpec(g, vals[i], false)
		if err != nil {
			return nil, fmt.Errorf("catalog: method %q output %q: %w", methodName, portName, err)
		}
		out = append(out, model.NamedOutput{
			Name:   portName,
			Output: model.MethodOutputPort{Type: typeDef, ParamStatements: params},
		})
	}
	return out, nil
}

// isFlatOutputForm reports whether an outputs entry is a port spec
// directly (carries a "type" key) rather than a nested option group.
func isFlatOutputForm(n *yaml.Node) bool {
	keys, vals, err := mappingPairs(n)
	if err != nil {
		return true
	}
	return field(keys, vals, "type") != nil && len(keys) == len(vals)
}

// loadPortSpec parses a single { type, params, tune? } port declaration.
// allowTune gates whether a "tune" key is permitted (inputs only, per
// spec.md §6).
func loadPortSpec(g *model.KnowledgeGraph, n *yaml.Node, allowTune bool) (*model.TypeDefinition, bool, model.ParamList, error) {
	keys, vals, err := mappingPairs(n)
	if err != nil {
		return nil, false, nil, err
	}
	typeNode := field(keys, vals, "type")
	if typeNode == nil {
		return nil, false, nil, fmt.Errorf("missing type")
	}
	typeDef, ok := g.Types[typeNode.Value]
	if !ok {
		return nil, false, nil, &model.LoadError{Kind: model.UnknownType, Subject: typeNode.Value}
	}

	tune := false
	if allowTune {
		if tn := field(keys, vals, "tune"); tn != nil {
			tune = tn.Value == "true"
		}
	}

	paramsNode := field(keys, vals, "params")
	pKeys, pVals, err := mappingPairs(paramsNode)
	if err != nil {
		return nil, false, nil, err
	}
	params := make(model.ParamList, 0, len(pKeys))
	for i, paramName := range pKeys {
		pd, ok := typeDef.Param(paramName)
		if !ok {
			return nil, false, nil, &model.LoadError{Kind: model.UnknownParam, Subject: paramName, Detail: "on type " + typeDef.Name}
		}
		val, err := instantiateLiteral(pVals[i], pd.Type)
		if err != nil {
			return nil, false, nil, err
		}
		params = append(params, model.ParamEntry{Name: paramName, Value: val})
	}
	return typeDef, tune, params, nil
}

// validatePlaceholders enforces spec.md §3's invariant: a Placeholder
// appearing in a method's output statements must appear (by name) at
// least once in that same method's input constraints.
func validatePlaceholders(m *model.Method) error {
	inputNames := map[string]bool{}
	for _, in := range m.Inputs {
		for _, c := range in.Input.ParamConstraints {
			if c.Value.Kind == model.KindPlaceholder {
				inputNames[c.Value.Placeholder] = true
			}
		}
	}
	for _, out := range m.Outputs {
		for _, s := range out.Output.ParamStatements {
			if s.Value.Kind == model.KindPlaceholder && !inputNames[s.Value.Placeholder] {
				return &model.LoadError{
					Kind:    model.MalformedPlaceholder,
					Subject: s.Value.Placeholder,
					Detail:  "method " + m.Name + " output " + out.Name,
				}
			}
		}
	}
	return nil
}
