package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ackbas/methodnet/internal/model"
)

// Legacy catalogue format, ported from
// original_source/ackbas_core/fancy_format.py: a human-writable
// alternative to raw YAML, predating the parametric type/value model.
//
//	type Foo: Bar, Baz "a description"
//	method Convert: Foo -> Bar "a description"
//
// Types may list supertypes after a colon; methods list comma-separated
// input type names, an arrow, then comma-separated output type names.
// Quoted descriptions are optional on both. The legacy format has no
// parameters, so every port it declares is param-less; supertypes widen a
// type's declared parameter set (union of supertypes' params) rather than
// driving isa-based matching, since the canonical model's one subtyping-
// like relation is TypeInstance subsumption (spec.md §4.3), not nominal
// supertyping.

type legacyTokenKind int

const (
	tokType legacyTokenKind = iota
	tokMethod
	tokColon
	tokComma
	tokArrow
	tokIdentifier
	tokQuoted
	tokComment
)

type legacyToken struct {
	kind legacyTokenKind
	text string
}

var legacyTokenPatterns = []struct {
	kind legacyTokenKind
	re   *regexp.Regexp
}{
	{tokType, regexp.MustCompile(`^type\b`)},
	{tokMethod, regexp.MustCompile(`^method\b`)},
	{tokColon, regexp.MustCompile(`^:`)},
	{tokComma, regexp.MustCompile(`^,`)},
	{tokArrow, regexp.MustCompile(`^->`)},
	{tokComment, regexp.MustCompile(`^#[^\n]*\n?`)},
	{tokIdentifier, regexp.MustCompile(`^[\wÄÖÜäöü](?:[\wÄÖÜäöü\- ]*[\wÄÖÜäöü])?`)},
	{tokQuoted, regexp.MustCompile(`^"[^"]*"`)},
}

var legacyWhitespace = regexp.MustCompile(`^\s*`)

// legacyLex tokenizes legacy catalogue source text.
func legacyLex(src string) ([]legacyToken, error) {
	var toks []legacyToken
	for len(src) > 0 {
		if m := legacyWhitespace.FindString(src); m != "" {
			src = src[len(m):]
		}
		if len(src) == 0 {
			break
		}
		matched := false
		for _, p := range legacyTokenPatterns {
			if m := p.re.FindString(src); m != "" {
				toks = append(toks, legacyToken{kind: p.kind, text: m})
				src = src[len(m):]
				matched = true
				break
			}
		}
		if !matched {
			return nil, fmt.Errorf("catalog: legacy lexer: no token match at %q", firstN(src, 20))
		}
	}
	return toks, nil
}

func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// legacyType is one parsed `type` declaration.
type legacyType struct {
	Name        string
	Super       []string
	Description string
}

// legacyMethod is one parsed `method` declaration.
type legacyMethod struct {
	Name        string
	Inputs      []string
	Outputs     []string
	Description string
}

type legacyParser struct {
	toks []legacyToken
	pos  int
}

func (p *legacyParser) hasNext() bool { return p.pos < len(p.toks) }
func (p *legacyParser) peek() (legacyToken, bool) {
	if !p.hasNext() {
		return legacyToken{}, false
	}
	return p.toks[p.pos], true
}
func (p *legacyParser) next() (legacyToken, bool) {
	t, ok := p.peek()
	if ok {
		p.pos++
	}
	return t, ok
}
func (p *legacyParser) match(kind legacyTokenKind) (legacyToken, bool) {
	if t, ok := p.peek(); ok && t.kind == kind {
		return p.next()
	}
	return legacyToken{}, false
}
func (p *legacyParser) expect(kind legacyTokenKind) (legacyToken, error) {
	if t, ok := p.match(kind); ok {
		return t, nil
	}
	return legacyToken{}, fmt.Errorf("catalog: legacy parser: unexpected token at position %d", p.pos)
}
func (p *legacyParser) parseCommaList() ([]string, error) {
	first, err := p.expect(tokIdentifier)
	if err != nil {
		return nil, err
	}
	result := []string{first.text}
	for {
		if _, ok := p.match(tokComma); !ok {
			break
		}
		next, err := p.expect(tokIdentifier)
		if err != nil {
			return nil, err
		}
		result = append(result, next.text)
	}
	return result, nil
}

// parseLegacy parses legacy catalogue source text into ordered type and
// method declarations (order preserved for a deterministic resulting
// KnowledgeGraph).
func parseLegacy(src string) ([]legacyType, []legacyMethod, error) {
	toks, err := legacyLex(src)
	if err != nil {
		return nil, nil, err
	}
	p := &legacyParser{toks: toks}

	var types []legacyType
	var methods []legacyMethod

	for p.hasNext() {
		switch {
		case p.matchKind(tokComment):
			continue
		case p.matchKind(tokType):
			name, err := p.expect(tokIdentifier)
			if err != nil {
				return nil, nil, err
			}
			var super []string
			if _, ok := p.match(tokColon); ok {
				super, err = p.parseCommaList()
				if err != nil {
					return nil, nil, err
				}
			}
			desc := p.matchDescription()
			types = append(types, legacyType{Name: name.text, Super: super, Description: desc})
		case p.matchKind(tokMethod):
			name, err := p.expect(tokIdentifier)
			if err != nil {
				return nil, nil, err
			}
			if _, err := p.expect(tokColon); err != nil {
				return nil, nil, err
			}
			inputs, err := p.parseCommaList()
			if err != nil {
				return nil, nil, err
			}
			if _, err := p.expect(tokArrow); err != nil {
				return nil, nil, err
			}
			outputs, err := p.parseCommaList()
			if err != nil {
				return nil, nil, err
			}
			desc := p.matchDescription()
			methods = append(methods, legacyMethod{Name: name.text, Inputs: inputs, Outputs: outputs, Description: desc})
		default:
			return nil, nil, fmt.Errorf("catalog: legacy parser: unexpected token at position %d", p.pos)
		}
	}
	return types, methods, nil
}

func (p *legacyParser) matchKind(kind legacyTokenKind) bool {
	_, ok := p.match(kind)
	return ok
}

func (p *legacyParser) matchDescription() string {
	if t, ok := p.match(tokQuoted); ok {
		return strings.Trim(t.text, `"`)
	}
	return ""
}

// LoadLegacy parses legacy-format catalogue source and builds a param-less
// model.KnowledgeGraph from it: every port is named after its type
// (lower-cased) plus "_" and its position among the method's inputs or
// outputs (e.g. "dog_0"), and carries no parameter constraints or
// statements. A
// type's declared parameter set widens to the union of its listed
// supertypes' parameter sets (always empty here, since the legacy format
// never declares parameters) rather than driving isa-based matching.
func LoadLegacy(src string) (*model.KnowledgeGraph, error) {
	types, methods, err := parseLegacy(src)
	if err != nil {
		return nil, err
	}

	g := model.NewKnowledgeGraph()
	for _, t := range types {
		g.Types[t.Name] = &model.TypeDefinition{Name: t.Name, Params: map[string]model.ParameterDefinition{}}
	}
	for _, t := range types {
		td := g.Types[t.Name]
		for _, superName := range t.Super {
			superDef, ok := g.Types[superName]
			if !ok {
				return nil, &model.LoadError{Kind: model.UnknownType, Subject: superName, Detail: "supertype of " + t.Name}
			}
			for pname, pdef := range superDef.Params {
				if _, exists := td.Params[pname]; !exists {
					td.Params[pname] = pdef
				}
			}
		}
	}

	for _, m := range methods {
		method := &model.Method{Name: m.Name, Description: m.Description}
		for _, inName := range m.Inputs {
			td, ok := g.Types[inName]
			if !ok {
				return nil, &model.LoadError{Kind: model.UnknownType, Subject: inName, Detail: "input of " + m.Name}
			}
			method.Inputs = append(method.Inputs, model.NamedInput{
				Name:  portName(inName, len(method.Inputs)),
				Input: model.MethodInput{Type: td},
			})
		}
		for _, outName := range m.Outputs {
			td, ok := g.Types[outName]
			if !ok {
				return nil, &model.LoadError{Kind: model.UnknownType, Subject: outName, Detail: "output of " + m.Name}
			}
			method.Outputs = append(method.Outputs, model.NamedOutput{
				Name:   portName(outName, len(method.Outputs)),
				Output: model.MethodOutputPort{Type: td},
			})
		}
		g.Methods[method.Name] = method
		g.MethodOrder = append(g.MethodOrder, method.Name)
	}
	return g, nil
}

func portName(typeName string, ordinal int) string {
	return fmt.Sprintf("%s_%d", strings.ToLower(typeName), ordinal)
}
