package catalog

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/ackbas/methodnet/internal/model"
	"gopkg.in/yaml.v3"
)

// instantiateLiteral resolves a raw parameter literal node into a tagged
// ParameterValue (spec.md §4.2). It converts the scalar node to a plain Go
// int or string and defers to InstantiateRawLiteral, so catalogue loading
// and planning-request parsing (package planner, which has no YAML nodes
// of its own) share one rule set.
func instantiateLiteral(n *yaml.Node, paramType *model.ParameterType) (model.ParameterValue, error) {
	if n == nil || n.Kind != yaml.ScalarNode {
		return model.ParameterValue{}, &model.LoadError{
			Kind:   model.UnknownParamType,
			Detail: "literal is not a scalar",
		}
	}
	if isIntScalar(n) {
		if iv, err := strconv.Atoi(n.Value); err == nil {
			return InstantiateRawLiteral(iv, paramType)
		}
		// Tag said int but value didn't parse as one; fall through to
		// string handling so "unset"/enum/placeholder rules still apply
		// to catalogues that didn't tag the node explicitly.
	}
	return InstantiateRawLiteral(n.Value, paramType)
}

// InstantiateRawLiteral resolves a raw literal (an int, or a string) into
// a tagged ParameterValue (spec.md §4.2):
//
//   - an integer becomes an IntLiteral;
//   - the string "unset" becomes the Unset sentinel;
//   - a string starting with an uppercase letter is an enum-literal name,
//     resolved by a linear scan of paramType's value list;
//   - any other string is a Placeholder carrying that name.
//
// The uppercase/lowercase distinction is the single disambiguation rule
// between enum literals and placeholders.
func InstantiateRawLiteral(raw any, paramType *model.ParameterType) (model.ParameterValue, error) {
	switch v := raw.(type) {
	case int:
		return model.NewIntLiteral(v), nil
	case int64:
		return model.NewIntLiteral(int(v)), nil
	case string:
		if v == "unset" {
			return model.Unset, nil
		}
		runes := []rune(v)
		if len(runes) > 0 && unicode.IsUpper(runes[0]) {
			if paramType == nil || !paramType.IsEnum() {
				return model.ParameterValue{}, &model.LoadError{
					Kind:    model.BadEnumValue,
					Subject: v,
					Detail:  "parameter type is not an enum",
				}
			}
			idx := paramType.IndexOf(v)
			if idx < 0 {
				return model.ParameterValue{}, &model.LoadError{
					Kind:    model.BadEnumValue,
					Subject: v,
					Detail:  "not a member of enum " + paramType.Name,
				}
			}
			return model.NewEnumLiteral(paramType, idx), nil
		}
		return model.NewPlaceholder(v), nil
	default:
		return model.ParameterValue{}, fmt.Errorf("catalog: literal of unsupported type %T", raw)
	}
}
