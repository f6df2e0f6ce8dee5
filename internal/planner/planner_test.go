package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ackbas/methodnet/internal/model"
)

const minimalCatalogue = `
enums:
  MyEnum: [One, Two]
types:
  TypeOne:
    params:
      ValueOne: {type: Int}
  TypeTwo:
    params:
      ValueOne: {type: Int}
      ValueEnum: {type: MyEnum}
  TypeThree:
    params:
      ValueThree: {type: Int}
methods:
  Convert:
    inputs:
      in: {type: TypeOne, params: {ValueOne: n}}
    outputs:
      out: {type: TypeTwo, params: {ValueOne: n, ValueEnum: One}}
  Combine:
    inputs:
      objectOne: {type: TypeOne, params: {ValueOne: n}}
      objectTwo: {type: TypeTwo, params: {ValueEnum: One}}
    outputs:
      objectThree: {type: TypeThree, params: {ValueThree: n}}
`

func TestPlanSucceeds(t *testing.T) {
	req := Request{
		Start:  map[string]ObjectSpec{"start": {Type: "TypeOne", Params: map[string]any{"ValueOne": 42}}},
		Target: ObjectSpec{Type: "TypeThree"},
	}
	resp, err := Plan(context.Background(), []byte(minimalCatalogue), req, nil)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Objects)
	require.NotEmpty(t, resp.Methods)
}

func TestPlanReportsLoadErrorAsFatal(t *testing.T) {
	req := Request{
		Start:  map[string]ObjectSpec{"start": {Type: "TypeOne", Params: map[string]any{"ValueOne": 1}}},
		Target: ObjectSpec{Type: "TypeThree"},
	}
	_, err := Plan(context.Background(), []byte("not: [valid"), req, nil)
	require.Error(t, err)
}

func TestPlanReportsBadRequestForUndefinedStartType(t *testing.T) {
	req := Request{
		Start:  map[string]ObjectSpec{"start": {Type: "NoSuchType"}},
		Target: ObjectSpec{Type: "TypeThree"},
	}
	_, err := Plan(context.Background(), []byte(minimalCatalogue), req, nil)
	require.Error(t, err)
	var bre *model.BadRequestError
	require.ErrorAs(t, err, &bre)
	require.Equal(t, model.UndefinedStartType, bre.Kind)
}

func TestPlanReportsBadRequestForUndefinedTargetType(t *testing.T) {
	req := Request{
		Start:  map[string]ObjectSpec{"start": {Type: "TypeOne", Params: map[string]any{"ValueOne": 1}}},
		Target: ObjectSpec{Type: "NoSuchType"},
	}
	_, err := Plan(context.Background(), []byte(minimalCatalogue), req, nil)
	require.Error(t, err)
	var bre *model.BadRequestError
	require.ErrorAs(t, err, &bre)
	require.Equal(t, model.UndefinedTargetType, bre.Kind)
}

func TestPlanRejectsNonConcreteStartLiteral(t *testing.T) {
	req := Request{
		Start:  map[string]ObjectSpec{"start": {Type: "TypeTwo", Params: map[string]any{"ValueEnum": "unset"}}},
		Target: ObjectSpec{Type: "TypeThree"},
	}
	_, err := Plan(context.Background(), []byte(minimalCatalogue), req, nil)
	require.Error(t, err)
	var bre *model.BadRequestError
	require.ErrorAs(t, err, &bre)
	require.Equal(t, model.BadStartLiteral, bre.Kind)
}

func TestPlanReturnsEmptyResponseOnNoSolution(t *testing.T) {
	req := Request{
		Start: map[string]ObjectSpec{"start": {Type: "TypeOne", Params: map[string]any{"ValueOne": 1}}},
		Target: ObjectSpec{
			Type:   "TypeThree",
			Params: map[string]any{"ValueThree": 999},
		},
	}
	resp, err := Plan(context.Background(), []byte(minimalCatalogue), req, nil)
	require.Error(t, err)
	require.Empty(t, resp.Objects)
}
