// Package planner is the facade wiring the catalogue loader, the
// candidate-graph search, the solution reconstructor, and response
// rendering into a single call (spec.md §2 pipeline). It also performs the
// request-shape validation of spec.md §7 BadRequest.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/ackbas/methodnet/internal/catalog"
	"github.com/ackbas/methodnet/internal/model"
	"github.com/ackbas/methodnet/internal/plan"
	"github.com/ackbas/methodnet/internal/procedure"
	"github.com/ackbas/methodnet/internal/render"
)

// ObjectSpec is a (type, params) pair as it arrives over the external
// request shape (spec.md §6): params map each name to a raw literal (an
// int or a string), not yet resolved against the catalogue.
type ObjectSpec struct {
	Type   string
	Params map[string]any
}

// Request is the planning request shape of spec.md §6, minus graph_name
// (the out-of-scope external collaborator resolves that to catalogue
// bytes before calling this package).
type Request struct {
	Start  map[string]ObjectSpec
	Target ObjectSpec

	// MaxVisited optionally bounds the search's visited set (spec.md §5).
	MaxVisited int
}

// Plan runs the full pipeline: load the catalogue, validate the request,
// search for a procedure, and render it to the §6 response shape. ctx's
// deadline is the search's cooperative cancellation primitive (spec.md
// §5). NoSolution, Cancelled, and ResourceExhausted are reported by
// returning render.EmptyResponse() with a non-nil marker error the caller
// can distinguish with errors.Is against plan.ErrNoSolution etc (spec.md
// §7 "Propagation").
func Plan(ctx context.Context, catalogueYAML []byte, req Request, logger *slog.Logger) (*render.Response, error) {
	proc, target, err := PlanProcedure(ctx, catalogueYAML, req, logger)
	if err != nil {
		if target.Type == nil {
			return nil, err // LoadError or BadRequestError: fatal
		}
		return render.EmptyResponse(), err // NoSolution/Cancelled/ResourceExhausted
	}
	return render.Render(proc, target), nil
}

// PlanProcedure runs the pipeline through reconstruction and returns the
// procedure graph itself, for callers (such as the transcript renderer)
// that need more than the §6 JSON shape. A non-nil error with
// target.Type == nil is a catalogue-load or request-validation error
// (fatal); a non-nil error with target.Type set signals NoSolution,
// Cancelled, or ResourceExhausted (spec.md §7, normal negative results).
func PlanProcedure(ctx context.Context, catalogueYAML []byte, req Request, logger *slog.Logger) (*procedure.Procedure, model.TargetDescription, error) {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	logger = logger.With("run_id", runID)

	g, err := catalog.Load(catalogueYAML)
	if err != nil {
		logger.Error("catalogue load failed", "error", err)
		return nil, model.TargetDescription{}, err
	}

	starts, startObjects, err := resolveStart(g, req.Start)
	if err != nil {
		logger.Error("bad request", "error", err)
		return nil, model.TargetDescription{}, err
	}
	target, err := resolveTarget(g, req.Target)
	if err != nil {
		logger.Error("bad request", "error", err)
		return nil, model.TargetDescription{}, err
	}

	logger.Info("search starting", "start_count", len(starts), "target_type", req.Target.Type)

	result, err := plan.Search(ctx, g, starts, target, plan.Options{MaxVisited: req.MaxVisited})
	if err != nil {
		logger.Info("search ended without a procedure", "reason", err)
		return nil, target, err
	}

	proc, err := procedure.Reconstruct(result, startObjects, target)
	if err != nil {
		logger.Error("reconstruction failed", "error", err)
		return nil, target, err
	}

	logger.Info("search found a procedure", "steps", len(proc.MethodNodes))
	return proc, target, nil
}

// resolveStart validates and instantiates the request's start objects
// against the catalogue (spec.md §7 BadRequest), returning both the plain
// TypeInstance slice consumed by the search and the name-preserving
// StartObject slice consumed by the reconstructor. Order is the objects'
// lexicographic name order, for determinism independent of map iteration.
func resolveStart(g *model.KnowledgeGraph, start map[string]ObjectSpec) ([]model.TypeInstance, []procedure.StartObject, error) {
	names := make([]string, 0, len(start))
	for name := range start {
		names = append(names, name)
	}
	sort.Strings(names)

	instances := make([]model.TypeInstance, 0, len(names))
	objects := make([]procedure.StartObject, 0, len(names))
	for _, name := range names {
		spec := start[name]
		td, ok := g.Types[spec.Type]
		if !ok {
			return nil, nil, &model.BadRequestError{Kind: model.UndefinedStartType, Subject: spec.Type, Detail: "start object " + name}
		}
		params := map[string]model.ParameterValue{}
		for pname, raw := range spec.Params {
			pd, ok := td.Param(pname)
			if !ok {
				return nil, nil, &model.BadRequestError{Kind: model.BadStartLiteral, Subject: pname, Detail: "unknown parameter on " + spec.Type}
			}
			val, err := catalog.InstantiateRawLiteral(raw, pd.Type)
			if err != nil {
				return nil, nil, &model.BadRequestError{Kind: model.BadStartLiteral, Subject: pname, Detail: err.Error()}
			}
			if val.Kind != model.KindInt && val.Kind != model.KindEnum {
				return nil, nil, &model.BadRequestError{Kind: model.BadStartLiteral, Subject: pname, Detail: "start objects must be fully concrete"}
			}
			params[pname] = val
		}
		inst := model.NewTypeInstance(td, params)
		instances = append(instances, inst)
		objects = append(objects, procedure.StartObject{Name: name, Instance: inst})
	}
	return instances, objects, nil
}

// resolveTarget validates and instantiates the request's target
// description against the catalogue (spec.md §7 BadRequest).
func resolveTarget(g *model.KnowledgeGraph, target ObjectSpec) (model.TargetDescription, error) {
	td, ok := g.Types[target.Type]
	if !ok {
		return model.TargetDescription{}, &model.BadRequestError{Kind: model.UndefinedTargetType, Subject: target.Type}
	}
	constraints := make(model.ParamList, 0, len(target.Params))
	names := make([]string, 0, len(target.Params))
	for pname := range target.Params {
		names = append(names, pname)
	}
	sort.Strings(names)
	for _, pname := range names {
		pd, ok := td.Param(pname)
		if !ok {
			return model.TargetDescription{}, &model.BadRequestError{Kind: model.UndefinedTargetType, Subject: pname, Detail: "unknown parameter on " + target.Type}
		}
		val, err := catalog.InstantiateRawLiteral(target.Params[pname], pd.Type)
		if err != nil {
			return model.TargetDescription{}, fmt.Errorf("target parameter %s: %w", pname, err)
		}
		constraints = append(constraints, model.ParamEntry{Name: pname, Value: val})
	}
	return model.TargetDescription{Type: td, Constraints: constraints}, nil
}
