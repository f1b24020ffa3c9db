package requestjson

import (
	"encoding/json"
	"io"

	"cimdea/internal/cimdeactx"
	"cimdea/internal/core"
	"cimdea/internal/request"
)

// Decode parses and validates one JSON request envelope from r, returning
// the Context it built (metadata already loaded for the requested
// datasets) and the resulting AbacusRequest.
//
// Validation proceeds in order:
//  1. product, data_root and datasets resolve into a Context.
//  2. every variable mnemonic must exist in metadata; category bins
//     attach by mnemonic.
//  3. each raw bin converts via CategoryBin's try-from rules.
//  4. subpopulation entries become AND-combined Conditions.
func Decode(r io.Reader) (*cimdeactx.Context, *request.AbacusRequest, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, nil, core.Msg("malformed request JSON: %v", err)
	}
	return Build(env)
}

// Build turns an already-decoded Envelope into a Context + AbacusRequest.
// Exposed separately from Decode so callers that already have a
// deserialized envelope (e.g. constructed by name-tuple tests) can skip
// the JSON round-trip.
func Build(env Envelope) (*cimdeactx.Context, *request.AbacusRequest, error) {
	dataRoot := env.DataRoot
	ctx, err := cimdeactx.New(env.Product, nil, &dataRoot, false)
	if err != nil {
		return nil, nil, err
	}

	datasetNames := make([]string, 0, len(env.RequestSamples))
	for _, s := range env.RequestSamples {
		datasetNames = append(datasetNames, s.Name)
	}
	if err := ctx.LoadMetadataForDatasets(datasetNames); err != nil {
		return nil, nil, err
	}

	var uoaCode byte
	if env.UOA != "" {
		uoaCode = env.UOA[0]
	}
	uoa, err := ctx.Conventions.Collection.ResolveUnitOfAnalysis(uoaCode)
	if err != nil {
		return nil, nil, err
	}

	samples := make([]core.RequestSample, 0, len(env.RequestSamples))
	for _, s := range env.RequestSamples {
		d, ok := ctx.Entities.DatasetByName(s.Name)
		if !ok {
			return nil, nil, core.UnknownDataset(s.Name)
		}
		samples = append(samples, core.RequestSample{
			Dataset:               d,
			CustomSamplingRatio:   s.CustomSamplingRatio,
			FirstHouseholdSampled: s.FirstHouseholdSampled,
		})
	}

	variables := make([]core.RequestVariable, 0, len(env.RequestVariables))
	for _, ve := range env.RequestVariables {
		name := ve.mnemonic()
		v, ok := ctx.Entities.VariableByName(name)
		if !ok {
			return nil, nil, core.UnknownVariable(name)
		}

		rv := core.RequestVariable{
			Variable:     v,
			UseGeneral:   ve.isGeneral(),
			DisplayWidth: ve.ExtractWidth,
		}
		if v.GeneralWidth != nil {
			divisor := pow10(*v.GeneralWidth)
			rv.GeneralDivisor = &divisor
		}

		if ve.CaseSelection && len(ve.RequestCaseSelections) > 0 {
			ranges := make([]core.IntRange, len(ve.RequestCaseSelections))
			for i, r := range ve.RequestCaseSelections {
				ranges[i] = core.IntRange{Low: r.LowCode, High: r.HighCode}
			}
			cond := core.NewRangeCondition(name, ranges)
			rv.CaseSelection = &cond
		}
		// ve.CaseSelection true with an empty range list means "select
		// everything": leave CaseSelection nil.

		if rawBins, ok := env.CategoryBins[name]; ok {
			bins := make([]core.CategoryBin, 0, len(rawBins))
			for _, rb := range rawBins {
				bin, err := core.NewCategoryBin(core.RawCategoryBin{
					Code:       rb.Code,
					ValueLabel: rb.ValueLabel,
					Low:        rb.Low,
					High:       rb.High,
				})
				if err != nil {
					return nil, nil, err
				}
				bins = append(bins, bin)
			}
			rv.Bins = bins
		}

		variables = append(variables, rv)
	}

	conditions := make([]core.Condition, 0, len(env.Subpopulation))
	for _, sp := range env.Subpopulation {
		condVar, ok := ctx.Entities.VariableByName(sp.VariableMnemonic)
		if !ok {
			return nil, nil, core.UnknownVariable(sp.VariableMnemonic)
		}
		var cond core.Condition
		switch {
		case len(sp.Values) > 0:
			cond = core.NewEqualsCondition(sp.VariableMnemonic, sp.Values)
		case len(sp.Ranges) > 0:
			ranges := make([]core.IntRange, len(sp.Ranges))
			for i, r := range sp.Ranges {
				ranges[i] = core.IntRange{Low: r.Low, High: r.High}
			}
			cond = core.NewRangeCondition(sp.VariableMnemonic, ranges)
		default:
			return nil, nil, core.MetadataErr("condition", sp.VariableMnemonic, "has neither values nor ranges")
		}
		cond.RecordTypeCode = condVar.RecordTypeCode
		conditions = append(conditions, cond)
	}

	req := request.NewAbacusRequest(ctx.Product, env.OutputFormat, variables, samples, conditions, uoa)
	return ctx, req, nil
}

func pow10(n int) int {
	result := 1
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
