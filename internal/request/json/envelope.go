// Package requestjson parses and validates the external JSON request
// envelope (AbacusRequest construction) into a request.AbacusRequest.
package requestjson

// Envelope is the top-level JSON request shape.
type Envelope struct {
	Product          string          `json:"product"`
	DataRoot         string          `json:"data_root"`
	UOA              string          `json:"uoa"`
	OutputFormat     string          `json:"output_format"`
	Subpopulation    []SubpopEntry   `json:"subpopulation"`
	CategoryBins     map[string][]RawBin `json:"category_bins"`
	RequestSamples   []SampleEntry   `json:"request_samples"`
	RequestVariables []VariableEntry `json:"request_variables"`
}

// RawBin is one unconverted category bin entry.
type RawBin struct {
	Code       int    `json:"code"`
	ValueLabel string `json:"value_label"`
	Low        *int   `json:"low,omitempty"`
	High       *int   `json:"high,omitempty"`
}

// SampleEntry is one request_samples[] entry.
type SampleEntry struct {
	Name                  string   `json:"name"`
	CustomSamplingRatio   *float64 `json:"custom_sampling_ratio,omitempty"`
	FirstHouseholdSampled *int     `json:"first_household_sampled,omitempty"`
}

// CaseSelectionRange is one request_case_selections[] entry.
type CaseSelectionRange struct {
	LowCode  int `json:"low_code"`
	HighCode int `json:"high_code"`
}

// VariableEntry is one request_variables[] entry.
type VariableEntry struct {
	VariableMnemonic         string               `json:"variable_mnemonic"`
	Mnemonic                 string               `json:"mnemonic"`
	GeneralDetailedSelection string               `json:"general_detailed_selection"`
	AttachedVariablePointer  string               `json:"attached_variable_pointer"`
	CaseSelection            bool                 `json:"case_selection"`
	RequestCaseSelections    []CaseSelectionRange `json:"request_case_selections"`
	ExtractStart             int                  `json:"extract_start"`
	ExtractWidth             int                  `json:"extract_width"`
}

// SubpopEntry is one subpopulation[] entry: a variable restricted to an
// equality list or a union of inclusive ranges.
type SubpopEntry struct {
	VariableMnemonic string       `json:"variable_mnemonic"`
	Values           []int        `json:"values,omitempty"`
	Ranges           []RangeEntry `json:"ranges,omitempty"`
}

// RangeEntry is one inclusive [Low, High] bound within a SubpopEntry.
type RangeEntry struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// mnemonic returns the variable name this entry refers to: variable_mnemonic
// takes priority, falling back to mnemonic (the envelope carries both
// spellings).
func (v VariableEntry) mnemonic() string {
	if v.VariableMnemonic != "" {
		return v.VariableMnemonic
	}
	return v.Mnemonic
}

// isGeneral reports whether this entry requests the general (coarsened)
// form of a general/detailed variable pair.
func (v VariableEntry) isGeneral() bool {
	switch v.GeneralDetailedSelection {
	case "G", "general", "Gen":
		return true
	default:
		return false
	}
}
