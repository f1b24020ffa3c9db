// Package request holds the typed, validated request model: SimpleRequest
// (built from bare names) and AbacusRequest (built from the JSON
// envelope), both implementing the DataRequest capability that QueryGen
// and Tabulator operate against.
package request

import "cimdea/internal/core"

// DataRequest is the capability set QueryGen and Tabulator consume. Both
// SimpleRequest and AbacusRequest implement it; neither component needs
// to know which concrete type it's holding.
type DataRequest interface {
	Product() string
	RequestVariables() []core.RequestVariable
	RequestSamples() []core.RequestSample
	Conditions() []core.Condition
	UnitOfAnalysis() core.RecordType
	// Codebook renders a plain-text description of every requested
	// variable: name, data type, and category labels if present.
	Codebook() string
}
