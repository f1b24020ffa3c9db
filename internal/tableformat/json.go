package tableformat

import (
	"encoding/json"

	"cimdea/internal/tabulate"
)

type jsonFormatter struct{}

type jsonColumn struct {
	Name     string `json:"name"`
	Width    int    `json:"width"`
	DataType string `json:"data_type"`
}

type jsonTable struct {
	Heading []jsonColumn `json:"heading"`
	Rows    [][]string   `json:"rows"`
}

func (jsonFormatter) Format(t tabulate.Table) (string, error) {
	payload := jsonTable{
		Heading: make([]jsonColumn, len(t.Heading)),
		Rows:    t.Rows,
	}
	for i, col := range t.Heading {
		payload.Heading[i] = jsonColumn{Name: col.Name, Width: columnWidth(col), DataType: col.DataType}
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}
