package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	jsonrepair "github.com/kaptinlin/jsonrepair"

	"github.com/vietlaw/trafficqa/pkg/types"
)

// corpusFile is the shape of the violations JSON produced by the document ETL.
type corpusFile struct {
	Violations []types.ViolationRecord `json:"violations"`
}

// LoadRecords reads a violations corpus file. The ETL occasionally emits
// slightly malformed JSON (trailing commas, unquoted keys); a syntax error is
// retried once through jsonrepair before giving up.
func LoadRecords(path string) ([]types.ViolationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus %s: %w", path, err)
	}
	return ParseRecords(data)
}

// ParseRecords decodes a violations corpus from raw JSON.
func ParseRecords(data []byte) ([]types.ViolationRecord, error) {
	var corpus corpusFile
	if err := json.Unmarshal(data, &corpus); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(string(data))
		if repairErr != nil {
			return nil, fmt.Errorf("parse corpus: %w", err)
		}
		if err := json.Unmarshal([]byte(repaired), &corpus); err != nil {
			return nil, fmt.Errorf("parse corpus after repair: %w", err)
		}
	}
	return corpus.Violations, nil
}

// graphExport is the on-disk shape written by ExportJSON.
type graphExport struct {
	Stats Stats         `json:"stats"`
	Nodes []*types.Node `json:"nodes"`
	Edges []types.Edge  `json:"edges"`
}

// ExportJSON writes the full graph (nodes in insertion order, all edges) as
// JSON, for inspection or for bulk-loading into an external store.
func (s *Store) ExportJSON(w io.Writer) error {
	export := graphExport{
		Stats: s.Stats(),
		Nodes: make([]*types.Node, 0, len(s.order)),
		Edges: s.Edges(),
	}
	for _, id := range s.order {
		export.Nodes = append(export.Nodes, s.nodes[id])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(export)
}
