package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/thermosim/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	Trajectory dynamo.Trajectory `json:"trajectory"`
}

func ExportJSON(w io.Writer, meta RunMetadata, tr dynamo.Trajectory) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: meta, Trajectory: tr})
}
