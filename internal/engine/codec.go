package engine

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
)

// BlobVersion is the current serialized grid format version.
const BlobVersion = 1

// GridBlob is the versioned wire form of a grid snapshot: dimensions, rule
// string and row-major alive bits (packed, base64). Age and fade metadata
// are rendering state and are not persisted.
type GridBlob struct {
	Version    int       `json:"version"`
	Rows       int       `json:"rows"`
	Cols       int       `json:"cols"`
	Rule       string    `json:"rule"`
	Generation int       `json:"generation"`
	Cells      string    `json:"cells"`
	Name       string    `json:"name,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// MarshalBlob serializes the grid losslessly (dimensions, rule, alive bits).
func (g *Grid) MarshalBlob() ([]byte, error) {
	blob := GridBlob{
		Version:    BlobVersion,
		Rows:       g.rows,
		Cols:       g.cols,
		Rule:       g.rule.String(),
		Generation: g.generation,
		Cells:      base64.StdEncoding.EncodeToString(PackCells(g.cells)),
	}
	return json.Marshal(blob)
}

// UnmarshalBlob replaces the grid's dimensions, rule, generation and cell
// state from a serialized blob. The grid is untouched on error.
func (g *Grid) UnmarshalBlob(data []byte) error {
	var blob GridBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return errors.Wrap(err, "decode grid blob")
	}
	if blob.Version != BlobVersion {
		return errors.Errorf("unsupported grid blob version %d", blob.Version)
	}
	if blob.Rows <= 0 || blob.Cols <= 0 {
		return errors.Errorf("invalid grid blob dimensions %dx%d", blob.Rows, blob.Cols)
	}
	rule, err := ParseRule(blob.Rule)
	if err != nil {
		return err
	}
	packed, err := base64.StdEncoding.DecodeString(blob.Cells)
	if err != nil {
		return errors.Wrap(err, "decode grid blob cells")
	}
	cells, err := UnpackCells(packed, blob.Rows, blob.Cols)
	if err != nil {
		return err
	}
	g.rows, g.cols, g.cells = blob.Rows, blob.Cols, cells
	g.rule = rule
	g.generation = blob.Generation
	return nil
}

// PackCells packs alive bits row-major, 8 cells per byte.
func PackCells(cells []Cell) []byte {
	out := make([]byte, (len(cells)+7)/8)
	for i := range cells {
		if cells[i].Alive {
			out[i/8] |= 1 << (i % 8)
		}
	}
	return out
}

// UnpackCells expands packed alive bits into rows*cols cells with zeroed
// metadata.
func UnpackCells(data []byte, rows, cols int) ([]Cell, error) {
	n := rows * cols
	if len(data) < (n+7)/8 {
		return nil, errors.Errorf("packed cell data too short: %d bytes for %dx%d", len(data), rows, cols)
	}
	cells := make([]Cell, n)
	for i := 0; i < n; i++ {
		cells[i].Alive = data[i/8]&(1<<(i%8)) != 0
	}
	return cells, nil
}
