package mps

// json: serialization of the Problem aggregate into the documented JSON
// shape. Infinite bound ends are emitted as the string sentinels "+inf" and
// "-inf" because JSON has no literal for them.

import (
	"encoding/json"
	"math"
	"os"

	"github.com/pkg/errors"
)

// extReal is an extended-real JSON value: a plain number, or one of the
// sentinels "+inf" / "-inf".
type extReal float64

// MarshalJSON renders infinities as their string sentinels.
func (e extReal) MarshalJSON() ([]byte, error) {
	switch {
	case math.IsInf(float64(e), 1):
		return []byte(`"+inf"`), nil
	case math.IsInf(float64(e), -1):
		return []byte(`"-inf"`), nil
	}
	return json.Marshal(float64(e))
}

// problemJSON fixes the key set and order of the serialized model.
type problemJSON struct {
	Name       string                        `json:"NAME"`
	ObjSense   string                        `json:"OBJSENSE,omitempty"`
	ObjName    string                        `json:"OBJNAME,omitempty"`
	Rows       map[string]Sense              `json:"ROWS"`
	Columns    map[string]map[string]float64 `json:"COLUMNS"`
	RHS        map[string]float64            `json:"RHS"`
	Bounds     map[string]map[string]extReal `json:"BOUNDS"`
	Ranges     map[string]map[string]float64 `json:"RANGES"`
	ObjRow     string                        `json:"OBJ_ROW"`
	RHSID      string                        `json:"RHS_id"`
	RangesID   string                        `json:"RANGES_id"`
	BoundsID   string                        `json:"BOUNDS_id"`
	AllColumns []string                      `json:"ALL_COLUMNS"`
}

// MarshalJSON serializes the model with the keys NAME, ROWS, COLUMNS, RHS,
// BOUNDS, RANGES, OBJ_ROW, RHS_id, RANGES_id, BOUNDS_id, and ALL_COLUMNS,
// plus OBJSENSE and OBJNAME on dual models. Bound ends that were never
// specified are omitted from their entry.
func (p *Problem) MarshalJSON() ([]byte, error) {
	out := problemJSON{
		Name:       p.Name,
		ObjSense:   p.ObjSense,
		ObjName:    p.ObjName,
		Rows:       make(map[string]Sense, len(p.Rows)),
		Columns:    p.Coef,
		RHS:        p.RHS,
		Bounds:     make(map[string]map[string]extReal, len(p.Bounds)),
		Ranges:     make(map[string]map[string]float64, len(p.Ranges)),
		ObjRow:     p.ObjRow,
		RHSID:      p.RHSID,
		RangesID:   p.RangesID,
		BoundsID:   p.BoundsID,
		AllColumns: p.Columns(),
	}
	for _, row := range p.Rows {
		out.Rows[row.Name] = row.Sense
	}
	for col, b := range p.Bounds {
		entry := make(map[string]extReal, 2)
		if b.HasLower {
			entry["lower"] = extReal(b.Lower)
		}
		if b.HasUpper {
			entry["upper"] = extReal(b.Upper)
		}
		out.Bounds[col] = entry
	}
	for row, r := range p.Ranges {
		out.Ranges[row] = map[string]float64{"lower": r.Lower, "upper": r.Upper}
	}
	return json.Marshal(out)
}

// WriteJSONFile serializes the model as an indented JSON document and writes
// it to the named file.
func (p *Problem) WriteJSONFile(fileName string) error {
	dat, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return errors.Wrap(err, "WriteJSONFile failed to serialize model")
	}
	if err := os.WriteFile(fileName, dat, 0o644); err != nil {
		return errors.Wrapf(err, "WriteJSONFile failed to write %s", fileName)
	}
	return nil
}
