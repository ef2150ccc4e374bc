package agent

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Feature indexes into Weights and the feature vector.
type Feature int

const (
	LandingHeight Feature = iota
	ErodedPieceCells
	RowTransitions
	ColumnTransitions
	Holes
	Wells
	NumFeatures
)

var featureNames = [NumFeatures]string{
	"landing_height",
	"eroded_piece_cells",
	"row_transitions",
	"column_transitions",
	"holes",
	"wells",
}

func (f Feature) String() string {
	if f < 0 || f >= NumFeatures {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureNames[f]
}

// Weights holds one coefficient per feature, in Feature order.
type Weights [NumFeatures]float64

// DefaultWeights were tuned offline with a genetic search and are treated as
// opaque constants.
var DefaultWeights = Weights{
	LandingHeight:     -4.500158825082766,
	ErodedPieceCells:  3.4181268101392694,
	RowTransitions:    -3.2178882868487753,
	ColumnTransitions: -9.348695305445199,
	Holes:             -7.899265427351652,
	Wells:             -3.3855972247263626,
}

// String formats the weights as comma-separated values, the same form Set
// accepts.
func (w *Weights) String() string {
	parts := make([]string, NumFeatures)
	for i, v := range w {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Set parses six comma-separated numbers. It lets Weights be used as a flag
// value.
func (w *Weights) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != int(NumFeatures) {
		return fmt.Errorf("weights: want %d values, got %d", NumFeatures, len(parts))
	}
	var out Weights
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("weights: %s: %w", Feature(i), err)
		}
		out[i] = v
	}
	*w = out
	return nil
}

// ParseWeights parses the comma-separated form produced by Weights.String.
func ParseWeights(s string) (Weights, error) {
	var w Weights
	err := w.Set(s)
	return w, err
}

// UnmarshalJSON accepts an array of exactly six numbers.
func (w *Weights) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if len(vals) != int(NumFeatures) {
		return fmt.Errorf("weights: want %d values, got %d", NumFeatures, len(vals))
	}
	copy(w[:], vals)
	return nil
}
