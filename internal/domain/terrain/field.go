package terrain

import "math"

// ScalarField is a dense row-major grid of float64 samples. Values are
// unconstrained until normalized.
type ScalarField struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Values []float64 `json:"values"`
}

func NewScalarField(width, height int) ScalarField {
	return ScalarField{
		Width:  width,
		Height: height,
		Values: make([]float64, width*height),
	}
}

func (f ScalarField) At(x, y int) float64 {
	return f.Values[y*f.Width+x]
}

func (f ScalarField) Set(x, y int, v float64) {
	f.Values[y*f.Width+x] = v
}

func (f ScalarField) Clone() ScalarField {
	out := NewScalarField(f.Width, f.Height)
	copy(out.Values, f.Values)
	return out
}

func (f ScalarField) MinMax() (float64, float64) {
	if len(f.Values) == 0 {
		return 0, 0
	}
	minV, maxV := f.Values[0], f.Values[0]
	for _, v := range f.Values[1:] {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	return minV, maxV
}

// constantFieldValue is what every cell maps to when min == max and
// min-max rescaling would divide by zero.
const constantFieldValue = 0.5

// Normalized rescales the field so the minimum maps to 0.0 and the maximum
// to 1.0. A constant field maps to constantFieldValue everywhere.
func (f ScalarField) Normalized() ScalarField {
	out := NewScalarField(f.Width, f.Height)
	minV, maxV := f.MinMax()
	span := maxV - minV
	if span == 0 {
		for i := range out.Values {
			out.Values[i] = constantFieldValue
		}
		return out
	}
	for i, v := range f.Values {
		out.Values[i] = (v - minV) / span
	}
	return out
}

// erosionSelfWeight controls how much a cell keeps of its own value during a
// smoothing pass relative to each orthogonal neighbor (weight 1).
const erosionSelfWeight = 4.0

// Eroded runs the given number of smoothing passes over the field. Each pass
// replaces every cell with a weighted average of itself and its orthogonal
// neighbors. Edge and corner cells average only the neighbors that exist; the
// grid does not wrap.
func (f ScalarField) Eroded(passes int) ScalarField {
	cur := f.Clone()
	for p := 0; p < passes; p++ {
		next := NewScalarField(cur.Width, cur.Height)
		for y := 0; y < cur.Height; y++ {
			for x := 0; x < cur.Width; x++ {
				sum := cur.At(x, y) * erosionSelfWeight
				weight := erosionSelfWeight
				if x > 0 {
					sum += cur.At(x-1, y)
					weight++
				}
				if x < cur.Width-1 {
					sum += cur.At(x+1, y)
					weight++
				}
				if y > 0 {
					sum += cur.At(x, y-1)
					weight++
				}
				if y < cur.Height-1 {
					sum += cur.At(x, y+1)
					weight++
				}
				next.Set(x, y, sum/weight)
			}
		}
		cur = next
	}
	return cur
}
