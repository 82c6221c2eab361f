package terrain

import "testing"

func TestBuildMeshGeometry(t *testing.T) {
	elev := NewScalarField(4, 3)
	for i := range elev.Values {
		elev.Values[i] = float64(i) / 11
	}
	moist := NewScalarField(4, 3)
	grid := ClassifyFields(elev, moist)

	m := BuildMesh(elev, grid)
	if got, want := len(m.Vertices), 4*3*3; got != want {
		t.Fatalf("vertex floats: got=%d want=%d", got, want)
	}
	if got, want := len(m.Colors), 4*3*3; got != want {
		t.Fatalf("color floats: got=%d want=%d", got, want)
	}
	if got, want := len(m.Indices), 3*2*6; got != want {
		t.Fatalf("indices: got=%d want=%d", got, want)
	}
	for _, idx := range m.Indices {
		if idx < 0 || idx >= 12 {
			t.Fatalf("index out of range: %d", idx)
		}
	}
}

func TestBuildMeshScalesHeight(t *testing.T) {
	elev := NewScalarField(2, 2)
	elev.Set(1, 0, 1.0)
	grid := ClassifyFields(elev, NewScalarField(2, 2))

	m := BuildMesh(elev, grid)
	// Vertex order is row-major; y sits at offset 1 of each triple.
	if got := m.Vertices[1*3+1]; got != meshHeightScale {
		t.Fatalf("scaled height: got=%v want=%v", got, meshHeightScale)
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b := parseHexColor("#FF8000")
	if r != 1 {
		t.Fatalf("red: got=%v want=1", r)
	}
	if g <= 0.49 || g >= 0.52 {
		t.Fatalf("green: got=%v want~0.5", g)
	}
	if b != 0 {
		t.Fatalf("blue: got=%v want=0", b)
	}

	r, g, b = parseHexColor("not-a-color")
	if r != 0.5 || g != 0.5 || b != 0.5 {
		t.Fatalf("fallback color: got=(%v,%v,%v) want=(0.5,0.5,0.5)", r, g, b)
	}
}
