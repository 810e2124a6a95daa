package geo

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestDistance_SamePoint(t *testing.T) {
	points := []Coord{
		{0, 0},
		{48.2188, 11.6247},
		{-33.8688, 151.2093},
		{90, 0},
	}
	for _, p := range points {
		if d := p.DistanceTo(p); d != 0 {
			t.Errorf("distance(%v, %v) = %f, want 0", p, p, d)
		}
	}
}

func TestDistance_Symmetric(t *testing.T) {
	pairs := [][2]Coord{
		{{48.2188, 11.6247}, {52.5200, 13.4050}},
		{{0, 0}, {10, 10}},
		{{-33.8688, 151.2093}, {40.7128, -74.0060}},
		{{89.9, 179.9}, {-89.9, -179.9}},
	}
	for _, p := range pairs {
		ab := p[0].DistanceTo(p[1])
		ba := p[1].DistanceTo(p[0])
		if math.Abs(ab-ba) > 1e-6 {
			t.Errorf("distance not symmetric for %v: %f vs %f", p, ab, ba)
		}
	}
}

func TestDistance_Antipodal(t *testing.T) {
	d := Distance(0, 0, 0, 180)
	want := math.Pi * EarthRadius
	if math.Abs(d-want) > 1 {
		t.Errorf("antipodal distance = %f, want ~%f", d, want)
	}
}

func TestDistance_RandomAntipodesFinite(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	want := math.Pi * EarthRadius
	for range 200_000 {
		lat := r.Float64()*180 - 90
		lon := r.Float64()*360 - 180
		d := Distance(lat, lon, -lat, lon+180)
		if math.IsNaN(d) || math.IsInf(d, 0) {
			t.Fatalf("Distance(%v, %v) to antipode = %v", lat, lon, d)
		}
		if math.Abs(d-want) > 1 {
			t.Fatalf("Distance(%v, %v) to antipode = %f, want ~%f", lat, lon, d, want)
		}
	}
}

func TestCoordValid(t *testing.T) {
	tests := []struct {
		c    Coord
		want bool
	}{
		{Coord{48.2188, 11.6247}, true},
		{Coord{90, 180}, true},
		{Coord{-90, -180}, true},
		{Coord{408.2188, 11.6247}, false},
		{Coord{0, 180.5}, false},
		{Coord{math.NaN(), 0}, false},
		{Coord{0, math.Inf(1)}, false},
	}
	for _, tt := range tests {
		if got := tt.c.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.c, got, tt.want)
		}
	}
}

func TestDistance_KnownValue(t *testing.T) {
	// Munich (Allianz Arena) to Berlin is roughly 504 km.
	d := Distance(48.2188, 11.6247, 52.5200, 13.4050)
	if d < 495_000 || d > 512_000 {
		t.Errorf("Munich-Berlin = %.0f m, want ~504 km", d)
	}
}

func TestDistance_SimulatedOffsetWithinRadius(t *testing.T) {
	target := Coord{Lat: 48.2188, Lon: 11.6247}
	tests := []struct {
		dLat, dLon float64
	}{
		{0.0001, 0.0001},
		{-0.0001, 0.0001},
		{0.0001, -0.0001},
		{-0.0001, -0.0001},
	}
	for _, tt := range tests {
		d := target.Offset(tt.dLat, tt.dLon).DistanceTo(target)
		if d > 50 {
			t.Errorf("offset (%v, %v) distance = %.2f m, want <= 50", tt.dLat, tt.dLon, d)
		}
	}
}

func TestOffset(t *testing.T) {
	c := Coord{Lat: 1, Lon: 2}.Offset(0.5, -0.5)
	if c.Lat != 1.5 || c.Lon != 1.5 {
		t.Errorf("Offset = %+v, want {1.5 1.5}", c)
	}
}
