package components

import (
	"math"
	"math/rand"
	"testing"
)

func TestPetalDecayNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		p := NewPetal(0, 0, rng.Intn(256), rng.Intn(40))
		prev := p.Brightness
		for step := 0; step < 50; step++ {
			got := p.Decay()
			if got < 0 {
				t.Fatalf("brightness went negative: %d", got)
			}
			if got > prev {
				t.Fatalf("brightness increased from %d to %d", prev, got)
			}
			prev = got
		}
	}
}

func TestPetalDecayMarksDead(t *testing.T) {
	p := NewPetal(3, 0, 10, 4)
	p.Decay()
	p.Decay()
	if !p.Alive() {
		t.Fatal("petal with brightness 2 should be alive")
	}
	p.Decay()
	if p.Brightness != 0 || p.Alive() || !p.Dead {
		t.Errorf("expected dead petal at 0, got brightness=%d dead=%v", p.Brightness, p.Dead)
	}
}

func TestPetalAdvanceWraps(t *testing.T) {
	tests := []struct {
		name   string
		side   Side
		x, y   int
		dx, dy int
		wantX  int
		wantY  int
		dead   bool
	}{
		{"wrap right", SideTop, 6, 2, 2, 0, 1, 2, false},
		{"wrap left", SideTop, 0, 2, -3, 0, 4, 2, false},
		{"fall off bottom", SideTop, 3, 4, 0, 1, 3, 5, true},
		{"fall off top", SideBottom, 3, 0, 0, -1, 3, -1, true},
		{"wrap vertical for left edge", SideLeft, 1, 4, 0, 2, 1, 1, false},
		{"fall off right", SideLeft, 6, 1, 1, 0, 7, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEdge(tt.side, 7, 5)
			p := NewPetal(tt.x, tt.y, 100, 1)
			p.Advance(tt.dx, tt.dy, e)
			if p.X != tt.wantX || p.Y != tt.wantY {
				t.Errorf("position = (%d, %d), want (%d, %d)", p.X, p.Y, tt.wantX, tt.wantY)
			}
			if p.Dead != tt.dead {
				t.Errorf("dead = %v, want %v", p.Dead, tt.dead)
			}
		})
	}
}

func TestSpawnBoundsTop(t *testing.T) {
	e := NewEdge(SideTop, 17, 7)
	x, y := e.SpawnBounds()
	if x.Min != 0 || x.Max != 16 {
		t.Errorf("x range = %v, want [0, 16]", x)
	}
	if y.Min != 0 || y.Max != 0 {
		t.Errorf("y range = %v, want [0, 0]", y)
	}
}

func TestSpawnBoundsAllSides(t *testing.T) {
	tests := []struct {
		side Side
		x, y Range
		dx   int
		dy   int
	}{
		{SideTop, Range{0, 16}, Range{0, 0}, 0, 1},
		{SideBottom, Range{0, 16}, Range{6, 6}, 0, -1},
		{SideLeft, Range{0, 0}, Range{0, 6}, 1, 0},
		{SideRight, Range{16, 16}, Range{0, 6}, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			e := NewEdge(tt.side, 17, 7)
			x, y := e.SpawnBounds()
			if x != tt.x || y != tt.y {
				t.Errorf("bounds = %v %v, want %v %v", x, y, tt.x, tt.y)
			}
			dx, dy := e.Gravity()
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("gravity = (%d, %d), want (%d, %d)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestParseSide(t *testing.T) {
	for _, name := range []string{"top", "bottom", "left", "right"} {
		s, err := ParseSide(name)
		if err != nil {
			t.Fatalf("ParseSide(%q): %v", name, err)
		}
		if s.String() != name {
			t.Errorf("roundtrip %q -> %q", name, s.String())
		}
	}
	if _, err := ParseSide("diagonal"); err == nil {
		t.Error("expected error for unknown side")
	}
}

func TestSplatWeightsSumToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		x := rng.Float64() * 17
		y := rng.Float64() * 7
		var sum float64
		for _, p := range Splat(x, y, 17, 7) {
			if p.Col < 0 || p.Col >= 17 || p.Row < 0 || p.Row >= 7 {
				t.Fatalf("splat point out of grid: %+v", p)
			}
			sum += p.Weight
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("weights at (%f, %f) sum to %f", x, y, sum)
		}
	}
}

func TestSplatGridLineAndCenter(t *testing.T) {
	pts := Splat(3, 2, 17, 7)
	if pts[0].Col != 3 || pts[0].Row != 2 || pts[0].Weight != 1 {
		t.Errorf("on-grid point should light one pixel fully, got %+v", pts[0])
	}
	for _, p := range pts[1:] {
		if p.Weight != 0 {
			t.Errorf("expected zero weight, got %+v", p)
		}
	}

	for _, p := range Splat(3.5, 2.5, 17, 7) {
		if math.Abs(p.Weight-0.25) > 1e-9 {
			t.Errorf("cell center weight = %f, want 0.25", p.Weight)
		}
	}
}

func TestSplatWrapsNeighbors(t *testing.T) {
	pts := Splat(16.5, 6.5, 17, 7)
	if pts[3].Col != 0 || pts[3].Row != 0 {
		t.Errorf("bottom-right neighbor = (%d, %d), want (0, 0)", pts[3].Col, pts[3].Row)
	}
}

func TestDrifterAdvanceWraps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	d := NewDrifter(6, 0, NewEdge(SideTop, 7, 7), 15, rng)
	d.Advance(2, 0)
	if math.Abs(d.X-1.0) > 1e-9 {
		t.Errorf("x = %f, want 1.0", d.X)
	}
	d.Advance(-1.5, -0.5)
	if math.Abs(d.X-6.5) > 1e-9 || math.Abs(d.Y-6.5) > 1e-9 {
		t.Errorf("position = (%f, %f), want (6.5, 6.5)", d.X, d.Y)
	}
}

func TestStepSizeRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	d := NewDrifter(0, 0, NewEdge(SideTop, 17, 7), 10, rng)
	for i := 0; i < 500; i++ {
		s := d.StepSize(rng)
		if s < -0.1-1e-12 || s >= 0.1 {
			t.Fatalf("step %f outside [-0.1, 0.1)", s)
		}
	}
}

func TestWalkRepeatsOneStepPerInterval(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	const steps = 6
	d := NewDrifter(8, 3, NewEdge(SideTop, 17, 7), steps, rng)

	x0, y0 := d.X, d.Y
	x1, y1 := d.Walk(rng)
	dx, dy := x1-x0, y1-y0
	for i := 1; i < steps; i++ {
		px, py := d.X, d.Y
		nx, ny := d.Walk(rng)
		if math.Abs((nx-px)-dx) > 1e-9 || math.Abs((ny-py)-dy) > 1e-9 {
			t.Fatalf("tick %d moved (%f, %f), want constant (%f, %f)", i, nx-px, ny-py, dx, dy)
		}
	}
	wx, wy, _, _ := d.Queued()
	if wx != 0 || wy != 0 {
		t.Errorf("queues should be drained after one interval, got %d, %d", wx, wy)
	}
}

func TestDropFallsAlongGravity(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	d := NewDrifter(4, 0, NewEdge(SideTop, 17, 7), 5, rng)
	for i := 0; i < 5; i++ {
		// No sideways drift
		d.Drop(rng, 0, 5)
	}
	if math.Abs(d.X-4) > 1e-9 {
		t.Errorf("x drifted to %f without drift chance", d.X)
	}
	want := d.DropIncrement * 5
	if math.Abs(d.Y-want) > 1e-9 {
		t.Errorf("y = %f, want %f", d.Y, want)
	}
}

func TestDropPrependsDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	d := NewDrifter(4, 0, NewEdge(SideTop, 17, 7), 5, rng)
	d.Drop(rng, 1, 5)
	_, _, qx, qy := d.Queued()
	if qx != qy {
		t.Errorf("drop queues out of step: x=%d y=%d", qx, qy)
	}
	if qx < 4 || qx > 8 {
		t.Errorf("queued drops = %d, want between 4 and 8", qx)
	}
}
