package physics

import (
	"math"
	"testing"

	"github.com/san-kum/orbitsim/internal/vmath"
)

func TestEnergy(t *testing.T) {
	bodies := []Body[vmath.Vec2]{
		{ID: 1, Position: vmath.V2(0, 0), Velocity: vmath.V2(3, 4), Mass: 2},
		{ID: 2, Position: vmath.V2(10, 0), Velocity: vmath.V2(0, -1), Mass: 4},
	}

	if ke := KineticEnergy(bodies); ke != 27 {
		t.Errorf("KineticEnergy = %g, want 27", ke)
	}

	wantPE := -G * 2 * 4 / (10 + Smoothing)
	if pe := PotentialEnergy(bodies); !closeTo(pe, wantPE, 1e-12) {
		t.Errorf("PotentialEnergy = %g, want %g", pe, wantPE)
	}
	if total := TotalEnergy(bodies); !closeTo(total, 27+wantPE, 1e-12) {
		t.Errorf("TotalEnergy = %g, want %g", total, 27+wantPE)
	}

	if p := Momentum(bodies); vmath.Distance(p, vmath.V2(6, 4)) > 1e-12 {
		t.Errorf("Momentum = %v, want (6, 4)", p)
	}

	// only body 2 is off the origin: 4 * (10 * -1 - 0 * 0)
	if l := AngularMomentum(bodies); l != -40 {
		t.Errorf("AngularMomentum = %g, want -40", l)
	}
}

func TestEnergyEmpty(t *testing.T) {
	if e := TotalEnergy[vmath.Vec3](nil); e != 0 || math.Signbit(e) {
		t.Errorf("TotalEnergy(nil) = %g, want 0", e)
	}
	if p := Momentum[vmath.Vec3](nil); p.Len() != 0 {
		t.Errorf("Momentum(nil) = %v, want zero", p)
	}
}
