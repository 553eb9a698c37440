package geometry

import (
	"math"
	"testing"
)

func TestPlaneNormalFromThreePoints(t *testing.T) {
	n, ok := PlaneNormalFromThreePoints(
		NewVector3(0, 0, 0),
		NewVector3(1, 0, 0),
		NewVector3(0, 1, 0),
	)
	if !ok {
		t.Fatal("PlaneNormalFromThreePoints reported collinear points")
	}
	if n != NewVector3(0, 0, 1) {
		t.Errorf("Normal failed: expected (0,0,1), got %v", n)
	}

	if _, ok := PlaneNormalFromThreePoints(
		NewVector3(0, 0, 0),
		NewVector3(1, 1, 1),
		NewVector3(2, 2, 2),
	); ok {
		t.Error("PlaneNormalFromThreePoints accepted collinear points")
	}
}

func TestFitPlaneLeastSquares(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 1),
		NewVector3(1, 0, 1),
		NewVector3(0, 1, 1),
		NewVector3(1, 1, 1),
		NewVector3(0.5, 0.5, 1),
	}

	plane, deviation, ok := FitPlaneLeastSquares(points)
	if !ok {
		t.Fatal("FitPlaneLeastSquares failed")
	}
	if math.Abs(plane.Normal.Z-1) > 1e-9 {
		t.Errorf("Normal failed: expected (0,0,1), got %v", plane.Normal)
	}
	if math.Abs(plane.Origin.Z-1) > 1e-10 {
		t.Errorf("Origin failed: expected z=1, got %v", plane.Origin)
	}
	if deviation > 1e-9 {
		t.Errorf("Deviation failed: expected 0, got %v", deviation)
	}
}

func TestFitPlaneLeastSquaresDeviation(t *testing.T) {
	points := []Vector3{
		NewVector3(0, 0, 0.1),
		NewVector3(2, 0, -0.1),
		NewVector3(0, 2, -0.1),
		NewVector3(2, 2, 0.1),
	}

	plane, deviation, ok := FitPlaneLeastSquares(points)
	if !ok {
		t.Fatal("FitPlaneLeastSquares failed")
	}
	if math.Abs(math.Abs(plane.Normal.Z)-1) > 1e-3 {
		t.Errorf("Normal failed: expected roughly (0,0,1), got %v", plane.Normal)
	}
	if math.Abs(deviation-0.1) > 1e-9 {
		t.Errorf("Deviation failed: expected 0.1, got %v", deviation)
	}
}

func TestFitPlaneLeastSquaresTooFewPoints(t *testing.T) {
	if _, _, ok := FitPlaneLeastSquares([]Vector3{{}, {X: 1}}); ok {
		t.Error("FitPlaneLeastSquares accepted two points")
	}
}

func TestPlaneBasisRoundTrip(t *testing.T) {
	plane := Plane{Origin: NewVector3(1, 2, 3), Normal: NewVector3(0, 0, 1)}
	u, v := plane.Basis(NewVector3(1, 1, 0))

	if math.Abs(u.Cross(v).Dot(plane.Normal)-1) > 1e-10 {
		t.Errorf("Basis is not right-handed: u=%v v=%v", u, v)
	}

	p := NewVector3(4, -1, 3)
	back := plane.From2D(plane.To2D(p, u, v), u, v)
	if back.Distance(p) > 1e-10 {
		t.Errorf("Round trip failed: expected %v, got %v", p, back)
	}
}
