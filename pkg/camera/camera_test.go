package camera

import (
	"math"
	"math/rand"
	"testing"
)

func TestSetYawPitchClampsPitch(t *testing.T) {
	cam := New(10, 10)
	cam.SetYawPitch(0, math.Pi) // far beyond MaxPitch
	if cam.Pitch != MaxPitch {
		t.Errorf("expected pitch clamped to %f, got %f", MaxPitch, cam.Pitch)
	}

	cam.SetYawPitch(0, -math.Pi)
	if cam.Pitch != MinPitch {
		t.Errorf("expected pitch clamped to %f, got %f", MinPitch, cam.Pitch)
	}
}

func TestDirectionIsUnitLength(t *testing.T) {
	cam := New(10, 10)
	cam.SetYawPitch(0.7, 0.4)
	d := cam.Direction()
	if math.Abs(d.Length()-1) > 1e-9 {
		t.Errorf("expected unit direction, got length %f", d.Length())
	}
}

func TestRebuildRaysClearsDirty(t *testing.T) {
	cam := New(4, 4)
	if !cam.Dirty {
		t.Fatal("expected a new camera to start dirty")
	}
	cam.RebuildRays()
	if cam.Dirty {
		t.Error("expected RebuildRays to clear Dirty")
	}
}

func TestPrimaryRayWithoutDOFUsesCameraOrigin(t *testing.T) {
	cam := New(4, 4)
	cam.RebuildRays()
	random := rand.New(rand.NewSource(1))

	ray := cam.PrimaryRay(0, 0, random)
	if ray.Origin != cam.Position {
		t.Errorf("expected ray origin at camera position without DOF, got %v", ray.Origin)
	}
	if math.Abs(ray.Direction.Length()-1) > 1e-6 {
		t.Errorf("expected unit direction, got length %f", ray.Direction.Length())
	}
}

func TestPrimaryRayWithDOFOffsetsOrigin(t *testing.T) {
	cam := New(4, 4)
	cam.DOFEnabled = true
	cam.SetAperture(0.5)
	cam.SetFocalDistance(2)
	cam.RebuildRays()
	random := rand.New(rand.NewSource(1))

	sawOffset := false
	for i := 0; i < 20; i++ {
		ray := cam.PrimaryRay(2, 2, random)
		if ray.Origin.Subtract(cam.Position).Length() > 1e-6 {
			sawOffset = true
		}
	}
	if !sawOffset {
		t.Error("expected at least one DOF sample to offset the ray origin from the camera position")
	}
}

func TestSetApertureFloorsAtEpsilon(t *testing.T) {
	cam := New(4, 4)
	cam.SetAperture(-10)
	if cam.ApertureRadius != epsilon {
		t.Errorf("expected aperture floored to %f, got %f", epsilon, cam.ApertureRadius)
	}
}
