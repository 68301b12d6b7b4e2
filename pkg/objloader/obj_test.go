package objloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/irradiance/pathtracer/pkg/material"
)

func writeOBJ(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write test OBJ: %v", err)
	}
	return path
}

func TestLoadMissingFileReturnsEmptyMesh(t *testing.T) {
	mesh, err := Load("/nonexistent/path/does/not/exist.obj", material.PBRMaterial{})
	if err != nil {
		t.Fatalf("expected nil error for a missing file, got %v", err)
	}
	if mesh == nil {
		t.Fatal("expected a non-nil empty mesh")
	}
	if len(mesh.Objects) != 0 {
		t.Errorf("expected no objects from a missing file, got %d", len(mesh.Objects))
	}
}

func TestLoadTriangleFace(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	mesh, err := Load(path, material.PBRMaterial{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Objects) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(mesh.Objects))
	}
}

func TestLoadQuadFaceKeepsThreeCorners(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n")
	mesh, err := Load(path, material.PBRMaterial{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Objects) != 1 {
		t.Fatalf("expected 1 quadrilateral, got %d", len(mesh.Objects))
	}
}

func TestLoadRejectsMalformedFaceIndex(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 2 3\nf a b c\n")
	mesh, err := Load(path, material.PBRMaterial{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Objects) != 0 {
		t.Errorf("expected malformed faces to be skipped, got %d objects", len(mesh.Objects))
	}
}

func TestLoadRejectsOutOfBoundsVertexIndex(t *testing.T) {
	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nf 1 2 99\n")
	mesh, err := Load(path, material.PBRMaterial{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mesh.Objects) != 0 {
		t.Errorf("expected out-of-bounds face to be skipped, got %d objects", len(mesh.Objects))
	}
}
