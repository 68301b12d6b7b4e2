// Package objloader parses Wavefront OBJ files (vertices and triangle/quad
// faces only) into a geometry.Mesh, per spec §6's "OBJ meshes (vertices +
// faces only, triangles or quads supported)". A missing or unreadable file
// degrades to an empty mesh rather than an error (spec §4.9/§7).
package objloader

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/irradiance/pathtracer/pkg/core"
	"github.com/irradiance/pathtracer/pkg/geometry"
	"github.com/irradiance/pathtracer/pkg/material"
)

// Load reads path and builds a Mesh, applying defaultMaterial to every face.
// A missing file returns an empty, non-nil Mesh and a nil error, matching
// the original loader's "return objects" on a bad ifstream rather than
// surfacing a failure (spec §4.9: "a missing OBJ yields an empty mesh").
func Load(path string, defaultMaterial material.PBRMaterial) (*geometry.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return geometry.NewMesh(nil), nil
	}
	defer file.Close()

	var vertices []core.Vec3
	var objects []geometry.Object

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}

		switch {
		case tokens[0] == "v" && len(tokens) >= 4:
			x, xerr := strconv.ParseFloat(tokens[1], 64)
			y, yerr := strconv.ParseFloat(tokens[2], 64)
			z, zerr := strconv.ParseFloat(tokens[3], 64)
			if xerr != nil || yerr != nil || zerr != nil {
				continue
			}
			vertices = append(vertices, core.NewVec3(x, y, z))

		case tokens[0] == "f" && len(tokens) == 4:
			i0, ok0 := faceIndex(tokens[1])
			i1, ok1 := faceIndex(tokens[2])
			i2, ok2 := faceIndex(tokens[3])
			if !ok0 || !ok1 || !ok2 {
				continue
			}
			if !inBounds(vertices, i0, i1, i2) {
				continue
			}
			objects = append(objects, geometry.NewTriangle(
				vertices[i0], vertices[i1], vertices[i2],
				core.NewVec2(0, 0), core.NewVec2(0, 1), core.NewVec2(1, 1),
				defaultMaterial,
			))

		case tokens[0] == "f" && len(tokens) == 5:
			// Quad faces: consecutive vertices around the polygon, per the
			// OBJ spec; the original renderer's loader keeps only the
			// first, second, and fourth vertex to build a Quadrilateral
			// (origin + two edges), discarding the third corner as
			// redundant for a planar parallelogram.
			i0, ok0 := faceIndex(tokens[1])
			i1, ok1 := faceIndex(tokens[2])
			i3, ok3 := faceIndex(tokens[4])
			if !ok0 || !ok1 || !ok3 {
				continue
			}
			if !inBounds(vertices, i0, i1, i3) {
				continue
			}
			edge1 := vertices[i1].Subtract(vertices[i0])
			edge2 := vertices[i3].Subtract(vertices[i0])
			objects = append(objects, geometry.NewQuadrilateral(vertices[i0], edge1, edge2, defaultMaterial))
		}
	}

	if err := scanner.Err(); err != nil {
		return geometry.NewMesh(objects), nil
	}

	return geometry.NewMesh(objects), nil
}

// faceIndex parses an OBJ face-vertex token ("3", "3/1", "3/1/2", "3//2")
// and returns its vertex index, converted to 0-based.
func faceIndex(token string) (int, bool) {
	parts := strings.SplitN(token, "/", 2)
	n, err := strconv.Atoi(parts[0])
	if err != nil || n == 0 {
		return 0, false
	}
	return n - 1, true
}

func inBounds(vertices []core.Vec3, indices ...int) bool {
	for _, i := range indices {
		if i < 0 || i >= len(vertices) {
			return false
		}
	}
	return true
}
