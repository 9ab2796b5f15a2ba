// Package meshio loads and saves Mesh values: a simple OBJ-like text
// format for the pipeline's input mesh, and the binary per-LOD
// container plus metadata sidecar described by spec.md's persisted
// state (see lodfile.go). No third-party mesh-format library appears
// anywhere in the retrieval pack for either shape, so both stay on
// stdlib encoding.
package meshio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// ErrEmptyMesh is returned by SaveToFile/LoadFromFile when the mesh
// has no triangles to write, or the file describes none.
var ErrEmptyMesh = errors.New("meshio: mesh has no triangles")

// LoadFromFile reads the text format written by SaveToFile:
//
//	v x y z            one line per vertex, in order
//	f a b c            one line per triangle, 1-based vertex indices
//	n nx ny nz          optional per-triangle normal, follows its f line
//	c r g b             optional per-triangle color, follows its f line
//
// Lines starting with # are comments. Any other line is an error.
func LoadFromFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: opening %s: %w", path, err)
	}
	defer f.Close()

	m := &mesh.Mesh{Name: strings.TrimSuffix(filenameOf(path), ".mesh")}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("meshio: %s:%d: %w", path, lineNo, err)
			}
			m.Vertices = append(m.Vertices, v)
		case "f":
			a, b, c, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("meshio: %s:%d: %w", path, lineNo, err)
			}
			m.Indices = append(m.Indices, a, b, c)
		case "n":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("meshio: %s:%d: %w", path, lineNo, err)
			}
			m.Normals = append(m.Normals, n)
		case "c":
			c, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("meshio: %s:%d: %w", path, lineNo, err)
			}
			m.Colors = append(m.Colors, c)
		default:
			return nil, fmt.Errorf("meshio: %s:%d: unrecognized line %q", path, lineNo, fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("meshio: reading %s: %w", path, err)
	}
	if m.NumTriangles() == 0 {
		return nil, ErrEmptyMesh
	}
	return m, nil
}

// SaveToFile writes m in the text format LoadFromFile reads back.
// Normal/color lines are omitted entirely when m carries none.
func SaveToFile(path string, m *mesh.Mesh) error {
	if m.NumTriangles() == 0 {
		return ErrEmptyMesh
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range m.Vertices {
		fmt.Fprintf(w, "v %s %s %s\n", f32(v.X), f32(v.Y), f32(v.Z))
	}

	hasNormals := len(m.Normals) == m.NumTriangles()
	hasColors := len(m.Colors) == m.NumTriangles()
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		a, b, c := m.TriangleIndices(tri)
		fmt.Fprintf(w, "f %d %d %d\n", a+1, b+1, c+1)
		if hasNormals {
			n := m.Normals[tri]
			fmt.Fprintf(w, "n %s %s %s\n", f32(n.X), f32(n.Y), f32(n.Z))
		}
		if hasColors {
			c := m.Colors[tri]
			fmt.Fprintf(w, "c %s %s %s\n", f32(c.X), f32(c.Y), f32(c.Z))
		}
	}
	return w.Flush()
}

func f32(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

func parseVec3(fields []string) (vecmath.Vec3, error) {
	if len(fields) != 3 {
		return vecmath.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 32)
	if err != nil {
		return vecmath.Vec3{}, err
	}
	y, err := strconv.ParseFloat(fields[1], 32)
	if err != nil {
		return vecmath.Vec3{}, err
	}
	z, err := strconv.ParseFloat(fields[2], 32)
	if err != nil {
		return vecmath.Vec3{}, err
	}
	return vecmath.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}, nil
}

func parseFace(fields []string) (a, b, c uint32, err error) {
	if len(fields) != 3 {
		return 0, 0, 0, fmt.Errorf("expected 3 vertex indices, got %d", len(fields))
	}
	ia, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, 0, err
	}
	ib, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, 0, err
	}
	ic, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, 0, 0, err
	}
	if ia < 1 || ib < 1 || ic < 1 {
		return 0, 0, 0, fmt.Errorf("face indices are 1-based, got %d %d %d", ia, ib, ic)
	}
	return uint32(ia - 1), uint32(ib - 1), uint32(ic - 1), nil
}

func filenameOf(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
