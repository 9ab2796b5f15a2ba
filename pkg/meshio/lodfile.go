package meshio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/ashgrove-tools/nanite-lod/internal/nanite/cluster"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// lodMagic identifies the binary per-LOD mesh container (spec.md §6,
// "Persisted state"). lodVersion lets a future layout change be
// rejected cleanly rather than misparsed.
const (
	lodMagic   = "NLOD"
	lodVersion = uint8(1)
)

// LOD file format errors.
var (
	ErrInvalidLODMagic       = errors.New("meshio: invalid LOD magic")
	ErrUnsupportedLODVersion = errors.New("meshio: unsupported LOD version")
	ErrTruncatedLODData      = errors.New("meshio: truncated LOD data")
)

// SaveLOD writes one LOD level's mesh as a binary container: header,
// full vertex array, then every live triangle's indices, followed by
// its per-triangle normal and color blocks when m carries them.
// Removed (sentinel) triangles are skipped; the vertex array is
// written in full so surviving indices stay valid without remap.
func SaveLOD(path string, m *mesh.Mesh) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	live := liveTriangleIndices(m)
	hasNormals := len(m.Normals) == m.NumTriangles()
	hasColors := len(m.Colors) == m.NumTriangles()

	if _, err := w.WriteString(lodMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, lodVersion); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Vertices))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint32(len(live))); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, boolByte(hasNormals)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, boolByte(hasColors)); err != nil {
		return err
	}

	for _, v := range m.Vertices {
		if err := writeVec3(w, v); err != nil {
			return err
		}
	}
	for _, tri := range live {
		a, b, c := m.TriangleIndices(tri)
		if err := binary.Write(w, binary.LittleEndian, [3]uint32{a, b, c}); err != nil {
			return err
		}
	}
	if hasNormals {
		for _, tri := range live {
			if err := writeVec3(w, m.Normals[tri]); err != nil {
				return err
			}
		}
	}
	if hasColors {
		for _, tri := range live {
			if err := writeVec3(w, m.Colors[tri]); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// LoadLOD reads back a container written by SaveLOD.
func LoadLOD(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("meshio: opening %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	magic := make([]byte, len(lodMagic))
	if _, err := readFull(r, magic); err != nil {
		return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
	}
	if string(magic) != lodMagic {
		return nil, fmt.Errorf("meshio: %s: %w", path, ErrInvalidLODMagic)
	}

	var version uint8
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
	}
	if version != lodVersion {
		return nil, fmt.Errorf("meshio: %s: %w: %d", path, ErrUnsupportedLODVersion, version)
	}

	var vertexCount, triangleCount uint32
	var hasNormals, hasColors uint8
	for _, dst := range []any{&vertexCount, &triangleCount, &hasNormals, &hasColors} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
		}
	}

	m := &mesh.Mesh{
		Vertices: make([]vecmath.Vec3, vertexCount),
		Indices:  make([]uint32, triangleCount*3),
	}
	for i := range m.Vertices {
		v, err := readVec3(r)
		if err != nil {
			return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
		}
		m.Vertices[i] = v
	}
	for tri := uint32(0); tri < triangleCount; tri++ {
		var idx [3]uint32
		if err := binary.Read(r, binary.LittleEndian, &idx); err != nil {
			return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
		}
		base := tri * 3
		m.Indices[base], m.Indices[base+1], m.Indices[base+2] = idx[0], idx[1], idx[2]
	}
	if hasNormals != 0 {
		m.Normals = make([]vecmath.Vec3, triangleCount)
		for i := range m.Normals {
			v, err := readVec3(r)
			if err != nil {
				return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
			}
			m.Normals[i] = v
		}
	}
	if hasColors != 0 {
		m.Colors = make([]vecmath.Vec3, triangleCount)
		for i := range m.Colors {
			v, err := readVec3(r)
			if err != nil {
				return nil, fmt.Errorf("meshio: %s: %w", path, ErrTruncatedLODData)
			}
			m.Colors[i] = v
		}
	}
	return m, nil
}

// ClusterColor pairs a cluster with the RGB triple its metadata line
// records, decoupling meshio from how that color was derived.
type ClusterColor struct {
	Cluster cluster.Cluster
	R, G, B float32
}

// SaveMetadata writes one level's companion metadata file: a line of
// 9 floats per cluster, "min.x min.y min.z max.x max.y max.z r g b"
// (spec.md §6).
func SaveMetadata(path string, entries []ClusterColor) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("meshio: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, e := range entries {
		min, max := e.Cluster.Bounds.Min, e.Cluster.Bounds.Max
		_, err := fmt.Fprintf(w, "%s %s %s %s %s %s %s %s %s\n",
			f32(min.X), f32(min.Y), f32(min.Z),
			f32(max.X), f32(max.Y), f32(max.Z),
			f32(e.R), f32(e.G), f32(e.B))
		if err != nil {
			return err
		}
	}
	return w.Flush()
}

func liveTriangleIndices(m *mesh.Mesh) []int {
	out := make([]int, 0, m.NumTriangles())
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if !m.IsTriangleRemoved(tri) {
			out = append(out, tri)
		}
	}
	return out
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func writeVec3(w *bufio.Writer, v vecmath.Vec3) error {
	return binary.Write(w, binary.LittleEndian, [3]float32{v.X, v.Y, v.Z})
}

func readVec3(r *bufio.Reader) (vecmath.Vec3, error) {
	var raw [3]float32
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		return vecmath.Vec3{}, err
	}
	return vecmath.Vec3{X: raw[0], Y: raw[1], Z: raw[2]}, nil
}

func readFull(r *bufio.Reader, buf []byte) (int, error) {
	n := 0
	for n < len(buf) {
		k, err := r.Read(buf[n:])
		n += k
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
