package hierarchy

import (
	"fmt"
	"math"

	"github.com/ashgrove-tools/nanite-lod/internal/logger"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/cluster"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/graphpart"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/group"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/mesh"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/partition"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/simplify"
	"github.com/ashgrove-tools/nanite-lod/pkg/vecmath"
)

// Options holds every tunable of the outer loop, one field per
// internal/config.BuildConfig entry.
type Options struct {
	// LeafTriangleCount is the target triangle count per leaf cluster (L).
	LeafTriangleCount int
	// MaxGroupSize is the grouper's G parameter (spec.md §4.5.b): every
	// group holds at most this many sibling clusters.
	MaxGroupSize int
	// PartitionImbalance is the allowed vertex-weight imbalance ratio (u).
	PartitionImbalance float64
	// LeafPartitionSlack is the 20% slack applied to both the leaf
	// partitioner's part count and the two-stage oversized-cluster
	// refinement.
	LeafPartitionSlack float64
	// Simplify carries the QEM collapse tunables through to every
	// group's simplification pass.
	Simplify simplify.Options
}

// DefaultOptions mirrors internal/config.Default's Build section.
func DefaultOptions() Options {
	return Options{
		LeafTriangleCount:  128,
		MaxGroupSize:       4,
		PartitionImbalance: 1.05,
		LeafPartitionSlack: 1.2,
		Simplify:           simplify.DefaultOptions(),
	}
}

// Build runs the outer loop of spec.md §4.5 to completion: partition
// m0 into leaf clusters, then repeatedly group, simplify, and
// re-split until a single root cluster remains.
func Build(m0 *mesh.Mesh, opts Options, p graphpart.Partitioner) (*NaniteMesh, error) {
	leafTarget := opts.LeafTriangleCount
	if leafTarget <= 0 {
		return nil, fmt.Errorf("hierarchy: leafTarget must be positive, got %d", leafTarget)
	}
	maxGroupSize := opts.MaxGroupSize
	if maxGroupSize < 2 {
		maxGroupSize = 2
	}
	imbalance := opts.PartitionImbalance
	if imbalance <= 0 {
		imbalance = 1.05
	}
	refinementSlack := opts.LeafPartitionSlack
	if refinementSlack <= 0 {
		refinementSlack = 1.2
	}

	leafClusters, err := buildLeafClusters(m0, leafTarget, refinementSlack, imbalance, p)
	if err != nil {
		return nil, err
	}
	if len(leafClusters) == 0 {
		return nil, fmt.Errorf("hierarchy: no triangles to build a hierarchy from")
	}

	nm := &NaniteMesh{
		LODMeshes: []*mesh.Mesh{m0},
		NodeLists: make([][]NaniteNode, 1),
	}
	leafNodes := make([]NaniteNode, len(leafClusters))
	for i, c := range leafClusters {
		leafNodes[i] = NewNode(c)
	}
	nm.NodeLists[0] = leafNodes
	nm.Stats.Levels = append(nm.Stats.Levels, LevelStats{
		LODIndex:      0,
		TriangleCount: liveTriangleCount(m0),
		ClusterCount:  len(leafClusters),
		VertexCount:   m0.NumVertices(),
	})

	for {
		level := len(nm.NodeLists) - 1
		srcMesh := nm.LODMeshes[level]
		childNodes := nm.NodeLists[level]
		childClusters := make([]cluster.Cluster, len(childNodes))
		for i, n := range childNodes {
			childClusters[i] = n.Cluster
		}

		groupTimer := logger.StartPhase(logger.PhaseGroup, level)
		groups, err := group.Groups(srcMesh, childClusters, maxGroupSize, p)
		if err != nil || len(groups) == 0 {
			// PartitionerFailure recovered locally (spec.md §7): the
			// current level becomes the root rather than a fatal error.
			if err != nil {
				logger.Recovered(logger.PhaseGroup, level, err)
			}
			finalizeRoot(nm, srcMesh, len(childNodes))
			break
		}
		groupTimer.Done(liveTriangleCount(srcMesh), len(groups))

		simplifyTimer := logger.StartPhase(logger.PhaseSimplify, level)
		groupOutputs := make([]*mesh.Mesh, len(groups))
		simplifyOpts := opts.Simplify
		simplifyOpts.Organize = false
		rejectedGuards := 0
		for gi, grp := range groups {
			sub := assembleGroupSubMesh(srcMesh, childClusters, grp.ClusterIndices)
			target := groupTriangleCount(childClusters, grp.ClusterIndices) / 2
			res := simplify.Simplify(sub, target, simplifyOpts)
			groupOutputs[gi] = res.Mesh
			rejectedGuards += res.RejectedGuards
		}
		simplifyTimer.Done(liveTriangleCount(srcMesh), len(groups))
		logger.GuardRejected(logger.PhaseSimplify, level, rejectedGuards)

		coarseMesh := assembleCoarseMesh(srcMesh, groupOutputs)
		triangleRemap, _ := coarseMesh.CompactWithRemap()

		if len(groups) == 1 || !isManifold(coarseMesh) {
			if len(groups) > 1 {
				logger.Recovered(logger.PhaseHierarchy, level, fmt.Errorf("hierarchy: coarsened mesh is non-manifold"))
			}
			finalizeRoot(nm, coarseMesh, len(childNodes))
			break
		}

		newLOD := level + 1
		var parentNodes []NaniteNode
		for gi, grp := range groups {
			newTriangles := translateGroupTriangles(groupOutputs[gi], triangleRemap)
			if len(newTriangles) == 0 {
				continue
			}
			subClusters, err := partition.Partition(newLOD, coarseMesh, newTriangles, partition.Options{K: 2, Imbalance: imbalance}, p)
			if err != nil || len(subClusters) == 0 {
				subClusters = []cluster.Cluster{cluster.New(newLOD, coarseMesh, newTriangles)}
			}
			for _, sc := range subClusters {
				parentNodes = append(parentNodes, NewParent(sc, grp.ClusterIndices))
			}
		}

		nm.LODMeshes = append(nm.LODMeshes, coarseMesh)
		nm.NodeLists = append(nm.NodeLists, parentNodes)
		nm.Stats.Levels = append(nm.Stats.Levels, LevelStats{
			LODIndex:      newLOD,
			TriangleCount: liveTriangleCount(coarseMesh),
			ClusterCount:  len(parentNodes),
			VertexCount:   coarseMesh.NumVertices(),
		})
	}

	return nm, nil
}

// buildLeafClusters implements spec.md §4.5 step 1: an initial
// K=ceil(|triangles|/L * slack) partition, then a second pass that
// re-partitions any cluster still exceeding L.
func buildLeafClusters(m0 *mesh.Mesh, leafTarget int, slack, imbalance float64, p graphpart.Partitioner) ([]cluster.Cluster, error) {
	total := liveTriangleCount(m0)
	if total == 0 {
		return nil, nil
	}

	k := int(math.Ceil(float64(total) / float64(leafTarget) * slack))
	if k < 1 {
		k = 1
	}
	initial, err := partition.Partition(0, m0, nil, partition.Options{K: k, Imbalance: imbalance}, p)
	if err != nil {
		return nil, fmt.Errorf("hierarchy: leaf partition: %w", err)
	}

	refined := make([]cluster.Cluster, 0, len(initial))
	for _, c := range initial {
		if c.Size() <= leafTarget {
			refined = append(refined, c)
			continue
		}
		subK := int(math.Ceil(float64(c.Size()) / float64(leafTarget) * slack))
		if subK < 2 {
			subK = 2
		}
		subClusters, err := partition.Partition(0, m0, c.Triangles, partition.Options{K: subK, Imbalance: imbalance}, p)
		if err != nil {
			refined = append(refined, c)
			continue
		}
		refined = append(refined, subClusters...)
	}
	return refined, nil
}

// groupTriangleCount sums the triangle count of every cluster named by
// indices.
func groupTriangleCount(clusters []cluster.Cluster, indices []int) int {
	n := 0
	for _, ci := range indices {
		n += clusters[ci].Size()
	}
	return n
}

// assembleGroupSubMesh builds a sub-mesh over srcMesh's full vertex
// and triangle index space containing only the triangles owned by the
// clusters named by indices; every other slot is the removed
// sentinel. Preserving the original numbering lets every group's
// simplified output be compared position-for-position in
// assembleCoarseMesh (spec.md §4.5.c).
func assembleGroupSubMesh(srcMesh *mesh.Mesh, clusters []cluster.Cluster, indices []int) *mesh.Mesh {
	n := srcMesh.NumTriangles()
	sub := &mesh.Mesh{
		Vertices: make([]vecmath.Vec3, len(srcMesh.Vertices)),
		Indices:  make([]uint32, n*3),
	}
	for i := range sub.Vertices {
		sub.Vertices[i] = mesh.InvalidVertex
	}
	for i := range sub.Indices {
		sub.Indices[i] = mesh.InvalidIndex
	}
	hasColors := len(srcMesh.Colors) == n
	if hasColors {
		sub.Colors = make([]vecmath.Vec3, n)
	}

	for _, ci := range indices {
		for _, tri := range clusters[ci].Triangles {
			a, b, c := srcMesh.TriangleIndices(tri)
			base := tri * 3
			sub.Indices[base], sub.Indices[base+1], sub.Indices[base+2] = a, b, c
			sub.Vertices[a] = srcMesh.Vertices[a]
			sub.Vertices[b] = srcMesh.Vertices[b]
			sub.Vertices[c] = srcMesh.Vertices[c]
			if hasColors {
				sub.Colors[tri] = srcMesh.Colors[tri]
			}
		}
	}
	return sub
}

// assembleCoarseMesh implements spec.md §4.5.d: a vertex at index i
// survives if some group's simplified output left it non-sentinel at
// that same index; a triangle slot survives if some group's output
// left it live. Groups never disagree on a surviving vertex's
// position because every vertex shared between groups lies on both
// groups' sub-mesh boundary and is therefore fixed by the simplifier.
func assembleCoarseMesh(srcMesh *mesh.Mesh, groupOutputs []*mesh.Mesh) *mesh.Mesh {
	n := srcMesh.NumTriangles()
	out := &mesh.Mesh{
		Vertices: make([]vecmath.Vec3, len(srcMesh.Vertices)),
		Indices:  make([]uint32, n*3),
		Colors:   make([]vecmath.Vec3, n),
	}
	for i := range out.Vertices {
		out.Vertices[i] = mesh.InvalidVertex
	}
	for i := range out.Indices {
		out.Indices[i] = mesh.InvalidIndex
	}

	anyColors := false
	for _, g := range groupOutputs {
		for v, pos := range g.Vertices {
			if pos != mesh.InvalidVertex {
				out.Vertices[v] = pos
			}
		}
		for tri := 0; tri < g.NumTriangles(); tri++ {
			if g.IsTriangleRemoved(tri) {
				continue
			}
			a, b, c := g.TriangleIndices(tri)
			base := tri * 3
			out.Indices[base], out.Indices[base+1], out.Indices[base+2] = a, b, c
			if len(g.Colors) == g.NumTriangles() {
				out.Colors[tri] = g.Colors[tri]
				anyColors = true
			}
		}
	}
	if !anyColors {
		out.Colors = nil
	}
	out.ComputeNormals()
	return out
}

// translateGroupTriangles maps a group's live triangle slots (indexed
// in the pre-compaction global numbering shared by every group) to
// their post-compaction slot in the assembled coarse mesh.
func translateGroupTriangles(groupOutput *mesh.Mesh, triangleRemap []int) []int {
	var out []int
	for tri := 0; tri < groupOutput.NumTriangles(); tri++ {
		if groupOutput.IsTriangleRemoved(tri) {
			continue
		}
		if tri >= len(triangleRemap) {
			continue
		}
		if newIdx := triangleRemap[tri]; newIdx >= 0 {
			out = append(out, newIdx)
		}
	}
	return out
}

// isManifold reports whether every edge of m's live triangles is
// shared by at most 2 triangles (spec.md §4.5.f).
func isManifold(m *mesh.Mesh) bool {
	usage := make(map[mesh.Edge]int)
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if m.IsTriangleRemoved(tri) {
			continue
		}
		e0, e1, e2 := m.TriangleEdges(tri)
		usage[e0]++
		usage[e1]++
		usage[e2]++
	}
	for _, count := range usage {
		if count > 2 {
			return false
		}
	}
	return true
}

// finalizeRoot implements spec.md §4.5.f: rootMesh becomes the
// coarsest LOD, covered by a single root cluster, with a single root
// node whose children are every node of the level being closed over.
func finalizeRoot(nm *NaniteMesh, rootMesh *mesh.Mesh, prevLevelSize int) {
	lod := len(nm.LODMeshes)
	if len(nm.LODMeshes) == 0 || nm.LODMeshes[len(nm.LODMeshes)-1] != rootMesh {
		nm.LODMeshes = append(nm.LODMeshes, rootMesh)
	} else {
		lod--
	}

	triangles := liveTriangles(rootMesh)
	rootCluster := cluster.New(lod, rootMesh, triangles)
	childIdx := make([]int, prevLevelSize)
	for i := range childIdx {
		childIdx[i] = i
	}
	rootNode := NewParent(rootCluster, childIdx)

	nm.NodeLists = append(nm.NodeLists, []NaniteNode{rootNode})
	nm.Stats.Levels = append(nm.Stats.Levels, LevelStats{
		LODIndex:      lod,
		TriangleCount: len(triangles),
		ClusterCount:  1,
		VertexCount:   liveVertexCount(rootMesh),
	})
}

func liveTriangles(m *mesh.Mesh) []int {
	out := make([]int, 0, m.NumTriangles())
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if !m.IsTriangleRemoved(tri) {
			out = append(out, tri)
		}
	}
	return out
}

func liveTriangleCount(m *mesh.Mesh) int {
	n := 0
	for tri := 0; tri < m.NumTriangles(); tri++ {
		if !m.IsTriangleRemoved(tri) {
			n++
		}
	}
	return n
}

func liveVertexCount(m *mesh.Mesh) int {
	n := 0
	for _, v := range m.Vertices {
		if v != mesh.InvalidVertex {
			n++
		}
	}
	return n
}
