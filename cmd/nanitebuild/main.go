// nanitebuild is a single-purpose CLI driver for the LOD build
// pipeline: load a mesh, build its cluster hierarchy, write one mesh
// file and one metadata sidecar per LOD level.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ashgrove-tools/nanite-lod/internal/config"
	"github.com/ashgrove-tools/nanite-lod/internal/logger"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/graphpart"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/hierarchy"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/simplify"
	"github.com/ashgrove-tools/nanite-lod/internal/nanite/vizcolor"
	"github.com/ashgrove-tools/nanite-lod/pkg/meshio"
)

const usage = `nanitebuild - build a cluster LOD hierarchy from a mesh

Usage:
  nanitebuild [flags] <input.mesh>

Flags:
  -config string           Path to config file
  -out string               Output directory for LOD files
  -leaf-triangles int        Leaf cluster triangle threshold (L)
  -debug                     Enable debug logging

Writes <out>/lod<N>.mesh and <out>/lod<N>.meta per LOD level, finest
(N=0) to coarsest.`

func main() {
	config.ParseFlags()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(1)
	}
	inputPath := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "nanitebuild: loading config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "nanitebuild: initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(inputPath, cfg); err != nil {
		logger.Error("build failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(inputPath string, cfg *config.Config) error {
	m0, err := meshio.LoadFromFile(inputPath)
	if err != nil {
		return fmt.Errorf("nanitebuild: loading %s: %w", inputPath, err)
	}
	logger.Info("loaded input mesh",
		zap.String("path", inputPath),
		zap.Int("triangles", m0.NumTriangles()),
		zap.Int("vertices", m0.NumVertices()))

	if cfg.Build.VertexMergeDistance > 0 {
		m0.MergeDuplicatedVertices(float32(cfg.Build.VertexMergeDistance))
	}

	opts := hierarchy.Options{
		LeafTriangleCount:  cfg.Build.LeafTriangleCount,
		MaxGroupSize:       cfg.Build.MaxGroupSize,
		PartitionImbalance: cfg.Build.PartitionImbalance,
		LeafPartitionSlack: cfg.Build.LeafPartitionSlack,
		Simplify: simplify.Options{
			FlipThreshold:   float32(cfg.Build.FlipThreshold),
			MinTriangleArea: float32(cfg.Build.MinTriangleArea),
			Organize:        true,
		},
	}
	nm, err := hierarchy.Build(m0, opts, graphpart.Default{})
	if err != nil {
		return fmt.Errorf("nanitebuild: building hierarchy: %w", err)
	}

	for _, level := range nm.Stats.Levels {
		logger.Info("hierarchy level",
			zap.String("phase", logger.PhaseHierarchy),
			zap.Int("lod", level.LODIndex),
			zap.Int("triangle_count", level.TriangleCount),
			zap.Int("cluster_count", level.ClusterCount),
			zap.Int("vertex_count", level.VertexCount))
	}

	if err := os.MkdirAll(cfg.Output.Directory, 0o755); err != nil {
		return fmt.Errorf("nanitebuild: creating output directory: %w", err)
	}
	return writeNaniteMesh(cfg.Output.Directory, nm)
}

func writeNaniteMesh(outDir string, nm *hierarchy.NaniteMesh) error {
	for lod, m := range nm.LODMeshes {
		meshPath := filepath.Join(outDir, fmt.Sprintf("lod%d.mesh", lod))
		if err := meshio.SaveLOD(meshPath, m); err != nil {
			return fmt.Errorf("nanitebuild: writing %s: %w", meshPath, err)
		}

		entries := make([]meshio.ClusterColor, len(nm.NodeLists[lod]))
		for i, node := range nm.NodeLists[lod] {
			r, g, b := vizcolor.ForCluster(node.ID)
			entries[i] = meshio.ClusterColor{Cluster: node.Cluster, R: r, G: g, B: b}
		}
		metaPath := filepath.Join(outDir, fmt.Sprintf("lod%d.meta", lod))
		if err := meshio.SaveMetadata(metaPath, entries); err != nil {
			return fmt.Errorf("nanitebuild: writing %s: %w", metaPath, err)
		}

		logger.Info("wrote LOD level", zap.Int("lod", lod), zap.String("mesh", meshPath), zap.String("meta", metaPath))
	}
	return nil
}
