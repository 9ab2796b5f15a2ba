// Package config handles build-pipeline configuration loading and management.
package config

// Config holds all LOD build settings.
type Config struct {
	Build   BuildConfig   `yaml:"build"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BuildConfig holds the tunable parameters of the partition/simplify/
// hierarchy pipeline (spec.md §4).
type BuildConfig struct {
	// LeafTriangleCount is the target triangle count per leaf cluster (L).
	LeafTriangleCount int `yaml:"leaf_triangle_count"`
	// MaxGroupSize is the max number of sibling clusters per group (G).
	MaxGroupSize int `yaml:"max_group_size"`
	// PartitionImbalance is the allowed vertex-weight imbalance ratio (u).
	PartitionImbalance float64 `yaml:"partition_imbalance"`
	// FlipThreshold is the minimum dot(oldNormal, newNormal) to accept a collapse.
	FlipThreshold float64 `yaml:"flip_threshold"`
	// MinTriangleArea rejects collapses that would produce a near-degenerate triangle.
	MinTriangleArea float64 `yaml:"min_triangle_area"`
	// VertexMergeDistance is the proximity threshold for MergeDuplicatedVertices.
	VertexMergeDistance float64 `yaml:"vertex_merge_distance"`
	// LeafPartitionSlack is the 20% slack factor applied to K when partitioning leaves.
	LeafPartitionSlack float64 `yaml:"leaf_partition_slack"`
}

// OutputConfig holds output file locations.
type OutputConfig struct {
	Directory string `yaml:"directory"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			LeafTriangleCount:   128,
			MaxGroupSize:        4,
			PartitionImbalance:  1.05,
			FlipThreshold:       0.1,
			MinTriangleArea:     1e-6,
			VertexMergeDistance: 1e-4,
			LeafPartitionSlack:  1.2,
		},
		Output: OutputConfig{
			Directory: ".",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
