package config

import "github.com/leapstack-labs/salesdq/internal/benchmark"

// Default configuration values.
const (
	DefaultDataFile   = "data/sales_records.csv"
	DefaultReportsDir = "reports"
	DefaultTargetType = "sqlite"
	DefaultDatabase   = "data/sales_warehouse.db"
	DefaultTable      = "Sales"
	DefaultSegment    = benchmark.DefaultSegment
	DefaultIndexName  = benchmark.DefaultIndexName
)

// ApplyDefaults applies default values to a ProjectConfig.
func (c *ProjectConfig) ApplyDefaults() {
	if c == nil {
		return
	}
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if c.ReportsDir == "" {
		c.ReportsDir = DefaultReportsDir
	}
	if c.Target == nil {
		c.Target = &TargetConfig{Type: DefaultTargetType, Database: DefaultDatabase}
	}
	ApplyTargetDefaults(c.Target)
	if c.Benchmark == nil {
		c.Benchmark = &BenchmarkConfig{}
	}
	ApplyBenchmarkDefaults(c.Benchmark)
	if c.Quality == nil {
		c.Quality = &QualityConfig{}
	}
	if c.Quality.Table == "" {
		c.Quality.Table = DefaultTable
	}
}

// ApplyTargetDefaults applies default values to a TargetConfig based on the target type.
func ApplyTargetDefaults(t *TargetConfig) {
	if t == nil {
		return
	}

	if t.Type == "" {
		t.Type = DefaultTargetType
	}
	if t.Schema == "" {
		t.Schema = DefaultSchemaForType(t.Type)
	}

	switch t.Type {
	case "sqlite":
		if t.Database == "" {
			t.Database = DefaultDatabase
		}
	case "postgres":
		if t.Port == 0 {
			t.Port = 5432
		}
	case "mysql":
		if t.Port == 0 {
			t.Port = 3306
		}
	}
}

// ApplyBenchmarkDefaults fills the default segment and index name.
func ApplyBenchmarkDefaults(b *BenchmarkConfig) {
	if b == nil {
		return
	}
	if b.Segment == "" {
		b.Segment = DefaultSegment
	}
	if b.IndexName == "" {
		b.IndexName = DefaultIndexName
	}
}
