package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/salesdq/internal/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeParams(t *testing.T) {
	tests := []struct {
		name string
		d    quality.Descriptor
		want string
	}{
		{name: "null", d: quality.Descriptor{Kind: quality.KindNull, ThresholdPercent: 2.5}, want: "threshold 2.5%"},
		{name: "unique", d: quality.Descriptor{Kind: quality.KindUnique}, want: "-"},
		{name: "both bounds", d: quality.Descriptor{Kind: quality.KindRange, Min: quality.Float(0), Max: quality.Float(1)}, want: "min 0, max 1"},
		{name: "integer min", d: quality.Descriptor{Kind: quality.KindRange, Min: quality.Float(1), IntegerBounds: true}, want: "min 1 (integer)"},
		{name: "no bounds", d: quality.Descriptor{Kind: quality.KindRange}, want: "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describeParams(tt.d))
		})
	}
}

func TestGenerateChecksDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateChecksDocs(dir))

	out, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(out), "integer_bounds: true")
	assert.Contains(t, string(out), quality.ReportFileName)
}
