package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.True(t, cfg.ValidateData())
	assert.False(t, cfg.Processing.RemoveDuplicates)
	assert.Equal(t, "standard", cfg.Processing.DefaultReportType)
	assert.True(t, cfg.IncludeCharts())
	assert.True(t, cfg.AutoAdjustColumns())
	assert.True(t, cfg.FreezeHeaderRow())
	assert.True(t, cfg.ApplyStyling())
	assert.Equal(t, 10, cfg.Excel.MaxChartItems)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "standard", cfg.Processing.DefaultReportType)
	assert.True(t, cfg.ValidateData())
}

func TestLoadFromFile(t *testing.T) {
	content := `
processing:
  validate_data: false
  remove_duplicates: true
  default_report_type: detailed
  include_charts: false
sort:
  due_date: true
excel:
  apply_styling: false
  max_chart_items: 5
logging:
  level: debug
`
	path := writeConfig(t, content)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.ValidateData())
	assert.True(t, cfg.Processing.RemoveDuplicates)
	assert.Equal(t, "detailed", cfg.Processing.DefaultReportType)
	assert.False(t, cfg.IncludeCharts())
	assert.True(t, cfg.Sort.DueDate)
	assert.False(t, cfg.Sort.OrderNumber)
	assert.False(t, cfg.ApplyStyling())
	assert.Equal(t, 5, cfg.Excel.MaxChartItems)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unspecified default-true options keep their defaults.
	assert.True(t, cfg.AutoAdjustColumns())
	assert.True(t, cfg.FreezeHeaderRow())
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "unknown report type",
			content: "processing:\n  default_report_type: quarterly\n",
		},
		{
			name:    "unknown log level",
			content: "logging:\n  level: chatty\n",
		},
		{
			name:    "negative chart items",
			content: "excel:\n  max_chart_items: -3\n",
		},
		{
			name:    "malformed yaml",
			content: "processing: [not a mapping\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
