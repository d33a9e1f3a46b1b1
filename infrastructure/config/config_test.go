package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8000", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "nasab-families", cfg.DynamoDBTable)
	assert.Equal(t, "fam_001", cfg.FamilyID)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("TABLE_NAME", "custom-table")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("ENABLE_EVENTS", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "custom-table", cfg.DynamoDBTable)
	assert.True(t, cfg.EnableMetrics)
	assert.True(t, cfg.EnableEvents)
}

func TestConfig_Validate_Production(t *testing.T) {
	cfg := &Config{Environment: "production", DynamoDBTable: "t", FamilyID: "f"}
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Environment: "production", FamilyID: "f"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Environment: "production", DynamoDBTable: "t"}
	assert.Error(t, cfg.Validate())
}
