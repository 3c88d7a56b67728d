package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"placementcms/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/placement?sslmode=disable")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "all_or_nothing", cfg.Roster.AcceptPolicy)
	assert.Equal(t, "last_column_wins", cfg.Roster.DuplicatePolicy)
	assert.False(t, cfg.Roster.CommitOnUpload)
	assert.Equal(t, 100000, cfg.Roster.MaxRows)
	assert.Equal(t, 70.0, cfg.Stats.EligibilityThreshold)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/placement")
	t.Setenv("PORT", "9090")
	t.Setenv("ROSTER_ACCEPT_POLICY", "partial")
	t.Setenv("ROSTER_DUPLICATE_POLICY", "reject")
	t.Setenv("ROSTER_COMMIT_ON_UPLOAD", "true")
	t.Setenv("ROSTER_MAX_ROWS", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://tpo.college.edu")
	t.Setenv("ELIGIBILITY_THRESHOLD", "65")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "partial", cfg.Roster.AcceptPolicy)
	assert.Equal(t, "reject", cfg.Roster.DuplicatePolicy)
	assert.True(t, cfg.Roster.CommitOnUpload)
	assert.Equal(t, 0, cfg.Roster.MaxRows)
	assert.Equal(t, []string{"http://localhost:3000", "https://tpo.college.edu"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 65.0, cfg.Stats.EligibilityThreshold)
}

func TestLoad_InvalidPolicy(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/placement")
	t.Setenv("ROSTER_ACCEPT_POLICY", "best_effort")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRoster_NoDatabaseNeeded(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ROSTER_DUPLICATE_POLICY", "first_column_wins")

	roster, err := LoadRoster()
	require.NoError(t, err)
	assert.Equal(t, "first_column_wins", roster.DuplicatePolicy)
}

func TestLoadAliases(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "aliases.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[aliases]
rollNo = ["Enrollment No", "Reg. No"]
btechPercentage = ["CGPA"]
`), 0o600))

	got, err := LoadAliases(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Enrollment No": "rollNo",
		"Reg. No":       "rollNo",
		"CGPA":          "btechPercentage",
	}, got)

	yamlPath := filepath.Join(dir, "aliases.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("aliases:\n  email:\n    - Mail ID\n"), 0o600))

	got, err = LoadAliases(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Mail ID": "email"}, got)
}

func TestLoadAliases_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadAliases(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	jsonPath := filepath.Join(dir, "aliases.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{}`), 0o600))
	_, err = LoadAliases(jsonPath)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	conflict := filepath.Join(dir, "conflict.yml")
	require.NoError(t, os.WriteFile(conflict, []byte("aliases:\n  name: [Student]\n  rollNo: [Student]\n"), 0o600))
	_, err = LoadAliases(conflict)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("[aliases\n"), 0o600))
	_, err = LoadAliases(broken)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
