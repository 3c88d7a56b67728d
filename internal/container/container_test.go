package container

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	domain "placementcms/domain/roster"
	"placementcms/internal/config"
	"placementcms/internal/roster"
	"placementcms/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIngestor_Defaults(t *testing.T) {
	ingestor, err := NewIngestor(config.RosterConfig{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "all_or_nothing", ingestor.Policy().Name())
	field, ok := ingestor.FieldMap().Resolve("studentname")
	assert.True(t, ok)
	assert.Equal(t, domain.FieldName, field)
}

func TestNewIngestor_AliasesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.toml")
	require.NoError(t, os.WriteFile(path, []byte("[aliases]\nrollNo = [\"Hall Ticket\"]\n"), 0o600))

	ingestor, err := NewIngestor(config.RosterConfig{AcceptPolicy: "partial", AliasesFile: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, "partial", ingestor.Policy().Name())

	data := testkit.MustXLSX(
		[]interface{}{"Name", "Email", "Hall Ticket", "Branch", "BTech %", "Status"},
		testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82, "Eligible"),
	)
	result, err := ingestor.Ingest(context.Background(), roster.Upload{Filename: "a.xlsx", Data: data})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeAccepted, result.Outcome)
	assert.Equal(t, "21CS001", result.Records[0].RollNo)
}

func TestNewIngestor_MaxRows(t *testing.T) {
	data := testkit.MustXLSX(
		testkit.RosterHeader(),
		testkit.RosterRow("Asha Rao", "asha@x.com", "21CS001", "CSE", 82, "Eligible"),
		testkit.RosterRow("Ravi", "ravi@x.com", "21CS002", "ECE", 75, "Eligible"),
		testkit.RosterRow("Meena", "", "21CS003", "ME", 64, "Eligible"),
	)
	up := roster.Upload{Filename: "batch.xlsx", Data: data}

	limited, err := NewIngestor(config.RosterConfig{MaxRows: 2}, nil)
	require.NoError(t, err)
	_, err = limited.Ingest(context.Background(), up)
	assert.ErrorIs(t, err, roster.ErrTooManyRows)

	unlimited, err := NewIngestor(config.RosterConfig{MaxRows: 0}, nil)
	require.NoError(t, err)
	result, err := unlimited.Ingest(context.Background(), up)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeRejected, result.Outcome)
	assert.Equal(t, 4, result.Errors[0].Row)
}

func TestNewIngestor_InvalidSettings(t *testing.T) {
	_, err := NewIngestor(config.RosterConfig{AcceptPolicy: "sometimes"}, nil)
	assert.Error(t, err)

	_, err = NewIngestor(config.RosterConfig{DuplicatePolicy: "coin_flip"}, nil)
	assert.Error(t, err)

	conflict := filepath.Join(t.TempDir(), "conflict.toml")
	require.NoError(t, os.WriteFile(conflict, []byte("[aliases]\nrollNo = [\"Reg No\"]\nemail = [\"reg-no\"]\n"), 0o600))
	_, err = NewIngestor(config.RosterConfig{AliasesFile: conflict}, nil)
	assert.ErrorContains(t, err, "both normalize to")

	_, err = NewIngestor(config.RosterConfig{MaxRows: -1}, nil)
	assert.Error(t, err)

	_, err = NewIngestor(config.RosterConfig{AliasesFile: filepath.Join(t.TempDir(), "missing.yaml")}, nil)
	assert.Error(t, err)
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	c, err := New(&config.Config{}, nil)
	require.NoError(t, err)
	assert.NotNil(t, c.Ingestor)
	assert.Error(t, c.InitWithDatabase(context.Background(), nil))
	assert.NoError(t, c.Shutdown(context.Background()))
}
