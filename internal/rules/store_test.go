package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlantico-advisors/funding-cli/internal/model"
)

func TestLoadDefault(t *testing.T) {
	t.Parallel()

	store, err := LoadDefault()
	require.NoError(t, err)

	assert.Equal(t, "2026.1", store.Version())
	assert.Equal(t, []string{"PRR", "PT2030", "SITCE"}, store.Programs())

	pt, ok := store.Program(model.ProgramPT2030)
	require.True(t, ok)
	assert.Equal(t, 250_000.0, pt.MinInvestment)
	assert.Equal(t, 4.0, pt.MaxTRFPercent)
	assert.Equal(t, 85.0, pt.Funding.MaxRatePercent)
	assert.Equal(t, 50.0, pt.Funding.BaseRateBySize[model.SizeSmall])

	prr, ok := store.Program(model.ProgramPRR)
	require.True(t, ok)
	assert.Equal(t, 37.0, prr.MinGreenPercent)
	assert.Equal(t, 20.0, prr.MinDigitalPercent)

	sitce, ok := store.Program(model.ProgramSITCE)
	require.True(t, ok)
	assert.Equal(t, 3, sitce.MinJobsCreated)

	_, ok = store.Program(model.ProgramOther)
	assert.False(t, ok)
}

func TestLoadEmptyPathFallsBackToDefault(t *testing.T) {
	t.Parallel()

	store, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "2026.1", store.Version())
}

func TestLoadExternalFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.json")
	doc := `{
		"version": "2027.0-test",
		"programs": {
			"PT2030": {
				"min_investment": 100000,
				"max_trf_percent": 3.5,
				"funding": {
					"base_rate_by_size": {"small": 45},
					"max_rate_percent": 80
				}
			}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	store, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2027.0-test", store.Version())
	pt, ok := store.Program(model.ProgramPT2030)
	require.True(t, ok)
	assert.Equal(t, 100_000.0, pt.MinInvestment)
	assert.Equal(t, 45.0, pt.Funding.BaseRateBySize[model.SizeSmall])
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{
			name:    "malformed json",
			doc:     `{"version": "x",`,
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:    "missing version",
			doc:     `{"programs": {"PT2030": {}}}`,
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:    "missing programs",
			doc:     `{"version": "2026.1"}`,
			wantErr: ErrConfigurationInvalid,
		},
		{
			name:    "empty programs",
			doc:     `{"version": "2026.1", "programs": {}}`,
			wantErr: ErrConfigurationInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "rules.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.doc), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigurationNotFound)
}
