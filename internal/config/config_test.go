package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5, cfg.Fetch.MaxTries)
	assert.Equal(t, 900*time.Second, cfg.Fetch.Cooldown.Duration)
	assert.Equal(t, "friends/list", cfg.Fetch.Resource)
	assert.Equal(t, 200, cfg.Fetch.PageSize)
	assert.Equal(t, "screen_name", cfg.Fetch.IDField)
	assert.Equal(t, 1, *cfg.Graph.Threshold)
	assert.Equal(t, 3, *cfg.Graph.LabelThreshold)
	assert.Equal(t, "output.txt", cfg.Output.JSONPath)

	require.Len(t, cfg.Cohorts, 2)
	assert.Equal(t, "republicans", cfg.Cohorts[0].Plural)
	assert.Equal(t, "R", cfg.Analysis.BridgeFrom)
	assert.Equal(t, "D", cfg.Analysis.BridgeTo)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	data := `
[twitter]
consumer_key = "ck"
consumer_secret = "cs"

[fetch]
max_tries = 3
cooldown = "15m"
min_interval = "5s"

[[cohorts]]
label = "L"
name = "labour"
color = "red"

[[cohorts]]
label = "C"
name = "conservative"
plural = "tories"
color = "blue"

[[cohorts]]
label = "G"
name = "green"

[analysis]
bridge_from = "C"
bridge_to = "G"

[graph]
threshold = 0
`
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ck", cfg.Twitter.ConsumerKey)
	assert.Equal(t, 3, cfg.Fetch.MaxTries)
	assert.Equal(t, 15*time.Minute, cfg.Fetch.Cooldown.Duration)
	assert.Equal(t, 5*time.Second, cfg.Fetch.MinInterval.Duration)
	assert.Equal(t, 0, *cfg.Graph.Threshold)
	require.Len(t, cfg.Cohorts, 3)
	assert.Equal(t, "tories", cfg.Cohorts[1].Plural)
	assert.Equal(t, "greens", cfg.Cohorts[2].Plural)
	assert.Equal(t, "conservative", cfg.Cohorts[1].Name)
	assert.Equal(t, "C", cfg.Analysis.BridgeFrom)
	assert.Equal(t, "G", cfg.Analysis.BridgeTo)
}

func TestParse_ZeroCooldownKept(t *testing.T) {
	cfg, err := Parse([]byte("[fetch]\ncooldown = \"0s\"\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Fetch.Cooldown)
	assert.Equal(t, time.Duration(0), cfg.Fetch.Cooldown.Duration)

	cfg, err = Parse([]byte("[fetch]\nmax_tries = 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 900*time.Second, cfg.Fetch.Cooldown.Duration)
}

func TestParse_SingleCohort(t *testing.T) {
	cfg, err := Parse([]byte("[[cohorts]]\nlabel = \"I\"\nname = \"independent\"\n"))
	require.NoError(t, err)

	require.Len(t, cfg.Cohorts, 1)
	assert.Empty(t, cfg.Analysis.BridgeFrom)
	assert.Empty(t, cfg.Analysis.BridgeTo)

	_, err = Parse([]byte("[[cohorts]]\nlabel = \"I\"\nname = \"independent\"\n[analysis]\nbridge_from = \"I\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "set together")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`[fetch`))
	assert.Error(t, err)

	_, err = Parse([]byte("[fetch]\npage_size = 500\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 200")

	_, err = Parse([]byte("[fetch]\ncooldown = \"soon\"\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("[analysis]\nbridge_to = \"X\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bridge_to")

	_, err = Parse([]byte("[[cohorts]]\nlabel = \"A\"\nname = \"a\"\n[[cohorts]]\nlabel = \"A\"\nname = \"b\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("TWITTER_BEARER_TOKEN", "env-token")
	t.Setenv("MEMGRAPH_URI", "bolt://db:7687")
	t.Setenv("FETCH_MAX_TRIES", "2")
	t.Setenv("FETCH_COOLDOWN", "1s")

	cfg, err := Parse([]byte(`[twitter]
bearer_token = "file-token"
`))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Twitter.BearerToken)
	assert.Equal(t, "bolt://db:7687", cfg.Memgraph.URI)
	assert.Equal(t, 2, cfg.Fetch.MaxTries)
	assert.Equal(t, time.Second, cfg.Fetch.Cooldown.Duration)
}

func TestLoad_SampleFile(t *testing.T) {
	cfg, err := Load("../../config/config.toml")
	require.NoError(t, err)

	assert.Len(t, cfg.Cohorts, 2)
	assert.Equal(t, "network.dot", cfg.Output.DOTPath)
	assert.Equal(t, 1, *cfg.Graph.Threshold)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL.Duration)
}
