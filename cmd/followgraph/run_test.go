package main

import (
	"bytes"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/followgraph/internal/core/roster"
	"github.com/agenthands/followgraph/internal/twitter"
)

// countingListener accepts and immediately closes connections, counting them.
func countingListener(t *testing.T) (string, *atomic.Int32) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	var conns atomic.Int32
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			conns.Add(1)
			_ = c.Close()
		}
	}()
	return ln.Addr().String(), &conns
}

func clearCredentialEnv(t *testing.T) {
	for _, key := range []string{
		"TWITTER_CONSUMER_KEY", "TWITTER_CONSUMER_SECRET", "TWITTER_BEARER_TOKEN",
		"REDIS_ADDR", "MEMGRAPH_URI", "CONFIG_PATH",
	} {
		t.Setenv(key, "")
	}
}

func executeRun(t *testing.T, configBody, candidates string) (string, error) {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configBody), 0o644))
	candidatesFile := filepath.Join(dir, "candidates.txt")
	require.NoError(t, os.WriteFile(candidatesFile, []byte(candidates), 0o644))
	outPath := filepath.Join(dir, "output.txt")

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"run", "--config", cfgPath, "--candidates", candidatesFile, "--output", outPath})
	return outPath, rootCmd.Execute()
}

func TestRun_MalformedRosterFailsBeforeNetwork(t *testing.T) {
	clearCredentialEnv(t)
	addr, conns := countingListener(t)

	cfg := fmt.Sprintf("[cache]\nredis_addr = %q\n\n[memgraph]\nuri = \"bolt://%s\"\n", addr, addr)
	outPath, err := executeRun(t, cfg, "aliceR\n")

	require.Error(t, err)
	assert.ErrorIs(t, err, roster.ErrMalformedInputLine)
	assert.NotErrorIs(t, err, twitter.ErrMissingCredentials)
	assert.Contains(t, err.Error(), "line 1")
	assert.Equal(t, int32(0), conns.Load())
	assert.NoFileExists(t, outPath)
}

func TestRun_MalformedRosterWithCredentials(t *testing.T) {
	clearCredentialEnv(t)
	addr, conns := countingListener(t)

	cfg := fmt.Sprintf("[twitter]\nbearer_token = \"token\"\n\n[cache]\nredis_addr = %q\n", addr)
	outPath, err := executeRun(t, cfg, "alice R\nbob D extra\n")

	assert.ErrorIs(t, err, roster.ErrMalformedInputLine)
	assert.Contains(t, err.Error(), "line 2")
	assert.Equal(t, int32(0), conns.Load())
	assert.NoFileExists(t, outPath)
}

func TestRun_MissingCredentialsAfterValidRoster(t *testing.T) {
	clearCredentialEnv(t)

	outPath, err := executeRun(t, "", "alice R\nbob D\n")

	assert.ErrorIs(t, err, twitter.ErrMissingCredentials)
	assert.NoFileExists(t, outPath)
}
