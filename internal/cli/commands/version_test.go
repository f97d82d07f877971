package commands

import (
	"bytes"
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/cookbook/internal/cli/testutil"
)

func TestNewVersionCommand(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantOut []string
	}{
		{
			name:    "default version",
			version: "0.1.0",
			wantOut: []string{"CookBook v0.1.0", runtime.Version()},
		},
		{
			name:    "custom version",
			version: "1.2.3",
			wantOut: []string{"CookBook v1.2.3"},
		},
		{
			name:    "dev version",
			version: "dev",
			wantOut: []string{"CookBook vdev"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.SetupProject(t, "")
			cmd := NewVersionCommand(tt.version, "today", "abc123")
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{})

			require.NoError(t, cmd.Execute())

			out := buf.String()
			for _, want := range tt.wantOut {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got: %s", want, out)
				}
			}
		})
	}
}

func TestNewVersionCommand_JSON(t *testing.T) {
	testutil.SetupProject(t, "output: json\n")
	loadTestConfig(t)

	cmd := NewVersionCommand("1.0.0", "2026-01-01", "abc123")
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	var info BuildInfo
	require.NoError(t, json.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, "1.0.0", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}
