package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/henderiw/rangeset/internal/cliconfig"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps the user's config file and environment out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"RANGESET_TYPE", "RANGESET_SEPARATOR", "RANGESET_PATTERN", "RANGESET_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	log := cliconfig.NewLogger(io.Discard)
	root := newRootCmd(&log)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
		err  error
	}{
		{
			name: "eval",
			args: []string{"eval", "1..5, 3..8, 10"},
			want: "1..8,10\nsize: 9\n",
		},
		{
			name: "eval with edits",
			args: []string{"eval", "1..5, 3..8, 10", "--remove", "4", "--add", "20", "--add", "9"},
			want: "1..3,5..10,20\nsize: 10\n",
		},
		{
			name: "eval several arguments",
			args: []string{"eval", "5", "1..3", "4"},
			want: "1..5\nsize: 5\n",
		},
		{
			name: "eval separator",
			args: []string{"--separator", "; ", "eval", "1..2,4"},
			want: "1..2; 4\nsize: 3\n",
		},
		{
			name: "eval serial",
			args: []string{"--type", "serial", "eval", "0-9;20"},
			want: "0-9,20\nsize: 11\n",
		},
		{
			name: "eval cidr",
			args: []string{"-t", "ipv4", "eval", "10.0.0.0-10.0.1.3", "--cidr"},
			want: "10.0.0.0/24\n10.0.1.0/30\n",
		},
		{
			name: "eval cidr integer",
			args: []string{"eval", "1..4", "--cidr"},
			err:  rangeset.ErrTypeMismatch,
		},
		{
			name: "eval invalid",
			args: []string{"eval", "1..x"},
			err:  rangeset.ErrInvalidInput,
		},
		{
			name: "unknown type",
			args: []string{"--type", "vlan", "eval", "1"},
			err:  rangeset.ErrInvalidInput,
		},
		{
			name: "contains",
			args: []string{"--type", "serial", "contains", "0-9", "5", "0-9"},
			want: "true\n",
		},
		{
			name: "not contained",
			args: []string{"contains", "1..5,7", "5..7"},
			want: "false\n",
			err:  errNotContained,
		},
		{
			name: "missing",
			args: []string{"missing", "1..5", "3", "7", "8"},
			want: "7..8\n",
		},
		{
			name: "nothing missing",
			args: []string{"missing", "1..5", "1..5"},
			want: "\n",
		},
		{
			name: "expand",
			args: []string{"expand", "1..3,7"},
			want: "1\n2\n3\n7\n",
		},
		{
			name: "expand limit",
			args: []string{"expand", "--limit", "2", "1..3,7"},
			want: "1\n2\n",
		},
		{
			name: "expand digit strings",
			args: []string{"--type", "digitstring", "expand", "*08-*11"},
			want: "*08\n*09\n*10\n*11\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			got, err := execute(t, tt.args...)
			if tt.err != nil {
				assert.True(t, errors.Is(err, tt.err), "got %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigPrecedence(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("type = \"serial\"\nseparator = \" \"\n"), 0o644))

	// file
	got, err := execute(t, "--config", cfgPath, "eval", "1-3,5")
	require.NoError(t, err)
	assert.Equal(t, "1-3 5\nsize: 4\n", got)

	// environment over file
	t.Setenv("RANGESET_SEPARATOR", ",")
	got, err = execute(t, "--config", cfgPath, "eval", "1-3,5")
	require.NoError(t, err)
	assert.Equal(t, "1-3,5\nsize: 4\n", got)

	// flags over both
	t.Setenv("RANGESET_TYPE", "ipv4")
	got, err = execute(t, "--config", cfgPath, "--type", "integer", "eval", "1..3,5")
	require.NoError(t, err)
	assert.Equal(t, "1..3,5\nsize: 4\n", got)

	// the default path is used when no --config is given
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("RANGESET_TYPE", "")
	t.Setenv("RANGESET_SEPARATOR", "")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".rangeset"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".rangeset", "config.toml"), []byte("type = \"serial\"\n"), 0o644))
	got, err = execute(t, "eval", "1-3")
	require.NoError(t, err)
	assert.Equal(t, "1-3\nsize: 3\n", got)
}

func TestInvalidConfig(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log_level = \"loud\"\n"), 0o644))

	_, err := execute(t, "--config", cfgPath, "eval", "1")
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(cfgPath, []byte("type = ["), 0o644))
	_, err = execute(t, "--config", cfgPath, "eval", "1")
	assert.Error(t, err)
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitFor(t *testing.T, b *syncBuffer, want string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(b.String(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q, got %q", want, b.String())
}

func TestWatch(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "vlans.toml")
	require.NoError(t, os.WriteFile(path, []byte("type = \"serial\"\nvalues = [\"1-10\"]\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, cliconfig.DefaultConfig(), out, cliconfig.NewLogger(io.Discard))
	}()

	waitFor(t, out, "1-10\n")

	require.NoError(t, os.WriteFile(path, []byte("type = \"serial\"\nvalues = [\"1-10\"]\nremove = [\"5\"]\n"), 0o644))
	waitFor(t, out, "1-4,6-10\n")

	// a broken file is logged and the watch goes on
	require.NoError(t, os.WriteFile(path, []byte("values = ["), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("type = \"serial\"\nvalues = [\"20\"]\n"), 0o644))
	waitFor(t, out, "20\n")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
