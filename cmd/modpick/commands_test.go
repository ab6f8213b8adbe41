package modpick

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/modpick/pkg/errors"
	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/arthur-debert/modpick/pkg/paths"
	"github.com/arthur-debert/modpick/pkg/testutil"
)

const testRules = `{
	// one pack rule, the modded option scans the mods directory
	"rules": [
		{"type": "DEFINED", "id": "pack", "caption": "Pack", "options": [
			{"id": "modded", "caption": "Modded", "rules": [
				{"type": "GENERATED", "id": "mods", "caption": "Mods",
				 "directories": ["mods"], "defaults": ["beta"]}
			]},
			{"id": "vanilla", "caption": "Vanilla"}
		]}
	]
}`

// setupGame creates a game directory with a rules file, an unpacked mod
// and a jarred one, and isolates the config and state directories.
func setupGame(t *testing.T) *testutil.GameEnvironment {
	t.Helper()
	return testutil.NewGameEnvironment(t, testutil.EnvIsolated).
		WithRules(testRules).
		WithMod("mods", testutil.Mod{ID: "alpha", Name: "Alpha"}).
		WithJar("mods", testutil.Mod{ID: "beta", Name: "Beta"})
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(filesystem.NewOS())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeExclusions(t *testing.T, out string) map[string][]string {
	t.Helper()
	var got map[string][]string
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &got))
	return got
}

func TestResolveDefaults(t *testing.T) {
	game := setupGame(t).GameDir

	out, err := run(t, "--game-dir", game, "resolve", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"mods": {"beta"}}, decodeExclusions(t, out))
}

func TestResolveSavedChoicesAndWrite(t *testing.T) {
	env := setupGame(t).WithChoices(`{
		"choices": {"pack": {"choice": "modded", "choices": {"mods": {"choices": ["alpha"], "disabled": false}}}},
		"disabled": false
	}`)
	game := env.GameDir

	out, err := run(t, "--game-dir", game, "resolve", "-f", "json", "--write")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"mods": {"alpha"}}, decodeExclusions(t, out))

	written, err := os.ReadFile(env.Path("config/modpick/exclusions.json"))
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"mods": {"alpha"}}, decodeExclusions(t, string(written)))
}

func TestResolveText(t *testing.T) {
	game := setupGame(t).WithChoices(`{"choices": {"pack": {"choice": "vanilla"}}}`).GameDir

	out, err := run(t, "--game-dir", game, "resolve")
	require.NoError(t, err)
	assert.Equal(t, MsgNothingExcluded+"\n", out)
}

func TestResolveUnknownFormat(t *testing.T) {
	game := setupGame(t).GameDir

	_, err := run(t, "--game-dir", game, "resolve", "--format", "yaml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestResolveMissingRules(t *testing.T) {
	env := testutil.NewGameEnvironment(t, testutil.EnvIsolated)
	game := env.GameDir

	_, err := run(t, "--game-dir", game, "resolve")
	assert.Error(t, err)
}

func TestChooseYesSavesChoices(t *testing.T) {
	game := setupGame(t).GameDir

	out, err := run(t, "--game-dir", game, "choose", "--yes")
	require.NoError(t, err)
	choicesFile := filepath.Join(game, testutil.ChoicesPath)
	assert.Contains(t, out, choicesFile)

	data, err := os.ReadFile(choicesFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"modded"`)

	out, err = run(t, "--game-dir", game, "resolve", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"mods": {"beta"}}, decodeExclusions(t, out))
}

func TestRulesTree(t *testing.T) {
	game := setupGame(t).GameDir

	out, err := run(t, "--game-dir", game, "rules")
	require.NoError(t, err)
	assert.Contains(t, out, "Mod selection")
	assert.Contains(t, out, "Pack [defined]: Modded")
	assert.Contains(t, out, "Mods [generated]: 1 Disabled")
	assert.NotContains(t, out, "Alpha")

	out, err = run(t, "--game-dir", game, "rules", "--expand")
	require.NoError(t, err)
	assert.Contains(t, out, "Alpha [defined]: Enabled")
	assert.Contains(t, out, "Beta [defined]: Disabled")

	out, err = run(t, "--game-dir", game, "rules", "--format", "json")
	require.NoError(t, err)
	var nodes []map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal([]byte(out), &nodes))
	require.Len(t, nodes, 1)
	assert.Equal(t, "pack", nodes[0]["id"])
	assert.Equal(t, "DEFINED", nodes[0]["kind"])
}

func TestGenConfig(t *testing.T) {
	game := setupGame(t).GameDir

	out, err := run(t, "--game-dir", game, "genconfig")
	require.NoError(t, err)
	assert.Contains(t, out, "rules_file")
	assert.Contains(t, out, "config/modpick/rules.json")
	assert.Contains(t, out, game)

	out, err = run(t, "--game-dir", game, "genconfig", "--template")
	require.NoError(t, err)
	assert.Contains(t, out, "# rules_file")

	_, err = run(t, "--game-dir", game, "genconfig", "--template", "-w")
	require.NoError(t, err)
	target := filepath.Join(os.Getenv(paths.EnvConfigDir), paths.ConfigFileName)
	assert.FileExists(t, target)

	_, err = run(t, "--game-dir", game, "genconfig", "--template", "-w")
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	// the commented template loads as the defaults
	_, err = run(t, "--game-dir", game, "resolve")
	require.NoError(t, err)
}

func TestVersionSkipsSetup(t *testing.T) {
	testutil.NewGameEnvironment(t, testutil.EnvIsolated)
	out, err := run(t, "--config", "/does/not/exist.toml", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "modpick dev")
}

func TestBadConfigFails(t *testing.T) {
	game := setupGame(t).GameDir
	_, err := run(t, "--game-dir", game, "--config", filepath.Join(game, "missing.toml"), "rules")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
}

func TestNoCommand(t *testing.T) {
	game := setupGame(t).GameDir
	_, err := run(t, "--game-dir", game)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

// lockedBuffer collects output written from the watch goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// startWatch runs "resolve --watch" until the returned stop function is
// called, and returns its status output.
func startWatch(t *testing.T, env *testutil.GameEnvironment) (*lockedBuffer, func()) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	status := &lockedBuffer{}
	cmd := newRootCmd(filesystem.NewOS())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(status)
	cmd.SetArgs([]string{"--game-dir", env.GameDir, "resolve", "--watch"})
	done := make(chan error, 1)
	go func() { done <- cmd.ExecuteContext(ctx) }()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			select {
			case err := <-done:
				assert.NoError(t, err)
			case <-time.After(5 * time.Second):
				t.Fatal("resolve --watch did not stop")
			}
		})
	}
	return status, stop
}

func TestResolveWatch(t *testing.T) {
	env := setupGame(t)
	excluded := env.Path("config/modpick/exclusions.json")

	status, stop := startWatch(t, env)
	defer stop()

	readExclusions := func() map[string][]string {
		data, err := os.ReadFile(excluded)
		if err != nil {
			return nil
		}
		var got map[string][]string
		if jsoniter.Unmarshal(data, &got) != nil {
			return nil
		}
		return got
	}

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(map[string][]string{"mods": {"beta"}}, readExclusions())
	}, 5*time.Second, 20*time.Millisecond)

	// give the watcher time to register before changing the choices
	time.Sleep(100 * time.Millisecond)
	env.WithChoices(`{"choices": {"pack": {"choice": "vanilla"}}}`)

	require.Eventually(t, func() bool {
		return assert.ObjectsAreEqual(map[string][]string{}, readExclusions())
	}, 5*time.Second, 20*time.Millisecond)

	stop()
	assert.Contains(t, status.String(), "Wrote exclusions to "+excluded)
}

func TestResolveWatchFollowsNewDirectories(t *testing.T) {
	env := setupGame(t)

	status, stop := startWatch(t, env)
	defer stop()

	require.Eventually(t, func() bool {
		return strings.Contains(status.String(), "Watching 3 paths")
	}, 5*time.Second, 20*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	env.WithRules(`{
		"rules": [
			{"type": "GENERATED", "id": "mods", "caption": "Mods", "directories": ["mods"]},
			{"type": "GENERATED", "id": "shaders", "caption": "Shaders", "directories": ["shaderpacks"]}
		]
	}`)

	require.Eventually(t, func() bool {
		return strings.Contains(status.String(), "Watching 4 paths")
	}, 5*time.Second, 20*time.Millisecond)
}
