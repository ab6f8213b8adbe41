package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modpick/pkg/filesystem"
	"github.com/arthur-debert/modpick/pkg/paths"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directory
)

// Default locations of the modpick files inside the game directory.
const (
	RulesPath   = "config/modpick/rules.json"
	ChoicesPath = "config/modpick/choices.json"
)

// GameEnvironment is a game directory plus the config and state directories
// modpick reads next to it.
type GameEnvironment struct {
	GameDir   string
	ConfigDir string
	StateDir  string

	FS   filesystem.FS
	Type EnvType

	t *testing.T
}

// NewGameEnvironment creates an empty game directory. Isolated environments
// also point MODPICK_CONFIG_DIR and MODPICK_STATE_DIR at temp directories and
// clear MODPICK_GAME_DIR for the duration of the test.
func NewGameEnvironment(t *testing.T, envType EnvType) *GameEnvironment {
	t.Helper()

	env := &GameEnvironment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.GameDir = "/game"
		env.ConfigDir = "/config"
		env.StateDir = "/state"
	case EnvIsolated:
		env.FS = filesystem.NewOS()
		env.GameDir = t.TempDir()
		env.ConfigDir = t.TempDir()
		env.StateDir = t.TempDir()
		t.Setenv(paths.EnvConfigDir, env.ConfigDir)
		t.Setenv(paths.EnvStateDir, env.StateDir)
		t.Setenv(paths.EnvGameDir, "")
	default:
		t.Fatalf("unknown environment type %d", envType)
	}

	if err := env.FS.MkdirAll(env.GameDir, 0755); err != nil {
		t.Fatalf("Failed to create game directory: %v", err)
	}
	return env
}

// Path returns rel inside the game directory.
func (env *GameEnvironment) Path(rel string) string {
	return filepath.Join(env.GameDir, rel)
}

// WithFileTree creates tree inside the game directory.
func (env *GameEnvironment) WithFileTree(tree FileTree) *GameEnvironment {
	env.t.Helper()
	CreateFileTree(env.t, env.FS, env.GameDir, tree)
	return env
}

// WithRules writes the rules document to its default location.
func (env *GameEnvironment) WithRules(doc string) *GameEnvironment {
	env.t.Helper()
	return env.WithFile(RulesPath, doc)
}

// WithChoices writes a choices document to its default location.
func (env *GameEnvironment) WithChoices(doc string) *GameEnvironment {
	env.t.Helper()
	return env.WithFile(ChoicesPath, doc)
}

// WithFile writes content to rel inside the game directory.
func (env *GameEnvironment) WithFile(rel, content string) *GameEnvironment {
	env.t.Helper()
	dir, name := filepath.Split(rel)
	CreateFileTree(env.t, env.FS, filepath.Join(env.GameDir, dir), FileTree{name: content})
	return env
}

// WithMod adds an unpacked mod to dir.
func (env *GameEnvironment) WithMod(dir string, mod Mod) *GameEnvironment {
	env.t.Helper()
	return env.WithFileTree(FileTree{dir: FileTree{mod.ID: FileTree{MetadataFile: mod.Metadata()}}})
}

// WithJar adds a jarred mod to dir as <id>.jar.
func (env *GameEnvironment) WithJar(dir string, mod Mod) *GameEnvironment {
	env.t.Helper()
	return env.WithFileTree(FileTree{dir: FileTree{mod.ID + ".jar": Jar(env.t, map[string]string{MetadataFile: mod.Metadata()})}})
}
