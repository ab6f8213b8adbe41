package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modpick/pkg/errors"
)

// Environment variable names
const (
	// EnvGameDir is the primary environment variable for the game directory
	EnvGameDir = "MODPICK_GAME_DIR"

	// EnvConfigDir overrides the XDG config directory for modpick
	EnvConfigDir = "MODPICK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for modpick
	EnvStateDir = "MODPICK_STATE_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name used below the XDG base directories
	AppDirName = "modpick"

	// ConfigFileName is the name of the user configuration file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "modpick.log"
)

// Paths provides centralized path management for modpick
type Paths interface {
	GameDir() string
	UsedFallback() bool
	ConfigDir() string
	StateDir() string
	ConfigFile() string
	LogFilePath() string
	Resolve(path string) string
}

type paths struct {
	gameDir      string
	configDir    string
	stateDir     string
	usedFallback bool
}

// New creates a Paths instance for the given game directory. An empty
// gameDir is looked up from MODPICK_GAME_DIR, falling back to the current
// working directory.
func New(gameDir string) (Paths, error) {
	p := &paths{}

	if gameDir == "" {
		dir, usedFallback, err := findGameDir()
		if err != nil {
			return nil, err
		}
		p.gameDir = dir
		p.usedFallback = usedFallback
	} else {
		p.gameDir = expandHome(gameDir)
	}

	absDir, err := filepath.Abs(p.gameDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for game directory")
	}
	p.gameDir = absDir

	p.configDir = ConfigDir()
	p.stateDir = StateDir()
	return p, nil
}

func findGameDir() (string, bool, error) {
	if dir := os.Getenv(EnvGameDir); dir != "" {
		return expandHome(dir), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// ConfigDir returns the modpick config directory, honouring MODPICK_CONFIG_DIR.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// StateDir returns the modpick state directory, honouring MODPICK_STATE_DIR.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHome(dir)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// LogFilePath returns the path of the log file inside StateDir.
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

func (p *paths) GameDir() string     { return p.gameDir }
func (p *paths) UsedFallback() bool  { return p.usedFallback }
func (p *paths) ConfigDir() string   { return p.configDir }
func (p *paths) StateDir() string    { return p.stateDir }
func (p *paths) ConfigFile() string  { return filepath.Join(p.configDir, ConfigFileName) }
func (p *paths) LogFilePath() string { return filepath.Join(p.stateDir, LogFileName) }

// Resolve returns path unchanged when absolute, otherwise joined onto the
// game directory. A leading ~ is expanded first.
func (p *paths) Resolve(path string) string {
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.gameDir, path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
