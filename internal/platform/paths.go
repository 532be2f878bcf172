package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

const (
	// DefaultAppName names the config and data directories.
	DefaultAppName = "kanmouse"
	devSuffix      = "-dev"

	// RecordingExt is the extension of raw pointer capture files.
	RecordingExt    = ".mouse"
	recordingLayout = "20060102-150405"
)

// Paths holds the resolved per-user locations for config and captured pointer sessions.
type Paths struct {
	ConfigPath    string
	DataDir       string
	RecordingsDir string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// dirName is the directory name opts resolve to.
func (o Options) dirName() string {
	name := strings.TrimSpace(o.AppName)
	if name == "" {
		name = DefaultAppName
	}
	if o.DevMode {
		name += devSuffix
	}
	return name
}

// baseEnv lists, per OS, the variables that override the config and data bases.
var baseEnv = map[string][2]string{
	"linux":   {"XDG_CONFIG_HOME", "XDG_DATA_HOME"},
	"windows": {"APPDATA", "LOCALAPPDATA"},
}

// DefaultPathsWithOptions resolves paths for the running OS and environment.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Paths{}, fmt.Errorf("user config dir: %w", err)
	}
	dataDir := configDir
	if runtime.GOOS == "linux" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("user home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}

	env := map[string]string{}
	for _, names := range baseEnv {
		for _, name := range names {
			env[name] = os.Getenv(name)
		}
	}
	return PathsFor(runtime.GOOS, env, configDir, dataDir, opts.dirName())
}

// PathsFor resolves paths for goos from explicit env and base dirs. Only the
// variables listed for goos are consulted; macOS keeps the base dirs as given.
func PathsFor(goos string, env map[string]string, userConfigDir, userDataDir, appName string) (Paths, error) {
	if userConfigDir == "" || userDataDir == "" {
		return Paths{}, errors.New("empty base dirs")
	}
	appName = strings.TrimSpace(appName)
	if appName == "" {
		return Paths{}, errors.New("empty app name")
	}

	configBase, dataBase := userConfigDir, userDataDir
	if names, ok := baseEnv[goos]; ok {
		if v := strings.TrimSpace(env[names[0]]); v != "" {
			configBase = v
		}
		if v := strings.TrimSpace(env[names[1]]); v != "" {
			dataBase = v
		}
	}

	dataDir := filepath.Join(dataBase, appName)
	return Paths{
		ConfigPath:    filepath.Join(configBase, appName, "config.toml"),
		DataDir:       dataDir,
		RecordingsDir: filepath.Join(dataDir, "recordings"),
	}, nil
}

// RecordingPath names a new capture file started at at (UTC, second precision).
func (p Paths) RecordingPath(at time.Time) string {
	return filepath.Join(p.RecordingsDir, at.UTC().Format(recordingLayout)+RecordingExt)
}
