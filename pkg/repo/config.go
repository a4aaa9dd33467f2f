package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/martian56/bloc/pkg/atomicfile"
)

const (
	defaultUserName      = "Bloc User"
	defaultUserEmail     = "user@bloc.local"
	defaultBranchName    = "main"
	defaultFetchTemplate = "+refs/heads/*:refs/remotes/%s/*"
)

// Config is the repository-local configuration stored in <meta>/config.
type Config struct {
	User    UserConfig        `toml:"user"`
	Core    CoreConfig        `toml:"core"`
	Remotes map[string]Remote `toml:"remotes"`
}

// UserConfig is the identity recorded on commits.
type UserConfig struct {
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

func (u *UserConfig) merge(other UserConfig) {
	if other.Name != "" {
		u.Name = other.Name
	}
	if other.Email != "" {
		u.Email = other.Email
	}
}

// CoreConfig holds layout settings.
type CoreConfig struct {
	Bare          bool   `toml:"bare"`
	DefaultBranch string `toml:"default_branch"`
}

// Remote is a named remote. Transport is not implemented; remotes are only
// recorded.
type Remote struct {
	URL   string `toml:"url"`
	Fetch string `toml:"fetch"`
	Push  string `toml:"push,omitempty"`
}

// DefaultConfig returns the config written by Init.
func DefaultConfig() *Config {
	return &Config{
		User: UserConfig{
			Name:  defaultUserName,
			Email: defaultUserEmail,
		},
		Core: CoreConfig{
			DefaultBranch: defaultBranchName,
		},
		Remotes: make(map[string]Remote),
	}
}

// ReadConfig reads <meta>/config. A missing file yields DefaultConfig.
func (r *Repo) ReadConfig() (*Config, error) {
	data, err := os.ReadFile(r.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Debug("config missing, using defaults", zap.String("path", r.configPath()))
			cfg := DefaultConfig()
			cfg.Core.Bare = r.Bare
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("read config: %w: %v", ErrMalformed, err)
	}
	if cfg.Remotes == nil {
		cfg.Remotes = make(map[string]Remote)
	}
	if cfg.Core.DefaultBranch == "" {
		cfg.Core.DefaultBranch = defaultBranchName
	}
	return cfg, nil
}

// WriteConfig atomically writes cfg to <meta>/config.
func (r *Repo) WriteConfig(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("write config: encode: %w", err)
	}
	if err := atomicfile.WriteFile(r.configPath(), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SaveConfig persists the loaded config.
func (r *Repo) SaveConfig() error {
	return r.WriteConfig(r.Config)
}

// ConfigGet reports the value of a supported key.
func (r *Repo) ConfigGet(key string) (Outcome, error) {
	switch key {
	case "user.name":
		return completed("%s", r.Config.User.Name), nil
	case "user.email":
		return completed("%s", r.Config.User.Email), nil
	case "core.bare":
		return completed("%s", strconv.FormatBool(r.Config.Core.Bare)), nil
	case "core.default_branch":
		return completed("%s", r.Config.Core.DefaultBranch), nil
	default:
		return softFailure(ReasonUnknownConfigKey, "unknown configuration key %s", key), nil
	}
}

// ConfigSet updates a writable key and persists the config. core.bare is
// derived from the layout and cannot be set.
func (r *Repo) ConfigSet(key, value string) (Outcome, error) {
	switch key {
	case "user.name":
		r.Config.User.Name = value
	case "user.email":
		r.Config.User.Email = value
	case "core.default_branch":
		if !validBranchName(value) {
			return softFailure(ReasonInvalidName, "invalid branch name %q", value), nil
		}
		r.Config.Core.DefaultBranch = value
	default:
		return softFailure(ReasonUnknownConfigKey, "unknown configuration key %s", key), nil
	}
	if err := r.SaveConfig(); err != nil {
		return Outcome{}, fmt.Errorf("config set %s: %w", key, err)
	}
	return completed("Set %s = %s", key, value), nil
}

// ConfigList reports every setting as key=value lines.
func (r *Repo) ConfigList() (Outcome, error) {
	var out Outcome
	out.note("user.name=%s", r.Config.User.Name)
	out.note("user.email=%s", r.Config.User.Email)
	out.note("core.bare=%t", r.Config.Core.Bare)
	out.note("core.default_branch=%s", r.Config.Core.DefaultBranch)
	for _, name := range r.remoteNames() {
		rem := r.Config.Remotes[name]
		out.note("remote.%s.url=%s", name, rem.URL)
		out.note("remote.%s.fetch=%s", name, rem.Fetch)
		if rem.Push != "" {
			out.note("remote.%s.push=%s", name, rem.Push)
		}
	}
	return out, nil
}

func (r *Repo) remoteNames() []string {
	names := make([]string, 0, len(r.Config.Remotes))
	for name := range r.Config.Remotes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
