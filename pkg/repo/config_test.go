package repo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConfigRoundTrip(t *testing.T) {
	r := initRepo(t)
	r.Config.User = UserConfig{Name: "Ada", Email: "ada@example.com"}
	r.Config.Remotes["origin"] = Remote{URL: "https://example.com/x.git", Fetch: "+refs/heads/*:refs/remotes/origin/*"}
	if err := r.SaveConfig(); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	got, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if diff := cmp.Diff(r.Config, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigFileIsTOML(t *testing.T) {
	r := initRepo(t)

	data, err := os.ReadFile(filepath.Join(r.MetaDir, "config"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	for _, want := range []string{"[user]", `name = "Bloc User"`, "[core]", "bare = false", `default_branch = "main"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("config missing %q:\n%s", want, data)
		}
	}
}

func TestReadConfigMissingReturnsDefaults(t *testing.T) {
	r := initRepo(t)
	if err := os.Remove(filepath.Join(r.MetaDir, "config")); err != nil {
		t.Fatalf("remove config: %v", err)
	}

	cfg, err := r.ReadConfig()
	if err != nil {
		t.Fatalf("ReadConfig: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestReadConfigMalformed(t *testing.T) {
	r := initRepo(t)
	writeFile(t, filepath.Join(r.MetaDir, "config"), "[user\nname = ")

	if _, err := r.ReadConfig(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("ReadConfig error = %v, want ErrMalformed", err)
	}
}

func TestConfigGetSet(t *testing.T) {
	r := initRepo(t)

	tests := []struct {
		key, value string
	}{
		{"user.name", "Grace"},
		{"user.email", "grace@example.com"},
		{"core.default_branch", "trunk"},
	}
	for _, tt := range tests {
		out, err := r.ConfigSet(tt.key, tt.value)
		if err != nil {
			t.Fatalf("ConfigSet(%s): %v", tt.key, err)
		}
		if !out.OK() {
			t.Fatalf("ConfigSet(%s) = %v", tt.key, out)
		}
	}

	reopened, err := Open(r.RootDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, tt := range tests {
		out, err := reopened.ConfigGet(tt.key)
		if err != nil {
			t.Fatalf("ConfigGet(%s): %v", tt.key, err)
		}
		if out.String() != tt.value {
			t.Errorf("ConfigGet(%s) = %q, want %q", tt.key, out.String(), tt.value)
		}
	}

	out, err := reopened.ConfigGet("core.bare")
	if err != nil {
		t.Fatalf("ConfigGet(core.bare): %v", err)
	}
	if out.String() != "false" {
		t.Errorf("core.bare = %q", out.String())
	}
}

func TestConfigUnknownKeys(t *testing.T) {
	r := initRepo(t)

	out, err := r.ConfigGet("user.phone")
	if err != nil {
		t.Fatalf("ConfigGet: %v", err)
	}
	if out.Reason != ReasonUnknownConfigKey {
		t.Errorf("ConfigGet(user.phone) = %+v", out)
	}

	// core.bare follows the layout and is read-only.
	out, err = r.ConfigSet("core.bare", "true")
	if err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}
	if out.Reason != ReasonUnknownConfigKey || r.Config.Core.Bare {
		t.Errorf("ConfigSet(core.bare) = %+v", out)
	}
}

func TestConfigList(t *testing.T) {
	r := initRepo(t)
	if _, err := r.RemoteAdd("origin", "https://example.com/x.git"); err != nil {
		t.Fatalf("RemoteAdd: %v", err)
	}

	out, err := r.ConfigList()
	if err != nil {
		t.Fatalf("ConfigList: %v", err)
	}
	want := []string{
		"user.name=Bloc User",
		"user.email=user@bloc.local",
		"core.bare=false",
		"core.default_branch=main",
		"remote.origin.url=https://example.com/x.git",
		"remote.origin.fetch=+refs/heads/*:refs/remotes/origin/*",
	}
	if diff := cmp.Diff(want, out.Lines); diff != "" {
		t.Errorf("ConfigList mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigSetDefaultBranchKeepsHEAD(t *testing.T) {
	dir := t.TempDir()
	r, err := Init(dir, false)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := r.ConfigSet("core.default_branch", "trunk"); err != nil {
		t.Fatalf("ConfigSet: %v", err)
	}

	// The default branch only names HEAD at init time.
	current, err := r.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if current != "main" {
		t.Errorf("CurrentBranch = %q, want main", current)
	}
}

func TestOpenWarnsOnBareMismatch(t *testing.T) {
	r := initRepo(t)
	writeFile(t, filepath.Join(r.MetaDir, "config"), "[core]\nbare = true\n")

	reopened, err := Open(r.RootDir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if reopened.Bare {
		t.Error("layout should win over the config bare flag")
	}
}
