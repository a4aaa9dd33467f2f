package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/martian56/bloc/pkg/atomicfile"
)

// GlobalConfigFileName is the per-user identity file kept in the home
// directory. It is INI formatted:
//
//	[user]
//	name  = Ada Lovelace
//	email = ada@example.com
const GlobalConfigFileName = ".blocconfig"

const identitySection = "user"

// LoadIdentity reads the [user] section of the global identity file. ok is
// false when the file does not exist.
func LoadIdentity(path string) (id UserConfig, ok bool, err error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return UserConfig{}, false, nil
		}
		return UserConfig{}, false, fmt.Errorf("load identity: %w", err)
	}
	f, err := ini.Load(path)
	if err != nil {
		return UserConfig{}, false, fmt.Errorf("load identity %s: %w: %v", path, ErrMalformed, err)
	}
	sec := f.Section(identitySection)
	return UserConfig{
		Name:  sec.Key("name").String(),
		Email: sec.Key("email").String(),
	}, true, nil
}

// GlobalConfigGet reads user.name or user.email from the global identity
// file. It does not need a repository.
func GlobalConfigGet(path, key string) (Outcome, error) {
	field, ok := identityField(key)
	if !ok {
		return softFailure(ReasonUnknownConfigKey, "unknown configuration key %s", key), nil
	}
	id, _, err := LoadIdentity(path)
	if err != nil {
		return Outcome{}, err
	}
	if field == "name" {
		return completed("%s", id.Name), nil
	}
	return completed("%s", id.Email), nil
}

// GlobalConfigSet writes user.name or user.email into the global identity
// file, creating it if needed and keeping any other sections intact.
func GlobalConfigSet(path, key, value string) (Outcome, error) {
	field, ok := identityField(key)
	if !ok {
		return softFailure(ReasonUnknownConfigKey, "unknown configuration key %s", key), nil
	}

	f, err := ini.LooseLoad(path)
	if err != nil {
		return Outcome{}, fmt.Errorf("global config set: %w: %v", ErrMalformed, err)
	}
	f.Section(identitySection).Key(field).SetValue(value)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return Outcome{}, fmt.Errorf("global config set: encode: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Outcome{}, fmt.Errorf("global config set: mkdir: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return Outcome{}, fmt.Errorf("global config set: %w", err)
	}
	return completed("Set %s = %s (global)", key, value), nil
}

func identityField(key string) (string, bool) {
	switch key {
	case "user.name":
		return "name", true
	case "user.email":
		return "email", true
	default:
		return "", false
	}
}
