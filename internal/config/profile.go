package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile is the gatectl client configuration. It is read from a YAML file and
// PARKGATE_* environment variables override individual keys.
type Profile struct {
	APIURL     string `yaml:"api_url"`
	Locale     string `yaml:"locale"`
	Currency   string `yaml:"currency"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// DefaultProfile returns the profile used when no file is found.
func DefaultProfile() *Profile {
	return &Profile{
		APIURL:     "http://localhost:8080/api",
		Locale:     "en",
		Currency:   "VNĐ",
		TimeoutSec: 15,
	}
}

// ProfilePaths lists the locations searched when no explicit path is given.
func ProfilePaths() []string {
	paths := []string{"parkgate.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "parkgate", "parkgate.yaml"))
	}
	return append(paths, "/etc/parkgate/parkgate.yaml")
}

// LoadProfile reads path, or the first existing file from ProfilePaths when path
// is empty. A missing file is not an error when searching.
func LoadProfile(path string) (*Profile, error) {
	p := DefaultProfile()

	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	} else {
		for _, candidate := range ProfilePaths() {
			data, err = os.ReadFile(candidate)
			if err == nil {
				break
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, err
			}
			data = nil
		}
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, err
		}
	}

	p.APIURL = getEnv("PARKGATE_API_URL", p.APIURL)
	p.Locale = getEnv("PARKGATE_LOCALE", p.Locale)
	p.Currency = getEnv("PARKGATE_CURRENCY", p.Currency)
	p.TimeoutSec = getEnvInt("PARKGATE_TIMEOUT_SEC", p.TimeoutSec)
	return p, nil
}
