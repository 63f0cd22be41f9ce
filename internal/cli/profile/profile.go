// Package profile stores named tenant credentials encrypted at rest.
//
// Profiles live in a single passphrase-protected file under the zkadmin
// state directory. The passphrase comes from the ZKADMIN_PASSPHRASE
// environment variable. A plaintext store exists behind an explicit
// opt-in for environments that cannot manage a passphrase.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// Profile errors.
var (
	ErrNotFound          = errors.New("profile: not found")
	ErrPassphraseMissing = errors.New("profile: passphrase missing, set ZKADMIN_PASSPHRASE")
	ErrInvalidName       = errors.New("profile: name must be 1-64 characters of a-z, A-Z, 0-9, - and _")
)

// PassphraseEnv is the environment variable holding the store passphrase.
const PassphraseEnv = "ZKADMIN_PASSPHRASE"

// FileName is the profile store file name inside the state directory.
const FileName = "profiles.enc"

// InsecureFileName is the plaintext store file name, used only when the
// operator explicitly opts out of encryption.
const InsecureFileName = "profiles.yaml"

var namePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// Profile holds the credentials of one tenant endpoint.
type Profile struct {
	ServiceURL string `yaml:"service_url"`
	AdminKey   string `yaml:"admin_key"`
	TenantID   string `yaml:"tenant_id,omitempty"`
}

// Store reads and writes the encrypted profile file.
type Store struct {
	path       string
	passphrase []byte
	plain      bool
}

// NewStore opens a store at path with the given passphrase. The file is
// created lazily on first Save.
func NewStore(path string, passphrase []byte) *Store {
	return &Store{path: path, passphrase: passphrase}
}

// NewInsecureStore opens a plaintext store at path. Admin keys in it are
// readable by anyone who can read the file; callers must make the
// operator opt in explicitly.
func NewInsecureStore(path string) *Store {
	return &Store{path: path, plain: true}
}

// NewStoreFromEnv opens a store using the ZKADMIN_PASSPHRASE variable.
func NewStoreFromEnv(path string) (*Store, error) {
	passphrase := os.Getenv(PassphraseEnv)
	if passphrase == "" {
		return nil, ErrPassphraseMissing
	}
	return NewStore(path, []byte(passphrase)), nil
}

// Load decrypts and parses all profiles. A missing file yields an empty
// set.
func (s *Store) Load() (map[string]Profile, error) {
	blob, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]Profile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", s.path, err)
	}

	plaintext := blob
	if !s.plain {
		plaintext, err = decrypt(s.passphrase, blob)
		if err != nil {
			return nil, err
		}
	}

	profiles := map[string]Profile{}
	if err := yaml.Unmarshal(plaintext, &profiles); err != nil {
		return nil, fmt.Errorf("profile: parse store: %w", err)
	}
	return profiles, nil
}

// Save encrypts and writes the full profile set. The store file is only
// readable by its owner.
func (s *Store) Save(profiles map[string]Profile) error {
	plaintext, err := yaml.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("profile: encode store: %w", err)
	}

	blob := plaintext
	if !s.plain {
		blob, err = encrypt(s.passphrase, plaintext)
		if err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("profile: create state dir: %w", err)
	}
	if err := os.WriteFile(s.path, blob, 0o600); err != nil {
		return fmt.Errorf("profile: write %s: %w", s.path, err)
	}
	return nil
}

// Get returns the named profile.
func (s *Store) Get(name string) (Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return p, nil
}

// Set adds or replaces the named profile.
func (s *Store) Set(name string, p Profile) error {
	if !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	profiles, err := s.Load()
	if err != nil {
		return err
	}
	profiles[name] = p
	return s.Save(profiles)
}

// Remove deletes the named profile.
func (s *Store) Remove(name string) error {
	profiles, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := profiles[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	delete(profiles, name)
	return s.Save(profiles)
}

// Names returns all profile names, sorted.
func (s *Store) Names() ([]string, error) {
	profiles, err := s.Load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
