package profiles

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/utils"
)

const (
	// ConfigDirName is the name of the config directory.
	ConfigDirName = "nattd"
	// ProfilesFileName is the name of the profiles file.
	ProfilesFileName = "profiles.json"
	// MaxProfiles is the maximum number of saved user profiles.
	MaxProfiles = 50
)

// Store manages persistent profile storage.
type Store struct {
	configDir string
	mu        sync.RWMutex

	// now is replaced in tests
	now func() time.Time
}

// NewStore creates a store in the XDG config directory.
func NewStore() *Store {
	return NewStoreWithDir(filepath.Join(xdg.ConfigHome, ConfigDirName))
}

// NewStoreWithDir creates a store with a custom directory.
func NewStoreWithDir(dir string) *Store {
	return &Store{
		configDir: dir,
		now:       time.Now,
	}
}

// ConfigDir returns the config directory path.
func (s *Store) ConfigDir() string {
	return s.configDir
}

// Path returns the path to the profiles file.
func (s *Store) Path() string {
	return filepath.Join(s.configDir, ProfilesFileName)
}

// Load loads user profiles from disk. A missing file yields an empty set.
func (s *Store) Load() (*File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadInternal()
}

// loadInternal loads profiles without locking (caller must hold lock).
func (s *Store) loadInternal() (*File, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewFile(), nil
		}
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse profiles file: %w", err)
	}

	s.migrate(&f)
	return &f, nil
}

// migrate brings an older profiles file up to the current version.
func (s *Store) migrate(f *File) {
	if f.Profiles == nil {
		f.Profiles = []Profile{}
	}
	if f.Version == Version {
		return
	}

	currentMajor, currentMinor := parseVersion(Version)
	fileMajor, fileMinor := parseVersion(f.Version)

	if fileMajor > currentMajor || (fileMajor == currentMajor && fileMinor > currentMinor) {
		logging.Warn("profiles file is newer than supported", "version", f.Version, "supported", Version)
		return
	}
	f.Version = Version
}

// parseVersion extracts major and minor version numbers.
// Returns (0, 0) for invalid versions.
func parseVersion(v string) (major, minor int) {
	if v == "" {
		return 0, 0
	}
	parts := strings.Split(v, ".")
	if len(parts) >= 1 {
		major, _ = strconv.Atoi(parts[0])
	}
	if len(parts) >= 2 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}

// Save writes user profiles to disk atomically.
func (s *Store) Save(f *File) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveInternal(f)
}

// saveInternal saves profiles without locking (caller must hold lock).
func (s *Store) saveInternal(f *File) error {
	if err := os.MkdirAll(s.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	enforceLimits(f)

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := atomic.WriteFile(s.Path(), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save profiles file: %w", err)
	}
	return nil
}

// enforceLimits evicts the least recently used user profiles beyond
// MaxProfiles. Built-in profiles are never stored.
func enforceLimits(f *File) {
	user := f.Profiles[:0]
	for _, p := range f.Profiles {
		if !p.IsBuiltIn {
			user = append(user, p)
		}
	}
	f.Profiles = user

	if len(f.Profiles) <= MaxProfiles {
		return
	}

	sort.SliceStable(f.Profiles, func(i, j int) bool {
		return lastUsed(f.Profiles[i]).After(lastUsed(f.Profiles[j]))
	})
	f.Profiles = f.Profiles[:MaxProfiles]
}

func lastUsed(p Profile) time.Time {
	if p.LastUsedAt.IsZero() {
		return p.CreatedAt
	}
	return p.LastUsedAt
}

// LoadAndSave atomically loads, modifies, and saves profiles.
func (s *Store) LoadAndSave(modify func(*File) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.loadInternal()
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	if err := modify(f); err != nil {
		return err
	}

	return s.saveInternal(f)
}

// List returns built-in profiles followed by user profiles sorted by name.
func (s *Store) List() ([]Profile, error) {
	f, err := s.Load()
	if err != nil {
		return nil, err
	}

	user := make([]Profile, len(f.Profiles))
	copy(user, f.Profiles)
	sort.Slice(user, func(i, j int) bool {
		return strings.ToLower(user[i].Name) < strings.ToLower(user[j].Name)
	})

	return append(BuiltIn(), user...), nil
}

// Get returns the profile with the given ID or name. Built-in profiles are
// searched first.
func (s *Store) Get(nameOrID string) (Profile, error) {
	if p, ok := FindBuiltIn(nameOrID); ok {
		return p, nil
	}

	f, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	if p := f.Find(nameOrID); p != nil {
		return p.Clone(), nil
	}
	return Profile{}, fmt.Errorf("%w: %s", ErrProfileNotFound, nameOrID)
}

// Put saves a user profile. A profile with the same name is replaced and
// keeps its ID. New profiles get a random ID.
func (s *Store) Put(p Profile) (Profile, error) {
	p.Name = utils.SanitizeProfileName(p.Name)
	if err := utils.ValidateProfileName(p.Name); err != nil {
		return Profile{}, err
	}
	if _, ok := FindBuiltIn(p.Name); ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrBuiltIn, p.Name)
	}

	p = p.Clone()
	p.IsBuiltIn = false

	err := s.LoadAndSave(func(f *File) error {
		now := s.now()
		if existing := f.Find(p.Name); existing != nil {
			p.ID = existing.ID
			p.CreatedAt = existing.CreatedAt
			p.LastUsedAt = now
			*existing = p
			return nil
		}

		p.ID = uuid.NewString()
		p.CreatedAt = now
		f.Profiles = append(f.Profiles, p)
		return nil
	})
	if err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Delete removes a user profile by ID or name.
func (s *Store) Delete(nameOrID string) error {
	if _, ok := FindBuiltIn(nameOrID); ok {
		return fmt.Errorf("%w: %s", ErrBuiltIn, nameOrID)
	}

	return s.LoadAndSave(func(f *File) error {
		if !f.Remove(nameOrID) {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, nameOrID)
		}
		return nil
	})
}

// Touch records that a user profile was used. Built-in profiles are ignored.
func (s *Store) Touch(nameOrID string) error {
	if _, ok := FindBuiltIn(nameOrID); ok {
		return nil
	}

	return s.LoadAndSave(func(f *File) error {
		p := f.Find(nameOrID)
		if p == nil {
			return fmt.Errorf("%w: %s", ErrProfileNotFound, nameOrID)
		}
		p.LastUsedAt = s.now()
		return nil
	})
}
