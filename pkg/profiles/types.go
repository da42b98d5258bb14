// Package profiles provides saved and built-in selection profiles.
package profiles

import (
	"errors"
	"maps"
	"slices"
	"time"
)

// Version is the current profiles file schema version.
const Version = "1.0"

var (
	// ErrProfileNotFound is returned when no profile matches a name or ID.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrBuiltIn is returned when modifying a built-in profile.
	ErrBuiltIn = errors.New("built-in profiles cannot be modified")
)

// Profile is a named, reusable set of selections.
type Profile struct {
	ID           string            `json:"id"`                      // uuid, or "builtin-*"
	Name         string            `json:"name"`                    // Display name, unique
	Description  string            `json:"description,omitempty"`   // Shown in listings
	IsBuiltIn    bool              `json:"is_built_in,omitempty"`   // Shipped with the binary
	Distro       string            `json:"distro,omitempty"`        // Catalog the selections refer to
	OutputMode   string            `json:"output_mode,omitempty"`   // "quiet" or "verbose"
	Selections   []string          `json:"selections"`              // "path[:type]" strings
	Inputs       map[string]string `json:"inputs,omitempty"`        // Special inputs by entry key
	CustomScript string            `json:"custom_script,omitempty"` // Appended verbatim
	CreatedAt    time.Time         `json:"created_at"`
	LastUsedAt   time.Time         `json:"last_used_at,omitempty"`
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	p.Selections = slices.Clone(p.Selections)
	p.Inputs = maps.Clone(p.Inputs)
	return p
}

// File is the on-disk profiles document. Only user profiles are stored;
// built-in profiles are added on listing.
type File struct {
	Version  string    `json:"version"`
	Profiles []Profile `json:"profiles"`
}

// NewFile creates an empty profiles file.
func NewFile() *File {
	return &File{
		Version:  Version,
		Profiles: []Profile{},
	}
}

// Find returns the user profile with the given ID or name.
func (f *File) Find(nameOrID string) *Profile {
	for i := range f.Profiles {
		if f.Profiles[i].ID == nameOrID || f.Profiles[i].Name == nameOrID {
			return &f.Profiles[i]
		}
	}
	return nil
}

// Remove removes the user profile with the given ID or name.
func (f *File) Remove(nameOrID string) bool {
	for i := range f.Profiles {
		if f.Profiles[i].ID == nameOrID || f.Profiles[i].Name == nameOrID {
			f.Profiles = append(f.Profiles[:i], f.Profiles[i+1:]...)
			return true
		}
	}
	return false
}
