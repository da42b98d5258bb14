// Package catalog provides the read-only model of selectable setup actions
// and loading of catalog definition files.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownCategory is returned by strict lookups for a category key that
// is not present in the catalog.
var ErrUnknownCategory = errors.New("unknown category")

// Well-known category keys.
const (
	CategorySystemConfig     = "system_config"
	CategoryEssentialApps    = "essential_apps"
	CategoryInternetApps     = "internet_apps"
	CategoryProductivityApps = "productivity_apps"
	CategoryMultimediaApps   = "multimedia_apps"
	CategoryGamingApps       = "gaming_apps"
	CategoryManagementApps   = "management_apps"
	CategoryCustomization    = "customization"
	CategoryAdvancedSettings = "advanced_settings"
)

// categoryNames holds display names for the well-known categories.
var categoryNames = map[string]string{
	CategorySystemConfig:     "System Configuration",
	CategoryEssentialApps:    "Essential Applications",
	CategoryInternetApps:     "Internet Applications",
	CategoryProductivityApps: "Productivity Applications",
	CategoryMultimediaApps:   "Multimedia Applications",
	CategoryGamingApps:       "Gaming Applications",
	CategoryManagementApps:   "Management Applications",
	CategoryCustomization:    "Customization",
	CategoryAdvancedSettings: "Advanced Settings",
}

// DisplayName returns the display name for a category key. Unknown keys are
// title-cased with underscores turned into spaces.
func DisplayName(key string) string {
	if name, ok := categoryNames[key]; ok {
		return name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// Command is an ordered list of shell command strings. A catalog file may
// give a single string or a list; both decode to a Command.
type Command []string

// IsEmpty reports whether the command has no non-blank strings.
func (c Command) IsEmpty() bool {
	for _, s := range c {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// InstallationType is a named alternative command form for an Entry.
type InstallationType struct {
	// Key is the variant identifier (e.g., "flatpak")
	Key string

	// Name is a human-readable label for the variant
	Name string

	// Command is the variant's command list
	Command Command
}

// Entry is one selectable action.
type Entry struct {
	// Key is the entry identifier, unique within its subcategory (e.g., "set_hostname")
	Key string

	// Name is the display label
	Name string

	// Description is the help text shown next to the option
	Description string

	// Command is the default action when no installation type applies
	Command Command

	// InstallationTypes lists the variants in catalog order
	InstallationTypes []InstallationType
}

// HasInstallationTypes reports whether the entry offers installation variants.
func (e *Entry) HasInstallationTypes() bool {
	return len(e.InstallationTypes) > 0
}

// InstallationType returns the variant with the given key.
func (e *Entry) InstallationType(key string) (*InstallationType, bool) {
	for i := range e.InstallationTypes {
		if e.InstallationTypes[i].Key == key {
			return &e.InstallationTypes[i], true
		}
	}
	return nil, false
}

// InstallationTypeKeys returns the variant keys in catalog order.
func (e *Entry) InstallationTypeKeys() []string {
	keys := make([]string, len(e.InstallationTypes))
	for i, it := range e.InstallationTypes {
		keys[i] = it.Key
	}
	return keys
}

// DefaultInstallationType returns the first declared variant key, or "" if
// the entry has none.
func (e *Entry) DefaultInstallationType() string {
	if len(e.InstallationTypes) == 0 {
		return ""
	}
	return e.InstallationTypes[0].Key
}

// Subcategory is a named group of entries within a category.
type Subcategory struct {
	Key     string
	Name    string
	Entries []Entry
}

// Category is a top-level grouping. Categories that list their entries
// directly hold a single subcategory whose key equals the category key.
type Category struct {
	Key           string
	Name          string
	Subcategories []Subcategory
}

// EntryCount returns the number of entries across all subcategories.
func (c *Category) EntryCount() int {
	n := 0
	for _, sub := range c.Subcategories {
		n += len(sub.Entries)
	}
	return n
}

// Catalog holds all categories for one distribution in definition order.
// Catalog is not thread-safe and should not be modified concurrently.
type Catalog struct {
	// Distro is the distribution the catalog targets (e.g., "fedora")
	Distro string

	// Categories is the ordered list of categories
	Categories []Category

	byKey map[string]int
}

// New creates an empty catalog.
func New(distro string) *Catalog {
	return &Catalog{
		Distro:     distro,
		Categories: make([]Category, 0, len(categoryNames)),
		byKey:      make(map[string]int),
	}
}

// Add appends a category. A category with an existing key replaces it in place.
func (c *Catalog) Add(cat Category) {
	if c.byKey == nil {
		c.byKey = make(map[string]int)
	}
	if i, ok := c.byKey[cat.Key]; ok {
		c.Categories[i] = cat
		return
	}
	c.byKey[cat.Key] = len(c.Categories)
	c.Categories = append(c.Categories, cat)
}

// Category returns the category with the given key, or nil if not found.
func (c *Catalog) Category(key string) *Category {
	if i, ok := c.byKey[key]; ok {
		return &c.Categories[i]
	}
	return nil
}

// CategoryName returns the display name of a category. It fails with
// ErrUnknownCategory when the key is not in the catalog.
func (c *Catalog) CategoryName(key string) (string, error) {
	cat := c.Category(key)
	if cat == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, key)
	}
	return cat.Name, nil
}

// Keys returns the category keys in definition order.
func (c *Catalog) Keys() []string {
	keys := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		keys[i] = cat.Key
	}
	return keys
}

// IsEmpty reports whether the catalog has no entries at all.
func (c *Catalog) IsEmpty() bool {
	return c.EntryCount() == 0
}

// EntryCount returns the number of entries in the catalog.
func (c *Catalog) EntryCount() int {
	n := 0
	for i := range c.Categories {
		n += c.Categories[i].EntryCount()
	}
	return n
}
