// Package selection provides the per-build Selection Tree: the catalog's
// shape annotated with the user's choices.
package selection

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
)

var (
	// ErrUnknownEntry is returned when a selection path matches no entry.
	ErrUnknownEntry = errors.New("unknown entry")
	// ErrAmbiguousEntry is returned when a short path matches several entries.
	ErrAmbiguousEntry = errors.New("ambiguous entry")
	// ErrUnknownInstallationType is returned when a chosen variant does not exist.
	ErrUnknownInstallationType = errors.New("unknown installation type")
)

// Field identifies a free-text input carried by special entries.
type Field int

const (
	FieldName Field = iota // entered_name, e.g. a hostname
	FieldSize              // entered_size, e.g. a swap size in GiB
)

// String returns the field's catalog name.
func (f Field) String() string {
	switch f {
	case FieldName:
		return "entered_name"
	case FieldSize:
		return "entered_size"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Entry is a catalog entry together with its selection state.
type Entry struct {
	// Path is "category/subcategory/key"
	Path string

	// Def is the read-only catalog definition
	Def *catalog.Entry

	Selected         bool
	InstallationType string
	EnteredName      string
	EnteredSize      string
}

// Key returns the entry key.
func (e *Entry) Key() string { return e.Def.Key }

// Name returns the entry display name.
func (e *Entry) Name() string { return e.Def.Name }

// Description returns the entry help text.
func (e *Entry) Description() string { return e.Def.Description }

// Input returns the value of a free-text field.
func (e *Entry) Input(f Field) string {
	if f == FieldSize {
		return e.EnteredSize
	}
	return e.EnteredName
}

// SetInput stores the value of a free-text field.
func (e *Entry) SetInput(f Field, value string) {
	if f == FieldSize {
		e.EnteredSize = value
		return
	}
	e.EnteredName = value
}

// Subcategory groups entries in catalog order.
type Subcategory struct {
	Key     string
	Name    string
	Entries []*Entry
}

// Category is a top-level group in catalog order.
type Category struct {
	Key           string
	Name          string
	Subcategories []*Subcategory
}

// Tree mirrors a catalog and records the choices for one build.
// A Tree is built fresh for every build and is not safe for concurrent use.
type Tree struct {
	Distro       string
	Categories   []*Category
	CustomScript string

	index map[string]*Entry
}

// New builds an unselected tree with the shape of cat. A nil catalog gives
// an empty tree.
func New(cat *catalog.Catalog) *Tree {
	t := &Tree{index: make(map[string]*Entry)}
	if cat == nil {
		return t
	}
	t.Distro = cat.Distro

	for ci := range cat.Categories {
		src := &cat.Categories[ci]
		c := &Category{Key: src.Key, Name: src.Name}
		for si := range src.Subcategories {
			srcSub := &src.Subcategories[si]
			sub := &Subcategory{Key: srcSub.Key, Name: srcSub.Name}
			for ei := range srcSub.Entries {
				def := &srcSub.Entries[ei]
				e := &Entry{
					Path: src.Key + "/" + srcSub.Key + "/" + def.Key,
					Def:  def,
				}
				sub.Entries = append(sub.Entries, e)
				t.index[e.Path] = e
			}
			c.Subcategories = append(c.Subcategories, sub)
		}
		t.Categories = append(t.Categories, c)
	}
	return t
}

// Category returns the category with the given key, or nil.
func (t *Tree) Category(key string) *Category {
	for _, c := range t.Categories {
		if c.Key == key {
			return c
		}
	}
	return nil
}

// Find resolves a path to an entry. Accepted forms are
// "category/subcategory/entry" and "category/entry"; the short form must
// match exactly one entry. Returns nil when nothing matches.
func (t *Tree) Find(path string) *Entry {
	e, _ := t.lookup(path)
	return e
}

func (t *Tree) lookup(path string) (*Entry, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch len(parts) {
	case 3:
		if e, ok := t.index[strings.Join(parts, "/")]; ok {
			return e, nil
		}
	case 2:
		c := t.Category(parts[0])
		if c == nil {
			break
		}
		var found *Entry
		for _, sub := range c.Subcategories {
			for _, e := range sub.Entries {
				if e.Key() != parts[1] {
					continue
				}
				if found != nil {
					return nil, fmt.Errorf("%w: %s", ErrAmbiguousEntry, path)
				}
				found = e
			}
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownEntry, path)
}

// FindByKey returns every entry with the given key, in tree order.
func (t *Tree) FindByKey(key string) []*Entry {
	var out []*Entry
	t.Walk(func(_ *Category, _ *Subcategory, e *Entry) {
		if e.Key() == key {
			out = append(out, e)
		}
	})
	return out
}

// Select marks an entry selected. For entries with installation types an
// empty installationType picks the first declared variant.
func (t *Tree) Select(path, installationType string) error {
	e, err := t.lookup(path)
	if err != nil {
		return err
	}

	if e.Def.HasInstallationTypes() {
		if installationType == "" {
			installationType = e.Def.DefaultInstallationType()
		}
		if _, ok := e.Def.InstallationType(installationType); !ok {
			return fmt.Errorf("%w: %q for %s (choose one of %s)", ErrUnknownInstallationType,
				installationType, e.Path, strings.Join(e.Def.InstallationTypeKeys(), ", "))
		}
		e.InstallationType = installationType
	} else if installationType != "" {
		return fmt.Errorf("%w: %s has no installation types", ErrUnknownInstallationType, e.Path)
	}

	e.Selected = true
	return nil
}

// Walk calls fn for every entry in tree order.
func (t *Tree) Walk(fn func(c *Category, sub *Subcategory, e *Entry)) {
	for _, c := range t.Categories {
		for _, sub := range c.Subcategories {
			for _, e := range sub.Entries {
				fn(c, sub, e)
			}
		}
	}
}

// SelectedPaths returns selection strings ("path" or "path:type") for all
// selected entries in tree order.
func (t *Tree) SelectedPaths() []string {
	var out []string
	t.Walk(func(_ *Category, _ *Subcategory, e *Entry) {
		if e.Selected {
			out = append(out, FormatSelection(e.Path, e.InstallationType))
		}
	})
	return out
}

// SelectedCount returns the number of selected entries.
func (t *Tree) SelectedCount() int {
	n := 0
	t.Walk(func(_ *Category, _ *Subcategory, e *Entry) {
		if e.Selected {
			n++
		}
	})
	return n
}

// Clone returns a deep copy of the selection state. Catalog definitions
// are shared since they are read-only.
func (t *Tree) Clone() *Tree {
	out := &Tree{
		Distro:       t.Distro,
		CustomScript: t.CustomScript,
		index:        make(map[string]*Entry, len(t.index)),
	}
	for _, c := range t.Categories {
		nc := &Category{Key: c.Key, Name: c.Name}
		for _, sub := range c.Subcategories {
			ns := &Subcategory{Key: sub.Key, Name: sub.Name}
			for _, e := range sub.Entries {
				ne := *e
				ns.Entries = append(ns.Entries, &ne)
				out.index[ne.Path] = &ne
			}
			nc.Subcategories = append(nc.Subcategories, ns)
		}
		out.Categories = append(out.Categories, nc)
	}
	return out
}

// ParseSelection splits "path:type" into its parts.
func ParseSelection(s string) (path, installationType string) {
	s = strings.TrimSpace(s)
	if i := strings.LastIndex(s, ":"); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// FormatSelection joins a path and an optional installation type.
func FormatSelection(path, installationType string) string {
	if installationType == "" {
		return path
	}
	return path + ":" + installationType
}
