package catalog

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/jaspreet-dot-casa/nattd/data"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
)

// reservedKeys are top-level keys that are not categories.
var reservedKeys = map[string]bool{
	"custom_script": true,
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Loader parses catalog documents. JSON and YAML are both accepted; both
// are read into a yaml.Node tree so that key order in the file is kept.
type Loader struct {
	logger *log.Logger
}

// NewLoader creates a loader. A nil logger uses the global logger.
func NewLoader(logger *log.Logger) *Loader {
	return &Loader{logger: logging.OrDefault(logger)}
}

// LoadOrEmpty loads the catalog from path, or the embedded catalog for
// distro when path is empty. Any failure is logged and degrades to an
// empty catalog.
func (l *Loader) LoadOrEmpty(distro, path string) *Catalog {
	var (
		cat *Catalog
		err error
	)
	if path == "" {
		cat, err = l.LoadEmbedded(distro)
	} else {
		cat, err = l.LoadFile(distro, path)
	}
	if err != nil {
		l.logger.Warn("catalog unavailable, continuing with an empty catalog", "distro", distro, "path", path, "err", err)
		return New(distro)
	}
	return cat
}

// LoadEmbedded parses the catalog shipped with the binary for distro.
func (l *Loader) LoadEmbedded(distro string) (*Catalog, error) {
	raw, err := data.Catalog(distro)
	if err != nil {
		return nil, fmt.Errorf("no embedded catalog for %q: %w", distro, err)
	}
	return l.Parse(distro, raw)
}

// LoadFile reads and parses a catalog file.
func (l *Loader) LoadFile(distro, path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	cat, err := l.Parse(distro, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document. Malformed categories, subcategories
// and entries are skipped with a warning; only a document that cannot be
// parsed at all is an error. An empty document yields an empty catalog.
func (l *Loader) Parse(distro string, raw []byte) (*Catalog, error) {
	cat := New(distro)

	root, err := parseDocument(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if root == nil {
		return cat, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("failed to parse catalog: top level must be an object")
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if reservedKeys[key] {
			continue
		}
		if category, ok := l.parseCategory(key, root.Content[i+1]); ok {
			cat.Add(category)
		}
	}

	l.logger.Debug("catalog parsed", "distro", distro, "categories", len(cat.Categories), "entries", cat.EntryCount())
	return cat, nil
}

// parseDocument returns the root node of raw, or nil for an empty document.
// JSON goes through encoding/json since YAML rejects some JSON string
// escapes such as \/ and surrogate pairs.
func parseDocument(raw []byte) (*yaml.Node, error) {
	if isJSON(raw) {
		return decodeJSONNode(raw)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	return doc.Content[0], nil
}

func (l *Loader) parseCategory(key string, node *yaml.Node) (Category, bool) {
	if node.Kind != yaml.MappingNode {
		l.logger.Warn("skipping malformed category", "category", key, "reason", "not an object")
		return Category{}, false
	}

	cat := Category{Key: key, Name: DisplayName(key)}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i].Value
		v := node.Content[i+1]

		switch {
		case k == "name" && v.Kind == yaml.ScalarNode:
			cat.Name = v.Value
		case k == "apps":
			// Entries listed directly under the category
			cat.Subcategories = append(cat.Subcategories, Subcategory{
				Key:     key,
				Entries: l.parseApps(key+"/"+key, v),
			})
		case v.Kind == yaml.MappingNode:
			if sub, ok := l.parseSubcategory(key, k, v); ok {
				cat.Subcategories = append(cat.Subcategories, sub)
			}
		default:
			l.logger.Warn("skipping malformed subcategory", "path", key+"/"+k, "reason", "not an object")
		}
	}

	// The implicit subcategory shares the category name, whichever order
	// "name" and "apps" appeared in.
	for i := range cat.Subcategories {
		if cat.Subcategories[i].Key == key {
			cat.Subcategories[i].Name = cat.Name
		}
	}

	return cat, true
}

func (l *Loader) parseSubcategory(categoryKey, key string, node *yaml.Node) (Subcategory, bool) {
	path := categoryKey + "/" + key
	sub := Subcategory{Key: key, Name: DisplayName(key)}
	hasApps := false

	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i].Value
		v := node.Content[i+1]
		switch k {
		case "name":
			if v.Kind == yaml.ScalarNode {
				sub.Name = v.Value
			}
		case "apps":
			hasApps = true
			sub.Entries = l.parseApps(path, v)
		}
	}

	if !hasApps {
		l.logger.Warn("skipping malformed subcategory", "path", path, "reason", "no apps")
		return Subcategory{}, false
	}
	return sub, true
}

// parseApps decodes the entries of a group. Both a mapping (key -> entry)
// and a list of entries are accepted.
func (l *Loader) parseApps(path string, node *yaml.Node) []Entry {
	entries := make([]Entry, 0, len(node.Content)/2)
	seen := make(map[string]bool)

	add := func(key string, v *yaml.Node) {
		if key == "" {
			l.logger.Warn("skipping entry without a key", "path", path)
			return
		}
		if seen[key] {
			l.logger.Warn("skipping duplicate entry", "path", path+"/"+key)
			return
		}
		entry, ok := l.parseEntry(path, key, v)
		if !ok {
			return
		}
		seen[key] = true
		entries = append(entries, entry)
	}

	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			add(node.Content[i].Value, node.Content[i+1])
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			add(listEntryKey(item), item)
		}
	default:
		l.logger.Warn("skipping malformed apps", "path", path, "reason", "neither an object nor a list")
	}

	return entries
}

// listEntryKey derives the key of an entry given in list form from its
// "id" field, or from its name.
func listEntryKey(node *yaml.Node) string {
	if node.Kind != yaml.MappingNode {
		return ""
	}
	var name string
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch node.Content[i].Value {
		case "id":
			return node.Content[i+1].Value
		case "name":
			name = node.Content[i+1].Value
		}
	}
	return slugify(name)
}

func slugify(s string) string {
	s = slugRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "_")
	return strings.Trim(s, "_")
}

func (l *Loader) parseEntry(path, key string, node *yaml.Node) (Entry, bool) {
	entryPath := path + "/" + key
	if node.Kind != yaml.MappingNode {
		l.logger.Warn("skipping malformed entry", "path", entryPath, "reason", "not an object")
		return Entry{}, false
	}

	entry := Entry{Key: key, Name: key}

	for i := 0; i+1 < len(node.Content); i += 2 {
		k := node.Content[i].Value
		v := node.Content[i+1]
		switch k {
		case "name":
			entry.Name = v.Value
		case "description":
			entry.Description = v.Value
		case "command":
			cmd, err := decodeCommand(v)
			if err != nil {
				l.logger.Warn("ignoring malformed command", "path", entryPath, "err", err)
				continue
			}
			entry.Command = cmd
		case "installation_types":
			entry.InstallationTypes = l.parseInstallationTypes(entryPath, v)
		}
	}

	return entry, true
}

func (l *Loader) parseInstallationTypes(path string, node *yaml.Node) []InstallationType {
	if node.Kind != yaml.MappingNode {
		l.logger.Warn("ignoring malformed installation types", "path", path, "reason", "not an object")
		return nil
	}

	types := make([]InstallationType, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		v := node.Content[i+1]
		it := InstallationType{Key: key, Name: key}

		switch v.Kind {
		case yaml.MappingNode:
			for j := 0; j+1 < len(v.Content); j += 2 {
				switch v.Content[j].Value {
				case "name":
					it.Name = v.Content[j+1].Value
				case "command":
					cmd, err := decodeCommand(v.Content[j+1])
					if err != nil {
						l.logger.Warn("ignoring malformed command", "path", path+"/"+key, "err", err)
						continue
					}
					it.Command = cmd
				}
			}
		case yaml.ScalarNode, yaml.SequenceNode:
			// Shorthand: the variant is just its command
			cmd, err := decodeCommand(v)
			if err != nil {
				l.logger.Warn("ignoring malformed command", "path", path+"/"+key, "err", err)
			}
			it.Command = cmd
		default:
			l.logger.Warn("skipping malformed installation type", "path", path+"/"+key)
			continue
		}

		types = append(types, it)
	}
	return types
}

// decodeCommand accepts a single string or a list of strings.
func decodeCommand(node *yaml.Node) (Command, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return Command{node.Value}, nil
	case yaml.SequenceNode:
		var cmds []string
		if err := node.Decode(&cmds); err != nil {
			return nil, fmt.Errorf("command list must contain only strings: %w", err)
		}
		return Command(cmds), nil
	default:
		return nil, fmt.Errorf("command must be a string or a list of strings")
	}
}
