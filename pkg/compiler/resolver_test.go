package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaspreet-dot-casa/nattd/pkg/catalog"
	"github.com/jaspreet-dot-casa/nattd/pkg/logging"
	"github.com/jaspreet-dot-casa/nattd/pkg/selection"
)

func TestResolverCodecsForceRPMFusion(t *testing.T) {
	for _, codec := range []string{pathCodecs, pathIntelCodecs, pathNvidiaCodecs} {
		t.Run(codec, func(t *testing.T) {
			tree := testTree(t)
			mustSelect(t, tree, codec)

			forced := NewResolver(nil, logging.Discard()).Apply(tree)

			assert.True(t, tree.Find(pathRPMFusion).Selected)
			require.NotEmpty(t, forced)
			assert.Equal(t, pathRPMFusion, forced[0].Path)
			assert.Equal(t, codec, forced[0].Trigger)
			assert.Contains(t, forced[0].Notice, "RPM Fusion")
		})
	}
}

func TestResolverNvidiaDriver(t *testing.T) {
	tree := testTree(t)
	mustSelect(t, tree, pathIntelCodecs)
	NewResolver(nil, logging.Discard()).Resolve(tree)
	assert.False(t, tree.Find(pathNvidiaDriver).Selected)

	tree = testTree(t)
	mustSelect(t, tree, pathNvidiaCodecs)
	forced := NewResolver(nil, logging.Discard()).Apply(tree)
	assert.True(t, tree.Find(pathNvidiaDriver).Selected)
	assert.Len(t, forced, 2)
}

func TestResolverIdempotent(t *testing.T) {
	tree := testTree(t)
	mustSelect(t, tree, pathNvidiaCodecs)
	mustSelect(t, tree, pathGit)

	r := NewResolver(nil, logging.Discard())
	once := r.Resolve(tree.Clone())
	twice := r.Resolve(r.Resolve(tree.Clone()))

	assert.Equal(t, once, twice)
	assert.Equal(t, once.SelectedPaths(), twice.SelectedPaths())
	assert.Empty(t, r.Apply(twice))
}

func TestResolverOnlySelects(t *testing.T) {
	tree := testTree(t)
	mustSelect(t, tree, pathRPMFusion)
	mustSelect(t, tree, pathGit)

	forced := NewResolver(nil, logging.Discard()).Apply(tree)

	assert.Empty(t, forced)
	assert.Equal(t, []string{pathRPMFusion, pathGit}, tree.SelectedPaths())
}

func TestResolverToleratesMissingKeys(t *testing.T) {
	r := NewResolver(nil, logging.Discard())

	empty := selection.New(nil)
	assert.Empty(t, r.Apply(empty))

	// Codecs present but no repository entries to force
	cat := catalog.New("fedora")
	cat.Add(catalog.Category{Key: "system_config", Subcategories: []catalog.Subcategory{
		{Key: "multimedia_codecs", Entries: []catalog.Entry{
			{Key: "install_multimedia_codecs", Command: catalog.Command{"dnf -y group install multimedia"}},
		}},
	}})
	tree := selection.New(cat)
	mustSelect(t, tree, pathCodecs)
	assert.Empty(t, r.Apply(tree))
}

func TestResolverReachesFixedPoint(t *testing.T) {
	cat := catalog.New("fedora")
	cat.Add(catalog.Category{Key: "x", Subcategories: []catalog.Subcategory{
		{Key: "y", Entries: []catalog.Entry{
			{Key: "first", Command: catalog.Command{"true"}},
			{Key: "second", Command: catalog.Command{"true"}},
			{Key: "third", Command: catalog.Command{"true"}},
		}},
	}})

	// The rule that fires second is listed first, so a single pass is not enough
	rules := []Rule{
		{Name: "second-needs-third", When: []string{"x/y/second"}, Force: []string{"x/y/third"}},
		{Name: "first-needs-second", When: []string{"x/first"}, Force: []string{"x/second"}},
	}

	tree := selection.New(cat)
	mustSelect(t, tree, "x/y/first")

	forced := NewResolver(rules, logging.Discard()).Apply(tree)

	assert.Len(t, forced, 2)
	assert.Equal(t, 3, tree.SelectedCount())
}

func TestResolverForcedVariantDefaults(t *testing.T) {
	tree := testTree(t)
	mustSelect(t, tree, pathGit)

	rules := []Rule{{Name: "git-needs-brave", When: []string{"essential_apps/*"}, Force: []string{pathBrave}}}
	NewResolver(rules, logging.Discard()).Resolve(tree)

	brave := tree.Find(pathBrave)
	assert.True(t, brave.Selected)
	assert.Equal(t, "flatpak", brave.InstallationType)
}
