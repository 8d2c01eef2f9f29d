package relocate

import (
	"path/filepath"
	"testing"

	"github.com/projectsorter/sorter/internal/detect"
	"github.com/projectsorter/sorter/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestDestinations_EveryTypeHasAField(t *testing.T) {
	var destinations Destinations
	require.True(t, destinations.IsEmpty())

	for _, projectType := range detect.AllProjectTypes() {
		require.NoError(t, destinations.Set(projectType, "/dst/"+projectType.Tag()))
	}

	seen := map[string]bool{}
	for _, projectType := range detect.AllProjectTypes() {
		destination := destinations.For(projectType)
		require.Equal(t, "/dst/"+projectType.Tag(), destination)
		require.False(t, seen[destination])
		seen[destination] = true
	}

	require.Empty(t, destinations.For(detect.ProjectType(99)))
	require.Error(t, destinations.Set(detect.ProjectType(99), "/x"))
}

func TestDestinationsFromConfig(t *testing.T) {
	root := t.TempDir()
	c := config.NewConfig(map[string]any{
		"destinations": map[string]any{
			"python":     filepath.Join(root, "py"),
			"java-maven": filepath.Join(root, "maven"),
			"cpp":        "",
		},
	})

	destinations, err := DestinationsFromConfig(c)
	require.NoError(t, err)
	require.Equal(t, Destinations{
		Python:    filepath.Join(root, "py"),
		JavaMaven: filepath.Join(root, "maven"),
	}, destinations)
}

func TestDestinationsFromConfig_RelativePath(t *testing.T) {
	c := config.NewConfig(map[string]any{"destinations": map[string]any{"c": "sorted/c"}})

	destinations, err := DestinationsFromConfig(c)
	require.NoError(t, err)

	expected, err := filepath.Abs("sorted/c")
	require.NoError(t, err)
	require.Equal(t, expected, destinations.C)
}

func TestDestinationsFromConfig_ExpandsEnvironment(t *testing.T) {
	root := t.TempDir()
	t.Setenv("SORTER_TEST_DEST", root)
	c := config.NewConfig(map[string]any{"destinations": map[string]any{"python": "${SORTER_TEST_DEST}/py"}})

	destinations, err := DestinationsFromConfig(c)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(root, "py"), destinations.Python)
}

func TestDestinationsFromConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"NotAnObject", map[string]any{"destinations": "/src"}},
		{"UnknownType", map[string]any{"destinations": map[string]any{"cobol": "/src"}}},
		{"NotAString", map[string]any{"destinations": map[string]any{"python": 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DestinationsFromConfig(config.NewConfig(tt.data))
			require.Error(t, err)
		})
	}
}

func TestDestinationsFromConfig_Missing(t *testing.T) {
	destinations, err := DestinationsFromConfig(config.NewEmptyConfig())
	require.NoError(t, err)
	require.True(t, destinations.IsEmpty())
}

func TestParseConflictPolicy(t *testing.T) {
	for _, policy := range AllConflictPolicies() {
		parsed, err := ParseConflictPolicy(string(policy))
		require.NoError(t, err)
		require.Equal(t, policy, parsed)
	}

	parsed, err := ParseConflictPolicy("")
	require.NoError(t, err)
	require.Equal(t, ConflictError, parsed)

	parsed, err = ParseConflictPolicy("Rename")
	require.NoError(t, err)
	require.Equal(t, ConflictRename, parsed)

	_, err = ParseConflictPolicy("merge")
	require.Error(t, err)
}
