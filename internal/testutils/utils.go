package testutils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// WithTestdata runs testFunc once per entry of every testdata/<name>.input
// file. Both the input file and the matching <name>.golden file are JSON
// objects keyed by case name.
func WithTestdata[INPUT, GOLDEN any](
	t *testing.T,
	testFunc func(t *testing.T, input INPUT, golden GOLDEN),
) {
	paths, err := filepath.Glob(filepath.Join("testdata", "*.input"))
	require.NoError(t, err)
	require.NotEmpty(t, paths, "no testdata found")

	for _, path := range paths {
		testname := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		var input map[string]INPUT
		readJSON(t, path, &input)

		var golden map[string]GOLDEN
		readJSON(t, filepath.Join("testdata", testname+".golden"), &golden)

		names := make([]string, 0, len(input))
		for name := range input {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			want, ok := golden[name]
			require.True(t, ok, "%s has no golden value for %q", testname, name)

			t.Run(testname+":"+name, func(t *testing.T) {
				testFunc(t, input[name], want)
			})
		}
	}
}

func readJSON(t *testing.T, path string, v any) {
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), "decode %s", path)
}
