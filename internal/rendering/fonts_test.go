package rendering

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFonts(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte(f), 0o644))
	}
	return dir
}

func TestFontCache_Load(t *testing.T) {
	tests := []struct {
		name        string
		dir         func(t *testing.T) string
		wantWeights []int
	}{
		{
			name:        "all weights",
			dir:         func(t *testing.T) string { return writeFonts(t, "Geist-Regular.ttf", "Geist-Bold.ttf", "Geist-Black.ttf") },
			wantWeights: []int{400, 700, 900},
		},
		{
			name:        "partial set",
			dir:         func(t *testing.T) string { return writeFonts(t, "Geist-Bold.ttf") },
			wantWeights: []int{700},
		},
		{
			name: "missing directory",
			dir:  func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope") },
		},
		{
			name: "empty path",
			dir:  func(t *testing.T) string { return "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := NewFontCache(tt.dir(t)).Load(context.Background())
			require.NoError(t, err)

			var weights []int
			for _, f := range set.Faces {
				weights = append(weights, f.Weight)
			}
			assert.Equal(t, tt.wantWeights, weights)
		})
	}
}

func TestFontCache_LoadsOnce(t *testing.T) {
	dir := writeFonts(t, "Geist-Regular.ttf")
	cache := NewFontCache(dir)

	first, err := cache.Load(context.Background())
	require.NoError(t, err)

	// Files removed after the first load are not read again.
	require.NoError(t, os.RemoveAll(dir))

	var wg sync.WaitGroup
	results := make([]*FontSet, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			set, err := cache.Load(context.Background())
			assert.NoError(t, err)
			results[i] = set
		}()
	}
	wg.Wait()

	for _, set := range results {
		assert.Same(t, first, set)
	}
}

func TestFontSet_CSSEmpty(t *testing.T) {
	var nilSet *FontSet
	assert.Empty(t, string(nilSet.CSS()))
	assert.Empty(t, string((&FontSet{}).CSS()))
}
