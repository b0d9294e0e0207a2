package rendering

import (
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// FontFamily is the CSS family name the card template uses.
const FontFamily = "Geist"

// FontFiles maps each weight used on the card to its file name.
var FontFiles = []struct {
	Weight int
	File   string
}{
	{Weight: 400, File: "Geist-Regular.ttf"},
	{Weight: 700, File: "Geist-Bold.ttf"},
	{Weight: 900, File: "Geist-Black.ttf"},
}

// FontFace is one loaded font weight.
type FontFace struct {
	Weight int
	Data   []byte
}

// FontSet is an immutable set of loaded faces. The zero value and nil are
// both empty, which leaves the browser on its system fonts.
type FontSet struct {
	Faces []FontFace
}

// CSS returns @font-face rules embedding every face as a data URL.
func (s *FontSet) CSS() template.CSS {
	if s == nil || len(s.Faces) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, f := range s.Faces {
		fmt.Fprintf(&sb,
			"@font-face { font-family: %q; font-weight: %d; font-style: normal; src: url(data:font/ttf;base64,%s) format(\"truetype\"); }\n",
			FontFamily, f.Weight, base64.StdEncoding.EncodeToString(f.Data))
	}
	return template.CSS(sb.String()) //nolint:gosec // generated from trusted font bytes
}

// FontCache loads the card fonts from a directory at most once per process.
// Concurrent first callers share a single load.
type FontCache struct {
	dir   string
	group singleflight.Group

	mu    sync.RWMutex
	fonts *FontSet
}

// NewFontCache creates a cache reading from dir.
func NewFontCache(dir string) *FontCache {
	return &FontCache{dir: dir}
}

// Load returns the cached font set, reading the files on first use. A missing
// directory or file is not an error; those weights are simply absent.
func (c *FontCache) Load(ctx context.Context) (*FontSet, error) {
	c.mu.RLock()
	fonts := c.fonts
	c.mu.RUnlock()
	if fonts != nil {
		return fonts, nil
	}

	v, err, _ := c.group.Do("fonts", func() (any, error) {
		set, err := readFonts(ctx, c.dir)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.fonts = set
		c.mu.Unlock()
		return set, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*FontSet), nil
}

func readFonts(ctx context.Context, dir string) (*FontSet, error) {
	if dir == "" {
		return &FontSet{}, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &FontSet{}, nil
	}

	data := make([][]byte, len(FontFiles))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range FontFiles {
		path := filepath.Join(dir, f.File)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				return nil
			}
			if err != nil {
				return &FontError{Path: path, Cause: err}
			}
			data[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := &FontSet{}
	for i, f := range FontFiles {
		if data[i] != nil {
			set.Faces = append(set.Faces, FontFace{Weight: f.Weight, Data: data[i]})
		}
	}
	return set, nil
}
