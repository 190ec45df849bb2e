// Package assets minifies templates and static files into the dist/ bundle
// served in production.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

// Media types handled by the minifier.
const (
	MediaCSS  = "text/css"
	MediaHTML = "text/html"
	MediaJS   = "application/javascript"
)

// Result describes one minified file.
type Result struct {
	Src, Dst     string
	OriginalSize int
	MinifiedSize int
}

// Reduction is the size saving in percent.
func (r Result) Reduction() float64 {
	if r.OriginalSize == 0 {
		return 0
	}
	return float64(r.OriginalSize-r.MinifiedSize) / float64(r.OriginalSize) * 100
}

// NewMinifier returns a minifier for CSS, JS and Go html/template files.
// Template actions are left untouched.
func NewMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(MediaCSS, css.Minify)
	m.AddFunc(MediaJS, js.Minify)
	m.Add(MediaHTML, &html.Minifier{
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
		TemplateDelims:   html.GoTemplateDelims,
	})
	return m
}

// MediaType maps a file name to the media type the minifier knows, or ""
// when the file should be skipped.
func MediaType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".css":
		return MediaCSS
	case ".js":
		return MediaJS
	case ".html":
		return MediaHTML
	}
	return ""
}

// File minifies src into dst as mediaType.
func File(m *minify.M, src, dst, mediaType string) (Result, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return Result{}, err
	}
	out, err := m.Bytes(mediaType, data)
	if err != nil {
		return Result{}, fmt.Errorf("minifying %s: %w", src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return Result{}, err
	}
	if err := os.WriteFile(dst, out, 0o644); err != nil {
		return Result{}, err
	}
	return Result{Src: src, Dst: dst, OriginalSize: len(data), MinifiedSize: len(out)}, nil
}

// Tree minifies every known file under each directory in dirs into outDir,
// keeping relative paths. Unknown file types are skipped.
func Tree(m *minify.M, outDir string, dirs ...string) ([]Result, error) {
	var results []Result
	for _, dir := range dirs {
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			mediaType := MediaType(path)
			if mediaType == "" {
				return nil
			}
			res, err := File(m, path, filepath.Join(outDir, path), mediaType)
			if err != nil {
				return err
			}
			results = append(results, res)
			return nil
		})
		if err != nil {
			return results, fmt.Errorf("minifying %s: %w", dir, err)
		}
	}
	return results, nil
}
