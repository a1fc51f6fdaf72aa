// Package docs embeds the sbk help topics.
package docs

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing all the others.
const index = "readme"

// Topic returns the content of a help topic. The topic "*" is all topics
// concatenated, and the empty topic is the index.
func Topic(name string) (string, error) {
	if name == "*" {
		names, err := Names()
		if err != nil {
			return "", err
		}
		return Topics(names...)
	}
	if name == "" {
		name = index
	}
	content, err := docs.ReadFile(name + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", name, err)
	}
	return string(content), nil
}

// Topics returns the content of topics, separated by a blank line.
func Topics(names ...string) (string, error) {
	var b strings.Builder
	for i, name := range names {
		content, err := Topic(name)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

// Names returns the sorted list of topics, the index excluded.
func Names() ([]string, error) {
	entries, err := fs.Glob(docs, "*.md")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := strings.TrimSuffix(path.Base(e), ".md")
		if name != index {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}
