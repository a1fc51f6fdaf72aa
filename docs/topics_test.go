package docs

import (
	"bufio"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// Every topic listed in the index can be loaded, and every topic is
	// listed in the index.
	readme, err := Topic("")
	if err != nil {
		t.Fatalf("Topic(\"\") error = %v", err)
	}

	var listed []string
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	scanner := bufio.NewScanner(strings.NewReader(readme))
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			listed = append(listed, strings.TrimSpace(matches[1]))
		}
	}

	for _, topic := range listed {
		if _, err := Topic(topic); err != nil {
			t.Errorf("Topic(%q) error = %v", topic, err)
		}
	}

	names, err := Names()
	if err != nil {
		t.Fatalf("Names() error = %v", err)
	}
	for _, name := range names {
		if !slices.Contains(listed, name) {
			t.Errorf("topic %q is not listed in readme.md", name)
		}
	}
}

func TestTopic_NotFound(t *testing.T) {
	if _, err := Topic("nope"); err == nil {
		t.Errorf("Topic(nope) error = nil, want an error")
	}
}

func TestTopic_All(t *testing.T) {
	all, err := Topic("*")
	if err != nil {
		t.Fatalf("Topic(*) error = %v", err)
	}
	names, _ := Names()
	for _, name := range names {
		content, _ := Topic(name)
		if !strings.Contains(all, content) {
			t.Errorf("Topic(*) does not contain topic %q", name)
		}
	}
}

// TestTopicStructure checks that every topic is a single document starting
// with a level 1 heading, whose code blocks are tagged with a known language.
func TestTopicStructure(t *testing.T) {
	names, err := Names()
	if err != nil {
		t.Fatal(err)
	}
	knownLanguages := []string{"text", "json", "toml", "csv", "bash"}
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	for _, name := range append(names, index) {
		t.Run(name, func(t *testing.T) {
			content, err := Topic(name)
			if err != nil {
				t.Fatal(err)
			}
			source := []byte(content)
			root := md.Parser().Parse(text.NewReader(source))

			first, ok := root.FirstChild().(*ast.Heading)
			if !ok || first.Level != 1 {
				t.Errorf("topic %q must start with a level 1 heading", name)
			}

			h1 := 0
			err = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				if !entering {
					return ast.WalkContinue, nil
				}
				switch n := n.(type) {
				case *ast.Heading:
					if n.Level == 1 {
						h1++
					}
				case *ast.FencedCodeBlock:
					lang := string(n.Language(source))
					if !slices.Contains(knownLanguages, lang) {
						t.Errorf("topic %q has a code block with language %q, want one of %v", name, lang, knownLanguages)
					}
				}
				return ast.WalkContinue, nil
			})
			if err != nil {
				t.Fatal(err)
			}
			if h1 != 1 {
				t.Errorf("topic %q has %d level 1 headings, want 1", name, h1)
			}
		})
	}
}
