// Package docs holds the user documentation of ldg as embedded markdown
// topics. Every command example in a topic is executed by the tests.
package docs

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed *.md
var docs embed.FS

// index is the topic listing the others; it is not a topic itself.
const index = "readme"

// Topic is a documentation page.
type Topic struct {
	Name  string // file name without the extension
	Title string // first level-one heading
}

// GetTopic returns the markdown content of a topic. "*" returns every topic.
func GetTopic(topic string) (string, error) {
	if topic == "*" {
		return GetTopics(topic)
	}
	content, err := docs.ReadFile(topic + ".md")
	if err != nil {
		return "", fmt.Errorf("topic %q not found: %w", topic, err)
	}
	return string(content), nil
}

// GetTopics returns the content of topics one after the other. "*" expands
// to every topic.
func GetTopics(topics ...string) (string, error) {
	var names []string
	for _, topic := range topics {
		if topic != "*" {
			names = append(names, topic)
			continue
		}
		all, err := Topics()
		if err != nil {
			return "", err
		}
		for _, t := range all {
			names = append(names, t.Name)
		}
	}

	var b strings.Builder
	for _, name := range names {
		content, err := GetTopic(name)
		if err != nil {
			return "", err
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Topics lists the topics sorted by name.
func Topics() ([]Topic, error) {
	entries, err := fs.ReadDir(docs, ".")
	if err != nil {
		return nil, err
	}
	var topics []Topic
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), path.Ext(e.Name()))
		if e.IsDir() || name == index {
			continue
		}
		title, err := title(e.Name())
		if err != nil {
			return nil, err
		}
		topics = append(topics, Topic{Name: name, Title: title})
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics, nil
}

func title(file string) (string, error) {
	f, err := docs.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if t, ok := strings.CutPrefix(scanner.Text(), "# "); ok {
			return strings.TrimSpace(t), nil
		}
	}
	return "", scanner.Err()
}
