package ingestion

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-optimizer/internal/retrieval"
)

// LoadKnowledgeDir reads every .txt, .md and .html file under dir and turns
// each into a retrieval document for collection. Subdirectories are not
// walked.
func LoadKnowledgeDir(dir, collection string) ([]retrieval.Document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Source: dir, Message: "failed to read directory", Cause: err}
	}

	var docs []retrieval.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".txt" && ext != ".md" && ext != ".html" && ext != ".htm" {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		if content == "" {
			continue
		}

		docs = append(docs, retrieval.Document{
			Collection: collection,
			Content:    content,
			Metadata:   map[string]string{"source": entry.Name()},
		})
	}
	return docs, nil
}
