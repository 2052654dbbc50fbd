package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHTML = `<!DOCTYPE html>
<html>
<head><title>Vaga</title><style>.x{color:red}</style></head>
<body>
<nav>Menu</nav>
<main class="job-description">
  <h1>Desenvolvedor Backend</h1>
  <p>Experiência com Go e PostgreSQL.</p>
</main>
<footer>Rodapé</footer>
<script>console.log("hi")</script>
</body>
</html>`

func TestExtractTextRemovesNoise(t *testing.T) {
	text, err := ExtractText(sampleHTML)
	require.NoError(t, err)

	assert.Contains(t, text, "Desenvolvedor Backend")
	assert.Contains(t, text, "Experiência com Go e PostgreSQL.")
	assert.NotContains(t, text, "Menu")
	assert.NotContains(t, text, "Rodapé")
	assert.NotContains(t, text, "console.log")
}

func TestExtractTextFallsBackToBody(t *testing.T) {
	text, err := ExtractText(`<html><body><div><p>Só um parágrafo</p></div></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Só um parágrafo", text)
}

func TestReadFilePlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("  Currículo de teste\n"), 0o644))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Currículo de teste", content)
}

func TestReadFileHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "posting.html")
	require.NoError(t, os.WriteFile(path, []byte(sampleHTML), 0o644))

	content, err := ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, content, "Desenvolvedor Backend")
	assert.NotContains(t, content, "<main")
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)

	var ingErr *Error
	require.True(t, errors.As(err, &ingErr))
	assert.Contains(t, ingErr.Error(), "failed to read file")
}

func TestReadJobPostingURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleHTML))
	}))
	defer server.Close()

	content, err := ReadJobPosting(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, content, "Desenvolvedor Backend")
}

func TestReadJobPostingURLStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := ReadJobPosting(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP status 404")
}

func TestReadJobPostingLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vaga.txt")
	require.NoError(t, os.WriteFile(path, []byte("Vaga de analista"), 0o644))

	content, err := ReadJobPosting(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Vaga de analista", content)
}

func TestLoadKnowledgeDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mercado.txt"), []byte("Tendências de mercado"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "vazio.txt"), []byte("   "), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignorado.pdf"), []byte("binário"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	docs, err := LoadKnowledgeDir(dir, "mercado_tech")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "mercado_tech", docs[0].Collection)
	assert.Equal(t, "Tendências de mercado", docs[0].Content)
	assert.Equal(t, "mercado.txt", docs[0].Metadata["source"])
}
