package rendering

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
)

//go:embed templates/*.html.tmpl
var templateFiles embed.FS

// renderTimeout bounds a single headless-browser run.
const renderTimeout = 60 * time.Second

// ChromedpRenderer renders resumes to PDF with headless Chrome.
type ChromedpRenderer struct {
	outputDir  string
	chromePath string
	templates  *template.Template
}

// NewChromedpRenderer creates a renderer writing PDFs into outputDir.
// chromePath may be empty to use the browser found on PATH.
func NewChromedpRenderer(outputDir, chromePath string) (*ChromedpRenderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse resume templates", Cause: err}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, &RenderError{Message: "failed to create output directory", Cause: err}
	}

	return &ChromedpRenderer{
		outputDir:  outputDir,
		chromePath: chromePath,
		templates:  tmpl,
	}, nil
}

// Render produces a PDF for req and returns the generated filename.
func (r *ChromedpRenderer) Render(ctx context.Context, req RenderRequest) (*RenderResult, error) {
	templateID := req.TemplateID
	if templateID == "" {
		templateID = "default"
	}

	var html strings.Builder
	if err := r.templates.ExecuteTemplate(&html, templateID+".html.tmpl", req.Resume); err != nil {
		return nil, &TemplateError{
			Message: fmt.Sprintf("failed to execute template %s", templateID),
			Cause:   err,
		}
	}

	pdf, err := r.printToPDF(ctx, html.String())
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("curriculo_%s.pdf", uuid.New().String())
	if err := os.WriteFile(filepath.Join(r.outputDir, filename), pdf, 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write PDF file", Cause: err}
	}

	return &RenderResult{Filename: filename}, nil
}

func (r *ChromedpRenderer) printToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, renderTimeout)
	defer cancelRun()

	tmpDir, err := os.MkdirTemp("", "resume-render-")
	if err != nil {
		return nil, &RenderError{Message: "failed to create temp directory", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, &RenderError{Message: "failed to write HTML file", Cause: err}
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4 paper in inches
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, &RenderError{Message: "headless browser run failed", Cause: err}
	}

	return pdf, nil
}
