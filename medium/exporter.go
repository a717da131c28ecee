package medium

import (
	"context"
	"fmt"
	"log"
)

// ArtifactPublisher creates external artifacts for code blocks. A failed
// block must come back as a warning, not an error; the error return is
// reserved for cancellation of the whole batch.
type ArtifactPublisher interface {
	CreateArtifacts(ctx context.Context, blocks []CodeBlock) ([]ArtifactRef, []string, error)
}

// PublisherFactory builds an ArtifactPublisher for one credential. The
// credential is a per-call input, so the publisher is too.
type PublisherFactory func(token string) (ArtifactPublisher, error)

// ExportOptions are the per-call knobs of an export.
type ExportOptions struct {
	GistToken   string
	CreateGists bool
}

// Exporter runs the full pipeline: validate, build, publish artifacts,
// render. One Exporter serves any number of concurrent calls.
type Exporter struct {
	newPublisher PublisherFactory
	logger       *log.Logger
	verbose      bool
}

type ExporterOption func(*Exporter)

// WithPublisherFactory enables gist creation during exports.
func WithPublisherFactory(f PublisherFactory) ExporterOption {
	return func(e *Exporter) { e.newPublisher = f }
}

func WithLogger(l *log.Logger, verbose bool) ExporterOption {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
		e.verbose = verbose
	}
}

func NewExporter(opts ...ExporterOption) *Exporter {
	e := &Exporter{logger: log.Default()}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Exporter) infof(format string, args ...any) {
	if !e.verbose {
		return
	}
	e.logger.Printf("[INFO] "+format, args...)
}

func failed(format ExportFormat, validation ValidationResult, msg string) ExportResult {
	return ExportResult{
		Format:     format,
		Success:    false,
		Error:      msg,
		Validation: validation,
	}
}

// Export runs one article through the pipeline. All failures, including
// internal ones, come back inside the result; Export never panics outward.
func (e *Exporter) Export(ctx context.Context, content string, format ExportFormat, opts ExportOptions) (result ExportResult) {
	defer func() {
		if r := recover(); r != nil {
			result = failed(format, result.Validation, fmt.Sprintf("internal error: %v", r))
		}
	}()

	if !format.IsValid() {
		return failed(format, ValidationResult{}, fmt.Sprintf("unknown export format %q", format))
	}

	validation := ValidateRawContent(content)
	if !validation.IsValid() {
		return failed(format, validation, validation.Errors[0])
	}
	validation = validation.Merge(ValidateGistToken(opts.GistToken))
	if !validation.IsValid() {
		return failed(format, validation, validation.Errors[0])
	}

	doc := BuildDocument(content)
	validation = validation.Merge(ValidateCodeBlocks(doc.CodeBlocks), ValidateDocument(doc))
	if !validation.IsValid() {
		return failed(format, validation, validation.Errors[0])
	}

	if opts.CreateGists && opts.GistToken != "" && len(doc.CodeBlocks) > 0 && e.newPublisher != nil {
		pub, err := e.newPublisher(opts.GistToken)
		if err != nil {
			validation.Warnings = append(validation.Warnings, fmt.Sprintf("artifact publisher unavailable: %v", err))
		} else {
			refs, warns, err := pub.CreateArtifacts(ctx, doc.CodeBlocks)
			validation.Warnings = append(validation.Warnings, warns...)
			if err != nil {
				return failed(format, validation, fmt.Sprintf("artifact creation aborted: %v", err))
			}
			AttachArtifacts(&doc, refs)
			e.infof("created %d of %d artifacts", len(refs), len(doc.CodeBlocks))
		}
	}

	result = ExportResult{
		Format:     format,
		Filename:   GenerateFilename(doc.Title),
		Artifacts:  doc.Artifacts,
		Success:    true,
		Validation: validation,
	}
	switch format {
	case FormatOptimized:
		result.Content = renderOptimized(doc)
	case FormatSections:
		result.Sections, result.Content = renderSectionGroups(doc)
	case FormatRichHTML:
		result.Content = renderRichHTML(doc)
	}
	e.infof("export done format=%s blocks=%d words=%d", format, len(doc.Sections), doc.Metadata.WordCount)
	return result
}
