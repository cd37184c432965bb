// Package docinfo implements the document-information pipeline: reading
// the metadata dictionary out of a PDF, rendering values for display,
// applying user edits, and writing the modified document back out. The
// PDF container itself is parsed and serialized by pdfcpu.
package docinfo

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
)

// Document is an opened PDF. It is exclusively owned by one session and
// must be closed once the output bytes are produced or on any failure
// path. A Document is not safe for concurrent use.
type Document struct {
	ctx    *model.Context
	name   string
	size   int64
	closed bool
}

// Open parses a PDF from memory and returns a handle to it. Encrypted
// or structurally broken documents fail with *core.InvalidPDFError.
func Open(name string, data []byte) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return nil, &core.InvalidPDFError{Name: name, Reason: "cannot parse document", Err: err}
	}
	if ctx.Encrypt != nil {
		return nil, &core.InvalidPDFError{Name: name, Reason: "document is encrypted"}
	}
	if err := api.ValidateContext(ctx); err != nil {
		return nil, &core.InvalidPDFError{Name: name, Reason: "invalid document structure", Err: err}
	}

	return &Document{ctx: ctx, name: name, size: int64(len(data))}, nil
}

// Name returns the file name the document was uploaded under.
func (d *Document) Name() string { return d.name }

// Size returns the size of the original upload in bytes.
func (d *Document) Size() int64 { return d.size }

// PageCount returns the number of pages.
func (d *Document) PageCount() int { return d.ctx.PageCount }

// Close releases the handle. Further writes fail.
func (d *Document) Close() error {
	d.ctx = nil
	d.closed = true
	return nil
}

// OutputName derives the download file name from the original, marking
// it as modified: "report.pdf" becomes "report_updated.pdf".
func OutputName(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if !strings.EqualFold(ext, ".pdf") {
		return base + "_updated.pdf"
	}
	return strings.TrimSuffix(base, ext) + "_updated" + ext
}
