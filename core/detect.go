package core

import (
	"bytes"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxUpload is the upload size limit applied when no other limit
// is configured.
const DefaultMaxUpload = 10 << 20 // 10MB

// pdfMagic is the header every PDF starts with. A leading UTF-8 BOM or
// junk before the header is tolerated by many readers, but uploads here
// must be clean.
var pdfMagic = []byte("%PDF-")

// CheckUpload validates an uploaded file before any parsing happens:
// first the size limit, then the content type. It returns
// *FileTooLargeError or *InvalidPDFError on rejection.
func CheckUpload(name string, size int64, head []byte, limit int64) error {
	if limit <= 0 {
		limit = DefaultMaxUpload
	}
	if size > limit {
		return &FileTooLargeError{Name: name, Size: size, Limit: limit}
	}
	if !bytes.HasPrefix(head, pdfMagic) {
		return &InvalidPDFError{Name: name, Reason: "missing %PDF header"}
	}
	if mt := mimetype.Detect(head); !mt.Is("application/pdf") {
		return &InvalidPDFError{Name: name, Reason: "content type is " + mt.String()}
	}
	return nil
}
