package core

import "fmt"

// InvalidPDFError reports a file that cannot be processed as a PDF at
// all: wrong content type, corrupt structure, or encrypted. The user
// must re-upload; there is nothing to retry.
type InvalidPDFError struct {
	Name   string // file name, if known
	Reason string
	Err    error
}

func (e *InvalidPDFError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: not a processable PDF: %s", e.Name, e.Reason)
	}
	return "not a processable PDF: " + e.Reason
}

func (e *InvalidPDFError) Unwrap() error { return e.Err }

// FileTooLargeError reports an upload rejected before parsing because
// it exceeds the configured size limit.
type FileTooLargeError struct {
	Name  string
	Size  int64
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s: file is %d bytes, limit is %d bytes", e.Name, e.Size, e.Limit)
}

// UnreadableDocumentError reports a parseable document whose
// information dictionary cannot be read. Absence of metadata is a valid
// state; callers treat the document as having an empty mapping.
type UnreadableDocumentError struct {
	Err error
}

func (e *UnreadableDocumentError) Error() string {
	return "document information dictionary is unreadable: " + e.Err.Error()
}

func (e *UnreadableDocumentError) Unwrap() error { return e.Err }

// FieldFormatError reports a single edited value that does not match
// the expected input format. The whole edit request it belongs to is
// rejected; nothing is written.
type FieldFormatError struct {
	Key   string // offending field
	Value string // value as submitted
	Want  string // expected pattern
}

func (e *FieldFormatError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q, expected %s", e.Key, e.Value, e.Want)
}

// WriteError reports a failure to serialize the output document. A
// partial result is discarded, never exposed for download.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string {
	return "cannot write output document: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error { return e.Err }
