// Package server exposes the metadata pipeline over HTTP: upload a PDF,
// select fields, submit edits, download the rewritten file.
package server

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
	"github.com/ankit-chaubey/pdf-metadata-surgery/core/session"
)

// Server routes requests to the pipeline. Sessions live in memory and
// are independent of each other.
type Server struct {
	log       *logrus.Logger
	store     *session.Store
	maxUpload int64
	mux       *http.ServeMux
}

// New returns a Server with its routes registered. maxUpload <= 0
// selects the default limit.
func New(log *logrus.Logger, maxUpload int64) *Server {
	if log == nil {
		log = logrus.New()
	}
	if maxUpload <= 0 {
		maxUpload = core.DefaultMaxUpload
	}
	s := &Server{
		log:       log,
		store:     session.NewStore(),
		maxUpload: maxUpload,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("POST /api/documents", s.handleUpload)
	s.mux.HandleFunc("GET /api/documents/{id}", s.handleMetadata)
	s.mux.HandleFunc("POST /api/documents/{id}/selection", s.handleSelection)
	s.mux.HandleFunc("POST /api/documents/{id}/edits", s.handleEdits)
	s.mux.HandleFunc("GET /api/documents/{id}/download", s.handleDownload)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
