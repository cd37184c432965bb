package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
	"github.com/ankit-chaubey/pdf-metadata-surgery/core/docinfo"
	"github.com/ankit-chaubey/pdf-metadata-surgery/core/session"
)

// multipartOverhead covers boundary and header bytes beyond the file
// itself when bounding a request body.
const multipartOverhead = 64 << 10

type fieldJSON struct {
	Key      string `json:"key"`
	Display  string `json:"display"`
	Date     bool   `json:"date"`
	Editable bool   `json:"editable"`
	Hint     string `json:"hint"`
}

func toFieldJSON(fields []core.Field) []fieldJSON {
	out := make([]fieldJSON, 0, len(fields))
	for _, f := range fields {
		out = append(out, fieldJSON{
			Key:      f.Key,
			Display:  f.Display,
			Date:     f.IsDate,
			Editable: f.Editable,
			Hint:     core.FormatHint(f.Key),
		})
	}
	return out
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	// Reject oversized requests before reading any of the body.
	if r.ContentLength > s.maxUpload+multipartOverhead {
		s.writeError(w, &core.FileTooLargeError{Name: "upload", Size: r.ContentLength, Limit: s.maxUpload})
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, &core.FileTooLargeError{Name: "upload", Size: r.ContentLength, Limit: s.maxUpload})
			return
		}
		s.writeError(w, &core.InvalidPDFError{Reason: "missing multipart file field", Err: err})
		return
	}
	defer file.Close()

	if header.Size > s.maxUpload {
		s.writeError(w, &core.FileTooLargeError{Name: header.Filename, Size: header.Size, Limit: s.maxUpload})
		return
	}
	data, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, &core.InvalidPDFError{Name: header.Filename, Reason: "cannot read upload", Err: err})
		return
	}
	if err := core.CheckUpload(header.Filename, int64(len(data)), head(data), s.maxUpload); err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := docinfo.Open(header.Filename, data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sess, err := session.New(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.store.Put(sess)

	s.log.WithFields(map[string]interface{}{
		"session": sess.ID,
		"file":    header.Filename,
		"size":    len(data),
		"fields":  sess.Info().Len(),
	}).Info("document uploaded")

	resp := struct {
		Session string   `json:"session"`
		File    string   `json:"file"`
		Pages   int      `json:"pages"`
		Keys    []string `json:"keys"`
		Notice  string   `json:"notice,omitempty"`
	}{
		Session: sess.ID,
		File:    header.Filename,
		Pages:   doc.PageCount(),
		Keys:    sess.Info().Keys(),
	}
	if n := sess.Notice(); n != nil {
		resp.Notice = n.Error()
	}
	s.writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	s.writeJSON(w, http.StatusOK, struct {
		Session string      `json:"session"`
		State   string      `json:"state"`
		Fields  []fieldJSON `json:"fields"`
	}{sess.ID, string(sess.State()), toFieldJSON(sess.Info().Fields())})
}

func (s *Server) handleSelection(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	var req struct {
		Keys []string `json:"keys"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	fields, err := sess.Select(req.Keys)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.log.WithFields(map[string]interface{}{"session": sess.ID, "keys": req.Keys}).Info("fields selected")
	s.writeJSON(w, http.StatusOK, struct {
		Fields []fieldJSON `json:"fields"`
	}{toFieldJSON(fields)})
}

func (s *Server) handleEdits(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	var req struct {
		Edits core.EditRequest `json:"edits"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}
	if err := sess.SubmitEdits(req.Edits); err != nil {
		s.writeError(w, err)
		return
	}
	s.log.WithFields(map[string]interface{}{
		"session": sess.ID,
		"keys":    req.Edits.SortedKeys(),
	}).Info("edits submitted")
	s.writeJSON(w, http.StatusOK, struct {
		State string `json:"state"`
	}{string(sess.State())})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.store.Get(r.PathValue("id"))
	if !ok {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}

	out, err := sess.Rewrite()
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := sess.OutputName()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		s.log.WithError(err).Warn("download interrupted")
		return
	}
	sess.MarkDownloaded()
	s.log.WithFields(map[string]interface{}{"session": sess.ID, "file": name, "size": len(out)}).Info("document downloaded")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Every error
// reaches the user with the offending field or file named.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError

	var (
		tooLarge   *core.FileTooLargeError
		invalid    *core.InvalidPDFError
		badField   *core.FieldFormatError
		writeErr   *core.WriteError
		unreadable *core.UnreadableDocumentError
	)
	switch {
	case errors.As(err, &tooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &badField):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &unreadable):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &writeErr):
		status = http.StatusInternalServerError
	default:
		status = http.StatusConflict
	}

	s.log.WithError(err).Warn("request rejected")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{err.Error()})
}

func head(data []byte) []byte {
	if len(data) > 512 {
		return data[:512]
	}
	return data
}
