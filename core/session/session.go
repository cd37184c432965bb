// Package session tracks one upload-to-download pass through the
// metadata pipeline. Each session exclusively owns its document handle
// and its mappings; sessions never share state.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
	"github.com/ankit-chaubey/pdf-metadata-surgery/core/docinfo"
)

// State names a stage of the per-session lifecycle.
type State string

const (
	StateUploaded          State = "uploaded"
	StateMetadataExtracted State = "metadata-extracted"
	StateFieldsSelected    State = "fields-selected"
	StateEditsSubmitted    State = "edits-submitted"
	StateRewritten         State = "rewritten"
	StateDownloaded        State = "downloaded"
	StateFailed            State = "failed"
)

// transitions lists the allowed forward moves. Downloaded and Failed
// are terminal.
var transitions = map[State][]State{
	StateUploaded:          {StateMetadataExtracted},
	StateMetadataExtracted: {StateFieldsSelected},
	StateFieldsSelected:    {StateFieldsSelected, StateEditsSubmitted, StateRewritten},
	StateEditsSubmitted:    {StateEditsSubmitted, StateRewritten},
	StateRewritten:         {StateDownloaded},
}

// Session carries one document through the pipeline. Methods are safe
// for concurrent use, though a session serves a single user.
type Session struct {
	ID string

	mu       sync.Mutex
	state    State
	doc      *docinfo.Document
	info     *core.InfoDict
	edited   *core.InfoDict
	selected []string
	output   []byte
	failure  error
	notice   error
}

// New opens a session around an already-validated upload, extracting
// its metadata. The session owns the document handle from here on.
func New(doc *docinfo.Document) (*Session, error) {
	s := &Session{ID: newID(), state: StateUploaded, doc: doc}

	info, err := docinfo.ReadInfo(doc)
	if err != nil {
		// Unreadable metadata is a valid state: continue with the
		// empty mapping and surface the notice to the caller.
		var unreadable *core.UnreadableDocumentError
		if !errors.As(err, &unreadable) {
			s.fail(err)
			return nil, err
		}
		s.notice = err
	}
	s.info = info
	s.state = StateMetadataExtracted
	return s, nil
}

// State returns the current lifecycle stage.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Document returns the owned document handle.
func (s *Session) Document() *docinfo.Document { return s.doc }

// Info returns the extracted mapping.
func (s *Session) Info() *core.InfoDict {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Select records the keys the user wants displayed and returns their
// formatted fields, in display order. Keys must be a subset of the
// extracted mapping.
func (s *Session) Select(keys []string) ([]core.Field, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.advance(StateFieldsSelected); err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(keys))
	for _, k := range keys {
		k = core.NormalizeKey(k)
		if _, ok := s.info.Get(k); !ok {
			return nil, fmt.Errorf("unknown metadata key %s", k)
		}
		want[k] = true
	}

	s.selected = s.selected[:0]
	fields := make([]core.Field, 0, len(want))
	for _, f := range s.info.Fields() {
		if want[f.Key] {
			s.selected = append(s.selected, f.Key)
			fields = append(fields, f)
		}
	}
	s.state = StateFieldsSelected
	return fields, nil
}

// Selected returns the keys currently selected for display.
func (s *Session) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// SubmitEdits applies an edit request atomically. A malformed field
// rejects the whole request and leaves the session usable; the user can
// correct the value and resubmit.
func (s *Session) SubmitEdits(req core.EditRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.advance(StateEditsSubmitted); err != nil {
		return err
	}
	base := s.info
	if s.edited != nil {
		base = s.edited
	}
	edited, err := docinfo.Apply(base, req)
	if err != nil {
		// Stay in the previous stage: nothing was applied.
		return err
	}
	s.edited = edited
	s.state = StateEditsSubmitted
	return nil
}

// Rewrite produces the output document bytes and releases the handle.
// Without submitted edits the output metadata equals the original.
func (s *Session) Rewrite() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRewritten {
		return s.output, nil
	}
	if err := s.advance(StateRewritten); err != nil {
		return nil, err
	}

	m := s.edited
	if m == nil {
		m = s.info
	}
	out, err := docinfo.WriteDocument(s.doc, m)
	if err != nil {
		s.failLocked(err)
		return nil, err
	}
	s.output = out
	s.state = StateRewritten
	s.doc.Close()
	return out, nil
}

// MarkDownloaded moves the session to its terminal success state.
func (s *Session) MarkDownloaded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.advance(StateDownloaded); err != nil {
		return err
	}
	s.state = StateDownloaded
	return nil
}

// OutputName returns the download file name for this session.
func (s *Session) OutputName() string {
	return docinfo.OutputName(s.doc.Name())
}

// Notice returns the recoverable condition recorded during extraction,
// such as an unreadable information dictionary, if any.
func (s *Session) Notice() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}

// Failure returns the error that aborted the session, if any.
func (s *Session) Failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLocked(err)
}

func (s *Session) failLocked(err error) {
	s.state = StateFailed
	s.failure = err
	if s.doc != nil {
		s.doc.Close()
	}
}

// advance checks that moving to next is a legal forward transition.
// It does not change the state; callers set it after their work
// succeeds.
func (s *Session) advance(next State) error {
	for _, allowed := range transitions[s.state] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("session %s: cannot move from %s to %s", s.ID, s.state, next)
}

func newID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
