package docinfo

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"unicode/utf16"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
)

// WriteDocument serializes the document with its information dictionary
// replaced by m. Page content and all non-metadata objects carry over
// from the source; dictionary entries whose value is unchanged keep
// their stored encoding untouched. On failure nothing is returned, so a
// partial result can never be offered for download.
func WriteDocument(d *Document, m *core.InfoDict) ([]byte, error) {
	if d.closed || d.ctx == nil {
		return nil, &core.WriteError{Err: errors.New("document handle is closed")}
	}
	if err := applyInfo(d.ctx, m); err != nil {
		return nil, err
	}

	// pdfcpu overwrites Producer, CreationDate and ModDate in every
	// pre-2.0 information dictionary it serializes, and has no switch
	// to turn that off. 2.0 writes leave the dictionary alone, so the
	// document is written as 2.0 and the header comment restored
	// afterwards. Both version strings are three bytes, no file offset
	// moves.
	v := model.V20
	d.ctx.RootVersion = &v

	var buf bytes.Buffer
	if err := api.WriteContext(d.ctx, &buf); err != nil {
		return nil, &core.WriteError{Err: err}
	}
	out := buf.Bytes()
	if bytes.HasPrefix(out, []byte("%PDF-2.0")) {
		copy(out[5:], "1.7")
	}
	return out, nil
}

// applyInfo makes the context's information dictionary equal to m.
func applyInfo(ctx *model.Context, m *core.InfoDict) error {
	var dict types.Dict

	if ctx.Info == nil {
		if m.Len() == 0 {
			return nil
		}
		dict = types.Dict{}
		ir, err := ctx.IndRefForNewObject(dict)
		if err != nil {
			return &core.WriteError{Err: err}
		}
		ctx.Info = ir
	} else {
		var err error
		dict, err = ctx.DereferenceDict(*ctx.Info)
		if err != nil {
			return &core.WriteError{Err: err}
		}
		if dict == nil {
			return &core.WriteError{Err: errors.New("information dictionary is unreachable")}
		}
	}

	for name := range dict {
		if _, ok := m.Get("/" + name); !ok {
			delete(dict, name)
		}
	}
	for _, f := range m.Fields() {
		// Non-text entries keep their stored object untouched.
		if !f.Editable {
			continue
		}
		name := strings.TrimPrefix(f.Key, "/")
		if cur, ok := decodeTextString(ctx, dict[name]); ok && cur == f.Raw {
			continue
		}
		dict[name] = encodeTextString(f.Raw)
	}
	return nil
}

// encodeTextString encodes s as a PDF text string object: a plain
// literal when it is safe ASCII, otherwise UTF-16BE with BOM in a hex
// literal, which needs no escaping.
func encodeTextString(s string) types.Object {
	if isSafeASCII(s) {
		return types.StringLiteral(s)
	}
	var b bytes.Buffer
	b.WriteByte(0xFE)
	b.WriteByte(0xFF)
	for _, u := range utf16.Encode([]rune(s)) {
		b.WriteByte(byte(u >> 8))
		b.WriteByte(byte(u))
	}
	return types.HexLiteral(hex.EncodeToString(b.Bytes()))
}

func isSafeASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x20 || c > 0x7e || c == '(' || c == ')' || c == '\\' {
			return false
		}
	}
	return true
}
