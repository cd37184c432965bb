package docinfo

import (
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/ankit-chaubey/pdf-metadata-surgery/core"
)

// ReadInfo extracts the document-information mapping from an opened
// document. A document without an information dictionary yields an
// empty mapping and no error; a dictionary that exists but cannot be
// read yields an empty mapping together with
// *core.UnreadableDocumentError so the caller can report it without
// aborting.
func ReadInfo(d *Document) (*core.InfoDict, error) {
	info := core.NewInfoDict()
	if d.ctx == nil || d.ctx.Info == nil {
		return info, nil
	}

	dict, err := d.ctx.DereferenceDict(*d.ctx.Info)
	if err != nil {
		return info, &core.UnreadableDocumentError{Err: err}
	}
	if dict == nil {
		return info, nil
	}

	fields := make(map[string]core.Field, len(dict))
	for name, obj := range dict {
		key := "/" + name
		if s, ok := decodeTextString(d.ctx, obj); ok {
			fields[key] = newField(key, s)
			continue
		}
		// Entries holding numbers, booleans or other non-text objects
		// stay in the document as stored; they are shown but cannot be
		// edited.
		o, err := d.ctx.Dereference(obj)
		if err != nil || o == nil {
			continue
		}
		fields[key] = core.Field{Key: key, Raw: o.PDFString(), Display: o.PDFString()}
	}

	for _, key := range core.StandardFields {
		if f, ok := fields[key]; ok {
			info.Set(f)
			delete(fields, key)
		}
	}
	extras := make([]string, 0, len(fields))
	for k := range fields {
		extras = append(extras, k)
	}
	sort.Strings(extras)
	for _, k := range extras {
		info.Set(fields[k])
	}

	return info, nil
}

func newField(key, raw string) core.Field {
	return core.Field{
		Key:      key,
		Raw:      raw,
		Display:  DisplayValue(key, raw),
		IsDate:   IsDateValue(key, raw),
		Editable: true,
	}
}

// decodeTextString resolves obj and decodes it as a PDF text string.
func decodeTextString(ctx *model.Context, obj types.Object) (string, bool) {
	if obj == nil {
		return "", false
	}
	resolved, err := ctx.Dereference(obj)
	if err != nil || resolved == nil {
		return "", false
	}
	// Trapped is stored as a name object (/True, /False, /Unknown).
	if name, ok := resolved.(types.Name); ok {
		return name.Value(), true
	}
	s, err := ctx.DereferenceStringOrHexLiteral(obj, model.V10, nil)
	if err != nil {
		return "", false
	}
	return s, true
}
