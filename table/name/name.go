// Package name decodes the sfnt "name" table: a list of localized string
// records (copyright, family name, subfamily, full name, ...) each keyed
// by {platformID, encodingID, languageID, nameID}.
package name

import (
	"github.com/naturezhm/sfntly/data"
	"github.com/naturezhm/sfntly/font"
)

func init() {
	font.Register(font.TagName, newBuilder)
}

// Well-known nameID values (ISO/IEC 14496-22 table 37).
const (
	NameCopyright       = 0
	NameFontFamily      = 1
	NameFontSubfamily   = 2
	NameUniqueID        = 3
	NameFullFontName    = 4
	NameVersion         = 5
	NamePostScriptName  = 6
)

// Record is one decoded name table entry; Value holds the raw encoded
// bytes, since decoding to text depends on {platformID, encodingID}
// (UTF-16BE for the Windows/Unicode platforms, various legacy encodings
// otherwise). String decodes Value to text.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte
}

// Model is the editable "name" table.
type Model struct {
	Format                  uint16
	Records                 []Record
	LangTagsForFormat1 []string
}

// Builder implements the Builder lifecycle for "name".
type Builder struct {
	font.BuilderBase
	header font.Header
	model  *Model
}

func newBuilder(tag font.Tag, header font.Header, d *data.FontData) (font.Builder, error) {
	return &Builder{BuilderBase: font.NewBuilderBase(tag, d), header: header}, nil
}

func (b *Builder) Header() font.Header       { return b.header }
func (b *Builder) Data() *data.FontData      { return b.Backing() }
func (b *Builder) SubReadyToSerialize() bool { return true }

func (b *Builder) SubDataSet(d *data.FontData) {
	b.BuilderBase.SubDataSet(d)
	b.model = nil
}

// Model decodes and caches the model on first access.
func (b *Builder) Model() (*Model, error) {
	if b.model != nil {
		return b.model, nil
	}
	d := b.Backing()
	if d == nil {
		b.model = &Model{}
		return b.model, nil
	}
	format, err := d.UShort(0)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
	}
	count, err := d.UShort(2)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
	}
	stringOffset, err := d.UShort(4)
	if err != nil {
		return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
	}
	m := &Model{Format: format, Records: make([]Record, count)}
	recBase := 6
	for i := 0; i < int(count); i++ {
		off := recBase + i*12
		pid, err := d.UShort(off)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
		}
		eid, err := d.UShort(off + 2)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
		}
		lid, err := d.UShort(off + 4)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
		}
		nid, err := d.UShort(off + 6)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
		}
		length, err := d.UShort(off + 8)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
		}
		strOff, err := d.UShort(off + 10)
		if err != nil {
			return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
		}
		valueOff := int(stringOffset) + int(strOff)
		value := make([]byte, length)
		if length > 0 {
			sl, err := d.Slice(valueOff, int(length))
			if err != nil {
				return nil, &font.OutOfBoundsError{Tag: font.TagName, Err: err}
			}
			copy(value, sl.Bytes())
		}
		m.Records[i] = Record{PlatformID: pid, EncodingID: eid, LanguageID: lid, NameID: nid, Value: value}
	}
	if format == 1 {
		langTagCountOff := recBase + int(count)*12
		langTagCount, err := d.UShort(langTagCountOff)
		if err == nil {
			m.LangTagsForFormat1 = make([]string, langTagCount)
			for i := 0; i < int(langTagCount); i++ {
				off := langTagCountOff + 2 + i*4
				length, err1 := d.UShort(off)
				strOff, err2 := d.UShort(off + 2)
				if err1 != nil || err2 != nil {
					break
				}
				sl, err3 := d.Slice(int(stringOffset)+int(strOff), int(length))
				if err3 == nil {
					m.LangTagsForFormat1[i] = string(sl.Bytes())
				}
			}
		}
	}
	b.model = m
	return m, nil
}

// ByNameID returns every record matching nameID, in directory order.
func (m *Model) ByNameID(nameID uint16) []Record {
	var out []Record
	for _, r := range m.Records {
		if r.NameID == nameID {
			out = append(out, r)
		}
	}
	return out
}

func (b *Builder) SubDataSizeToSerialize() int {
	return b.PassthroughSize()
}

func (b *Builder) SubSerialize(w *data.FontData) (int, error) {
	return b.PassthroughSerialize(w)
}
