package name

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/language"
)

// platform/encoding IDs relevant to string decoding (ISO/IEC 14496-22
// table 39/40).
const (
	platformUnicode   = 0
	platformMacintosh = 1
	platformWindows   = 3
)

var utf16BEDecoder = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder()

// String decodes r.Value to text. Platforms 0 (Unicode) and 3 (Windows)
// store UTF-16BE and are decoded via golang.org/x/text/encoding/unicode;
// platform 1 (Macintosh) records are Mac OS Roman, which coincides with
// ASCII for the printable range every name table entry in practice uses,
// so they are decoded as-is.
func (r Record) String() string {
	switch r.PlatformID {
	case platformUnicode, platformWindows:
		out, err := utf16BEDecoder.Bytes(r.Value)
		if err != nil {
			return string(r.Value)
		}
		return string(out)
	default:
		return string(r.Value)
	}
}

// windowsLCIDToTag covers the Microsoft LCIDs a "name" table's languageID
// field most commonly carries under the Windows platform.
var windowsLCIDToTag = map[uint16]language.Tag{
	0x0409: language.AmericanEnglish,
	0x0809: language.BritishEnglish,
	0x040C: language.French,
	0x0407: language.German,
	0x0410: language.Italian,
	0x0411: language.Japanese,
	0x0804: language.SimplifiedChinese,
	0x0404: language.TraditionalChinese,
}

// macLanguageToTag covers the legacy Macintosh language codes in
// Apple's TrueType Reference Manual, as used by platform 1 records.
var macLanguageToTag = map[uint16]language.Tag{
	0:  language.AmericanEnglish,
	1:  language.French,
	2:  language.German,
	11: language.Japanese,
	19: language.TraditionalChinese,
}

// Language resolves r's {platformID, languageID} to a BCP 47 tag. It
// returns language.Und for the Unicode platform (which carries no
// language) and for any languageID this package does not recognize.
func (r Record) Language() language.Tag {
	switch r.PlatformID {
	case platformWindows:
		if t, ok := windowsLCIDToTag[r.LanguageID]; ok {
			return t
		}
	case platformMacintosh:
		if t, ok := macLanguageToTag[r.LanguageID]; ok {
			return t
		}
	}
	return language.Und
}
