package charset

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding represents a text encoding
type Encoding string

const (
	EncodingAuto        Encoding = ""
	EncodingUTF8        Encoding = "utf-8"
	EncodingUTF16LE     Encoding = "utf-16le"
	EncodingWindows1250 Encoding = "windows-1250"
	EncodingWindows1252 Encoding = "windows-1252"
	EncodingISO88592    Encoding = "iso-8859-2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEncoding maps a user supplied name to an Encoding. "auto" and "" mean detect.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case "auto", EncodingAuto:
		return EncodingAuto, nil
	case EncodingUTF8, EncodingUTF16LE, EncodingWindows1250, EncodingWindows1252, EncodingISO88592:
		return Encoding(name), nil
	}
	return "", fmt.Errorf("unsupported encoding %q", name)
}

// DetectEncoding guesses the encoding of a meter export.
// Exports from utility portals are UTF-8, occasionally UTF-16 with a BOM
// (Excel "Unicode text"), and older ones Windows-1250.
func DetectEncoding(data []byte) Encoding {
	if bytes.HasPrefix(data, utf8BOM) {
		return EncodingUTF8
	}
	if len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE {
		return EncodingUTF16LE
	}
	if utf8.Valid(data) {
		return EncodingUTF8
	}
	return EncodingWindows1250
}

// Decode converts data in the given encoding to a UTF-8 string, stripping any BOM.
func Decode(data []byte, enc Encoding) (string, error) {
	if enc == EncodingAuto {
		enc = DetectEncoding(data)
	}

	switch enc {
	case EncodingUTF8:
		data = bytes.TrimPrefix(data, utf8BOM)
		if !utf8.Valid(data) {
			return "", fmt.Errorf("content is not valid utf-8")
		}
		return string(data), nil
	case EncodingUTF16LE:
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", fmt.Errorf("decode utf-16: %w", err)
		}
		return string(out), nil
	case EncodingWindows1250:
		return decodeWith(charmap.Windows1250, data)
	case EncodingWindows1252:
		return decodeWith(charmap.Windows1252, data)
	case EncodingISO88592:
		return decodeWith(charmap.ISO8859_2, data)
	}
	return "", fmt.Errorf("unsupported encoding %q", enc)
}

func decodeWith(cm *charmap.Charmap, data []byte) (string, error) {
	out, err := cm.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", cm, err)
	}
	return string(out), nil
}
