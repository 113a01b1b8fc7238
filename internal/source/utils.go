package source

import (
	"bytes"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode turns raw file bytes into LF-normalized UTF-8.
// A UTF-8 BOM is stripped; a UTF-16 BOM selects UTF-16 decoding.
// Bytes without a BOM are passed through as-is, invalid UTF-8 included.
func Decode(raw []byte) ([]byte, FileFlags, error) {
	var flags FileFlags
	content := raw
	switch {
	case bytes.HasPrefix(raw, bomUTF8):
		content = raw[len(bomUTF8):]
		flags |= FileHadBOM
	case bytes.HasPrefix(raw, bomUTF16BE), bytes.HasPrefix(raw, bomUTF16LE):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return nil, 0, err
		}
		content = out
		flags |= FileDecodedUTF16
	}
	content, hadCRLF := normalizeCRLF(content)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return content, flags, nil
}

// normalizeCRLF rewrites every \r\n to \n; a lone \r is kept.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !bytes.Contains(content, []byte("\r\n")) {
		return content, false
	}
	return bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")), true
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i))
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// largest i with lineIdx[i] < off: the newline that ends the previous line
	lo, hi := 0, len(lineIdx)
	for lo < hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < off {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	startOff := lineIdx[lo-1] + 1
	return LineCol{Line: uint32(lo + 1), Col: off - startOff + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
