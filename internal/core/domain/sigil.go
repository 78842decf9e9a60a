package domain

import (
	"bufio"
	"bytes"
	"strings"

	"go.trai.ch/zerr"
)

// Sigil marks the line of a lockfile that carries the spec hash.
const Sigil = "# ENVHASH:"

// EmbedHash renders the sigil line for h, including the trailing newline.
func EmbedHash(h ContentHash) string {
	return Sigil + " " + h.String() + "\n"
}

// ExtractHash returns the hash carried by the first sigil line of text.
func ExtractHash(text []byte) (ContentHash, error) {
	h, _, _, err := locateSigil(text)
	return h, err
}

// StripSigil returns text with its first sigil line removed, along with the hash it carried.
func StripSigil(text []byte) (ContentHash, []byte, error) {
	h, start, end, err := locateSigil(text)
	if err != nil {
		return "", nil, err
	}
	rest := make([]byte, 0, len(text)-(end-start))
	rest = append(rest, text[:start]...)
	rest = append(rest, text[end:]...)
	return h, rest, nil
}

// locateSigil finds the first sigil line and reports its byte span, newline included.
func locateSigil(text []byte) (ContentHash, int, int, error) {
	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	scanner.Split(scanLinesKeepEOL)

	offset := 0
	for scanner.Scan() {
		raw := scanner.Bytes()
		line := strings.TrimRight(string(raw), "\r\n")
		if strings.HasPrefix(line, Sigil) {
			h := strings.TrimSpace(strings.TrimPrefix(line, Sigil))
			return ContentHash(h), offset, offset + len(raw), nil
		}
		offset += len(raw)
	}
	return "", 0, 0, Tag(ErrMissingHash, zerr.New("no line starts with "+Sigil))
}

// scanLinesKeepEOL is bufio.ScanLines without dropping the line terminator, so
// offsets add up to the original input.
func scanLinesKeepEOL(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
