package importer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ErrUndecodable means none of the supported encodings could decode the
// document. The fix is on the author's side: re-save the file as UTF-8.
var ErrUndecodable = errors.New("could not decode the news document, please re-save it as UTF-8")

// decodeDocument reads the document at path and decodes it, trying UTF-8,
// Windows-1251 and Latin-1 in that order.
func decodeDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return decodeText(data)
}

func decodeText(data []byte) (string, error) {
	// NUL bytes mean the content is not text in any supported encoding,
	// typically a document saved as UTF-16.
	if bytes.IndexByte(data, 0) >= 0 {
		return "", ErrUndecodable
	}

	if utf8.Valid(data) {
		return string(data), nil
	}

	// Windows-1251 leaves one code point undefined; a replacement rune in
	// the output means the byte stream was not really 1251.
	if decoded, err := charmap.Windows1251.NewDecoder().Bytes(data); err == nil {
		if !strings.ContainsRune(string(decoded), utf8.RuneError) {
			return string(decoded), nil
		}
	}

	if decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data); err == nil {
		return string(decoded), nil
	}

	return "", ErrUndecodable
}
