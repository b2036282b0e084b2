package importer

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeTextUTF8(t *testing.T) {
	decoded, err := decodeText([]byte("# Заголовок\nТекст."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(decoded, "Заголовок") {
		t.Errorf("decoded content lost the heading: %q", decoded)
	}
}

func TestDecodeTextWindows1251(t *testing.T) {
	// "Привет" encoded as Windows-1251, which is not valid UTF-8.
	data := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}

	decoded, err := decodeText(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded != "Привет" {
		t.Errorf("decoded %q, want %q", decoded, "Привет")
	}
}

func TestDecodeTextLatin1Fallback(t *testing.T) {
	// 0x98 is undefined in Windows-1251, so only the Latin-1 pass accepts it.
	data := []byte{0x98, 0xFF}

	decoded, err := decodeText(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.ContainsRune(decoded, 'ÿ') {
		t.Errorf("expected Latin-1 decoding, got %q", decoded)
	}
}

func TestDecodeTextRejectsUTF16(t *testing.T) {
	// "hi" saved as UTF-16LE; the NUL bytes give it away.
	data := []byte{0x68, 0x00, 0x69, 0x00}

	_, err := decodeText(data)
	if !errors.Is(err, ErrUndecodable) {
		t.Fatalf("expected ErrUndecodable, got %v", err)
	}
}
