package ingest

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestIsThumbnailDataURL(t *testing.T) {
	if !IsThumbnailDataURL("data:image/png;base64,AAAA") {
		t.Fatal("image data URL should be recognized")
	}
	for _, field := range []string{"", "placeholder.jpg", "data:text/plain;base64,AAAA", "http://example.com/a.png"} {
		if IsThumbnailDataURL(field) {
			t.Fatalf("%q should not be treated as an inline thumbnail", field)
		}
	}
}

func TestDecodeThumbnail(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	field := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	data, subtype, err := DecodeThumbnail(field)
	if err != nil {
		t.Fatalf("DecodeThumbnail: %v", err)
	}
	if subtype != "png" {
		t.Fatalf("expected png subtype, got %q", subtype)
	}
	if !bytes.Equal(data, payload) {
		t.Fatalf("payload mismatch: %v", data)
	}
}

func TestDecodeThumbnailRejectsMalformed(t *testing.T) {
	tests := map[string]string{
		"not a data URL":    "thumbnail.png",
		"missing marker":    "data:image/png,AAAA",
		"empty subtype":     "data:image/;base64,AAAA",
		"subtype with path": "data:image/a/b;base64,AAAA",
		"bad base64":        "data:image/png;base64,@@@@",
		"empty payload":     "data:image/png;base64,",
	}
	for name, field := range tests {
		if _, _, err := DecodeThumbnail(field); err == nil {
			t.Fatalf("%s: expected decode to fail for %q", name, field)
		}
	}
}
