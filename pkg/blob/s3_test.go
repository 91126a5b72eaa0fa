package blob

import "testing"

func TestFormatRangeHeader(t *testing.T) {
	if got := formatRangeHeader(ByteRange{Start: 2, End: 5}); got != "bytes=2-5" {
		t.Fatalf("unexpected range header %q", got)
	}
	if got := formatRangeHeader(ByteRange{Start: 0, End: 0}); got != "bytes=0-0" {
		t.Fatalf("unexpected range header %q", got)
	}
}

func TestParseContentRangeTotal(t *testing.T) {
	tests := []struct {
		header string
		total  int64
		ok     bool
	}{
		{"bytes 2-5/10", 10, true},
		{"bytes 0-0/1", 1, true},
		{"bytes 2-5/*", 0, false},
		{"", 0, false},
		{"garbage", 0, false},
	}
	for _, tt := range tests {
		total, ok := parseContentRangeTotal(tt.header)
		if ok != tt.ok || total != tt.total {
			t.Fatalf("parseContentRangeTotal(%q) = %d, %v; want %d, %v", tt.header, total, ok, tt.total, tt.ok)
		}
	}
}

func TestByteRangeLength(t *testing.T) {
	if (ByteRange{Start: 2, End: 5}).Length() != 4 {
		t.Fatal("inclusive range 2-5 should cover 4 bytes")
	}
	if (ByteRange{Start: 7, End: 7}).Length() != 1 {
		t.Fatal("single byte range should cover 1 byte")
	}
}
