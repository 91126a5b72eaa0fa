package stream

import (
	"testing"

	"github.com/videxhq/videx-backend/pkg/blob"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
)

func TestParseRange(t *testing.T) {
	const size = 10

	tests := []struct {
		name   string
		header string
		want   *blob.ByteRange
		bad    bool
	}{
		{name: "no header means whole object", header: "", want: nil},
		{name: "plain window", header: "bytes=2-5", want: &blob.ByteRange{Start: 2, End: 5}},
		{name: "single byte", header: "bytes=0-0", want: &blob.ByteRange{Start: 0, End: 0}},
		{name: "open ended", header: "bytes=3-", want: &blob.ByteRange{Start: 3, End: 9}},
		{name: "end clamped to object", header: "bytes=4-500", want: &blob.ByteRange{Start: 4, End: 9}},
		{name: "last byte", header: "bytes=9-9", want: &blob.ByteRange{Start: 9, End: 9}},
		{name: "unsupported unit", header: "lines=0-1", bad: true},
		{name: "multipart", header: "bytes=0-1,3-4", bad: true},
		{name: "missing dash", header: "bytes=5", bad: true},
		{name: "suffix form unsupported", header: "bytes=-5", bad: true},
		{name: "start past object", header: "bytes=10-", bad: true},
		{name: "start after end", header: "bytes=5-2", bad: true},
		{name: "negative start", header: "bytes=-1-2", bad: true},
		{name: "garbage start", header: "bytes=abc-2", bad: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng, err := ParseRange(tt.header, size)
			if tt.bad {
				coded := pkgerrors.As(err)
				if coded == nil || coded.Code() != pkgerrors.CodeRange {
					t.Fatalf("expected CodeRange, got %v", err)
				}
				if got, ok := SizeFromRangeError(err); !ok || got != size {
					t.Fatalf("range error should carry the object size, got %d, %v", got, ok)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRange: %v", err)
			}
			if tt.want == nil {
				if rng != nil {
					t.Fatalf("expected whole-object range, got %+v", rng)
				}
				return
			}
			if rng == nil || rng.Start != tt.want.Start || rng.End != tt.want.End {
				t.Fatalf("ParseRange(%q) = %+v, want %+v", tt.header, rng, tt.want)
			}
		})
	}
}

func TestSizeFromRangeErrorRejectsOtherErrors(t *testing.T) {
	if _, ok := SizeFromRangeError(nil); ok {
		t.Fatal("nil error carries no size")
	}
	if _, ok := SizeFromRangeError(pkgerrors.New(pkgerrors.CodeNotFound, "gone")); ok {
		t.Fatal("non-range errors carry no size")
	}
}
