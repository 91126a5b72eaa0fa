package stream

import (
	"strconv"
	"strings"

	"github.com/videxhq/videx-backend/pkg/blob"
	pkgerrors "github.com/videxhq/videx-backend/pkg/errors"
)

const bytesUnit = "bytes="

// ParseRange interprets a Range header of the form "bytes=<start>-<end?>"
// against an object of the given total size. A nil range means the whole
// object. Malformed or unsatisfiable ranges are rejected rather than
// silently served, unlike the lenient behavior players tolerate; an
// omitted end still defaults to the last byte, and an end past the object
// is clamped per RFC 7233.
func ParseRange(header string, size int64) (*blob.ByteRange, error) {
	if header == "" {
		return nil, nil
	}
	if !strings.HasPrefix(header, bytesUnit) {
		return nil, rangeError("unsupported range unit", size)
	}

	spec := strings.TrimPrefix(header, bytesUnit)
	if strings.Contains(spec, ",") {
		return nil, rangeError("multipart ranges not supported", size)
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok {
		return nil, rangeError("malformed range", size)
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil || start < 0 {
		return nil, rangeError("malformed range start", size)
	}

	end := size - 1
	if trimmed := strings.TrimSpace(endStr); trimmed != "" {
		end, err = strconv.ParseInt(trimmed, 10, 64)
		if err != nil || end < 0 {
			return nil, rangeError("malformed range end", size)
		}
	}
	if end > size-1 {
		end = size - 1
	}

	if start >= size || start > end {
		return nil, rangeError("range out of bounds", size)
	}
	return &blob.ByteRange{Start: start, End: end}, nil
}

func rangeError(msg string, size int64) error {
	return pkgerrors.New(pkgerrors.CodeRange, msg).
		WithDetails(map[string]any{"size": size})
}

// SizeFromRangeError recovers the object size attached to a range error,
// for the Content-Range: bytes */<size> rejection header.
func SizeFromRangeError(err error) (int64, bool) {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeRange {
		return 0, false
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return 0, false
	}
	size, ok := details["size"].(int64)
	return size, ok
}
