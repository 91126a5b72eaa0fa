package ingest

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// dataURLPrefix marks the only thumbnail form the pipeline accepts: an
// inline base64 image data URL such as "data:image/png;base64,....".
const dataURLPrefix = "data:image/"

// IsThumbnailDataURL reports whether the field carries an inline image.
// Anything else (including empty) falls back to the placeholder.
func IsThumbnailDataURL(field string) bool {
	return strings.HasPrefix(field, dataURLPrefix)
}

// DecodeThumbnail decodes an image data URL into raw bytes plus the image
// subtype ("png", "jpeg", ...). A field that looks like a data URL but does
// not decode is an error; callers fail the whole upload rather than
// silently dropping the thumbnail.
func DecodeThumbnail(field string) ([]byte, string, error) {
	if !IsThumbnailDataURL(field) {
		return nil, "", fmt.Errorf("not an image data URL")
	}

	rest := field[len(dataURLPrefix):]
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return nil, "", fmt.Errorf("thumbnail data URL missing base64 marker")
	}

	subtype := rest[:sep]
	if subtype == "" || strings.ContainsAny(subtype, "/\\ ") {
		return nil, "", fmt.Errorf("invalid thumbnail media type")
	}

	payload := rest[sep+len(";base64,"):]
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding thumbnail: %w", err)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("empty thumbnail payload")
	}
	return data, subtype, nil
}
