package catalog

import "strings"

// Kind selects which catalog list holds an entry.
type Kind string

const (
	KindVideo Kind = "video"
	KindShort Kind = "short"
)

// ParseKind maps a client-supplied type field to a Kind, defaulting to video.
func ParseKind(raw string) Kind {
	if strings.EqualFold(strings.TrimSpace(raw), string(KindShort)) {
		return KindShort
	}
	return KindVideo
}

// PlaceholderThumbnail is served when an upload carries no thumbnail.
const PlaceholderThumbnail = "/placeholder.jpg"

// Entry is one catalog item. JSON field names match the persisted document
// the frontend consumes; views is intentionally a string counter.
type Entry struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Channel       string   `json:"channel"`
	ChannelAvatar string   `json:"channelAvatar"`
	Views         string   `json:"views"`
	Likes         int      `json:"likes"`
	Date          string   `json:"date"`
	Duration      string   `json:"duration"`
	Tags          []string `json:"tags"`
	VideoURL      string   `json:"videoUrl"`
	Thumbnail     string   `json:"thumbnail"`
	Kind          Kind     `json:"type"`
	BlobKey       string   `json:"blobKey,omitempty"`
	ThumbKey      string   `json:"thumbKey,omitempty"`
	UploadedAt    int64    `json:"uploadedAt"`
}

// Document is the whole persisted catalog: two newest-first lists.
type Document struct {
	Videos []Entry `json:"videos"`
	Shorts []Entry `json:"shorts"`
}

// normalize replaces nil lists with empty ones. Both the persisted file and
// the list response must always carry {videos:[], shorts:[]}, never null.
func (d *Document) normalize() {
	if d.Videos == nil {
		d.Videos = []Entry{}
	}
	if d.Shorts == nil {
		d.Shorts = []Entry{}
	}
}

// SplitTags turns a comma-separated field into trimmed non-empty tags.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
