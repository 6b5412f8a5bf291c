package domain

// EntityKind is the kind of a text annotation. Only hashtag and url
// matter for classification; other kinds pass through untouched.
type EntityKind string

const (
	EntityKindHashtag EntityKind = "hashtag"
	EntityKindURL     EntityKind = "url"
)

// Entity is a single text annotation
type Entity struct {
	Kind EntityKind
}

// Media describes what is attached to a message
type Media struct {
	Photo bool
	// MimeType is set when the attachment is a document (audio, video,
	// sticker, file); empty for other media kinds.
	MimeType string
}

// View is the read-only projection of an inbound message used to decide
// whether it should be forwarded
type View struct {
	Text     string
	Entities []Entity
	Media    *Media
}

// HasMedia reports whether anything is attached
func (v View) HasMedia() bool {
	return v.Media != nil
}

// HasPhoto reports whether the attachment is a photo
func (v View) HasPhoto() bool {
	return v.Media != nil && v.Media.Photo
}
