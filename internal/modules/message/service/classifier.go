package service

import (
	"log/slog"
	"strings"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
)

const stickerMimeType = "image/webp"

// Classify assigns exactly one label to a message. The checks run in a
// fixed order and the first match wins: photo, then the first hashtag or
// url entity, then plain text, then the document MIME type.
func Classify(msg domain.View) domain.Label {
	if msg.HasPhoto() {
		return domain.LabelPhoto
	}

	for _, entity := range msg.Entities {
		switch entity.Kind {
		case domain.EntityKindHashtag:
			return domain.LabelHashtag
		case domain.EntityKindURL:
			return domain.LabelLink
		}
	}

	if !msg.HasMedia() {
		return domain.LabelText
	}

	mimeType := msg.Media.MimeType
	switch {
	case mimeType == "":
		slog.Warn("Media without MIME type, classifying as document")
		return domain.LabelDocument
	case strings.Contains(mimeType, "audio"):
		return domain.LabelAudio
	case strings.Contains(mimeType, "video"):
		return domain.LabelVideo
	case mimeType == stickerMimeType:
		return domain.LabelSticker
	}
	return domain.LabelDocument
}
