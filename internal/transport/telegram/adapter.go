package telegram

import (
	"github.com/go-telegram/bot/models"
	messageDomain "github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	"github.com/samber/lo"
)

const (
	stickerMimeType         = "image/webp"
	animatedStickerMimeType = "application/x-tgsticker"
	videoStickerMimeType    = "video/webm"
	videoNoteMimeType       = "video/mp4"
)

// ToView projects a Telegram message onto the fields the forwarding
// decision looks at. Captions stand in for text on media messages.
func ToView(msg *models.Message) messageDomain.View {
	text, entities := msg.Text, msg.Entities
	if text == "" && msg.Caption != "" {
		text, entities = msg.Caption, msg.CaptionEntities
	}

	view := messageDomain.View{
		Text:  text,
		Media: extractMedia(msg),
	}
	if entities != nil {
		view.Entities = lo.Map(entities, func(e models.MessageEntity, _ int) messageDomain.Entity {
			return messageDomain.Entity{Kind: messageDomain.EntityKind(e.Type)}
		})
	}
	return view
}

func extractMedia(msg *models.Message) *messageDomain.Media {
	switch {
	case len(msg.Photo) > 0:
		return &messageDomain.Media{Photo: true}
	case msg.Sticker != nil:
		return &messageDomain.Media{MimeType: stickerMime(msg.Sticker)}
	case msg.Animation != nil:
		return &messageDomain.Media{MimeType: msg.Animation.MimeType}
	case msg.Audio != nil:
		return &messageDomain.Media{MimeType: msg.Audio.MimeType}
	case msg.Voice != nil:
		return &messageDomain.Media{MimeType: msg.Voice.MimeType}
	case msg.Video != nil:
		return &messageDomain.Media{MimeType: msg.Video.MimeType}
	case msg.VideoNote != nil:
		return &messageDomain.Media{MimeType: videoNoteMimeType}
	case msg.Document != nil:
		return &messageDomain.Media{MimeType: msg.Document.MimeType}
	case msg.Location != nil, msg.Venue != nil, msg.Contact != nil, msg.Poll != nil, msg.Dice != nil:
		// attached, but not a document
		return &messageDomain.Media{}
	}
	return nil
}

func stickerMime(s *models.Sticker) string {
	switch {
	case s.IsAnimated:
		return animatedStickerMimeType
	case s.IsVideo:
		return videoStickerMimeType
	}
	return stickerMimeType
}
