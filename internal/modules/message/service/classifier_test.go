package service

import (
	"testing"

	"github.com/reshetovitsme/telegram-forward-filter/internal/modules/message/domain"
	"github.com/stretchr/testify/require"
)

func entities(kinds ...domain.EntityKind) []domain.Entity {
	out := make([]domain.Entity, len(kinds))
	for i, k := range kinds {
		out[i] = domain.Entity{Kind: k}
	}
	return out
}

func document(mimeType string) *domain.Media {
	return &domain.Media{MimeType: mimeType}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.View
		want domain.Label
	}{
		{"photo", domain.View{Media: &domain.Media{Photo: true}}, domain.LabelPhoto},
		{"photo wins over hashtag entity", domain.View{
			Media:    &domain.Media{Photo: true},
			Entities: entities(domain.EntityKindHashtag),
		}, domain.LabelPhoto},
		{"hashtag", domain.View{Text: "#go", Entities: entities(domain.EntityKindHashtag)}, domain.LabelHashtag},
		{"url", domain.View{Text: "https://go.dev", Entities: entities(domain.EntityKindURL)}, domain.LabelLink},
		{"first entity wins hashtag", domain.View{Entities: entities(domain.EntityKindHashtag, domain.EntityKindURL)}, domain.LabelHashtag},
		{"first entity wins url", domain.View{Entities: entities(domain.EntityKindURL, domain.EntityKindHashtag)}, domain.LabelLink},
		{"other entity kinds are ignored", domain.View{Text: "bold", Entities: entities("bold", "mention")}, domain.LabelText},
		{"entities win over document", domain.View{Media: document("audio/mpeg"), Entities: entities(domain.EntityKindURL)}, domain.LabelLink},
		{"nil entities text", domain.View{Text: "hello"}, domain.LabelText},
		{"empty entities text", domain.View{Text: "hello", Entities: []domain.Entity{}}, domain.LabelText},
		{"audio", domain.View{Media: document("audio/ogg")}, domain.LabelAudio},
		{"video", domain.View{Media: document("video/mp4")}, domain.LabelVideo},
		{"sticker", domain.View{Media: document("image/webp")}, domain.LabelSticker},
		{"animated sticker is a document", domain.View{Media: document("application/x-tgsticker")}, domain.LabelDocument},
		{"pdf", domain.View{Media: document("application/pdf")}, domain.LabelDocument},
		{"missing mime", domain.View{Media: &domain.Media{}}, domain.LabelDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Classify(tt.msg))
		})
	}

	t.Run("Assert classification is deterministic", func(t *testing.T) {
		msg := domain.View{Media: document("video/webm"), Entities: entities("bold")}
		require.Equal(t, Classify(msg), Classify(msg))
	})
}
