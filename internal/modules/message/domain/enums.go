//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Label is the single category assigned to an inbound message
// ENUM(photo,hashtag,link,text,audio,video,sticker,document)
type Label string
