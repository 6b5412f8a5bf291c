//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package domain

// Criterion names a single filter field that can switch a rule on
// ENUM(audio,video,photo,sticker,document,hashtag,link,contain,notcontain)
type Criterion string
