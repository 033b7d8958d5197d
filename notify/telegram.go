package notify

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// Telegram rejects larger photos, they go out as documents instead.
const maxPhotoSize = 150000

// Telegram caps a message at 4096 characters, the rest is <pre></pre> markup.
const maxMessageRunes = 4000

type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Image struct {
	Name    string
	Caption string
	Data    []byte
}

// Notifier delivers analysis results to one chat.
type Notifier struct {
	api    Sender
	chatID int64
}

func New(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return NewWithSender(bot, chatID), nil
}

func NewWithSender(api Sender, chatID int64) *Notifier {
	return &Notifier{api: api, chatID: chatID}
}

func (n *Notifier) SendImage(img Image) error {
	file := tgbotapi.FileBytes{Name: img.Name, Bytes: img.Data}

	var msg tgbotapi.Chattable
	if len(img.Data) < maxPhotoSize {
		photo := tgbotapi.NewPhotoUpload(n.chatID, file)
		photo.Caption = img.Caption
		msg = photo
	} else {
		doc := tgbotapi.NewDocumentUpload(n.chatID, file)
		doc.Caption = img.Caption
		msg = doc
	}

	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send %s: %w", img.Name, err)
	}
	return nil
}

// SendText posts text as preformatted HTML, split on line boundaries when
// it does not fit one message.
func (n *Notifier) SendText(text string) error {
	for _, part := range split(text, maxMessageRunes) {
		msg := tgbotapi.NewMessage(n.chatID, "<pre>"+html.EscapeString(part)+"</pre>")
		msg.ParseMode = tgbotapi.ModeHTML
		if _, err := n.api.Send(msg); err != nil {
			return fmt.Errorf("send text: %w", err)
		}
	}
	return nil
}

// Deliver sends every image and then the summary. It stops at the first
// failure.
func (n *Notifier) Deliver(images []Image, summary string) error {
	for _, img := range images {
		if err := n.SendImage(img); err != nil {
			return err
		}
	}
	if strings.TrimSpace(summary) == "" {
		return nil
	}
	return n.SendText(summary)
}

func split(text string, limit int) []string {
	var (
		parts   []string
		current strings.Builder
		size    int
	)
	flush := func() {
		if size > 0 {
			parts = append(parts, current.String())
			current.Reset()
			size = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		runes := []rune(line)
		for len(runes) > limit {
			flush()
			parts = append(parts, string(runes[:limit]))
			runes = runes[limit:]
		}
		if size+len(runes) > limit {
			flush()
		}
		current.WriteString(string(runes))
		size += len(runes)
	}
	flush()
	return parts
}
