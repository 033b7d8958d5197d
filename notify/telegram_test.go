package notify

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestSendImageSize(t *testing.T) {
	sender := &fakeSender{}
	n := NewWithSender(sender, 42)

	require.NoError(t, n.SendImage(Image{Name: "small.png", Caption: "small", Data: make([]byte, 10)}))
	require.NoError(t, n.SendImage(Image{Name: "big.png", Caption: "big", Data: make([]byte, maxPhotoSize)}))
	require.Len(t, sender.sent, 2)

	photo, ok := sender.sent[0].(tgbotapi.PhotoConfig)
	require.True(t, ok, "small image goes out as a photo")
	assert.Equal(t, int64(42), photo.ChatID)
	assert.Equal(t, "small", photo.Caption)

	doc, ok := sender.sent[1].(tgbotapi.DocumentConfig)
	require.True(t, ok, "large image goes out as a document")
	assert.Equal(t, "big", doc.Caption)
}

func TestSendText(t *testing.T) {
	sender := &fakeSender{}
	n := NewWithSender(sender, 7)

	require.NoError(t, n.SendText("ROAS <4> & más\n"))
	require.Len(t, sender.sent, 1)

	msg, ok := sender.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)
	assert.Equal(t, "<pre>ROAS &lt;4&gt; &amp; más\n</pre>", msg.Text)
}

func TestDeliver(t *testing.T) {
	sender := &fakeSender{}
	n := NewWithSender(sender, 1)
	images := []Image{{Name: "a.png", Data: []byte{1}}, {Name: "b.png", Data: []byte{2}}}

	require.NoError(t, n.Deliver(images, "resumen"))
	assert.Len(t, sender.sent, 3)

	sender.sent = nil
	require.NoError(t, n.Deliver(images, "  "))
	assert.Len(t, sender.sent, 2)
}

func TestDeliverStopsOnError(t *testing.T) {
	sender := &fakeSender{err: errors.New("forbidden")}
	err := NewWithSender(sender, 1).Deliver([]Image{{Name: "a.png"}}, "resumen")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.png")
	assert.Contains(t, err.Error(), "forbidden")
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"empty", "", 10, nil},
		{"fits", "ab\ncd\n", 10, []string{"ab\ncd\n"}},
		{"line boundary", "abc\ndef\n", 5, []string{"abc\n", "def\n"}},
		{"long line", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"runes", "ñññ\nñ", 4, []string{"ñññ\n", "ñ"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := split(tt.text, tt.limit)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.text, strings.Join(got, ""))
		})
	}
}
