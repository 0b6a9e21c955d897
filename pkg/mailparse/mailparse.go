// Package mailparse reads raw RFC 5322 messages into the fields the summarizer needs
package mailparse

import (
	"fmt"
	"html"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

// maxBodyBytes bounds how much of a single part is read
const maxBodyBytes = 1 << 20

// Message is the parsed view of a raw email
type Message struct {
	MessageID string
	Subject   string
	From      string
	Date      time.Time
	Body      string
}

// Text renders the message the way the email cleanup chain expects it
func (m *Message) Text() string {
	if m.Subject == "" {
		return m.Body
	}
	return "Subject: " + m.Subject + "\n" + m.Body
}

// Timestamp returns the Date header as RFC 3339, or "" when it is missing
func (m *Message) Timestamp() string {
	if m.Date.IsZero() {
		return ""
	}
	return m.Date.UTC().Format(time.RFC3339)
}

var (
	htmlBlock = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(?:script|style)>`)
	htmlBreak = regexp.MustCompile(`(?i)<(?:br|/p|/div|/li|/tr)[^>]*>`)
	htmlTag   = regexp.MustCompile(`<[^>]+>`)
)

// Parse reads a raw message. The first text/plain part is preferred; an HTML part
// is stripped to text when no plain part exists.
func Parse(r io.Reader) (*Message, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return nil, fmt.Errorf("read message: %w", err)
	}
	defer mr.Close()

	msg := &Message{}
	h := mr.Header
	if msg.Subject, err = h.Subject(); err != nil {
		msg.Subject = h.Get("Subject")
	}
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.MessageID, _ = h.MessageID()
	if date, err := h.Date(); err == nil {
		msg.Date = date
	}
	if from, err := h.AddressList("From"); err == nil && len(from) > 0 {
		msg.From = from[0].Address
	}

	var plain, htmlBody string
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil && !message.IsUnknownCharset(err) {
			return nil, fmt.Errorf("read part: %w", err)
		}
		if p == nil {
			continue
		}
		inline, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		contentType, _, _ := inline.ContentType()
		data, err := io.ReadAll(io.LimitReader(p.Body, maxBodyBytes))
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		switch {
		case plain == "" && (contentType == "text/plain" || contentType == ""):
			plain = string(data)
		case htmlBody == "" && contentType == "text/html":
			htmlBody = string(data)
		}
	}

	switch {
	case strings.TrimSpace(plain) != "":
		msg.Body = strings.TrimSpace(strings.ReplaceAll(plain, "\r\n", "\n"))
	case htmlBody != "":
		msg.Body = StripHTML(htmlBody)
	}
	return msg, nil
}

// StripHTML reduces an HTML body to plain lines
func StripHTML(s string) string {
	s = htmlBlock.ReplaceAllString(s, "")
	s = htmlBreak.ReplaceAllString(s, "\n")
	s = htmlTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
