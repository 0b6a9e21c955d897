package mailparse

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plainMessage = "From: Alex Doe <alex@example.com>\r\n" +
	"To: sam@example.com\r\n" +
	"Subject: Project sync\r\n" +
	"Date: Thu, 20 Nov 2025 14:00:00 +0000\r\n" +
	"Message-Id: <abc123@example.com>\r\n" +
	"Content-Type: text/plain; charset=utf-8\r\n" +
	"\r\n" +
	"Please confirm the meeting at 3 PM with Priya.\r\n" +
	"--\r\n" +
	"Alex\r\n"

const htmlOnlyMessage = "From: bot@example.com\r\n" +
	"Subject: Reminder\r\n" +
	"MIME-Version: 1.0\r\n" +
	"Content-Type: multipart/alternative; boundary=XYZ\r\n" +
	"\r\n" +
	"--XYZ\r\n" +
	"Content-Type: text/html; charset=utf-8\r\n" +
	"\r\n" +
	"<html><style>p{}</style><p>Submit the report by EOD</p><p>Thanks &amp; bye</p></html>\r\n" +
	"--XYZ--\r\n"

func TestParsePlain(t *testing.T) {
	msg, err := Parse(strings.NewReader(plainMessage))
	require.NoError(t, err)

	assert.Equal(t, "Project sync", msg.Subject)
	assert.Equal(t, "alex@example.com", msg.From)
	assert.Equal(t, "abc123@example.com", msg.MessageID)
	assert.True(t, msg.Date.Equal(time.Date(2025, 11, 20, 14, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-11-20T14:00:00Z", msg.Timestamp())
	assert.Equal(t, "Please confirm the meeting at 3 PM with Priya.\n--\nAlex", msg.Body)
	assert.Equal(t, "Subject: Project sync\nPlease confirm the meeting at 3 PM with Priya.\n--\nAlex", msg.Text())
}

func TestParseHTMLFallback(t *testing.T) {
	msg, err := Parse(strings.NewReader(htmlOnlyMessage))
	require.NoError(t, err)

	assert.Equal(t, "Reminder", msg.Subject)
	assert.Equal(t, "Submit the report by EOD\nThanks & bye", msg.Body)
	assert.Empty(t, msg.Timestamp())
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<div>Hello<br>World</div><script>alert(1)</script>")

	assert.Equal(t, "Hello\nWorld", got)
}

func TestMessageTextWithoutSubject(t *testing.T) {
	m := &Message{Body: "just a body"}

	assert.Equal(t, "just a body", m.Text())
}
