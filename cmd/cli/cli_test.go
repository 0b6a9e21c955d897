package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"summaryhub-backend/internal/summary/domain"
	summarydto "summaryhub-backend/internal/summary/dto"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir()) // keep a stray .env out of the test
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSummarizeFromStdin(t *testing.T) {
	out, err := run(t, `{"user_id":"u1","platform":"whatsapp","message_id":"m1","message_text":"Please confirm the meeting tomorrow at 3 PM with Alex","timestamp":"2025-11-20T14:00:00Z"}`, "summarize")
	require.NoError(t, err)

	var rec domain.SummaryRecord
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, domain.IntentConfirmMeeting, rec.Intent)
	require.NotNil(t, rec.Entities.DateTime)
	assert.Equal(t, "2025-11-21T15:00:00Z", *rec.Entities.DateTime)
	assert.Equal(t, []string{"Alex"}, rec.Entities.Person)
}

func TestSummarizeRejectsBadJSON(t *testing.T) {
	_, err := run(t, `{"message_text":`, "summarize")

	assert.ErrorContains(t, err, "decode payload")
}

func TestCleanArgs(t *testing.T) {
	out, err := run(t, "", "clean", "--platform", "sms", "hello", "hello", "world")

	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestClassifyCallsServer(t *testing.T) {
	var got summarydto.ClassifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/classify", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"type":"task","intent":"task","urgency":"low","detailed_intent":"request"}`))
	}))
	defer srv.Close()

	out, err := run(t, "", "classify", "--server", srv.URL, "--platform", "slack", "please", "send", "it")

	require.NoError(t, err)
	assert.Equal(t, summarydto.ClassifyRequest{Platform: "slack", MessageText: "please send it"}, got)
	assert.Contains(t, out, `"detailed_intent": "request"`)
}

func TestFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/history/s_missing", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not_found","summary_id":"s_missing"}`))
	}))
	defer srv.Close()

	_, err := run(t, "", "fetch", "--server", srv.URL, "s_missing")

	assert.EqualError(t, err, "summary s_missing not found")
}

func TestFetchPrintsRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"summary_id":"s_1","summary":"Hi."}`))
	}))
	defer srv.Close()

	out, err := run(t, "", "fetch", "--server", srv.URL, "s_1")

	require.NoError(t, err)
	assert.Contains(t, out, `"summary_id": "s_1"`)
}
