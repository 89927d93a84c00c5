package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSender(endpoint string) *BrevoSender {
	return &BrevoSender{
		apiKey:      "test-api-key",
		fromName:    "LifeOS",
		fromAddress: "noreply@lifeos.example",
		feedbackTo:  "team@lifeos.example",
		endpoint:    endpoint,
		client:      &http.Client{Timeout: time.Second},
	}
}

func TestSendLoginOTPEmail(t *testing.T) {
	var got brevoMessage
	var gotAPIKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIKey = r.Header.Get("api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := testSender(srv.URL).SendLoginOTPEmail(context.Background(), "user@example.com", "123456")

	require.NoError(t, err)
	assert.Equal(t, "test-api-key", gotAPIKey)
	assert.Equal(t, "noreply@lifeos.example", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "user@example.com", got.To[0].Email)
	assert.Contains(t, got.HTMLContent, "123456")
}

func TestSendLoginOTPEmail_Non2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := testSender(srv.URL).SendLoginOTPEmail(context.Background(), "user@example.com", "123456")

	assert.Error(t, err)
}

func TestSendRegistrationOTPEmail_EscapesName(t *testing.T) {
	var got brevoMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := testSender(srv.URL).SendRegistrationOTPEmail(context.Background(), "new@example.com", "123456", "<script>x</script>")

	require.NoError(t, err)
	assert.NotContains(t, got.HTMLContent, "<script>")
	assert.Contains(t, got.HTMLContent, "&lt;script&gt;")
}

func TestSendFeedbackEmail(t *testing.T) {
	var got brevoMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := testSender(srv.URL).SendFeedbackEmail(context.Background(), "Jamie", "jamie@example.com", "Bug report", "The <b>toggle</b> is broken")

	require.NoError(t, err)
	require.Len(t, got.To, 1)
	assert.Equal(t, "team@lifeos.example", got.To[0].Email)
	require.NotNil(t, got.ReplyTo)
	assert.Equal(t, "jamie@example.com", got.ReplyTo.Email)
	assert.Contains(t, got.Subject, "Bug report")
	// User-submitted markup must not survive into the rendered body.
	assert.NotContains(t, got.HTMLContent, "<b>toggle</b>")
}

func TestSendFeedbackEmail_NoRecipientConfigured(t *testing.T) {
	s := testSender("http://unused.invalid")
	s.feedbackTo = ""

	err := s.SendFeedbackEmail(context.Background(), "Jamie", "jamie@example.com", "Hi", "Hello")

	assert.Error(t, err)
}
