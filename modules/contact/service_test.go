package contact_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ruhtouch/contactapi/modules/contact"
	"github.com/ruhtouch/contactapi/pkg/clientip"
	"github.com/ruhtouch/contactapi/pkg/email"
	"github.com/ruhtouch/contactapi/pkg/logger"
	"github.com/ruhtouch/contactapi/pkg/ratelimit"
)

const validJSON = `{"name":"Jane Doe","email":"jane@example.com","phone":"+1 555 123 4567","service":"family","message":"I need help with family counseling please"}`

type mockDispatcher struct {
	mock.Mock
}

func (m *mockDispatcher) Verify(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockDispatcher) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (*ratelimit.Result, error) {
	return nil, errors.New("store unreachable")
}

func (failingLimiter) Status(context.Context, string) (*ratelimit.Result, error) {
	return nil, errors.New("store unreachable")
}

func (failingLimiter) Reset(context.Context, string) error { return nil }

func testConfig() contact.Config {
	return contact.Config{HoneypotField: "website", Brand: "RuhTouch", Timezone: "UTC"}
}

func newLimiter(t *testing.T, points int) ratelimit.Limiter {
	t.Helper()
	store := ratelimit.NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })
	limiter, err := ratelimit.NewFixedWindow(store, points, 15*time.Minute)
	require.NoError(t, err)
	return limiter
}

func newHandler(t *testing.T, limiter ratelimit.Limiter, mail contact.Mail) http.Handler {
	t.Helper()
	svc, err := contact.NewService(testConfig(), limiter, mail,
		contact.WithLogger(logger.Discard()),
		contact.WithClock(func() time.Time { return submittedAt }),
	)
	require.NoError(t, err)
	return clientip.Middleware(svc.Handle())
}

func configuredMail(d email.Dispatcher) contact.Mail {
	return contact.Mail{Dispatcher: d, From: "noreply@ruhtouch.com", To: "inbox@ruhtouch.com"}
}

func do(h http.Handler, method, contentType, body, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.RemoteAddr = ip + ":54321"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestService_Submit(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	d.On("Verify", mock.Anything).Return(nil).Once()

	var sent email.Message
	d.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Run(func(args mock.Arguments) { sent = args.Get(1).(email.Message) }).
		Return(nil).Once()

	h := newHandler(t, newLimiter(t, 5), configuredMail(d))
	rec := do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":true,"message":"Your message has been sent successfully!"}`, rec.Body.String())
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))

	d.AssertExpectations(t)
	assert.Equal(t, "noreply@ruhtouch.com", sent.From)
	assert.Equal(t, "Jane Doe", sent.FromName)
	assert.Equal(t, "inbox@ruhtouch.com", sent.To)
	assert.Equal(t, "jane@example.com", sent.ReplyTo)
	assert.Equal(t, "New Contact — Family Counseling — Jane Doe", sent.Subject)
	assert.Contains(t, sent.HTML, "Family Counseling")
	assert.Contains(t, sent.HTML, "192.0.2.1")
	assert.Contains(t, sent.Text, "I need help with family counseling please")
	assert.Contains(t, sent.Text, "2025-03-14 09:30:00 UTC")
}

func TestService_SubmitForm(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	d.On("Verify", mock.Anything).Return(nil)
	d.On("Send", mock.Anything, mock.Anything).Return(nil)

	h := newHandler(t, newLimiter(t, 5), configuredMail(d))

	form := url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@example.com"},
		"message": {"I need help with family counseling please"},
		"website": {""},
	}
	rec := do(h, http.MethodPost, "application/x-www-form-urlencoded", form.Encode(), "192.0.2.1")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range form {
		require.NoError(t, mw.WriteField(k, v[0]))
	}
	require.NoError(t, mw.Close())

	rec = do(h, http.MethodPost, mw.FormDataContentType(), buf.String(), "192.0.2.1")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	d.AssertNumberOfCalls(t, "Send", 2)
}

func TestService_ValidationFailed(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	h := newHandler(t, newLimiter(t, 5), configuredMail(d))

	body := `{"name":"Jane Doe","email":"not-an-email","message":"I need help with family counseling please"}`
	rec := do(h, http.MethodPost, "application/json", body, "192.0.2.1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation failed","details":["Valid email is required"]}`, rec.Body.String())
	d.AssertNotCalled(t, "Verify", mock.Anything)
	d.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_Honeypot(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	h := newHandler(t, newLimiter(t, 5), configuredMail(d))

	form := url.Values{
		"name":    {"Jane Doe"},
		"email":   {"jane@example.com"},
		"message": {"I need help with family counseling please"},
		"website": {"http://spam.example"},
	}
	rec := do(h, http.MethodPost, "application/x-www-form-urlencoded", form.Encode(), "192.0.2.1")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Validation failed","details":["Invalid submission detected"]}`, rec.Body.String())
	d.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_RateLimited(t *testing.T) {
	t.Parallel()

	h := newHandler(t, newLimiter(t, 5), contact.Mail{})

	for i := range 5 {
		rec := do(h, http.MethodPost, "application/json", `{}`, "192.0.2.1")
		require.Equal(t, http.StatusBadRequest, rec.Code, "request %d", i+1)
	}

	rec := do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	body := decode(t, rec)
	assert.Equal(t, "Too many requests. Please try again later.", body["error"])

	retryAfter, ok := body["retryAfter"].(float64)
	require.True(t, ok)
	assert.Greater(t, retryAfter, float64(0))
	assert.LessOrEqual(t, retryAfter, float64(900))
	assert.Equal(t, strconv.Itoa(int(retryAfter)), rec.Header().Get("Retry-After"))

	// other clients keep their own quota
	rec = do(h, http.MethodPost, "application/json", `{}`, "192.0.2.2")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestService_RateLimitKeysOnPeerAddress(t *testing.T) {
	t.Parallel()

	post := func(h http.Handler, forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		req.RemoteAddr = "192.0.2.1:54321"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("forwarding headers not trusted", func(t *testing.T) {
		t.Parallel()
		h := newHandler(t, newLimiter(t, 5), contact.Mail{})

		codes := make([]int, 0, 8)
		for i := range 8 {
			codes = append(codes, post(h, "203.0.113."+strconv.Itoa(i+1)))
		}
		assert.Equal(t, []int{400, 400, 400, 400, 400, 429, 429, 429}, codes)
	})

	t.Run("client-written entries behind a trusted proxy", func(t *testing.T) {
		t.Parallel()
		resolver, err := clientip.NewResolver(clientip.Config{
			TrustedHeaders: []string{"X-Forwarded-For"},
			TrustedProxies: []string{"192.0.2.1"},
		})
		require.NoError(t, err)

		svc, err := contact.NewService(testConfig(), newLimiter(t, 5), contact.Mail{},
			contact.WithLogger(logger.Discard()),
		)
		require.NoError(t, err)
		h := resolver.Middleware(svc.Handle())

		// the proxy appends the address it accepted the connection from
		codes := make([]int, 0, 8)
		for i := range 8 {
			codes = append(codes, post(h, "203.0.113."+strconv.Itoa(i+1)+", 198.51.100.23"))
		}
		assert.Equal(t, []int{400, 400, 400, 400, 400, 429, 429, 429}, codes)

		assert.Equal(t, http.StatusBadRequest, post(h, "198.51.100.24"), "other clients keep their own quota")
	})
}

func TestService_MailNotConfigured(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mail contact.Mail
	}{
		{"no dispatcher", contact.Mail{From: "noreply@ruhtouch.com", To: "inbox@ruhtouch.com"}},
		{"no recipient", contact.Mail{Dispatcher: &mockDispatcher{}, From: "noreply@ruhtouch.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := newHandler(t, newLimiter(t, 5), tt.mail)
			rec := do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"Email service is not configured"}`, rec.Body.String())
		})
	}
}

func TestService_MailFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   func(d *mockDispatcher)
		message string
	}{
		{
			name: "verify fails",
			setup: func(d *mockDispatcher) {
				d.On("Verify", mock.Anything).Return(errors.New("dial tcp: connection refused"))
			},
			message: "Email service is temporarily unavailable",
		},
		{
			name: "send throttled",
			setup: func(d *mockDispatcher) {
				d.On("Verify", mock.Anything).Return(nil)
				d.On("Send", mock.Anything, mock.Anything).Return(email.ErrThrottled)
			},
			message: "Email service is temporarily unavailable",
		},
		{
			name: "send fails",
			setup: func(d *mockDispatcher) {
				d.On("Verify", mock.Anything).Return(nil)
				d.On("Send", mock.Anything, mock.Anything).Return(errors.New("550 mailbox unavailable"))
			},
			message: "An unexpected error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &mockDispatcher{}
			tt.setup(d)

			h := newHandler(t, newLimiter(t, 5), configuredMail(d))
			rec := do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"`+tt.message+`"}`, rec.Body.String())
			assert.NotContains(t, rec.Body.String(), "refused")
			assert.NotContains(t, rec.Body.String(), "550")
			d.AssertExpectations(t)
		})
	}
}

func TestService_VerifyFailureSkipsSend(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	d.On("Verify", mock.Anything).Return(errors.New("auth failed"))

	h := newHandler(t, newLimiter(t, 5), configuredMail(d))
	do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")

	d.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestService_BadRequests(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		status      int
		expected    string
	}{
		{"malformed json", "application/json", `{"name":`, http.StatusBadRequest, `{"error":"Invalid JSON"}`},
		{"json array", "application/json", `[1,2]`, http.StatusBadRequest, `{"error":"Invalid JSON"}`},
		{"plain text", "text/plain", "hello", http.StatusBadRequest, `{"error":"Invalid content type"}`},
		{"missing content type", "", "hello", http.StatusBadRequest, `{"error":"Invalid content type"}`},
		{"multipart without boundary", "multipart/form-data", "x", http.StatusBadRequest, `{"error":"Invalid content type"}`},
		{
			"oversized json", "application/json",
			`{"message":"` + strings.Repeat("a", 2<<20) + `"}`,
			http.StatusRequestEntityTooLarge, `{"error":"Request body too large"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := &mockDispatcher{}
			h := newHandler(t, newLimiter(t, 5), configuredMail(d))
			rec := do(h, http.MethodPost, tt.contentType, tt.body, "192.0.2.1")

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
			d.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestService_BodyLimitFromConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.MaxBodyBytes = 64
	svc, err := contact.NewService(cfg, newLimiter(t, 10), contact.Mail{},
		contact.WithLogger(logger.Discard()),
	)
	require.NoError(t, err)
	h := clientip.Middleware(svc.Handle())

	rec := do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	form := url.Values{"name": {"Jane Doe"}, "message": {strings.Repeat("a", 100)}}.Encode()
	rec = do(h, http.MethodPost, "application/x-www-form-urlencoded", form, "192.0.2.1")
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = do(h, http.MethodPost, "application/json", `{}`, "192.0.2.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code, "small bodies still reach validation")
}

func TestService_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	h := newHandler(t, newLimiter(t, 1), contact.Mail{})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := do(h, method, "", "", "192.0.2.1")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, method)
		assert.JSONEq(t, `{"error":"Method not allowed"}`, rec.Body.String(), method)
		assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Allow"), method)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Remaining"), method)
	}

	// rejected methods leave the single slot for the POST
	rec := do(h, http.MethodPost, "application/json", `{}`, "192.0.2.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
}

func TestService_Preflight(t *testing.T) {
	t.Parallel()

	limiter := newLimiter(t, 1)
	h := newHandler(t, limiter, contact.Mail{})

	for range 3 {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://ruhtouch.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
	}

	// preflights do not consume the quota
	rec := do(h, http.MethodPost, "application/json", `{}`, "192.0.2.1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestService_LimiterFailureRejects(t *testing.T) {
	t.Parallel()

	d := &mockDispatcher{}
	h := newHandler(t, failingLimiter{}, configuredMail(d))
	rec := do(h, http.MethodPost, "application/json", validJSON, "192.0.2.1")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred. Please try again later."}`, rec.Body.String())
	d.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestNewService(t *testing.T) {
	t.Parallel()

	_, err := contact.NewService(testConfig(), nil, contact.Mail{})
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)

	cfg := testConfig()
	cfg.Timezone = "Mars/Olympus_Mons"
	_, err = contact.NewService(cfg, newLimiter(t, 5), contact.Mail{})
	assert.ErrorIs(t, err, contact.ErrInvalidConfig)
}
