package striga_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/loopcard/loop_service/internal/adapters/striga"
	"github.com/loopcard/loop_service/pkg/logger"
)

const testSecret = "test_hmac_secret"

func setupTestClient(handler http.HandlerFunc) (*striga.Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := striga.NewClient(striga.Config{
		Environment: striga.Sandbox,
		APIKeyID:    "test_key_id",
		HMACSecret:  testSecret,
		CardAppID:   "test_card_app",
		APIBase:     server.URL,
		Timeout:     5 * time.Second,
	}, logger.NewNop(), nil)
	return client, server
}

func hmacHex(secret, canonical string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}

// fakeTransport counts calls without touching the network. Used where a
// test has to prove that no request was attempted.
type fakeTransport struct {
	calls     []string
	endpoints striga.Endpoints
	respond   func(method, url string, out interface{}) error
}

func (f *fakeTransport) Do(ctx context.Context, method, url string, body, out interface{}, opts ...striga.CallOption) error {
	f.calls = append(f.calls, method+" "+url)
	if f.respond != nil {
		return f.respond(method, url, out)
	}
	return nil
}

func (f *fakeTransport) DoBearer(ctx context.Context, method, url, token string, out interface{}) error {
	f.calls = append(f.calls, method+" "+url)
	if f.respond != nil {
		return f.respond(method, url, out)
	}
	return nil
}

func (f *fakeTransport) Endpoints() striga.Endpoints {
	if f.endpoints == (striga.Endpoints{}) {
		return striga.Endpoints{
			API:        "https://api.test",
			Ramp:       "https://ramp.test",
			Exchange:   "https://exchange.test",
			Onboarding: "https://onboarding.test",
		}
	}
	return f.endpoints
}

func TestDoSignsRequestWithBody(t *testing.T) {
	var (
		gotTimestamp string
		gotSignature string
		gotAPIKey    string
		gotBody      []byte
	)

	var requestURL string
	handler := func(w http.ResponseWriter, r *http.Request) {
		gotTimestamp = r.Header.Get("X-Timestamp")
		gotSignature = r.Header.Get("X-Signature")
		gotAPIKey = r.Header.Get("Api-Key")
		gotBody, _ = io.ReadAll(r.Body)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{"userId":"u1"}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()
	requestURL = server.URL + "/user"

	var out struct {
		UserID string `json:"userId"`
	}
	err := client.Do(context.Background(), "POST", requestURL, map[string]string{"email": "a@b.c"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "u1", out.UserID)

	assert.Equal(t, "test_key_id", gotAPIKey)
	require.NotEmpty(t, gotTimestamp)
	expected := hmacHex(testSecret, gotTimestamp+"|POST|"+requestURL+"|"+string(gotBody))
	assert.Equal(t, expected, gotSignature)
}

func TestDoSignsRequestWithoutBody(t *testing.T) {
	var gotTimestamp, gotSignature string

	handler := func(w http.ResponseWriter, r *http.Request) {
		gotTimestamp = r.Header.Get("X-Timestamp")
		gotSignature = r.Header.Get("X-Signature")
		body, _ := io.ReadAll(r.Body)
		assert.Empty(t, body)
		w.Write([]byte(`{}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()
	requestURL := server.URL + "/vaults"

	err := client.Do(context.Background(), "GET", requestURL, nil, nil)
	require.NoError(t, err)

	// No trailing delimiter when the request has no body.
	expected := hmacHex(testSecret, gotTimestamp+"|GET|"+requestURL)
	assert.Equal(t, expected, gotSignature)
}

func TestDoOptionalHeaders(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "user-123", r.Header.Get("User-Uuid"))
		assert.Equal(t, "card-app-1", r.Header.Get("Card-App-Id"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	err := client.Do(context.Background(), "GET", server.URL+"/ping", nil, nil,
		striga.WithUserUUID("user-123"),
		striga.WithCardAppID("card-app-1"),
		striga.WithBearer("tok"),
	)
	require.NoError(t, err)
}

func TestDoOptionalHeadersAbsentByDefault(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("User-Uuid"))
		assert.Empty(t, r.Header.Get("Card-App-Id"))
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	require.NoError(t, client.Do(context.Background(), "GET", server.URL+"/ping", nil, nil))
}

func TestDoReturnsAPIError(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"code":"USER_EXISTS","message":"user already exists"}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	err := client.Do(context.Background(), "POST", server.URL+"/user", map[string]string{"email": "a@b.c"}, nil)
	require.Error(t, err)

	apiErr, ok := err.(*striga.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "USER_EXISTS", apiErr.Code)
	assert.Equal(t, "user already exists", apiErr.Message)
}

func TestDoAPIErrorWithOpaqueBody(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	err := client.Do(context.Background(), "GET", server.URL+"/vaults", nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*striga.APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
}

func TestDoBearerSkipsSignatureHeaders(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer single-use-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("X-Signature"))
		assert.Empty(t, r.Header.Get("X-Timestamp"))
		assert.Empty(t, r.Header.Get("Api-Key"))
		w.Write([]byte(`{"cardId":"c1","pan":"4111111111111111"}`))
	}

	client, server := setupTestClient(handler)
	defer server.Close()

	var out striga.CardDetails
	err := client.DoBearer(context.Background(), "GET", server.URL+"/cards/c1/details", "single-use-token", &out)
	require.NoError(t, err)
	assert.Equal(t, "c1", out.CardID)
}

func TestSensitiveResponseBodyNotLogged(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := logger.FromZap(zap.New(core))

	handler := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/token/loopcard-ramp-sandbox":
			w.Write([]byte(`{"token":"tok-never-log-me"}`))
		case "/cards/c1/details":
			w.Write([]byte(`{"cardId":"c1","pan":"4111222233334444"}`))
		default:
			w.Write([]byte(`{"marker":"plain-body-marker"}`))
		}
	}
	server := httptest.NewServer(http.HandlerFunc(handler))
	defer server.Close()

	client := striga.NewClient(striga.Config{
		Environment: striga.Sandbox,
		APIKeyID:    "test_key_id",
		HMACSecret:  testSecret,
		APIBase:     server.URL,
		Timeout:     5 * time.Second,
	}, log, nil)

	var tok struct {
		Token string `json:"token"`
	}
	err := client.Do(context.Background(), "POST", server.URL+"/auth/token/loopcard-ramp-sandbox", nil, &tok,
		striga.WithSensitiveResponse())
	require.NoError(t, err)
	require.Equal(t, "tok-never-log-me", tok.Token)

	var details striga.CardDetails
	require.NoError(t, client.DoBearer(context.Background(), "GET", server.URL+"/cards/c1/details", tok.Token, &details))
	require.Equal(t, "4111222233334444", details.PAN)

	require.NoError(t, client.Do(context.Background(), "GET", server.URL+"/vaults", nil, nil))

	var lines []string
	for _, entry := range observed.All() {
		lines = append(lines, fmt.Sprintf("%s %v", entry.Message, entry.ContextMap()))
	}
	logged := strings.Join(lines, "\n")

	// Token and card data stay out of the log; ordinary bodies are
	// debug-logged as usual.
	assert.NotContains(t, logged, "tok-never-log-me")
	assert.NotContains(t, logged, "4111222233334444")
	assert.Contains(t, logged, "plain-body-marker")
}

func TestEndpointsAPIBaseOverride(t *testing.T) {
	client := striga.NewClient(striga.Config{
		Environment: striga.Sandbox,
		APIKeyID:    "k",
		HMACSecret:  "s",
		APIBase:     "http://localhost:9999",
	}, logger.NewNop(), nil)

	eps := client.Endpoints()
	assert.Equal(t, "http://localhost:9999", eps.API)
	// The embed hosts stay environment-fixed.
	assert.Equal(t, "https://ramp.sandbox.striga.com", eps.Ramp)
}
