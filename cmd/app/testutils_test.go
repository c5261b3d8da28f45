package main

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/sushihentaime/bloglist/internal/blogservice"
	"github.com/sushihentaime/bloglist/internal/common"
	"github.com/sushihentaime/bloglist/internal/userservice"
)

const testJWTSecret = "test-secret"

type discardProducer struct{}

func (discardProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	if len(responseBody) == 0 {
		return res.StatusCode, res.Header, nil
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

// newBaseApplication builds an application without a mail consumer. db may be nil for
// tests that never reach the database.
func newBaseApplication(t *testing.T, db *sql.DB) *application {
	cache := common.NewCache(5*time.Minute, 10*time.Minute)

	userService, err := userservice.NewUserService(db, cache, userservice.TokenConfig{
		Secret: []byte(testJWTSecret),
		TTL:    time.Hour,
	})
	assert.NoError(t, err)

	cfg := &Config{
		Environment:    "testing",
		Version:        "test",
		TrustedOrigins: []string{"http://localhost:5173"},
		LimiterEnabled: false,
		LimiterRPS:     2,
		LimiterBurst:   4,
	}

	limiter := newIPRateLimiter(cfg.LimiterRPS, cfg.LimiterBurst)
	t.Cleanup(limiter.stop)

	return &application{
		config:      cfg,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		userService: userService,
		blogService: blogservice.NewBlogService(db, cache, discardProducer{}),
		limiter:     limiter,
	}
}

func newTestApplication(t *testing.T) (*application, *sql.DB) {
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	db := common.TestDB("file://../../migrations", t)

	return newBaseApplication(t, db), db
}

func (ts *testServer) do(t *testing.T, method, path string, token *string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != nil {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", *token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, token, payload)
}

func (ts *testServer) get(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, token, nil)
}

func (ts *testServer) put(t *testing.T, path string, token *string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, token, payload)
}

func (ts *testServer) delete(t *testing.T, path string, token *string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, token, nil)
}

// createTestUser registers a user and logs them in, returning the bearer token and user id.
func createTestUser(t *testing.T, app *application, username, name string) (*string, int) {
	ctx := context.Background()

	u, err := app.userService.CreateUser(ctx, username, name, "salainen")
	if err != nil {
		t.Fatal(err)
	}

	token, err := app.userService.LoginUser(ctx, username, "salainen")
	if err != nil {
		t.Fatal(err)
	}

	return &token.Token, u.ID
}

func cleanupTables(t *testing.T, db *sql.DB) {
	_, err := db.Exec("DELETE FROM blogs")
	assert.NoError(t, err)

	_, err = db.Exec("DELETE FROM users")
	assert.NoError(t, err)
}
