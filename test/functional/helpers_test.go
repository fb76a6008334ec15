//go:build functional

// Package functional provides functional tests for the listbot webhook
// served over a real listener and backed by a Redis-protocol store.
package functional

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"go.uber.org/zap"

	"github.com/vyrodovalexey/listbot/internal/config"
	"github.com/vyrodovalexey/listbot/internal/server"
	"github.com/vyrodovalexey/listbot/internal/store"
)

// Environment variable names for test configuration.
const (
	EnvTestServerHost    = "TEST_SERVER_HOST"
	EnvTestTimeout       = "TEST_TIMEOUT"
	EnvTestMetricsEnable = "TEST_METRICS_ENABLED"
)

// Default test configuration values.
const (
	DefaultTestHost        = "localhost"
	DefaultTestTimeout     = 30 * time.Second
	DefaultRequestTimeout  = 5 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultStoreTimeout    = 2 * time.Second
	DefaultMetricsEnabled  = false

	TestCommand = "/listbot"
	TestUser    = "Chip"
)

// TestConfig holds test configuration loaded from environment.
type TestConfig struct {
	Host           string
	Timeout        time.Duration
	MetricsEnabled bool
}

// LoadTestConfig loads test configuration from environment variables.
func LoadTestConfig() *TestConfig {
	cfg := &TestConfig{
		Host:           DefaultTestHost,
		Timeout:        DefaultTestTimeout,
		MetricsEnabled: DefaultMetricsEnabled,
	}

	if host := os.Getenv(EnvTestServerHost); host != "" {
		cfg.Host = host
	}

	if timeoutStr := os.Getenv(EnvTestTimeout); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			cfg.Timeout = timeout
		}
	}

	if metricsStr := os.Getenv(EnvTestMetricsEnable); metricsStr != "" {
		if enabled, err := strconv.ParseBool(metricsStr); err == nil {
			cfg.MetricsEnabled = enabled
		}
	}

	return cfg
}

// TestServer wraps the server and its Redis instance for testing purposes.
type TestServer struct {
	Server  *server.Server
	Redis   *miniredis.Miniredis
	Store   *store.RedisStore
	BaseURL string
	timeout time.Duration
	t       *testing.T
	mu      sync.Mutex
	started bool
}

// NewTestServer creates a new test server instance on a free port.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	testCfg := LoadTestConfig()

	listener, err := net.Listen("tcp", net.JoinHostPort(testCfg.Host, "0"))
	if err != nil {
		t.Fatalf("Failed to find available port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	mr := miniredis.RunT(t)
	redisStore, err := store.NewRedisStore(store.RedisOptions{
		URL:     "redis://" + mr.Addr() + "/0",
		Timeout: DefaultStoreTimeout,
	})
	if err != nil {
		t.Fatalf("Failed to create redis store: %v", err)
	}
	t.Cleanup(func() { _ = redisStore.Close() })

	cfg := &config.Config{
		ServerPort:      port,
		LogLevel:        "error",
		ShutdownTimeout: DefaultShutdownTimeout,
		MetricsEnabled:  testCfg.MetricsEnabled,
		StoreBackend:    config.StoreBackendRedis,
		StoreTimeout:    DefaultStoreTimeout,
	}

	return &TestServer{
		Server:  server.New(cfg, zap.NewNop(), redisStore),
		Redis:   mr,
		Store:   redisStore,
		BaseURL: fmt.Sprintf("http://%s:%d", testCfg.Host, port),
		timeout: testCfg.Timeout,
		t:       t,
	}
}

// Start starts the test server.
func (ts *TestServer) Start() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if ts.started {
		return
	}

	go func() {
		if err := ts.Server.Start(); err != nil {
			ts.t.Logf("Server error: %v", err)
		}
	}()

	ts.waitForReady()
	ts.started = true
}

// waitForReady waits for the server to be ready to accept connections.
func (ts *TestServer) waitForReady() {
	ctx, cancel := context.WithTimeout(context.Background(), ts.timeout)
	defer cancel()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ts.t.Fatalf("Server did not become ready within timeout")
		case <-ticker.C:
			resp, err := http.Get(ts.BaseURL + "/ready")
			if err == nil {
				resp.Body.Close()
				if resp.StatusCode == http.StatusOK {
					return
				}
			}
		}
	}
}

// Stop stops the test server.
func (ts *TestServer) Stop() {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if !ts.started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
	defer cancel()

	if err := ts.Server.Shutdown(ctx); err != nil {
		ts.t.Logf("Server shutdown error: %v", err)
	}

	ts.started = false
}

// ChatClient posts commands the way the chat platform does.
type ChatClient struct {
	client  *http.Client
	baseURL string
	channel string
	user    string
}

// NewChatClient creates a client bound to one channel and user.
func NewChatClient(baseURL, channel, user string) *ChatClient {
	return &ChatClient{
		client:  &http.Client{Timeout: DefaultRequestTimeout},
		baseURL: baseURL,
		channel: channel,
		user:    user,
	}
}

// Response represents an HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// CommandResponse is the reply envelope.
type CommandResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Post sends a form-encoded command and returns the raw response.
func (c *ChatClient) Post(ctx context.Context, text string) (*Response, error) {
	form := url.Values{
		"channel_id": {c.channel},
		"text":       {text},
		"command":    {TestCommand},
		"user_id":    {"1"},
		"user_name":  {c.user},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}, nil
}

// Say posts a command and returns the reply text, failing the test on any
// transport or envelope error.
func (c *ChatClient) Say(t *testing.T, text string) string {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultRequestTimeout)
	defer cancel()

	resp, err := c.Post(ctx, text)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	AssertStatusCode(t, resp, http.StatusOK)

	var reply CommandResponse
	if err := json.Unmarshal(resp.Body, &reply); err != nil {
		t.Fatalf("Failed to parse reply: %v", err)
	}
	if reply.ResponseType != "in_channel" {
		t.Errorf("Expected response_type in_channel, got %q", reply.ResponseType)
	}
	return reply.Text
}

// AssertStatusCode asserts that the response has the expected status code.
func AssertStatusCode(t *testing.T, resp *Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("Expected status code %d, got %d. Body: %s", expected, resp.StatusCode, string(resp.Body))
	}
}

// AssertReply asserts that a reply has the expected text.
func AssertReply(t *testing.T, got, expected string) {
	t.Helper()
	if got != expected {
		t.Errorf("Expected reply %q, got %q", expected, got)
	}
}

// LogTestStart logs the start of a test.
func LogTestStart(t *testing.T, testID, testName string) {
	t.Helper()
	t.Logf("Starting test %s: %s", testID, testName)
}

// LogTestEnd logs the end of a test.
func LogTestEnd(t *testing.T, testID string) {
	t.Helper()
	t.Logf("Completed test %s", testID)
}
