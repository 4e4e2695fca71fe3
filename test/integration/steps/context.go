//go:build integration

// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/dompet/ledger/config"
	"github.com/dompet/ledger/internal/infra/dependency"
	"github.com/dompet/ledger/internal/integration/persistence/model"
	"github.com/dompet/ledger/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"
	resendPath    = "/emails"
)

type testContext struct {
	uri          string
	headers      map[string]string
	client       *http.Client
	response     *response
	db           *mock.Db
	redis        *redis.Client
	emailAPI     *mock.ApiMock
	injector     *dependency.Injector
	accessToken  string
	refreshToken string
	resetToken   string
	userIDs      map[string]uuid.UUID
	assetIDs     map[string]uuid.UUID
	recordIDs    map[string]uuid.UUID
	lastID       string
	lastFeeID    string
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testServerPort int
var portInit sync.Once
var sharedInjector *dependency.Injector
var sharedEmailAPI *mock.ApiMock

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
	})
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func newTestContext() *testContext {
	initializePort()

	return &testContext{
		uri:    fmt.Sprintf("http://localhost:%d", testServerPort),
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":                 &model.UserModel{},
			"refresh_tokens":        &model.RefreshTokenModel{},
			"password_reset_tokens": &model.PasswordResetTokenModel{},
			"assets":                &model.AssetModel{},
			"records":               &model.RecordModel{},
			"email_queue":           &model.EmailQueueModel{},
		}),
		redis: mock.NewRedis(),
	}
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.resetToken = ""
	t.userIDs = make(map[string]uuid.UUID)
	t.assetIDs = make(map[string]uuid.UUID)
	t.recordIDs = make(map[string]uuid.UUID)
	t.lastID = ""
	t.lastFeeID = ""

	_ = t.db.ClearDB()
	_ = mock.ClearRedis(t.redis)
	if sharedEmailAPI != nil {
		sharedEmailAPI.Reset()
		sharedEmailAPI.SetResponse(http.MethodPost, resendPath, http.StatusOK, map[string]any{"id": "msg-" + uuid.NewString()})
	}
	if sharedInjector != nil {
		_ = sharedInjector.LoginRateLimiter.Reset(context.Background())
	}
}

// testConfig builds the server config: real JWTs, cheap bcrypt, a fake Resend
// endpoint, a short ledger lock wait and login limiting at five attempts.
func (t *testContext) testConfig(emailAPIURL string) *config.Config {
	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.Port = testServerPort
	cfg.JWT.Secret = testJWTSecret
	cfg.JWT.BcryptCost = bcrypt.MinCost
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendBaseURL = emailAPIURL
	cfg.Email.APIBaseURL = t.uri
	cfg.Email.AppBaseURL = "http://app.test"
	cfg.Email.WorkerEnabled = true
	cfg.Ledger.LockTTL = 5 * time.Second
	cfg.Ledger.LockWait = 200 * time.Millisecond
	cfg.RateLimit.LoginAttempts = 5
	cfg.RateLimit.LoginWindow = time.Minute
	cfg.CORS.AllowedOrigins = nil
	return cfg
}

func (t *testContext) startServer() error {
	var startErr error
	serverInit.Do(func() {
		gin.SetMode(gin.TestMode)

		sharedEmailAPI = mock.NewApiServer()
		sharedEmailAPI.Start()
		sharedEmailAPI.SetResponse(http.MethodPost, resendPath, http.StatusOK, map[string]any{"id": "msg-" + uuid.NewString()})

		injector, err := dependency.NewInjector(t.testConfig(sharedEmailAPI.GetUrl()), t.db.DbConn, t.redis, t.db.HealthCheck)
		if err != nil {
			startErr = err
			return
		}
		sharedInjector = injector

		engine := injector.Router.Setup("test")
		server := &http.Server{
			Addr:    fmt.Sprintf(":%d", testServerPort),
			Handler: engine,
		}
		go func() {
			_ = server.ListenAndServe()
		}()
	})
	if startErr != nil {
		return startErr
	}
	if sharedInjector == nil {
		return fmt.Errorf("server failed to start")
	}

	t.injector = sharedInjector
	t.emailAPI = sharedEmailAPI

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return nil
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("server did not become healthy on port %d", testServerPort)
}

// replacePlaceholders substitutes {{asset:Name}}, {{record:Name}}, {{last_id}},
// {{fee_id}} and the token placeholders.
func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{refresh_token}}", t.refreshToken)
	content = strings.ReplaceAll(content, "{{access_token}}", t.accessToken)
	content = strings.ReplaceAll(content, "{{reset_token}}", t.resetToken)
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID)
	content = strings.ReplaceAll(content, "{{fee_id}}", t.lastFeeID)
	for name, id := range t.assetIDs {
		content = strings.ReplaceAll(content, "{{asset:"+name+"}}", id.String())
	}
	for name, id := range t.recordIDs {
		content = strings.ReplaceAll(content, "{{record:"+name+"}}", id.String())
	}
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path

	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}

	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{
		status: resp.StatusCode,
	}

	var responseBody any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if object, ok := responseBody.(map[string]any); ok {
		if id, ok := object["id"].(string); ok {
			t.lastID = id
		}
		if feeID, ok := object["feeId"].(string); ok {
			t.lastFeeID = feeID
		}
	}

	return nil
}

// getFieldValue walks a dot separated path through decoded JSON.
// Numeric segments index arrays; every other segment is an object key.
func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	fields := strings.Split(dotSeparatedField, ".")
	field := object

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if m, ok := field.(map[string]any); ok {
			field = m[currentField]
			continue
		}

		i, err := strconv.Atoi(currentField)
		if err != nil {
			return nil
		}
		arr, ok := field.([]any)
		if !ok || i < 0 || i >= len(arr) {
			return nil
		}
		field = arr[i]
	}

	return field
}

func hashPassword(password string) string {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("failed to hash password: %v", err))
	}
	return string(hashedBytes)
}

func (t *testContext) processEmails() {
	t.injector.EmailWorker.ProcessNow(context.Background())
}
