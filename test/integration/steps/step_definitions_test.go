//go:build integration

package steps

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dompet/ledger/internal/integration/persistence/model"
	"github.com/dompet/ledger/test/integration/mock"
)

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		Name: "dompet-ledger-api",
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	test := newTestContext()

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.before()
		return ctx, nil
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a verified user exists with email "([^"]*)" and password "([^"]*)"$`, test.aVerifiedUserExists)
	ctx.Given(`^an unverified user exists with email "([^"]*)" and password "([^"]*)"$`, test.anUnverifiedUserExists)
	ctx.Given(`^I am logged in as "([^"]*)" with password "([^"]*)"$`, test.iAmLoggedInAs)
	ctx.Given(`^I use an expired access token for "([^"]*)"$`, test.iUseAnExpiredAccessTokenFor)

	// Ledger setup steps
	ctx.Given(`^I have an? "([^"]*)" asset "([^"]*)" with amount "([^"]*)"$`, test.iHaveAnAsset)
	ctx.Given(`^I have created the record "([^"]*)" with body:$`, test.iHaveCreatedTheRecord)
	ctx.Given(`^the ledger of "([^"]*)" is locked by another request$`, test.theLedgerIsLocked)

	// Email provider steps
	ctx.Given(`^the email provider responds with status (\d+)$`, test.theEmailProviderRespondsWithStatus)
	ctx.When(`^the email worker runs$`, test.theEmailWorkerRuns)
	ctx.When(`^I follow the verification link sent to "([^"]*)"$`, test.iFollowTheVerificationLinkSentTo)
	ctx.When(`^I take the password reset token sent to "([^"]*)"$`, test.iTakeThePasswordResetTokenSentTo)

	// Header steps
	ctx.Step(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) login requests for "([^"]*)" with password "([^"]*)"$`, test.iSendLoginRequests)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should not exist$`, test.theResponseFieldShouldNotExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the asset "([^"]*)" should have amount "([^"]*)"$`, test.theAssetShouldHaveAmount)
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Email assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the email to "([^"]*)" should have status "([^"]*)"$`, test.theEmailToShouldHaveStatus)
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}

func (t *testContext) aVerifiedUserExists(email, password string) error {
	return t.createUser(email, password, true)
}

func (t *testContext) anUnverifiedUserExists(email, password string) error {
	return t.createUser(email, password, false)
}

func (t *testContext) createUser(email, password string, verified bool) error {
	userID := uuid.New()
	t.userIDs[email] = userID

	now := time.Now().UTC()
	user := &model.UserModel{
		ID:            userID,
		Email:         email,
		PasswordHash:  hashPassword(password),
		EmailVerified: verified,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	return t.db.DbConn.Create(user).Error
}

func (t *testContext) iAmLoggedInAs(email, password string) error {
	payload := fmt.Sprintf(`{"email": %q, "password": %q}`, email, password)
	if err := t.executeRequest(http.MethodPost, "/api/v1/login", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusOK {
		return fmt.Errorf("login failed with status %d: %v", t.response.status, t.response.body)
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("login response is not a JSON object: %v", t.response.body)
	}
	t.accessToken, _ = body["token"].(string)
	t.refreshToken, _ = body["refresh_token"].(string)
	if t.accessToken == "" {
		return fmt.Errorf("login response has no token: %v", body)
	}
	return nil
}

func (t *testContext) iUseAnExpiredAccessTokenFor(email string) error {
	userID, err := t.userIDFor(email)
	if err != nil {
		return err
	}

	past := time.Now().UTC().Add(-time.Hour)
	claims := jwt.MapClaims{
		"user_id":        userID.String(),
		"email":          email,
		"email_verified": true,
		"token_type":     "access",
		"exp":            jwt.NewNumericDate(past),
		"iat":            jwt.NewNumericDate(past.Add(-15 * time.Minute)),
		"nbf":            jwt.NewNumericDate(past.Add(-15 * time.Minute)),
		"iss":            "dompet-ledger",
		"sub":            userID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to sign expired token: %w", err)
	}
	t.accessToken = signed
	return nil
}

func (t *testContext) iHaveAnAsset(category, name, amount string) error {
	payload := fmt.Sprintf(`{"category": %q, "subcategory": %q, "amount": %s}`, category, name, amount)
	if err := t.executeRequest(http.MethodPost, "/api/v1/assets", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("asset creation failed with status %d: %v", t.response.status, t.response.body)
	}

	id, err := uuid.Parse(t.lastID)
	if err != nil {
		return fmt.Errorf("asset response has no id: %v", t.response.body)
	}
	t.assetIDs[name] = id
	return nil
}

func (t *testContext) iHaveCreatedTheRecord(name string, body *godog.DocString) error {
	payload := t.replacePlaceholders(body.Content)
	if err := t.executeRequest(http.MethodPost, "/api/v1/records", []byte(payload)); err != nil {
		return err
	}
	if t.response.status != http.StatusCreated {
		return fmt.Errorf("record creation failed with status %d: %v", t.response.status, t.response.body)
	}

	id, err := uuid.Parse(t.lastID)
	if err != nil {
		return fmt.Errorf("record response has no id: %v", t.response.body)
	}
	t.recordIDs[name] = id
	return nil
}

func (t *testContext) theLedgerIsLocked(email string) error {
	userID, err := t.userIDFor(email)
	if err != nil {
		return err
	}
	return mock.HoldKey("ledger:lock:"+userID.String(), "another-request")
}

func (t *testContext) theEmailProviderRespondsWithStatus(status int) error {
	var body map[string]any
	switch {
	case status < http.StatusBadRequest:
		body = map[string]any{"id": "msg-" + uuid.NewString()}
	case status < http.StatusInternalServerError:
		body = map[string]any{"statusCode": status, "name": "validation_error", "message": "The to field is invalid"}
	default:
		body = map[string]any{"statusCode": status, "name": "application_error", "message": "Something went wrong on our end"}
	}
	t.emailAPI.SetResponse(http.MethodPost, resendPath, status, body)
	return nil
}

func (t *testContext) theEmailWorkerRuns() error {
	t.processEmails()
	return nil
}

func (t *testContext) iFollowTheVerificationLinkSentTo(email string) error {
	link, err := t.emailLink(email, "verify_email")
	if err != nil {
		return err
	}
	return t.executeRequest(http.MethodGet, link.RequestURI(), nil)
}

func (t *testContext) iTakeThePasswordResetTokenSentTo(email string) error {
	link, err := t.emailLink(email, "password_reset")
	if err != nil {
		return err
	}
	t.resetToken = link.Query().Get("token")
	if t.resetToken == "" {
		return fmt.Errorf("reset link has no token: %s", link)
	}
	return nil
}

// emailLink reads the link out of the newest queued email of the given kind.
func (t *testContext) emailLink(email, kind string) (*url.URL, error) {
	var job model.EmailQueueModel
	err := t.db.DbConn.
		Where("recipient = ? AND kind = ?", email, kind).
		Order("created_at DESC").
		First(&job).Error
	if err != nil {
		return nil, fmt.Errorf("no %s email queued for %s: %w", kind, email, err)
	}

	var data map[string]string
	if err := json.Unmarshal([]byte(job.Data), &data); err != nil {
		return nil, fmt.Errorf("failed to decode email data: %w", err)
	}
	raw := data["link"]
	link, err := url.Parse(raw)
	if err != nil || raw == "" {
		return nil, fmt.Errorf("email for %s has no link: %v", email, data)
	}
	return link, nil
}

func (t *testContext) theHeaderIsEmpty() error {
	t.headers = make(map[string]string)
	t.accessToken = "" // Clear access token to simulate unauthenticated request
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	path = t.replacePlaceholders(path)

	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, path, payload)
}

func (t *testContext) iSendLoginRequests(count int, email, password string) error {
	payload := []byte(fmt.Sprintf(`{"email": %q, "password": %q}`, email, password))
	for i := 0; i < count; i++ {
		if err := t.executeRequest(http.MethodPost, "/api/v1/login", payload); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(string); ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	value := getFieldValue(t.response.body, t.replacePlaceholders(field))
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}

	actualValue := fmt.Sprintf("%v", value)
	expectedValue = t.replacePlaceholders(expectedValue)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if getFieldValue(t.response.body, t.replacePlaceholders(field)) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldNotExist(field string) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	if value := getFieldValue(t.response.body, t.replacePlaceholders(field)); value != nil {
		return fmt.Errorf("field '%s' expected to be absent, got %v", field, value)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	if t.response == nil {
		return errors.New("no response received")
	}

	var value any = t.response.body
	if field != "." {
		value = getFieldValue(t.response.body, t.replacePlaceholders(field))
	}

	switch v := value.(type) {
	case []any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(v))
		}
	case map[string]any:
		if len(v) != count {
			return fmt.Errorf("field '%s' expected %d keys, got %d", field, count, len(v))
		}
	default:
		return fmt.Errorf("field '%s' is not a list or object: %v", field, value)
	}
	return nil
}

func (t *testContext) theAssetShouldHaveAmount(name, expected string) error {
	assetID, ok := t.assetIDs[name]
	if !ok {
		return fmt.Errorf("asset '%s' was not created in this scenario", name)
	}

	var asset model.AssetModel
	if err := t.db.DbConn.Where("id = ?", assetID).First(&asset).Error; err != nil {
		return fmt.Errorf("asset '%s' not found: %w", name, err)
	}

	want, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("invalid expected amount '%s': %w", expected, err)
	}
	if !asset.Amount.Equal(want) {
		return fmt.Errorf("asset '%s' expected amount %s, got %s", name, want.StringFixed(2), asset.Amount.StringFixed(2))
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
		if result.Error != nil {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	if entity, ok := t.db.GetModel(table); ok {
		entityType := reflect.TypeOf(entity).Elem()
		entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
		entitySlicePtr := reflect.New(entitySlice.Type())
		entitySlicePtr.Elem().Set(entitySlice)

		query := t.db.DbConn.Unscoped()
		for key, value := range criteria {
			query = query.Where(fmt.Sprintf("%s = ?", key), value)
		}

		result := query.Find(entitySlicePtr.Interface())
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		count := entitySlicePtr.Elem().Len()
		if count != quantity {
			return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
		}
		return nil
	}
	return fmt.Errorf("table '%s' not found in models", table)
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	got := t.emailAPI.RequestCount(http.MethodPost, resendPath)
	if got != count {
		return fmt.Errorf("expected %d emails sent to the provider, got %d", count, got)
	}
	return nil
}

func (t *testContext) theEmailToShouldHaveStatus(email, status string) error {
	var job model.EmailQueueModel
	if err := t.db.DbConn.Where("recipient = ?", email).Order("created_at DESC").First(&job).Error; err != nil {
		return fmt.Errorf("no email queued for %s: %w", email, err)
	}
	if job.Status != status {
		return fmt.Errorf("email to %s expected status %s, got %s (last error: %s)", email, status, job.Status, job.LastError)
	}
	if status == "sent" && !strings.HasPrefix(job.ProviderID, "msg-") {
		return fmt.Errorf("email to %s has unexpected provider id %q", email, job.ProviderID)
	}
	return nil
}

func (t *testContext) userIDFor(email string) (uuid.UUID, error) {
	if id, ok := t.userIDs[email]; ok {
		return id, nil
	}

	var user model.UserModel
	if err := t.db.DbConn.Where("email = ?", email).First(&user).Error; err != nil {
		return uuid.Nil, fmt.Errorf("user %s not found: %w", email, err)
	}
	t.userIDs[email] = user.ID
	return user.ID, nil
}
