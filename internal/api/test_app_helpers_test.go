package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/aura/internal/db"
	"github.com/terraincognita07/aura/internal/i18n"
	"github.com/terraincognita07/aura/internal/storage"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

var testNow = time.Date(2024, time.February, 10, 12, 0, 0, 0, time.UTC)

type testResponse struct {
	Status  int
	Body    string
	Header  http.Header
	Cookies []*http.Cookie
}

// testClient carries cookies between requests the way a browser would.
type testClient struct {
	t       *testing.T
	app     *fiber.App
	cookies map[string]string
}

func newTestApp(t *testing.T) (*testClient, *Handler) {
	t.Helper()
	return newTestAppWithOptions(t, Options{})
}

func newTestAppWithOptions(t *testing.T, options Options) (*testClient, *Handler) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "aura-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewDefaultManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	if options.Now == nil {
		options.Now = func() time.Time { return testNow }
	}
	if options.NewID == nil {
		counter := 0
		options.NewID = func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		}
	}

	handler, err := NewHandler(database, testSecretKey, time.UTC, i18nManager, false, options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}

	app := fiber.New()
	app.Use(handler.LanguageMiddleware)
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)

	return &testClient{t: t, app: app, cookies: map[string]string{}}, handler
}

// seedDevice pins the client to a known device and returns its storage.
func seedDevice(t *testing.T, client *testClient, handler *Handler, deviceID string) *storage.Accessor {
	t.Helper()

	token, err := handler.buildDeviceToken(deviceID, deviceTokenTTL)
	if err != nil {
		t.Fatalf("build device token: %v", err)
	}
	client.cookies[deviceCookieName] = token
	return storage.NewAccessor(handler.repositories.Storage.Scoped(deviceID))
}

func (client *testClient) get(path string, headers ...string) testResponse {
	client.t.Helper()
	return client.do(http.MethodGet, path, nil, headers...)
}

func (client *testClient) postForm(path string, form url.Values, headers ...string) testResponse {
	client.t.Helper()
	return client.do(http.MethodPost, path, form, headers...)
}

func (client *testClient) do(method string, path string, form url.Values, headers ...string) testResponse {
	client.t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request := httptest.NewRequest(method, path, body)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for index := 0; index+1 < len(headers); index += 2 {
		request.Header.Set(headers[index], headers[index+1])
	}
	if cookieHeader := client.cookieHeader(); cookieHeader != "" {
		request.Header.Set("Cookie", cookieHeader)
	}

	response, err := client.app.Test(request, -1)
	if err != nil {
		client.t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		client.t.Fatalf("%s %s read body failed: %v", method, path, err)
	}

	cookies := response.Cookies()
	client.storeCookies(cookies)
	return testResponse{
		Status:  response.StatusCode,
		Body:    string(payload),
		Header:  response.Header,
		Cookies: cookies,
	}
}

func (client *testClient) storeCookies(cookies []*http.Cookie) {
	for _, cookie := range cookies {
		expired := !cookie.Expires.IsZero() && cookie.Expires.Before(time.Now())
		if cookie.Value == "" || expired || cookie.MaxAge < 0 {
			delete(client.cookies, cookie.Name)
			continue
		}
		client.cookies[cookie.Name] = cookie.Value
	}
}

func (client *testClient) cookieHeader() string {
	parts := make([]string, 0, len(client.cookies))
	for name, value := range client.cookies {
		parts = append(parts, name+"="+value)
	}
	return strings.Join(parts, "; ")
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func decodeJSON[T any](t *testing.T, raw string) T {
	t.Helper()

	var payload T
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode json %q: %v", raw, err)
	}
	return payload
}

func readAPIError(t *testing.T, raw string) string {
	t.Helper()
	return decodeJSON[map[string]string](t, raw)["error"]
}
