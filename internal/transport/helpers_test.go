package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/auth"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/config"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/db"
	"github.com/Rogue-Bear-Innovations/linkleaf-back/internal/service"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Host:        "127.0.0.1",
		Port:        "0",
		DBDriver:    config.DriverSQLite,
		DBPath:      filepath.Join(t.TempDir(), "linkleaf.db"),
		JWTSecret:   "test-secret",
		JWTTTL:      time.Hour,
		LogLevel:    "info",
		CORSOrigins: []string{"*"},
	}
}

func newTestServer(t *testing.T) *HTTPServer {
	t.Helper()

	cfg := testConfig(t)
	l := zaptest.NewLogger(t).Sugar()

	gdb, err := db.NewGormClient(cfg, l)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	return newServer(cfg,
		service.NewGeneral(gdb, auth.NewTokens(cfg), l),
		service.NewContacts(gdb, service.NewTagResolver(l), l),
		service.NewTags(gdb, l),
		l,
	)
}

type apiResp struct {
	Status  int
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Details []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"details"`
}

func (r *apiResp) decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), string(r.Data))
}

func call(t *testing.T, h http.Handler, method, path, token string, body interface{}) *apiResp {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	resp := &apiResp{Status: rec.Code}
	if rec.Body.Len() > 0 && rec.Header().Get("Content-Type") != "" && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp), rec.Body.String())
	}
	return resp
}

type authData struct {
	User struct {
		ID        uint64 `json:"id"`
		Email     string `json:"email"`
		FirstName string `json:"firstName"`
	} `json:"user"`
	Token string `json:"token"`
}

func register(t *testing.T, h http.Handler, email string) authData {
	t.Helper()
	resp := call(t, h, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     email,
		"password":  "password123",
		"firstName": "Demo",
		"lastName":  "User",
	})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Error)
	out := authData{}
	resp.decode(t, &out)
	return out
}

type contactData struct {
	ID         uint64  `json:"id"`
	Name       string  `json:"name"`
	Email      *string `json:"email"`
	JobTitle   *string `json:"job_title"`
	Birthday   *string `json:"birthday"`
	IsFavorite bool    `json:"is_favorite"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
	Tags       []struct {
		ID    uint64  `json:"id"`
		Name  string  `json:"name"`
		Color *string `json:"color"`
	} `json:"tags"`
}

func (c contactData) tagNames() []string {
	names := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		names = append(names, tag.Name)
	}
	return names
}

func decodeContact(t *testing.T, resp *apiResp) contactData {
	t.Helper()
	out := struct {
		Contact contactData `json:"contact"`
	}{}
	resp.decode(t, &out)
	return out.Contact
}
