package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func adminSession() *domain.Session {
	return &domain.Session{ID: "s-admin", UserID: "admin-1", Email: "admin@example.com", Name: "Admin", IsAdmin: true, ExpiresAt: time.Now().Add(time.Hour)}
}

func userSession() *domain.Session {
	return &domain.Session{ID: "s-user", UserID: "user-1", Email: "ana@example.com", Name: "Ana", ExpiresAt: time.Now().Add(time.Hour)}
}

// newEngine returns an engine where every request runs as session
func newEngine(session *domain.Session) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if session != nil {
			c.Set(middleware.SessionKey, session)
			c.Set(middleware.TokenKey, "token_"+session.ID)
		}
		c.Next()
	})
	return r
}

type request struct {
	method  string
	path    string
	body    io.Reader
	ctype   string
	html    bool
	cookies []*http.Cookie
}

func formBody(values url.Values) (io.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

func jsonBody(t *testing.T, v any) (io.Reader, string) {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b), "application/json"
}

// multipartBody builds an add form. An empty filename sends no file part.
func multipartBody(t *testing.T, fields map[string]string, filename string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile(ImageField, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func serve(r *gin.Engine, req request) *httptest.ResponseRecorder {
	httpReq := httptest.NewRequest(req.method, req.path, req.body)
	if req.ctype != "" {
		httpReq.Header.Set("Content-Type", req.ctype)
	}
	if req.html {
		httpReq.Header.Set("Accept", "text/html,application/xhtml+xml")
	}
	for _, c := range req.cookies {
		httpReq.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httpReq)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode(t, w)
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error object in %s", w.Body.String())
	return errObj["code"].(string)
}

func cookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
