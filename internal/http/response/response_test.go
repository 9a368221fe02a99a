package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandressouza/indicacoes/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{domain.ErrDuplicateEmail, http.StatusConflict},
		{domain.ErrAlreadyApproved, http.StatusConflict},
		{domain.ErrAlreadyRejected, http.StatusConflict},
		{domain.ErrNoSuchUser, http.StatusUnauthorized},
		{domain.ErrInvalidCredential, http.StatusUnauthorized},
		{domain.ErrNotLoggedIn, http.StatusUnauthorized},
		{domain.ErrAccountBanned, http.StatusForbidden},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("approve: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrInvalidForm, http.StatusBadRequest},
		{domain.ErrInvalidImage, http.StatusUnprocessableEntity},
		{domain.ErrInvalidCategory, http.StatusUnprocessableEntity},
		{domain.ErrInvalidPrice, http.StatusUnprocessableEntity},
		{domain.ErrWeakPassword, http.StatusUnprocessableEntity},
		{domain.StorageError("insert", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Status(tt.err))
		})
	}
}

func TestMessage_EveryCode(t *testing.T) {
	all := []error{
		domain.ErrDuplicateEmail, domain.ErrNoSuchUser, domain.ErrInvalidCredential, domain.ErrAccountBanned,
		domain.ErrWeakPassword, domain.ErrNotLoggedIn, domain.ErrForbidden, domain.ErrTokenInvalid,
		domain.ErrNotFound, domain.ErrInvalidImage, domain.ErrInvalidCategory, domain.ErrInvalidPrice,
		domain.ErrInvalidForm, domain.ErrAlreadyApproved, domain.ErrAlreadyRejected, domain.ErrStorageFailure,
		errors.New("boom"),
	}
	for _, err := range all {
		assert.NotEmpty(t, Message(err), err.Error())
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		redirect       string
		html           bool
		expectedStatus int
		expectFlash    bool
	}{
		{name: "json client gets structured error", err: domain.ErrInvalidPrice, redirect: "/add", expectedStatus: http.StatusUnprocessableEntity},
		{name: "browser validation failure redirects", err: domain.ErrInvalidPrice, redirect: "/add", html: true, expectedStatus: http.StatusSeeOther, expectFlash: true},
		{name: "browser auth failure redirects", err: domain.ErrNotLoggedIn, redirect: "/login", html: true, expectedStatus: http.StatusSeeOther, expectFlash: true},
		{name: "browser not found is shown", err: domain.ErrNotFound, redirect: "/admin", html: true, expectedStatus: http.StatusNotFound},
		{name: "browser storage failure is shown", err: domain.StorageError("find", errors.New("down")), redirect: "/admin", html: true, expectedStatus: http.StatusInternalServerError},
		{name: "no redirect target", err: domain.ErrForbidden, html: true, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", func(c *gin.Context) { Error(c, tt.err, tt.redirect) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.html {
				req.Header.Set("Accept", "text/html")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.expectedStatus, w.Code)
			var flash *http.Cookie
			for _, c := range w.Result().Cookies() {
				if c.Name == FlashCookie {
					flash = c
				}
			}
			if tt.expectFlash {
				require.NotNil(t, flash)
				msg, err := url.QueryUnescape(flash.Value)
				require.NoError(t, err)
				assert.Equal(t, Message(tt.err), msg)
				assert.Equal(t, tt.redirect, w.Header().Get("Location"))
				return
			}

			assert.Nil(t, flash)
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, domain.Code(tt.err), body.Error.Code)
			assert.Equal(t, Message(tt.err), body.Error.Message)
		})
	}
}

func TestDone(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) { Done(c, http.StatusCreated, gin.H{"id": "x"}, "/profile", "feito") })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"data":{"id":"x"},"message":"feito"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Accept", "text/html")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
}
