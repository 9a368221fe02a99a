package e2e

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fandressouza/indicacoes/internal/app"
)

const testPassword = "Secret123"

var emailSeq atomic.Int64

func generateTestEmail() string {
	return fmt.Sprintf("user%d@example.com", emailSeq.Add(1))
}

// Response is a decoded API response
type Response struct {
	Status   int
	Location string
	Body     map[string]interface{}
	Cookies  []*http.Cookie
}

// Data returns the data object of a success body
func (r Response) Data() map[string]interface{} {
	data, _ := r.Body["data"].(map[string]interface{})
	return data
}

// Code returns the error code of a failure body
func (r Response) Code() string {
	errObj, _ := r.Body["error"].(map[string]interface{})
	code, _ := errObj["code"].(string)
	return code
}

// Do sends a request with an optional bearer token
func (s *TestSuite) Do(t *testing.T, method, path, token string, body io.Reader, contentType string) Response {
	t.Helper()
	req, err := http.NewRequest(method, s.URL(path), body)
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := Response{Status: resp.StatusCode, Location: resp.Header.Get("Location"), Cookies: resp.Cookies()}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out.Body))
	}
	return out
}

// Get sends a GET request
func (s *TestSuite) Get(t *testing.T, path, token string) Response {
	t.Helper()
	return s.Do(t, http.MethodGet, path, token, nil, "")
}

// PostForm sends an url-encoded form
func (s *TestSuite) PostForm(t *testing.T, path, token string, values url.Values) Response {
	t.Helper()
	return s.Do(t, http.MethodPost, path, token, strings.NewReader(values.Encode()), "application/x-www-form-urlencoded")
}

// Register creates an account and returns its id and session token
func (s *TestSuite) Register(t *testing.T, email, name string) (string, string) {
	t.Helper()
	resp := s.PostForm(t, "/register", "", url.Values{"email": {email}, "name": {name}, "password": {testPassword}})
	require.Equal(t, http.StatusCreated, resp.Status, resp.Body)
	data := resp.Data()
	user := data["user"].(map[string]interface{})
	return user["id"].(string), data["token"].(string)
}

// Login signs in and returns the session token
func (s *TestSuite) Login(t *testing.T, email string) string {
	t.Helper()
	resp := s.PostForm(t, "/login", "", url.Values{"email": {email}, "password": {testPassword}})
	require.Equal(t, http.StatusOK, resp.Status, resp.Body)
	return resp.Data()["token"].(string)
}

// Admin registers an account, promotes it out of band and signs it in again
func (s *TestSuite) Admin(t *testing.T) (string, string) {
	t.Helper()
	email := generateTestEmail()
	id, _ := s.Register(t, email, "Admin")
	_, err := app.SetAdminByEmail(context.Background(), s.Container.UserRepo, email, true)
	require.NoError(t, err)
	return id, s.Login(t, email)
}

// hugePNGHeader is a one pixel PNG whose header claims w x h pixels
func hugePNGHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	data := buf.Bytes()
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

// pngImage encodes a small solid image
func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func listingFields() map[string]string {
	return map[string]string{
		"offer":        "Bolo de cenoura",
		"phone":        "11 99999-0000",
		"house_number": "42",
		"category_one": "Alimentação",
		"category_two": "Bolos",
		"description":  "Com cobertura",
		"price":        "25",
		"delivery":     "on",
	}
}

// SubmitListing posts the add form with an image
func (s *TestSuite) SubmitListing(t *testing.T, token string, fields map[string]string, filename string, data []byte) Response {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image_upload", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return s.Do(t, http.MethodPost, "/add", token, &buf, w.FormDataContentType())
}
