package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/postboard/config"
	"github.com/d60-Lab/postboard/internal/access"
	"github.com/d60-Lab/postboard/internal/service"
	"github.com/d60-Lab/postboard/internal/storage"
	"github.com/d60-Lab/postboard/pkg/response"
)

func testContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestDecide(t *testing.T) {
	h := NewHandler(Deps{Auth: config.AuthConfig{LoginURL: "/auth/login"}})

	tests := []struct {
		name     string
		decision access.Decision
		allowed  bool
		status   int
		location string
	}{
		{name: "view", decision: access.View(access.Caller{}), allowed: true, status: http.StatusOK},
		{name: "found", decision: access.Found(true), allowed: true, status: http.StatusOK},
		{name: "missing", decision: access.Found(false), status: http.StatusNotFound},
		{name: "login", decision: access.Create(access.Caller{}, "/new", "/auth/login"), status: http.StatusFound, location: "/auth/login?next=%2Fnew"},
		{name: "unknown kind", decision: access.Decision{Kind: access.Kind(9)}, status: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("/x")
			assert.Equal(t, tt.allowed, h.decide(c, tt.decision))
			if tt.allowed {
				assert.False(t, c.Writer.Written())
				return
			}
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestFail(t *testing.T) {
	h := NewHandler(Deps{Auth: config.AuthConfig{LoginURL: "/auth/login"}})

	tests := []struct {
		name     string
		err      error
		status   int
		code     string
		location string
	}{
		{name: "not found", err: fmt.Errorf("group %q: %w", "x", service.ErrNotFound), status: http.StatusNotFound, code: response.CodeNotFound},
		{name: "auth required", err: service.ErrAuthRequired, status: http.StatusFound, code: response.CodeOK, location: "/auth/login?next=%2Ffollow%3Fpage%3D2"},
		{name: "credentials", err: service.ErrInvalidCredentials, status: http.StatusUnauthorized, code: response.CodeBadRequest},
		{name: "other", err: errors.New("db down"), status: http.StatusInternalServerError, code: response.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("/follow?page=2")
			h.fail(c, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))

			var body response.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotContains(t, w.Body.String(), "db down")
		})
	}
}

type memImages struct{ got string }

func (m *memImages) Upload(_ context.Context, body io.ReadSeeker, filename, _ string) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.got = string(b)
	return "https://img.test/" + filename, nil
}

func multipartRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", "hello"))
	if withFile {
		fw, err := mw.CreateFormFile("image", "cat.png")
		require.NoError(t, err)
		_, err = fw.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/new", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUpload(t *testing.T) {
	t.Run("not multipart", func(t *testing.T) {
		c, _ := testContext("/new")
		url, err := NewHandler(Deps{}).upload(c)
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("no file part", func(t *testing.T) {
		c, _ := testContext("/new")
		c.Request = multipartRequest(t, false)
		url, err := NewHandler(Deps{}).upload(c)
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("malformed body", func(t *testing.T) {
		c, w := testContext("/new")
		c.Request = httptest.NewRequest(http.MethodPost, "/new", strings.NewReader("not a multipart body"))
		c.Request.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
		h := NewHandler(Deps{Images: &memImages{}})
		_, err := h.upload(c)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errBadUpload))

		h.failUpload(c, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("storage disabled", func(t *testing.T) {
		c, w := testContext("/new")
		c.Request = multipartRequest(t, true)
		h := NewHandler(Deps{})
		_, err := h.upload(c)
		assert.True(t, errors.Is(err, storage.ErrDisabled))

		h.failUpload(c, err)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), response.CodeValidation)
	})

	t.Run("stored", func(t *testing.T) {
		c, _ := testContext("/new")
		c.Request = multipartRequest(t, true)
		images := &memImages{}
		url, err := NewHandler(Deps{Images: images}).upload(c)
		require.NoError(t, err)
		assert.Equal(t, "https://img.test/cat.png", url)
		assert.Equal(t, "png-bytes", images.got)
	})
}
