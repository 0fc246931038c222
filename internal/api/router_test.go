package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/color"
	"image/gif"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/assetforge"
	"github.com/setanarut/assetforge/internal/api"
	"github.com/setanarut/assetforge/internal/config"
	"github.com/setanarut/assetforge/internal/testsupport"
)

func newRouter(t *testing.T, wm *assetforge.Watermarker) http.Handler {
	t.Helper()
	cfg := config.Default()
	return api.NewRouter(&cfg, nil, wm)
}

func multipartRequest(t *testing.T, path, fileField string, file []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		part, err := mw.CreateFormFile(fileField, "upload")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestHealth(t *testing.T) {
	rec := serve(newRouter(t, nil), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestColorize(t *testing.T) {
	src := testsupport.PNG(t, testsupport.LineArt(16, 16))
	req := multipartRequest(t, "/v1/colorize", "image", src, map[string]string{
		"hex":      "#ff0000",
		"contrast": "0.5",
	})

	rec := serve(newRouter(t, nil), req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	img, err := assetforge.DecodeRaster(rec.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
}

func TestColorizeErrors(t *testing.T) {
	src := testsupport.PNG(t, testsupport.LineArt(8, 8))
	cases := []struct {
		name   string
		file   []byte
		fields map[string]string
		status int
	}{
		{"missing color", src, nil, http.StatusBadRequest},
		{"bad hex", src, map[string]string{"hex": "#zzzzzz"}, http.StatusBadRequest},
		{"contrast out of range", src, map[string]string{"hex": "#00ff00", "contrast": "2"}, http.StatusBadRequest},
		{"tolerance not a byte", src, map[string]string{"hex": "#00ff00", "tolerance": "300"}, http.StatusBadRequest},
		{"missing file", nil, map[string]string{"hex": "#00ff00"}, http.StatusBadRequest},
		{"not an image", []byte("plain text"), map[string]string{"hex": "#00ff00"}, http.StatusUnprocessableEntity},
	}
	h := newRouter(t, nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(h, multipartRequest(t, "/v1/colorize", "image", tc.file, tc.fields))
			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, errorBody(t, rec))
		})
	}
}

func TestCollectibles(t *testing.T) {
	src := testsupport.CircleGIF(t, 40, 4, 12)
	req := multipartRequest(t, "/v1/collectibles", "gif", src, map[string]string{"silhouette_index": "2"})

	rec := serve(newRouter(t, nil), req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		GIF         string            `json:"gif"`
		Silhouettes map[string]string `json:"silhouettes"`
		Frames      int               `json:"frames"`
		Palette     []string          `json:"palette"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Frames)
	for _, key := range []string{"main", "white", "black"} {
		assert.NotEmpty(t, body.Silhouettes[key], key)
	}

	raw, err := base64.StdEncoding.DecodeString(body.GIF)
	require.NoError(t, err)
	anim, err := gif.DecodeAll(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Len(t, anim.Image, 4)
}

func TestCollectiblesIndexBounds(t *testing.T) {
	src := testsupport.CircleGIF(t, 20, 4, 6)
	h := newRouter(t, nil)
	for _, index := range []int{-1, 4, api.MaxSilhouetteIndex + 1} {
		t.Run(strconv.Itoa(index), func(t *testing.T) {
			req := multipartRequest(t, "/v1/collectibles", "gif", src, map[string]string{"silhouette_index": strconv.Itoa(index)})
			rec := serve(h, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "silhouette index out of range", errorBody(t, rec))
		})
	}
}

func TestWatermarkUnavailable(t *testing.T) {
	src := testsupport.CircleGIF(t, 20, 2, 6)
	rec := serve(newRouter(t, nil), multipartRequest(t, "/v1/watermark", "gif", src, nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWatermark(t *testing.T) {
	mark := testsupport.PNG(t, testsupport.Solid(4, 4, color.NRGBA{255, 0, 0, 255}))
	wm, err := assetforge.NewWatermarker(mark)
	require.NoError(t, err)
	wm.Width, wm.Height = 5, 5

	src := testsupport.CircleGIF(t, 40, 3, 10)
	rec := serve(newRouter(t, wm), multipartRequest(t, "/v1/watermark", "gif", src, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "image/gif", rec.Header().Get("Content-Type"))

	anim, err := gif.DecodeAll(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	assert.Len(t, anim.Image, 3)
}

func TestWatermarkRejectsGarbage(t *testing.T) {
	mark := testsupport.PNG(t, testsupport.Solid(4, 4, color.NRGBA{255, 0, 0, 255}))
	wm, err := assetforge.NewWatermarker(mark)
	require.NoError(t, err)

	rec := serve(newRouter(t, wm), multipartRequest(t, "/v1/watermark", "gif", []byte("GIF89a?"), nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "could not decode upload", errorBody(t, rec))
}
