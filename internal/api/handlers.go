package api

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/setanarut/assetforge"
)

type silhouettes struct {
	Main  string `json:"main"`
	White string `json:"white"`
	Black string `json:"black"`
}

type collectibleResponse struct {
	GIF         string      `json:"gif"`
	Silhouettes silhouettes `json:"silhouettes"`
	Frames      int         `json:"frames"`
	Palette     []string    `json:"palette"`
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleColorize(w http.ResponseWriter, r *http.Request) {
	src, err := s.readUpload(r, "image")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	opts, err := s.recolorOptions(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := assetforge.Recolor(src, assetforge.HexColor(r.FormValue("hex")), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeBytes(w, "image/png", out)
}

func (s *server) handleCollectibles(w http.ResponseWriter, r *http.Request) {
	src, err := s.readUpload(r, "gif")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	index := s.cfg.Collectible.SilhouetteIndex
	if raw := strings.TrimSpace(r.FormValue("silhouette_index")); raw != "" {
		index, err = strconv.Atoi(raw)
		if err != nil {
			s.fail(w, r, invalidField("silhouette_index", err))
			return
		}
	}
	if index < 0 || index > MaxSilhouetteIndex {
		s.fail(w, r, &assetforge.Error{
			Op:   "collectibles",
			Kind: assetforge.ErrIndexOutOfRange,
			Err:  fmt.Errorf("silhouette index %d outside [0, %d]", index, MaxSilhouetteIndex),
		})
		return
	}

	assets, err := s.deriver.Derive(src, index)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	resp := collectibleResponse{
		GIF: base64.StdEncoding.EncodeToString(assets.TransparentGIF),
		Silhouettes: silhouettes{
			Main:  base64.StdEncoding.EncodeToString(assets.SilhouetteMain),
			White: base64.StdEncoding.EncodeToString(assets.SilhouetteWhite),
			Black: base64.StdEncoding.EncodeToString(assets.SilhouetteBlack),
		},
		Frames:  assets.FrameCount,
		Palette: make([]string, 0, len(assets.Palette)),
	}
	for _, c := range assets.Palette {
		resp.Palette = append(resp.Palette, c.Hex())
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleWatermark(w http.ResponseWriter, r *http.Request) {
	if s.watermarker == nil {
		s.fail(w, r, errWatermarkUnavailable)
		return
	}
	src, err := s.readUpload(r, "gif")
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.watermarker.Watermark(src)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeBytes(w, "image/gif", out)
}

func (s *server) readUpload(r *http.Request, field string) ([]byte, error) {
	if err := r.ParseMultipartForm(s.maxUpload()); err != nil {
		return nil, invalidField(field, err)
	}
	file, _, err := r.FormFile(field)
	if err != nil {
		return nil, invalidField(field, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, invalidField(field, err)
	}
	return data, nil
}

func (s *server) recolorOptions(r *http.Request) (assetforge.RecolorOptions, error) {
	opts := s.cfg.RecolorOptions()
	if raw := strings.TrimSpace(r.FormValue("tolerance")); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return opts, invalidField("tolerance", err)
		}
		opts.Tolerance = uint8(v)
	}
	if raw := strings.TrimSpace(r.FormValue("contrast")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, invalidField("contrast", err)
		}
		opts.Contrast = v
	}
	if raw := strings.TrimSpace(r.FormValue("reduce_pixelation")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, invalidField("reduce_pixelation", err)
		}
		opts.ReducePixelation = v
	}
	return opts, nil
}

func invalidField(name string, err error) error {
	return &assetforge.Error{
		Op:   "parse request",
		Kind: assetforge.ErrInvalidOptions,
		Err:  errors.Wrapf(err, "field %s", name),
	}
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
