package storage

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math/big"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/text/unicode/norm"

	"github.com/fandressouza/indicacoes/domain"
)

func extension(filename string) string {
	return domain.ImageExtension(filename)
}

// DefaultMaxPixels bounds the decoded size of an upload (40 megapixels)
const DefaultMaxPixels = 40_000_000

// acceptedFormats are the decoder names an upload may carry, whatever its extension says
var acceptedFormats = map[string]bool{"png": true, "jpeg": true}

// ImageProcessor implements domain.ImageProcessor by resizing every upload to a fixed
// frame. JPEG uploads are re-encoded as JPEG at Quality; everything else becomes PNG.
// Images declaring more than MaxPixels are refused before any pixel is decoded.
type ImageProcessor struct {
	Width     int
	Height    int
	Quality   int
	MaxPixels int
	logger    *zap.Logger
}

// NewImageProcessor returns a processor producing 600x400 images at quality 80
func NewImageProcessor(logger *zap.Logger) *ImageProcessor {
	return &ImageProcessor{Width: 600, Height: 400, Quality: 80, MaxPixels: DefaultMaxPixels, logger: logger}
}

// Process implements domain.ImageProcessor
func (p *ImageProcessor) Process(filename string, data []byte) (string, []byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		p.logger.Debug("image header unreadable", zap.String("filename", filename), zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}
	if !acceptedFormats[format] {
		return "", nil, fmt.Errorf("%w: unsupported format %s", domain.ErrInvalidImage, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > int64(p.MaxPixels) {
		p.logger.Info("image refused for size",
			zap.String("filename", filename),
			zap.Int("width", cfg.Width),
			zap.Int("height", cfg.Height))
		return "", nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", domain.ErrInvalidImage, cfg.Width, cfg.Height, p.MaxPixels)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		p.logger.Debug("image decode failed", zap.String("filename", filename), zap.Error(err))
		return "", nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	switch extension(filename) {
	case "jpg", "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: p.Quality})
	default:
		err = png.Encode(&buf, dst)
	}
	if err != nil {
		return "", nil, fmt.Errorf("encode image: %w", err)
	}

	name, err := StorageName(filename)
	if err != nil {
		return "", nil, err
	}
	p.logger.Debug("image processed",
		zap.String("name", name),
		zap.String("source_format", format),
		zap.Int("bytes", buf.Len()))
	return name, buf.Bytes(), nil
}

const nameAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomString returns n characters drawn uniformly from letters and digits
func RandomString(n int) (string, error) {
	limit := big.NewInt(int64(len(nameAlphabet)))
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("random name: %w", err)
		}
		out[i] = nameAlphabet[idx.Int64()]
	}
	return string(out), nil
}

// StorageName returns "<10 random chars>-<sanitized filename>"
func StorageName(filename string) (string, error) {
	prefix, err := RandomString(10)
	if err != nil {
		return "", err
	}
	return prefix + "-" + SecureFilename(filename), nil
}

// SecureFilename reduces name to a flat ASCII file name safe to use on any filesystem.
// Accented letters lose their marks, path separators become underscores, other
// characters outside [A-Za-z0-9._-] are dropped and
// leading or trailing dots and underscores are trimmed from the stem. An empty stem
// becomes "image".
func SecureFilename(name string) string {
	name = stripMarks(name)
	name = strings.NewReplacer("/", " ", "\\", " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")

	ext := filepath.Ext(name)
	stem := strings.Trim(keepRunes(strings.TrimSuffix(name, ext), "._-"), "._")
	ext = keepRunes(strings.TrimPrefix(ext, "."), "")

	if stem == "" {
		stem = "image"
	}
	if ext == "" {
		return stem
	}
	return stem + "." + ext
}

// keepRunes drops everything except ASCII letters, digits and the runes in extra
func keepRunes(s, extra string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', strings.ContainsRune(extra, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripMarks decomposes s (NFKD) and drops the combining marks, so "ção" becomes "cao"
func stripMarks(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if !unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
