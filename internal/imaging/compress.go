// Package imaging turns uploaded product photos into inline JPEG data URIs.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxWidth = 800
	Quality  = 70

	// MaxUploadBytes bounds a single source file.
	MaxUploadBytes = 10 << 20
	// MaxPixels bounds the decoded size of a source image, checked from its header.
	MaxPixels = 40_000_000

	dataURIPrefix = "data:image/jpeg;base64,"
)

// Compress decodes a JPEG, PNG, GIF or WebP image, scales it down to MaxWidth keeping
// the aspect ratio and returns it as a JPEG data URI. Narrower images keep their size.
func Compress(r io.Reader) (string, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(raw) > MaxUploadBytes {
		return "", ErrTooLarge
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return "", ErrUnsupportedImage
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return "", fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	dst := scale(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: Quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// scale draws src onto an opaque canvas no wider than MaxWidth.
func scale(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > MaxWidth {
		h = h * MaxWidth / w
		if h < 1 {
			h = 1
		}
		w = MaxWidth
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// Decode returns the dimensions of a data URI produced by Compress.
func Decode(dataURI string) (image.Config, error) {
	if len(dataURI) < len(dataURIPrefix) || dataURI[:len(dataURIPrefix)] != dataURIPrefix {
		return image.Config{}, ErrUnsupportedImage
	}
	raw, err := base64.StdEncoding.DecodeString(dataURI[len(dataURIPrefix):])
	if err != nil {
		return image.Config{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	return jpeg.DecodeConfig(bytes.NewReader(raw))
}
