package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"
)

// AllowedMagicBytes defines magic bytes for allowed image types.
var AllowedMagicBytes = map[string][]byte{
	"image/jpeg": {0xFF, 0xD8, 0xFF},
	"image/png":  {0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	"image/webp": {0x52, 0x49, 0x46, 0x46}, // RIFF header (WebP starts with RIFF....WEBP)
}

// DetectType detects the actual image type from magic bytes.
func DetectType(data []byte) (string, error) {
	if len(data) < 12 {
		return "", fmt.Errorf("data too short to detect type")
	}

	switch {
	case bytes.HasPrefix(data, AllowedMagicBytes["image/jpeg"]):
		return "image/jpeg", nil
	case bytes.HasPrefix(data, AllowedMagicBytes["image/png"]):
		return "image/png", nil
	case bytes.HasPrefix(data, AllowedMagicBytes["image/webp"]) && string(data[8:12]) == "WEBP":
		return "image/webp", nil
	}
	return "", fmt.Errorf("unsupported image type")
}

func decode(data []byte, mimeType string) (image.Image, error) {
	r := bytes.NewReader(data)
	switch mimeType {
	case "image/jpeg":
		return jpeg.Decode(r)
	case "image/png":
		return png.Decode(r)
	case "image/webp":
		return webp.Decode(r)
	default:
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}
}

func decodeConfig(data []byte, mimeType string) (image.Config, error) {
	r := bytes.NewReader(data)
	switch mimeType {
	case "image/jpeg":
		return jpeg.DecodeConfig(r)
	case "image/png":
		return png.DecodeConfig(r)
	case "image/webp":
		return webp.DecodeConfig(r)
	default:
		return image.Config{}, fmt.Errorf("unsupported image type: %s", mimeType)
	}
}

// fitWithin scales img down to fit a maxW x maxH box, preserving aspect ratio.
// It never upscales.
func fitWithin(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= maxW && srcH <= maxH {
		return img
	}

	ratio := float64(maxW) / float64(srcW)
	if r := float64(maxH) / float64(srcH); r < ratio {
		ratio = r
	}
	dstW := max(1, int(float64(srcW)*ratio))
	dstH := max(1, int(float64(srcH)*ratio))

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

// Sanitized is a re-encoded image ready for storage.
type Sanitized struct {
	Data        []byte
	ContentType string
	Ext         string
	Width       int
	Height      int
}

// Limits bounds accepted uploads. Images larger than Max* are rejected; images
// larger than Display* are scaled down before storage.
type Limits struct {
	MaxBytes      int64
	MaxWidth      int
	MaxHeight     int
	DisplayWidth  int
	DisplayHeight int
}

// Sanitize checks the real type and dimensions, then decodes and re-encodes the
// image so no source metadata survives. PNG stays PNG, everything else becomes JPEG.
func Sanitize(data []byte, lim Limits) (*Sanitized, error) {
	if lim.MaxBytes > 0 && int64(len(data)) > lim.MaxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", lim.MaxBytes)
	}

	mimeType, err := DetectType(data)
	if err != nil {
		return nil, fmt.Errorf("invalid image type: %w", err)
	}

	// Check dimensions from the header before paying for a full decode.
	cfg, err := decodeConfig(data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to read image header: %w", err)
	}
	if cfg.Width > lim.MaxWidth || cfg.Height > lim.MaxHeight {
		return nil, fmt.Errorf("image too large: %dx%d (max %dx%d)", cfg.Width, cfg.Height, lim.MaxWidth, lim.MaxHeight)
	}

	img, err := decode(data, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if lim.DisplayWidth > 0 && lim.DisplayHeight > 0 {
		img = fitWithin(img, lim.DisplayWidth, lim.DisplayHeight)
	}

	var buf bytes.Buffer
	out := &Sanitized{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}
	if mimeType == "image/png" {
		err = png.Encode(&buf, img)
		out.ContentType, out.Ext = "image/png", ".png"
	} else {
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
		out.ContentType, out.Ext = "image/jpeg", ".jpg"
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	out.Data = buf.Bytes()
	return out, nil
}
