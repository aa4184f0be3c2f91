package service

import (
	"bytes"
	"fmt"
	"image"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

/* =======================================================================
   Pre-proses foto logbook sebelum dikirim ke layanan scan:
   orientasi EXIF, perkecil, grayscale, encode WebP.
======================================================================= */

type ImageOptions struct {
	MaxSide int     // sisi terpanjang (px); 0 = tanpa resize
	Quality float32 // kualitas WebP lossy
}

var DefaultImageOptions = ImageOptions{MaxSide: 1600, Quality: 85}

// MaxUploadBytes: batas ukuran foto mentah
const MaxUploadBytes = 10 << 20

// sniffImage: tolak file yang bukan jpeg/png/webp
func sniffImage(all []byte, filename string) error {
	if len(all) == 0 {
		return ErrEmptyImage
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)
	switch {
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"), strings.Contains(ct, "webp"):
		return nil
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return nil
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedImage, ct)
}

// PrepareImage mengembalikan WebP grayscale siap kirim
func PrepareImage(all []byte, filename string, opt ImageOptions) ([]byte, error) {
	if len(all) > MaxUploadBytes {
		return nil, ErrImageTooLarge
	}
	if err := sniffImage(all, filename); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	var out image.Image = img
	if opt.MaxSide > 0 {
		b := img.Bounds()
		if b.Dx() > opt.MaxSide || b.Dy() > opt.MaxSide {
			out = imaging.Fit(out, opt.MaxSide, opt.MaxSide, imaging.Lanczos)
		}
	}
	out = imaging.Grayscale(out)

	q := opt.Quality
	if q <= 0 {
		q = DefaultImageOptions.Quality
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, out, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
