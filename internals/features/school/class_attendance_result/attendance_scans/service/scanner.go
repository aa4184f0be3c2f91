// file: internals/features/school/class_attendance_result/attendance_scans/service/scanner.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type Mode string

const (
	ModeSingle Mode = "single" // satu jam → daftar nomor absen
	ModePage   Mode = "page"   // satu halaman logbook → nomor jam → daftar absen
)

func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeSingle:
		return ModeSingle, nil
	case ModePage:
		return ModePage, nil
	}
	return "", fmt.Errorf("mode scan tidak dikenal: %q", s)
}

var (
	ErrScanUnavailable  = errors.New("layanan scan belum dikonfigurasi")
	ErrEmptyImage       = errors.New("gambar kosong")
	ErrImageTooLarge    = errors.New("ukuran gambar terlalu besar")
	ErrUnsupportedImage = errors.New("format gambar tidak didukung")
	ErrUpstream         = errors.New("layanan scan gagal")
	ErrBadResponse      = errors.New("balasan layanan scan tidak valid")
)

// Result: Pages != nil untuk scan halaman penuh
type Result struct {
	Rolls []string
	Pages map[int][]string
}

// Scanner: kapabilitas OCR logbook (hasilnya tidak dipercaya)
type Scanner interface {
	ScanImage(ctx context.Context, image []byte, filename string, mode Mode) (Result, error)
}

// HTTPScanner mengirim foto (multipart "image" + field "mode") ke layanan scan
type HTTPScanner struct {
	URL     string
	APIKey  string
	Timeout time.Duration
	Image   ImageOptions
}

func NewHTTPScanner(url, apiKey string, timeout time.Duration) *HTTPScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPScanner{
		URL:     strings.TrimSpace(url),
		APIKey:  apiKey,
		Timeout: timeout,
		Image:   DefaultImageOptions,
	}
}

var _ Scanner = (*HTTPScanner)(nil)

func (s *HTTPScanner) ScanImage(ctx context.Context, img []byte, filename string, mode Mode) (Result, error) {
	if s.URL == "" {
		return Result{}, ErrScanUnavailable
	}
	payload, err := PrepareImage(img, filename, s.Image)
	if err != nil {
		return Result{}, err
	}

	timeout := s.Timeout
	if dl, ok := ctx.Deadline(); ok {
		if left := time.Until(dl); left < timeout {
			timeout = left
		}
	}
	if err := ctx.Err(); err != nil || timeout <= 0 {
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, context.DeadlineExceeded)
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("mode", string(mode))

	agent := fiber.Post(s.URL).
		Timeout(timeout).
		Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON).
		FileData(&fiber.FormFile{
			Fieldname: "image",
			Name:      "logbook.webp",
			Content:   payload,
		}).
		MultipartForm(args)
	if s.APIKey != "" {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+s.APIKey)
	}

	start := time.Now()
	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		log.Printf("[ERROR] scan request gagal: %v", errs[0])
		return Result{}, fmt.Errorf("%w: %v", ErrUpstream, errs[0])
	}
	log.Printf("[INFO] scan mode=%s status=%d size=%dB dur=%s", mode, code, len(payload), time.Since(start))
	if code < 200 || code >= 300 {
		return Result{}, fmt.Errorf("%w: status %d", ErrUpstream, code)
	}
	return ParseScanResponse(body, mode)
}
