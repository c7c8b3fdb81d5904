package model

import (
	"bytes"
	"hotel/shared/failure"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // decoder registration
)

const (
	EntityName = "upload"

	Folder       = "hotel-uploads"
	MaxFileBytes = 5 << 20
	MaxDimension = 2000
	MaxPixels    = 50_000_000
	MaxFiles     = 10

	jpegQuality = 90
)

var Extensions = []string{"jpg", "jpeg", "png", "gif", "webp"}

var (
	ErrNoFile        = &failure.Failure{Code: http.StatusBadRequest, Message: "no file uploaded"}
	ErrTooManyFiles  = &failure.Failure{Code: http.StatusBadRequest, Message: "too many files, at most 10 per request"}
	ErrExtension     = &failure.Failure{Code: http.StatusBadRequest, Message: "file type not allowed, use jpg, jpeg, png, gif or webp"}
	ErrTooLarge      = &failure.Failure{Code: http.StatusBadRequest, Message: "file exceeds the 5MB limit"}
	ErrDimensions    = &failure.Failure{Code: http.StatusBadRequest, Message: "image exceeds 50 megapixels"}
	ErrUnreadable    = &failure.Failure{Code: http.StatusBadRequest, Message: "file is not a readable image"}
	ErrPublicID      = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid public id"}
	ErrPublicIDEmpty = &failure.Failure{Code: http.StatusBadRequest, Message: "public id is required"}
)

// Image is an uploaded file that passed the policy checks.
type Image struct {
	PublicID    string
	ContentType string
	Data        []byte
}

// Extension returns the lower-cased extension of name without the dot.
func Extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Check applies the upload policy to a named file and assigns it a fresh
// public id under the upload folder. Images wider or taller than MaxDimension
// are scaled down to fit, keeping their aspect ratio.
func Check(name string, data []byte) (Image, error) {
	ext := Extension(name)
	if !slices.Contains(Extensions, ext) {
		return Image{}, ErrExtension
	}

	if len(data) > MaxFileBytes {
		return Image{}, ErrTooLarge
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, ErrUnreadable
	}

	if cfg.Width*cfg.Height > MaxPixels {
		return Image{}, ErrDimensions
	}

	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		if data, format, err = fit(data, cfg.Width, cfg.Height); err != nil {
			return Image{}, err
		}

		if format != "jpeg" || (ext != "jpg" && ext != "jpeg") {
			ext = format
		}
	}

	return Image{
		PublicID:    Folder + "/" + uuid.NewString() + "." + ext,
		ContentType: "image/" + format,
		Data:        data,
	}, nil
}

// fit decodes data and scales it into a MaxDimension square. WebP has no
// encoder, so it comes back as PNG.
func fit(data []byte, width, height int) ([]byte, string, error) {
	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrUnreadable
	}

	ratio := math.Min(float64(MaxDimension)/float64(width), float64(MaxDimension)/float64(height))
	bounds := image.Rect(0, 0,
		max(1, int(math.Round(float64(width)*ratio))),
		max(1, int(math.Round(float64(height)*ratio))),
	)

	dst := image.NewRGBA(bounds)
	draw.CatmullRom.Scale(dst, bounds, src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer

	switch format {
	case "jpeg":
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(&buf, dst, nil)
	default:
		format = "png"
		err = png.Encode(&buf, dst)
	}

	if err != nil {
		return nil, "", failure.InternalError(err)
	}

	return buf.Bytes(), format, nil
}

// ValidPublicID reports whether id names an object inside the upload folder.
func ValidPublicID(id string) bool {
	rest, ok := strings.CutPrefix(id, Folder+"/")

	return ok && rest != "" && !strings.Contains(rest, "..")
}
