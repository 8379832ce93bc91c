// Package imaging prepares photos for the image endpoint. The API stores an
// image_url string per image, so local files are shrunk, re-encoded as JPEG
// and sent inline as a data URL.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"golang.org/x/image/draw"
)

// MaxDimension bounds the width and height of a prepared image.
const MaxDimension = 1024

// JPEGQuality is the quality of the re-encoded JPEG.
const JPEGQuality = 85

// MaxInputSize caps how much of an input is read.
const MaxInputSize = 16 << 20

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Prepared is a re-encoded image.
type Prepared struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// DataURL renders p as a base64 data URL.
func (p *Prepared) DataURL() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}

// Prepare sniffs the input (client-supplied extensions are not trusted),
// scales it down to MaxDimension and re-encodes it as JPEG.
func Prepare(r io.Reader) (*Prepared, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxInputSize {
		return nil, fmt.Errorf("image exceeds %d bytes", MaxInputSize)
	}

	if mime := http.DetectContentType(data); !allowedMIME[mime] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG and PNG accepted)", mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	img = fit(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	b := img.Bounds()
	return &Prepared{Data: buf.Bytes(), MIME: "image/jpeg", Width: b.Dx(), Height: b.Dy()}, nil
}

// PrepareFile prepares the image at path.
func PrepareFile(path string) (*Prepared, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	return Prepare(f)
}

// Reference turns a user-supplied image reference into the image_url sent to
// the API. An existing local file is prepared and inlined as a data URL;
// anything else, such as an http(s) URL or a path on the image host, is
// passed through.
func Reference(ref string) (string, error) {
	if IsRemote(ref) || strings.HasPrefix(ref, "data:") {
		return ref, nil
	}
	info, err := os.Stat(ref)
	if err != nil || info.IsDir() {
		return ref, nil
	}
	p, err := PrepareFile(ref)
	if err != nil {
		return "", err
	}
	return p.DataURL(), nil
}

// IsRemote reports whether ref is an absolute http(s) URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(ref)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// fit scales img down with Catmull-Rom so neither side exceeds maxDim,
// keeping the aspect ratio. Smaller images are returned as is.
func fit(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := maxDim, maxDim
	if w > h {
		newH = max(1, h*maxDim/w)
	} else {
		newW = max(1, w*maxDim/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

func init() {
	image.RegisterFormat("jpeg", "\xff\xd8", jpeg.Decode, jpeg.DecodeConfig)
	image.RegisterFormat("png", "\x89PNG", png.Decode, png.DecodeConfig)
}
