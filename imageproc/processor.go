package imageproc

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

const (
	maxWidth    = 869
	maxHeight   = 896
	jpegQuality = 85
)

var (
	ErrInvalidImage  = fmt.Errorf("image bytes could not be decoded")
	ErrImageNotFound = fmt.Errorf("image not found")
	ErrStoreImage    = fmt.Errorf("failed to store image")
)

// ProcessedImage is the normalized photo written to the upload store.
type ProcessedImage struct {
	Filename string
	Path     string
	Bytes    []byte
}

// Processor downsizes uploaded photos into bounded JPEGs and keeps them under
// a single uploads directory.
type Processor struct {
	uploadsDir string
}

// NewProcessor creates the uploads directory if it does not exist yet.
func NewProcessor(uploadsDir string) (*Processor, error) {
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreImage, err)
	}

	return &Processor{
		uploadsDir: uploadsDir,
	}, nil
}

// Process decodes the raw bytes, fits the image within the bounding box
// without ever upscaling, re-encodes it as JPEG and writes it atomically
// under a fresh filename.
func (p *Processor) Process(raw []byte) (*ProcessedImage, error) {
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}

	fitted := imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidImage, err)
	}

	filename := newFilename()
	fullPath := filepath.Join(p.uploadsDir, filename)

	if err := writeAtomic(fullPath, buf.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStoreImage, err)
	}

	return &ProcessedImage{
		Filename: filename,
		Path:     fullPath,
		Bytes:    buf.Bytes(),
	}, nil
}

// Read returns the stored bytes for a previously processed image.
func (p *Processor) Read(filename string) ([]byte, error) {
	// the filename is caller-supplied; strip any path components
	filename = filepath.Base(filename)

	data, err := os.ReadFile(filepath.Join(p.uploadsDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrImageNotFound
		}
		return nil, err
	}
	return data, nil
}

// newFilename combines a short random token with a sortable UTC timestamp.
// Practical uniqueness without any coordination step.
func newFilename() string {
	token := make([]byte, 2)
	_, _ = rand.Read(token)

	return fmt.Sprintf("%s_%s.jpg", hex.EncodeToString(token), time.Now().UTC().Format("20060102150405"))
}

// writeAtomic writes to a temp file in the same directory and renames it into
// place, so a crashed upload never leaves a partial image behind.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
