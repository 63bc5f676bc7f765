package imageproc_test

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurandifr/AcheiPet/imageproc"
)

func makeJPEG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x += 10 {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func TestProcessDownscalesOversizedImage(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	out, err := p.Process(makeJPEG(t, 1800, 1200))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out.Bytes))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, 869)
	assert.LessOrEqual(t, cfg.Height, 896)
	// aspect ratio preserved: 1800x1200 scales to 869 wide
	assert.Equal(t, 869, cfg.Width)
}

func TestProcessNeverUpscales(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	out, err := p.Process(makeJPEG(t, 100, 80))
	require.NoError(t, err)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out.Bytes))
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 80, cfg.Height)
}

func TestProcessGeneratesUniqueSortableFilenames(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	pattern := regexp.MustCompile(`^[0-9a-f]{4}_\d{14}\.jpg$`)

	seen := map[string]bool{}
	raw := makeJPEG(t, 50, 50)
	for i := 0; i < 5; i++ {
		out, err := p.Process(raw)
		require.NoError(t, err)
		assert.Regexp(t, pattern, out.Filename)
		assert.False(t, seen[out.Filename], "duplicate filename %s", out.Filename)
		seen[out.Filename] = true
	}
}

func TestProcessRejectsInvalidImage(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	_, err = p.Process([]byte("definitely not an image"))
	assert.ErrorIs(t, err, imageproc.ErrInvalidImage)
}

func TestReadRoundTrip(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	out, err := p.Process(makeJPEG(t, 60, 40))
	require.NoError(t, err)

	stored, err := p.Read(out.Filename)
	require.NoError(t, err)
	assert.Equal(t, out.Bytes, stored)
}

func TestReadMissingImage(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	_, err = p.Read("0000_19700101000000.jpg")
	assert.ErrorIs(t, err, imageproc.ErrImageNotFound)
}

func TestReadStripsPathComponents(t *testing.T) {
	p, err := imageproc.NewProcessor(t.TempDir())
	require.NoError(t, err)

	_, err = p.Read("../../etc/passwd")
	assert.ErrorIs(t, err, imageproc.ErrImageNotFound)
}
