package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dmitrijs2005/recipekeeper/internal/blobstore"
	"github.com/dmitrijs2005/recipekeeper/internal/logging"
)

const imageNameLayout = "20060102_150405"

// Upload is a photo as received from the user. Filename is the original name
// and decides the output format.
type Upload struct {
	Filename string
	Data     []byte
}

// ImageIngestor normalizes uploaded photos and writes them to a blob store.
type ImageIngestor struct {
	store   blobstore.Store
	maxDim  int
	quality int
	log     logging.Logger
	now     func() time.Time
}

func NewImageIngestor(store blobstore.Store, maxDim, quality int, log logging.Logger) *ImageIngestor {
	return &ImageIngestor{
		store:   store,
		maxDim:  maxDim,
		quality: quality,
		log:     log,
		now:     time.Now,
	}
}

// Ingest downsizes the photo to fit maxDim x maxDim, re-encodes it in the
// format of its extension and stores it as <YYYYMMDD_HHMMSS>_<name>.
//
// Failures are logged and reported as ok=false so that the recipe can still
// be saved. Two uploads with the same name within one second share a stored
// name, and the later one wins.
func (i *ImageIngestor) Ingest(ctx context.Context, up *Upload) (path string, ok bool) {
	if up == nil {
		return "", false
	}

	path, err := i.ingest(ctx, up)
	if err != nil {
		i.log.Warn(ctx, "image not saved", "filename", up.Filename, "error", err)
		return "", false
	}
	i.log.Debug(ctx, "image saved", "path", path)
	return path, true
}

func (i *ImageIngestor) ingest(ctx context.Context, up *Upload) (string, error) {
	base := filepath.Base(up.Filename)
	format, err := imaging.FormatFromFilename(base)
	if err != nil {
		return "", err
	}

	img, err := imaging.Decode(bytes.NewReader(up.Data), imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}

	img = imaging.Fit(img, i.maxDim, i.maxDim, imaging.Lanczos)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, format,
		imaging.JPEGQuality(i.quality),
		imaging.PNGCompressionLevel(png.BestCompression))
	if err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}

	name := i.now().Format(imageNameLayout) + "_" + base
	return i.store.Put(ctx, name, contentType(format), buf.Bytes())
}

func contentType(f imaging.Format) string {
	switch f {
	case imaging.JPEG:
		return "image/jpeg"
	case imaging.PNG:
		return "image/png"
	case imaging.GIF:
		return "image/gif"
	case imaging.TIFF:
		return "image/tiff"
	case imaging.BMP:
		return "image/bmp"
	}
	return "application/octet-stream"
}
