package imaging

import (
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
)

// FileSystem opens image files. fs.FS implementations such as fstest.MapFS
// satisfy it, as does OSFileSystem.
type FileSystem interface {
	Open(name string) (fs.File, error)
}

// OSFileSystem opens files from the host filesystem with os.Open.
type OSFileSystem struct{}

func (OSFileSystem) Open(name string) (fs.File, error) { return os.Open(name) }

// SourceImage is a decoded image together with the bytes it was decoded from.
//
// Data is owned by the SourceImage; some decoders keep referring to their
// input, so the buffer lives exactly as long as Image.
type SourceImage struct {
	Image   image.Image
	Data    []byte
	Path    string
	ModTime time.Time
}

// Width returns the image width in pixels, or 0 for a nil SourceImage.
func (s *SourceImage) Width() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dx()
}

// Height returns the image height in pixels, or 0 for a nil SourceImage.
func (s *SourceImage) Height() int {
	if s == nil || s.Image == nil {
		return 0
	}
	return s.Image.Bounds().Dy()
}

// LoadOutcome tells the owner what a Load did to its source image.
type LoadOutcome int

const (
	// Emptied means the owner must drop its source image, either because no
	// path was configured or because opening or decoding failed.
	Emptied LoadOutcome = iota
	// Unchanged means the file was not modified; the previous image stands.
	Unchanged
	// Reloaded means a new image was decoded and replaces the previous one.
	Reloaded
)

func (o LoadOutcome) String() string {
	switch o {
	case Emptied:
		return "emptied"
	case Unchanged:
		return "unchanged"
	case Reloaded:
		return "reloaded"
	}
	return fmt.Sprintf("LoadOutcome(%d)", int(o))
}

// ResolvePath appends ".png" to a path whose final element has no extension.
func ResolvePath(path string) string {
	if path == "" {
		return ""
	}
	base := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		base = path[i+1:]
	}
	if !strings.Contains(base, ".") {
		return path + ".png"
	}
	return path
}

// Loader reads and decodes source images, skipping the work when the file's
// modification time is unchanged.
type Loader struct {
	FS      FileSystem
	Backend Backend
}

// NewLoader returns a Loader reading from the host filesystem with the
// Software backend.
func NewLoader() *Loader {
	return &Loader{FS: OSFileSystem{}, Backend: Software{}}
}

// Load (re)loads the image at path.
//
// prev is the currently held image, if any. When the resolved path and the
// file's modification time match prev and force is false, Load returns
// Unchanged without reading the file. Open, read and decode failures return
// Emptied with a *errors.ProcessingError in CategoryLoad or CategoryDecode.
func (l *Loader) Load(path string, prev *SourceImage, force bool) (LoadOutcome, *SourceImage, error) {
	if path == "" {
		return Emptied, nil, nil
	}
	path = ResolvePath(path)

	f, err := l.fs().Open(path)
	if err != nil {
		return Emptied, nil, apperrors.New(apperrors.CategoryLoad, "open", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return Emptied, nil, apperrors.New(apperrors.CategoryLoad, "stat", err)
	}

	modTime := stat.ModTime()
	if !force && prev != nil && prev.Path == path && prev.ModTime.Equal(modTime) {
		return Unchanged, prev, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return Emptied, nil, apperrors.New(apperrors.CategoryLoad, "read", err)
	}

	img, err := l.backend().Decode(data)
	if err != nil {
		return Emptied, nil, apperrors.New(apperrors.CategoryDecode, "decode", err)
	}
	if img == nil {
		return Emptied, nil, apperrors.New(apperrors.CategoryDecode, "decode", apperrors.ErrNoImage)
	}

	return Reloaded, &SourceImage{
		Image:   img,
		Data:    data,
		Path:    path,
		ModTime: modTime,
	}, nil
}

func (l *Loader) fs() FileSystem {
	if l.FS == nil {
		return OSFileSystem{}
	}
	return l.FS
}

func (l *Loader) backend() Backend {
	if l.Backend == nil {
		return Software{}
	}
	return l.Backend
}

// ImageInfo describes an image held by a slot.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is derived from the file extension: "png", "jpeg", "gif",
	// "bmp", "webp" or "unknown".
	Format string `json:"format"`

	// ColorDepth is "8-bit" or "16-bit" per channel.
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded image carries an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the encoded source in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Describe returns metadata about a source image.
func Describe(src *SourceImage) *ImageInfo {
	if src == nil || src.Image == nil {
		return nil
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(src.Path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	case ".bmp":
		format = "bmp"
	case ".webp":
		format = "webp"
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch src.Image.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         src.Width(),
		Height:        src.Height(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: int64(len(src.Data)),
	}
}
