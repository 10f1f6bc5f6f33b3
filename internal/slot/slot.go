// Package slot holds a named, config-driven image and the image derived
// from it.
//
// A Slot is the owner of the source and derived images: ReadConfig binds the
// parameters and marks what changed, Load (re)loads the file and rebuilds the
// derived image when anything is pending, and Image returns whatever should
// be displayed. All methods are safe for concurrent use.
package slot

import (
	"image"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-tint-mcp/internal/config"
	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
	"github.com/ironsheep/image-tint-mcp/internal/imaging"
	"github.com/ironsheep/image-tint-mcp/internal/params"
)

// Stats counts the expensive work a slot has done.
type Stats struct {
	Decodes      int `json:"decodes"`
	PipelineRuns int `json:"pipeline_runs"`
}

// Slot is a single configured image.
type Slot struct {
	name string
	log  logrus.FieldLogger

	loader   *imaging.Loader
	pipeline *imaging.Pipeline
	keys     config.Keys
	bindOpts config.BindOptions

	mu        sync.Mutex
	tracker   *params.Tracker
	imageName string
	source    *imaging.SourceImage
	derived   image.Image
	stats     Stats
}

// Option configures a Slot.
type Option func(*Slot)

// WithBackend sets the graphics backend used for decoding and drawing.
func WithBackend(b imaging.Backend) Option {
	return func(s *Slot) {
		s.loader.Backend = b
		s.pipeline.Backend = b
	}
}

// WithFileSystem sets where image files are read from.
func WithFileSystem(fsys imaging.FileSystem) Option {
	return func(s *Slot) { s.loader.FS = fsys }
}

// WithLogger sets the logger. The slot name is attached to every entry.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Slot) { s.log = l }
}

// WithKeys sets the configuration key names, e.g. config.PrefixedKeys("Button").
func WithKeys(k config.Keys) Option {
	return func(s *Slot) { s.keys = k }
}

// WithDisableTransform makes ReadConfig ignore the crop and rotate keys.
func WithDisableTransform() Option {
	return func(s *Slot) { s.bindOpts.DisableTransform = true }
}

// New creates an empty slot named name.
func New(name string, opts ...Option) *Slot {
	s := &Slot{
		name:     name,
		log:      logrus.StandardLogger(),
		loader:   imaging.NewLoader(),
		pipeline: &imaging.Pipeline{Backend: imaging.Software{}},
		keys:     config.DefaultKeys(),
		tracker:  params.NewTracker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("slot", name)
	s.pipeline.Log = s.log
	return s
}

// Name returns the slot name.
func (s *Slot) Name() string { return s.name }

// ReadConfig binds the slot's parameters from section and records which
// stages they invalidate. The image file name is read as well and used by
// the next Reload.
//
// A *errors.ConfigError is returned for an invalid anchor or flip keyword;
// the slot's parameters are left unchanged in that case.
func (s *Slot) ReadConfig(r config.Reader, section string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := config.Bind(r, section, s.keys, s.tracker.Current(), s.bindOpts)
	if err != nil {
		s.log.WithFields(logrus.Fields{"section": section, "error": err}).Error("invalid configuration")
		return err
	}

	s.imageName = r.ReadString(section, s.keys.ImageName, "")
	dirty := s.tracker.Update(next)
	s.log.WithFields(logrus.Fields{
		"section":   section,
		"crop":      dirty.Crop,
		"tint":      dirty.Tint,
		"transform": dirty.Transform,
	}).Debug("configuration read")
	return nil
}

// ImageName returns the image name read by the last ReadConfig.
func (s *Slot) ImageName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imageName
}

// Reload loads the image named by the configuration. See Load.
func (s *Slot) Reload(force bool) {
	s.Load(s.ImageName(), force)
}

// Load loads the image at path and rebuilds the derived image if anything
// is pending.
//
// An empty path empties the slot. Open and decode failures are logged and
// empty the slot; they are not returned. An unchanged file (same path and
// modification time) is not read again unless force is set.
func (s *Slot) Load(path string, force bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if path == "" {
		if s.source != nil {
			s.dispose()
		}
		return
	}

	outcome, src, err := s.loader.Load(path, s.source, force)
	if err != nil {
		entry := s.log.WithFields(logrus.Fields{"path": imaging.ResolvePath(path), "error": err})
		if apperrors.IsCategory(err, apperrors.CategoryLoad) {
			entry.Errorf("Unable to open %s: %s", s.name, imaging.ResolvePath(path))
		} else {
			entry.Errorf("Unable to load %s: %s", s.name, imaging.ResolvePath(path))
		}
		s.dispose()
		return
	}

	switch outcome {
	case imaging.Emptied:
		s.dispose()
		return
	case imaging.Reloaded:
		s.dispose()
		s.source = src
		s.stats.Decodes++
		s.tracker.Reloaded()
		s.log.WithFields(logrus.Fields{
			"path":   src.Path,
			"width":  src.Width(),
			"height": src.Height(),
		}).Debug("image loaded")
	}

	s.apply()
}

// apply rebuilds the derived image when a flag is pending. Flags are cleared
// together once the pass has succeeded, including when the source has zero
// area and no stage could run.
func (s *Slot) apply() {
	dirty := s.tracker.Pending()
	if s.source == nil || !dirty.Any() {
		return
	}

	p := s.tracker.Current()
	derived, err := s.pipeline.Run(s.source.Image, p, dirty)
	if err != nil {
		s.log.WithFields(logrus.Fields{"path": s.source.Path, "error": err}).Error("pipeline failed")
		return
	}

	s.derived = derived
	if s.source.Width() > 0 && s.source.Height() > 0 {
		s.stats.PipelineRuns++
	}
	s.tracker.Clear()
}

// Image returns the derived image, or the source image when no stage
// applies. It returns nil for an empty slot.
func (s *Slot) Image() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.derived != nil {
		return s.derived
	}
	if s.source != nil {
		return s.source.Image
	}
	return nil
}

// Source returns the loaded source image, or nil.
func (s *Slot) Source() *imaging.SourceImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// IsLoaded reports whether a source image is held.
func (s *Slot) IsLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source != nil
}

// Params returns the current parameters.
func (s *Slot) Params() params.Parameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Current()
}

// Pending returns the dirty flags not yet consumed by a pipeline pass.
func (s *Slot) Pending() params.DirtyFlags {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Pending()
}

// Stats returns the work counters.
func (s *Slot) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Dispose drops the source and derived images. Parameters and pending
// flags are kept.
func (s *Slot) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispose()
}

func (s *Slot) dispose() {
	s.source = nil
	s.derived = nil
}
