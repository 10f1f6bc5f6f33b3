package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-tint-mcp/internal/config"
	apperrors "github.com/ironsheep/image-tint-mcp/internal/errors"
	"github.com/ironsheep/image-tint-mcp/internal/imaging"
	"github.com/ironsheep/image-tint-mcp/internal/slot"
	"github.com/ironsheep/image-tint-mcp/internal/watch"
)

type renderOptions struct {
	config  string
	section string
	out     string
	baseDir string
	watch   bool
	debug   bool
}

func parseRenderFlags(args []string) (*renderOptions, error) {
	var opt renderOptions
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVar(&opt.config, "config", "", "TOML config file")
	fs.StringVar(&opt.section, "section", "", "config section to render")
	fs.StringVar(&opt.out, "out", "", "output PNG file")
	fs.StringVar(&opt.baseDir, "base-dir", "", "directory for relative image names (default: config directory)")
	fs.BoolVar(&opt.watch, "watch", false, "re-render when the config or image file changes")
	fs.BoolVar(&opt.debug, "debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if opt.config == "" || opt.section == "" || opt.out == "" {
		return nil, errors.New("-config, -section and -out are required")
	}
	if opt.baseDir == "" {
		opt.baseDir = filepath.Dir(opt.config)
	}
	return &opt, nil
}

// renderer re-reads the config section into one slot and writes its image.
type renderer struct {
	mu   sync.Mutex
	opt  *renderOptions
	slot *slot.Slot
	log  logrus.FieldLogger
}

func (r *renderer) imagePath() string {
	name := r.slot.ImageName()
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.opt.baseDir, name)
}

// render reads the config when readConfig is set, reloads the image and
// saves the result.
func (r *renderer) render(readConfig bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if readConfig {
		src, err := config.LoadTOML(r.opt.config)
		if err != nil {
			return err
		}
		if !src.HasSection(r.opt.section) {
			return fmt.Errorf("section [%s] not found in %s", r.opt.section, r.opt.config)
		}
		if err := r.slot.ReadConfig(src, r.opt.section); err != nil {
			return err
		}
	}

	r.slot.Load(r.imagePath(), false)
	img := r.slot.Image()
	if img == nil {
		return fmt.Errorf("no image for section [%s]", r.opt.section)
	}
	if err := imaging.SavePNG(r.opt.out, img); err != nil {
		return apperrors.Wrap(apperrors.CategoryEncode, "save", err)
	}

	r.log.WithFields(logrus.Fields{
		"out":    r.opt.out,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Info("rendered")
	return nil
}

func runRender(args []string, logger *logrus.Logger) error {
	opt, err := parseRenderFlags(args)
	if err != nil {
		return err
	}
	if opt.debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	r := &renderer{
		opt:  opt,
		slot: slot.New(opt.section, slot.WithLogger(logger)),
		log:  logger,
	}
	if err := r.render(true); err != nil {
		return err
	}
	if !opt.watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.watch(ctx)
}

// watch re-renders on changes until ctx is done. The image watch follows
// ImageName when a config change points it at another file.
func (r *renderer) watch(ctx context.Context) error {
	w, err := watch.New(r.log)
	if err != nil {
		return err
	}
	defer w.Close()

	onImage := func() {
		if err := r.render(false); err != nil {
			r.log.WithField("error", err).Warn("re-render failed")
		}
	}
	watchImage := func() {
		path := imaging.ResolvePath(r.imagePath())
		if path == "" {
			return
		}
		if err := w.Add(path, onImage); err != nil {
			r.log.WithFields(logrus.Fields{"path": path, "error": err}).Warn("cannot watch image")
		}
	}

	if err := w.Add(r.opt.config, func() {
		if err := r.render(true); err != nil {
			r.log.WithField("error", err).Warn("re-render failed")
		}
		watchImage()
	}); err != nil {
		return err
	}
	watchImage()

	r.log.WithField("config", r.opt.config).Info("watching for changes")
	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
