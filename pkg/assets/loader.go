package assets

import (
	"image"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/leterax/go-lopgl/pkg/fetch"
)

// Texture is a GPU texture that starts out incomplete and is filled once its
// image has been fetched and decoded.
type Texture interface {
	Init(img *image.NRGBA) error
}

// Loader streams images into textures through a fetch.Fetcher.
//
// When the fetcher runs a single lane, every request goes through one shared
// staging buffer; otherwise each request gets its own.
type Loader struct {
	fetcher    *fetch.Fetcher
	bufferSize int
	shared     []byte
	log        *zap.Logger

	failed bool
	loaded int
}

// NewLoader creates a loader whose buffers hold bufferSize bytes. Larger files fail to load.
func NewLoader(f *fetch.Fetcher, bufferSize int, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Loader{
		fetcher:    f,
		bufferSize: bufferSize,
		log:        log,
	}
	if f.Lanes() == 1 {
		l.shared = make([]byte, bufferSize)
	}
	return l
}

// Load starts fetching path; tex is initialized from a later Poll.
func (l *Loader) Load(path string, tex Texture) error {
	if tex == nil {
		return errors.Errorf("load %s: nil texture", path)
	}
	buf := l.shared
	if buf == nil {
		buf = make([]byte, l.bufferSize)
	}

	_, err := l.fetcher.Send(fetch.Request{
		Path:     path,
		Buffer:   buf,
		Callback: l.fetched,
		UserData: tex,
	})
	if err != nil {
		return errors.Wrapf(err, "load %s", path)
	}
	return nil
}

// LoadAll starts a load for every path; texs[i] receives paths[i].
func (l *Loader) LoadAll(paths []string, texs []Texture) error {
	if len(paths) != len(texs) {
		return errors.Errorf("%d paths for %d textures", len(paths), len(texs))
	}
	for i, path := range paths {
		if err := l.Load(path, texs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Poll delivers finished fetches. Call it once per frame from the render goroutine.
func (l *Loader) Poll() {
	l.fetcher.DoWork()
}

// Failed reports whether any fetch has failed. It never resets.
func (l *Loader) Failed() bool {
	return l.failed
}

// Loaded returns the number of textures initialized so far.
func (l *Loader) Loaded() int {
	return l.loaded
}

// Pending returns the number of fetches still in flight.
func (l *Loader) Pending() int {
	return l.fetcher.Pending()
}

func (l *Loader) fetched(resp *fetch.Response) {
	if resp.Failed {
		l.failed = true
		l.log.Warn("Texture fetch failed",
			zap.String("path", resp.Path),
			zap.Error(resp.Err))
		return
	}

	img, err := Decode(resp.Data)
	if err != nil {
		// The texture stays incomplete and draws using it are skipped.
		l.log.Debug("Texture decode failed",
			zap.String("path", resp.Path),
			zap.Error(err))
		return
	}

	tex := resp.UserData.(Texture)
	if err := tex.Init(img); err != nil {
		l.log.Warn("Texture init failed",
			zap.String("path", resp.Path),
			zap.Error(err))
		return
	}
	l.loaded++

	l.log.Info("Texture loaded",
		zap.String("path", resp.Path),
		zap.Int("width", img.Rect.Dx()),
		zap.Int("height", img.Rect.Dy()))
}
