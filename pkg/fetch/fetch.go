// Package fetch loads files asynchronously into caller-owned buffers.
//
// Requests are grouped into channels. Each channel works through its requests
// in order, with at most NumLanes of them in flight at once. File I/O runs on a
// per-channel worker pool, but completion callbacks only ever run from DoWork,
// on the goroutine that polls. A request keeps its lane from dispatch until its
// callback has returned, so the requests of a single-lane channel are fully
// serialized and may share one buffer.
package fetch

import (
	"context"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Failure classes reported through Response.Err.
var (
	ErrFileNotFound   = errors.New("fetch: file not found")
	ErrBufferTooSmall = errors.New("fetch: buffer too small")
	ErrUnexpectedEOF  = errors.New("fetch: unexpected end of file")
)

// Errors returned by Send.
var (
	ErrTooManyRequests = errors.New("fetch: too many requests in flight")
	ErrShutdown        = errors.New("fetch: fetcher is shut down")
)

// Desc sizes a Fetcher.
type Desc struct {
	MaxRequests int // requests in flight across all channels
	NumChannels int // independent request queues
	NumLanes    int // concurrent requests per channel
}

// Handle identifies a sent request. The zero Handle is never issued.
type Handle uint32

// Request describes one file to load.
type Request struct {
	Path     string
	Channel  int
	Buffer   []byte // receives the whole file; must outlive the callback
	Callback func(*Response)
	UserData any
}

// Response is handed to a request's callback exactly once.
type Response struct {
	Handle   Handle
	Path     string
	Channel  int
	Fetched  bool   // Data holds the complete file
	Failed   bool   // Err says why
	Finished bool   // always true; the request is gone after the callback
	Data     []byte // Buffer[:size] when Fetched
	Err      error
	UserData any
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFS makes the Fetcher resolve paths in fsys.
func WithFS(fsys fs.FS) Option {
	return func(f *Fetcher) { f.fsys = fsys }
}

// WithBasePath makes the Fetcher resolve paths relative to dir on disk.
func WithBasePath(dir string) Option {
	return WithFS(os.DirFS(dir))
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) { f.log = l }
}

type request struct {
	Request
	handle Handle
}

type completion struct {
	req  *request
	ch   *channel
	resp Response
}

type channel struct {
	index int
	queue chan *request
	lanes *semaphore.Weighted
	pool  pond.Pool
}

// Fetcher is an asynchronous file loader with a poll-driven completion queue.
type Fetcher struct {
	desc     Desc
	fsys     fs.FS
	log      *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	channels []*channel
	done     chan completion
	dispatch sync.WaitGroup

	mu         sync.Mutex
	nextHandle Handle
	inflight   int
	closed     bool
}

// New starts a Fetcher. Paths resolve against the working directory unless
// WithFS or WithBasePath says otherwise.
func New(desc Desc, opts ...Option) (*Fetcher, error) {
	if desc.MaxRequests <= 0 || desc.NumChannels <= 0 || desc.NumLanes <= 0 {
		return nil, errors.Errorf("fetch: invalid desc %+v", desc)
	}

	ctx, cancel := context.WithCancel(context.Background())
	f := &Fetcher{
		desc:   desc,
		fsys:   os.DirFS("."),
		log:    zap.NewNop(),
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan completion, desc.MaxRequests),
	}
	for _, opt := range opts {
		opt(f)
	}

	for i := range desc.NumChannels {
		ch := &channel{
			index: i,
			queue: make(chan *request, desc.MaxRequests),
			lanes: semaphore.NewWeighted(int64(desc.NumLanes)),
			pool:  pond.NewPool(desc.NumLanes, pond.WithContext(ctx)),
		}
		f.channels = append(f.channels, ch)
		f.dispatch.Add(1)
		go f.run(ch)
	}
	return f, nil
}

// Lanes returns the number of lanes per channel.
func (f *Fetcher) Lanes() int {
	return f.desc.NumLanes
}

// Send queues a request. The callback runs from a later DoWork call.
func (f *Fetcher) Send(req Request) (Handle, error) {
	switch {
	case req.Path == "":
		return 0, errors.New("fetch: empty path")
	case len(req.Buffer) == 0:
		return 0, errors.Errorf("fetch: no buffer for %s", req.Path)
	case req.Callback == nil:
		return 0, errors.Errorf("fetch: no callback for %s", req.Path)
	case req.Channel < 0 || req.Channel >= len(f.channels):
		return 0, errors.Errorf("fetch: channel %d out of range [0,%d)", req.Channel, len(f.channels))
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return 0, ErrShutdown
	}
	if f.inflight >= f.desc.MaxRequests {
		return 0, ErrTooManyRequests
	}

	f.inflight++
	f.nextHandle++
	r := &request{Request: req, handle: f.nextHandle}

	// Queues hold MaxRequests entries, so this never blocks.
	f.channels[req.Channel].queue <- r

	f.log.Debug("Fetch queued",
		zap.String("path", req.Path),
		zap.Int("channel", req.Channel),
		zap.Uint32("handle", uint32(r.handle)))

	return r.handle, nil
}

// Pending returns the number of requests whose callback has not run yet.
func (f *Fetcher) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inflight
}

// DoWork delivers the completions that are ready, invoking each callback on
// the calling goroutine. It never blocks waiting for I/O.
func (f *Fetcher) DoWork() {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return
	}

	// Only what is ready now; work finishing during the callbacks waits for the next poll.
	for n := len(f.done); n > 0; n-- {
		f.finish(<-f.done)
	}
}

// Shutdown stops dispatching, waits for running I/O and drops undelivered responses.
func (f *Fetcher) Shutdown() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	for _, ch := range f.channels {
		close(ch.queue)
	}
	f.mu.Unlock()

	f.cancel()
	f.dispatch.Wait()
	for _, ch := range f.channels {
		ch.pool.StopAndWait()
	}
}

// run hands the channel's requests to its pool in order, one lane each.
func (f *Fetcher) run(ch *channel) {
	defer f.dispatch.Done()

	for r := range ch.queue {
		if err := ch.lanes.Acquire(f.ctx, 1); err != nil {
			return
		}
		ch.pool.Submit(func() {
			f.done <- f.load(ch, r)
		})
	}
}

func (f *Fetcher) load(ch *channel, r *request) completion {
	resp := Response{
		Handle:   r.handle,
		Path:     r.Path,
		Channel:  ch.index,
		Finished: true,
		UserData: r.UserData,
	}

	n, err := readInto(f.fsys, r.Path, r.Buffer)
	if err != nil {
		resp.Failed = true
		resp.Err = err
	} else {
		resp.Fetched = true
		resp.Data = r.Buffer[:n]
	}

	return completion{req: r, ch: ch, resp: resp}
}

func (f *Fetcher) finish(c completion) {
	if c.resp.Failed {
		f.log.Warn("Fetch failed",
			zap.String("path", c.resp.Path),
			zap.Error(c.resp.Err))
	} else {
		f.log.Debug("Fetch complete",
			zap.String("path", c.resp.Path),
			zap.Int("bytes", len(c.resp.Data)))
	}

	c.req.Callback(&c.resp)

	// The buffer is the caller's again; the next request may use the lane.
	c.ch.lanes.Release(1)

	f.mu.Lock()
	f.inflight--
	f.mu.Unlock()
}

// readInto reads the whole file at path into buf.
func readInto(fsys fs.FS, path string, buf []byte) (int, error) {
	file, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, errors.Wrapf(ErrFileNotFound, "%s", path)
		}
		return 0, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "stat %s", path)
	}

	size := info.Size()
	if size > int64(len(buf)) {
		return 0, errors.Wrapf(ErrBufferTooSmall, "%s is %d bytes, buffer holds %d", path, size, len(buf))
	}

	n, err := io.ReadFull(file, buf[:size])
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return n, errors.Wrapf(ErrUnexpectedEOF, "%s", path)
		}
		return n, errors.Wrapf(err, "read %s", path)
	}
	return n, nil
}
