// Package input turns external sources into simulation commands.
package input

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/san-kum/orbsim/internal/command"
	"github.com/san-kum/orbsim/internal/metrics"
)

// Sink accepts commands without blocking. *command.Queue is a Sink.
type Sink interface {
	TrySend(c command.Command) error
}

type FileOptions struct {
	Logger  *slog.Logger
	Metrics *metrics.Collector

	// Rate and Burst cap how many commands per second are forwarded.
	// A zero Rate means no limit.
	Rate  rate.Limit
	Burst int

	// FromStart replays lines already in the file before following it.
	FromStart bool
}

// FileSource follows a control file and forwards every appended line, parsed
// with command.Parse, to a Sink. Blank lines and lines starting with '#' are
// ignored. Bad lines and full queues are logged and skipped.
type FileSource struct {
	path    string
	sink    Sink
	log     *slog.Logger
	metrics *metrics.Collector
	limiter *rate.Limiter

	file    *os.File
	reader  *bufio.Reader
	watcher *fsnotify.Watcher
	partial string
}

// NewFileSource opens path, creating it if needed, and starts watching it.
func NewFileSource(path string, sink Sink, opts FileOptions) (*FileSource, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	limit, burst := opts.Rate, opts.Burst
	if limit == 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}

	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("input: open %s: %w", path, err)
	}
	if !opts.FromStart {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			f.Close()
			return nil, fmt.Errorf("input: seek %s: %w", path, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("input: create watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		f.Close()
		return nil, fmt.Errorf("input: watch %s: %w", path, err)
	}

	return &FileSource{
		path:    path,
		sink:    sink,
		log:     opts.Logger.With("source", path),
		metrics: opts.Metrics,
		limiter: rate.NewLimiter(limit, burst),
		file:    f,
		reader:  bufio.NewReader(f),
		watcher: watcher,
	}, nil
}

// Run forwards commands until ctx is done, the watcher fails, or the sink
// is closed. The last two return nil. Run closes the source on return.
func (s *FileSource) Run(ctx context.Context) error {
	defer s.Close()

	if !s.readAvailable() {
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Write) && !s.readAvailable() {
				return nil
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watch error", "err", err)
		}
	}
}

func (s *FileSource) Close() error {
	werr := s.watcher.Close()
	ferr := s.file.Close()
	if errors.Is(ferr, os.ErrClosed) {
		ferr = nil
	}
	return errors.Join(werr, ferr)
}

// readAvailable consumes every complete line written so far. A trailing
// fragment without a newline is kept until the rest arrives. It returns
// false once the sink is closed.
func (s *FileSource) readAvailable() bool {
	for {
		chunk, err := s.reader.ReadString('\n')
		if err != nil {
			s.partial += chunk
			if !errors.Is(err, io.EOF) {
				s.log.Warn("read control file", "err", err)
			}
			return true
		}
		line := s.partial + chunk
		s.partial = ""
		if !s.handle(line) {
			return false
		}
	}
}

func (s *FileSource) handle(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return true
	}

	c, err := command.Parse(line)
	if err != nil {
		s.metrics.CommandRejected(metrics.ReasonParse)
		s.log.Warn("bad command", "line", line, "err", err)
		return true
	}
	if !s.limiter.Allow() {
		s.metrics.CommandRejected(metrics.ReasonRateLimited)
		s.log.Warn("command rate limited", "command", line)
		return true
	}

	switch err := s.sink.TrySend(c); {
	case err == nil:
		s.log.Debug("command queued", "command", line)
	case errors.Is(err, command.ErrQueueClosed):
		s.log.Info("command queue closed, stopping")
		return false
	default:
		s.metrics.CommandRejected(metrics.ReasonQueueFull)
		s.log.Warn("command dropped", "command", line, "err", err)
	}
	return true
}
