package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pmkol/dlist/pkg/list"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrUnknownList = errors.New("unknown list")
	ErrNoCursor    = errors.New("no open cursor")
	ErrGhost       = errors.New("cursor is on the ghost position")
	ErrSelfSplice  = errors.New("cannot splice the list under the cursor into itself")
	ErrAssertion   = errors.New("assertion failed")
)

var nopLogger = zap.NewNop()

type RunnerOpts struct {
	// Logger optionally specifies a logger for the runner.
	// A nil Logger will disable the logging.
	Logger *zap.Logger

	// Out receives what printing ops write. Default is io.Discard.
	Out io.Writer

	// Registerer optionally registers the runner metrics.
	Registerer prometheus.Registerer
}

func (opts *RunnerOpts) init() {
	if opts.Logger == nil {
		opts.Logger = nopLogger
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
}

// Runner executes scripts. A Runner can run many scripts one after the
// other; each run starts from the lists declared by its script. It is
// safe to call Snapshot while a script runs.
type Runner struct {
	opts RunnerOpts
	m    *metrics

	mu       sync.Mutex
	lists    map[string]*list.List[string]
	cursor   *list.Cursor[string]
	cursorOn string
}

func NewRunner(opts RunnerOpts) (*Runner, error) {
	opts.init()
	m := newMetrics()
	if opts.Registerer != nil {
		if err := m.register(opts.Registerer); err != nil {
			return nil, fmt.Errorf("failed to register metrics, %w", err)
		}
	}
	return &Runner{
		opts:  opts,
		m:     m,
		lists: make(map[string]*list.List[string]),
	}, nil
}

// Run executes s. It stops at the first failing step or when ctx is done.
// The cursor, if any, is closed when Run returns.
func (r *Runner) Run(ctx context.Context, s *Script) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	defer func() {
		r.m.runDuration.Observe(time.Since(start).Seconds())
	}()
	defer r.closeCursor()

	r.lists = make(map[string]*list.List[string], len(s.Lists))
	for name, vs := range s.Lists {
		r.lists[name] = list.From(vs...)
	}
	r.m.lists.Set(float64(len(r.lists)))

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.exec(step); err != nil {
			r.m.errors.Inc()
			r.opts.Logger.Debug("step failed", zap.Int("step", i), zap.String("op", step.Op), zap.Error(err))
			return fmt.Errorf("step #%d (%s): %w", i, step.Op, err)
		}
		r.m.lists.Set(float64(len(r.lists)))
	}
	return nil
}

// Snapshot returns the content of every list, front to back.
func (r *Runner) Snapshot() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := make(map[string][]string, len(r.lists))
	for name, l := range r.lists {
		m[name] = l.Slice()
	}
	return m
}

func (r *Runner) exec(step Step) (err error) {
	o, ok := ops[step.Op]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownOp, step.Op)
	}
	args, err := o.decode(step.Args)
	if err != nil {
		return err
	}

	// Borrow violations surface as errors of the step that caused them.
	defer func() {
		if v := recover(); v != nil {
			if e, ok := v.(error); ok && errors.Is(e, list.ErrBorrowed) {
				err = e
				return
			}
			panic(v)
		}
	}()

	r.m.ops.WithLabelValues(step.Op).Inc()
	r.opts.Logger.Debug("exec", zap.String("op", step.Op), zap.Any("args", step.Args))
	return o.exec(r, args)
}

func (r *Runner) list(name string) (*list.List[string], error) {
	l, ok := r.lists[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownList, name)
	}
	return l, nil
}

func (r *Runner) listOrNew(name string) (*list.List[string], error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("%w %q", ErrUnknownList, name)
	}
	l, ok := r.lists[name]
	if !ok {
		l = list.New[string]()
		r.lists[name] = l
	}
	return l, nil
}

// underCursor reports whether the open cursor holds l. Such a list can
// only be read through the cursor.
func (r *Runner) underCursor(l *list.List[string]) bool {
	return r.cursor != nil && r.lists[r.cursorOn] == l
}

func (r *Runner) slice(l *list.List[string]) []string {
	if r.underCursor(l) {
		return r.cursor.Slice()
	}
	return l.Slice()
}

func (r *Runner) front(l *list.List[string]) (string, bool) {
	if r.underCursor(l) {
		return r.cursor.Front()
	}
	return l.Front()
}

func (r *Runner) back(l *list.List[string]) (string, bool) {
	if r.underCursor(l) {
		return r.cursor.Back()
	}
	return l.Back()
}

func (r *Runner) cur() (*list.Cursor[string], error) {
	if r.cursor == nil {
		return nil, ErrNoCursor
	}
	return r.cursor, nil
}

func (r *Runner) openCursor(name string) error {
	l, err := r.list(name)
	if err != nil {
		return err
	}
	r.closeCursor()
	r.cursor = l.Cursor()
	r.cursorOn = name
	return nil
}

func (r *Runner) closeCursor() {
	if r.cursor != nil {
		r.cursor.Close()
		r.cursor = nil
		r.cursorOn = ""
	}
}

func (r *Runner) printf(format string, a ...any) {
	fmt.Fprintf(r.opts.Out, format+"\n", a...)
}
