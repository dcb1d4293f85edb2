package benchmark

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// Options shape the load of Run. Every worker runs Rounds rounds; round i
// works on key i % Keys and issues 1 write followed by Checks-1 reads, the
// last of which is verified against the expected record.
type Options struct {
	Goroutines int `yaml:"goroutines"`
	Keys       int `yaml:"keys"`
	Rounds     int `yaml:"rounds"`
	Checks     int `yaml:"checks"`
}

func DefaultOptions() Options {
	return Options{
		Goroutines: 100,
		Keys:       1000000,
		Rounds:     1000,
		Checks:     100,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Goroutines < 1:
		return errors.New("goroutines must be >= 1")
	case o.Keys < 1:
		return errors.New("keys must be >= 1")
	case o.Rounds < 0:
		return errors.New("rounds must be >= 0")
	case o.Checks < 2:
		return errors.New("checks must be >= 2")
	}
	return nil
}

// Result counts the outcome of a Run. It is safe to update concurrently.
type Result struct {
	Backend string
	Elapsed time.Duration

	ReadSuccess  atomic.Uint64
	ReadMiss     atomic.Uint64
	WriteSuccess atomic.Uint64
	WriteFail    atomic.Uint64
	CheckSuccess atomic.Uint64
	CheckFail    atomic.Uint64
}

// Ops is the number of reads and writes issued.
func (r *Result) Ops() uint64 {
	return r.ReadSuccess.Load() + r.ReadMiss.Load() + r.WriteSuccess.Load() + r.WriteFail.Load()
}

func (r *Result) MissRate() float64 {
	return rate(r.ReadMiss.Load(), r.ReadSuccess.Load()+r.ReadMiss.Load())
}

func (r *Result) WriteFailRate() float64 {
	return rate(r.WriteFail.Load(), r.WriteSuccess.Load()+r.WriteFail.Load())
}

func (r *Result) CheckFailRate() float64 {
	return rate(r.CheckFail.Load(), r.CheckSuccess.Load()+r.CheckFail.Load())
}

func (r *Result) String() string {
	return fmt.Sprintf(
		"%s in %s\nRead: success=%d miss=%d missRate=%.2f%%\nWrite: success=%d fail=%d failRate=%.2f%%\nCheck: success=%d fail=%d failRate=%.2f%%",
		r.Backend, r.Elapsed,
		r.ReadSuccess.Load(), r.ReadMiss.Load(), r.MissRate(),
		r.WriteSuccess.Load(), r.WriteFail.Load(), r.WriteFailRate(),
		r.CheckSuccess.Load(), r.CheckFail.Load(), r.CheckFailRate(),
	)
}

func rate(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// Run drives b with opts.Goroutines concurrent workers and returns the
// counts. It stops early with ctx's error when ctx is done.
func Run(ctx context.Context, b Backend, opts Options, logger log.Logger) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = log.With(logger, "backend", b.Name())

	result := &Result{Backend: b.Name()}
	start := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < opts.Goroutines; w++ {
		g.Go(func() error {
			return work(ctx, b, opts, result, logger)
		})
	}
	err := g.Wait()
	result.Elapsed = time.Since(start)

	level.Info(logger).Log("msg", "run finished", "elapsed", result.Elapsed, "ops", result.Ops(),
		"miss_rate", result.MissRate(), "check_fail", result.CheckFail.Load())
	return result, err
}

func work(ctx context.Context, b Backend, opts Options, result *Result, logger log.Logger) error {
	for i := 0; i < opts.Rounds; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		id := i % opts.Keys
		k, v := NewRecord(id)
		if err := b.Set(k, v); err != nil {
			result.WriteFail.Inc()
		} else {
			result.WriteSuccess.Inc()
		}

		for j := 1; j < opts.Checks; j++ {
			v, ok := b.Get(k)
			if !ok {
				result.ReadMiss.Inc()
				continue
			}
			result.ReadSuccess.Inc()

			if j == opts.Checks-1 {
				if err := Check(id, v); err != nil {
					result.CheckFail.Inc()
					level.Warn(logger).Log("msg", "check failed", "key", k, "err", err)
				} else {
					result.CheckSuccess.Inc()
				}
			}
		}
	}
	return nil
}

// stringToBytes views s as a byte slice. The result must not be modified.
func stringToBytes(s string) []byte {
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
