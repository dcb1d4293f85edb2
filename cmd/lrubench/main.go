package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"gopkg.in/yaml.v3"

	"github.com/yuadsl3010/lrucache"
	"github.com/yuadsl3010/lrucache/benchmark"
)

type CLI struct {
	Config string `help:"YAML file with cache, run and backends sections. Values in the file override flags." type:"existingfile" short:"c"`

	Backends        []string          `help:"Backends to compare." default:"lrucache,freecache,bigcache,gocache,golanglru,otter,map"`
	MaxSize         lrucache.ByteSize `help:"Byte budget of every backend." default:"100MiB"`
	AverageItemSize lrucache.ByteSize `help:"Expected record size, sizes lrucache buckets and entry bounded backends." default:"1KiB"`
	Segments        int               `help:"lrucache segments." default:"1"`
	Accounting      string            `help:"lrucache accounting." default:"value" enum:"value,entry"`
	Hash            string            `help:"lrucache key hash." default:"murmur2" enum:"murmur2,xxhash,fnv1a"`
	Seed            uint64            `help:"lrucache hash seed, 0 derives it from the clock."`

	Goroutines int `help:"Concurrent workers per backend." default:"100"`
	Keys       int `help:"Distinct keys." default:"1000000"`
	Rounds     int `help:"Rounds per worker." default:"1000"`
	Checks     int `help:"Operations per round: 1 write then reads, the last one verified." default:"100"`

	LogLevel string `help:"Log level." default:"info" enum:"debug,info,warn,error"`
	Metrics  bool   `help:"Print the lrucache metrics after its run."`
}

// fileConfig is the layout of --config.
type fileConfig struct {
	Backends []string          `yaml:"backends"`
	Cache    lrucache.Config   `yaml:"cache"`
	Run      benchmark.Options `yaml:"run"`
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("lrubench"),
		kong.Description("Compare lrucache with other in-process caches under concurrent load."),
		kong.UsageOnError(),
	)
	ctx.FatalIfErrorf(cli.Run(os.Stdout))
}

func (cli *CLI) Run(out io.Writer) error {
	logger := newLogger(cli.LogLevel)

	cfg, err := cli.load()
	if err != nil {
		return err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return err
	}
	if err := cfg.Run.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	results := make([]*benchmark.Result, 0, len(cfg.Backends))
	var stats *lrucache.Stats

	for _, name := range cfg.Backends {
		backend, err := benchmark.New(name, cfg.Cache, logger)
		if err != nil {
			return err
		}

		level.Info(logger).Log("msg", "running backend", "backend", name)
		res, err := benchmark.Run(ctx, backend, cfg.Run, logger)
		if lru, ok := backend.(*benchmark.LRUCache); ok {
			s := lru.Cache.Stats()
			stats = &s
			if cli.Metrics {
				if err := printMetrics(out, lrucache.NewCollector(lru.Cache)); err != nil {
					level.Error(logger).Log("msg", "failed to gather metrics", "err", err)
				}
			}
		}
		if cerr := backend.Close(); cerr != nil {
			level.Warn(logger).Log("msg", "failed to close backend", "backend", name, "err", cerr)
		}
		if err != nil {
			return errors.Wrapf(err, "running %s", name)
		}
		results = append(results, res)
	}

	_, err = io.WriteString(out, render(results, stats)+"\n")
	return err
}

// load merges the flags with --config, the file winning.
func (cli *CLI) load() (fileConfig, error) {
	cache := lrucache.DefaultConfig("lrubench")
	cache.MaxSize = cli.MaxSize
	cache.AverageItemSize = cli.AverageItemSize
	cache.Segments = cli.Segments
	cache.Accounting = cli.Accounting
	cache.Hash = cli.Hash
	cache.Seed = cli.Seed

	cfg := fileConfig{
		Backends: cli.Backends,
		Cache:    cache,
		Run: benchmark.Options{
			Goroutines: cli.Goroutines,
			Keys:       cli.Keys,
			Rounds:     cli.Rounds,
			Checks:     cli.Checks,
		},
	}
	if cli.Config == "" {
		return cfg, nil
	}

	buff, err := os.ReadFile(cli.Config)
	if err != nil {
		return cfg, errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(buff, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config file")
	}
	return cfg, nil
}

func newLogger(lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	return level.NewFilter(logger, opt)
}

func render(results []*benchmark.Result, stats *lrucache.Stats) string {
	x := table.NewWriter()
	x.AppendHeader(table.Row{"backend", "elapsed", "ops", "ops/s", "miss", "write fail", "check fail"})

	for _, r := range results {
		opsPerSec := 0.0
		if secs := r.Elapsed.Seconds(); secs > 0 {
			opsPerSec = float64(r.Ops()) / secs
		}
		x.AppendRows([]table.Row{
			{
				r.Backend,
				r.Elapsed.Round(time.Microsecond),
				humanize.Comma(int64(r.Ops())),
				humanize.Commaf(float64(int64(opsPerSec))),
				fmt.Sprintf("%.2f%%", r.MissRate()),
				fmt.Sprintf("%.2f%%", r.WriteFailRate()),
				r.CheckFail.Load(),
			},
		})
	}

	if stats != nil {
		x.AppendSeparator()
		x.AppendFooter(table.Row{
			"lrucache",
			fmt.Sprintf("%d entries", stats.Entries),
			humanize.IBytes(stats.UsedBytes) + " used",
			humanize.IBytes(stats.Capacity) + " capacity",
			fmt.Sprintf("hit %.2f%%", stats.HitRate()*100),
			fmt.Sprintf("%s evicted", humanize.Comma(stats.Evictions)),
			fmt.Sprintf("%s rejected", humanize.Comma(stats.Rejected)),
		})
	}
	return x.Render()
}

func printMetrics(out io.Writer, collector prometheus.Collector) error {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collector); err != nil {
		return err
	}
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			if _, err := fmt.Fprintf(out, "%s{%s} %g\n", mf.GetName(), strings.Join(labels, ","), metricValue(mf.GetType(), m)); err != nil {
				return err
			}
		}
	}
	return nil
}

func metricValue(typ dto.MetricType, m *dto.Metric) float64 {
	switch typ {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	default:
		return m.GetUntyped().GetValue()
	}
}
