package lrucache

import (
	"flag"
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	// AccountValue charges an entry the length of its value.
	AccountValue = "value"
	// AccountEntry charges key length, value length and EntryOverhead.
	AccountEntry = "entry"

	defaultMaxSize         = 64 * humanize.MiByte
	defaultAverageItemSize = humanize.KiByte
)

type Config struct {
	// required: Name of the cache instance, used as the metrics label
	Name string `yaml:"name"`

	// MaxSize is the byte budget shared by all segments.
	// Once it initialized, it cannot be changed.
	MaxSize ByteSize `yaml:"max_size"`

	// AverageItemSize sizes the hash table: MaxSize / AverageItemSize buckets.
	// The table is never resized.
	AverageItemSize ByteSize `yaml:"average_item_size"`

	// Segments splits the cache into independently locked parts, each with
	// MaxSize / Segments bytes and its own recency order. 1 keeps a single
	// lock and exact LRU order.
	Segments int `yaml:"segments"`

	// Accounting is one of AccountValue (default) or AccountEntry.
	Accounting string `yaml:"accounting"`

	// Hash is one of HashMurmur2 (default), HashXXHash or HashFNV1a.
	Hash string `yaml:"hash"`

	// Seed perturbs the hash. 0 derives it from the creation time.
	Seed uint64 `yaml:"seed"`

	// OnEvict is called with the key and value of every entry evicted to
	// make room. It runs under the segment lock and must not use the cache.
	OnEvict func(key, value []byte) `yaml:"-"`
}

func DefaultConfig(name string) Config {
	return Config{
		Name:            name,
		MaxSize:         defaultMaxSize,
		AverageItemSize: defaultAverageItemSize,
		Segments:        1,
		Accounting:      AccountValue,
		Hash:            HashMurmur2,
	}
}

// RegisterFlagsAndApplyDefaults registers the flags.
func (cfg *Config) RegisterFlagsAndApplyDefaults(prefix string, f *flag.FlagSet) {
	cfg.MaxSize = defaultMaxSize
	cfg.AverageItemSize = defaultAverageItemSize

	f.StringVar(&cfg.Name, prefix+"name", "lrucache", "Name of the cache instance.")
	f.Var(&cfg.MaxSize, prefix+"max-size", "Byte budget of the cache, e.g. 64MiB.")
	f.Var(&cfg.AverageItemSize, prefix+"average-item-size", "Expected entry size used to size the hash table.")
	f.IntVar(&cfg.Segments, prefix+"segments", 1, "Number of independently locked segments.")
	f.StringVar(&cfg.Accounting, prefix+"accounting", AccountValue, "Budget accounting: value or entry.")
	f.StringVar(&cfg.Hash, prefix+"hash", HashMurmur2, "Key hash: murmur2, xxhash or fnv1a.")
	f.Uint64Var(&cfg.Seed, prefix+"seed", 0, "Hash seed, 0 derives it from the creation time.")
}

func (cfg *Config) Validate() error {
	var errs error

	if cfg.Name == "" {
		errs = multierr.Append(errs, errors.New("name cannot be empty"))
	}
	if cfg.MaxSize == 0 {
		errs = multierr.Append(errs, errors.New("max_size must be > 0"))
	}
	if cfg.AverageItemSize == 0 {
		errs = multierr.Append(errs, errors.New("average_item_size must be > 0"))
	}
	if cfg.AverageItemSize > math.MaxUint32 {
		errs = multierr.Append(errs, errors.Errorf("average_item_size must be <= %s", humanize.IBytes(math.MaxUint32)))
	}
	if cfg.Segments < 1 {
		errs = multierr.Append(errs, errors.New("segments must be >= 1"))
	} else if uint64(cfg.MaxSize) < uint64(cfg.Segments) {
		errs = multierr.Append(errs, errors.Errorf("max_size %s is too small for %d segments", cfg.MaxSize, cfg.Segments))
	}
	switch cfg.Accounting {
	case AccountValue, AccountEntry, "":
	default:
		errs = multierr.Append(errs, errors.Errorf("unknown accounting %q", cfg.Accounting))
	}
	if _, err := hashFuncFor(cfg.Hash); err != nil {
		errs = multierr.Append(errs, err)
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// ByteSize is a byte count that reads and writes human readable sizes in
// flags and YAML ("64MiB", "512kB", "1024").
type ByteSize uint64

func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

func (b *ByteSize) Set(s string) error {
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return errors.Wrapf(err, "invalid byte size %q", s)
	}
	*b = ByteSize(v)
	return nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}

func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return b.Set(s)
}

func (b ByteSize) MarshalYAML() (interface{}, error) {
	return b.String(), nil
}
