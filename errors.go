package lrucache

import "github.com/pkg/errors"

var (
	ErrMissingCache  = errors.New("cache is nil")
	ErrMissingKey    = errors.New("key is missing or empty")
	ErrMissingValue  = errors.New("value is missing or empty")
	ErrValueTooLarge = errors.New("value is larger than the cache capacity")
	ErrLock          = errors.New("unable to obtain cache lock, the cache has been freed")
	ErrInvalidConfig = errors.New("invalid cache config")
)
