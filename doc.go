// Package lrucache is an in-process cache of opaque byte keys and values
// bounded by a byte budget instead of an entry count.
//
// Entries live in an arena addressed by 32 bit handles. A fixed size hash
// table with chained buckets finds them and an intrusive recency queue
// orders them; inserting past the budget evicts from the least recently
// used end until the new value fits.
//
//	c, err := lrucache.NewCache(64<<20, 1024)
//	if err != nil {
//		return err
//	}
//	defer c.Free()
//
//	_ = c.Set([]byte("key"), []byte("value"))
//	v, ok, err := c.Get([]byte("key"))
//
// Values returned by Get and Peek are owned by the cache and must not be
// modified. Use New with a Config to choose segments, accounting and hash.
package lrucache
