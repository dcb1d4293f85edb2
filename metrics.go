package lrucache

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "lrucache"

var (
	descEntries   = newDesc("entries", "Number of live entries.")
	descCapacity  = newDesc("capacity_bytes", "Byte budget of the cache.")
	descUsed      = newDesc("used_bytes", "Bytes charged to live entries.")
	descRecycled  = newDesc("recycled_entries", "Entry records waiting for reuse.")
	descHits      = newDesc("hits_total", "Lookups that found their key.")
	descMisses    = newDesc("misses_total", "Lookups that did not find their key.")
	descWrites    = newDesc("writes_total", "Successful sets.")
	descOverwrite = newDesc("overwrites_total", "Sets that replaced an existing value.")
	descEvictions = newDesc("evictions_total", "Entries evicted to make room.")
	descDeletes   = newDesc("deletes_total", "Entries removed by delete.")
	descRejected  = newDesc("rejected_total", "Sets rejected because the value exceeds the capacity.")
)

func newDesc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, []string{"cache"}, nil)
}

// Collector exports the statistics of one or more caches. Register it with
// a prometheus.Registerer; nothing is served by this package.
type Collector struct {
	caches []*Cache
}

func NewCollector(caches ...*Cache) *Collector {
	return &Collector{caches: caches}
}

func (col *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		descEntries, descCapacity, descUsed, descRecycled, descHits, descMisses,
		descWrites, descOverwrite, descEvictions, descDeletes, descRejected,
	} {
		ch <- d
	}
}

func (col *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, c := range col.caches {
		s := c.Stats()
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, c.Name)
		}
		counter := func(d *prometheus.Desc, v int64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), c.Name)
		}

		gauge(descEntries, float64(s.Entries))
		gauge(descCapacity, float64(s.Capacity))
		gauge(descUsed, float64(s.UsedBytes))
		gauge(descRecycled, float64(s.Recycled))
		counter(descHits, s.Hits)
		counter(descMisses, s.Misses)
		counter(descWrites, s.Writes)
		counter(descOverwrite, s.Overwrites)
		counter(descEvictions, s.Evictions)
		counter(descDeletes, s.Deletes)
		counter(descRejected, s.Rejected)
	}
}
