package engine

import (
	"fmt"
	"sync/atomic"
)

// Counters is a Metrics implementation backed by atomic counters.
// It is safe to share between concurrently running policies.
type Counters struct {
	hits      atomic.Int64
	faults    atomic.Int64
	evictions atomic.Int64
}

func (c *Counters) Hit()      { c.hits.Add(1) }
func (c *Counters) Fault()    { c.faults.Add(1) }
func (c *Counters) Eviction() { c.evictions.Add(1) }

func (c *Counters) Hits() int64      { return c.hits.Load() }
func (c *Counters) Faults() int64    { return c.faults.Load() }
func (c *Counters) Evictions() int64 { return c.evictions.Load() }

func (c *Counters) String() string {
	return fmt.Sprintf("hits=%d faults=%d evictions=%d", c.Hits(), c.Faults(), c.Evictions())
}
