package gateway

import (
	"sync"

	"github.com/sirupsen/logrus"
)

type Capability string

const MediaColumns Capability = "media_columns"

// Capabilities records what the connected schema supports. Flags are
// probed once at startup and only ever turned off afterwards.
type Capabilities struct {
	mu    sync.RWMutex
	flags map[Capability]bool
}

func NewCapabilities(flags map[Capability]bool) *Capabilities {
	c := &Capabilities{flags: make(map[Capability]bool, len(flags))}
	for k, v := range flags {
		c.flags[k] = v
	}
	return c
}

func (c *Capabilities) Has(cap Capability) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.flags[cap]
}

func (c *Capabilities) Disable(cap Capability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flags[cap] = false
}

func (c *Capabilities) Snapshot() map[Capability]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[Capability]bool, len(c.flags))
	for k, v := range c.flags {
		out[k] = v
	}
	return out
}

// ProbeColumns sets cap when every column exists on table.
func (c *Capabilities) ProbeColumns(g *DB, cap Capability, table string, columns ...string) bool {
	ok := true
	for _, col := range columns {
		if !g.HasColumn(table, col) {
			g.log.WithFields(logrus.Fields{"table": table, "column": col}).Warn("column missing, capability disabled")
			ok = false
			break
		}
	}
	c.mu.Lock()
	c.flags[cap] = ok
	c.mu.Unlock()
	return ok
}
