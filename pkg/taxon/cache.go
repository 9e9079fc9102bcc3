package taxon

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/gnparser"
	"github.com/gnames/gnuuid"
	gocache "github.com/patrickmn/go-cache"
)

// Cache memoizes a Resolver for the lifetime of a run.
//
// Keys are UUID v5 of the canonical simple form of the query name, so
// spelling variants with different authorship strings share one entry.
// Unresolved names are cached too: a name WoRMS does not know stays
// unknown for the whole run and is not asked again.
type Cache struct {
	resolver Resolver
	parser   gnparser.GNparser
	store    *gocache.Cache
}

// entry is a memoized resolution, negative results included.
type entry struct {
	enr Enrichment
	ok  bool
}

// NewCache wraps a Resolver in a memoization cache.
func NewCache(resolver Resolver) *Cache {
	cfg := gnparser.NewConfig()
	return &Cache{
		resolver: resolver,
		parser:   gnparser.New(cfg),
		store:    gocache.New(gocache.NoExpiration, gocache.NoExpiration),
	}
}

// Resolve implements Resolver with memoization.
func (c *Cache) Resolve(
	ctx context.Context,
	name string,
	aphiaID int,
) (Enrichment, bool) {
	key := c.Key(name, aphiaID)

	if v, found := c.store.Get(key); found {
		e := v.(entry)
		return e.enr, e.ok
	}

	enr, ok := c.resolver.Resolve(ctx, name, aphiaID)

	// Derive the canonical identity here so Resolver implementations
	// stay free of name parsing. Unresolved names keep the identity of
	// the raw query so records retaining their raw name still group.
	base := enr.ScientificName
	if base == "" {
		base = name
	}
	if base != "" {
		enr.Canonical = c.Canonical(base)
		enr.NameKey = gnuuid.New(enr.Canonical).String()
	}

	c.store.Set(key, entry{enr: enr, ok: ok}, gocache.NoExpiration)
	return enr, ok
}

// Key returns the cache key for a query: UUID v5 of the canonical
// simple form of the name, or of the raw name when parsing fails.
// Queries without a name fall back to the AphiaID.
func (c *Cache) Key(name string, aphiaID int) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Sprintf("aphia:%d", aphiaID)
	}
	return gnuuid.New(c.Canonical(name)).String()
}

// Canonical returns the canonical simple form of a name, or the name
// itself when it cannot be parsed.
func (c *Cache) Canonical(name string) string {
	parsed := c.parser.ParseName(name)
	if parsed.Parsed && parsed.Canonical != nil {
		return parsed.Canonical.Simple
	}
	return name
}

// Size returns the number of memoized names.
func (c *Cache) Size() int {
	return c.store.ItemCount()
}

var _ Resolver = (*Cache)(nil)
