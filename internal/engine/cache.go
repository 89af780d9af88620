package engine

import (
	"context"
	"fmt"
	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
	"io"
	"log/slog"
	"strconv"
	"sync"
)

// programCache maps the xxh3 hash of a source to its *entry.
var programCache sync.Map

type entry struct {
	source  string
	once    sync.Once
	program *Program
	err     error
}

// ParseReader reads all of r and compiles it through the cache.
func ParseReader(ctx context.Context, r io.Reader) (*Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	slog.DebugContext(ctx, "read input",
		slog.Int("source_bytes", len(data)),
		slog.Bool("read_ahead", true),
	)

	return compileCached(ctx, string(data))
}

func compileCached(ctx context.Context, src string) (*Program, error) {
	hash := xxh3.HashString(src)

	value, cacheHit := programCache.LoadOrStore(hash, &entry{source: src})
	e := value.(*entry)
	if e.source != src {
		slog.DebugContext(ctx, "cache bypass", slog.String("reason", "hash collision"))
		return compile(src, hash)
	}

	slog.DebugContext(ctx, "cache lookup",
		slog.String("source_hash", strconv.FormatUint(hash, 16)),
		slog.Bool("cache_hit", cacheHit),
	)

	e.once.Do(func() {
		e.program, e.err = compile(src, hash)
		if e.err != nil {
			slog.DebugContext(ctx, "parse failed",
				slog.Int("source_length", len(src)),
				slog.Any("error", e.err),
			)
		}
	})

	if e.err != nil {
		return nil, e.err
	}
	return e.program, nil
}

// CacheSize reports how many sources are cached.
func CacheSize() int {
	n := 0
	programCache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// ClearCache drops every cached program.
func ClearCache() {
	programCache.Range(func(key, _ any) bool {
		programCache.Delete(key)
		return true
	})
}
