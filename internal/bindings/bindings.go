// Package bindings loads externally namespaced identifiers such as
// stage.vft.Score into a root environment before evaluation.
package bindings

import (
	"context"
	"github.com/bsparks/simple-script/internal/object"
	"log/slog"
	"sort"
)

// Source provides a set of named values.
type Source interface {
	Load(ctx context.Context) (map[string]object.Object, error)
}

// Apply binds every value in env. Names are applied in sorted order.
func Apply(env *object.Environment, vals map[string]object.Object) {
	names := make([]string, 0, len(vals))
	for name := range vals {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		env.Set(name, vals[name])
	}
}

// LoadInto loads each source in turn and applies it to env, so a later
// source overrides names set by an earlier one.
func LoadInto(ctx context.Context, env *object.Environment, sources ...Source) error {
	for _, src := range sources {
		vals, err := src.Load(ctx)
		if err != nil {
			return err
		}
		slog.DebugContext(ctx, "bindings loaded",
			slog.Any("source", src),
			slog.Int("count", len(vals)),
		)
		Apply(env, vals)
	}
	return nil
}
