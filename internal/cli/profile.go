package cli

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/pkg/profile"
)

var profileModes = map[string]func(*profile.Profile){
	"block":     profile.BlockProfile,
	"cpu":       profile.CPUProfile,
	"clock":     profile.ClockProfile,
	"goroutine": profile.GoroutineProfile,
	"mem":       profile.MemProfile,
	"allocs":    profile.MemProfileAllocs,
	"heap":      profile.MemProfileHeap,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

func profileModeEnum() string {
	keys := make([]string, 0, len(profileModes))
	for k := range profileModes {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return strings.Join(keys, ",")
}

// startProfile starts pkg/profile in mode, writing under path. An empty or
// unknown mode leaves profiling off. The returned stop is always callable.
func startProfile(ctx context.Context, mode, path string) (stop func()) {
	fn, ok := profileModes[mode]
	if !ok {
		return func() {}
	}

	options := []func(*profile.Profile){fn, profile.Quiet, profile.NoShutdownHook}
	if path != "" {
		options = append(options, profile.ProfilePath(path))
	}

	slog.DebugContext(ctx, "pprof start",
		slog.String("mode", mode),
		slog.String("dir", path),
	)
	profiler := profile.Start(options...)

	return func() {
		slog.DebugContext(ctx, "pprof stop",
			slog.String("mode", mode),
			slog.String("dir", path),
		)
		profiler.Stop()
	}
}
