// Package logging is the CLI's thin wrapper over
// github.com/ternarybob/arbor, providing leveled (Debug/Info/Warn/
// Error) structured console output. Grounded on ternarybob-iter's
// internal/logger package: a package-level singleton built with
// arbor.NewLogger().WithConsoleWriter(...).WithLevelFromString(...),
// guarded by a mutex so concurrent callers (the `build` driver's
// worker goroutines) share one logger safely. The compiler package
// itself never imports this package — per SPEC_FULL.md §7, only
// cmd/anchorize logs; pkg/compiler only returns errors/warnings.
package logging

import (
	"sync"

	"github.com/ternarybob/arbor"
	arborcommon "github.com/ternarybob/arbor/common"
	"github.com/ternarybob/arbor/models"
)

var (
	mu     sync.RWMutex
	global arbor.ILogger
)

// Init configures the global logger at the given level ("debug",
// "info", "warn", "error") and stores it as the process-wide
// singleton.
func Init(level string) arbor.ILogger {
	mu.Lock()
	defer mu.Unlock()

	logger := arbor.NewLogger().
		WithConsoleWriter(models.WriterConfiguration{
			Type:       models.LogWriterTypeConsole,
			TimeFormat: "15:04:05.000",
			OutputType: models.OutputFormatLogfmt,
		}).
		WithLevelFromString(level)

	global = logger
	return logger
}

// Get returns the global logger, falling back to an Info-level
// console logger if Init was never called: it checks global once under
// the read lock and otherwise calls Init("info"), so a stray early log
// call never panics on a nil logger.
func Get() arbor.ILogger {
	mu.RLock()
	if global != nil {
		defer mu.RUnlock()
		return global
	}
	mu.RUnlock()
	return Init("info")
}

// Stop flushes any buffered log output before process exit.
func Stop() {
	arborcommon.Stop()
}
