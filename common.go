package forkjoin

import (
	"fmt"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/exascience/forkjoin/task"
)

// An ExecutionPolicy selects between running the whole domain inline and
// running it as concurrent partitions. The zero value is not a valid
// policy; callers always state one explicitly.
type ExecutionPolicy int

const (
	// Serial runs the whole domain inline on the calling goroutine.
	Serial ExecutionPolicy = iota + 1

	// Parallel partitions the domain and runs each partition as a task.
	Parallel
)

func (p ExecutionPolicy) String() string {
	switch p {
	case Serial:
		return "serial"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("ExecutionPolicy(%d)", int(p))
	}
}

// Valid reports whether p is Serial or Parallel.
func (p ExecutionPolicy) Valid() bool {
	return p == Serial || p == Parallel
}

// ParsePolicy parses "serial" or "parallel", ignoring case.
func ParsePolicy(s string) (ExecutionPolicy, error) {
	switch strings.ToLower(s) {
	case "serial":
		return Serial, nil
	case "parallel":
		return Parallel, nil
	default:
		return 0, fmt.Errorf("invalid execution policy: %q", s)
	}
}

// DefaultWorkers is the worker count used when the worker hint reports 0.
const DefaultWorkers = 8

// WorkerHint returns the platform's preferred concurrency level, or 0 if
// it is unknown.
func WorkerHint() int {
	return runtime.GOMAXPROCS(0)
}

/*
Config carries the settings shared by all entry points. The zero value
is ready to use: it queries WorkerHint, submits to task.Goroutines, and
does not log.

Config is a value type. The With methods return modified copies, so a
Config can be shared between goroutines and specialized per call.
*/
type Config struct {
	workers  int
	hint     func() int
	executor task.Executor
	logger   *zap.Logger
}

// WithWorkers pins the worker count used by Parallel calls. A value of 0
// or less restores the worker hint.
func (c Config) WithWorkers(workers int) Config {
	if workers < 0 {
		workers = 0
	}
	c.workers = workers
	return c
}

// WithHint replaces the worker hint query. A nil hint restores WorkerHint.
func (c Config) WithHint(hint func() int) Config {
	c.hint = hint
	return c
}

// WithExecutor sets the executor that runs the tasks. A nil executor
// restores task.Goroutines.
func (c Config) WithExecutor(exec task.Executor) Config {
	c.executor = exec
	return c
}

// WithLogger sets the logger for debug output. A nil logger disables
// logging.
func (c Config) WithLogger(logger *zap.Logger) Config {
	c.logger = logger
	return c
}

// Workers returns the number of workers a call with the given policy
// uses: 1 for Serial; for Parallel, the pinned worker count, else the
// worker hint, else DefaultWorkers.
//
// Workers panics if policy is not valid.
func (c Config) Workers(policy ExecutionPolicy) int {
	switch policy {
	case Serial:
		return 1
	case Parallel:
		if c.workers > 0 {
			return c.workers
		}
		hint := WorkerHint
		if c.hint != nil {
			hint = c.hint
		}
		if n := hint(); n > 0 {
			return n
		}
		return DefaultWorkers
	default:
		panic(fmt.Sprintf("invalid execution policy: %v", policy))
	}
}

// Executor returns the configured executor.
func (c Config) Executor() task.Executor {
	if c.executor == nil {
		return task.Goroutines
	}
	return c.executor
}

// Logger returns the configured logger, never nil.
func (c Config) Logger() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}
