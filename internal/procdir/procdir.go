// Package procdir is a thin query surface over the host process table.
// It enumerates processes with their CPU usage, delivers termination
// signals, and launches applications by name. Uses gopsutil for
// cross-platform process access.
package procdir

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/vitalis-app/cputray/internal/models"
)

// DefaultSettleDelay is the wait between the two CPU-time readings that
// make up one usage measurement.
const DefaultSettleDelay = time.Second

var (
	// ErrNotFound is returned when the target pid or application does not exist.
	ErrNotFound = errors.New("process not found")

	// ErrPermissionDenied is returned when the OS rejects a signal.
	ErrPermissionDenied = errors.New("permission denied")
)

// LaunchError reports an application that could not be started.
type LaunchError struct {
	Name   string
	Reason string
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s failed: %s", e.Name, e.Reason)
}

// Directory is the process table as seen by the rest of the application.
type Directory interface {
	// List returns every readable process with a settled CPU reading.
	List(ctx context.Context) ([]models.ProcessSample, error)

	// Kill signals pid and returns the process name. When force is false the
	// process is asked to terminate, otherwise it is killed outright.
	Kill(ctx context.Context, pid uint32, force bool) (string, error)

	// Launch starts the named application.
	Launch(ctx context.Context, name string) error
}

// System is the Directory backed by the host OS.
//
// Process handles are kept across List calls so names and other static
// attributes are not re-read from the OS every cycle. Each List still pays
// one settle delay to produce a fresh CPU window.
type System struct {
	settle time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	handles map[int32]*handle

	group singleflight.Group
}

// NewSystem creates a System directory. A non-positive settle delay falls
// back to DefaultSettleDelay.
func NewSystem(settle time.Duration, logger *zap.Logger) *System {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &System{
		settle:  settle,
		logger:  logger,
		handles: make(map[int32]*handle),
	}
}

// handle is a cached process together with its start time, which tells a
// reused pid apart from the process that held it before.
type handle struct {
	proc    *process.Process
	created int64
}

// lookup returns the cached handle for pid if it still refers to the same
// process, or opens a new one.
func (s *System) lookup(ctx context.Context, pid int32) (*handle, error) {
	if h, ok := s.handles[pid]; ok {
		created, err := h.proc.CreateTimeWithContext(ctx)
		if err == nil && created == h.created {
			return h, nil
		}
	}
	p, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return nil, err
	}
	created, _ := p.CreateTimeWithContext(ctx)
	return &handle{proc: p, created: created}, nil
}

// List enumerates all processes. Concurrent callers share a single
// enumeration and settle wait.
func (s *System) List(ctx context.Context) ([]models.ProcessSample, error) {
	v, err, _ := s.group.Do("list", func() (interface{}, error) {
		return s.list(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.ProcessSample), nil
}

func (s *System) list(ctx context.Context) ([]models.ProcessSample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pids, err := process.PidsWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("enumerating pids: %w", err)
	}

	live := make(map[int32]*handle, len(pids))
	for _, pid := range pids {
		h, err := s.lookup(ctx, pid)
		if err != nil {
			continue
		}
		// Prime the CPU baseline; the reading itself is discarded.
		if _, err := h.proc.PercentWithContext(ctx, 0); err != nil {
			continue
		}
		live[pid] = h
	}
	s.handles = live

	if err := sleepContext(ctx, s.settle); err != nil {
		return nil, err
	}

	samples := make([]models.ProcessSample, 0, len(pids))
	for _, pid := range pids {
		h, ok := live[pid]
		if !ok {
			continue
		}
		p := h.proc
		cpuPct, err := p.PercentWithContext(ctx, 0)
		if err != nil {
			// Exited during the settle window.
			delete(s.handles, pid)
			continue
		}
		name, _ := p.NameWithContext(ctx)

		sample := models.ProcessSample{
			Name:     name,
			PID:      uint32(pid),
			CPUUsage: cpuPct,
		}
		if mem, err := p.MemoryInfoWithContext(ctx); err == nil && mem != nil {
			rss := mem.RSS
			sample.MemoryUsage = &rss
		}
		samples = append(samples, sample)
	}

	s.logger.Debug("Listed processes",
		zap.Int("count", len(samples)),
		zap.Int("handles", len(s.handles)))
	return samples, nil
}

// Kill signals the process identified by pid.
func (s *System) Kill(ctx context.Context, pid uint32, force bool) (string, error) {
	if pid == 0 || pid > math.MaxInt32 {
		return "", fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}
	exists, err := process.PidExistsWithContext(ctx, int32(pid))
	if err != nil {
		return "", fmt.Errorf("looking up pid %d: %w", pid, err)
	}
	if !exists {
		return "", fmt.Errorf("pid %d: %w", pid, ErrNotFound)
	}

	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		if errors.Is(err, process.ErrorProcessNotRunning) {
			return "", fmt.Errorf("pid %d: %w", pid, ErrNotFound)
		}
		return "", fmt.Errorf("opening pid %d: %w", pid, err)
	}
	name, _ := p.NameWithContext(ctx)

	if force {
		err = p.KillWithContext(ctx)
	} else {
		err = p.TerminateWithContext(ctx)
	}
	if err != nil {
		return name, fmt.Errorf("signalling %s (pid %d): %w", name, pid, classifySignalError(err))
	}

	s.logger.Info("Signalled process",
		zap.String("name", name),
		zap.Uint32("pid", pid),
		zap.Bool("force", force))
	return name, nil
}

// Launch starts the named application using the platform launcher.
func (s *System) Launch(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("empty application name: %w", ErrNotFound)
	}
	if err := launch(ctx, name); err != nil {
		return err
	}
	s.logger.Info("Launched application", zap.String("name", name))
	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
