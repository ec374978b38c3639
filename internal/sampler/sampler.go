// Package sampler turns a process-table listing into a RankedSnapshot:
// the top processes by CPU usage, highest first.
package sampler

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/vitalis-app/cputray/internal/models"
)

// Lister is the part of the process directory the engine needs.
type Lister interface {
	List(ctx context.Context) ([]models.ProcessSample, error)
}

// Engine samples the process table and ranks the result.
type Engine struct {
	lister Lister
	topN   int
	logger *zap.Logger
}

// NewEngine creates an engine returning at most topN processes. topN is
// clamped into [1, models.MaxRanked]; zero or negative means MaxRanked.
func NewEngine(lister Lister, topN int, logger *zap.Logger) *Engine {
	return &Engine{
		lister: lister,
		topN:   clampTopN(topN),
		logger: logger,
	}
}

// Sample lists all processes and returns the ranked top of the table.
func (e *Engine) Sample(ctx context.Context) (models.RankedSnapshot, error) {
	samples, err := e.lister.List(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := Rank(samples, e.topN)
	e.logger.Debug("Ranked processes",
		zap.Int("listed", len(samples)),
		zap.Int("ranked", len(snapshot)))
	return snapshot, nil
}

// Rank sorts samples by CPU usage descending and keeps the first n.
// Equal usages keep their enumeration order. The input is not modified.
func Rank(samples []models.ProcessSample, n int) models.RankedSnapshot {
	n = clampTopN(n)
	ranked := make(models.RankedSnapshot, len(samples))
	copy(ranked, samples)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CPUUsage > ranked[j].CPUUsage
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func clampTopN(n int) int {
	if n <= 0 || n > models.MaxRanked {
		return models.MaxRanked
	}
	return n
}
