// Package quality runs data quality rules against a tabular source and
// renders their outcomes as a report.
//
// A Checker owns an append-only log of results. Every rule it is given
// runs, and a rule whose query fails is recorded as a FAIL instead of
// stopping the battery.
package quality

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/salesdq/pkg/core"
)

// Checker executes rules in order and records one result per rule.
// A Checker is not safe for concurrent use.
type Checker struct {
	src     Source
	diag    io.Writer
	logger  *slog.Logger
	results []core.CheckResult
}

// NewChecker creates a checker over src. Each result message is written
// as a line to diag when it is non-nil.
func NewChecker(src Source, diag io.Writer, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{src: src, diag: diag, logger: logger}
}

// Run evaluates one rule, appends its result, and reports whether it passed.
func (c *Checker) Run(ctx context.Context, r Rule) bool {
	res, err := r.Check(ctx, c.src)
	if err != nil {
		res = core.CheckResult{
			CheckName: r.Name(),
			Status:    core.StatusFail,
			Message:   fmt.Sprintf("rule errored: %v", err),
		}
		c.logger.Error("check query failed", slog.String("check", r.Name()), slog.Any("error", err))
	}

	c.results = append(c.results, res)
	c.logger.Debug("check finished",
		slog.String("check", res.CheckName),
		slog.String("status", res.Status.String()))
	if c.diag != nil {
		_, _ = fmt.Fprintln(c.diag, res.Message)
	}
	return res.Status == core.StatusPass
}

// RunAll evaluates every rule in order.
func (c *Checker) RunAll(ctx context.Context, rules []Rule) Summary {
	for _, r := range rules {
		c.Run(ctx, r)
	}
	return c.Summary()
}

// Results returns a copy of the result log in execution order.
func (c *Checker) Results() []core.CheckResult {
	out := make([]core.CheckResult, len(c.results))
	copy(out, c.results)
	return out
}

// Summary folds the result log into status counts.
func (c *Checker) Summary() Summary {
	return Summarize(c.results)
}
