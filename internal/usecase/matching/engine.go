package matching

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/domain/match"
	dompat "github.com/kailas-cloud/regexboard/internal/domain/pattern"
)

// DefaultTimeout bounds a single pattern's evaluation over the document.
const DefaultTimeout = 250 * time.Millisecond

// Result is the outcome of one recomputation.
type Result struct {
	Matches  []match.Match
	Skipped  int // patterns that no longer parse
	TimedOut int // patterns cut short by the timeout
}

// Engine derives match records from patterns and document text.
// It never mutates its inputs and holds no state between calls.
type Engine struct {
	timeout time.Duration
	logger  *zap.Logger
}

// New creates an engine. A non-positive timeout disables the limit.
func New(timeout time.Duration, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{timeout: timeout, logger: logger}
}

// Recompute returns the full match list for patterns over text. Approval
// flags are carried over from previous for every (pattern ID, text) pair that
// survives; new pairs start unapproved.
func (e *Engine) Recompute(patterns []dompat.Pattern, text string, previous []match.Match) []match.Match {
	return e.Run(patterns, text, previous).Matches
}

// Run is Recompute with evaluation statistics.
func (e *Engine) Run(patterns []dompat.Pattern, text string, previous []match.Match) Result {
	approved := approvalIndex(previous)
	res := Result{Matches: make([]match.Match, 0)}

	for _, p := range patterns {
		found, timedOut, ok := e.evaluate(p, text)
		if !ok {
			res.Skipped++
			continue
		}
		if timedOut {
			res.TimedOut++
		}
		for _, s := range found {
			m := match.New(p, s)
			m.Approved = approved[m.Key()]
			res.Matches = append(res.Matches, m)
		}
	}
	return res
}

// evaluate returns the distinct matched substrings of p over text in
// first-occurrence order. ok is false when the pattern does not parse.
func (e *Engine) evaluate(p dompat.Pattern, text string) (found []string, timedOut, ok bool) {
	d, err := p.Descriptor()
	if err != nil {
		e.logger.Warn("Skipping unparsable pattern",
			zap.String("pattern_id", p.ID()),
			zap.String("regex", p.Regex()),
		)
		return nil, false, false
	}
	re, err := d.Compile(e.timeout)
	if err != nil {
		e.logger.Warn("Skipping uncompilable pattern",
			zap.String("pattern_id", p.ID()),
			zap.String("regex", p.Regex()),
		)
		return nil, false, false
	}

	sticky := d.HasFlag('y')
	next := 0
	seen := make(map[string]bool)
	m, err := re.FindStringMatch(text)
	for ; m != nil && err == nil; m, err = re.FindNextMatch(m) {
		// Sticky matches must each start where the previous one ended.
		if sticky {
			if m.Index != next {
				break
			}
			next = m.Index + max(m.Length, 1)
		}
		s := m.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		found = append(found, s)
	}
	if err != nil {
		e.logger.Warn("Pattern evaluation stopped early",
			zap.String("pattern_id", p.ID()),
			zap.String("regex", p.Regex()),
			zap.Int("matches_kept", len(found)),
			zap.Error(err),
		)
		return found, true, true
	}
	return found, false, true
}

// approvalIndex maps each previous key to its approval flag. The first record
// for a key wins.
func approvalIndex(previous []match.Match) map[match.Key]bool {
	idx := make(map[match.Key]bool, len(previous))
	for _, m := range previous {
		k := m.Key()
		if _, ok := idx[k]; ok {
			continue
		}
		idx[k] = m.Approved
	}
	return idx
}
