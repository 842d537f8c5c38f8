package tick

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Runner executes systems in phase order each tick. A callback that panics
// is recovered, logged, and does not halt the scheduler (spec.md section 5:
// "A callback that raises is logged and does not halt the scheduler").
type Runner struct {
	systems []System
	sorted  bool
	log     *zap.Logger
}

func NewRunner(log *zap.Logger) *Runner {
	return &Runner{systems: make([]System, 0, 16), log: log}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

func (r *Runner) ensureSorted() {
	if r.sorted {
		return
	}
	sort.SliceStable(r.systems, func(i, j int) bool {
		return r.systems[i].Phase() < r.systems[j].Phase()
	})
	r.sorted = true
}

// Tick runs every registered system, in phase order, for this cycle's dt.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		r.runOne(s, dt)
	}
}

// TickPhase runs only the systems registered for a single phase. Used for
// the high-frequency input poll so packet/line latency isn't bound to the
// full tick interval.
func (r *Runner) TickPhase(p Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == p {
			r.runOne(s, dt)
		}
	}
}

func (r *Runner) runOne(s System, dt time.Duration) {
	defer func() {
		if rec := recover(); rec != nil {
			if r.log != nil {
				r.log.Error("tick system panic recovered",
					zap.Any("phase", s.Phase()),
					zap.Any("recover", rec),
				)
			} else {
				fmt.Printf("tick system panic recovered: phase=%v recover=%v\n", s.Phase(), rec)
			}
		}
	}()
	s.Update(dt)
}
