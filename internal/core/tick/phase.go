package tick

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // drain session InQueue packet/line backlog
	PhasePreUpdate               // game-clock advance (the main loop swaps event bus buffers before Tick and dispatches after it)
	PhaseUpdate                  // combat, effects, AI, movement resolution
	PhasePostUpdate              // regen, respawn, weather, XP absorb
	PhaseOutput                  // flush buffered broadcasts to sessions
	PhasePersist                 // batch save dirty entities
	PhaseCleanup                 // flush the ecs destroy queue
)

// System is the interface every tick-driven system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
