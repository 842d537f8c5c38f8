package system

import (
	"math"
	"strconv"
	"time"

	"github.com/chrozal/mudcore/internal/config"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/effect"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// levelFloor computes the cumulative xp_total required to reach level,
// following the XP_BASE/XP_EXPONENT curve spec.md section 6 names.
func levelFloor(cfg config.LevelingConfig, level int) int64 {
	if level <= 1 {
		return 0
	}
	return int64(math.Round(cfg.XPBase * math.Pow(float64(level), cfg.XPExponent)))
}

// InstallLevelingCurve wires model.XPLevelFloorFunc to cfg so
// Character.XPLevelFloor resolves without the model package
// depending on internal/config. Called once at boot.
func InstallLevelingCurve(cfg config.LevelingConfig) {
	model.XPLevelFloorFunc = func(level int) int64 { return levelFloor(cfg, level) }
}

// LevelingSystem absorbs XP pool into XP total for characters standing in
// NODE rooms and promotes a character through every level their
// accumulated xp_total now supports (spec.md section 3 NODE flag, section
// 6 leveling curve). Phase 3 (PostUpdate).
type LevelingSystem struct {
	world *world.World
	cfg   config.LevelingConfig
	out   effect.OutputSink
	bus   *event.Bus
}

func NewLevelingSystem(w *world.World, cfg config.LevelingConfig, out effect.OutputSink, bus *event.Bus) *LevelingSystem {
	return &LevelingSystem{world: w, cfg: cfg, out: out, bus: bus}
}

func (s *LevelingSystem) Phase() tick.Phase { return tick.PhasePostUpdate }

func (s *LevelingSystem) Update(_ time.Duration) {
	for _, c := range s.world.AllCharacters() {
		if c.Status == model.StatusDead {
			continue
		}
		room := s.world.Room(c.RoomID)
		if room == nil || !room.Flags.Has(model.RoomFlagNode) || c.XPPool <= 0 {
			continue
		}
		absorbed := s.cfg.NodeAbsorbPerTick
		if absorbed > c.XPPool {
			absorbed = c.XPPool
		}
		c.XPPool -= absorbed
		c.XPTotal += absorbed
		c.Dirty = true
		s.promote(c)
	}
}

func (s *LevelingSystem) promote(c *model.Character) {
	for c.Level < s.cfg.MaxLevel && c.XPTotal >= levelFloor(s.cfg, c.Level+1) {
		c.Level++
		c.UnspentSkillPoints++
		c.UnspentAttrPoints++
		if s.out != nil {
			s.out.Tell(c.ID, "You feel more powerful! You are now level "+strconv.Itoa(c.Level)+".")
		}
		if s.bus != nil {
			event.Emit(s.bus, event.CharacterLeveledUp{CharacterID: c.ID, NewLevel: c.Level})
		}
	}
}
