package system

import (
	"math/rand"
	"time"

	"github.com/chrozal/mudcore/internal/core/tick"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

// weatherFlagBits is the closed set of RoomFlag bits the combat mitigation
// table reads (spec.md section 4.4). Kept in sync with Room.Weather below so
// a room's enum and its flag bits never disagree.
var weatherFlagBits = model.RoomFlagWet | model.RoomFlagStormy | model.RoomFlagFreezing | model.RoomFlagBlazing | model.RoomFlagSandstorm

func weatherFlag(w model.WeatherState) model.RoomFlag {
	switch w {
	case model.WeatherWet:
		return model.RoomFlagWet
	case model.WeatherStormy:
		return model.RoomFlagStormy
	case model.WeatherFreezing:
		return model.RoomFlagFreezing
	case model.WeatherBlazing:
		return model.RoomFlagBlazing
	case model.WeatherSandstorm:
		return model.RoomFlagSandstorm
	default:
		return model.RoomFlagNone
	}
}

// weatherTransitions is a simple Markov table: from each state, the set of
// states it may transition to next, weighted toward staying clear.
var weatherTransitions = map[model.WeatherState][]model.WeatherState{
	model.WeatherClear:     {model.WeatherClear, model.WeatherClear, model.WeatherWet, model.WeatherBlazing},
	model.WeatherWet:       {model.WeatherWet, model.WeatherClear, model.WeatherStormy},
	model.WeatherStormy:    {model.WeatherStormy, model.WeatherWet, model.WeatherClear},
	model.WeatherFreezing:  {model.WeatherFreezing, model.WeatherClear},
	model.WeatherBlazing:   {model.WeatherBlazing, model.WeatherClear, model.WeatherSandstorm},
	model.WeatherSandstorm: {model.WeatherSandstorm, model.WeatherBlazing, model.WeatherClear},
}

// WeatherSystem transitions every outdoors room's weather state on a slow
// cadence (roughly once per in-game hour) using weatherTransitions, and
// keeps the room's RoomFlag bits in lockstep so combat mitigation sees a
// consistent value. Phase 3 (PostUpdate).
type WeatherSystem struct {
	world    *world.World
	interval time.Duration
	elapsed  time.Duration
}

func NewWeatherSystem(w *world.World) *WeatherSystem {
	return &WeatherSystem{world: w, interval: 60 * time.Second}
}

func (s *WeatherSystem) Phase() tick.Phase { return tick.PhasePostUpdate }

func (s *WeatherSystem) Update(dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed = 0

	for _, room := range s.world.AllRooms() {
		if !room.Flags.Has(model.RoomFlagOutdoors) {
			continue
		}
		options := weatherTransitions[room.Weather]
		if len(options) == 0 {
			continue
		}
		next := options[rand.Intn(len(options))]
		if next == room.Weather {
			continue
		}
		room.Weather = next
		room.Flags &^= weatherFlagBits
		room.Flags |= weatherFlag(next)
	}
}
