package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/catalog"
	"github.com/chrozal/mudcore/internal/config"
	"github.com/chrozal/mudcore/internal/core/event"
	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/persist"
	"github.com/chrozal/mudcore/internal/world"
)

// Dispatcher is the seam between a live connection's input line and the
// command-handling layer (internal/dispatch), so this package never imports
// dispatch directly (dispatch imports world/model, not the other way).
type Dispatcher interface {
	Dispatch(c *model.Character, line string) (keepAlive bool)
}

// Deps bundles everything the login/creation/playing state machine needs.
// Built once in cmd/mudcore/main.go and shared by every Conn.
type Deps struct {
	Accounts   *persist.AccountRepo
	Characters *persist.CharacterRepo
	Config     *config.Config
	Catalogs   *catalog.Catalogs
	World      *world.World
	Bus        *event.Bus
	Dispatch   Dispatcher
	Log        *zap.Logger
	Now        func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}
