package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/chrozal/mudcore/internal/model"
	"github.com/chrozal/mudcore/internal/world"
)

const (
	boardPageSize    = 10
	boardSubjectMax  = 60
	boardBodyMax     = 1000
	defaultBoardName = "general"
)

// handleBoard is the bulletin-board verb: bare "board" lists recent posts,
// "board read <id>" shows one in full, "board post <subject> / <body>"
// writes a new one, "board remove <id>" deletes a post you authored.
func (d *Deps) handleBoard(c *model.Character, w *world.World, args string) bool {
	if d.Boards == nil {
		d.tell(c.ID, "There is no board here.")
		return true
	}

	args = strings.TrimSpace(args)
	sub, rest := splitTellArgs(args)
	switch strings.ToLower(sub) {
	case "", "list":
		d.listBoard(c)
	case "read":
		d.readBoardPost(c, rest)
	case "post", "write":
		d.writeBoardPost(c, rest)
	case "remove", "delete":
		d.removeBoardPost(c, rest)
	default:
		d.tell(c.ID, "Usage: board [list|read <id>|post <subject> / <body>|remove <id>]")
	}
	return true
}

func (d *Deps) listBoard(c *model.Character) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	posts, err := d.Boards.LoadBoard(ctx, defaultBoardName, boardPageSize)
	if err != nil {
		d.Log.Error("load board failed", zap.Error(err))
		d.tell(c.ID, "The board is unreadable right now.")
		return
	}
	if len(posts) == 0 {
		d.tell(c.ID, "The board is empty.")
		return
	}
	d.tell(c.ID, "Recent notices:")
	for _, p := range posts {
		d.tell(c.ID, "  #"+strconv.FormatInt(p.ID, 10)+" "+p.Subject+" — "+p.AuthorName+" ("+p.PostedAt.Format("2006-01-02")+")")
	}
}

func (d *Deps) readBoardPost(c *model.Character, arg string) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		d.tell(c.ID, "Read which post number?")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	posts, err := d.Boards.LoadBoard(ctx, defaultBoardName, 1000)
	if err != nil {
		d.Log.Error("load board failed", zap.Error(err))
		d.tell(c.ID, "The board is unreadable right now.")
		return
	}
	for _, p := range posts {
		if p.ID == id {
			d.tell(c.ID, p.Subject+" — "+p.AuthorName+" ("+p.PostedAt.Format("2006-01-02")+")")
			d.tell(c.ID, p.Body)
			return
		}
	}
	d.tell(c.ID, "No such notice.")
}

func (d *Deps) writeBoardPost(c *model.Character, rest string) {
	subject, body := splitBoardPost(rest)
	if subject == "" || body == "" {
		d.tell(c.ID, "Usage: board post <subject> / <body>")
		return
	}
	if len([]rune(subject)) > boardSubjectMax {
		d.tell(c.ID, "That subject is too long.")
		return
	}
	if len([]rune(body)) > boardBodyMax {
		d.tell(c.ID, "That notice is too long.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := d.Boards.Post(ctx, defaultBoardName, c.ID, subject, body); err != nil {
		d.Log.Error("post board failed", zap.Error(err))
		d.tell(c.ID, "The board won't take your notice right now.")
		return
	}
	d.tell(c.ID, "Your notice has been posted.")
}

func (d *Deps) removeBoardPost(c *model.Character, arg string) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil {
		d.tell(c.ID, "Remove which post number?")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	posts, err := d.Boards.LoadBoard(ctx, defaultBoardName, 1000)
	if err != nil {
		d.Log.Error("load board failed", zap.Error(err))
		d.tell(c.ID, "The board is unreadable right now.")
		return
	}
	var found bool
	for _, p := range posts {
		if p.ID == id {
			found = true
			if p.AuthorID != c.ID {
				d.tell(c.ID, "Only the author can remove that notice.")
				return
			}
			break
		}
	}
	if !found {
		d.tell(c.ID, "No such notice.")
		return
	}
	if err := d.Boards.Remove(ctx, id); err != nil {
		d.Log.Error("remove board post failed", zap.Error(err))
		d.tell(c.ID, "The board won't let go of that notice right now.")
		return
	}
	d.tell(c.ID, "Notice removed.")
}

// splitBoardPost divides "subject / body" on the first slash, the
// convention a bare one-line "board post" command needs to separate the
// two free-text fields.
func splitBoardPost(args string) (subject, body string) {
	idx := strings.IndexByte(args, '/')
	if idx < 0 {
		return strings.TrimSpace(args), ""
	}
	return strings.TrimSpace(args[:idx]), strings.TrimSpace(args[idx+1:])
}
