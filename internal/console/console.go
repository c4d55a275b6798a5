package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pixil98/go-questkeep/internal/display"
	"github.com/pixil98/go-questkeep/internal/messaging"
	"github.com/pixil98/go-questkeep/internal/session"
)

var errQuit = errors.New("quit")

// Subscriber delivers published messages for a subject.
type Subscriber interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Console is a line-oriented input layer driving one session.
type Console struct {
	session *session.Session
	sub     Subscriber
}

func NewConsole(s *session.Session, sub Subscriber) *Console {
	return &Console{session: s, sub: sub}
}

// conn is one attached terminal. Writes are serialized so event
// notifications do not interleave with command output.
type conn struct {
	mu sync.Mutex
	w  io.Writer
	br *bufio.Reader
}

func (c *conn) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Write(p)
}

func (c *conn) println(s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(c, display.Wrap(s)+"\n")
	return err
}

// Run reads commands from rw until quit, EOF or cancellation.
func (c *Console) Run(ctx context.Context, rw io.ReadWriter) error {
	cn := &conn{w: rw, br: bufio.NewReader(rw)}

	if c.sub != nil {
		unsub, err := c.sub.Subscribe(messaging.Subject(c.session.ID()), func(data []byte) {
			c.notify(ctx, cn, data)
		})
		if err != nil {
			slog.WarnContext(ctx, "subscribing to session events", "session", c.session.ID(), "error", err)
		} else {
			defer unsub()
		}
	}

	status := c.session.Status()
	if err := cn.println(fmt.Sprintf("Welcome to Questkeep, %s. Type 'help' for commands.", status.Player)); err != nil {
		return err
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := Prompt(cn.br, cn, "> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}

		out, err := c.Execute(ctx, cn, line)
		if errors.Is(err, errQuit) {
			return cn.println(out)
		}
		if err != nil {
			return err
		}
		if err := cn.println(out); err != nil {
			return err
		}
	}
}

// Execute runs one command line and returns its output.
func (c *Console) Execute(ctx context.Context, cn *conn, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := commands[name]
	if !ok {
		if alias, found := aliases[name]; found {
			cmd = commands[alias]
		} else {
			return fmt.Sprintf("Unknown command %q. Type 'help' for commands.", name), nil
		}
	}

	return cmd.run(ctx, c, cn, fields[1:])
}

// notify prints events raised outside the command loop, such as arriving
// on a new map after a door opens.
func (c *Console) notify(ctx context.Context, cn *conn, data []byte) {
	ev, err := messaging.DecodeEvent(data)
	if err != nil {
		slog.WarnContext(ctx, "decoding session event", "error", err)
		return
	}

	var msg string
	switch ev.Name {
	case "map_changed":
		if data, ok := ev.Data.(map[string]any); ok {
			if name, ok := data["map"].(string); ok {
				msg = fmt.Sprintf("You arrive at %s.", display.Title(name))
			}
		}
	case "quest_advanced":
		if data, ok := ev.Data.(map[string]any); ok {
			if quest, ok := data["quest"].(string); ok {
				msg = fmt.Sprintf("Quest updated: %s.", display.Title(quest))
			}
		}
	case "trigger_skeletons":
		msg = "Skeletons burst out of the chest!"
	case "game_autosaved":
		msg = "[autosave] " + ev.Message
	}
	if msg == "" {
		return
	}
	_ = cn.println(msg)
}

// selection prompts for a pending class or strategy choice.
func (c *Console) selection(ctx context.Context, cn *conn, sel *session.Selection) (string, error) {
	prompt := "Choose your class:"
	if sel.Kind == session.SelectionStrategy {
		prompt = "Choose your healing strategy:"
	}

	choice, err := NewSelector(sel.Options).Prompt(cn.br, cn, prompt)
	if errors.Is(err, ErrTooManyTries) {
		c.session.CancelSelection()
		return "You step away.", nil
	}
	if err != nil {
		c.session.CancelSelection()
		return "", err
	}

	return c.session.ConfirmSelection(ctx, choice).Message, nil
}
