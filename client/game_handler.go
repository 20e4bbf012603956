package client

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/ross1116/pokebattlesim/internal/battle"
)

var clear map[string]func()

func init() {
	clear = make(map[string]func())
	clear["linux"] = func() {
		cmd := exec.Command("clear")
		cmd.Stdout = os.Stdout
		cmd.Run()
	}
	clear["windows"] = func() {
		cmd := exec.Command("cmd", "/c", "cls")
		cmd.Stdout = os.Stdout
		cmd.Run()
	}
	clear["darwin"] = clear["linux"]
}

func CallClear() {
	if value, ok := clear[runtime.GOOS]; ok {
		value()
		return
	}
	fmt.Print(strings.Repeat("\n", 50))
}

var ErrQuit = errors.New("quit")

// ParseCommand turns "move <n>", "switch <n>" or "struggle" into an action. Numbers are
// 1-based as shown on screen.
func ParseCommand(line string) (battle.BattleAction, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return battle.BattleAction{}, fmt.Errorf("empty command")
	}
	switch fields[0] {
	case "quit", "exit", "q":
		return battle.BattleAction{}, ErrQuit
	case "struggle":
		return battle.StruggleAction(""), nil
	case "move", "m", "fight", "switch", "s":
		if len(fields) != 2 {
			return battle.BattleAction{}, fmt.Errorf("usage: %s <number>", fields[0])
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return battle.BattleAction{}, fmt.Errorf("invalid number %q", fields[1])
		}
		if fields[0] == "switch" || fields[0] == "s" {
			return battle.SwitchAction("", n-1), nil
		}
		return battle.MoveAction("", n-1), nil
	}
	return battle.BattleAction{}, fmt.Errorf("unknown command %q", fields[0])
}

// Run reads commands from in and prints server frames until the battle ends, the
// connection drops or the player quits.
func (c *Client) Run(in io.Reader) error {
	lines := make(chan string)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		close(lines)
	}()

	for {
		select {
		case msg, ok := <-c.MessageChan:
			if !ok {
				if c.GameActive {
					return fmt.Errorf("connection closed before the battle ended")
				}
				return nil
			}
			c.ProcessMessage(msg)
			if !c.GameActive {
				return nil
			}
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			action, err := ParseCommand(line)
			if errors.Is(err, ErrQuit) {
				c.Disconnect()
				return nil
			}
			if err != nil {
				fmt.Fprintln(c.Out, err)
				c.prompt()
				continue
			}
			if err := c.SendAction(action); err != nil {
				return err
			}
		}
	}
}

func (c *Client) ProcessMessage(msg Message) {
	switch msg.Type {
	case "log":
		line, _ := msg.Message["line"].(string)
		fmt.Fprintln(c.Out, line)
	case "state":
		c.processState(msg)
	case "error":
		errText, _ := msg.Message["error"].(string)
		fmt.Fprintf(c.Out, "Server rejected the action: %s\n", errText)
		c.prompt()
	case "game_end":
		c.processGameEnd(msg)
	default:
		log.Warn().Str("type", msg.Type).Msg("unknown message type")
	}
}

func (c *Client) processState(msg Message) {
	raw, err := json.Marshal(msg.Message["view"])
	if err != nil {
		log.Warn().Err(err).Msg("invalid state frame")
		return
	}
	var view battle.SideView
	if err := json.Unmarshal(raw, &view); err != nil {
		log.Warn().Err(err).Msg("invalid state frame")
		return
	}
	c.View = view

	if c.Config.ClearScreen {
		CallClear()
	}
	if history, ok := msg.Message["log"].([]interface{}); ok {
		for _, line := range history {
			if s, ok := line.(string); ok {
				fmt.Fprintln(c.Out, s)
			}
		}
	}
	battle.RenderView(c.Out, view)
	if view.Active >= 0 && view.Active < len(view.Team) {
		active := view.Team[view.Active]
		if active.Fainted {
			fmt.Fprintf(c.Out, "\n%s has fainted! Choose a replacement.\n", active.Name)
		} else {
			battle.RenderMoves(c.Out, active)
		}
	}
	c.prompt()
}

func (c *Client) processGameEnd(msg Message) {
	c.Result, _ = msg.Message["result"].(string)
	text, _ := msg.Message["message"].(string)
	fmt.Fprintf(c.Out, "\n=== %s ===\n", text)
	c.GameActive = false
}

func (c *Client) prompt() {
	fmt.Fprint(c.Out, "\nEnter your action (move <number> or switch <number>): ")
}
