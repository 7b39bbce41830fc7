// Package console is the operator's front panel on a terminal: the mode
// switch on F1-F5, zeroize on F6, the machine-type switch on F8, the
// keyboard, the rotor windows and the printed tape.
package console

import (
	"context"
	"fmt"

	"github.com/ecm-dev/ecm/internal/ecm"
	"github.com/ecm-dev/ecm/internal/tape"
	"github.com/gdamore/tcell/v2"
)

// key is a keyboard event reduced to what the panel reacts to.
type key struct {
	code tcell.Key
	r    rune
}

var modeKeys = map[tcell.Key]ecm.Mode{
	tcell.KeyF1: ecm.ModeOff,
	tcell.KeyF2: ecm.ModePlain,
	tcell.KeyF3: ecm.ModeReset,
	tcell.KeyF4: ecm.ModeEncrypt,
	tcell.KeyF5: ecm.ModeDecrypt,
}

// Console drives one engine from one screen. The screen must already be
// initialized; the caller owns Fini.
type Console struct {
	screen  tcell.Screen
	engine  *ecm.Engine
	printer *tape.Printer
	lastErr string
}

func New(screen tcell.Screen, engine *ecm.Engine) *Console {
	return &Console{
		screen:  screen,
		engine:  engine,
		printer: printerFor(engine.Mode()),
	}
}

// Tape returns what has been printed since the last mode change.
func (c *Console) Tape() string {
	return c.printer.String()
}

// Run handles keys until the operator quits, the screen is finalized or
// ctx is done.
func (c *Console) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := c.screen.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
			if ev == nil {
				return
			}
		}
	}()

	c.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if ev == nil {
				return nil
			}
			if !c.handle(ev) {
				return nil
			}
			c.draw()
		}
	}
}

func (c *Console) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.press(key{code: ev.Key(), r: ev.Rune()})
	case *tcell.EventResize:
		c.screen.Sync()
	}
	return true
}

// press applies one key and reports whether the console keeps running.
func (c *Console) press(k key) bool {
	switch k.code {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyF6:
		c.engine.ZeroizeKey()
		c.lastErr = ""
		return true
	case tcell.KeyF7:
		c.printer.Reset()
		return true
	case tcell.KeyF8:
		c.switchMachine()
		return true
	case tcell.KeyF9:
		c.engine.ClearCount()
		return true
	case tcell.KeyRune:
		c.typeRune(k.r)
		return true
	}

	if mode, ok := modeKeys[k.code]; ok {
		if mode != c.engine.Mode() {
			c.engine.SetMode(mode)
			c.printer = printerFor(mode)
		}
		c.lastErr = ""
	}
	return true
}

// switchMachine turns the machine-type switch to the other position. An
// unsupported machine leaves the switch where it was and shows why.
func (c *Console) switchMachine() {
	next := ecm.CSP2900
	if c.engine.Machine() == ecm.CSP2900 {
		next = ecm.CSP889
	}
	c.lastErr = ""
	if err := c.engine.SetMachine(next); err != nil {
		c.lastErr = err.Error()
	}
}

func (c *Console) typeRune(r rune) {
	c.lastErr = ""
	mode := c.engine.Mode()

	if mode == ecm.ModeReset && r >= '1' && r <= '5' {
		if err := c.engine.AdvanceControl(int(r - '1')); err != nil {
			c.lastErr = err.Error()
		}
		return
	}

	in := r
	dir, cycling := mode.Direction()
	if cycling {
		var ok bool
		in, ok = tape.Prepare(r, dir)
		if !ok {
			return
		}
	}

	out, ok, err := c.engine.Key(in)
	if err != nil {
		c.lastErr = err.Error()
		return
	}
	if !ok {
		return
	}
	if cycling {
		out = tape.Finish(out, dir)
	}
	c.printer.Print(out)
}

func printerFor(mode ecm.Mode) *tape.Printer {
	if mode == ecm.ModeEncrypt {
		return tape.NewPrinter(tape.GroupSize)
	}
	return tape.NewPrinter(0)
}

const help = "F1 off  F2 plain  F3 reset  F4 encrypt  F5 decrypt  F6 zeroize  F7 tear tape  F8 machine  F9 clear count  Esc quit"

var (
	labelStyle = tcell.StyleDefault.Bold(true)
	errorStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

func (c *Console) draw() {
	c.screen.Clear()
	width, height := c.screen.Size()

	pos := c.engine.Positions()
	c.text(0, 0, labelStyle, fmt.Sprintf("ECM %s", c.engine.Machine()))
	c.text(0, 1, labelStyle, fmt.Sprintf("mode %s", c.engine.Mode()))
	c.text(0, 3, tcell.StyleDefault, "cipher  "+pos.Cipher)
	c.text(0, 4, tcell.StyleDefault, "control "+pos.Control)
	c.text(0, 5, tcell.StyleDefault, "index   "+pos.Index)
	c.text(0, 6, tcell.StyleDefault, fmt.Sprintf("count %d  rollover %d", c.engine.Count(), c.engine.Rollover()))

	printed := []rune(c.printer.String())
	if limit := width - len("tape ") - 1; limit > 0 && len(printed) > limit {
		printed = printed[len(printed)-limit:]
	}
	c.text(0, 8, tcell.StyleDefault, "tape "+string(printed))

	if c.lastErr != "" {
		c.text(0, 10, errorStyle, c.lastErr)
	}
	if height > 12 {
		c.text(0, height-1, tcell.StyleDefault, help)
	}
	c.screen.Show()
}

func (c *Console) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		c.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
