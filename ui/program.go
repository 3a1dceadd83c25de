// Package ui is a small Elm-style layer over ebiten: models receive
// messages, return commands and draw themselves, and zones translate raw
// cursor state into enter/leave/click/drag callbacks.
package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type MouseAction int

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMotion
	MouseEnter
	MouseLeave
	MouseDragMotion
	MouseDragRelease
)

type Msg interface{}

// Tick carries the frame delta in seconds.
type Tick struct {
	DeltaTime float32
}

type MouseEvent struct {
	X, Y, RelX, RelY int
	Action           MouseAction
	Button           ebiten.MouseButton
	// Zone is the zone the event belongs to; for drop events it is the
	// dragged zone, so targets can read its DragData.
	Zone *Zone
}

type KeyEvent struct {
	Key     ebiten.Key
	Pressed bool
}

type Cmd func() Msg

// Batch folds several commands into one.
func Batch(cmds ...Cmd) Cmd {
	var live []Cmd
	for _, c := range cmds {
		if c != nil {
			live = append(live, c)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return func() Msg {
		for _, c := range live {
			if msg := c(); msg != nil {
				return msg
			}
		}
		return nil
	}
}

// Based on the bubbletea model, with Draw/Zones instead of a string view.
type Model interface {
	Init() Cmd
	Update(msg Msg) (Model, Cmd)
	Draw(screen *ebiten.Image)
	Zones() []*Zone
}

type Program struct {
	M                      Model
	Width, Height          int
	ShowDebug              bool
	LastMouseX, LastMouseY int

	zones       []*Zone
	dragging    *Zone
	initialized bool
}

func (p *Program) Update() error {
	if !p.initialized {
		p.initialized = true
		if cmd := p.M.Init(); cmd != nil {
			p.runUpdate(cmd())
		}
		p.zones = p.M.Zones()
	}
	mx, my := ebiten.CursorPosition()
	if mx != p.LastMouseX || my != p.LastMouseY {
		p.updateHover(mx, my)
		if p.dragging != nil {
			p.runZone(p.dragging, MouseEvent{X: mx, Y: my, Action: MouseDragMotion, Zone: p.dragging})
		} else {
			p.runUpdate(MouseEvent{X: mx, Y: my, Action: MouseMotion})
		}
		p.LastMouseX = mx
		p.LastMouseY = my
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if target := p.topmost(mx, my, nil); target != nil {
			p.runZone(target, MouseEvent{
				X:      mx,
				Y:      my,
				RelX:   mx - target.X,
				RelY:   my - target.Y,
				Action: MousePress,
				Button: ebiten.MouseButtonLeft,
				Zone:   target,
			})
			if target.Draggable {
				p.dragging = target
			}
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if p.dragging != nil {
			dragged := p.dragging
			p.dragging = nil
			event := MouseEvent{X: mx, Y: my, Action: MouseDragRelease, Zone: dragged}
			if target := p.topmost(mx, my, dragged); target != nil && target.Drop != nil {
				if cmd := target.Drop(event); cmd != nil {
					p.runUpdate(cmd())
				}
			}
			// The dragged zone's Release fires after the target's Drop, so a
			// failed drop can still snap the card back.
			p.runZone(dragged, event)
		} else {
			p.runUpdate(MouseEvent{X: mx, Y: my, Action: MouseRelease, Button: ebiten.MouseButtonLeft})
		}
	}
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		p.runUpdate(KeyEvent{Key: k, Pressed: true})
	}
	for _, k := range inpututil.AppendJustReleasedKeys(nil) {
		p.runUpdate(KeyEvent{Key: k, Pressed: false})
	}
	p.runUpdate(Tick{DeltaTime: float32(1.0 / float64(ebiten.TPS()))})
	return nil
}

// updateHover runs the two-pass hover arbitration: the topmost capturing
// zone under the cursor claims the hover, everything else gets a leave.
func (p *Program) updateHover(mx, my int) {
	top := p.topmost(mx, my, p.dragging)
	for _, z := range p.zones {
		z.MouseX = mx - z.X
		z.MouseY = my - z.Y
		inBounds := z.InBounds(mx, my)
		shouldHover := inBounds && (top == nil || !top.Capture || z == top)
		if shouldHover && !z.hovered {
			z.hovered = true
			p.runZone(z, MouseEvent{X: mx, Y: my, RelX: z.MouseX, RelY: z.MouseY, Action: MouseEnter, Zone: z})
		} else if !shouldHover && z.hovered {
			z.hovered = false
			p.runZone(z, MouseEvent{X: mx, Y: my, RelX: z.MouseX, RelY: z.MouseY, Action: MouseLeave, Zone: z})
		}
	}
}

// runZone delivers one event to a zone's callbacks and feeds any resulting
// command back through the model.
func (p *Program) runZone(z *Zone, m MouseEvent) {
	if cmd := z.dispatch(m); cmd != nil {
		p.runUpdate(cmd())
	}
}

// topmost returns the last registered zone under the point, skipping the
// excluded zone. Later zones draw on top, so they win.
func (p *Program) topmost(x, y int, exclude *Zone) *Zone {
	for i := len(p.zones) - 1; i >= 0; i-- {
		z := p.zones[i]
		if z != exclude && z.InBounds(x, y) {
			return z
		}
	}
	return nil
}

func (p *Program) runUpdate(msg Msg) {
	var cmd Cmd
	for msg != nil {
		p.M, cmd = p.M.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

func (p *Program) Draw(screen *ebiten.Image) {
	p.M.Draw(screen)
	p.zones = p.M.Zones()
	if p.ShowDebug {
		msg := fmt.Sprintf("TPS: %0.2f\nFPS: %0.2f", ebiten.ActualTPS(), ebiten.ActualFPS())
		ebitenutil.DebugPrint(screen, msg)
	}
}

func (p *Program) Layout(outsideW, outsideH int) (int, int) {
	return p.Width, p.Height
}
