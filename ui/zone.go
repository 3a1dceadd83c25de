package ui

import "github.com/hajimehoshi/ebiten/v2"

// Zone is a screen-space rectangle with input callbacks. Zones are collected
// from the model tree every frame; registration order is draw order, so the
// last zone under the cursor is the topmost one.
type Zone struct {
	X, Y, W, H     int
	MouseX, MouseY int
	Capture        bool
	Draggable      bool
	Droppable      bool
	DragData       interface{}

	Click   func(msg Msg) Cmd
	Enter   func(msg Msg) Cmd
	Leave   func(msg Msg) Cmd
	Moved   func(msg Msg) Cmd
	Release func(msg Msg) Cmd
	Dragged func(msg Msg) Cmd
	Drop    func(msg Msg) Cmd

	hovered bool
}

func (z *Zone) InBounds(x, y int) bool {
	return x >= z.X && x < z.X+z.W && y >= z.Y && y < z.Y+z.H
}

func (z *Zone) Hovered() bool { return z.hovered }

func (z *Zone) SetBounds(x, y, w, h int) {
	z.X, z.Y, z.W, z.H = x, y, w, h
}

// dispatch routes one event to the matching callback.
func (z *Zone) dispatch(m MouseEvent) Cmd {
	// Drop events carry the dragged zone, everything else must be ours.
	if m.Action != MouseDragRelease && m.Zone != nil && m.Zone != z {
		return nil
	}
	switch m.Action {
	case MousePress:
		if z.Click != nil && m.Button == ebiten.MouseButtonLeft {
			return z.Click(m)
		}
	case MouseRelease, MouseDragRelease:
		if z.Release != nil {
			return z.Release(m)
		}
	case MouseEnter:
		if z.Enter != nil {
			return z.Enter(m)
		}
	case MouseLeave:
		if z.Leave != nil {
			return z.Leave(m)
		}
	case MouseDragMotion:
		if z.Dragged != nil {
			return z.Dragged(m)
		}
	case MouseMotion:
		if z.Moved != nil {
			return z.Moved(m)
		}
	}
	return nil
}

// Update lets a zone participate in a model tree: mouse events are routed
// through dispatch, everything else is ignored.
func (z *Zone) Update(msg Msg) Cmd {
	if m, ok := msg.(MouseEvent); ok {
		return z.dispatch(m)
	}
	return nil
}
