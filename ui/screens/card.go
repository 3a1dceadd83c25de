package screens

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/SvenDH/card-table/table"
	"github.com/SvenDH/card-table/tween"
	"github.com/SvenDH/card-table/ui"
)

const (
	CardW = 64
	CardH = 88
)

// CardView is the draggable on-screen face of one table card.
type CardView struct {
	Card *table.Card
	X, Y int

	screen                   *TableScreen
	zone                     *ui.Zone
	dragging                 bool
	dragOffsetX, dragOffsetY int
	originalX, originalY     int
	// Animation
	tweenX    *tween.Tween
	tweenY    *tween.Tween
	animating bool
	// Visual state
	hoverOffset int
	hovered     bool
}

func NewCardView(screen *TableScreen, card *table.Card) *CardView {
	c := &CardView{Card: card, screen: screen}
	c.zone = &ui.Zone{
		Draggable: true,
		Droppable: true,
		Capture:   true,
		Enter: func(msg ui.Msg) ui.Cmd {
			if !c.dragging {
				c.hoverOffset = 8
				c.hovered = true
			}
			return nil
		},
		Leave: func(msg ui.Msg) ui.Cmd {
			if !c.dragging {
				c.hoverOffset = 0
				c.hovered = false
			}
			return nil
		},
		Click: func(msg ui.Msg) ui.Cmd {
			event := msg.(ui.MouseEvent)
			c.dragging = true
			c.originalX = c.X
			c.originalY = c.Y
			c.dragOffsetX = event.RelX
			c.dragOffsetY = event.RelY
			c.zone.DragData = c
			c.screen.beginDrag(c)
			return nil
		},
		Dragged: func(msg ui.Msg) ui.Cmd {
			if c.dragging {
				event := msg.(ui.MouseEvent)
				c.X = event.X - c.dragOffsetX
				c.Y = event.Y - c.dragOffsetY
			}
			return nil
		},
		Release: func(msg ui.Msg) ui.Cmd {
			if c.dragging {
				c.dragging = false
				c.zone.DragData = nil
				c.screen.endDrag(c)
			}
			return nil
		},
		// A drop on a card reorders the dragged group next to it.
		Drop: func(msg ui.Msg) ui.Cmd {
			event := msg.(ui.MouseEvent)
			if event.Zone != nil && event.Zone.DragData != nil {
				if dragged, ok := event.Zone.DragData.(*CardView); ok && dragged != c {
					c.screen.drop(table.DropTarget{Card: c.Card})
				}
			}
			return nil
		},
	}
	return c
}

func (c *CardView) Update(msg ui.Msg) {
	if m, ok := msg.(ui.Tick); ok {
		if c.animating && !c.dragging && c.tweenX != nil && c.tweenY != nil {
			xVal, xDone := c.tweenX.Update(m.DeltaTime)
			yVal, yDone := c.tweenY.Update(m.DeltaTime)
			c.X = int(xVal)
			c.Y = int(yVal)
			if xDone && yDone {
				c.animating = false
				c.tweenX = nil
				c.tweenY = nil
			}
		}
	}
	c.zone.Update(msg)
}

// AnimateTo starts a fresh tween toward the target, overriding any animation
// already in flight.
func (c *CardView) AnimateTo(x, y int) {
	duration := float32(0.2)
	c.tweenX = tween.New(float32(c.X), float32(x), duration, tween.InOutQuad)
	c.tweenY = tween.New(float32(c.Y), float32(y), duration, tween.InOutQuad)
	c.animating = true
}

// SnapBack animates to the pre-drag position.
func (c *CardView) SnapBack() {
	c.AnimateTo(c.originalX, c.originalY)
}

func (c *CardView) DrawY() int { return c.Y - c.hoverOffset }

func (c *CardView) Draw(screen *ebiten.Image) {
	x, y := c.X, c.DrawY()
	border := ui.Colors["dark-gray"]
	if c.screen.tbl.Selection.IsSelected(c.Card) {
		border = ui.Colors["yellow"]
	}
	if c.screen.tbl.Selection.IsHighlighted(c.Card) {
		border = ui.Colors["green"]
	}
	ui.FillRect(screen, x, y, CardW, CardH, ui.Colors["dark"])
	ui.StrokeRect(screen, x, y, CardW, CardH, 2, border)
	ui.DrawText(screen, c.Card.Name, x+4, y+4, ui.Colors["light-beige"])
	ui.DrawText(screen, fmt.Sprintf("{%d}", c.Card.Cost), x+4, y+20, ui.Colors["blue"])
	ui.DrawText(screen, c.Card.Kind, x+4, y+36, ui.Colors["dark-gray"])
	if c.Card.Power != 0 || c.Card.Health != 0 {
		stats := fmt.Sprintf("%d/%d", c.Card.Power, c.Card.Health)
		ui.DrawText(screen, stats, x+4, y+CardH-18, ui.Colors["light-beige"])
	}
	c.syncZone()
}

func (c *CardView) syncZone() {
	c.zone.SetBounds(c.X, c.DrawY(), CardW, CardH)
}
