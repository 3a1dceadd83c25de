// Package screens contains the ebiten screens built on the ui layer.
package screens

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/SvenDH/card-table/table"
	"github.com/SvenDH/card-table/ui"
)

const (
	slotW     = CardW + 16
	slotH     = CardH + 16
	areaW     = 140
	startHand = 5
)

// TableScreen renders one table: a slot row, play and discard areas and the
// hand. It owns the table core and acts as its collaborators, so played and
// discarded cards resolve against the local deck.
type TableScreen struct {
	W, H int

	tbl      *table.Table
	views    map[*table.Card]*CardView
	order    []*CardView
	slots    []*ui.Zone
	play     *ui.Zone
	discard  *ui.Zone
	pile     []*table.Card
	essence  int
	cursor   int
	relayout bool
}

func NewTableScreen(width, height int, cfg table.Config, pile []*table.Card) *TableScreen {
	s := &TableScreen{
		W:       width,
		H:       height,
		tbl:     table.New(cfg),
		views:   map[*table.Card]*CardView{},
		pile:    pile,
		essence: 10,
	}
	s.tbl.SetRules(s)
	s.tbl.SetResources(s)
	s.tbl.SetProcessor(s)
	s.tbl.Resolver.RegisterArea("play", table.AreaPlay)
	s.tbl.Resolver.RegisterArea("discard", table.AreaDiscard)
	// Any structural change re-runs the layout on the next tick.
	s.tbl.Bus.On(table.AllEvents, func(ev *table.Event) { s.relayout = true })
	return s
}

func (s *TableScreen) Init() ui.Cmd {
	slotCount := s.tbl.Slots.Len()
	rowW := slotCount * slotW
	startX := (s.W - rowW) / 2
	for i := 0; i < slotCount; i++ {
		index := i
		zone := &ui.Zone{Droppable: true}
		zone.SetBounds(startX+i*slotW, 40, slotW-8, slotH)
		zone.Drop = func(msg ui.Msg) ui.Cmd {
			s.drop(table.DropTarget{HasSlot: true, Slot: index})
			return nil
		}
		s.slots = append(s.slots, zone)
	}
	s.play = &ui.Zone{Droppable: true}
	s.play.SetBounds(s.W-areaW-16, 40+slotH+24, areaW, CardH)
	s.play.Drop = func(msg ui.Msg) ui.Cmd {
		s.drop(table.DropTarget{AreaTag: "play"})
		return nil
	}
	s.discard = &ui.Zone{Droppable: true}
	s.discard.SetBounds(16, 40+slotH+24, areaW, CardH)
	s.discard.Drop = func(msg ui.Msg) ui.Cmd {
		s.drop(table.DropTarget{AreaTag: "discard"})
		return nil
	}
	for i := 0; i < startHand && len(s.pile) > 0; i++ {
		s.drawFromPile()
	}
	s.layout()
	return nil
}

func (s *TableScreen) drawFromPile() {
	if len(s.pile) == 0 {
		return
	}
	card := s.pile[0]
	s.pile = s.pile[1:]
	view := NewCardView(s, card)
	view.X = s.W - CardW - 16
	view.Y = s.H - CardH - 16
	s.views[card] = view
	s.order = append(s.order, view)
	s.tbl.AddToHand(card, table.InsertRight)
}

func (s *TableScreen) beginDrag(view *CardView) {
	s.tbl.Resolver.BeginDrag(view.Card)
}

// drop feeds one classified target to the resolver. A rejected drop snaps
// the dragged view back; layout handles everything else.
func (s *TableScreen) drop(target table.DropTarget) {
	session := s.tbl.Resolver.Session()
	if session == nil {
		return
	}
	primary := s.views[session.Primary]
	if !s.tbl.Resolver.Drop(target) && primary != nil {
		primary.SnapBack()
	}
	s.relayout = true
}

// endDrag handles a release that no drop zone claimed.
func (s *TableScreen) endDrag(view *CardView) {
	if s.tbl.Resolver.Session() != nil {
		s.drop(table.DropTarget{})
	}
}

func (s *TableScreen) Update(msg ui.Msg) (ui.Model, ui.Cmd) {
	switch m := msg.(type) {
	case ui.Tick:
		for _, v := range s.order {
			v.Update(msg)
		}
		if s.relayout {
			s.relayout = false
			s.layout()
		}
		return s, nil
	case ui.KeyEvent:
		if m.Pressed {
			s.handleKey(m.Key)
		}
		return s, nil
	}
	for _, v := range s.order {
		v.Update(msg)
	}
	return s, nil
}

// handleKey maps keys to table intents: arrows move the cursor, space
// selects, shift+arrows grow and shrink the selection, ctrl+arrows move the
// group, enter arms it, p plays and x discards.
func (s *TableScreen) handleKey(key ebiten.Key) {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	switch key {
	case ebiten.KeyArrowLeft:
		switch {
		case ctrl:
			s.tbl.MoveSelection(table.Left)
		case shift:
			if !s.tbl.Selection.Extend(table.Left) {
				s.tbl.Selection.Contract(table.Right)
			}
		default:
			s.moveCursor(-1)
		}
	case ebiten.KeyArrowRight:
		switch {
		case ctrl:
			s.tbl.MoveSelection(table.Right)
		case shift:
			if !s.tbl.Selection.Extend(table.Right) {
				s.tbl.Selection.Contract(table.Left)
			}
		default:
			s.moveCursor(1)
		}
	case ebiten.KeyHome:
		s.tbl.MoveSelectionToEdge(table.Left)
	case ebiten.KeyEnd:
		s.tbl.MoveSelectionToEdge(table.Right)
	case ebiten.KeySpace:
		if card := s.cursorCard(); card != nil {
			if s.tbl.Selection.IsSelected(card) {
				s.tbl.Selection.Deselect(card)
			} else {
				s.tbl.Selection.Select(card)
			}
		}
	case ebiten.KeyEnter:
		s.tbl.Selection.PromoteSelectionToHighlight()
	case ebiten.KeyBackspace:
		s.tbl.Selection.DemoteHighlightToSelection()
	case ebiten.KeyEscape:
		s.tbl.Selection.Clear()
	case ebiten.KeyP:
		s.tbl.PlayHighlighted()
	case ebiten.KeyX:
		s.tbl.DiscardHighlighted()
	case ebiten.KeyD:
		s.drawFromPile()
	}
}

func (s *TableScreen) moveCursor(delta int) {
	n := s.tbl.Hand.Len()
	if n == 0 {
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	} else if s.cursor >= n {
		s.cursor = n - 1
	}
}

func (s *TableScreen) cursorCard() *table.Card {
	cards := s.tbl.Hand.Cards()
	if s.cursor < 0 || s.cursor >= len(cards) {
		return nil
	}
	return cards[s.cursor]
}

// layout animates every view to its place: slotted cards centered in their
// slot, hand cards in the arc.
func (s *TableScreen) layout() {
	for _, view := range s.order {
		if view.dragging {
			continue
		}
		if slot, ok := view.Card.SlotIndex(); ok && slot < len(s.slots) {
			zone := s.slots[slot]
			view.AnimateTo(zone.X+(zone.W-CardW)/2, zone.Y+(zone.H-CardH)/2)
		}
	}
	s.layoutHand()
	if n := s.tbl.Hand.Len(); n > 0 && s.cursor >= n {
		s.cursor = n - 1
	}
}

// layoutHand positions hand cards with the arc effect: edge cards sit
// slightly higher than the center.
func (s *TableScreen) layoutHand() {
	hand := s.tbl.Hand.Cards()
	if len(hand) == 0 {
		return
	}
	handWidth := s.W - 2*areaW - 64
	maxSpacing := CardW + 12
	spacing := maxSpacing
	if len(hand) > 1 {
		available := (handWidth - CardW) / (len(hand) - 1)
		if available < spacing {
			spacing = available
		}
		if spacing < 12 {
			spacing = 12
		}
	}
	totalWidth := CardW + (len(hand)-1)*spacing
	startX := (s.W - totalWidth) / 2
	baseY := s.H - CardH - 24
	center := float64(len(hand)-1) / 2.0
	for i, card := range hand {
		view := s.views[card]
		if view == nil || view.dragging {
			continue
		}
		normPos := 0.0
		if center > 0 {
			normPos = (float64(i) - center) / (center + 0.5)
		}
		arcOffset := int(normPos * normPos * 12)
		view.AnimateTo(startX+i*spacing, baseY+arcOffset)
	}
}

func (s *TableScreen) Draw(screen *ebiten.Image) {
	ui.FillRect(screen, 0, 0, s.W, s.H, ui.Colors["dark"])
	for i, zone := range s.slots {
		clr := ui.Colors["dark-gray"]
		if !s.tbl.Slots.Enabled(i) {
			clr = ui.Colors["red"]
		}
		ui.StrokeRect(screen, zone.X, zone.Y, zone.W, zone.H, 2, clr)
	}
	ui.StrokeRect(screen, s.play.X, s.play.Y, s.play.W, s.play.H, 2, ui.Colors["green"])
	ui.DrawText(screen, "PLAY", s.play.X+8, s.play.Y+8, ui.Colors["green"])
	ui.StrokeRect(screen, s.discard.X, s.discard.Y, s.discard.W, s.discard.H, 2, ui.Colors["red"])
	ui.DrawText(screen, "DISCARD", s.discard.X+8, s.discard.Y+8, ui.Colors["red"])
	ui.DrawText(screen, fmt.Sprintf("essence: %d  pile: %d", s.essence, len(s.pile)), 16, s.H-20, ui.Colors["light-beige"])

	// Cursor marker under the hand.
	if card := s.cursorCard(); card != nil {
		if view := s.views[card]; view != nil {
			ui.DrawText(screen, "^", view.X+CardW/2-3, s.H-36, ui.Colors["yellow"])
		}
	}

	// Hovered and dragged cards draw last so they sit on top.
	var top *CardView
	for _, view := range s.order {
		if view.hovered || view.dragging {
			top = view
			continue
		}
		view.Draw(screen)
	}
	if top != nil {
		top.Draw(screen)
	}
}

// Zones returns drop targets below card zones, so a card under the cursor
// wins over the slot behind it.
func (s *TableScreen) Zones() []*ui.Zone {
	zones := []*ui.Zone{s.play, s.discard}
	zones = append(zones, s.slots...)
	for _, view := range s.order {
		zones = append(zones, view.zone)
	}
	return zones
}

// Collaborator hooks: the screen is its own rules, pool and processor.

func (s *TableScreen) IsCardPlayable(*table.Card) bool { return true }
func (s *TableScreen) CanPlayCards([]*table.Card) bool { return true }
func (s *TableScreen) CanDiscardCard(*table.Card) bool { return true }

func (s *TableScreen) CanSpend(kind string, n int) bool { return s.essence >= n }
func (s *TableScreen) Spend(kind string, n int)         { s.essence -= n }

func (s *TableScreen) ProcessPlay(cards []*table.Card) {
	for _, c := range cards {
		s.removeView(c)
	}
}

func (s *TableScreen) ProcessDiscard(card *table.Card) {
	s.removeView(card)
}

func (s *TableScreen) DrawReplacement() {
	s.drawFromPile()
}

func (s *TableScreen) removeView(card *table.Card) {
	view := s.views[card]
	delete(s.views, card)
	for i, v := range s.order {
		if v == view {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
