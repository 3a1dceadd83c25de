// Package cli is a terminal front end for the table: the same intents as the
// graphical screen, driven purely by keyboard.
package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/SvenDH/card-table/table"
)

var (
	cardStyle     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	selectedStyle = cardStyle.BorderForeground(lipgloss.Color("11"))
	armedStyle    = cardStyle.BorderForeground(lipgloss.Color("10"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	slotStyle     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	emptySlot     = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).Faint(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model around one table.
type Model struct {
	tbl     *table.Table
	pile    []*table.Card
	essence int
	cursor  int
	status  string
}

func NewModel(cfg table.Config, pile []*table.Card) *Model {
	m := &Model{
		tbl:     table.New(cfg),
		pile:    pile,
		essence: 10,
	}
	m.tbl.SetRules(m)
	m.tbl.SetResources(m)
	m.tbl.SetProcessor(m)
	m.tbl.Resolver.RegisterArea("play", table.AreaPlay)
	m.tbl.Resolver.RegisterArea("discard", table.AreaDiscard)
	for i := 0; i < 5; i++ {
		m.draw()
	}
	return m
}

func Run(cfg table.Config, pile []*table.Card) error {
	_, err := tea.NewProgram(NewModel(cfg, pile)).Run()
	return err
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	m.status = ""
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left":
		m.moveCursor(-1)
	case "right":
		m.moveCursor(1)
	case "shift+left":
		if !m.tbl.Selection.Extend(table.Left) {
			m.tbl.Selection.Contract(table.Right)
		}
	case "shift+right":
		if !m.tbl.Selection.Extend(table.Right) {
			m.tbl.Selection.Contract(table.Left)
		}
	case "ctrl+left":
		m.report(m.tbl.MoveSelection(table.Left), "cannot move left")
	case "ctrl+right":
		m.report(m.tbl.MoveSelection(table.Right), "cannot move right")
	case "home":
		m.report(m.tbl.MoveSelectionToEdge(table.Left), "cannot move to front")
	case "end":
		m.report(m.tbl.MoveSelectionToEdge(table.Right), "cannot move to back")
	case " ":
		m.toggleSelect()
	case "enter":
		m.tbl.Selection.PromoteSelectionToHighlight()
	case "backspace":
		m.tbl.Selection.DemoteHighlightToSelection()
	case "esc":
		m.tbl.Selection.Clear()
	case "p":
		m.report(m.tbl.PlayHighlighted(), "nothing armed to play")
	case "x":
		m.report(m.tbl.DiscardHighlighted(), "discard rejected")
	case "d":
		m.draw()
	default:
		if len(key.String()) == 1 && key.String()[0] >= '1' && key.String()[0] <= '9' {
			m.placeCursorCard(int(key.String()[0] - '1'))
		}
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) toggleSelect() {
	cards := m.tbl.Hand.Cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return
	}
	card := cards[m.cursor]
	if m.tbl.Selection.IsSelected(card) {
		m.tbl.Selection.Deselect(card)
	} else {
		m.tbl.Selection.Select(card)
	}
}

// placeCursorCard drags the cursor card into the numbered slot.
func (m *Model) placeCursorCard(slot int) {
	cards := m.tbl.Hand.Cards()
	if m.cursor < 0 || m.cursor >= len(cards) {
		return
	}
	if m.tbl.Resolver.BeginDrag(cards[m.cursor]) == nil {
		return
	}
	if !m.tbl.Resolver.Drop(table.DropTarget{HasSlot: true, Slot: slot}) {
		m.status = fmt.Sprintf("slot %d rejected the card", slot+1)
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor < 0 {
		m.cursor = 0
	}
	if n := m.tbl.Hand.Len(); n > 0 && m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *Model) report(ok bool, fail string) {
	if !ok {
		m.status = fail
	}
}

func (m *Model) draw() {
	if len(m.pile) == 0 {
		m.status = "pile is empty"
		return
	}
	card := m.pile[0]
	m.pile = m.pile[1:]
	m.tbl.AddToHand(card, table.InsertRight)
}

func (m *Model) View() string {
	var b strings.Builder

	slots := make([]string, 0, m.tbl.Slots.Len())
	for i := 0; i < m.tbl.Slots.Len(); i++ {
		if card := m.tbl.Slots.Occupant(i); card != nil {
			slots = append(slots, slotStyle.Render(card.Name))
		} else {
			slots = append(slots, emptySlot.Render(fmt.Sprintf("slot %d", i+1)))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, slots...))
	b.WriteString("\n")

	hand := make([]string, 0, m.tbl.Hand.Len())
	for i, card := range m.tbl.Hand.Cards() {
		label := fmt.Sprintf("%s {%d}", card.Name, card.Cost)
		style := cardStyle
		if m.tbl.Selection.IsSelected(card) {
			style = selectedStyle
		}
		if m.tbl.Selection.IsHighlighted(card) {
			style = armedStyle
		}
		rendered := style.Render(label)
		if i == m.cursor {
			rendered = lipgloss.JoinVertical(lipgloss.Center, rendered, cursorStyle.Render("^"))
		}
		hand = append(hand, rendered)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, hand...))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"essence %d | pile %d | space select  shift+arrows resize  ctrl+arrows move  enter arm  p play  x discard  1-9 place  q quit",
		m.essence, len(m.pile))))
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(m.status))
	}
	return b.String()
}

// Collaborator hooks, mirroring the graphical screen.

func (m *Model) IsCardPlayable(*table.Card) bool { return true }
func (m *Model) CanPlayCards([]*table.Card) bool { return true }
func (m *Model) CanDiscardCard(*table.Card) bool { return true }

func (m *Model) CanSpend(kind string, n int) bool { return m.essence >= n }
func (m *Model) Spend(kind string, n int)         { m.essence -= n }

func (m *Model) ProcessPlay([]*table.Card)  {}
func (m *Model) ProcessDiscard(*table.Card) {}
func (m *Model) DrawReplacement()           { m.draw() }
