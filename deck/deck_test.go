package deck

import (
	"strings"
	"testing"
)

func TestParseCard(t *testing.T) {
	p := NewParser()
	card, err := p.ParseCard("Ember Fox {2} unit 2/1")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if card.Name != "Ember Fox" || card.Cost != 2 || card.Kind != "unit" {
		t.Fatalf("parsed %q cost %d kind %q", card.Name, card.Cost, card.Kind)
	}
	if card.Power != 2 || card.Health != 1 {
		t.Fatalf("stats %d/%d, want 2/1", card.Power, card.Health)
	}
}

func TestParseCardNoStats(t *testing.T) {
	p := NewParser()
	card, err := p.ParseCard("Spark {1} spell")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if card.Power != 0 || card.Health != 0 {
		t.Fatalf("spell got stats %d/%d", card.Power, card.Health)
	}
}

func TestParseCardBadKind(t *testing.T) {
	p := NewParser()
	if _, err := p.ParseCard("Thing {1} building"); err == nil {
		t.Fatalf("unknown kind accepted")
	}
}

func TestParseDeck(t *testing.T) {
	src := `# starter deck
Ember Fox {2} unit 2/1

Spark {1} spell
Old Lantern {3} item
Deep Well {0} source
`
	p := NewParser()
	cards, err := p.ParseDeck("starter", strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(cards) != 4 {
		t.Fatalf("got %d cards, want 4", len(cards))
	}
	if cards[3].Kind != "source" {
		t.Fatalf("cards[3].Kind = %q", cards[3].Kind)
	}
	for i, c := range cards {
		for j := i + 1; j < len(cards); j++ {
			if c.ID == cards[j].ID {
				t.Fatalf("cards %d and %d share an id", i, j)
			}
		}
	}
}

func TestParseDeckErrorNamesLine(t *testing.T) {
	src := "Ember Fox {2} unit\nbroken line without cost\n"
	p := NewParser()
	if _, err := p.ParseDeck("bad", strings.NewReader(src)); err == nil {
		t.Fatalf("malformed deck accepted")
	} else if !strings.Contains(err.Error(), "bad:2") {
		t.Fatalf("error %q does not name the line", err)
	}
}
