// Package deck parses card definition files into table cards.
//
// A definition is one line: the card name, its cost in braces, a kind and
// optional power/health stats.
//
//	Ember Fox {2} unit 2/1
//	Spark {1} spell
//
// Decks are definitions separated by newlines; blank lines and lines starting
// with # are skipped.
package deck

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/SvenDH/card-table/table"
)

type stats struct {
	Power  int `parser:"@Int"`
	Health int `parser:"'/' @Int"`
}

type definition struct {
	Name  []string `parser:"@Ident+"`
	Cost  int      `parser:"'{' @Int '}'"`
	Kind  string   `parser:"@('unit' | 'spell' | 'item' | 'source')"`
	Stats *stats   `parser:"@@?"`
}

type Parser struct {
	parser *participle.Parser[definition]
}

func NewParser() *Parser {
	return &Parser{parser: participle.MustBuild[definition](
		participle.Lexer(lexer.MustSimple([]lexer.SimpleRule{
			{Name: "whitespace", Pattern: `[ \t]+`},
			{Name: "Ident", Pattern: `[a-zA-Z]\w*`},
			{Name: "Punct", Pattern: `[{}/]`},
			{Name: "Int", Pattern: `\d+`},
		})),
	)}
}

// ParseCard parses a single definition line into a fresh card.
func (p *Parser) ParseCard(line string) (*table.Card, error) {
	def, err := p.parser.ParseString("", line)
	if err != nil {
		return nil, err
	}
	card := table.NewCard(strings.Join(def.Name, " "))
	card.Cost = def.Cost
	card.Kind = def.Kind
	if def.Stats != nil {
		card.Power = def.Stats.Power
		card.Health = def.Stats.Health
	}
	return card, nil
}

// ParseDeck reads definitions line by line. The name records where the deck
// came from and shows up in error positions.
func (p *Parser) ParseDeck(name string, r io.Reader) ([]*table.Card, error) {
	var cards []*table.Card
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		card, err := p.ParseCard(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", name, lineno, err)
		}
		cards = append(cards, card)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return cards, nil
}

// LoadFile parses the deck file at path.
func (p *Parser) LoadFile(path string) ([]*table.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.ParseDeck(path, f)
}
