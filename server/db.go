package server

import (
	"database/sql"
	"fmt"
)

// Repository stores accounts and saved decks in sqlite.
type Repository struct {
	Db *sql.DB
}

func NewRepository(db *sql.DB) (*Repository, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			password TEXT
		);
		CREATE TABLE IF NOT EXISTS deck (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner INTEGER NOT NULL REFERENCES user(id),
			name TEXT NOT NULL,
			cards TEXT NOT NULL,
			UNIQUE(owner, name)
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("error creating schema: %w", err)
	}
	return &Repository{Db: db}, nil
}

type User struct {
	Id       int64
	Name     string
	Password sql.NullString
}

type Deck struct {
	Id    int64
	Owner int64
	Name  string
	Cards string
}

func (repo *Repository) AddUser(name, passwordHash string) (*User, error) {
	res, err := repo.Db.Exec("INSERT INTO user(name, password) values(?, ?)", name, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	id, _ := res.LastInsertId()
	return &User{Id: id, Name: name}, nil
}

func (repo *Repository) FindUserByName(name string) (*User, error) {
	row := repo.Db.QueryRow("SELECT id, name, password FROM user WHERE name = ? LIMIT 1", name)
	var user User
	if err := row.Scan(&user.Id, &user.Name, &user.Password); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	return &user, nil
}

// SaveDeck stores the raw definition text under (owner, name), replacing any
// previous version.
func (repo *Repository) SaveDeck(owner *User, name, cards string) error {
	_, err := repo.Db.Exec(
		"INSERT INTO deck(owner, name, cards) VALUES(?, ?, ?) ON CONFLICT(owner, name) DO UPDATE SET cards = excluded.cards",
		owner.Id, name, cards)
	if err != nil {
		return fmt.Errorf("error in db execution: %w", err)
	}
	return nil
}

func (repo *Repository) FindDeck(owner *User, name string) (*Deck, error) {
	row := repo.Db.QueryRow("SELECT id, owner, name, cards FROM deck WHERE owner = ? AND name = ? LIMIT 1", owner.Id, name)
	var deck Deck
	if err := row.Scan(&deck.Id, &deck.Owner, &deck.Name, &deck.Cards); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	return &deck, nil
}

func (repo *Repository) ListDecks(owner *User) ([]*Deck, error) {
	rows, err := repo.Db.Query("SELECT id, owner, name, cards FROM deck WHERE owner = ? ORDER BY name", owner.Id)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()
	var decks []*Deck
	for rows.Next() {
		var deck Deck
		if err := rows.Scan(&deck.Id, &deck.Owner, &deck.Name, &deck.Cards); err != nil {
			return nil, fmt.Errorf("error in db execution: %w", err)
		}
		decks = append(decks, &deck)
	}
	return decks, rows.Err()
}
