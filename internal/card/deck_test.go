package card

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if deck == nil {
		t.Fatal("NewDeck returned nil")
	}

	if len(deck.cards) != 52 {
		t.Errorf("expected 52 cards, got %d", len(deck.cards))
	}

	seen := make(map[string]bool)
	for _, c := range deck.Cards() {
		if c.FaceUp {
			t.Errorf("card %s should start face-down", c)
		}
		if seen[c.String()] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c.String()] = true
	}
}

func TestNewDeck_Order(t *testing.T) {
	cards := NewDeck().Cards()

	if !cards[0].Equal(NewCard(Ace, Clubs)) {
		t.Errorf("first card = %s, want ac", cards[0])
	}
	if !cards[12].Equal(NewCard(King, Clubs)) {
		t.Errorf("card 12 = %s, want kc", cards[12])
	}
	if !cards[13].Equal(NewCard(Ace, Diamonds)) {
		t.Errorf("card 13 = %s, want ad", cards[13])
	}
	if !cards[51].Equal(NewCard(King, Hearts)) {
		t.Errorf("last card = %s, want kh", cards[51])
	}
}

func TestDeck_Deal(t *testing.T) {
	deck := NewDeck()
	initialRemaining := deck.Remaining()

	c, err := deck.Deal(true)
	if err != nil {
		t.Fatalf("Deal failed: %v", err)
	}

	if deck.Remaining() != initialRemaining-1 {
		t.Errorf("expected %d remaining, got %d", initialRemaining-1, deck.Remaining())
	}
	if !c.Equal(NewCard(King, Hearts)) {
		t.Errorf("expected the last card KH, got %s", c)
	}
	if !c.FaceUp {
		t.Error("dealt card should be face-up")
	}
	if deck.Contains(c) {
		t.Error("dealt card should no longer be in the deck")
	}

	c, _ = deck.Deal(false)
	if c.FaceUp {
		t.Error("dealt card should be face-down")
	}
	if c.String() != "qh" {
		t.Errorf("expected qh, got %s", c)
	}
}

func TestDeck_Empty(t *testing.T) {
	deck := NewDeck()
	for i := 0; i < 52; i++ {
		_, err := deck.Deal(false)
		if err != nil {
			t.Fatalf("Deal %d failed: %v", i+1, err)
		}
	}

	_, err := deck.Deal(false)
	if !errors.Is(err, ErrNoCardsLeft) {
		t.Errorf("expected ErrNoCardsLeft, got %v", err)
	}
}

func TestDeck_Shuffle(t *testing.T) {
	deck1 := NewDeck()
	deck2 := NewDeck()

	deck2.Shuffle()

	if deck1.Remaining() != deck2.Remaining() {
		t.Error("decks have different number of cards after shuffle")
	}
	for _, c := range deck1.Cards() {
		if !deck2.Contains(c) {
			t.Errorf("shuffled deck lost %s", c)
		}
	}
}

func TestDeck_ShuffleWithSeed(t *testing.T) {
	deck1 := NewDeckWithSeed(12345)
	deck2 := NewDeckWithSeed(12345)

	cards1, cards2 := deck1.Cards(), deck2.Cards()
	for i := range cards1 {
		if cards1[i] != cards2[i] {
			t.Fatalf("same seed should produce same shuffle, differ at %d", i)
		}
	}
}

func TestDeck_ShuffleWith(t *testing.T) {
	deck1 := NewDeck()
	deck2 := NewDeck()

	deck1.ShuffleWith(rand.New(rand.NewSource(7)))
	deck2.ShuffleWithSeed(7)

	cards1, cards2 := deck1.Cards(), deck2.Cards()
	for i := range cards1 {
		if cards1[i] != cards2[i] {
			t.Fatalf("ShuffleWith and ShuffleWithSeed disagree at %d", i)
		}
	}
}

func TestNewDeckFromCards(t *testing.T) {
	cards := NewDeck().Cards()
	cards[0], cards[51] = cards[51], cards[0]

	deck, err := NewDeckFromCards(cards)
	if err != nil {
		t.Fatalf("NewDeckFromCards failed: %v", err)
	}
	c, _ := deck.Deal(true)
	if c.String() != "AC" {
		t.Errorf("expected AC dealt first, got %s", c)
	}

	if _, err := NewDeckFromCards(cards[:51]); !errors.Is(err, ErrInvalidDeck) {
		t.Errorf("short deck: expected ErrInvalidDeck, got %v", err)
	}

	dup := NewDeck().Cards()
	dup[1] = dup[0]
	if _, err := NewDeckFromCards(dup); !errors.Is(err, ErrInvalidDeck) {
		t.Errorf("duplicate card: expected ErrInvalidDeck, got %v", err)
	}
}
