package game

import (
	"errors"
	"strings"
	"testing"

	"github.com/wilenwang/just_play/Klondike/internal/card"
)

// newOrderedTableau 用未洗的牌组发牌：
//
//	Pile 0: KH
//	Pile 1: QH 6H
//	Pile 2: JH 5H KS
//	Pile 3: 10H 4H QS 8S
//	Pile 4: 9H 3H JS 7S 4S
//	Pile 5: 8H 2H 10S 6S 3S AS
//	Pile 6: 7H AH 9S 5S 2S KD QD
//	Stock:  AC..KC AD..JD（JD 在顶）
func newOrderedTableau(t *testing.T) *Tableau {
	t.Helper()
	tab, err := NewTableau(card.NewDeck(), DefaultPiles)
	if err != nil {
		t.Fatalf("NewTableau failed: %v", err)
	}
	return tab
}

func mustCard(t *testing.T, s string) card.Card {
	t.Helper()
	c, err := card.ParseCard(s)
	if err != nil {
		t.Fatalf("ParseCard(%q): %v", s, err)
	}
	return c
}

func assertInvariants(t *testing.T, tab *Tableau) {
	t.Helper()
	if n := tab.CardCount(); n != card.DeckSize {
		t.Fatalf("card count = %d, want %d", n, card.DeckSize)
	}
	for _, c := range tab.Playable() {
		if !c.FaceUp {
			t.Errorf("playable card %s is face-down", c)
		}
	}
	for _, c := range tab.Stock() {
		if c.FaceUp {
			t.Errorf("stock card %s is face-up", c)
		}
	}
}

// ==================== 发牌测试 ====================

func TestNewTableau_PileSizes(t *testing.T) {
	tab, err := NewTableau(card.NewDeckWithSeed(99), DefaultPiles)
	if err != nil {
		t.Fatalf("NewTableau failed: %v", err)
	}

	for i := 0; i < tab.NumPiles(); i++ {
		pile := tab.Pile(i)
		if len(pile) != i+1 {
			t.Errorf("pile %d has %d cards, want %d", i, len(pile), i+1)
		}
		for j, c := range pile {
			top := j == len(pile)-1
			if c.FaceUp != top {
				t.Errorf("pile %d card %d face-up = %v, want %v", i, j, c.FaceUp, top)
			}
		}
	}

	if tab.StockLen() != 52-28 {
		t.Errorf("expected 24 stock cards, got %d", tab.StockLen())
	}
	if len(tab.Avail()) != 0 {
		t.Errorf("expected empty waste, got %d", len(tab.Avail()))
	}
	assertInvariants(t, tab)
}

func TestNewTableau_DefaultPiles(t *testing.T) {
	tab, err := NewTableau(card.NewDeck(), 0)
	if err != nil {
		t.Fatalf("NewTableau failed: %v", err)
	}
	if tab.NumPiles() != DefaultPiles {
		t.Errorf("expected %d piles, got %d", DefaultPiles, tab.NumPiles())
	}
}

func TestNewTableau_TooManyPiles(t *testing.T) {
	_, err := NewTableau(card.NewDeck(), 10)
	if !errors.Is(err, ErrTooManyPiles) {
		t.Errorf("expected ErrTooManyPiles, got %v", err)
	}
}

func TestNewTableau_OrderedLayout(t *testing.T) {
	tab := newOrderedTableau(t)

	want := []string{
		"Stock (24 card(s)): [ac, 2c, 3c, 4c, 5c, 6c, 7c, 8c, 9c, 10c, jc, qc, kc, ad, 2d, 3d, 4d, 5d, 6d, 7d, 8d, 9d, 10d, jd]",
		"Face-up (0 card(s)): []",
		"C (0 card(s)): []",
		"D (0 card(s)): []",
		"S (0 card(s)): []",
		"H (0 card(s)): []",
		"Pile 0 (1 card(s)): [KH]",
		"Pile 1 (2 card(s)): [qh, 6H]",
		"Pile 2 (3 card(s)): [jh, 5h, KS]",
		"Pile 3 (4 card(s)): [10h, 4h, qs, 8S]",
		"Pile 4 (5 card(s)): [9h, 3h, js, 7s, 4S]",
		"Pile 5 (6 card(s)): [8h, 2h, 10s, 6s, 3s, AS]",
		"Pile 6 (7 card(s)): [7h, ah, 9s, 5s, 2s, kd, QD]",
	}
	got := strings.Split(tab.String(), "\n")
	if len(got) != len(want) {
		t.Fatalf("snapshot has %d lines, want %d:\n%s", len(got), len(want), tab)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d:\n got %q\nwant %q", i, got[i], want[i])
		}
	}
}

// ==================== 查询测试 ====================

func TestPlayable_Order(t *testing.T) {
	tab := newOrderedTableau(t)

	want := []string{"KH", "6H", "KS", "8S", "4S", "AS", "QD"}
	got := tab.Playable()
	if len(got) != len(want) {
		t.Fatalf("expected %d playable cards, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].String() != want[i] {
			t.Errorf("playable[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	tab.DealStock(3)
	got = tab.Playable()
	if last := got[len(got)-1]; last.String() != "9D" {
		t.Errorf("waste top should be last playable card, got %s", last)
	}
}

func TestTurnUp_Idempotent(t *testing.T) {
	tab := newOrderedTableau(t)
	before := tab.String()

	tab.TurnUp()
	tab.TurnUp()

	if tab.String() != before {
		t.Error("TurnUp should not change an already turned-up tableau")
	}
}

// ==================== 牌库测试 ====================

func TestDealStock(t *testing.T) {
	tab := newOrderedTableau(t)

	if n := tab.DealStock(3); n != 3 {
		t.Errorf("expected 3 cards drawn, got %d", n)
	}
	if tab.StockLen() != 21 {
		t.Errorf("expected 21 stock cards, got %d", tab.StockLen())
	}
	if got := formatCards(tab.Avail()); got != "[JD, 10D, 9D]" {
		t.Errorf("waste = %s, want [JD, 10D, 9D]", got)
	}
	assertInvariants(t, tab)
}

func TestDealStock_Partial(t *testing.T) {
	tab := newOrderedTableau(t)
	for i := 0; i < 7; i++ {
		tab.DealStock(3)
	}

	if n := tab.DealStock(5); n != 3 {
		t.Errorf("expected 3 cards drawn from a 3-card stock, got %d", n)
	}
	if n := tab.DealStock(3); n != 0 {
		t.Errorf("expected nothing drawn from an empty stock, got %d", n)
	}
	if len(tab.Avail()) != 24 {
		t.Errorf("expected 24 waste cards, got %d", len(tab.Avail()))
	}
	assertInvariants(t, tab)
}

func TestReplaceStock_NonEmptyIsNoop(t *testing.T) {
	tab := newOrderedTableau(t)
	tab.DealStock(3)
	before := tab.String()

	if tab.ReplaceStock() {
		t.Error("ReplaceStock should report no-op while stock has cards")
	}
	if tab.String() != before {
		t.Error("ReplaceStock changed state with a non-empty stock")
	}
}

func TestReplaceStock_Empty(t *testing.T) {
	tab := newOrderedTableau(t)
	original := tab.Stock()
	for tab.StockLen() > 0 {
		tab.DealStock(3)
	}

	if !tab.ReplaceStock() {
		t.Fatal("ReplaceStock should turn the waste over")
	}
	if len(tab.Avail()) != 0 {
		t.Errorf("waste should be empty, has %d cards", len(tab.Avail()))
	}

	stock := tab.Stock()
	if len(stock) != len(original) {
		t.Fatalf("stock has %d cards, want %d", len(stock), len(original))
	}
	for i := range original {
		if stock[i] != original[i] {
			t.Errorf("stock[%d] = %s, want %s", i, stock[i], original[i])
		}
	}
	assertInvariants(t, tab)
}

// ==================== 移牌测试 ====================

func TestMoveToFoundation(t *testing.T) {
	tab := newOrderedTableau(t)

	if err := tab.MoveToFoundation(mustCard(t, "AS")); err != nil {
		t.Fatalf("MoveToFoundation failed: %v", err)
	}

	if got := formatCards(tab.Foundation(card.Spades)); got != "[AS]" {
		t.Errorf("spade foundation = %s, want [AS]", got)
	}
	pile := tab.Pile(5)
	if top := pile[len(pile)-1]; top.String() != "3S" {
		t.Errorf("pile 5 top = %s, want face-up 3S", top)
	}
	assertInvariants(t, tab)
}

func TestMoveToFoundation_NotPlayable(t *testing.T) {
	tab := newOrderedTableau(t)
	before := tab.String()

	err := tab.MoveToFoundation(mustCard(t, "AH"))
	if !errors.Is(err, ErrCardNotPlayable) {
		t.Errorf("expected ErrCardNotPlayable, got %v", err)
	}
	if tab.String() != before {
		t.Error("failed move changed state")
	}
}

func TestMoveOnto(t *testing.T) {
	tab := newOrderedTableau(t)

	if err := tab.MoveOnto(mustCard(t, "QD"), mustCard(t, "KS")); err != nil {
		t.Fatalf("MoveOnto failed: %v", err)
	}

	if got := formatCards(tab.Pile(2)); got != "[jh, 5h, KS, QD]" {
		t.Errorf("pile 2 = %s", got)
	}
	if got := formatCards(tab.Pile(6)); got != "[7h, ah, 9s, 5s, 2s, KD]" {
		t.Errorf("pile 6 = %s", got)
	}
	assertInvariants(t, tab)
}

func TestMoveOnto_Errors(t *testing.T) {
	tab := newOrderedTableau(t)
	before := tab.String()

	if err := tab.MoveOnto(mustCard(t, "QD"), mustCard(t, "QH")); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("buried target: expected ErrTargetNotFound, got %v", err)
	}
	if err := tab.MoveOnto(mustCard(t, "KH"), mustCard(t, "KH")); !errors.Is(err, ErrTargetNotFound) {
		t.Errorf("same pile: expected ErrTargetNotFound, got %v", err)
	}
	if err := tab.MoveOnto(mustCard(t, "2S"), mustCard(t, "KS")); !errors.Is(err, ErrCardNotPlayable) {
		t.Errorf("buried card: expected ErrCardNotPlayable, got %v", err)
	}
	if tab.String() != before {
		t.Error("failed moves changed state")
	}
}

func TestMoveOnto_Waste(t *testing.T) {
	tab := newOrderedTableau(t)
	tab.DealStock(3)

	if err := tab.MoveOnto(mustCard(t, "8S"), mustCard(t, "9D")); err != nil {
		t.Fatalf("MoveOnto waste failed: %v", err)
	}
	if got := formatCards(tab.Avail()); got != "[JD, 10D, 9D, 8S]" {
		t.Errorf("waste = %s", got)
	}
	assertInvariants(t, tab)
}

func TestMoveToEmptyPile(t *testing.T) {
	tab := newOrderedTableau(t)

	if err := tab.MoveToEmptyPile(mustCard(t, "KS")); !errors.Is(err, ErrNoEmptyPile) {
		t.Fatalf("expected ErrNoEmptyPile, got %v", err)
	}

	// 不校验规则，先把 KH 挪走以空出牌列 0
	if err := tab.MoveOnto(mustCard(t, "KH"), mustCard(t, "QD")); err != nil {
		t.Fatalf("MoveOnto failed: %v", err)
	}
	if !tab.HasEmptyPile() {
		t.Fatal("pile 0 should be empty")
	}

	if err := tab.MoveToEmptyPile(mustCard(t, "KS")); err != nil {
		t.Fatalf("MoveToEmptyPile failed: %v", err)
	}
	if got := formatCards(tab.Pile(0)); got != "[KS]" {
		t.Errorf("pile 0 = %s, want [KS]", got)
	}
	if got := formatCards(tab.Pile(2)); got != "[jh, 5H]" {
		t.Errorf("pile 2 = %s, want [jh, 5H]", got)
	}
	if tab.HasEmptyPile() {
		t.Error("no pile should be empty")
	}
	assertInvariants(t, tab)
}

func TestCanMoveToFoundation(t *testing.T) {
	tab := &Tableau{piles: make([][]card.Card, 2)}
	tab.foundation[card.Spades] = faceUp(t, "AS", "2S")

	tests := []struct {
		name string
		want bool
	}{
		{"AC", true},
		{"2C", false},
		{"3S", true},
		{"4S", false},
		{"AS", false},
	}
	for _, tt := range tests {
		if got := tab.CanMoveToFoundation(mustCard(t, tt.name)); got != tt.want {
			t.Errorf("CanMoveToFoundation(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestFaceUpBeneath(t *testing.T) {
	tab := &Tableau{
		avail: faceUp(t, "9D"),
		piles: [][]card.Card{
			faceUp(t, "6S", "5H"),
			{card.NewCard(card.Two, card.Clubs), mustCard(t, "KH")},
			faceUp(t, "4D"),
		},
	}

	if under, ok := tab.faceUpBeneath(mustCard(t, "5H")); !ok || under.String() != "6S" {
		t.Errorf("expected 6S beneath 5H, got %s (ok=%v)", under, ok)
	}
	for _, name := range []string{"KH", "4D", "9D"} {
		if _, ok := tab.faceUpBeneath(mustCard(t, name)); ok {
			t.Errorf("%s should not rest on a face-up card", name)
		}
	}
}
