package game

import (
	"fmt"
	"strings"

	"github.com/wilenwang/just_play/Klondike/internal/card"
)

// Snapshot 是牌桌在某一时刻的只读副本
type Snapshot struct {
	Stock       []card.Card                `json:"stock"`
	Avail       []card.Card                `json:"avail"`
	Foundations [card.NumSuits][]card.Card `json:"foundations"`
	Piles       [][]card.Card              `json:"piles"`
}

// String 返回文本快照，格式：
//
//	Stock (24 card(s)): [ac, 2c, ...]
//	Face-up (0 card(s)): []
//	C (0 card(s)): []
//	...
//	Pile 0 (1 card(s)): [KH]
func (s Snapshot) String() string {
	lines := make([]string, 0, 2+card.NumSuits+len(s.Piles))
	lines = append(lines,
		fmt.Sprintf("Stock (%d card(s)): %s", len(s.Stock), formatCards(s.Stock)),
		fmt.Sprintf("Face-up (%d card(s)): %s", len(s.Avail), formatCards(s.Avail)),
	)
	for _, suit := range card.Suits() {
		f := s.Foundations[suit]
		lines = append(lines, fmt.Sprintf("%s (%d card(s)): %s", suit, len(f), formatCards(f)))
	}
	for i, p := range s.Piles {
		lines = append(lines, fmt.Sprintf("Pile %d (%d card(s)): %s", i, len(p), formatCards(p)))
	}
	return strings.Join(lines, "\n")
}

func formatCards(cards []card.Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return "[" + strings.Join(names, ", ") + "]"
}
