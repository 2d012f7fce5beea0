package card

import (
	"errors"
	"math/rand"
	"time"
)

// DeckSize 一副牌的张数
const DeckSize = NumSuits * NumRanks

// Deck 表示一副扑克牌，发牌从切片末尾取出
type Deck struct {
	cards []Card // 牌组中的所有牌
}

var (
	// ErrNoCardsLeft 表示牌组已空，无法继续发牌
	ErrNoCardsLeft = errors.New("no cards left in deck")
	// ErrInvalidDeck 表示预设牌组不是完整的52张不重复牌
	ErrInvalidDeck = errors.New("deck must hold 52 distinct cards")
)

// NewDeck 创建一副新的标准52张牌（背面朝上）
// 顺序固定：外层按花色 C、D、S、H，内层按点数 A..K
func NewDeck() *Deck {
	d := &Deck{
		cards: make([]Card, 0, DeckSize),
	}
	for _, suit := range Suits() {
		for rank := Ace; rank <= King; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewDeckWithSeed 创建一副新牌并使用指定种子洗牌
func NewDeckWithSeed(seed int64) *Deck {
	d := NewDeck()
	d.ShuffleWithSeed(seed)
	return d
}

// NewDeckFromCards 使用预先排好的牌创建牌组，最后一张最先发出
func NewDeckFromCards(cards []Card) (*Deck, error) {
	if len(cards) != DeckSize {
		return nil, ErrInvalidDeck
	}
	seen := make(map[Card]bool, DeckSize)
	d := &Deck{cards: make([]Card, 0, DeckSize)}
	for _, c := range cards {
		c.FaceUp = false
		if seen[c] || c.Rank < Ace || c.Rank > King || c.Suit < Clubs || c.Suit > Hearts {
			return nil, ErrInvalidDeck
		}
		seen[c] = true
		d.cards = append(d.cards, c)
	}
	return d, nil
}

// Shuffle 使用当前时间作为种子洗牌
func (d *Deck) Shuffle() {
	d.ShuffleWithSeed(time.Now().UnixNano())
}

// ShuffleWithSeed 使用指定种子洗牌
func (d *Deck) ShuffleWithSeed(seed int64) {
	d.ShuffleWith(rand.New(rand.NewSource(seed)))
}

// ShuffleWith 使用给定的随机数生成器洗牌
func (d *Deck) ShuffleWith(r *rand.Rand) {
	// Fisher-Yates 洗牌算法
	for i := len(d.cards) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal 取出最后一张牌并设置朝向
func (d *Deck) Deal(faceUp bool) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrNoCardsLeft
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	c.FaceUp = faceUp
	return c, nil
}

// Remaining 返回牌组中剩余的牌数
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Contains 判断牌组中是否有这张牌（忽略朝向）
func (d *Deck) Contains(c Card) bool {
	for _, dc := range d.cards {
		if dc.Equal(c) {
			return true
		}
	}
	return false
}

// Cards 返回牌组中剩余牌的副本
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
