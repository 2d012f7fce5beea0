package game

import (
	"errors"
	"fmt"

	"github.com/wilenwang/just_play/Klondike/internal/card"
)

// DefaultPiles 标准牌局的牌列数
const DefaultPiles = 7

// Tableau 保存一局 Klondike 的全部状态
// 每张牌以值的形式只存在于一个容器中，移动即从源容器删除再追加到目标容器
type Tableau struct {
	stock      []card.Card                // 牌库（背面朝上）
	avail      []card.Card                // 翻开的废牌堆，顶牌可用
	foundation [card.NumSuits][]card.Card // 按花色的收牌堆
	piles      [][]card.Card              // 牌列
}

// location 标识一个可取顶牌的容器：pile >= 0 为牌列，-1 为废牌堆
type location struct {
	pile int
}

var availLocation = location{pile: -1}

// NewTableau 用给定牌组发牌，numPiles <= 0 时使用 DefaultPiles
func NewTableau(deck *card.Deck, numPiles int) (*Tableau, error) {
	if numPiles <= 0 {
		numPiles = DefaultPiles
	}
	if numPiles*(numPiles+1)/2 > deck.Remaining() {
		return nil, fmt.Errorf("%w: %d piles need %d cards, deck has %d",
			ErrTooManyPiles, numPiles, numPiles*(numPiles+1)/2, deck.Remaining())
	}

	t := &Tableau{
		piles: make([][]card.Card, numPiles),
	}

	// 第 row 行给最后 row 个牌列各发一张，牌列大小依次为 1..numPiles
	for row := numPiles; row > 0; row-- {
		for i := numPiles - row; i < numPiles; i++ {
			c, err := deck.Deal(false)
			if err != nil {
				return nil, fmt.Errorf("deal pile %d: %w", i, err)
			}
			t.piles[i] = append(t.piles[i], c)
		}
	}

	t.stock = make([]card.Card, 0, deck.Remaining())
	for deck.Remaining() > 0 {
		c, _ := deck.Deal(false)
		t.stock = append(t.stock, c)
	}
	// Deal 从末尾取牌，翻转后牌库顶与牌组末尾一致
	for i, j := 0, len(t.stock)-1; i < j; i, j = i+1, j-1 {
		t.stock[i], t.stock[j] = t.stock[j], t.stock[i]
	}

	t.TurnUp()
	return t, nil
}

// Playable 返回当前可打出的牌：各非空牌列顶牌（按序），然后是废牌堆顶牌
func (t *Tableau) Playable() []card.Card {
	out := make([]card.Card, 0, len(t.piles)+1)
	for _, p := range t.piles {
		if len(p) > 0 {
			out = append(out, p[len(p)-1])
		}
	}
	if len(t.avail) > 0 {
		out = append(out, t.avail[len(t.avail)-1])
	}
	return out
}

// TurnUp 把所有可打出的牌翻为正面
func (t *Tableau) TurnUp() {
	if n := len(t.avail); n > 0 {
		t.avail[n-1].FaceUp = true
	}
	for _, p := range t.piles {
		if n := len(p); n > 0 {
			p[n-1].FaceUp = true
		}
	}
}

// DealStock 从牌库翻最多 n 张到废牌堆，返回实际翻出的张数
func (t *Tableau) DealStock(n int) int {
	moved := 0
	for ; moved < n && len(t.stock) > 0; moved++ {
		c := t.stock[len(t.stock)-1]
		t.stock = t.stock[:len(t.stock)-1]
		c.FaceUp = true
		t.avail = append(t.avail, c)
	}
	return moved
}

// ReplaceStock 牌库为空时把废牌堆倒扣回牌库，牌库非空时不做任何事
func (t *Tableau) ReplaceStock() bool {
	if len(t.stock) > 0 {
		return false
	}
	stock := make([]card.Card, 0, len(t.avail))
	for i := len(t.avail) - 1; i >= 0; i-- {
		c := t.avail[i]
		c.FaceUp = false
		stock = append(stock, c)
	}
	t.stock = stock
	t.avail = t.avail[:0]
	return true
}

// MoveToFoundation 把可打出的牌移到对应花色的收牌堆
func (t *Tableau) MoveToFoundation(c card.Card) error {
	from, ok := t.find(c)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotPlayable, c)
	}
	moved := t.take(from)
	t.foundation[moved.Suit] = append(t.foundation[moved.Suit], moved)
	t.TurnUp()
	return nil
}

// MoveOnto 把可打出的牌 c 叠到顶牌为 target 的牌列（或废牌堆）上
// 先确认来源和目标都存在再修改状态；来源与目标不能是同一容器
func (t *Tableau) MoveOnto(c, target card.Card) error {
	from, ok := t.find(c)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotPlayable, c)
	}
	to, ok := t.findExcept(target, from)
	if !ok {
		return fmt.Errorf("%w: %s onto %s", ErrTargetNotFound, c, target)
	}

	moved := t.take(from)
	t.put(to, moved)
	t.TurnUp()
	return nil
}

// MoveToEmptyPile 把可打出的牌移到编号最小的空牌列
func (t *Tableau) MoveToEmptyPile(c card.Card) error {
	empty := t.firstEmptyPile()
	if empty < 0 {
		return ErrNoEmptyPile
	}
	from, ok := t.find(c)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotPlayable, c)
	}

	moved := t.take(from)
	t.piles[empty] = append(t.piles[empty], moved)
	t.TurnUp()
	return nil
}

// ==================== 查询 ====================

// NumPiles 返回牌列数
func (t *Tableau) NumPiles() int {
	return len(t.piles)
}

// Pile 返回第 i 个牌列的副本
func (t *Tableau) Pile(i int) []card.Card {
	return cloneCards(t.piles[i])
}

// Stock 返回牌库的副本
func (t *Tableau) Stock() []card.Card {
	return cloneCards(t.stock)
}

// Avail 返回废牌堆的副本
func (t *Tableau) Avail() []card.Card {
	return cloneCards(t.avail)
}

// Foundation 返回某花色收牌堆的副本
func (t *Tableau) Foundation(s card.Suit) []card.Card {
	return cloneCards(t.foundation[s])
}

// FoundationTop 返回收牌堆顶牌，空时 ok 为 false
func (t *Tableau) FoundationTop(s card.Suit) (card.Card, bool) {
	f := t.foundation[s]
	if len(f) == 0 {
		return card.Card{}, false
	}
	return f[len(f)-1], true
}

// CanMoveToFoundation 判断牌能否接到对应花色的收牌堆上
func (t *Tableau) CanMoveToFoundation(c card.Card) bool {
	if top, ok := t.FoundationTop(c.Suit); ok {
		return c.Follows(top)
	}
	return c.Rank == card.Ace
}

// StockLen 返回牌库张数
func (t *Tableau) StockLen() int {
	return len(t.stock)
}

// HasEmptyPile 判断是否存在空牌列
func (t *Tableau) HasEmptyPile() bool {
	return t.firstEmptyPile() >= 0
}

// FoundationCount 返回已收到收牌堆的总张数
func (t *Tableau) FoundationCount() int {
	n := 0
	for _, f := range t.foundation {
		n += len(f)
	}
	return n
}

// CardCount 返回所有容器中牌的总数，任何时刻都应为 52
func (t *Tableau) CardCount() int {
	n := len(t.stock) + len(t.avail) + t.FoundationCount()
	for _, p := range t.piles {
		n += len(p)
	}
	return n
}

// IsWon 全部牌都已进入收牌堆
func (t *Tableau) IsWon() bool {
	return t.FoundationCount() == card.DeckSize
}

// Snapshot 返回当前状态的副本
func (t *Tableau) Snapshot() Snapshot {
	s := Snapshot{
		Stock: cloneCards(t.stock),
		Avail: cloneCards(t.avail),
		Piles: make([][]card.Card, len(t.piles)),
	}
	for i, f := range t.foundation {
		s.Foundations[i] = cloneCards(f)
	}
	for i, p := range t.piles {
		s.Piles[i] = cloneCards(p)
	}
	return s
}

func (t *Tableau) String() string {
	return t.Snapshot().String()
}

// ==================== 私有方法 ====================

// faceUpBeneath 返回牌列顶牌 c 下面那张正面朝上的牌；c 在废牌堆或下面是背面牌时 ok 为 false
func (t *Tableau) faceUpBeneath(c card.Card) (card.Card, bool) {
	from, ok := t.find(c)
	if !ok || from == availLocation {
		return card.Card{}, false
	}
	p := t.piles[from.pile]
	if len(p) < 2 || !p[len(p)-2].FaceUp {
		return card.Card{}, false
	}
	return p[len(p)-2], true
}

// isAloneInPile 判断牌是否为某牌列中唯一的一张
func (t *Tableau) isAloneInPile(c card.Card) bool {
	from, ok := t.find(c)
	return ok && from != availLocation && len(t.piles[from.pile]) == 1
}

// find 按牌列顺序、再废牌堆查找顶牌为 c 的容器
func (t *Tableau) find(c card.Card) (location, bool) {
	return t.findExcept(c, location{pile: len(t.piles)})
}

// findExcept 同 find，但跳过 skip 指定的容器
func (t *Tableau) findExcept(c card.Card, skip location) (location, bool) {
	for i, p := range t.piles {
		if i == skip.pile {
			continue
		}
		if len(p) > 0 && p[len(p)-1].Equal(c) {
			return location{pile: i}, true
		}
	}
	if skip != availLocation && len(t.avail) > 0 && t.avail[len(t.avail)-1].Equal(c) {
		return availLocation, true
	}
	return location{}, false
}

// take 取出容器的顶牌
func (t *Tableau) take(from location) card.Card {
	if from == availLocation {
		c := t.avail[len(t.avail)-1]
		t.avail = t.avail[:len(t.avail)-1]
		return c
	}
	p := t.piles[from.pile]
	c := p[len(p)-1]
	t.piles[from.pile] = p[:len(p)-1]
	return c
}

// put 把牌放到容器顶部
func (t *Tableau) put(to location, c card.Card) {
	if to == availLocation {
		t.avail = append(t.avail, c)
		return
	}
	t.piles[to.pile] = append(t.piles[to.pile], c)
}

func (t *Tableau) firstEmptyPile() int {
	for i, p := range t.piles {
		if len(p) == 0 {
			return i
		}
	}
	return -1
}

func cloneCards(cards []card.Card) []card.Card {
	out := make([]card.Card, len(cards))
	copy(out, cards)
	return out
}

// ==================== 错误定义 ====================
var (
	ErrCardNotPlayable = errors.New("card is not on top of any pile or the waste")
	ErrTargetNotFound  = errors.New("no other pile has the target card on top")
	ErrNoEmptyPile     = errors.New("no empty pile")
	ErrTooManyPiles    = errors.New("not enough cards for the requested piles")
	ErrUnknownName     = errors.New("unknown name")
)
