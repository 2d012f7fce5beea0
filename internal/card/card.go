package card

import (
	"errors"
	"strings"
)

// Suit 表示扑克牌的花色
type Suit int

// 花色顺序固定：相邻花色颜色交替（下标 0、2 为黑，1、3 为红）
const (
	Clubs    Suit = iota // 梅花
	Diamonds             // 方块
	Spades               // 黑桃
	Hearts               // 红心
)

// NumSuits 花色数量
const NumSuits = 4

// 花色字母（用于文本快照）
var suitNames = [NumSuits]string{"C", "D", "S", "H"}

// 花色符号（用于彩色显示）
var suitSymbols = [NumSuits]string{"♣", "♦", "♠", "♥"}

var suitFullNames = [NumSuits]string{"梅花", "方块", "黑桃", "红心"}

// Suits 返回固定顺序的全部花色
func Suits() [NumSuits]Suit {
	return [NumSuits]Suit{Clubs, Diamonds, Spades, Hearts}
}

// String 返回花色的字母表示
func (s Suit) String() string {
	if s >= 0 && int(s) < NumSuits {
		return suitNames[s]
	}
	return "?"
}

// Symbol 返回花色符号
func (s Suit) Symbol() string {
	if s >= 0 && int(s) < NumSuits {
		return suitSymbols[s]
	}
	return "?"
}

// FullName 返回花色的中文全称
func (s Suit) FullName() string {
	if s >= 0 && int(s) < NumSuits {
		return suitFullNames[s]
	}
	return "未知"
}

// Color 由花色在顺序表中的位置决定
func (s Suit) Color() Color {
	if s%2 == 0 {
		return Black
	}
	return Red
}

// Color 表示牌的颜色
type Color int

const (
	Black Color = iota // 黑
	Red                // 红
)

func (c Color) String() string {
	if c == Red {
		return "R"
	}
	return "B"
}

// Rank 表示扑克牌的点数，常量值即点数序号
type Rank int

const (
	Ace   Rank = iota // A
	Two               // 2
	Three             // 3
	Four              // 4
	Five              // 5
	Six               // 6
	Seven             // 7
	Eight             // 8
	Nine              // 9
	Ten               // 10
	Jack              // J
	Queen             // Q
	King              // K
)

// NumRanks 点数数量
const NumRanks = 13

var rankSymbols = [NumRanks]string{
	"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

// String 返回点数的符号表示
func (r Rank) String() string {
	if r >= 0 && int(r) < NumRanks {
		return rankSymbols[r]
	}
	return "?"
}

// Ordinal 返回点数在 A..K 顺序表中的位置
func (r Rank) Ordinal() int {
	return int(r)
}

// Card 表示一张扑克牌
type Card struct {
	Rank   Rank // 点数
	Suit   Suit // 花色
	FaceUp bool // 是否正面朝上
}

// ErrInvalidCard 表示无法解析的牌面文本
var ErrInvalidCard = errors.New("invalid card")

// NewCard 创建一张正面朝下的牌
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// ParseCard 解析 String 的输出，小写表示背面朝上
func ParseCard(s string) (Card, error) {
	if len(s) < 2 {
		return Card{}, ErrInvalidCard
	}
	upper := strings.ToUpper(s)
	faceUp := upper == s

	rankText, suitText := upper[:len(upper)-1], upper[len(upper)-1:]
	c := Card{Rank: -1, Suit: -1, FaceUp: faceUp}
	for i, name := range rankSymbols {
		if name == rankText {
			c.Rank = Rank(i)
		}
	}
	for i, name := range suitNames {
		if name == suitText {
			c.Suit = Suit(i)
		}
	}
	if c.Rank < 0 || c.Suit < 0 {
		return Card{}, ErrInvalidCard
	}
	return c, nil
}

// String 返回牌面文本（如 "10H"），背面朝上时为小写
func (c Card) String() string {
	s := c.Rank.String() + c.Suit.String()
	if c.FaceUp {
		return s
	}
	return strings.ToLower(s)
}

// MarshalText 以牌面文本序列化（JSON 输出用）
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText 解析牌面文本
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Ordinal 返回牌的点数序号
func (c Card) Ordinal() int {
	return c.Rank.Ordinal()
}

// Color 返回牌的颜色
func (c Card) Color() Color {
	return c.Suit.Color()
}

// Equal 只比较点数和花色，不考虑朝向
func (c Card) Equal(other Card) bool {
	return c.Rank == other.Rank && c.Suit == other.Suit
}

// Compare 按点数比较两张牌（忽略花色）
// 返回 1 表示 c > other, -1 表示 c < other, 0 表示相等
func (c Card) Compare(other Card) int {
	if c.Ordinal() != other.Ordinal() {
		if c.Ordinal() > other.Ordinal() {
			return 1
		}
		return -1
	}
	return 0
}

// Less 判断 c 的点数是否小于 other
func (c Card) Less(other Card) bool {
	return c.Compare(other) < 0
}

// Follows 判断 c 能否接在收牌堆顶牌 other 之上（同花色且点数恰好大一）
func (c Card) Follows(other Card) bool {
	if c.Less(other) {
		return false
	}
	if c.Suit != other.Suit {
		return false
	}
	return c.Ordinal() == other.Ordinal()+1
}

// CanStackOn 判断 c 能否叠放在牌列顶牌 other 之上（异色且点数恰好小一）
func (c Card) CanStackOn(other Card) bool {
	if c.Color() == other.Color() {
		return false
	}
	return c.Ordinal()+1 == other.Ordinal()
}
