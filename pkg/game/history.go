package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/wilenwang/just_play/Klondike/internal/card"
)

// GameHistory 表示一局的历史记录（仅保存在内存中，可编码为 JSON 输出）
type GameHistory struct {
	GameID     string       `json:"game_id"`         // 游戏ID
	Seed       int64        `json:"seed"`            // 洗牌种子
	Timestamp  time.Time    `json:"timestamp"`       // 开始时间
	Moves      []MoveRecord `json:"moves"`           // 出牌和翻牌记录
	Result     Result       `json:"result"`          // 结束方式
	Counters   Counters     `json:"counters"`        // 操作次数
	Foundation int          `json:"foundation"`      // 收牌堆总张数
	Final      *Snapshot    `json:"final,omitempty"` // 最终牌桌
}

// MoveRecord 表示历史记录中的一步
type MoveRecord struct {
	Seq    int        `json:"seq"`              // 序号
	Kind   EventKind  `json:"kind"`             // 类型
	Card   *card.Card `json:"card,omitempty"`   // 移动的牌
	Target *card.Card `json:"target,omitempty"` // 目标牌
	Pile   *int       `json:"pile,omitempty"`   // 目标空牌列
	Drawn  int        `json:"drawn,omitempty"`  // 翻出张数
}

// NewGameHistory 创建历史记录
func NewGameHistory(seed int64) *GameHistory {
	return &GameHistory{
		GameID:    uuid.NewString(),
		Seed:      seed,
		Timestamp: time.Now(),
		Moves:     make([]MoveRecord, 0),
	}
}

// Record 记录一次状态变化
func (h *GameHistory) Record(ev Event) {
	rec := MoveRecord{
		Seq:   ev.Seq,
		Kind:  ev.Kind,
		Drawn: ev.Drawn,
	}
	if ev.Kind.IsMove() {
		c := ev.Card
		rec.Card = &c
	}
	switch ev.Kind {
	case EventOnto:
		target := ev.Target
		rec.Target = &target
	case EventEmptyPile:
		pile := ev.Pile
		rec.Pile = &pile
	}
	h.Moves = append(h.Moves, rec)
}

// Finish 记录结束状态
func (h *GameHistory) Finish(r Result, counters Counters, foundation int) {
	h.Result = r
	h.Counters = counters
	h.Foundation = foundation
}

// SetFinal 保存最终牌桌
func (h *GameHistory) SetFinal(s Snapshot) {
	h.Final = &s
}

// MoveCount 返回出牌步数（不含翻牌）
func (h *GameHistory) MoveCount() int {
	n := 0
	for _, m := range h.Moves {
		if m.Kind.IsMove() {
			n++
		}
	}
	return n
}

// ExportToText 将历史导出为文本格式
func (h *GameHistory) ExportToText() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("=== Game %s ===\n", h.GameID))
	b.WriteString(fmt.Sprintf("Time: %s\n", h.Timestamp.Format("2006-01-02 15:04:05")))
	b.WriteString(fmt.Sprintf("Seed: %d\n\n", h.Seed))

	b.WriteString("Moves:\n")
	for _, m := range h.Moves {
		b.WriteString(fmt.Sprintf("  %4d %s\n", m.Seq, m.describe()))
	}

	b.WriteString(fmt.Sprintf("\nResult: %s (%d moves, %d draws, %d recycles, %d/%d on foundations)\n",
		h.Result, h.Counters.Moves, h.Counters.Draws, h.Counters.Recycles, h.Foundation, card.DeckSize))
	return b.String()
}

func (m MoveRecord) describe() string {
	ev := Event{Kind: m.Kind, Drawn: m.Drawn}
	if m.Pile != nil {
		ev.Pile = *m.Pile
	}
	if m.Card != nil {
		ev.Card = *m.Card
	}
	if m.Target != nil {
		ev.Target = *m.Target
	}
	return ev.Describe()
}
