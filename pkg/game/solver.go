package game

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/wilenwang/just_play/Klondike/internal/card"
)

// Config 保存求解器配置
type Config struct {
	NumPiles  int // 牌列数
	MaxGoes   int // 无进展时允许重置牌库的次数
	DrawCount int // 每次从牌库翻出的张数
	MaxMoves  int // 移动次数上限（保险）
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		NumPiles:  DefaultPiles,
		MaxGoes:   5,
		DrawCount: 3,
		MaxMoves:  5000,
	}
}

// Result 表示一局的结束方式
type Result int

const (
	ResultNone      Result = iota // 未结束
	ResultWon                     // 全部收完
	ResultGaveUp                  // 多次重置牌库仍无进展
	ResultMoveLimit               // 达到移动次数上限
)

var resultNames = []string{"none", "won", "gave_up", "move_limit"}

var resultMessages = []string{"", "Solved!", "Gave up!", "Move limit reached!"}

// String 返回结果名称
func (r Result) String() string {
	if r >= 0 && int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

// Message 返回结束时打印的提示
func (r Result) Message() string {
	if r >= 0 && int(r) < len(resultMessages) {
		return resultMessages[r]
	}
	return ""
}

// MarshalText 以名称序列化
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText 按名称解析
func (r *Result) UnmarshalText(text []byte) error {
	i, err := lookupName(resultNames, string(text))
	if err != nil {
		return fmt.Errorf("result: %w", err)
	}
	*r = Result(i)
	return nil
}

// EventKind 表示一次状态变化的类型
type EventKind int

const (
	EventDeal       EventKind = iota // 初始发牌
	EventFoundation                  // 移到收牌堆
	EventOnto                        // 叠到另一张牌上
	EventEmptyPile                   // 移到空牌列
	EventDraw                        // 从牌库翻牌
	EventRecycle                     // 废牌堆倒回牌库
)

var eventKindNames = []string{"deal", "foundation", "onto", "empty_pile", "draw", "recycle"}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// MarshalText 以名称序列化
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText 按名称解析
func (k *EventKind) UnmarshalText(text []byte) error {
	i, err := lookupName(eventKindNames, string(text))
	if err != nil {
		return fmt.Errorf("event kind: %w", err)
	}
	*k = EventKind(i)
	return nil
}

func lookupName(names []string, name string) (int, error) {
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownName, name)
}

// IsMove 判断事件是否为一次出牌
func (k EventKind) IsMove() bool {
	return k == EventFoundation || k == EventOnto || k == EventEmptyPile
}

// Event 描述一次状态变化及变化后的快照
type Event struct {
	Seq      int       // 序号，从 0 开始
	Kind     EventKind // 类型
	Card     card.Card // 移动的牌
	Target   card.Card // EventOnto 的目标牌
	Pile     int       // EventEmptyPile 的目标牌列
	Drawn    int       // EventDraw 翻出的张数
	Snapshot Snapshot  // 变化后的牌桌
}

// Describe 返回事件的单行描述
func (e Event) Describe() string {
	switch e.Kind {
	case EventDeal:
		return "Deal"
	case EventFoundation:
		return fmt.Sprintf("%s to foundation", e.Card)
	case EventOnto:
		return fmt.Sprintf("%s onto %s", e.Card, e.Target)
	case EventEmptyPile:
		return fmt.Sprintf("%s to empty pile %d", e.Card, e.Pile)
	case EventDraw:
		return fmt.Sprintf("Draw %d from stock", e.Drawn)
	case EventRecycle:
		return "Turn waste over into stock"
	}
	return e.Kind.String()
}

// Counters 记录一局中的操作次数
type Counters struct {
	Moves    int `json:"moves"`    // 出牌次数
	Draws    int `json:"draws"`    // 翻牌次数
	Recycles int `json:"recycles"` // 重置牌库次数
}

// Solver 按固定优先级贪心地自动玩一局
type Solver struct {
	tableau  *Tableau
	config   *Config
	logger   *zap.Logger
	history  *GameHistory
	counters Counters
	seq      int

	// 状态变化回调（同步调用）
	onSnapshot func(ev Event)
}

// NewSolver 创建求解器，config 为 nil 时使用默认配置；传入的配置会被复制
func NewSolver(t *Tableau, config *Config, logger *zap.Logger) *Solver {
	if config == nil {
		config = DefaultConfig()
	} else {
		cfg := *config
		config = &cfg
	}
	if config.DrawCount <= 0 {
		config.DrawCount = 3
	}
	if config.MaxMoves <= 0 {
		config.MaxMoves = DefaultConfig().MaxMoves
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		tableau: t,
		config:  config,
		logger:  logger,
	}
}

// SetOnSnapshot 设置状态变化回调函数
func (s *Solver) SetOnSnapshot(fn func(ev Event)) {
	s.onSnapshot = fn
}

// RecordTo 把每次出牌记入 h
func (s *Solver) RecordTo(h *GameHistory) {
	s.history = h
}

// Counters 返回已执行的操作次数
func (s *Solver) Counters() Counters {
	return s.counters
}

// Solve 运行到赢、放弃或达到移动上限为止
// 每一轮只找第一步可行的出牌，出牌后从头重新扫描
func (s *Solver) Solve(ctx context.Context) (Result, error) {
	goesSinceMoving := 0
	t := s.tableau

	for {
		if err := ctx.Err(); err != nil {
			return ResultNone, err
		}
		if t.IsWon() {
			return s.finish(ResultWon), nil
		}
		if s.counters.Moves >= s.config.MaxMoves {
			return s.finish(ResultMoveLimit), nil
		}

		ev, moved, err := s.tryMove()
		if err != nil {
			return ResultNone, err
		}
		if moved {
			goesSinceMoving = 0
			s.counters.Moves++
			s.emit(ev)
			continue
		}

		switch {
		case t.StockLen() > 0:
			n := t.DealStock(s.config.DrawCount)
			s.counters.Draws++
			s.emit(Event{Kind: EventDraw, Drawn: n})
		case goesSinceMoving <= s.config.MaxGoes:
			t.ReplaceStock()
			goesSinceMoving++
			s.counters.Recycles++
			s.emit(Event{Kind: EventRecycle})
		default:
			return s.finish(ResultGaveUp), nil
		}
	}
}

// tryMove 按优先级扫描可打出的牌，执行第一步合法的出牌
func (s *Solver) tryMove() (Event, bool, error) {
	t := s.tableau

	for _, c := range t.Playable() {
		// 1、2：收牌堆
		if t.CanMoveToFoundation(c) {
			return s.apply(Event{Kind: EventFoundation, Card: c}, t.MoveToFoundation(c))
		}

		// 3：K 移到空牌列，已独占一列的 K 不动
		if c.Rank == card.King && t.HasEmptyPile() && !t.isAloneInPile(c) {
			ev := Event{Kind: EventEmptyPile, Card: c, Pile: t.firstEmptyPile()}
			return s.apply(ev, t.MoveToEmptyPile(c))
		}

		// 4：叠到其他牌列顶牌上
		// 已叠在正面牌上的牌只在挪开后下面那张能进收牌堆时才横向挪动，
		// 且不能压住一张可进收牌堆的牌，否则两列之间会来回挪
		sideways := false
		if under, ok := t.faceUpBeneath(c); ok {
			if !t.CanMoveToFoundation(under) {
				continue
			}
			sideways = true
		}
		for _, p := range t.piles {
			if len(p) == 0 {
				continue
			}
			target := p[len(p)-1]
			if !c.CanStackOn(target) {
				continue
			}
			if sideways && t.CanMoveToFoundation(target) {
				continue
			}
			return s.apply(Event{Kind: EventOnto, Card: c, Target: target}, t.MoveOnto(c, target))
		}
	}
	return Event{}, false, nil
}

func (s *Solver) apply(ev Event, err error) (Event, bool, error) {
	if err != nil {
		return Event{}, false, fmt.Errorf("%s: %w", ev.Kind, err)
	}
	ev.Card.FaceUp = true
	ev.Target.FaceUp = true
	return ev, true, nil
}

// EmitInitial 发出初始发牌后的快照
func (s *Solver) EmitInitial() {
	s.emit(Event{Kind: EventDeal})
}

// emit 补全序号和快照，记录并通知
func (s *Solver) emit(ev Event) {
	ev.Seq = s.seq
	s.seq++
	ev.Snapshot = s.tableau.Snapshot()

	if ev.Kind.IsMove() {
		s.logger.Debug("move",
			zap.Int("seq", ev.Seq),
			zap.Stringer("kind", ev.Kind),
			zap.Stringer("card", ev.Card),
			zap.Int("foundation", s.tableau.FoundationCount()),
		)
	} else {
		s.logger.Debug("stock",
			zap.Int("seq", ev.Seq),
			zap.Stringer("kind", ev.Kind),
			zap.Int("stock", s.tableau.StockLen()),
		)
	}

	if s.history != nil {
		s.history.Record(ev)
	}
	if s.onSnapshot != nil {
		s.onSnapshot(ev)
	}
}

func (s *Solver) finish(r Result) Result {
	s.logger.Info("game finished",
		zap.Stringer("result", r),
		zap.Int("moves", s.counters.Moves),
		zap.Int("draws", s.counters.Draws),
		zap.Int("recycles", s.counters.Recycles),
		zap.Int("foundation", s.tableau.FoundationCount()),
	)
	if s.history != nil {
		s.history.Finish(r, s.counters, s.tableau.FoundationCount())
	}
	return r
}
