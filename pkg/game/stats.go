package game

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wilenwang/just_play/Klondike/internal/card"
)

// BatchStats 多局自动求解的汇总统计
type BatchStats struct {
	GamesPlayed     int       `json:"games_played"`     // 局数
	GamesWon        int       `json:"games_won"`        // 赢的局数
	GamesGaveUp     int       `json:"games_gave_up"`    // 放弃的局数
	GamesMoveLimit  int       `json:"games_move_limit"` // 达到移动上限的局数
	TotalMoves      int       `json:"total_moves"`      // 总出牌次数
	TotalDraws      int       `json:"total_draws"`      // 总翻牌次数
	TotalRecycles   int       `json:"total_recycles"`   // 总重置牌库次数
	TotalFoundation int       `json:"total_foundation"` // 收牌堆总张数
	BestFoundation  int       `json:"best_foundation"`  // 单局最多收牌张数
	WinRate         float64   `json:"win_rate"`         // 胜率
	AvgFoundation   float64   `json:"avg_foundation"`   // 平均每局收牌张数
	CreatedAt       time.Time `json:"created_at"`       // 统计开始时间
	UpdatedAt       time.Time `json:"updated_at"`       // 最后更新时间
}

// StatsManager 汇总多局结果，可并发调用
type StatsManager struct {
	mu    sync.RWMutex
	stats BatchStats
}

// NewStatsManager 创建统计管理器
func NewStatsManager() *StatsManager {
	now := time.Now()
	return &StatsManager{
		stats: BatchStats{CreatedAt: now, UpdatedAt: now},
	}
}

// Record 记录一局的结果
func (s *StatsManager) Record(r Result, counters Counters, foundation int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := &s.stats
	st.GamesPlayed++
	switch r {
	case ResultWon:
		st.GamesWon++
	case ResultGaveUp:
		st.GamesGaveUp++
	case ResultMoveLimit:
		st.GamesMoveLimit++
	}
	st.TotalMoves += counters.Moves
	st.TotalDraws += counters.Draws
	st.TotalRecycles += counters.Recycles
	st.TotalFoundation += foundation
	if foundation > st.BestFoundation {
		st.BestFoundation = foundation
	}

	st.WinRate = float64(st.GamesWon) / float64(st.GamesPlayed)
	st.AvgFoundation = float64(st.TotalFoundation) / float64(st.GamesPlayed)
	st.UpdatedAt = time.Now()
}

// Snapshot 返回统计数据的副本
func (s *StatsManager) Snapshot() BatchStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// String 返回统计摘要
func (b BatchStats) String() string {
	return fmt.Sprintf("%d games: %d won, %d gave up, %d hit move limit (win rate %.1f%%, avg %.1f/%d on foundations, best %d)",
		b.GamesPlayed, b.GamesWon, b.GamesGaveUp, b.GamesMoveLimit,
		b.WinRate*100, b.AvgFoundation, card.DeckSize, b.BestFoundation)
}

// PlaySeeded 用指定种子洗牌并自动玩一局
func PlaySeeded(ctx context.Context, seed int64, config *Config, logger *zap.Logger) (*GameHistory, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	t, err := NewTableau(card.NewDeckWithSeed(seed), config.NumPiles)
	if err != nil {
		return nil, err
	}

	h := NewGameHistory(seed)
	solver := NewSolver(t, config, logger.With(zap.Int64("seed", seed)))
	solver.RecordTo(h)
	if _, err := solver.Solve(ctx); err != nil {
		return nil, fmt.Errorf("seed %d: %w", seed, err)
	}
	h.SetFinal(t.Snapshot())
	return h, nil
}

// RunBatch 并行地玩多局，每局各自持有牌桌，workers 限制同时进行的局数
func RunBatch(ctx context.Context, seeds []int64, config *Config, workers int, logger *zap.Logger) (BatchStats, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config == nil {
		config = DefaultConfig()
	}
	if workers <= 0 {
		workers = 1
	}
	stats := NewStatsManager()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, seed := range seeds {
		seed := seed
		g.Go(func() error {
			h, err := PlaySeeded(ctx, seed, config, logger)
			if err != nil {
				return err
			}
			stats.Record(h.Result, h.Counters, h.Foundation)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats.Snapshot(), err
	}

	result := stats.Snapshot()
	logger.Info("batch finished",
		zap.Int("games", result.GamesPlayed),
		zap.Int("won", result.GamesWon),
		zap.Float64("win_rate", result.WinRate),
	)
	return result, nil
}
