package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wilenwang/just_play/Klondike/internal/card"
	"github.com/wilenwang/just_play/Klondike/internal/config"
	"github.com/wilenwang/just_play/Klondike/internal/logger"
	"github.com/wilenwang/just_play/Klondike/pkg/game"
	"github.com/wilenwang/just_play/Klondike/ui/components"
)

// 退出码
const (
	exitSolved    = 0
	exitError     = 1
	exitGaveUp    = 2
	exitMoveLimit = 3
)

// 控制台版 Klondike 自动求解
func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		return exitError
	}

	flag.IntVar(&cfg.MaxGoes, "max-goes", cfg.MaxGoes, "无进展时允许重置牌库的次数")
	flag.IntVar(&cfg.DrawCount, "draw", cfg.DrawCount, "每次从牌库翻出的张数")
	flag.IntVar(&cfg.MaxMoves, "max-moves", cfg.MaxMoves, "移动次数上限")
	flag.IntVar(&cfg.NumPiles, "piles", cfg.NumPiles, "牌列数")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "洗牌种子（默认按当前时间）")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "批量模式的并发局数")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "日志级别 (debug, info, warn, error)")
	unshuffled := flag.Bool("unshuffled", false, "不洗牌，按固定顺序发牌")
	deckText := flag.String("deck", "", "逗号分隔的52张牌，最后一张最先发出")
	games := flag.Int("games", 0, "批量模式：连续玩多少局，只输出统计（不能与单局输出参数同用）")
	color := flag.Bool("color", false, "彩色输出牌桌")
	trace := flag.Bool("trace", false, "结束后输出出牌记录")
	asJSON := flag.Bool("json", false, "结束后以 JSON 输出历史记录")
	quiet := flag.Bool("quiet", false, "不输出每一步的牌桌")
	flag.Parse()

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	cfg.HasSeed = cfg.HasSeed || set["seed"]
	if !cfg.HasSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		return exitError
	}

	log, err := logger.New(cfg.LogLevel, false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "日志初始化失败: %v\n", err)
		return exitError
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *games > 0 {
		if err := checkBatchFlags(set); err != nil {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", err)
			return exitError
		}
		return runBatch(ctx, cfg, *games, log)
	}

	deck, err := buildDeck(cfg.Seed, *unshuffled, *deckText)
	if err != nil {
		fmt.Fprintf(os.Stderr, "牌组错误: %v\n", err)
		return exitError
	}
	tab, err := game.NewTableau(deck, cfg.NumPiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "发牌失败: %v\n", err)
		return exitError
	}

	render := func(s game.Snapshot) string { return s.String() }
	if *color {
		render = components.RenderSnapshot
	}

	history := game.NewGameHistory(cfg.Seed)
	solver := game.NewSolver(tab, cfg.Solver(), log.With(zap.String("game_id", history.GameID)))
	solver.RecordTo(history)
	if !*quiet {
		fmt.Println(render(tab.Snapshot()))
		solver.SetOnSnapshot(func(ev game.Event) {
			fmt.Println()
			fmt.Println(render(ev.Snapshot))
		})
	}

	result, err := solver.Solve(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "求解中断: %v\n", err)
		return exitError
	}
	history.SetFinal(tab.Snapshot())

	fmt.Println()
	if *color {
		fmt.Println(components.RenderResult(result))
	} else {
		fmt.Println(result.Message())
	}

	if *trace {
		fmt.Println()
		fmt.Print(history.ExportToText())
	}
	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(history); err != nil {
			fmt.Fprintf(os.Stderr, "JSON 输出失败: %v\n", err)
			return exitError
		}
	}

	switch result {
	case game.ResultGaveUp:
		return exitGaveUp
	case game.ResultMoveLimit:
		return exitMoveLimit
	}
	return exitSolved
}

// buildDeck 按参数准备牌组：指定牌序、未洗牌或按种子洗牌
func buildDeck(seed int64, unshuffled bool, deckText string) (*card.Deck, error) {
	if deckText != "" {
		names := strings.Split(deckText, ",")
		cards := make([]card.Card, 0, len(names))
		for _, name := range names {
			c, err := card.ParseCard(strings.TrimSpace(name))
			if err != nil {
				return nil, fmt.Errorf("%q: %w", name, err)
			}
			cards = append(cards, c)
		}
		return card.NewDeckFromCards(cards)
	}
	if unshuffled {
		return card.NewDeck(), nil
	}
	return card.NewDeckWithSeed(seed), nil
}

// singleGameFlags 只对单局有意义的参数
var singleGameFlags = []string{"deck", "unshuffled", "color", "trace", "json"}

// checkBatchFlags 批量模式只输出统计，拒绝单局输出相关的参数
func checkBatchFlags(set map[string]bool) error {
	var conflicts []string
	for _, name := range singleGameFlags {
		if set[name] {
			conflicts = append(conflicts, "-"+name)
		}
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("-games cannot be combined with %s", strings.Join(conflicts, ", "))
	}
	return nil
}

// runBatch 从 cfg.Seed 起连续使用 n 个种子，输出汇总统计
func runBatch(ctx context.Context, cfg *config.Config, n int, log *zap.Logger) int {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = cfg.Seed + int64(i)
	}

	stats, err := game.RunBatch(ctx, seeds, cfg.Solver(), cfg.Workers, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "批量运行失败: %v\n", err)
		return exitError
	}
	fmt.Println(stats)
	return exitSolved
}
