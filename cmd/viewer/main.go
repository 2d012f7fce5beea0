package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/wilenwang/just_play/Klondike/internal/card"
	"github.com/wilenwang/just_play/Klondike/internal/config"
	"github.com/wilenwang/just_play/Klondike/pkg/game"
	"github.com/wilenwang/just_play/Klondike/ui/replay"
)

// 先自动玩完一局，再在终端里逐步回放
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.MaxGoes, "max-goes", cfg.MaxGoes, "无进展时允许重置牌库的次数")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "洗牌种子（默认按当前时间）")
	unshuffled := flag.Bool("unshuffled", false, "不洗牌，按固定顺序发牌")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.HasSeed = true
		}
	})
	if !cfg.HasSeed {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "配置错误: %v\n", err)
		os.Exit(1)
	}

	deck := card.NewDeckWithSeed(cfg.Seed)
	title := fmt.Sprintf("Klondike 回放 - 种子 %d", cfg.Seed)
	if *unshuffled {
		deck = card.NewDeck()
		title = "Klondike 回放 - 未洗牌"
	}
	tab, err := game.NewTableau(deck, cfg.NumPiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "发牌失败: %v\n", err)
		os.Exit(1)
	}

	var events []game.Event
	solver := game.NewSolver(tab, cfg.Solver(), nil)
	solver.SetOnSnapshot(func(ev game.Event) {
		events = append(events, ev)
	})
	solver.EmitInitial()

	result, err := solver.Solve(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "求解失败: %v\n", err)
		os.Exit(1)
	}

	if err := replay.Start(replay.NewModel(title, events, result)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
