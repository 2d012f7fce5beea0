package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/wilenwang/just_play/Klondike/pkg/game"
)

// Config 命令行程序的配置，先读 .env 和环境变量，再由命令行参数覆盖
type Config struct {
	MaxGoes   int    // 无进展时允许重置牌库的次数
	DrawCount int    // 每次翻牌张数
	MaxMoves  int    // 移动次数上限
	NumPiles  int    // 牌列数
	Seed      int64  // 洗牌种子
	HasSeed   bool   // 是否指定了种子，未指定时按时间洗牌
	Workers   int    // 批量模式的并发局数
	LogLevel  string // 日志级别
}

// Default 返回演示用的默认配置
func Default() *Config {
	return &Config{
		MaxGoes:   1,
		DrawCount: 3,
		MaxMoves:  game.DefaultConfig().MaxMoves,
		NumPiles:  game.DefaultPiles,
		Workers:   4,
		LogLevel:  "warn",
	}
}

// Load 读取可选的 .env 文件和 KLONDIKE_* 环境变量
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	ints := []struct {
		key string
		dst *int
	}{
		{"KLONDIKE_MAX_GOES", &cfg.MaxGoes},
		{"KLONDIKE_DRAW_COUNT", &cfg.DrawCount},
		{"KLONDIKE_MAX_MOVES", &cfg.MaxMoves},
		{"KLONDIKE_PILES", &cfg.NumPiles},
		{"KLONDIKE_WORKERS", &cfg.Workers},
	}
	for _, v := range ints {
		raw := os.Getenv(v.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", v.key, err)
		}
		*v.dst = n
	}

	if raw := os.Getenv("KLONDIKE_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid KLONDIKE_SEED: %w", err)
		}
		cfg.Seed = seed
		cfg.HasSeed = true
	}
	if lvl := os.Getenv("KLONDIKE_LOG_LEVEL"); lvl != "" {
		cfg.LogLevel = lvl
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 检查配置取值
func (c *Config) Validate() error {
	if c.MaxGoes < 0 {
		return fmt.Errorf("max goes must not be negative, got %d", c.MaxGoes)
	}
	if c.DrawCount <= 0 {
		return fmt.Errorf("draw count must be positive, got %d", c.DrawCount)
	}
	if c.MaxMoves <= 0 {
		return fmt.Errorf("max moves must be positive, got %d", c.MaxMoves)
	}
	if c.NumPiles <= 0 {
		return fmt.Errorf("pile count must be positive, got %d", c.NumPiles)
	}
	return nil
}

// Solver 转换为求解器配置
func (c *Config) Solver() *game.Config {
	return &game.Config{
		NumPiles:  c.NumPiles,
		MaxGoes:   c.MaxGoes,
		DrawCount: c.DrawCount,
		MaxMoves:  c.MaxMoves,
	}
}
