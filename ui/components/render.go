package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilenwang/just_play/Klondike/internal/card"
	"github.com/wilenwang/just_play/Klondike/pkg/game"
)

// 颜色定义
var (
	suitRed        = lipgloss.Color("196") // 红桃、方块 - 亮红色
	suitBlack      = lipgloss.Color("15")  // 黑桃、梅花 - 亮白色
	backColor      = lipgloss.Color("239") // 牌背 - 深灰色
	borderColor    = lipgloss.Color("240") // 边框
	highlightColor = lipgloss.Color("214") // 高亮
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(10)
	countStyle = lipgloss.NewStyle().Foreground(borderColor)
	backStyle  = lipgloss.NewStyle().Foreground(backColor)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1)
)

// RenderCardCompact 紧凑模式渲染单张牌，背面朝上显示为 [??]
func RenderCardCompact(c card.Card) string {
	if !c.FaceUp {
		return backStyle.Render("[??]")
	}
	return lipgloss.NewStyle().
		Foreground(GetCardColor(c)).
		Render(RenderCardASCII(c))
}

// RenderCardASCII 无颜色渲染（如 [10♥]）
func RenderCardASCII(c card.Card) string {
	if !c.FaceUp {
		return "[??]"
	}
	return fmt.Sprintf("[%s%s]", c.Rank, c.Suit.Symbol())
}

// RenderCardsCompact 紧凑模式渲染多张牌
func RenderCardsCompact(cards []card.Card) string {
	if len(cards) == 0 {
		return countStyle.Render("—")
	}

	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = RenderCardCompact(c)
	}
	return strings.Join(rendered, " ")
}

// RenderSnapshot 渲染整张牌桌，顺序与文本快照一致
func RenderSnapshot(s game.Snapshot) string {
	var rows []string

	rows = append(rows, renderRow("Stock", len(s.Stock), stockSummary(s.Stock)))
	rows = append(rows, renderRow("Waste", len(s.Avail), RenderCardsCompact(s.Avail)))
	rows = append(rows, "")

	for _, suit := range card.Suits() {
		f := s.Foundations[suit]
		rows = append(rows, renderRow(suit.Symbol()+" "+suit.String(), len(f), RenderCardsCompact(f)))
	}
	rows = append(rows, "")

	for i, p := range s.Piles {
		rows = append(rows, renderRow(fmt.Sprintf("Pile %d", i), len(p), RenderCardsCompact(p)))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// RenderResult 渲染结束提示
func RenderResult(r game.Result) string {
	return highlightStyle().Render(r.Message())
}

// GetCardColor 获取牌面的颜色
func GetCardColor(c card.Card) lipgloss.Color {
	if c.Color() == card.Red {
		return suitRed
	}
	return suitBlack
}

func renderRow(label string, count int, cards string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		countStyle.Render(fmt.Sprintf("%2d ", count)),
		cards,
	)
}

// stockSummary 牌库全部背面朝上，只显示张数对应的牌背
func stockSummary(stock []card.Card) string {
	if len(stock) == 0 {
		return countStyle.Render("—")
	}
	return backStyle.Render(strings.Repeat("▮", (len(stock)+2)/3))
}

// highlightStyle 返回高亮样式
func highlightStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(highlightColor).
		Bold(true)
}
