package replay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wilenwang/just_play/Klondike/pkg/game"
	"github.com/wilenwang/just_play/Klondike/ui/components"
)

// 样式定义
var (
	styleTitle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF79C6")).MarginBottom(1)
	styleSubtitle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	styleActive   = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	styleHelp     = lipgloss.NewStyle().MarginTop(1)
)

// 收到窗口大小之前使用的视口尺寸
const (
	defaultWidth  = 80
	defaultHeight = 30
)

// Model 回放查看器，只在已记录的事件间翻页；牌桌超出窗口高度时可滚动
type Model struct {
	title   string
	events  []game.Event
	result  game.Result
	current int
	width   int
	height  int

	keys     keyMap
	help     help.Model
	viewport viewport.Model
}

// NewModel 创建回放模型
func NewModel(title string, events []game.Event, result game.Result) *Model {
	m := &Model{
		title:  title,
		events: events,
		result: result,
		width:  defaultWidth,
		height: defaultHeight,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}
	m.viewport = viewport.New(defaultWidth, defaultHeight)
	m.viewport.KeyMap.Up = m.keys.Up
	m.viewport.KeyMap.Down = m.keys.Down
	m.viewport.KeyMap.PageUp = m.keys.PageUp
	m.viewport.KeyMap.PageDown = m.keys.PageDown
	m.syncContent()
	m.resize()
	return m
}

// Init 初始化
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update 更新模型
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// handleKeyMsg 处理键盘消息，翻页以外的按键交给视口滚动
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Prev):
		if m.current > 0 {
			m.current--
		}

	case key.Matches(msg, m.keys.Next):
		if m.current < len(m.events)-1 {
			m.current++
		}

	case key.Matches(msg, m.keys.First):
		m.current = 0

	case key.Matches(msg, m.keys.Last):
		if len(m.events) > 0 {
			m.current = len(m.events) - 1
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	default:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	m.syncContent()
	m.resize()
	return m, nil
}

// Current 返回当前事件序号
func (m *Model) Current() int {
	return m.current
}

// View 渲染视图
func (m *Model) View() string {
	if len(m.events) == 0 {
		return styleSubtitle.Render("没有可回放的记录") + "\n"
	}
	return strings.Join([]string{m.header(), m.viewport.View(), m.footer()}, "\n")
}

// header 标题和当前步骤
func (m *Model) header() string {
	ev := m.events[m.current]
	return styleTitle.Render(m.title) + "\n" +
		styleSubtitle.Render(fmt.Sprintf("第 %d/%d 步: ", m.current+1, len(m.events))) +
		styleActive.Render(ev.Describe())
}

// footer 结束提示和按键帮助
func (m *Model) footer() string {
	out := styleHelp.Render(m.help.View(m.keys))
	if len(m.events) > 0 && m.current == len(m.events)-1 {
		out = components.RenderResult(m.result) + "\n" + out
	}
	return out
}

// syncContent 把当前快照放进视口
func (m *Model) syncContent() {
	if len(m.events) == 0 {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(components.RenderSnapshot(m.events[m.current].Snapshot))
}

// resize 视口占用标题和帮助之外的高度
func (m *Model) resize() {
	m.viewport.Width = m.width
	if len(m.events) == 0 {
		return
	}
	h := m.height - lipgloss.Height(m.header()) - lipgloss.Height(m.footer())
	if h < 1 {
		h = 1
	}
	m.viewport.Height = h
}

// Start 启动回放 TUI
func Start(model *Model) error {
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI 运行错误: %w", err)
	}
	return nil
}
