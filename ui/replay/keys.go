package replay

import "github.com/charmbracelet/bubbles/key"

// keyMap 回放查看器的按键绑定
type keyMap struct {
	Prev     key.Binding
	Next     key.Binding
	First    key.Binding
	Last     key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp 简要帮助
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Help, k.Quit}
}

// FullHelp 完整帮助
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "上一步"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", " "),
			key.WithHelp("→/l", "下一步"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "开头"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "结尾"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "上滚"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "下滚"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("pgup/b", "上翻页"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("pgdn/f", "下翻页"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "帮助"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "退出"),
		),
	}
}
