package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/courtside/internal/result"
	"github.com/abhisek/courtside/internal/ui/theme"
)

// ActionButton shows the result screen's call to action and the key that
// triggers it. Disabled buttons render without the key.
type ActionButton struct {
	Action  result.Action
	Key     string
	Enabled bool
}

// NewActionButton returns an enabled button for a bound to enter.
func NewActionButton(a result.Action) ActionButton {
	return ActionButton{Action: a, Key: "enter", Enabled: true}
}

func (b ActionButton) View() string {
	label := " " + b.Action.Label() + " "
	if !b.Enabled {
		return theme.ButtonInactive.Render(label)
	}
	marker := "▸"
	if b.Action == result.ActionRestart {
		marker = "↺"
	}
	key := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + b.Key)
	return lipgloss.JoinHorizontal(lipgloss.Center, theme.ButtonActive.Render(marker+label), key)
}
