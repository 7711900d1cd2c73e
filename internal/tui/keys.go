package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sunydepalpur/reaper/internal/app"
)

// translateKey maps a bubbletea key to controller keys. Pasted text arrives
// as one message with several runes and yields one key per rune.
func translateKey(msg tea.KeyMsg) []app.Key {
	switch msg.Type {
	case tea.KeyUp:
		return []app.Key{{Code: app.KeyUp}}
	case tea.KeyDown:
		return []app.Key{{Code: app.KeyDown}}
	case tea.KeyPgUp:
		return []app.Key{{Code: app.KeyPgUp}}
	case tea.KeyPgDown:
		return []app.Key{{Code: app.KeyPgDown}}
	case tea.KeyHome:
		return []app.Key{{Code: app.KeyHome}}
	case tea.KeyEnd:
		return []app.Key{{Code: app.KeyEnd}}
	case tea.KeyEnter:
		return []app.Key{{Code: app.KeyEnter}}
	case tea.KeyEsc:
		return []app.Key{{Code: app.KeyEsc}}
	case tea.KeyBackspace:
		return []app.Key{{Code: app.KeyBackspace}}
	case tea.KeySpace:
		return []app.Key{app.Rune(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]app.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, app.Rune(r))
		}
		return keys
	}
	return nil
}
