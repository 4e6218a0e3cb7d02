package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"shoetracker/internal/config"
	"shoetracker/internal/units"
)

func testApp() *App {
	return NewApp(context.Background(), nil, &fakeImporter{}, units.New(config.UnitsMetric, "en-US"))
}

func TestAppHelpToggle(t *testing.T) {
	a := testApp()

	a.Update(runeKey('?'))
	if a.screen != ScreenHelp {
		t.Fatalf("screen = %v, want help", a.screen)
	}

	a.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if a.screen != ScreenShoes {
		t.Errorf("esc from help: screen = %v, want shoes", a.screen)
	}
}

func TestAppSearchCapturesGlobalKeys(t *testing.T) {
	a := testApp()
	a.shoes.searching = true
	a.shoes.search.Focus()

	a.Update(runeKey('?'))
	if a.screen != ScreenShoes {
		t.Errorf("? while searching switched to %v", a.screen)
	}
	if got := a.shoes.search.Value(); got != "?" {
		t.Errorf("search value = %q, want %q", got, "?")
	}
}

func TestAppStatusMessages(t *testing.T) {
	a := testApp()

	a.Update(StatusMsg{Text: "Shoe retired"})
	if a.status != "Shoe retired" || a.statusErr {
		t.Errorf("status = %q (err %v)", a.status, a.statusErr)
	}
}

func TestAssignedStatus(t *testing.T) {
	tests := map[int]string{
		0: "No runs assigned",
		1: "Assigned 1 run",
		4: "Assigned 4 runs",
	}
	for n, want := range tests {
		if got := assignedStatus(n); got != want {
			t.Errorf("assignedStatus(%d) = %q, want %q", n, got, want)
		}
	}
}
