package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shoetracker/internal/config"
	"shoetracker/internal/importer"
	"shoetracker/internal/store"
	"shoetracker/internal/units"
)

type fakeImporter struct {
	loading    bool
	candidates []importer.Candidate
	loadErr    error
	loads      int
	assigned   []string
	failOn     string
}

func (f *fakeImporter) Loading() bool { return f.loading }

func (f *fakeImporter) Load(ctx context.Context, shoe store.Shoe) ([]importer.Candidate, error) {
	f.loads++
	return f.candidates, f.loadErr
}

func (f *fakeImporter) Assign(ctx context.Context, shoeID string, c importer.Candidate) (*store.Workout, error) {
	if c.ExternalID == f.failOn {
		return nil, errors.New("disk full")
	}
	f.assigned = append(f.assigned, c.ExternalID)
	return &store.Workout{ExternalID: c.ExternalID, ShoeID: shoeID}, nil
}

func meters(v float64) *float64 { return &v }

func testCandidates() []importer.Candidate {
	start := time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)
	return []importer.Candidate{
		{ExternalID: "strava:3", Name: "Tempo", Start: start, DistanceMeters: meters(8000), DurationSeconds: 2400},
		{ExternalID: "strava:2", Name: "Treadmill", Start: start.AddDate(0, 0, -1)},
		{ExternalID: "strava:1", Name: "Long run", Start: start.AddDate(0, 0, -2), DistanceMeters: meters(21000), DurationSeconds: 6600},
	}
}

func loadedPicker(t *testing.T, fi *fakeImporter) PickerModel {
	t.Helper()

	shoe := store.Shoe{ID: "shoe-1", Name: "Pegasus", Purchased: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewPickerModel(context.Background(), fi, units.New(config.UnitsMetric, "en-US"), shoe)

	msg := m.Init()()
	model, _ := m.Update(msg)
	return model.(PickerModel)
}

func press(m PickerModel, key tea.KeyMsg) (PickerModel, tea.Cmd) {
	model, cmd := m.Update(key)
	return model.(PickerModel), cmd
}

var (
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPickerAssignsSelected(t *testing.T) {
	fi := &fakeImporter{candidates: testCandidates()}
	m := loadedPicker(t, fi)

	if len(m.candidates) != 3 {
		t.Fatalf("loaded %d candidates, want 3", len(m.candidates))
	}

	m, _ = press(m, keySpace) // strava:3
	m, _ = press(m, keyDown)
	m, _ = press(m, keyDown)
	m, _ = press(m, keySpace) // strava:1

	m, cmd := press(m, keyEnter)
	if !m.assigning || cmd == nil {
		t.Fatal("enter with a selection should start assigning")
	}

	model, cmd := m.Update(cmd())
	m = model.(PickerModel)
	if m.assigning {
		t.Error("still assigning after assignDoneMsg")
	}

	done, ok := cmd().(WorkoutsAssignedMsg)
	if !ok {
		t.Fatalf("expected WorkoutsAssignedMsg")
	}
	if done.ShoeID != "shoe-1" || done.Count != 2 {
		t.Errorf("WorkoutsAssignedMsg = %+v, want shoe-1 / 2", done)
	}
	if len(fi.assigned) != 2 || fi.assigned[0] != "strava:3" || fi.assigned[1] != "strava:1" {
		t.Errorf("assigned %v, want [strava:3 strava:1]", fi.assigned)
	}
}

func TestPickerSkipsCandidatesWithoutDistance(t *testing.T) {
	m := loadedPicker(t, &fakeImporter{candidates: testCandidates()})

	m, _ = press(m, keyDown)
	m, _ = press(m, keySpace)
	if len(m.selectedCandidates()) != 0 {
		t.Error("candidate without distance was selectable")
	}

	m, _ = press(m, runeKey('A'))
	if got := len(m.selectedCandidates()); got != 2 {
		t.Errorf("select all picked %d, want 2", got)
	}

	m, _ = press(m, runeKey('A'))
	if got := len(m.selectedCandidates()); got != 0 {
		t.Errorf("second select all left %d selected, want 0", got)
	}
}

func TestPickerEnterWithoutSelection(t *testing.T) {
	m := loadedPicker(t, &fakeImporter{candidates: testCandidates()})

	m, cmd := press(m, keyEnter)
	if m.assigning || cmd != nil {
		t.Error("enter without a selection should do nothing")
	}
}

func TestPickerReloadDisabledWhileLoading(t *testing.T) {
	fi := &fakeImporter{candidates: testCandidates()}
	m := loadedPicker(t, fi)

	fi.loading = true
	m, cmd := press(m, runeKey('r'))
	if cmd != nil || m.loading {
		t.Error("reload should be ignored while the session is loading")
	}

	fi.loading = false
	m, cmd = press(m, runeKey('r'))
	if cmd == nil || !m.loading {
		t.Fatal("reload should start a load")
	}
	cmd()
	if fi.loads != 2 {
		t.Errorf("loads = %d, want 2", fi.loads)
	}
}

func TestPickerPartialAssignFailure(t *testing.T) {
	fi := &fakeImporter{candidates: testCandidates(), failOn: "strava:1"}
	m := loadedPicker(t, fi)

	m, _ = press(m, runeKey('A'))
	m, cmd := press(m, keyEnter)

	model, cmd := m.Update(cmd())
	m = model.(PickerModel)
	if m.err == nil {
		t.Error("expected assignment error to be kept")
	}
	if cmd == nil {
		t.Fatal("partial success should still report assigned runs")
	}
	if done := cmd().(WorkoutsAssignedMsg); done.Count != 1 {
		t.Errorf("Count = %d, want 1", done.Count)
	}
}

func TestDescribeImportError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{importer.ErrAuthorizationDenied, "Strava access is not authorized. Run `shoes login` and try again."},
		{importer.ErrImportInProgress, "An import is already running."},
		{errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		if got := describeImportError(tt.err); got != tt.want {
			t.Errorf("describeImportError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
