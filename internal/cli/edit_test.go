package cli

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press feeds keys to m and returns the resulting model and last command.
func press(t *testing.T, m editModel, keys ...string) (editModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(editModel)
	}
	return m, cmd
}

func TestEditModelSplits(t *testing.T) {
	s := script.New("panels", dock.NewRect(0, 0, 1024, 768))
	m, err := newEditModel(s, filepath.Join(t.TempDir(), "panels.toml"))
	if err != nil {
		t.Fatalf("newEditModel() error = %v", err)
	}
	if m.selected != -1 {
		t.Fatalf("selected = %d on an empty workspace, want -1", m.selected)
	}

	m, _ = press(t, m, "v")
	if len(s.Ops) != 0 {
		t.Fatal("split without a selection should not record an op")
	}

	m, _ = press(t, m, "t")
	h1 := dock.ViewHandle(1<<24 | palette[0])
	if got := m.layout.Blocks[m.selected].Handle; got != h1 {
		t.Fatalf("selected %s after t, want %s", got, h1)
	}

	m, _ = press(t, m, "v")
	h2 := dock.ViewHandle(2<<24 | palette[1])
	if got := m.layout.Blocks[m.selected].Handle; got != h2 {
		t.Fatalf("selected %s after v, want %s", got, h2)
	}

	m, _ = press(t, m, "tab", "h")
	h3 := dock.ViewHandle(3<<24 | palette[2])

	want := []script.Op{
		script.SplitTop(h1, dock.Vertical),
		script.SplitByHandle(dock.Vertical, h1, h2),
		script.SplitByHandle(dock.Horizontal, h1, h3),
	}
	if len(m.script.Ops) != len(want) {
		t.Fatalf("ops = %v, want %v", m.script.Ops, want)
	}
	for i := range want {
		if m.script.Ops[i] != want[i] {
			t.Errorf("op %d = %v, want %v", i, m.script.Ops[i], want[i])
		}
	}

	// h3 took h1's place on the left; h1 moved below it.
	v1, _ := m.ws.Find(h1)
	v3, _ := m.ws.Find(h3)
	if v3.Rect != dock.NewRect(0, 0, 1024, 384) || v1.Rect != dock.NewRect(0, 384, 1024, 384) {
		t.Errorf("rects h3=%s h1=%s", v3.Rect, v1.Rect)
	}
	if !m.dirty {
		t.Error("model should be dirty after splits")
	}
}

func TestEditModelSelectionWraps(t *testing.T) {
	m, err := newEditModel(script.Demo(), "demo.toml")
	if err != nil {
		t.Fatal(err)
	}
	if m.selected != 0 {
		t.Fatalf("selected = %d, want 0", m.selected)
	}

	m, _ = press(t, m, "shift+tab")
	if m.selected != 3 {
		t.Errorf("shift+tab from 0 = %d, want 3", m.selected)
	}
	m, _ = press(t, m, "tab")
	if m.selected != 0 {
		t.Errorf("tab from 3 = %d, want 0", m.selected)
	}
	if m.dirty {
		t.Error("selection alone should not dirty the model")
	}
}

func TestEditModelSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	m, err := newEditModel(script.Demo(), path)
	if err != nil {
		t.Fatal(err)
	}

	m, _ = press(t, m, "tab", "v")
	m, cmd := press(t, m, "w")
	if cmd == nil {
		t.Fatal("w should return a save command")
	}
	next, _ := m.Update(cmd())
	m = next.(editModel)

	if m.dirty {
		t.Error("model still dirty after save")
	}
	if !strings.HasPrefix(m.status, "saved") {
		t.Errorf("status = %q", m.status)
	}

	s, err := script.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(s.Ops) != 5 {
		t.Errorf("saved ops = %d, want 5", len(s.Ops))
	}
}

func TestEditModelQuit(t *testing.T) {
	m, err := newEditModel(script.Demo(), "demo.toml")
	if err != nil {
		t.Fatal(err)
	}
	_, cmd := press(t, m, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestEditModelView(t *testing.T) {
	m, err := newEditModel(script.Demo(), "demo.toml")
	if err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	m = next.(editModel)

	view := m.View()
	for _, want := range []string{"demo", "4 views", "depth 3", "q quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if lines := strings.Count(view, "\n") + 1; lines != 12 {
		t.Errorf("View() has %d lines, want 12", lines)
	}
}

func TestCellOwners(t *testing.T) {
	ws, _, err := script.Build(script.Demo())
	if err != nil {
		t.Fatal(err)
	}
	ws.Update()
	l := sink.FromWorkspace(ws)

	got := cellOwners(l, 4, 2)
	want := [][]int{
		{1, 1, 2, 2},
		{1, 1, 3, 3},
	}
	for r := range want {
		for c := range want[r] {
			if got[r][c] != want[r][c] {
				t.Errorf("cell (%d,%d) = %d, want %d", r, c, got[r][c], want[r][c])
			}
		}
	}

	if cellOwners(l, 0, 2) != nil {
		t.Error("cellOwners with no columns should be nil")
	}

	empty := sink.Layout{Frame: dock.NewRect(0, 0, 10, 10)}
	for _, row := range cellOwners(empty, 3, 3) {
		for _, o := range row {
			if o != -1 {
				t.Fatalf("empty layout cell owner = %d, want -1", o)
			}
		}
	}
}
