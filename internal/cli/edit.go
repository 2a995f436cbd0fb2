package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/viewdock/pkg/dock"
	"github.com/matzehuels/viewdock/pkg/render/sink"
	"github.com/matzehuels/viewdock/pkg/script"
)

const defaultEditPath = "workspace.toml"

// palette holds the colours given to views created in the editor. A new
// handle carries its colour in the low 24 bits and a serial number above.
var palette = []uint64{
	0xe6194b, 0x3cb44b, 0xffe119, 0x4363d8, 0xf58231,
	0x911eb4, 0x46f0f0, 0xf032e6, 0xbcf60c, 0xfabebe,
}

var (
	editStatusStyle   = lipgloss.NewStyle().Foreground(colorGray)
	editSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite).Background(colorCyan)
	editEmptyStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// editCommand creates the interactive layout editor.
func (c *CLI) editCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [script]",
		Short: "Edit a layout script interactively",
		Long: `Edit a layout script interactively.

The workspace is drawn scaled into the terminal, one colour per view.

Keys:
  tab / shift+tab  select the next / previous view
  v / h            split the selected view vertically / horizontally
  t / f            insert a view at the top of the tree (vertical / full)
  w                save the script
  q                quit

A missing script file is created on save with the bounds from the [layout]
section of the config file (default: ` + defaultEditPath + `).`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeScripts,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultEditPath
			if len(args) == 1 {
				path = args[0]
			}
			s, err := c.loadOrCreate(path)
			if err != nil {
				return err
			}
			m, err := newEditModel(s, path)
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("run editor: %w", err)
			}
			if fm, ok := final.(editModel); ok && fm.dirty {
				printWarning("Quit with unsaved changes to %s", path)
			}
			return nil
		},
	}
	return cmd
}

// loadOrCreate reads the script at path, or starts an empty one when the
// file does not exist.
func (c *CLI) loadOrCreate(path string) (*script.Script, error) {
	if _, err := script.FormatFromPath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err == nil {
		return script.ReadFile(path)
	}
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return script.New(name, dock.NewRect(0, 0, cfg.Layout.Width, cfg.Layout.Height)), nil
}

// =============================================================================
// editModel - Interactive workspace editor
// =============================================================================

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path string
	err  error
}

// editModel is the bubbletea model of `viewdock edit`.
type editModel struct {
	script   *script.Script
	ws       *dock.Workspace
	layout   sink.Layout
	path     string
	selected int // index into layout.Blocks, -1 when empty
	serial   uint64
	width    int
	height   int
	status   string
	dirty    bool
}

func newEditModel(s *script.Script, path string) (editModel, error) {
	ws, report, err := script.Build(s)
	if err != nil {
		return editModel{}, err
	}
	m := editModel{
		script: s,
		ws:     ws,
		path:   path,
		serial: uint64(len(s.Ops)),
		width:  80,
		height: 24,
	}
	m.refresh()
	if !report.OK() {
		m.status = fmt.Sprintf("%d ops missed their target", len(report.Missed))
	}
	return m, nil
}

// refresh recomputes rectangles and keeps the selection in range.
func (m *editModel) refresh() {
	m.ws.Update()
	m.layout = sink.FromWorkspace(m.ws)
	if m.selected >= len(m.layout.Blocks) {
		m.selected = len(m.layout.Blocks) - 1
	}
	if len(m.layout.Blocks) == 0 {
		m.selected = -1
	}
}

// nextHandle returns a fresh handle coloured from the palette.
func (m *editModel) nextHandle() dock.ViewHandle {
	m.serial++
	return dock.ViewHandle(m.serial<<24 | palette[int(m.serial-1)%len(palette)])
}

// apply runs op, records it in the script and selects the new view.
func (m *editModel) apply(op script.Op) {
	if !op.ApplyTo(m.ws) {
		m.status = fmt.Sprintf("view %s not found", op.Target)
		return
	}
	if err := m.script.Apply(op); err != nil {
		m.status = err.Error()
		return
	}
	m.dirty = true
	m.refresh()
	for i, b := range m.layout.Blocks {
		if b.Handle == op.Handle {
			m.selected = i
			break
		}
	}
	m.status = op.String()
}

func (m editModel) current() (sink.Block, bool) {
	if m.selected < 0 || m.selected >= len(m.layout.Blocks) {
		return sink.Block{}, false
	}
	return m.layout.Blocks[m.selected], true
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "right", "l":
			if n := len(m.layout.Blocks); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case "shift+tab", "left":
			if n := len(m.layout.Blocks); n > 0 {
				m.selected = (m.selected - 1 + n) % n
			}
		case "v", "h":
			b, ok := m.current()
			if !ok {
				m.status = "no view selected, press t to add one"
				return m, nil
			}
			dir := dock.Vertical
			if msg.String() == "h" {
				dir = dock.Horizontal
			}
			m.apply(script.SplitByHandle(dir, b.Handle, m.nextHandle()))
		case "t":
			m.apply(script.SplitTop(m.nextHandle(), dock.Vertical))
		case "f":
			m.apply(script.SplitTop(m.nextHandle(), dock.Full))
		case "w":
			return m, saveScript(m.path, m.script.Clone())
		}
	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.dirty = false
			m.status = "saved " + msg.path
		}
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 10)
		m.height = max(msg.Height, 5)
	}
	return m, nil
}

func saveScript(path string, s *script.Script) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{path: path, err: script.WriteFile(path, s)}
	}
}

func (m editModel) View() string {
	var b strings.Builder

	title := m.script.Name
	if title == "" {
		title = m.path
	}
	if m.dirty {
		title += "*"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString(" ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s · %d views · depth %d", m.ws.Rect(), m.ws.Len(), m.ws.Depth())))
	b.WriteString("\n")

	rows := m.height - 3
	grid := cellOwners(m.layout, m.width, rows)
	for _, row := range grid {
		b.WriteString(m.renderRow(row))
		b.WriteString("\n")
	}

	status := m.status
	if blk, ok := m.current(); ok {
		status = fmt.Sprintf("%s %s  %s", blk.Handle, blk.Rect, status)
	}
	b.WriteString(editStatusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("tab select  v/h split  t/f top  w save  q quit"))
	return b.String()
}

// renderRow draws one row of cells, merging runs with the same owner. The
// selected view shows its handle in its first cell run.
func (m editModel) renderRow(row []int) string {
	var b strings.Builder
	for i := 0; i < len(row); {
		j := i
		for j < len(row) && row[j] == row[i] {
			j++
		}
		b.WriteString(m.renderRun(row[i], j-i))
		i = j
	}
	return b.String()
}

func (m editModel) renderRun(owner, n int) string {
	if owner < 0 {
		return editEmptyStyle.Render(strings.Repeat("·", n))
	}
	blk := m.layout.Blocks[owner]
	style := lipgloss.NewStyle().Background(lipgloss.Color(sink.Fill(blk.Handle)))
	if owner == m.selected {
		label := blk.Handle.String()
		if len(label) > n {
			label = label[:n]
		}
		return editSelectedStyle.Render(label) + style.Render(strings.Repeat(" ", n-len(label)))
	}
	return style.Render(strings.Repeat(" ", n))
}

// cellOwners maps a cols x rows character grid onto the layout frame and
// returns, per cell, the index of the last block painted over the cell's
// centre, or -1.
func cellOwners(l sink.Layout, cols, rows int) [][]int {
	if cols <= 0 || rows <= 0 {
		return nil
	}
	grid := make([][]int, rows)
	cw := l.Frame.Width / float64(cols)
	ch := l.Frame.Height / float64(rows)
	for r := range grid {
		grid[r] = make([]int, cols)
		y := l.Frame.Y + (float64(r)+0.5)*ch
		for c := range grid[r] {
			x := l.Frame.X + (float64(c)+0.5)*cw
			grid[r][c] = -1
			for i, blk := range l.Blocks {
				if x >= blk.Rect.X && x < blk.Rect.Right() && y >= blk.Rect.Y && y < blk.Rect.Bottom() {
					grid[r][c] = i
				}
			}
		}
	}
	return grid
}
