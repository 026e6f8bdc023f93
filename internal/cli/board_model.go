package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/fabline/internal/cli/formatter"
	"github.com/alexanderramin/fabline/internal/domain"
	"github.com/alexanderramin/fabline/internal/repository"
	"github.com/alexanderramin/fabline/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// boardKeyMap names the board's key bindings; the help line at the bottom
// is rendered from these.
type boardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Advance  key.Binding
	Schedule key.Binding
	Add      key.Binding
	Columns  key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var boardKeys = boardKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Advance:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "advance")),
	Schedule: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "schedule")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add job")),
	Columns:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "columns")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k boardKeyMap) helpLine() string {
	parts := make([]string, 0, 6)
	for _, b := range []key.Binding{k.Advance, k.Schedule, k.Add, k.Columns, k.Refresh, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}

// boardLoadedMsg carries a fresh board snapshot: rows, stages and the
// saved column layout, loaded together so the view never mixes versions.
type boardLoadedMsg struct {
	rows    []repository.JobRow
	stages  []*domain.Stage
	columns []string
	err     error
}

// boardActionMsg reports the outcome of an advance or schedule action.
type boardActionMsg struct {
	status string
	err    error
}

// jobFormReadyMsg carries the project list the add-job form selects from.
type jobFormReadyMsg struct {
	projects []*domain.Project
	err      error
}

// boardModel is the interactive production board. It shows one line per
// active job and drives stage advances and rescheduling from the keyboard.
type boardModel struct {
	app *App

	rows    []repository.JobRow
	stages  map[int64]*domain.Stage
	columns []string

	cursor  int
	loading bool
	err     error
	status  string

	// form is the open dialog (column picker or add-job wizard). formDone
	// runs on completion, formCancel is the status shown on Esc.
	form       *huh.Form
	formDone   func() tea.Cmd
	formCancel string
	pickerCols []string
	jobVals    jobFormValues

	quitting bool
}

func newBoardModel(app *App) *boardModel {
	return &boardModel{app: app, loading: true}
}

func (m *boardModel) Init() tea.Cmd {
	return m.loadBoard()
}

func (m *boardModel) loadBoard() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		ctx := context.Background()
		rows, err := app.Jobs.ListActive(ctx)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		stages, err := app.Pipeline.ListStages(ctx)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		columns, err := app.Grid.Columns(ctx, service.BoardView)
		if err != nil {
			return boardLoadedMsg{err: err}
		}
		return boardLoadedMsg{rows: rows, stages: stages, columns: columns}
	}
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.rows
		m.stages = formatter.StageIndex(msg.stages)
		m.columns = msg.columns
		if m.cursor >= len(m.rows) {
			m.cursor = len(m.rows) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		return m, nil

	case boardActionMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		m.status = msg.status
		return m, m.loadBoard()

	case jobFormReadyMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
			return m, nil
		}
		if len(msg.projects) == 0 {
			m.status = formatter.Dim("No active projects. Create one with 'fabline project add'.")
			return m, nil
		}
		return m, m.openJobForm(msg.projects)

	case tea.KeyMsg:
		if m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKey(msg)
	}

	// Forward everything else to the open dialog.
	if m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, boardKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, boardKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, boardKeys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, boardKeys.Advance):
		if row, ok := m.selected(); ok {
			return m, m.advanceJob(row)
		}
	case key.Matches(msg, boardKeys.Schedule):
		if row, ok := m.selected(); ok {
			return m, m.scheduleJob(row)
		}
	case key.Matches(msg, boardKeys.Add):
		return m, m.loadProjectsForForm()
	case key.Matches(msg, boardKeys.Columns):
		return m, m.openPicker()
	case key.Matches(msg, boardKeys.Refresh):
		m.loading = true
		m.status = ""
		return m, m.loadBoard()
	}
	return m, nil
}

func (m *boardModel) selected() (repository.JobRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return repository.JobRow{}, false
	}
	return m.rows[m.cursor], true
}

func (m *boardModel) advanceJob(row repository.JobRow) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		resp, err := app.Status.AdvanceJob(context.Background(), row.Job.ID)
		if err != nil {
			return boardActionMsg{err: err}
		}
		status := fmt.Sprintf("%s → %s", row.Job.Name, resp.NextLabel)
		if resp.Wrapped {
			status += formatter.Dim(" (wrapped)")
		}
		return boardActionMsg{status: formatter.StyleGreen.Render(status)}
	}
}

func (m *boardModel) scheduleJob(row repository.JobRow) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		resp, err := app.Schedule.ScheduleJob(context.Background(), row.Job.ID)
		if err != nil {
			return boardActionMsg{err: err}
		}
		status := formatter.StyleGreen.Render(fmt.Sprintf("Scheduled %s from %s", row.Job.Name, resp.DeliveryDate))
		if len(resp.Warnings) > 0 {
			status += "  " + formatter.Warn(resp.Warnings[0])
		}
		return boardActionMsg{status: status}
	}
}

// ── dialogs ──────────────────────────────────────────────────────────────────

func (m *boardModel) openPicker() tea.Cmd {
	options := make([]huh.Option[string], 0, len(domain.DefaultGridColumns)+3)
	for _, col := range []string{
		domain.GridColJob, domain.GridColProject, domain.GridColClient,
		domain.GridColDrawing, domain.GridColQty, domain.GridColStage,
		string(domain.ColumnNesting), string(domain.ColumnMachining),
		string(domain.ColumnAssembly), string(domain.ColumnDelivery),
	} {
		options = append(options, huh.NewOption(formatter.ColumnHeader(col), col))
	}

	m.pickerCols = append([]string(nil), m.columns...)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Board columns").
				Description("Pick at least one column.").
				Options(options...).
				Value(&m.pickerCols),
		),
	).WithTheme(fablineHuhTheme()).WithShowHelp(true)
	m.formCancel = "Layout unchanged."
	m.formDone = func() tea.Cmd { return m.saveColumns(m.pickerCols) }

	return m.form.Init()
}

func (m *boardModel) loadProjectsForForm() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		projects, err := app.Projects.List(context.Background(), false)
		return jobFormReadyMsg{projects: projects, err: err}
	}
}

func (m *boardModel) openJobForm(projects []*domain.Project) tea.Cmd {
	m.jobVals = jobFormValues{Qty: "1"}
	m.form = newJobForm(projects, &m.jobVals)
	m.formCancel = "Job not added."
	m.formDone = func() tea.Cmd { return m.createJob(m.jobVals) }

	return m.form.Init()
}

func (m *boardModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.status = formatter.Dim(m.formCancel)
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		done := m.formDone
		m.form = nil
		return m, tea.Batch(cmd, done())
	}
	return m, cmd
}

func (m *boardModel) saveColumns(cols []string) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		if err := app.Grid.SaveColumns(context.Background(), service.BoardView, cols); err != nil {
			return boardActionMsg{err: err}
		}
		return boardActionMsg{status: formatter.Dim("Layout saved.")}
	}
}

func (m *boardModel) createJob(vals jobFormValues) tea.Cmd {
	app := m.app
	return func() tea.Msg {
		j := &domain.Job{
			ProjectID:     vals.ProjectID,
			Name:          vals.Name,
			DrawingNumber: vals.Drawing,
			Quantity:      parsePositiveInt(vals.Qty, 1),
		}
		if err := app.Jobs.Create(context.Background(), j, vals.Delivery); err != nil {
			return boardActionMsg{err: err}
		}
		return boardActionMsg{status: formatter.StyleGreen.Render("Added " + j.Name)}
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m *boardModel) View() string {
	if m.quitting {
		return ""
	}
	if m.form != nil {
		return m.form.View()
	}

	var b strings.Builder
	b.WriteString(formatter.Header("Production Board") + "\n\n")

	switch {
	case m.loading:
		b.WriteString(formatter.Dim("Loading…") + "\n")
	case m.err != nil:
		b.WriteString(formatter.StyleRed.Render(m.err.Error()) + "\n")
	case len(m.rows) == 0:
		b.WriteString(formatter.Dim("No active jobs. Add one with 'fabline job add'.") + "\n")
	default:
		b.WriteString(m.renderTable())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}
	b.WriteString("\n" + formatter.Dim(boardKeys.helpLine()))
	return b.String()
}

// renderTable draws the board table with a cursor marker in front of the
// selected row. Header and separator occupy the first two table lines.
func (m *boardModel) renderTable() string {
	table := formatter.RenderBoardTable(formatter.BoardData{
		Rows:    m.rows,
		Columns: m.columns,
		Stages:  m.stages,
		Now:     time.Now(),
	})

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	var b strings.Builder
	for i, line := range lines {
		if i-2 == m.cursor {
			b.WriteString(formatter.StyleHeader.Render("▌ ") + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
