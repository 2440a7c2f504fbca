package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/contractgen"
	"github.com/wippyai/contractgen/clientgen"
	"github.com/wippyai/contractgen/config"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	entrypointStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// recentLines is the number of finished entrypoints kept on screen.
const recentLines = 5

type progressMsg clientgen.Progress

type finishedMsg struct {
	err    error
	result *contractgen.Result
}

type progressModel struct {
	err      error
	result   *contractgen.Result
	cancel   context.CancelFunc
	module   string
	recent   []string
	spinner  spinner.Model
	bar      progress.Model
	done     int
	total    int
	finished bool
}

func newProgressModel(module string, cancel context.CancelFunc) *progressModel {
	return &progressModel{
		module:  module,
		cancel:  cancel,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (m *progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
		}

	case progressMsg:
		m.done = msg.DoneItems
		m.total = msg.TotalItems
		m.recent = append(m.recent, fmt.Sprintf("%s %s",
			timeStyle.Render(fmt.Sprintf("%6dms", msg.SpentTime.Milliseconds())),
			entrypointStyle.Render(msg.Description)))
		if len(m.recent) > recentLines {
			m.recent = m.recent[len(m.recent)-recentLines:]
		}

	case finishedMsg:
		m.finished = true
		m.err = msg.err
		m.result = msg.result
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

func (m *progressModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ccdgen"))
	b.WriteString(" ")
	b.WriteString(m.module)
	b.WriteString("\n\n")

	for _, line := range m.recent {
		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.recent) > 0 {
		b.WriteString("\n")
	}

	switch {
	case m.finished && m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
	case m.finished:
		b.WriteString(m.bar.ViewAs(1))
		b.WriteString("\n\n")
		b.WriteString(doneStyle.Render(fmt.Sprintf("Generated %d contract clients with %d entrypoints in %dms",
			m.result.Contracts, m.result.Entrypoints, m.result.Elapsed.Milliseconds())))
		b.WriteString("\n")
		for _, f := range m.result.Files {
			b.WriteString(helpStyle.Render("  " + f))
			b.WriteString("\n")
		}
	default:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.bar.ViewAs(m.percent()))
		b.WriteString(fmt.Sprintf(" %d/%d", m.done, m.total))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("q cancel"))
	}

	return b.String()
}

// runWithProgressUI runs the generation in the background and renders its
// progress until it finishes.
func runWithProgressUI(ctx context.Context, cfg *config.Config, opts contractgen.Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newProgressModel(cfg.Module, cancel))
	opts.OnProgress = func(pr clientgen.Progress) {
		p.Send(progressMsg(pr))
	}
	go func() {
		res, err := contractgen.GenerateContractClientsFromFile(ctx, cfg.Module, cfg.OutDir, opts)
		p.Send(finishedMsg{result: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}
	return final.(*progressModel).err
}
