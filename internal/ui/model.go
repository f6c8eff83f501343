package ui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/floodnet-nyc/floodnet-go/floodnet"
	"github.com/floodnet-nyc/floodnet-go/models"
)

// AppState represents the current state of the application
type AppState int

const (
	StateLoading  AppState = iota // Fetching the deployment listing
	StateList                     // Browsing deployments
	StateReadings                 // Viewing depth readings for one deployment
	StateError                    // Error state
)

// maxReadingRows caps how many readings the detail pane renders.
const maxReadingRows = 20

// deploymentItem adapts a Deployment to the bubbles list item interface
type deploymentItem struct {
	deployment models.Deployment
}

func (i deploymentItem) Title() string {
	return i.deployment.DeploymentID
}

func (i deploymentItem) Description() string {
	return fmt.Sprintf("%s · %s (%.4f, %.4f)",
		i.deployment.Name, i.deployment.SensorStatus,
		i.deployment.Latitude, i.deployment.Longitude)
}

func (i deploymentItem) FilterValue() string {
	return i.deployment.DeploymentID + " " + i.deployment.Name
}

// Model represents the application's state
type Model struct {
	state  AppState
	width  int
	height int
	err    error

	client *floodnet.Client
	window time.Duration

	spinner        spinner.Model
	deploymentList list.Model

	selected        *models.Deployment
	readings        []models.DepthReading
	loadingReadings bool
}

// NewModel creates a new application model. window is how far back the
// readings pane looks from now.
func NewModel(client *floodnet.Client, window time.Duration) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "FloodNet deployments"
	l.SetShowStatusBar(false)

	return Model{
		state:          StateLoading,
		client:         client,
		window:         window,
		spinner:        s,
		deploymentList: l,
	}
}

// Init starts the deployment fetch
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadDeployments(m.client, false))
}

// loadDeployments fetches the deployment listing off the UI goroutine
func loadDeployments(client *floodnet.Client, forceRefresh bool) tea.Cmd {
	return func() tea.Msg {
		deployments, err := client.ListDeployments(context.Background(), forceRefresh)
		return deploymentsLoadedMsg{deployments: deployments, err: err}
	}
}

// loadReadings fetches depth readings for one deployment over the window
func loadReadings(client *floodnet.Client, deploymentID string, window time.Duration) tea.Cmd {
	return func() tea.Msg {
		end := time.Now()
		start := end.Add(-window)
		readings, err := client.GetDepthData(context.Background(), start, end, []string{deploymentID})
		return readingsLoadedMsg{deploymentID: deploymentID, readings: readings, err: err}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.deploymentList.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case deploymentsLoadedMsg:
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, nil
		}
		items := make([]list.Item, len(msg.deployments))
		for i, d := range msg.deployments {
			items[i] = deploymentItem{deployment: d}
		}
		m.state = StateList
		return m, m.deploymentList.SetItems(items)

	case readingsLoadedMsg:
		m.loadingReadings = false
		if msg.err != nil {
			m.state = StateError
			m.err = msg.err
			return m, nil
		}
		if m.selected != nil && m.selected.DeploymentID == msg.deploymentID {
			m.readings = msg.readings
			m.state = StateReadings
		}
		return m, nil
	}

	if m.state == StateList {
		var cmd tea.Cmd
		m.deploymentList, cmd = m.deploymentList.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		if m.state == StateList && m.deploymentList.FilterState() == list.Filtering {
			break
		}
		return m, tea.Quit

	case "enter":
		if m.state == StateList {
			if item, ok := m.deploymentList.SelectedItem().(deploymentItem); ok {
				dep := item.deployment
				m.selected = &dep
				m.loadingReadings = true
				return m, tea.Batch(m.spinner.Tick, loadReadings(m.client, dep.DeploymentID, m.window))
			}
		}

	case "esc":
		if m.state == StateReadings || m.state == StateError {
			m.state = StateList
			m.selected = nil
			m.readings = nil
			m.err = nil
			return m, nil
		}

	case "r":
		if m.state == StateList {
			m.state = StateLoading
			return m, tea.Batch(m.spinner.Tick, loadDeployments(m.client, true))
		}
	}

	if m.state == StateList {
		var cmd tea.Cmd
		m.deploymentList, cmd = m.deploymentList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the application
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return fmt.Sprintf("\n  %s Fetching FloodNet deployments...\n", m.spinner.View())

	case StateError:
		return paneStyle.Render(
			errorStyle.Render("Error: "+m.err.Error()) + "\n\n" +
				helpStyle.Render("esc: back · q: quit"))

	case StateReadings:
		return m.readingsView()

	default:
		if m.loadingReadings {
			return fmt.Sprintf("\n  %s Fetching depth readings...\n", m.spinner.View())
		}
		return m.deploymentList.View() + "\n" +
			helpStyle.Render("  enter: readings · r: refresh · q: quit")
	}
}

func (m Model) readingsView() string {
	var b strings.Builder

	d := m.selected
	b.WriteString(titleStyle.Render(d.DeploymentID) + "\n")
	b.WriteString(labelStyle.Render("Name: ") + valueStyle.Render(d.Name) + "\n")
	b.WriteString(labelStyle.Render("Status: ") + valueStyle.Render(d.SensorStatus) + "\n")
	b.WriteString(labelStyle.Render("Position: ") +
		valueStyle.Render(fmt.Sprintf("%.5f, %.5f", d.Latitude, d.Longitude)) + "\n\n")

	if len(m.readings) == 0 {
		b.WriteString(labelStyle.Render(fmt.Sprintf("No readings in the last %s.", m.window)) + "\n")
	} else {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Depth readings (last %s)", m.window)) + "\n")

		// Most recent first
		sorted := make([]models.DepthReading, len(m.readings))
		copy(sorted, m.readings)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].Time.After(sorted[j].Time)
		})

		shown := sorted
		if len(shown) > maxReadingRows {
			shown = shown[:maxReadingRows]
		}
		for _, r := range shown {
			b.WriteString(fmt.Sprintf("  %s  %7.1f mm\n",
				r.Time.Local().Format("Jan 02 15:04"), r.DepthMM))
		}
		if len(sorted) > maxReadingRows {
			b.WriteString(labelStyle.Render(fmt.Sprintf("  … %d more", len(sorted)-maxReadingRows)) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("esc: back · q: quit"))
	return paneStyle.Render(b.String())
}
