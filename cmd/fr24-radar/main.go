package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/JeanExtreme002/FlightRadarAPI/internal/config"
	"github.com/JeanExtreme002/FlightRadarAPI/pkg/fr24"
	"github.com/JeanExtreme002/FlightRadarAPI/pkg/geo"
)

const (
	minRadiusM = 25000
	maxRadiusM = 1000000
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("237"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	detailStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type model struct {
	client   *fr24.Client
	center   geo.Position
	radiusM  float64
	refresh  int
	flights  []*fr24.Flight
	selected int
	detail   *fr24.Flight
	fetching bool
	err      error
}

type tickMsg struct{}

type flightsMsg struct {
	flights []*fr24.Flight
	err     error
}

type detailMsg struct {
	flight *fr24.Flight
	err    error
}

func (m model) tick() tea.Cmd {
	return tea.Tick(time.Duration(m.refresh)*time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m model) fetchFlights() tea.Cmd {
	client, center, radius := m.client, m.center, m.radiusM
	return func() tea.Msg {
		bounds := geo.BoundsAroundPoint(center.Latitude, center.Longitude, radius)
		flights, err := client.GetFlights(&fr24.FlightFilter{Bounds: bounds.String()})
		return flightsMsg{flights: flights, err: err}
	}
}

func (m model) fetchDetail(flight *fr24.Flight) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		payload, err := client.GetFlightDetails(flight)
		if err != nil {
			return detailMsg{err: err}
		}
		flight.SetDetails(payload)
		return detailMsg{flight: flight}
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.fetchFlights(), m.tick())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.selected < len(m.flights)-1 {
				m.selected++
			}
		case "enter", " ":
			if len(m.flights) > 0 && m.selected < len(m.flights) {
				m.fetching = true
				return m, m.fetchDetail(m.flights[m.selected])
			}
		case "esc":
			m.detail = nil
			m.err = nil
		case "+", "=":
			if m.radiusM < maxRadiusM {
				m.radiusM *= 1.5
				if m.radiusM > maxRadiusM {
					m.radiusM = maxRadiusM
				}
			}
		case "-", "_":
			if m.radiusM > minRadiusM {
				m.radiusM /= 1.5
				if m.radiusM < minRadiusM {
					m.radiusM = minRadiusM
				}
			}
		}

	case tickMsg:
		return m, tea.Batch(m.fetchFlights(), m.tick())

	case flightsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.flights = msg.flights
		if m.selected >= len(m.flights) {
			m.selected = 0
		}

	case detailMsg:
		m.fetching = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.detail = msg.flight
	}

	return m, nil
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("FR24 RADAR"))
	s.WriteString(fmt.Sprintf("  %.4f, %.4f  radius %.0f km\n\n",
		m.center.Latitude, m.center.Longitude, m.radiusM/1000))

	if m.err != nil {
		s.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\n")
	}

	s.WriteString(headerStyle.Render(fmt.Sprintf("Flights in view (%d)", len(m.flights))))
	s.WriteString("\n\n")

	if len(m.flights) == 0 {
		s.WriteString(helpStyle.Render("  No flights in range"))
		s.WriteString("\n")
	} else {
		s.WriteString(helpStyle.Render(fmt.Sprintf("  %-9s %-8s %-9s %-9s %10s %9s %6s %9s",
			"CALLSIGN", "FLIGHT", "TYPE", "ROUTE", "ALT", "GS", "HDG", "V/S")))
		s.WriteString("\n")

		start := 0
		if m.selected > 7 && len(m.flights) > 15 {
			start = m.selected - 7
		}
		end := start + 15
		if end > len(m.flights) {
			end = len(m.flights)
		}

		for i := start; i < end; i++ {
			flight := m.flights[i]

			prefix := "  "
			if i == m.selected {
				prefix = "→ "
			}

			route := fmt.Sprintf("%s-%s",
				fr24.DisplayText(flight.OriginAirportIATA),
				fr24.DisplayText(flight.DestinationAirportIATA))

			line := fmt.Sprintf("%s%-9s %-8s %-9s %-9s %10s %9s %6s %9s",
				prefix,
				fr24.DisplayText(flight.Callsign),
				fr24.DisplayText(flight.Number),
				fr24.DisplayText(flight.AircraftCode),
				route,
				flight.FormattedAltitude(),
				flight.FormattedGroundSpeed(),
				flight.FormattedHeading(),
				flight.FormattedVerticalSpeed(),
			)

			if i == m.selected {
				line = selectedStyle.Render(line)
			}
			s.WriteString(line)
			s.WriteString("\n")
		}
	}

	if m.fetching {
		s.WriteString("\n")
		s.WriteString(helpStyle.Render("Fetching flight details..."))
		s.WriteString("\n")
	} else if m.detail != nil && m.detail.Details != nil {
		s.WriteString("\n")
		s.WriteString(m.renderDetail())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: Select  ENTER: Details  ESC: Close  +/-: Radius  Q: Quit"))
	s.WriteString("\n")

	return s.String()
}

func (m model) renderDetail() string {
	var s strings.Builder
	details := m.detail.Details

	s.WriteString(headerStyle.Render(fmt.Sprintf("Flight %s", fr24.DisplayText(m.detail.Callsign))))
	s.WriteString("\n")

	s.WriteString(detailStyle.Render(fmt.Sprintf("  Airline:  %s", fr24.DisplayText(details.AirlineName))))
	s.WriteString("\n")
	s.WriteString(detailStyle.Render(fmt.Sprintf("  Aircraft: %s (%s)",
		fr24.DisplayText(details.AircraftModel), fr24.DisplayText(m.detail.Registration))))
	s.WriteString("\n")
	s.WriteString(detailStyle.Render(fmt.Sprintf("  Route:    %s → %s",
		fr24.DisplayText(details.Origin.Name), fr24.DisplayText(details.Destination.Name))))
	s.WriteString("\n")
	if details.StatusText != "" {
		s.WriteString(detailStyle.Render(fmt.Sprintf("  Status:   %s", details.StatusText)))
		s.WriteString("\n")
	}
	s.WriteString(detailStyle.Render(fmt.Sprintf("  Trail:    %d points", len(details.Trail))))
	s.WriteString("\n")

	return s.String()
}

func main() {
	configPath := flag.String("config", "configs/config.json", "Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client, err := fr24.NewClient(fr24.ClientConfig{
		Email:    cfg.Account.Email,
		Password: cfg.Account.Password,
	})
	if err != nil {
		log.Fatalf("Failed to create FlightRadar24 client: %v", err)
	}

	refresh := cfg.Radar.RefreshSeconds
	if refresh <= 0 {
		refresh = 5
	}
	radius := cfg.Radar.RadiusM
	if radius <= 0 {
		radius = 200000
	}

	m := model{
		client:  client,
		center:  geo.Position{Latitude: cfg.Radar.Latitude, Longitude: cfg.Radar.Longitude},
		radiusM: radius,
		refresh: refresh,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
