// Sinhala GPT TUI - A trilingual chat and image generation terminal client
// for the Google Gemini API.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/sinhalagpt-tui/internal/config"
	"github.com/jeranaias/sinhalagpt-tui/internal/engine"
	"github.com/jeranaias/sinhalagpt-tui/internal/gemini"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/chat"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/components"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/imagegen"
	"github.com/jeranaias/sinhalagpt-tui/internal/ui/styles"
	"github.com/jeranaias/sinhalagpt-tui/internal/voice"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Global program reference for async config reloads
var (
	programRef *tea.Program
	programMu  sync.Mutex
)

// =============================================================================
// SYSTEM INSTRUCTIONS
// =============================================================================

// Each feature pins its own persona. The instruction string is the session
// key: the engine reuses its live session only while the instruction is
// unchanged.

const systemInstructionGeneral = "You are Sinhala GPT, a powerful trilingual AI assistant. You are an expert in Sinhala, Tamil, and English. Your purpose is to understand and respond to users accurately and helpfully in their preferred language from these three. When a user communicates in one language, you must respond in that same language. Avoid translating words or phrases between languages unless specifically asked to do so. Your primary goal is to provide comprehensive assistance, not to act as a translation tool."

const systemInstructionCoding = "You are an expert programmer and coding assistant. Provide clear, concise, and correct code examples in various programming languages. Explain complex concepts simply. ALWAYS format your code within markdown code blocks and specify the language identifier (e.g., ```python ... ```) for proper rendering."

const systemInstructionEducation = "You are an enthusiastic and knowledgeable educational assistant. Your goal is to help users learn about various topics. Break down complex subjects into easy-to-understand explanations. Be patient and encouraging."

// =============================================================================
// FEATURES
// =============================================================================

// Feature identifies one of the app's panels.
type Feature int

const (
	FeatureChat Feature = iota
	FeatureCoding
	FeatureEducation
	FeatureImage
	featureCount
)

// String returns the tab label for the feature.
func (f Feature) String() string {
	switch f {
	case FeatureChat:
		return "Chat"
	case FeatureCoding:
		return "Coding"
	case FeatureEducation:
		return "Education"
	case FeatureImage:
		return "Image"
	default:
		return "Unknown"
	}
}

// Title returns the header subtitle for the feature.
func (f Feature) Title() string {
	switch f {
	case FeatureChat:
		return "General Chat"
	case FeatureCoding:
		return "Coding Assistant"
	case FeatureEducation:
		return "Education Assistant"
	case FeatureImage:
		return "Image Generator"
	default:
		return "Sinhala GPT"
	}
}

// instruction returns the feature's system instruction. Empty for the image
// feature, which has no conversation.
func (f Feature) instruction() string {
	switch f {
	case FeatureChat:
		return systemInstructionGeneral
	case FeatureCoding:
		return systemInstructionCoding
	case FeatureEducation:
		return systemInstructionEducation
	default:
		return ""
	}
}

// placeholder returns the input hint for the feature.
func (f Feature) placeholder() string {
	switch f {
	case FeatureChat:
		return "Ask me anything in Sinhala, Tamil, or English..."
	case FeatureCoding:
		return "Ask me a coding question..."
	case FeatureEducation:
		return "Ask me an educational question..."
	default:
		return "Type a message..."
	}
}

// =============================================================================
// MAIN
// =============================================================================

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if path, perr := config.Path(); perr == nil {
			fmt.Fprintf(os.Stderr, "Set GEMINI_API_KEY or add api_key to %s\n", path)
		}
		os.Exit(1)
	}

	if cfg.Debug {
		f, err := tea.LogToFile("sinhalagpt-debug.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	}

	client, err := gemini.NewClient(context.Background(), &gemini.ClientConfig{
		APIKey:     cfg.Gemini.APIKey,
		ChatModel:  cfg.Gemini.ChatModel,
		ImageModel: cfg.Gemini.ImageModel,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := NewModel(cfg, engine.GeminiGateway{Client: client})

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	programMu.Lock()
	programRef = p
	programMu.Unlock()

	// Live config reload: model and voice changes apply to the next panel.
	if path, perr := config.Path(); perr == nil {
		watcher, werr := config.Watch(path, func(next *config.Config) {
			programMu.Lock()
			prog := programRef
			programMu.Unlock()
			if prog != nil {
				prog.Send(configReloadedMsg{cfg: next})
			}
		})
		if werr == nil {
			defer watcher.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running sinhalagpt: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// APPLICATION MODEL
// =============================================================================

// State represents the current application state.
type State int

const (
	StateSplash State = iota // Splash screen
	StateActive              // Feature panels
)

// splashDoneMsg fires when the minimum splash display time has elapsed.
type splashDoneMsg struct{}

// configReloadedMsg carries a freshly parsed config from the file watcher.
type configReloadedMsg struct {
	cfg *config.Config
}

// Model is the main Bubble Tea model for the application.
type Model struct {
	state State
	theme *styles.Theme

	width  int
	height int

	cfg     *config.Config
	gateway engine.Gateway

	header  *components.Header
	feature Feature

	// Active panel. Switching features constructs a fresh panel, so each
	// visit starts with a clean transcript and session.
	chatPanel  *chat.Panel
	imagePanel *imagegen.Panel
}

// NewModel creates the application model.
func NewModel(cfg *config.Config, gateway engine.Gateway) *Model {
	header := components.NewHeader()
	header.SetTabs([]string{
		FeatureChat.String(),
		FeatureCoding.String(),
		FeatureEducation.String(),
		FeatureImage.String(),
	})

	state := StateSplash
	if !cfg.UI.ShowSplash {
		state = StateActive
	}

	m := &Model{
		state:   state,
		theme:   styles.NewTheme(),
		cfg:     cfg,
		gateway: gateway,
		header:  header,
		feature: FeatureChat,
		width:   80,
		height:  24,
	}
	m.mountFeature(FeatureChat)
	return m
}

// recognizer builds the voice recognizer from config, or nil when no
// transcriber command is configured.
func (m *Model) recognizer() voice.Recognizer {
	if m.cfg.Voice.Command == "" {
		return nil
	}
	return voice.NewCommandRecognizer(m.cfg.Voice.Command, m.cfg.Voice.Args...)
}

// mountFeature replaces the active panel with a fresh one for the feature.
// The previous panel's engine and transcript are discarded.
func (m *Model) mountFeature(f Feature) tea.Cmd {
	m.feature = f
	m.header.SetActiveTab(int(f))
	m.header.Subtitle = f.Title()

	if m.chatPanel != nil {
		m.chatPanel.Close()
	}
	m.chatPanel = nil
	m.imagePanel = nil

	panelHeight := m.height - 3

	if f == FeatureImage {
		m.imagePanel = imagegen.New(m.gateway, m.cfg.UI.DownloadDir)
		m.imagePanel.SetSize(m.width, panelHeight)
		return m.imagePanel.Init()
	}

	m.chatPanel = chat.New(chat.Config{
		Gateway:     m.gateway,
		Instruction: f.instruction(),
		Placeholder: f.placeholder(),
		Recognizer:  m.recognizer(),
	})
	m.chatPanel.SetSize(m.width, panelHeight)
	return m.chatPanel.Init()
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init starts the splash timer and the active panel.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if m.state == StateSplash {
		minDisplay := time.Duration(m.cfg.UI.SplashMillis) * time.Millisecond
		cmds = append(cmds, tea.Tick(minDisplay, func(time.Time) tea.Msg {
			return splashDoneMsg{}
		}))
	}

	if m.chatPanel != nil {
		cmds = append(cmds, m.chatPanel.Init())
	}

	return tea.Batch(cmds...)
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.header.SetWidth(msg.Width)

		panelHeight := msg.Height - 3
		if m.chatPanel != nil {
			m.chatPanel.SetSize(msg.Width, panelHeight)
		}
		if m.imagePanel != nil {
			m.imagePanel.SetSize(msg.Width, panelHeight)
		}
		return m, nil

	case splashDoneMsg:
		if m.state == StateSplash {
			m.state = StateActive
		}
		return m, nil

	case configReloadedMsg:
		// Applies to panels mounted after the reload; live panels keep
		// their session.
		m.cfg = msg.cfg
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m.forwardToPanel(msg)
}

// handleKeyPress processes keyboard input.
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state == StateSplash {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}
		// Other keys wait out the minimum display time.
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		next := Feature((int(m.feature) + 1) % int(featureCount))
		return m, m.mountFeature(next)

	case "shift+tab":
		prev := Feature((int(m.feature) + int(featureCount) - 1) % int(featureCount))
		return m, m.mountFeature(prev)
	}

	return m.forwardToPanel(msg)
}

// forwardToPanel routes a message to the active panel.
func (m *Model) forwardToPanel(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.imagePanel != nil {
		m.imagePanel, cmd = m.imagePanel.Update(msg)
		return m, cmd
	}
	if m.chatPanel != nil {
		m.chatPanel, cmd = m.chatPanel.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current state.
func (m *Model) View() string {
	if m.state == StateSplash {
		return m.splashView()
	}

	var content string
	if m.imagePanel != nil {
		content = m.imagePanel.View()
	} else if m.chatPanel != nil {
		content = m.chatPanel.View()
	}

	return m.header.View() + "\n" + content
}

// splashView renders the startup splash screen.
func (m *Model) splashView() string {
	logo := lipgloss.NewStyle().
		Foreground(styles.Teal).
		Bold(true).
		Render("Sinhala GPT")

	info := lipgloss.NewStyle().
		Foreground(styles.TextSecondary).
		Render("Chat in Sinhala, Tamil, or English")

	version := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true).
		Render("v" + Version)

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(styles.Indigo).
		Padding(2, 4).
		Align(lipgloss.Center).
		Render(logo + "\n\n" + info + "\n" + version)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
