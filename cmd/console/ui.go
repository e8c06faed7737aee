package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/endless-dnd/pkg/chat"
	"github.com/jwebster45206/endless-dnd/pkg/rules"
	"github.com/jwebster45206/endless-dnd/pkg/session"
	"github.com/muesli/reflow/wordwrap"
)

const (
	AgentName       = "DM"
	PlaceHolderText = "What do you do?"
)

// creationStage is a step of the character creation wizard.
type creationStage int

const (
	stageName creationStage = iota
	stageGender
	stageRace
	stageClass
	stageAttributes
	stageSkills
	stageBackstory
	stageCreating
)

// chatLine is one rendered transcript entry. Notices cover everything
// that is not dialogue: roll banners, damage popups, travel reports.
type chatLine struct {
	kind string // "user", "dm", "notice", "error"
	text string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	sess         *session.Session
	history      []chatLine
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Character creation wizard state
	showWizard  bool
	stage       creationStage
	wizardInput textinput.Model
	wizardErr   string
	draft       CreateSessionRequest
	listIndex   int
	alloc       *rules.Allocation
	attrIndex   int
	skillIndex  int
	skillPicks  map[string]bool

	// Check, travel and clipboard state
	pendingSkill string
	lastTravel   *TravelRequest
	lastDM       string

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type sessionCreatedMsg struct {
	sess *session.Session
	err  error
}

type chatTurnMsg struct {
	response *chat.ChatResponse
	err      error
}

type rollTurnMsg struct {
	response *RollResponse
	err      error
}

type travelTurnMsg struct {
	response  *TravelResponse
	committed bool
	err       error
}

type sessionRefreshMsg struct {
	sess *session.Session
	err  error
}

type sheetSavedMsg struct {
	path string
	err  error
}

type clipboardMsg struct {
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	ti := textinput.New()
	ti.Placeholder = "Enter a name"
	ti.CharLimit = 500
	ti.Width = 44
	ti.Focus()

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		textarea:     ta,
		wizardInput:  ti,
		chatViewport: chatVp,
		metaViewport: metaVp,
		ready:        false,
		showWizard:   true,
		stage:        stageName,
		alloc:        rules.NewAllocation(),
		skillPicks:   make(map[string]bool),
	}
}

func writeMetadata(s *session.Session, pendingSkill string) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CHARACTER") + "\n\n")

	c := s.Character
	content.WriteString(c.Name + "\n")
	content.WriteString(fmt.Sprintf("Level %d %s %s\n\n", c.Level, c.Race, c.Class))
	content.WriteString(fmt.Sprintf("HP: %d/%d\n", c.HP, c.MaxHP))
	content.WriteString(fmt.Sprintf("XP: %d/%d\n", c.XP, c.XPToNextLevel))
	content.WriteString(fmt.Sprintf("Gold: %d\n\n", c.Gold))

	content.WriteString("Location:\n")
	content.WriteString(c.CurrentLocation + "\n\n")

	gt := s.Clock.Format()
	content.WriteString(titleStyle.Render("WORLD CLOCK") + "\n\n")
	content.WriteString(gt.Time + "\n")
	content.WriteString(gt.Date + "\n")
	if gt.IsNight {
		content.WriteString("It is nighttime.\n")
	}
	content.WriteString("\n")

	if pendingSkill != "" {
		content.WriteString(errorStyle.Render(pendingSkill+" check pending") + "\n\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /look: Survey\n")
	content.WriteString("• /roll: Roll check\n")
	content.WriteString("• /travel x y name\n")
	content.WriteString("• /go: Confirm travel\n")
	content.WriteString("• /sheet: Save sheet\n")
	content.WriteString("• /copy: Copy last\n")
	content.WriteString("• /help: Help\n")

	return content.String()
}

// writeChatContent builds the chat content from the transcript for the
// current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(titleStyle.Render("ENDLESS D&D") + "\n\n")
	content.WriteString("Type your actions below and the Dungeon Master will respond.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")

	for _, line := range m.history {
		switch line.kind {
		case "dm":
			prefix := narratorStyle.Render(AgentName + ": ")
			content.WriteString(prefix + wordwrap.String(line.text, chatWidth-len(AgentName)-2) + "\n\n")
		case "user":
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(line.text, chatWidth-6) + "\n\n")
		case "notice":
			content.WriteString(noticeStyle.Render("✦ "+line.text) + "\n\n")
		case "error":
			content.WriteString(errorStyle.Render(line.text) + "\n\n")
		}
	}

	if m.pendingSkill != "" && !m.loading {
		content.WriteString(loadingStyle.Render(fmt.Sprintf("A %s check is pending. Type /roll to resolve it.", m.pendingSkill)) + "\n\n")
	}

	// If currently loading, add the progress bar
	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m *ConsoleUI) appendLine(kind, text string) {
	m.history = append(m.history, chatLine{kind: kind, text: text})
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showWizard {
		return textinput.Blink
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle quit modal first
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	// Handle the creation wizard second
	if m.showWizard {
		return m.updateWizard(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		// Pass mouse events to the chat viewport for scrolling; the
		// component ignores events outside its bounds.
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.ready = true
		m.writeChatContent()
		if m.sess != nil {
			m.metaViewport.SetContent(writeMetadata(m.sess, m.pendingSkill))
		}

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			if m.pendingSkill != "" {
				m.textarea.Reset()
				m.appendLine("error", fmt.Sprintf("Resolve the pending %s check first: type /roll", m.pendingSkill))
				m.writeChatContent()
				return m, nil
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0

			m.appendLine("user", input)
			m.writeChatContent()

			return m, tea.Batch(m.sendChatMessage(input, false), progressTick())
		}

	case chatTurnMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine("error", "Error: "+msg.err.Error())
		} else {
			m.applyChatResponse(msg.response)
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case rollTurnMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine("error", "Error: "+msg.err.Error())
		} else {
			r := msg.response.Roll
			if r != nil {
				bonus := r.Modifier + r.Proficiency
				m.appendLine("notice", fmt.Sprintf("%s check: rolled %d%+d = %d", r.Skill, r.RawDie, bonus, r.Total))
			}
			m.applyChatResponse(&msg.response.ChatResponse)
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case travelTurnMsg:
		m.loading = false
		if msg.err != nil {
			m.appendLine("error", "Error: "+msg.err.Error())
		} else if msg.committed {
			dest := "your destination"
			if m.lastTravel != nil && m.lastTravel.Location != "" {
				dest = m.lastTravel.Location
			}
			m.appendLine("notice", fmt.Sprintf("You arrive at %s after %s. It is now %s, %s.",
				dest, msg.response.Duration, msg.response.GameTime, msg.response.GameDate))
			m.lastTravel = nil
		} else {
			m.appendLine("notice", fmt.Sprintf("Journey estimate: %d miles on foot, about %s. Type /go to set out.",
				msg.response.Miles, msg.response.Duration))
		}
		m.writeChatContent()
		return m, m.refreshSession()

	case sheetSavedMsg:
		if msg.err != nil {
			m.appendLine("error", "Error: "+msg.err.Error())
		} else {
			m.appendLine("notice", "Character sheet saved to "+msg.path)
		}
		m.writeChatContent()

	case clipboardMsg:
		if msg.err != nil {
			m.appendLine("error", "Clipboard error: "+msg.err.Error())
		} else {
			m.appendLine("notice", "Last narration copied to clipboard.")
		}
		m.writeChatContent()

	case sessionRefreshMsg:
		if msg.err == nil && msg.sess != nil {
			m.sess = msg.sess
			m.metaViewport.SetContent(writeMetadata(m.sess, m.pendingSkill))
		}

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()
			return m, progressTick() // Continue the animation
		}
	}

	// Update components for non-mouse events
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// applyChatResponse folds one engine reply into the transcript. An
// in-game error string still renders in the transcript so the player
// can simply retry their turn.
func (m *ConsoleUI) applyChatResponse(resp *chat.ChatResponse) {
	if resp.Error != "" {
		m.appendLine("error", resp.Error)
		return
	}
	if resp.Message != "" {
		m.appendLine("dm", resp.Message)
		m.lastDM = resp.Message
	}
	for _, n := range resp.Notifications {
		m.appendLine("notice", fmt.Sprintf("%s: %d", n.Label, n.Value))
	}
	m.pendingSkill = resp.PendingSkill
}

func (m *ConsoleUI) resizePanels() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	m.textarea.Reset()
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/help":
		helpText := `Commands:
/look - Survey your immediate surroundings
/roll - Roll the pending skill check
/travel <x> <y> [place] - Estimate a journey to map coordinates
/go - Set out on the last estimated journey
/sheet - Save your character sheet to a file
/copy - Copy the last narration to the clipboard
Ctrl+C - Quit

How to play:
Type your actions and press Enter. The DM narrates the outcome.
When the DM calls for a check, resolve it with /roll before acting again.`
		m.appendLine("notice", helpText)
		m.writeChatContent()

	case "/look":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.sendChatMessage("", true), progressTick())

	case "/roll":
		if m.loading {
			return m, nil
		}
		if m.pendingSkill == "" {
			m.appendLine("error", "No check is pending.")
			m.writeChatContent()
			return m, nil
		}
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.sendRollRequest(), progressTick())

	case "/travel":
		if m.loading {
			return m, nil
		}
		if len(fields) < 3 {
			m.appendLine("error", "Usage: /travel <x> <y> [place name]")
			m.writeChatContent()
			return m, nil
		}
		x, errX := strconv.ParseFloat(fields[1], 64)
		y, errY := strconv.ParseFloat(fields[2], 64)
		if errX != nil || errY != nil {
			m.appendLine("error", "Map coordinates must be numbers, e.g. /travel 1716 1381 Waterdeep")
			m.writeChatContent()
			return m, nil
		}
		req := &TravelRequest{X: x, Y: y, Location: strings.Join(fields[3:], " ")}
		m.lastTravel = req
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.sendTravelRequest(*req, false), progressTick())

	case "/go":
		if m.loading {
			return m, nil
		}
		if m.lastTravel == nil {
			m.appendLine("error", "Plot a course first with /travel <x> <y> [place name]")
			m.writeChatContent()
			return m, nil
		}
		req := *m.lastTravel
		req.Confirm = true
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.sendTravelRequest(req, true), progressTick())

	case "/sheet":
		return m, m.saveSheet()

	case "/copy":
		if m.lastDM == "" {
			m.appendLine("error", "Nothing to copy yet.")
			m.writeChatContent()
			return m, nil
		}
		text := m.lastDM
		return m, func() tea.Msg {
			return clipboardMsg{err: clipboard.WriteAll(text)}
		}

	default:
		m.appendLine("error", "Unknown command. Type /help for a list.")
		m.writeChatContent()
	}

	return m, nil
}

func (m ConsoleUI) sendChatMessage(message string, lookAround bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendChat(m.client, m.config.APIBaseURL, m.sess.ID, message, lookAround)
		return chatTurnMsg{resp, err}
	}
}

func (m ConsoleUI) sendRollRequest() tea.Cmd {
	return func() tea.Msg {
		resp, err := sendRoll(m.client, m.config.APIBaseURL, m.sess.ID)
		return rollTurnMsg{resp, err}
	}
}

func (m ConsoleUI) sendTravelRequest(req TravelRequest, committed bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendTravel(m.client, m.config.APIBaseURL, m.sess.ID, req)
		return travelTurnMsg{resp, committed, err}
	}
}

func (m ConsoleUI) refreshSession() tea.Cmd {
	return func() tea.Msg {
		s, err := getSession(m.client, m.config.APIBaseURL, m.sess.ID)
		return sessionRefreshMsg{s, err}
	}
}

func (m ConsoleUI) saveSheet() tea.Cmd {
	return func() tea.Msg {
		filename, data, err := downloadSheet(m.client, m.config.APIBaseURL, m.sess.ID)
		if err != nil {
			return sheetSavedMsg{"", err}
		}
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return sheetSavedMsg{"", fmt.Errorf("failed to write sheet: %w", err)}
		}
		return sheetSavedMsg{filename, nil}
	}
}

func (m ConsoleUI) createCharacter() tea.Cmd {
	draft := m.draft
	return func() tea.Msg {
		s, err := createSession(m.client, m.config.APIBaseURL, draft)
		return sessionCreatedMsg{s, err}
	}
}

func (m ConsoleUI) updateWizard(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case sessionCreatedMsg:
		m.loading = false
		if msg.err != nil {
			// Drop back to the last input stage so the player can fix
			// the draft and retry.
			m.stage = stageBackstory
			m.wizardErr = msg.err.Error()
			return m, nil
		}
		m.sess = msg.sess
		m.showWizard = false
		for _, cm := range m.sess.ChatHistory {
			switch cm.Role {
			case chat.ChatRoleAgent:
				m.appendLine("dm", cm.Content)
				m.lastDM = cm.Content
			case chat.ChatRoleUser:
				m.appendLine("user", cm.Content)
			}
		}
		if m.width > 0 && m.height > 0 {
			m.resizePanels()
			m.ready = true
		}
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.sess, ""))
		m.textarea.Focus()
		return m, textarea.Blink

	case tea.KeyMsg:
		if m.stage == stageCreating {
			if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
				m.showQuitModal = true
			}
			return m, nil
		}

		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		}

		switch m.stage {
		case stageName, stageGender, stageBackstory:
			return m.updateWizardText(msg)
		case stageRace, stageClass:
			return m.updateWizardList(msg)
		case stageAttributes:
			return m.updateWizardAttributes(msg)
		case stageSkills:
			return m.updateWizardSkills(msg)
		}
	}

	if m.stage == stageName || m.stage == stageGender || m.stage == stageBackstory {
		var cmd tea.Cmd
		m.wizardInput, cmd = m.wizardInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ConsoleUI) updateWizardText(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		value := strings.TrimSpace(m.wizardInput.Value())
		m.wizardErr = ""

		switch m.stage {
		case stageName:
			if value == "" {
				m.wizardErr = "Your character needs a name."
				return m, nil
			}
			m.draft.Name = value
			m.stage = stageGender
			m.wizardInput.Reset()
			m.wizardInput.Placeholder = "e.g. female, male, nonbinary"
		case stageGender:
			m.draft.Gender = value
			m.stage = stageRace
			m.listIndex = 0
		case stageBackstory:
			m.draft.Backstory = value
			m.draft.Attributes = m.alloc.Scores()
			m.draft.Skills = m.pickedSkills()
			m.stage = stageCreating
			m.loading = true
			return m, m.createCharacter()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.wizardInput, cmd = m.wizardInput.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateWizardList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	options := rules.Races
	if m.stage == stageClass {
		options = rules.Classes
	}

	switch msg.Type {
	case tea.KeyUp:
		if m.listIndex > 0 {
			m.listIndex--
		}
	case tea.KeyDown:
		if m.listIndex < len(options)-1 {
			m.listIndex++
		}
	case tea.KeyEnter:
		if m.stage == stageRace {
			m.draft.Race = options[m.listIndex]
			m.stage = stageClass
			m.listIndex = 0
		} else {
			m.draft.Class = options[m.listIndex]
			m.stage = stageAttributes
			m.attrIndex = 0
		}
	}
	return m, nil
}

func (m ConsoleUI) updateWizardAttributes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	attr := rules.Attributes[m.attrIndex]

	switch msg.Type {
	case tea.KeyUp:
		if m.attrIndex > 0 {
			m.attrIndex--
		}
	case tea.KeyDown:
		if m.attrIndex < len(rules.Attributes)-1 {
			m.attrIndex++
		}
	case tea.KeyLeft:
		m.alloc.Decrement(attr)
		m.wizardErr = ""
	case tea.KeyRight:
		if !m.alloc.Increment(attr) {
			m.wizardErr = "No points left for that score."
		} else {
			m.wizardErr = ""
		}
	case tea.KeyEnter:
		if m.alloc.RemainingPoints() > 0 {
			m.wizardErr = fmt.Sprintf("Spend all your points first (%d remaining).", m.alloc.RemainingPoints())
			return m, nil
		}
		m.wizardErr = ""
		m.stage = stageSkills
		m.skillIndex = 0
	}
	return m, nil
}

func (m ConsoleUI) updateWizardSkills(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	limit := rules.SkillLimits[m.draft.Class]

	switch msg.Type {
	case tea.KeyUp:
		if m.skillIndex > 0 {
			m.skillIndex--
		}
	case tea.KeyDown:
		if m.skillIndex < len(rules.Skills)-1 {
			m.skillIndex++
		}
	case tea.KeySpace:
		skill := rules.Skills[m.skillIndex]
		if m.skillPicks[skill] {
			delete(m.skillPicks, skill)
			m.wizardErr = ""
		} else if len(m.skillPicks) < limit {
			m.skillPicks[skill] = true
			m.wizardErr = ""
		} else {
			m.wizardErr = fmt.Sprintf("A %s knows only %d skills. Unselect one first.", m.draft.Class, limit)
		}
	case tea.KeyEnter:
		if len(m.skillPicks) != limit {
			m.wizardErr = fmt.Sprintf("Choose %d skills (%d selected).", limit, len(m.skillPicks))
			return m, nil
		}
		m.wizardErr = ""
		m.stage = stageBackstory
		m.wizardInput.Reset()
		m.wizardInput.Placeholder = "A sentence or two about your past"
		m.wizardInput.Focus()
	}
	return m, nil
}

// pickedSkills returns the selection in canonical skill-list order.
func (m ConsoleUI) pickedSkills() []string {
	var out []string
	for _, s := range rules.Skills {
		if m.skillPicks[s] {
			out = append(out, s)
		}
	}
	return out
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showWizard {
					return m, textinput.Blink
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to abandon your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderWizard() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	switch m.stage {
	case stageName:
		content.WriteString(modalTitleStyle.Render("Create Your Character"))
		content.WriteString("\n\n")
		content.WriteString("What is your name, adventurer?\n\n")
		content.WriteString(m.wizardInput.View())

	case stageGender:
		content.WriteString(modalTitleStyle.Render(m.draft.Name))
		content.WriteString("\n\n")
		content.WriteString("What is your gender? (optional, press Enter to skip)\n\n")
		content.WriteString(m.wizardInput.View())

	case stageRace:
		content.WriteString(modalTitleStyle.Render("Choose a Race"))
		content.WriteString("\n\n")
		content.WriteString(m.renderOptionList(rules.Races))
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select"))

	case stageClass:
		content.WriteString(modalTitleStyle.Render("Choose a Class"))
		content.WriteString("\n\n")
		content.WriteString(m.renderOptionList(rules.Classes))
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select"))

	case stageAttributes:
		content.WriteString(modalTitleStyle.Render("Assign Ability Scores"))
		content.WriteString("\n\n")
		content.WriteString(fmt.Sprintf("Points remaining: %d\n\n", m.alloc.RemainingPoints()))
		bonuses := rules.RacialBonuses[m.draft.Race]
		for i, attr := range rules.Attributes {
			line := fmt.Sprintf("%-12s %2d", attr, m.alloc.Score(attr))
			if b := bonuses[attr]; b > 0 {
				line += fmt.Sprintf("  (+%d %s)", b, m.draft.Race)
			}
			if i == m.attrIndex {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + line))
			} else {
				content.WriteString(modalItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ select, ←/→ adjust, Enter when done"))

	case stageSkills:
		limit := rules.SkillLimits[m.draft.Class]
		content.WriteString(modalTitleStyle.Render("Choose Skills"))
		content.WriteString("\n\n")
		content.WriteString(fmt.Sprintf("Pick %d skills (%d selected)\n\n", limit, len(m.skillPicks)))
		for i, skill := range rules.Skills {
			mark := "[ ]"
			if m.skillPicks[skill] {
				mark = "[x]"
			}
			line := fmt.Sprintf("%s %s (%s)", mark, skill, rules.SkillAttributes[skill])
			if i == m.skillIndex {
				content.WriteString(modalSelectedItemStyle.Render("▶ " + line))
			} else {
				content.WriteString(modalItemStyle.Render("  " + line))
			}
			content.WriteString("\n")
		}
		content.WriteString("\n")
		content.WriteString(promptStyle.Render("↑/↓ select, Space to toggle, Enter when done"))

	case stageBackstory:
		content.WriteString(modalTitleStyle.Render("Backstory"))
		content.WriteString("\n\n")
		content.WriteString("Tell the DM a little about your past. (optional)\n\n")
		content.WriteString(m.wizardInput.View())

	case stageCreating:
		content.WriteString(modalTitleStyle.Render("Creating Character..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("The DM is preparing your adventure..."))
	}

	if m.wizardErr != "" {
		content.WriteString("\n\n")
		content.WriteString(errorStyle.Render(m.wizardErr))
	}

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderOptionList(options []string) string {
	var content strings.Builder
	for i, opt := range options {
		if i == m.listIndex {
			content.WriteString(modalSelectedItemStyle.Render("▶ " + opt))
		} else {
			content.WriteString(modalItemStyle.Render("  " + opt))
		}
		content.WriteString("\n")
	}
	return content.String()
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if m.showWizard {
		return m.renderWizard()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"", // Add empty line for spacing
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
