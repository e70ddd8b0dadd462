package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tanya-chat/internal/client"
	"tanya-chat/internal/validate"
)

// Localized client-side messages.
const (
	msgOffline     = "Tidak ada koneksi internet. Silakan periksa koneksi Anda."
	msgEmptyInput  = "Silakan masukkan pesan."
	msgConnFailed  = "Gagal terhubung ke server. Periksa koneksi internet Anda."
	msgRateLimited = "Terlalu banyak permintaan. Silakan tunggu sebentar."
	msgServerDown  = "Server sedang mengalami masalah. Silakan coba lagi nanti."
	msgSendFailed  = "Terjadi kesalahan saat mengirim pesan."
)

// toastDuration is how long an error stays visible before auto-dismissing.
const toastDuration = 5 * time.Second

type (
	chatResponseMsg struct{ text string }
	chatErrorMsg    struct{ err error }
	connMsg         struct{ online bool }
	toastTimeoutMsg struct{ id int }
)

// Model composes the network client, history store, and connectivity monitor
// behind the terminal UI. At most one request is in flight at a time: the
// input is disabled from send until terminal success or failure.
type Model struct {
	net     *client.NetworkClient
	history *client.HistoryStore
	store   *client.Store
	connCh  chan bool

	input   textarea.Model
	spin    spinner.Model
	vp      viewport.Model
	palette Palette

	darkMode bool
	theme    string
	online   bool
	busy     bool

	toast   string
	toastID int

	width  int
	height int
	ready  bool
}

// New builds the model, replaying persisted history and theme settings.
func New(net *client.NetworkClient, history *client.HistoryStore, store *client.Store, connCh chan bool) Model {
	in := textarea.New()
	in.Placeholder = "Ketik pesan Anda..."
	in.CharLimit = 0
	in.SetHeight(3)
	in.ShowLineNumbers = false
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	var darkMode bool
	store.Get(client.KeyDarkMode, &darkMode)
	theme := ThemeFuturistic
	store.Get(client.KeyCurrentTheme, &theme)

	return Model{
		net:      net,
		history:  history,
		store:    store,
		connCh:   connCh,
		input:    in,
		spin:     sp,
		palette:  NewPalette(theme, darkMode),
		darkMode: darkMode,
		theme:    theme,
		online:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spin.Tick, waitForConn(m.connCh))
}

// waitForConn relays connectivity transitions from the monitor into the
// update loop.
func waitForConn(ch chan bool) tea.Cmd {
	return func() tea.Msg {
		online, ok := <-ch
		if !ok {
			return nil
		}
		return connMsg{online: online}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 9
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.input.SetWidth(msg.Width - 4)
		m.refreshTranscript()

	case tea.KeyMsg:
		// Handled keys are not forwarded to the textarea.
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			cmd := m.send()
			return m, cmd
		case "ctrl+d":
			m.darkMode = !m.darkMode
			m.store.Set(client.KeyDarkMode, m.darkMode)
			m.palette = NewPalette(m.theme, m.darkMode)
			m.refreshTranscript()
			return m, nil
		case "ctrl+t":
			m.theme = NextTheme(m.theme)
			m.store.Set(client.KeyCurrentTheme, m.theme)
			m.palette = NewPalette(m.theme, m.darkMode)
			m.refreshTranscript()
			return m, nil
		case "ctrl+l":
			m.history.Clear()
			m.refreshTranscript()
			return m, nil
		}

	case chatResponseMsg:
		m.busy = false
		m.history.Append(msg.text, client.RoleAssistant)
		m.refreshTranscript()
		m.input.Focus()

	case chatErrorMsg:
		m.busy = false
		m.input.Focus()
		cmds = append(cmds, m.showToast(localizeError(msg.err)))

	case connMsg:
		m.online = msg.online
		cmds = append(cmds, waitForConn(m.connCh))

	case toastTimeoutMsg:
		if msg.id == m.toastID {
			m.toast = ""
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}

	// The input only receives events while no request is in flight.
	if !m.busy {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// send gates on connectivity and in-flight state, then dispatches the
// request command. Returns nil when nothing was sent.
func (m *Model) send() tea.Cmd {
	if m.busy {
		return nil
	}

	prompt := strings.TrimSpace(m.input.Value())
	if prompt == "" {
		return m.showToast(msgEmptyInput)
	}
	if !m.online {
		return m.showToast(msgOffline)
	}

	m.busy = true
	m.input.Blur()
	m.input.Reset()
	m.history.Append(prompt, client.RoleUser)
	m.refreshTranscript()

	net := m.net
	return func() tea.Msg {
		resp, err := net.Send(context.Background(), prompt)
		if err != nil {
			return chatErrorMsg{err: err}
		}
		return chatResponseMsg{text: resp.Response}
	}
}

func (m *Model) showToast(text string) tea.Cmd {
	m.toast = text
	m.toastID++
	id := m.toastID
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastTimeoutMsg{id: id}
	})
}

// refreshTranscript re-renders the history into the viewport, pinned to the
// bottom.
func (m *Model) refreshTranscript() {
	if !m.ready {
		return
	}

	width := m.vp.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, msg := range m.history.Messages() {
		label := m.palette.BotLabel.Render("AI")
		body := renderMarkdown(msg.Content, m.darkMode, width-2)
		if msg.Role == client.RoleUser {
			label = m.palette.UserLabel.Render("Anda")
			body = msg.Content + "\n"
		}
		fmt.Fprintf(&b, "%s %s\n%s\n", label, m.palette.Muted.Render(msg.Timestamp), body)
	}

	m.vp.SetContent(b.String())
	m.vp.GotoBottom()
}

// renderMarkdown pretty-prints a completion; on any rendering failure the
// raw text is shown instead.
func renderMarkdown(text string, darkMode bool, width int) string {
	style := "light"
	if darkMode {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text + "\n"
	}
	out, err := r.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func (m Model) View() string {
	if !m.ready {
		return "Memuat..."
	}

	conn := m.palette.Online.Render("● Online")
	if !m.online {
		conn = m.palette.Offline.Render("● Offline")
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		m.palette.Title.Render("Tanya AI"),
		m.palette.Muted.Render("  •  "),
		conn,
	)

	status := ""
	if m.busy {
		status = m.spin.View() + m.palette.Muted.Render(" AI sedang mengetik...")
	}
	if m.toast != "" {
		status = m.palette.Toast.Render(m.toast)
	}

	count := len([]rune(m.input.Value()))
	counter := m.palette.Muted
	switch {
	case count > 3500:
		counter = m.palette.CharOver
	case count > 3000:
		counter = m.palette.CharWarn
	}
	footer := counter.Render(fmt.Sprintf("%d/%d", count, validate.MaxPromptLength)) +
		m.palette.Muted.Render("  enter kirim • ctrl+d mode gelap • ctrl+t tema • ctrl+l hapus riwayat • esc keluar")

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s\n",
		header,
		m.vp.View(),
		status,
		m.palette.InputBox.Render(m.input.View()),
		footer,
	)
}

// localizeError maps a send failure to the message shown in the toast.
func localizeError(err error) string {
	var se *client.StatusError
	if errors.As(err, &se) {
		switch {
		case se.Code == http.StatusTooManyRequests:
			return msgRateLimited
		case se.Code >= http.StatusInternalServerError:
			if se.Message != "" {
				return se.Message
			}
			return msgServerDown
		case se.Message != "":
			return se.Message
		}
		return msgSendFailed
	}
	if err != nil {
		return msgConnFailed
	}
	return msgSendFailed
}
