package shell

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// Authorizer validates a sudo secret and classifies the privileged
// argument line. POST /api/sudo exposes the same contract over HTTP.
type Authorizer interface {
	Authorize(ctx context.Context, password, arg string) (*domain.SudoDecision, error)
}

// HistoryStore persists the command history under a storage key.
// store.Repository satisfies it.
type HistoryStore interface {
	LoadHistory(ctx context.Context, key string) ([]string, error)
	SaveHistory(ctx context.Context, key string, entries []string) error
}

// StatsSource samples server statistics for the live polling session.
type StatsSource interface {
	Sample(ctx context.Context) (*domain.SysInfo, error)
}

// MotdSource reads the current message-of-the-day lines.
type MotdSource interface {
	Lines() ([]string, error)
}

// GeoClient is the slice of the geo package the weather and info
// commands use.
type GeoClient interface {
	IPInfo(ctx context.Context) (*domain.IPInfo, error)
	Locate(ctx context.Context, ip string) (string, error)
	Geocode(ctx context.Context, name string) (*domain.Place, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
	CurrentWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error)
}

// GPSSource supplies device coordinates for `weather -gps`. Optional;
// without one the command reports that GPS is unavailable.
type GPSSource interface {
	Position(ctx context.Context) (lat, lon float64, err error)
}

// ClientInfo describes the connected visitor, shown by `info`.
type ClientInfo struct {
	UserAgent string
	IP        string
	Host      string
}

// promptState governs prompt recreation after a submit. Exactly one
// prompt (or masked password input, or none while polling) exists at a
// time; the transitions below are the only ones that open a new one.
type promptState int

const (
	stateIdle promptState = iota
	stateAwaitingPassword
	statePolling
)

// Options wires a Session's collaborators.
type Options struct {
	Surface      Surface
	Registry     *Registry
	Links        *Links
	Authorizer   Authorizer
	Stats        StatsSource
	Motd         MotdSource
	Geo          GeoClient
	GPS          GPSSource
	History      HistoryStore
	HistoryKey   string
	HistorySize  int
	WeatherCodes map[string]string
	PollInterval time.Duration
	Client       ClientInfo
}

// Session is one terminal session: the active line editor, the command
// history, the prompt state machine, and the (at most one) live polling
// session. All key events for a session arrive on a single goroutine;
// only the polling ticker runs concurrently, and it touches nothing but
// its own cancelled-or-not context and the Surface.
type Session struct {
	surface   Surface
	reg       *Registry
	links     *Links
	auth      Authorizer
	stats     StatsSource
	motd      MotdSource
	geo       GeoClient
	gps       GPSSource
	histStore HistoryStore
	histKey   string
	hist      *History

	weatherCodes map[string]string
	pollInterval time.Duration
	client       ClientInfo

	state   promptState
	editor  *LineEditor
	pwd     *LineEditor
	pending string // full original line awaiting escalation
	live    *liveSession
}

// NewSession creates a session. Call Start before delivering key events.
func NewSession(opts Options) *Session {
	interval := opts.PollInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Session{
		surface:      opts.Surface,
		reg:          opts.Registry,
		links:        opts.Links,
		auth:         opts.Authorizer,
		stats:        opts.Stats,
		motd:         opts.Motd,
		geo:          opts.Geo,
		gps:          opts.GPS,
		histStore:    opts.History,
		histKey:      opts.HistoryKey,
		hist:         NewHistory(opts.HistorySize),
		weatherCodes: opts.WeatherCodes,
		pollInterval: interval,
		client:       opts.Client,
	}
}

// Start loads persisted history and opens the first prompt.
func (s *Session) Start(ctx context.Context) {
	if s.histStore != nil && s.histKey != "" {
		entries, err := s.histStore.LoadHistory(ctx, s.histKey)
		if err != nil {
			slog.Warn("Failed to load command history", "key", s.histKey, "error", err)
		} else {
			s.hist.SetEntries(entries)
		}
	}
	s.prompt()
}

// Close releases session resources. Any running polling session is
// stopped without a notice.
func (s *Session) Close() {
	s.stopLive(false)
}

// History exposes the session history, mainly for tests.
func (s *Session) History() *History {
	return s.hist
}

// HandleKey processes one keystroke. Commands run to completion
// (including any awaited network round trip) before HandleKey returns.
func (s *Session) HandleKey(ctx context.Context, ev KeyEvent) {
	switch s.state {
	case stateAwaitingPassword:
		s.handlePasswordKey(ctx, ev)
	case statePolling:
		if ev.Key == KeyInterrupt {
			s.stopLive(true)
			s.prompt()
		}
	default:
		s.handleCommandKey(ctx, ev)
	}
}

func (s *Session) handleCommandKey(ctx context.Context, ev KeyEvent) {
	switch ev.Key {
	case KeyInterrupt:
		// Stopping a live session takes precedence over cancelling the
		// line; the line's own content is discarded either way.
		if s.stopLive(true) {
			s.prompt()
			return
		}
		s.editor.Cancel()
		s.printError("", "command canceled")
		s.prompt()
	case KeyEnter:
		s.submitLine(ctx)
	case KeyBackspace:
		s.editor.Backspace()
		s.surface.Echo(s.editor.Text())
	case KeyUp:
		if text, ok := s.hist.Up(); ok {
			s.editor.SetText(text)
			s.surface.Echo(text)
		}
	case KeyDown:
		if text, ok := s.hist.Down(); ok {
			s.editor.SetText(text)
			s.surface.Echo(text)
		}
	default:
		if ev.Rune != 0 {
			s.editor.Insert(ev.Rune)
			s.surface.Echo(s.editor.Text())
		}
	}
}

func (s *Session) handlePasswordKey(ctx context.Context, ev KeyEvent) {
	switch ev.Key {
	case KeyInterrupt:
		s.pwd.Cancel()
		s.printError(s.pending, "command canceled")
		s.pending = ""
		s.prompt()
	case KeyEnter:
		secret := s.pwd.Submit()
		if secret == "" {
			s.printError(s.pending, "no password entered")
			s.pending = ""
			s.prompt()
			return
		}
		s.runSudo(ctx, secret)
	case KeyBackspace:
		s.pwd.Backspace()
	default:
		// Captured, never echoed.
		if ev.Rune != 0 {
			s.pwd.Insert(ev.Rune)
		}
	}
}

func (s *Session) submitLine(ctx context.Context) {
	text := strings.TrimSpace(s.editor.Submit())
	if text == "" {
		s.prompt()
		return
	}

	s.hist.Append(text)
	s.saveHistory(ctx)

	fields := strings.Fields(text)
	if strings.ToLower(fields[0]) == "sudo" && len(fields) > 1 {
		s.pending = text
		s.state = stateAwaitingPassword
		s.pwd = NewLineEditor()
		s.surface.PasswordPrompt()
		return
	}

	s.Execute(ctx, text)

	// A freshly started polling session owns prompt recreation: its
	// stop path reopens the prompt.
	if s.state == statePolling {
		return
	}
	s.prompt()
}

// prompt opens a fresh editable line and resets the recall cursor.
func (s *Session) prompt() {
	s.editor = NewLineEditor()
	s.pwd = nil
	s.state = stateIdle
	s.hist.ResetCursor()
	s.surface.Prompt()
}

func (s *Session) saveHistory(ctx context.Context) {
	if s.histStore == nil || s.histKey == "" {
		return
	}
	if err := s.histStore.SaveHistory(ctx, s.histKey, s.hist.Entries()); err != nil {
		slog.Warn("Failed to save command history", "key", s.histKey, "error", err)
	}
}

// refreshBanner re-fetches the MOTD banner, swallowing errors.
func (s *Session) refreshBanner() {
	if s.motd == nil {
		return
	}
	lines, err := s.motd.Lines()
	if err != nil {
		return
	}
	if len(lines) == 0 {
		s.surface.Banner("")
		return
	}
	s.surface.Banner(formatMotd(lines, false) + "<br/>")
}

func (s *Session) printP(text string) {
	s.surface.Print("<p>" + text + "</p>")
}

// printError renders a user-facing error as "{context}: {message}".
func (s *Session) printError(scope, msg string) {
	if scope != "" {
		s.printP(scope + ": " + msg)
		return
	}
	s.printP(msg)
}
