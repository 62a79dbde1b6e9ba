package shell

import (
	"context"
	"sync"
	"time"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// recordSurface captures engine events for assertions.
type recordSurface struct {
	mu          sync.Mutex
	prints      []string
	echoes      []string
	prompts     int
	passwords   int
	clears      int
	opens       [][2]string // url, target
	banners     []string
	liveStarts  []string
	liveRenders map[string][]string
	liveNotes   map[string][]string
}

func newRecordSurface() *recordSurface {
	return &recordSurface{
		liveRenders: make(map[string][]string),
		liveNotes:   make(map[string][]string),
	}
}

func (r *recordSurface) Print(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prints = append(r.prints, html)
}

func (r *recordSurface) Echo(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.echoes = append(r.echoes, text)
}

func (r *recordSurface) Prompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts++
}

func (r *recordSurface) PasswordPrompt() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.passwords++
}

func (r *recordSurface) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clears++
}

func (r *recordSurface) OpenURL(url, target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opens = append(r.opens, [2]string{url, target})
}

func (r *recordSurface) Banner(html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.banners = append(r.banners, html)
}

func (r *recordSurface) LiveStart(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.liveStarts = append(r.liveStarts, id)
}

func (r *recordSurface) LiveRender(id, html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.liveRenders[id] = append(r.liveRenders[id], html)
}

func (r *recordSurface) LiveNote(id, html string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.liveNotes[id] = append(r.liveNotes[id], html)
}

func (r *recordSurface) lastPrint() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.prints) == 0 {
		return ""
	}
	return r.prints[len(r.prints)-1]
}

func (r *recordSurface) promptCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prompts
}

type fakeAuthorizer struct {
	mu       sync.Mutex
	decision *domain.SudoDecision
	err      error
	calls    []struct{ password, arg string }
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, password, arg string) (*domain.SudoDecision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, struct{ password, arg string }{password, arg})
	if f.err != nil {
		return nil, f.err
	}
	return f.decision, nil
}

type fakeStats struct {
	mu    sync.Mutex
	info  *domain.SysInfo
	err   error
	calls int
}

func (f *fakeStats) Sample(ctx context.Context) (*domain.SysInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

type fakeMotd struct {
	lines []string
	err   error
}

func (f *fakeMotd) Lines() ([]string, error) {
	return f.lines, f.err
}

type fakeGeo struct {
	ipInfo  *domain.IPInfo
	located string
	place   *domain.Place
	reverse string
	weather *domain.Weather
	err     error
}

func (f *fakeGeo) IPInfo(ctx context.Context) (*domain.IPInfo, error) {
	return f.ipInfo, f.err
}

func (f *fakeGeo) Locate(ctx context.Context, ip string) (string, error) {
	return f.located, f.err
}

func (f *fakeGeo) Geocode(ctx context.Context, name string) (*domain.Place, error) {
	if f.place == nil {
		return nil, f.err
	}
	return f.place, nil
}

func (f *fakeGeo) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	return f.reverse, f.err
}

func (f *fakeGeo) CurrentWeather(ctx context.Context, lat, lon float64) (*domain.Weather, error) {
	if f.weather == nil {
		return nil, f.err
	}
	return f.weather, nil
}

type memHistoryStore struct {
	mu   sync.Mutex
	data map[string][]string
}

func newMemHistoryStore() *memHistoryStore {
	return &memHistoryStore{data: make(map[string][]string)}
}

func (m *memHistoryStore) LoadHistory(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.data[key]...), nil
}

func (m *memHistoryStore) SaveHistory(ctx context.Context, key string, entries []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]string(nil), entries...)
	return nil
}

func testLinks() *Links {
	return NewLinks(map[string]domain.LinkSpec{
		"gh": {Name: "GitHub", URL: "https://github.com/kev1nl1u", Redirect: true},
		"li": {Name: "LinkedIn", URL: "https://linkedin.com/in/liuck", Alias: "linkedin"},
		"unipd": {Name: "University of Padua", URL: "https://www.unipd.it/", Subcommands: map[string]domain.LinkTarget{
			"site":   {Name: "UniPD website", URL: "https://www.unipd.it/"},
			"moodle": {Name: "UniPD Moodle", URL: "https://elearning.unipd.it/"},
		}},
		"fdb":    {Name: "FermiDB", URL: "https://fermidb.lkev.in/", Hidden: true, SudoOnly: true},
		"ghost":  {Name: "Ghost", URL: "https://ghost.lkev.in/", Hidden: true},
	})
}

// testSession builds a started session with recording collaborators.
func testSession(opts Options) (*Session, *recordSurface) {
	surface := newRecordSurface()
	opts.Surface = surface
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Links == nil {
		opts.Links = testLinks()
	}
	if opts.Motd == nil {
		opts.Motd = &fakeMotd{}
	}
	if opts.Stats == nil {
		opts.Stats = &fakeStats{info: &domain.SysInfo{Success: true}}
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = time.Hour // ticks never fire in tests
	}

	s := NewSession(opts)
	s.Start(context.Background())
	return s, surface
}

// typeLine types text and presses Enter.
func typeLine(s *Session, text string) {
	ctx := context.Background()
	for _, r := range text {
		s.HandleKey(ctx, KeyEvent{Rune: r})
	}
	s.HandleKey(ctx, KeyEvent{Key: KeyEnter})
}
