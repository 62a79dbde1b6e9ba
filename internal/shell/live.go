package shell

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// liveSession is the at-most-one recurring stats refresh. It owns a
// ticker goroutine; cancelling the context stops it. Results of a fetch
// that completes after cancellation are discarded, not rendered.
type liveSession struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
}

// startLive begins a polling session, silently replacing any running
// one, and renders the first sample immediately.
func (s *Session) startLive(ctx context.Context) {
	s.stopLive(false)

	lctx, cancel := context.WithCancel(ctx)
	live := &liveSession{
		id:     "server-info-" + uuid.NewString(),
		ctx:    lctx,
		cancel: cancel,
	}
	s.live = live
	s.state = statePolling

	s.surface.LiveStart(live.id)
	s.renderLive(live)
	s.surface.LiveNote(live.id, fmt.Sprintf(
		"<p>Live updates every %ds. Use <code>CTRL+C</code> to stop.</p>",
		int(s.pollInterval/time.Second)))

	go func() {
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-live.ctx.Done():
				return
			case <-ticker.C:
				s.renderLive(live)
			}
		}
	}()
}

// stopLive cancels the running session, if any. With notice it appends
// the stopped message to the session's own container.
func (s *Session) stopLive(notice bool) bool {
	if s.live == nil {
		return false
	}
	s.live.cancel()
	if notice {
		s.surface.LiveNote(s.live.id, "<p>Live updates stopped (Ctrl+C).</p>")
	}
	s.live = nil
	if s.state == statePolling {
		s.state = stateIdle
	}
	return true
}

func (s *Session) renderLive(live *liveSession) {
	info, err := s.stats.Sample(live.ctx)
	if live.ctx.Err() != nil {
		// Session stopped while the sample was in flight.
		return
	}
	if err != nil {
		s.surface.LiveRender(live.id, "<p>Unable to fetch server info.</p>")
		return
	}
	s.surface.LiveRender(live.id, renderSysInfo(info))
}

// renderSysInfo renders one sample, substituting "N/A" for any section
// the sampler could not collect.
func renderSysInfo(info *domain.SysInfo) string {
	cpu := "N/A"
	if info.CPU != nil {
		cores := info.CPU.Cores
		if cores == 0 {
			cores = info.CPU.PhysicalCores
		}
		cpu = strings.TrimSpace(html.EscapeString(info.CPU.Manufacturer + " " + info.CPU.Brand))
		if cpu == "" {
			cpu = "N/A"
		} else if cores > 0 {
			cpu += fmt.Sprintf(" (%d cores)", cores)
		}
	}

	load := "N/A"
	var perCore []string
	if info.Load != nil {
		load = fmt.Sprintf("%.1f%%", info.Load.CurrentLoad)
		for i, c := range info.Load.CPUs {
			perCore = append(perCore, fmt.Sprintf("Core %d: %.1f%%", i, c.Load))
		}
	}

	memory := "N/A"
	if info.Memory != nil && info.Memory.Total > 0 {
		const gib = 1 << 30
		memory = fmt.Sprintf("%d%% used (%.2f GB / %.2f GB)",
			int(float64(info.Memory.Used)/float64(info.Memory.Total)*100),
			float64(info.Memory.Used)/gib,
			float64(info.Memory.Total)/gib)
	}

	temp := "N/A"
	if info.Temp != nil {
		temp = fmt.Sprintf("%.0f °C", info.Temp.Main)
	}

	when := time.UnixMilli(info.Timestamp).Format("2 Jan 2006 15:04:05")

	return fmt.Sprintf(
		"<p><strong>Server System Information (as of %s):</strong><br/>"+
			"CPU: %s<br/>Load: %s<br/>Memory: %s<br/>Uptime: %dh %dm<br/>Temperature: %s<br/>"+
			"<div>%s</div></p>",
		when, cpu, load, memory,
		info.Uptime/3600, info.Uptime%3600/60, temp,
		strings.Join(perCore, "<br/>"))
}
