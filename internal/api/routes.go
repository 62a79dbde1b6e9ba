package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/kev1nl1u/lkev.in/internal/domain"
)

// GetConfig serves the site configuration: the link registry, weather
// code descriptions, date format hints, and terminal settings. This is
// the frontend's sole configuration source.
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, h.site)
}

// GetMotd serves the current message-of-the-day lines.
func (h *Handler) GetMotd(w http.ResponseWriter, r *http.Request) {
	lines, err := h.motd.Lines()
	if err != nil {
		slog.Error("Failed to read MOTD", "error", err)
		JSON(w, http.StatusOK, map[string]interface{}{"success": false, "motd": []string{}})
		return
	}
	if lines == nil {
		lines = []string{}
	}
	JSON(w, http.StatusOK, map[string]interface{}{"success": true, "motd": lines})
}

type sudoRequest struct {
	Password string `json:"password"`
	Arg      string `json:"arg"`
}

// PostSudo validates the secret and classifies the privileged argument,
// returning the authorizer's structured decision.
func (h *Handler) PostSudo(w http.ResponseWriter, r *http.Request) {
	var req sudoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	decision, err := h.auth.Authorize(r.Context(), req.Password, req.Arg)
	if err != nil {
		slog.Error("Sudo authorization failed", "error", err)
		Error(w, http.StatusInternalServerError, "authorization failed")
		return
	}
	JSON(w, http.StatusOK, decision)
}

type saveLoginRequest struct {
	UserAgent string `json:"user_agent"`
	IPAddress string `json:"ip_address"`
	Location  string `json:"location"`
}

// PostSaveLogin overwrites the last-login record. Clients treat this as
// fire-and-forget; the reply only exists for diagnostics.
func (h *Handler) PostSaveLogin(w http.ResponseWriter, r *http.Request) {
	var req saveLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		JSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "invalid request body"})
		return
	}

	rec := &domain.LoginRecord{
		RequestDate: time.Now(),
		UserAgent:   req.UserAgent,
		IP:          req.IPAddress,
		Location:    req.Location,
	}
	if err := h.repo.SaveLogin(r.Context(), rec); err != nil {
		slog.Error("Failed to save login", "error", err)
		JSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// GetLastLogin serves the previously saved login record for the
// terminal header.
func (h *Handler) GetLastLogin(w http.ResponseWriter, r *http.Request) {
	rec, err := h.repo.LastLogin(r.Context())
	if err != nil {
		slog.Error("Failed to read last login", "error", err)
		JSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": err.Error()})
		return
	}
	if rec.IsZero() {
		JSON(w, http.StatusOK, map[string]interface{}{"success": false, "error": "No data found"})
		return
	}
	JSON(w, http.StatusOK, map[string]interface{}{"success": true, "data": rec})
}

// GetSysInfo serves one server statistics sample. Missing fields are
// permitted; consumers render placeholders.
func (h *Handler) GetSysInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.stats.Sample(r.Context())
	if err != nil {
		slog.Error("Failed to sample system info", "error", err)
		JSON(w, http.StatusOK, map[string]interface{}{"success": false})
		return
	}
	JSON(w, http.StatusOK, info)
}
