package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/raphaelgruber/aisite-go/internal/chat"
	"github.com/raphaelgruber/aisite-go/internal/client"
	"github.com/raphaelgruber/aisite-go/internal/components"
	"github.com/raphaelgruber/aisite-go/internal/metrics"
	"github.com/raphaelgruber/aisite-go/internal/models"
	g "maragu.dev/gomponents"
)

// maxFormBytes caps contact form bodies.
const maxFormBytes = 64 << 10

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

type contactResponse struct {
	Status string      `json:"status"`
	Title  string      `json:"title"`
	Ack    *client.Ack `json:"ack,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

// handlePage renders the landing page. An unknown group falls back to the
// default one so old links keep working.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	group, err := models.ParseGroupKey(r.URL.Query().Get("group"))
	if err != nil || r.URL.Query().Get("group") == "" {
		group = s.defaultGroup
	}
	s.renderPage(w, r, http.StatusOK, group, client.Lead{}, nil)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, group models.GroupKey, lead client.Lead, notice *components.Notice) {
	start := time.Now()

	snap, err := s.firstSnapshot(group)
	if err != nil {
		s.metrics.RecordFailure(metrics.OpPageRender)
		s.logger.Error("render page", "group", group, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	page := components.LandingPage(components.LandingData{
		Content:     s.content,
		Groups:      s.groups.Groups(),
		Chat:        snap,
		Lead:        lead,
		Notice:      notice,
		Search:      s.search.Search(searchQuery(r)),
		SearchPages: s.search.Pages(),
	})
	writeHTML(w, status, page)
	s.metrics.RecordTiming(metrics.OpPageRender, time.Since(start))
}

// firstSnapshot mounts a throwaway view to capture the state a visitor sees
// on arrival.
func (s *Server) firstSnapshot(group models.GroupKey) (chat.Snapshot, error) {
	view := chat.NewView(s.timelines, s.chatCfg)
	if err := view.Mount(group); err != nil {
		return chat.Snapshot{}, err
	}
	defer view.Unmount()
	return view.Snapshot(), nil
}

// handleSnapshot returns the first snapshot of a group as JSON.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	group, err := models.ParseGroupKey(r.URL.Query().Get("group"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap, err := s.firstSnapshot(group)
	if err != nil {
		s.logger.Error("snapshot", "group", group, "error", err)
		writeError(w, http.StatusInternalServerError, "could not build snapshot")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleContact forwards a lead to the lead API. Browsers get the page back
// with a notice above the form; API callers get JSON.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	wantsJSON := acceptsJSON(r)

	lead, err := decodeLead(w, r)
	if err != nil {
		s.metrics.RecordFailure(metrics.OpLeadSubmit)
		if wantsJSON {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		s.renderPage(w, r, http.StatusBadRequest, s.defaultGroup, client.Lead{}, &components.Notice{
			Kind:  components.NoticeError,
			Title: "Invalid request",
		})
		return
	}
	lead.Source = "website"

	ack, err := s.leads.SubmitLead(r.Context(), lead)
	if err != nil {
		s.metrics.RecordFailure(metrics.OpLeadSubmit)
		status, notice := contactFailure(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("lead submission failed", "error", err)
		} else {
			s.logger.Info("lead rejected", "error", err)
		}
		if wantsJSON {
			writeJSON(w, status, errorResponse{Error: notice.Title, Detail: notice.Message})
			return
		}
		s.renderPage(w, r, status, s.defaultGroup, lead, &notice)
		return
	}

	s.metrics.RecordTiming(metrics.OpLeadSubmit, time.Since(start))
	if wantsJSON {
		writeJSON(w, http.StatusOK, contactResponse{Status: "ok", Title: "Message sent!", Ack: ack})
		return
	}
	s.renderPage(w, r, http.StatusOK, s.defaultGroup, client.Lead{}, &components.Notice{
		Kind:    components.NoticeSuccess,
		Title:   "Message sent!",
		Message: "Thanks for reaching out. We'll get back to you shortly.",
	})
}

// contactFailure maps a submit error to a status and the notice shown to the
// visitor. Missing fields and delivery failures read differently.
func contactFailure(err error) (int, components.Notice) {
	if errors.Is(err, client.ErrMissingField) {
		fields := strings.TrimPrefix(err.Error(), client.ErrMissingField.Error()+": ")
		return http.StatusUnprocessableEntity, components.Notice{
			Kind:    components.NoticeWarning,
			Title:   "Missing required field",
			Message: "Please fill in: " + fields,
		}
	}
	return http.StatusBadGateway, components.Notice{
		Kind:    components.NoticeError,
		Title:   "Could not send your message",
		Message: "Something went wrong on our side. Please try again in a moment.",
	}
}

func decodeLead(w http.ResponseWriter, r *http.Request) (client.Lead, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	var lead client.Lead
	if isJSONBody(r) {
		err := json.NewDecoder(r.Body).Decode(&lead)
		return lead, err
	}

	if err := r.ParseForm(); err != nil {
		return lead, err
	}
	f := r.PostForm
	lead = client.Lead{
		FormType: client.FormMode(f.Get("formType")),
		Service:  client.ServiceID(f.Get("service")),
		Name:     strings.TrimSpace(f.Get("name")),
		Email:    strings.TrimSpace(f.Get("email")),
		Message:  strings.TrimSpace(f.Get("message")),
		Phone:    strings.TrimSpace(f.Get("phone")),
		Company:  strings.TrimSpace(f.Get("company")),
		Timezone: f.Get("timezone"),
		Date:     f.Get("date"),
		Time:     f.Get("time"),
	}
	if lead.FormType != client.ModeAppointment {
		lead.Date, lead.Time = "", ""
	}
	return lead, nil
}

func isJSONBody(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && ct == "application/json"
}

func acceptsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeHTML(w http.ResponseWriter, status int, page g.Node) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = page.Render(w)
}
