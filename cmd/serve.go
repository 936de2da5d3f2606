package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metwiz/leads-cli/internal/classify"
	"github.com/metwiz/leads-cli/internal/compose"
	"github.com/metwiz/leads-cli/internal/followup"
	"github.com/metwiz/leads-cli/internal/model"
	"github.com/metwiz/leads-cli/internal/scorer"
	"github.com/metwiz/leads-cli/internal/session"
	"github.com/metwiz/leads-cli/internal/source"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard pages as a JSON API",
	Long: `Starts an HTTP server exposing the five dashboard pages (follow-ups,
lead intelligence, clustering, assistant, dataset) as JSON endpoints for the
presentation layer, plus a manual refresh trigger. The table is loaded once
at startup and only re-fetched on POST /refresh.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := buildSource(cfg)
	if err != nil {
		return err
	}
	opts, err := normalizeOptions(cfg)
	if err != nil {
		return err
	}

	sess := session.New(src, opts)
	if err := sess.Refresh(ctx); err != nil {
		// An empty sheet renders empty pages and recovers on a later refresh;
		// anything else means no page can render at all.
		if !eris.Is(err, source.ErrEmptyDataset) {
			return err
		}
		zap.L().Warn("serve: source is empty, starting with no leads", zap.Error(err))
	}

	d := &dashboard{sess: sess, window: followupWindow(cfg)}

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: d.router(cfg.Server.AllowedOrigins),
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		srv.Shutdown(ctx) //nolint:errcheck
	}()

	zap.L().Info("starting server",
		zap.Int("port", port),
		zap.String("session_id", sess.ID()),
	)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server listen")
	}

	return nil
}

// dashboard serves the page endpoints from one long-lived session.
type dashboard struct {
	sess   *session.Session
	window followup.Window
}

func (d *dashboard) router(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}))

	r.Get("/health", d.handleHealth)
	r.Post("/refresh", d.handleRefresh)
	r.Get("/leads", d.handleLeads)
	r.Get("/leads/{id}", d.handleLead)
	r.Get("/leads/{id}/assessment", d.handleAssessment)
	r.Post("/leads/{id}/message", d.handleMessage)
	r.Get("/followups", d.handleFollowups)
	r.Get("/clusters", d.handleClusters)

	return r
}

func (d *dashboard) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"session_id": d.sess.ID(),
		"leads":      len(d.sess.Leads()),
	})
}

func (d *dashboard) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := d.sess.Refresh(r.Context()); err != nil {
		if eris.Is(err, source.ErrEmptyDataset) {
			// The sheet was cleared upstream; drop the stale table so the
			// pages render the same empty state the refresh reports.
			d.sess.Clear()
			writeJSON(w, http.StatusOK, map[string]any{"leads": 0, "refreshed_at": time.Now().UTC()})
			return
		}
		status := http.StatusBadGateway
		if eris.Is(err, source.ErrNotFound) {
			status = http.StatusNotFound
		}
		zap.L().Error("refresh failed", zap.Error(err))
		writeError(w, status, "refresh failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"leads":        len(d.sess.Leads()),
		"refreshed_at": d.sess.LoadedAt().UTC(),
	})
}

// leadItem is a lead plus its picker label.
type leadItem struct {
	model.Lead
	Label string `json:"label"`
}

func (d *dashboard) handleLeads(w http.ResponseWriter, _ *http.Request) {
	leads := d.sess.Leads()
	items := make([]leadItem, len(leads))
	for i, l := range leads {
		items[i] = leadItem{Lead: l, Label: l.Label()}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leads":     items,
		"loaded_at": d.sess.LoadedAt().UTC(),
	})
}

func (d *dashboard) handleLead(w http.ResponseWriter, r *http.Request) {
	lead, ok := d.sess.Lead(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, leadItem{Lead: lead, Label: lead.Label()})
}

func (d *dashboard) handleAssessment(w http.ResponseWriter, r *http.Request) {
	lead, ok := d.sess.Lead(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"lead":       leadItem{Lead: lead, Label: lead.Label()},
		"assessment": scorer.Score(lead),
	})
}

func (d *dashboard) handleMessage(w http.ResponseWriter, r *http.Request) {
	lead, ok := d.sess.Lead(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}

	var req struct {
		Tone string `json:"tone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := compose.Message(lead, model.Tone(req.Tone))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tone")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lead_id": lead.ID,
		"tone":    req.Tone,
		"message": msg,
	})
}

func (d *dashboard) handleFollowups(w http.ResponseWriter, _ *http.Request) {
	leads := d.sess.Leads()
	pending := followup.Pending(leads, d.window)
	reminders := followup.CallReminders(leads)

	writeJSON(w, http.StatusOK, map[string]any{
		"pending":         pending,
		"total":           len(pending),
		"reminders":       reminders,
		"nothing_pending": followup.NothingPending(pending, reminders),
	})
}

func (d *dashboard) handleClusters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"clusters": classify.CountByMachineType(d.sess.Leads()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
