package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/modkeeper/mod-case-api/api"
	"github.com/modkeeper/mod-case-api/config"
	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/models"
)

// Stats exported for testing purposes
type Stats struct {
	DB databases.CaseDatabase
}

// CaseStatsHandler returns the aggregate case counts for a guild. Stats are
// advisory display data, so a store failure degrades to an all-zero result
// instead of an error.
func (s Stats) CaseStatsHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]

	zap.S().Debugf("guild_id: %v", guildID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := s.DB.Stats(ctx, guildID)
	if err != nil {
		zap.S().Errorw("failed to get case stats, returning zeroed counts",
			"guildId", guildID,
			"error", err)
		stats = models.NewCaseStats()
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ModeratorStatsHandler returns per-moderator case counts by type, optionally
// bounded to a created-at window via start/end query params (RFC 3339)
func (s Stats) ModeratorStatsHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]

	var start, end *time.Time
	if raw := r.URL.Query().Get("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			config.ErrorStatus("invalid start time", http.StatusBadRequest, w, err)
			return
		}
		start = &t
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			config.ErrorStatus("invalid end time", http.StatusBadRequest, w, err)
			return
		}
		end = &t
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	stats, err := s.DB.ModeratorStats(ctx, guildID, start, end)
	if err != nil {
		zap.S().Errorw("failed to get moderator stats, returning empty result",
			"guildId", guildID,
			"error", err)
		stats = models.ModeratorStats{}
	}

	b, err := json.Marshal(stats)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
