package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/modkeeper/mod-case-api/api"
	"github.com/modkeeper/mod-case-api/config"
	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/models"
)

// MassAction exported for testing purposes
type MassAction struct {
	DB databases.MassActionDatabase
}

// CreateMassActionRequest is the body accepted by the mass action create endpoint
type CreateMassActionRequest struct {
	GuildID     string          `json:"guildId"`
	Type        models.CaseType `json:"type"`
	ModeratorID string          `json:"moderatorId"`
	Reason      string          `json:"reason"`
	TargetCount int             `json:"targetCount"`
	Duration    int64           `json:"duration"` // milliseconds
}

// CompleteMassActionRequest is the body accepted by the completion endpoint
type CompleteMassActionRequest struct {
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

// CreateMassActionHandler records the start of a bulk moderation run
func (m MassAction) CreateMassActionHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMassActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.GuildID == "" || req.ModeratorID == "" {
		config.ErrorStatus("guildId and moderatorId are required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}
	if !req.Type.Valid() || !strings.HasPrefix(string(req.Type), "mass") {
		config.ErrorStatus("invalid mass action type", http.StatusBadRequest, w, errors.New(string(req.Type)))
		return
	}
	if req.TargetCount < 1 {
		config.ErrorStatus("targetCount must be positive", http.StatusBadRequest, w, errors.New("bad targetCount"))
		return
	}

	ma := models.MassAction{
		ID:          uuid.NewString(),
		GuildID:     req.GuildID,
		Type:        req.Type,
		ModeratorID: req.ModeratorID,
		Reason:      req.Reason,
		TargetCount: req.TargetCount,
		Duration:    req.Duration,
		Status:      "pending",
		CreatedAt:   primitive.NewDateTimeFromTime(time.Now()),
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := m.DB.InsertOne(ctx, ma); err != nil {
		caseErrorStatus("failed to create mass action", w, err)
		return
	}

	b, err := json.Marshal(ma)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// MassActionByIDHandler returns a mass action by ID
func (m MassAction) MassActionByIDHandler(w http.ResponseWriter, r *http.Request) {
	actionID := mux.Vars(r)["action_id"]

	zap.S().Debugf("action_id: %v", actionID)

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := m.DB.FindByID(ctx, actionID)
	if err != nil {
		caseErrorStatus("failed to get mass action by ID", w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// MassActionsByGuildHandler returns a guild's mass actions, newest first
func (m MassAction) MassActionsByGuildHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	actions, err := m.DB.FindByGuild(ctx, guildID, getLimit(r))
	if err != nil {
		caseErrorStatus("failed to get mass actions", w, err)
		return
	}
	if len(actions) == 0 {
		actions = []models.MassAction{}
	}

	b, err := json.Marshal(actions)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CompleteMassActionHandler finalizes a mass action with its outcome counts
func (m MassAction) CompleteMassActionHandler(w http.ResponseWriter, r *http.Request) {
	actionID := mux.Vars(r)["action_id"]

	var req CompleteMassActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	if err := m.DB.Complete(ctx, actionID, req.SuccessCount, req.FailureCount); err != nil {
		caseErrorStatus("failed to complete mass action", w, err)
		return
	}

	dbResp, err := m.DB.FindByID(ctx, actionID)
	if err != nil {
		caseErrorStatus("failed to get mass action by ID", w, err)
		return
	}

	b, err := json.Marshal(dbResp)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
