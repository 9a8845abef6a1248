package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/modkeeper/mod-case-api/api"
	"github.com/modkeeper/mod-case-api/caseid"
	"github.com/modkeeper/mod-case-api/config"
	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/models"
)

// createRetries bounds how often a create re-runs the allocate+insert pair
// after the unique index rejects a candidate that passed the pre-check
const createRetries = 3

const (
	defaultLimit = 10
	maxLimit     = 25
)

// Case exported for testing purposes
type Case struct {
	DB        databases.CaseDatabase
	UpdateDB  databases.CaseUpdateDatabase
	Allocator *caseid.Allocator
}

// CreateCaseRequest is the body accepted by the create endpoint
type CreateCaseRequest struct {
	GuildID      string          `json:"guildId"`
	Type         models.CaseType `json:"type"`
	UserID       string          `json:"userId"`
	ModeratorID  string          `json:"moderatorId"`
	Reason       string          `json:"reason"`
	Duration     int64           `json:"duration"` // milliseconds
	Evidence     []string        `json:"evidence"`
	Attachments  []string        `json:"attachments"`
	Notes        string          `json:"notes"`
	MassActionID string          `json:"massActionId"`
}

// CloseCaseRequest is the body accepted by the close endpoint
type CloseCaseRequest struct {
	ClosedBy    string `json:"closedBy"`
	CloseReason string `json:"closeReason"`
}

// UpdateCaseFieldRequest is the body accepted by the field update endpoint
type UpdateCaseFieldRequest struct {
	Field        models.UpdatableField `json:"field"`
	NewValue     string                `json:"newValue"`
	UpdatedBy    string                `json:"updatedBy"`
	UpdateReason string                `json:"updateReason"`
}

// CasesListResponse carries one page of cases plus the pagination totals
type CasesListResponse struct {
	Cases      []models.Case `json:"cases"`
	TotalCount int64         `json:"totalCount"`
	Page       int64         `json:"page"`
	Limit      int64         `json:"limit"`
}

// UpdateCaseFieldResponse echoes the previous value for audit display
type UpdateCaseFieldResponse struct {
	CaseID   string                `json:"caseId"`
	Field    models.UpdatableField `json:"field"`
	OldValue string                `json:"oldValue"`
	NewValue string                `json:"newValue"`
}

// caseErrorStatus maps the database sentinels onto HTTP statuses
func caseErrorStatus(message string, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, databases.ErrCaseNotFound), errors.Is(err, databases.ErrMassActionNotFound):
		config.ErrorStatus(message, http.StatusNotFound, w, err)
	case errors.Is(err, databases.ErrCaseClosed), errors.Is(err, databases.ErrMassActionCompleted):
		config.ErrorStatus(message, http.StatusConflict, w, err)
	case errors.Is(err, databases.ErrStoreUnavailable):
		config.ErrorStatus(message, http.StatusServiceUnavailable, w, err)
	default:
		config.ErrorStatus(message, http.StatusInternalServerError, w, err)
	}
}

// getLimit parses the limit query param, clamped to the page-size cap
func getLimit(r *http.Request) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultLimit
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		zap.S().Warnf("invalid limit %q, using default of %v", raw, defaultLimit)
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

// getPage parses the 1-based page query param
func getPage(r *http.Request) int64 {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1
	}
	page, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || page < 1 {
		zap.S().Warnf("invalid page %q, using default of 1", raw)
		return 1
	}
	return page
}

// CreateCaseHandler allocates a globally unique case ID pair and persists the
// new case. A duplicate-key rejection from the store means another writer won
// the race for the same candidate; the whole allocate+insert is retried.
func (c Case) CreateCaseHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}

	if req.GuildID == "" || req.UserID == "" || req.ModeratorID == "" {
		config.ErrorStatus("guildId, userId and moderatorId are required", http.StatusBadRequest, w, errors.New("missing required field"))
		return
	}
	if !req.Type.Valid() {
		config.ErrorStatus("invalid case type", http.StatusBadRequest, w, errors.New(string(req.Type)))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	var created *models.Case
	for attempt := 0; attempt < createRetries; attempt++ {
		alloc, err := c.Allocator.Allocate(ctx)
		if err != nil {
			caseErrorStatus("failed to allocate case ID", w, err)
			return
		}

		now := primitive.NewDateTimeFromTime(time.Now())
		cs := models.Case{
			ID:           alloc.InternalID,
			CaseID:       alloc.CaseID,
			GuildID:      req.GuildID,
			Type:         req.Type,
			UserID:       req.UserID,
			ModeratorID:  req.ModeratorID,
			Reason:       req.Reason,
			Evidence:     req.Evidence,
			Attachments:  req.Attachments,
			Notes:        req.Notes,
			Duration:     req.Duration,
			MassActionID: req.MassActionID,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if cs.Evidence == nil {
			cs.Evidence = []string{}
		}
		if cs.Attachments == nil {
			cs.Attachments = []string{}
		}
		if req.Duration > 0 {
			expires := primitive.NewDateTimeFromTime(now.Time().Add(time.Duration(req.Duration) * time.Millisecond))
			cs.ExpiresAt = &expires
		}

		err = c.DB.InsertOne(ctx, cs)
		if err == nil {
			created = &cs
			break
		}
		if mongo.IsDuplicateKeyError(err) {
			zap.S().Warnw("case ID lost insert race, reallocating",
				"caseId", alloc.CaseID,
				"attempt", attempt+1)
			continue
		}
		config.ErrorStatus("failed to create case", http.StatusServiceUnavailable, w, err)
		return
	}
	if created == nil {
		config.ErrorStatus("failed to create case", http.StatusServiceUnavailable, w, errors.New("duplicate case ID on every attempt"))
		return
	}

	b, err := json.Marshal(created)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write(b)
}

// CaseByIDHandler returns a case by display ID, searched across all guilds
func (c Case) CaseByIDHandler(w http.ResponseWriter, r *http.Request) {
	caseID := mux.Vars(r)["case_id"]

	zap.S().Debugf("case_id: %v", caseID)

	if !caseid.IsValidStored(caseID) {
		config.ErrorStatus("malformed case ID", http.StatusBadRequest, w, errors.New(caseID))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindByCaseID(ctx, caseID)
	if err != nil {
		caseErrorStatus("failed to get case by ID", w, err)
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

// CaseInGuildHandler returns a case by display ID only if it belongs to the guild
func (c Case) CaseInGuildHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	caseID := mux.Vars(r)["case_id"]

	zap.S().Debugf("guild_id: %v case_id: %v", guildID, caseID)

	if !caseid.IsValidStored(caseID) {
		config.ErrorStatus("malformed case ID", http.StatusBadRequest, w, errors.New(caseID))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	dbResp, err := c.DB.FindByCaseIDInGuild(ctx, guildID, caseID)
	if err != nil {
		caseErrorStatus("failed to get case in guild", w, err)
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

// CasesListHandler returns one page of a guild's cases with optional
// user/moderator/type/status filters
func (c Case) CasesListHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	query := r.URL.Query()

	filter := databases.CaseFilter{
		GuildID:     guildID,
		UserID:      query.Get("user_id"),
		ModeratorID: query.Get("moderator_id"),
		Type:        models.CaseType(query.Get("type")),
		Status:      models.CaseStatus(query.Get("status")),
	}
	if filter.Type != "" && !filter.Type.Valid() {
		config.ErrorStatus("invalid case type filter", http.StatusBadRequest, w, errors.New(string(filter.Type)))
		return
	}
	if filter.Status != "" && !filter.Status.Valid() {
		config.ErrorStatus("invalid status filter", http.StatusBadRequest, w, errors.New(string(filter.Status)))
		return
	}

	limit := getLimit(r)
	page := getPage(r)
	offset := (page - 1) * limit

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, total, err := c.DB.List(ctx, filter, limit, offset)
	if err != nil {
		caseErrorStatus("failed to list cases", w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	b, err := json.Marshal(CasesListResponse{
		Cases:      cases,
		TotalCount: total,
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// SearchCasesHandler resolves a free-form query: an exact display ID when the
// query is ID-shaped, otherwise a user ID or reason-text match
func (c Case) SearchCasesHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	query := r.URL.Query().Get("q")

	if query == "" {
		config.ErrorStatus("query is required", http.StatusBadRequest, w, errors.New("empty q parameter"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.DB.Search(ctx, guildID, query, getLimit(r))
	if err != nil {
		caseErrorStatus("failed to search cases", w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	b, err := json.Marshal(cases)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// RecentCasesHandler returns a guild's newest cases
func (c Case) RecentCasesHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.DB.Recent(ctx, guildID, getLimit(r))
	if err != nil {
		caseErrorStatus("failed to get recent cases", w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	b, err := json.Marshal(cases)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// UserCasesHandler returns the cases recorded against one user in a guild
func (c Case) UserCasesHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	userID := mux.Vars(r)["user_id"]
	query := r.URL.Query()

	opts := databases.UserCaseOptions{
		Type:       models.CaseType(query.Get("type")),
		ActiveOnly: query.Get("active_only") == "true",
		Limit:      getLimit(r),
	}
	if opts.Type != "" && !opts.Type.Valid() {
		config.ErrorStatus("invalid case type filter", http.StatusBadRequest, w, errors.New(string(opts.Type)))
		return
	}
	opts.Offset = (getPage(r) - 1) * opts.Limit

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.DB.UserCases(ctx, guildID, userID, opts)
	if err != nil {
		caseErrorStatus("failed to get user cases", w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	b, err := json.Marshal(cases)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// ActivePunishmentsHandler returns a user's punishments that are still in force
func (c Case) ActivePunishmentsHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	userID := mux.Vars(r)["user_id"]

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cases, err := c.DB.ActivePunishments(ctx, guildID, userID)
	if err != nil {
		caseErrorStatus("failed to get active punishments", w, err)
		return
	}
	if len(cases) == 0 {
		cases = []models.Case{}
	}

	b, err := json.Marshal(cases)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CloseCaseHandler closes a case. Closing is one-way: a second close returns
// a conflict, never a silent success.
func (c Case) CloseCaseHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	caseID := mux.Vars(r)["case_id"]

	if !caseid.IsValidStored(caseID) {
		config.ErrorStatus("malformed case ID", http.StatusBadRequest, w, errors.New(caseID))
		return
	}

	var req CloseCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if req.ClosedBy == "" {
		config.ErrorStatus("closedBy is required", http.StatusBadRequest, w, errors.New("missing closedBy"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.DB.FindByCaseIDInGuild(ctx, guildID, caseID)
	if err != nil {
		caseErrorStatus("failed to get case in guild", w, err)
		return
	}

	if err := c.DB.Close(ctx, cs.ID, req.ClosedBy, req.CloseReason); err != nil {
		caseErrorStatus("failed to close case", w, err)
		return
	}

	dbResp, err := c.DB.FindByCaseIDInGuild(ctx, guildID, caseID)
	if err != nil {
		caseErrorStatus("failed to get case in guild", w, err)
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

// UpdateCaseFieldHandler edits one field of an open case and records the edit
// in the audit log
func (c Case) UpdateCaseFieldHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	caseID := mux.Vars(r)["case_id"]

	if !caseid.IsValidStored(caseID) {
		config.ErrorStatus("malformed case ID", http.StatusBadRequest, w, errors.New(caseID))
		return
	}

	var req UpdateCaseFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode request body", http.StatusBadRequest, w, err)
		return
	}
	if !req.Field.Valid() {
		config.ErrorStatus("field cannot be updated", http.StatusBadRequest, w, errors.New(string(req.Field)))
		return
	}
	if req.UpdatedBy == "" {
		config.ErrorStatus("updatedBy is required", http.StatusBadRequest, w, errors.New("missing updatedBy"))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.DB.FindByCaseIDInGuild(ctx, guildID, caseID)
	if err != nil {
		caseErrorStatus("failed to get case in guild", w, err)
		return
	}

	oldValue := cs.Reason
	if req.Field == models.FieldNotes {
		oldValue = cs.Notes
	}

	if err := c.DB.UpdateField(ctx, cs.ID, req.Field, req.NewValue); err != nil {
		caseErrorStatus("failed to update case", w, err)
		return
	}

	// the audit row is best-effort: the edit already happened
	audit := models.CaseUpdate{
		ID:        primitive.NewObjectID().Hex(),
		CaseID:    cs.ID,
		UpdatedBy: req.UpdatedBy,
		Field:     req.Field,
		OldValue:  oldValue,
		NewValue:  req.NewValue,
		Reason:    req.UpdateReason,
		CreatedAt: primitive.NewDateTimeFromTime(time.Now()),
	}
	if err := c.UpdateDB.InsertOne(ctx, audit); err != nil {
		zap.S().Warnw("failed to record case update audit row",
			"caseId", cs.CaseID,
			"error", err)
	}

	b, err := json.Marshal(UpdateCaseFieldResponse{
		CaseID:   cs.CaseID,
		Field:    req.Field,
		OldValue: oldValue,
		NewValue: req.NewValue,
	})
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

// CaseUpdatesHandler returns the edit history for a case
func (c Case) CaseUpdatesHandler(w http.ResponseWriter, r *http.Request) {
	guildID := mux.Vars(r)["guild_id"]
	caseID := mux.Vars(r)["case_id"]

	if !caseid.IsValidStored(caseID) {
		config.ErrorStatus("malformed case ID", http.StatusBadRequest, w, errors.New(caseID))
		return
	}

	ctx, cancel := api.WithQueryTimeout(r.Context())
	defer cancel()

	cs, err := c.DB.FindByCaseIDInGuild(ctx, guildID, caseID)
	if err != nil {
		caseErrorStatus("failed to get case in guild", w, err)
		return
	}

	updates, err := c.UpdateDB.FindByCase(ctx, cs.ID)
	if err != nil {
		caseErrorStatus("failed to get case updates", w, err)
		return
	}
	if len(updates) == 0 {
		updates = []models.CaseUpdate{}
	}

	b, err := json.Marshal(updates)
	if err != nil {
		config.ErrorStatus("failed to marshal response", http.StatusInternalServerError, w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
