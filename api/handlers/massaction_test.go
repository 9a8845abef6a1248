package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/databases/mocks"
	"github.com/modkeeper/mod-case-api/models"
)

func TestCreateMassActionHandlerSuccess(t *testing.T) {
	actionDB := &mocks.MassActionDatabase{}
	actionDB.On("InsertOne", mock.Anything, mock.MatchedBy(func(ma models.MassAction) bool {
		return ma.GuildID == "guild-1" &&
			ma.Type == models.CaseTypeMassban &&
			ma.Status == "pending" &&
			ma.TargetCount == 25 &&
			ma.ID != ""
	})).Return(nil)
	m := MassAction{DB: actionDB}

	body, _ := json.Marshal(CreateMassActionRequest{
		GuildID:     "guild-1",
		Type:        models.CaseTypeMassban,
		ModeratorID: "mod-1",
		Reason:      "raid cleanup",
		TargetCount: 25,
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/mass-action", bytes.NewReader(body))
	w := httptest.NewRecorder()

	m.CreateMassActionHandler(w, r)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.MassAction
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "pending", got.Status)
	assert.NotEmpty(t, got.ID)
}

func TestCreateMassActionHandlerRejectsSingleTargetType(t *testing.T) {
	m := MassAction{DB: &mocks.MassActionDatabase{}}

	body, _ := json.Marshal(CreateMassActionRequest{
		GuildID:     "guild-1",
		Type:        models.CaseTypeBan,
		ModeratorID: "mod-1",
		TargetCount: 25,
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/mass-action", bytes.NewReader(body))
	w := httptest.NewRecorder()

	m.CreateMassActionHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMassActionHandlerRejectsZeroTargets(t *testing.T) {
	m := MassAction{DB: &mocks.MassActionDatabase{}}

	body, _ := json.Marshal(CreateMassActionRequest{
		GuildID:     "guild-1",
		Type:        models.CaseTypeMasskick,
		ModeratorID: "mod-1",
		TargetCount: 0,
	})
	r := httptest.NewRequest(http.MethodPost, "/api/v1/mass-action", bytes.NewReader(body))
	w := httptest.NewRecorder()

	m.CreateMassActionHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMassActionByIDHandlerNotFound(t *testing.T) {
	actionDB := &mocks.MassActionDatabase{}
	actionDB.On("FindByID", mock.Anything, "action-1").Return(nil, databases.ErrMassActionNotFound)
	m := MassAction{DB: actionDB}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/mass-action/action-1", nil)
	r = mux.SetURLVars(r, map[string]string{"action_id": "action-1"})
	w := httptest.NewRecorder()

	m.MassActionByIDHandler(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMassActionsByGuildHandlerEmpty(t *testing.T) {
	actionDB := &mocks.MassActionDatabase{}
	actionDB.On("FindByGuild", mock.Anything, "guild-1", int64(defaultLimit)).Return([]models.MassAction{}, nil)
	m := MassAction{DB: actionDB}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/guild/guild-1/mass-actions", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	m.MassActionsByGuildHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestCompleteMassActionHandlerAlreadyCompleted(t *testing.T) {
	actionDB := &mocks.MassActionDatabase{}
	actionDB.On("Complete", mock.Anything, "action-1", 20, 5).Return(databases.ErrMassActionCompleted)
	m := MassAction{DB: actionDB}

	body, _ := json.Marshal(CompleteMassActionRequest{SuccessCount: 20, FailureCount: 5})
	r := httptest.NewRequest(http.MethodPut, "/api/v1/mass-action/action-1/complete", bytes.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"action_id": "action-1"})
	w := httptest.NewRecorder()

	m.CompleteMassActionHandler(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCompleteMassActionHandler(t *testing.T) {
	actionDB := &mocks.MassActionDatabase{}
	actionDB.On("Complete", mock.Anything, "action-1", 20, 5).Return(nil)
	actionDB.On("FindByID", mock.Anything, "action-1").Return(&models.MassAction{
		ID:           "action-1",
		Status:       "completed",
		SuccessCount: 20,
		FailureCount: 5,
	}, nil)
	m := MassAction{DB: actionDB}

	body, _ := json.Marshal(CompleteMassActionRequest{SuccessCount: 20, FailureCount: 5})
	r := httptest.NewRequest(http.MethodPut, "/api/v1/mass-action/action-1/complete", bytes.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"action_id": "action-1"})
	w := httptest.NewRecorder()

	m.CompleteMassActionHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.MassAction
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, 20, got.SuccessCount)
}
