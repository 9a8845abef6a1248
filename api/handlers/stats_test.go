package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/databases/mocks"
	"github.com/modkeeper/mod-case-api/models"
)

func TestCaseStatsHandlerSuccess(t *testing.T) {
	stats := models.NewCaseStats()
	stats.TotalCases = 12
	stats.ActiveCases = 5
	stats.ClosedCases = 7
	stats.CasesByType[models.CaseTypeBan] = 3

	caseDB := &mocks.CaseDatabase{}
	caseDB.On("Stats", mock.Anything, "guild-1").Return(stats, nil)
	s := Stats{DB: caseDB}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/guild/guild-1/stats", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	s.CaseStatsHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.CaseStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(12), got.TotalCases)
	assert.Equal(t, int64(3), got.CasesByType[models.CaseTypeBan])
	assert.Len(t, got.CasesByType, len(models.AllCaseTypes))
}

func TestCaseStatsHandlerDegradesToZeroOnStoreFailure(t *testing.T) {
	caseDB := &mocks.CaseDatabase{}
	caseDB.On("Stats", mock.Anything, "guild-1").Return(models.CaseStats{}, databases.ErrStoreUnavailable)
	s := Stats{DB: caseDB}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/guild/guild-1/stats", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	s.CaseStatsHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.CaseStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(0), got.TotalCases)
	assert.Len(t, got.CasesByType, len(models.AllCaseTypes))
	for _, ct := range models.AllCaseTypes {
		assert.Equal(t, int64(0), got.CasesByType[ct])
	}
}

func TestModeratorStatsHandlerSuccess(t *testing.T) {
	caseDB := &mocks.CaseDatabase{}
	caseDB.On("ModeratorStats", mock.Anything, "guild-1", (*time.Time)(nil), (*time.Time)(nil)).
		Return(models.ModeratorStats{
			"mod-1": {models.CaseTypeBan: 4, models.CaseTypeWarn: 2},
		}, nil)
	s := Stats{DB: caseDB}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/guild/guild-1/stats/moderators", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	s.ModeratorStatsHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.ModeratorStats
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(4), got["mod-1"][models.CaseTypeBan])
}

func TestModeratorStatsHandlerWindow(t *testing.T) {
	caseDB := &mocks.CaseDatabase{}
	caseDB.On("ModeratorStats", mock.Anything, "guild-1", mock.MatchedBy(func(start *time.Time) bool {
		return start != nil && start.Year() == 2024
	}), mock.MatchedBy(func(end *time.Time) bool {
		return end != nil && end.Month() == time.February
	})).Return(models.ModeratorStats{}, nil)
	s := Stats{DB: caseDB}

	r := httptest.NewRequest(http.MethodGet,
		"/api/v1/guild/guild-1/stats/moderators?start=2024-01-01T00:00:00Z&end=2024-02-01T00:00:00Z", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	s.ModeratorStatsHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestModeratorStatsHandlerBadWindow(t *testing.T) {
	s := Stats{DB: &mocks.CaseDatabase{}}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/guild/guild-1/stats/moderators?start=yesterday", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	s.ModeratorStatsHandler(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModeratorStatsHandlerDegradesToEmptyOnStoreFailure(t *testing.T) {
	caseDB := &mocks.CaseDatabase{}
	caseDB.On("ModeratorStats", mock.Anything, "guild-1", (*time.Time)(nil), (*time.Time)(nil)).
		Return(nil, databases.ErrStoreUnavailable)
	s := Stats{DB: caseDB}

	r := httptest.NewRequest(http.MethodGet, "/api/v1/guild/guild-1/stats/moderators", nil)
	r = mux.SetURLVars(r, map[string]string{"guild_id": "guild-1"})
	w := httptest.NewRecorder()

	s.ModeratorStatsHandler(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "{}", w.Body.String())
}
