package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/modkeeper/mod-case-api/databases"
	"github.com/modkeeper/mod-case-api/databases/mocks"
	"github.com/modkeeper/mod-case-api/models"
)

func TestFindByCaseIDNormalizesInput(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		cs := args.Get(0).(*models.Case)
		cs.CaseID = "ABCDEF2345"
		cs.GuildID = "guild-1"
	}).Return(nil)

	conn.On("FindOne", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["caseId"] == "ABCDEF2345"
	})).Return(singleResult)

	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	cs, err := caseDB.FindByCaseID(context.Background(), "abcdef2345")

	assert.NoError(t, err)
	assert.Equal(t, "ABCDEF2345", cs.CaseID)
}

func TestFindByCaseIDNotFound(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	cs, err := caseDB.FindByCaseID(context.Background(), "ABCDEF2345")

	assert.Nil(t, cs)
	assert.ErrorIs(t, err, databases.ErrCaseNotFound)
}

func TestFindByCaseIDInGuildScopesQuery(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(nil)
	conn.On("FindOne", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["guildId"] == "guild-1" && m["caseId"] == "ABCDEF2345"
	})).Return(singleResult)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	_, err := caseDB.FindByCaseIDInGuild(context.Background(), "guild-1", "abcdef2345")

	assert.NoError(t, err)
}

func TestCaseIDExists(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, bson.M{"caseId": "ABCDEF2345"}).Return(int64(1), nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	exists, err := caseDB.CaseIDExists(context.Background(), "abcdef2345")

	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestCaseIDExistsStoreError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	exists, err := caseDB.CaseIDExists(context.Background(), "ABCDEF2345")

	assert.False(t, exists)
	assert.ErrorIs(t, err, databases.ErrStoreUnavailable)
}

func TestListBuildsFilterAndReturnsTotal(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	expectedQuery := func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		if !ok {
			return false
		}
		return m["guildId"] == "guild-1" &&
			m["userId"] == "user-1" &&
			m["type"] == models.CaseTypeBan &&
			m["closed"] == false
	}

	conn.On("CountDocuments", mock.Anything, mock.MatchedBy(expectedQuery)).Return(int64(42), nil)
	conn.On("Find", mock.Anything, mock.MatchedBy(expectedQuery), mock.Anything).Return(cursor, nil)
	cursor.On("All", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		out := args.Get(1).(*[]models.Case)
		*out = []models.Case{{CaseID: "ABCDEF2345"}, {CaseID: "BCDEFG3456"}}
	}).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	filter := databases.CaseFilter{
		GuildID: "guild-1",
		UserID:  "user-1",
		Type:    models.CaseTypeBan,
		Status:  models.CaseStatusActive,
	}
	cases, total, err := caseDB.List(context.Background(), filter, 10, 0)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.Len(t, cases, 2)
}

func TestListAppealedStatusFilter(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	expectedQuery := func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		if !ok {
			return false
		}
		_, hasClosed := m["closed"]
		return m["guildId"] == "guild-1" && m["appealed"] == true && !hasClosed
	}

	conn.On("CountDocuments", mock.Anything, mock.MatchedBy(expectedQuery)).Return(int64(0), nil)
	conn.On("Find", mock.Anything, mock.MatchedBy(expectedQuery), mock.Anything).Return(cursor, nil)
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	_, _, err := caseDB.List(context.Background(), databases.CaseFilter{
		GuildID: "guild-1",
		Status:  models.CaseStatusAppealed,
	}, 10, 0)

	assert.NoError(t, err)
}

func TestSearchExactIDPath(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Run(func(args mock.Arguments) {
		cs := args.Get(0).(*models.Case)
		cs.CaseID = "ABCDEF2345"
	}).Return(nil)
	conn.On("FindOne", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["guildId"] == "guild-1" && m["caseId"] == "ABCDEF2345"
	})).Return(singleResult)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	cases, err := caseDB.Search(context.Background(), "guild-1", "abcdef2345", 10)

	assert.NoError(t, err)
	assert.Len(t, cases, 1)
	assert.Equal(t, "ABCDEF2345", cases[0].CaseID)
}

func TestSearchExactIDNotFoundReturnsEmpty(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	singleResult := &mocks.SingleResultHelper{}

	singleResult.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	conn.On("FindOne", mock.Anything, mock.Anything).Return(singleResult)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	cases, err := caseDB.Search(context.Background(), "guild-1", "ABCDEF2345", 10)

	assert.NoError(t, err)
	assert.NotNil(t, cases)
	assert.Empty(t, cases)
}

func TestSearchTextPathEscapesRegex(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	conn.On("Find", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		if !ok || m["guildId"] != "guild-1" {
			return false
		}
		or, ok := m["$or"].([]bson.M)
		if !ok || len(or) != 2 {
			return false
		}
		reason, ok := or[1]["reason"].(bson.M)
		return ok && reason["$regex"] == `spam \(again\)` && reason["$options"] == "i"
	}), mock.Anything).Return(cursor, nil)
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	_, err := caseDB.Search(context.Background(), "guild-1", "spam (again)", 10)

	assert.NoError(t, err)
}

func TestCloseAlreadyClosed(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		return ok && m["_id"] == "internal-1" && m["closed"] == false
	}), mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	conn.On("CountDocuments", mock.Anything, bson.M{"_id": "internal-1"}).Return(int64(1), nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	err := caseDB.Close(context.Background(), "internal-1", "mod-1", "resolved")

	assert.ErrorIs(t, err, databases.ErrCaseClosed)
}

func TestCloseMissingCase(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	conn.On("CountDocuments", mock.Anything, bson.M{"_id": "internal-1"}).Return(int64(0), nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	err := caseDB.Close(context.Background(), "internal-1", "mod-1", "resolved")

	assert.ErrorIs(t, err, databases.ErrCaseNotFound)
}

func TestCloseSetsClosureFields(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		m, ok := update.(bson.M)
		if !ok {
			return false
		}
		set, ok := m["$set"].(bson.M)
		return ok && set["closed"] == true && set["closedBy"] == "mod-1" && set["closeReason"] == "resolved"
	})).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	err := caseDB.Close(context.Background(), "internal-1", "mod-1", "resolved")

	assert.NoError(t, err)
}

func TestUpdateFieldOnClosedCase(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	conn.On("CountDocuments", mock.Anything, bson.M{"_id": "internal-1"}).Return(int64(1), nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	err := caseDB.UpdateField(context.Background(), "internal-1", models.FieldReason, "updated reason")

	assert.ErrorIs(t, err, databases.ErrCaseClosed)
}

func TestUpdateFieldSetsNamedField(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateOne", mock.Anything, mock.Anything, mock.MatchedBy(func(update interface{}) bool {
		m, ok := update.(bson.M)
		if !ok {
			return false
		}
		set, ok := m["$set"].(bson.M)
		return ok && set["notes"] == "escalated to admins"
	})).Return(&mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	err := caseDB.UpdateField(context.Background(), "internal-1", models.FieldNotes, "escalated to admins")

	assert.NoError(t, err)
}

func TestStatsZeroFilledByType(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	conn.On("CountDocuments", mock.Anything, bson.M{"guildId": "guild-1"}).Return(int64(7), nil)
	conn.On("CountDocuments", mock.Anything, bson.M{"guildId": "guild-1", "closed": false}).Return(int64(4), nil)
	conn.On("CountDocuments", mock.Anything, bson.M{"guildId": "guild-1", "closed": true}).Return(int64(3), nil)
	conn.On("CountDocuments", mock.Anything, bson.M{"guildId": "guild-1", "appealed": true}).Return(int64(1), nil)
	conn.On("Aggregate", mock.Anything, mock.Anything).Return(cursor, nil)
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	stats, err := caseDB.Stats(context.Background(), "guild-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalCases)
	assert.Equal(t, int64(4), stats.ActiveCases)
	assert.Equal(t, int64(3), stats.ClosedCases)
	assert.Equal(t, int64(1), stats.AppealedCases)
	assert.Len(t, stats.CasesByType, len(models.AllCaseTypes))
	for _, ct := range models.AllCaseTypes {
		assert.Equal(t, int64(0), stats.CasesByType[ct])
	}
}

func TestStatsStoreError(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("CountDocuments", mock.Anything, mock.Anything).Return(int64(0), errors.New("connection reset"))
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	stats, err := caseDB.Stats(context.Background(), "guild-1")

	assert.ErrorIs(t, err, databases.ErrStoreUnavailable)
	assert.Equal(t, int64(0), stats.TotalCases)
	assert.Len(t, stats.CasesByType, len(models.AllCaseTypes))
}

func TestModeratorStatsWindowInPipeline(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	conn.On("Aggregate", mock.Anything, mock.MatchedBy(func(pipeline interface{}) bool {
		stages, ok := pipeline.([]bson.M)
		if !ok || len(stages) == 0 {
			return false
		}
		match, ok := stages[0]["$match"].(bson.M)
		if !ok || match["guildId"] != "guild-1" {
			return false
		}
		createdAt, ok := match["createdAt"].(bson.M)
		if !ok {
			return false
		}
		_, hasGte := createdAt["$gte"]
		_, hasLte := createdAt["$lte"]
		return hasGte && hasLte
	})).Return(cursor, nil)
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	stats, err := caseDB.ModeratorStats(context.Background(), "guild-1", &start, &end)

	assert.NoError(t, err)
	assert.Empty(t, stats)
}

func TestModeratorStatsNoWindow(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}
	cursor := &mocks.CursorHelper{}

	conn.On("Aggregate", mock.Anything, mock.MatchedBy(func(pipeline interface{}) bool {
		stages, ok := pipeline.([]bson.M)
		if !ok || len(stages) == 0 {
			return false
		}
		match, ok := stages[0]["$match"].(bson.M)
		if !ok {
			return false
		}
		_, hasCreatedAt := match["createdAt"]
		return !hasCreatedAt
	})).Return(cursor, nil)
	cursor.On("All", mock.Anything, mock.Anything).Return(nil)
	cursor.On("Close", mock.Anything).Return(nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	_, err := caseDB.ModeratorStats(context.Background(), "guild-1", nil, nil)

	assert.NoError(t, err)
}

func TestDeactivateExpired(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	conn := &mocks.CollectionHelper{}

	conn.On("UpdateMany", mock.Anything, mock.MatchedBy(func(filter interface{}) bool {
		m, ok := filter.(bson.M)
		if !ok {
			return false
		}
		expires, ok := m["expiresAt"].(bson.M)
		if !ok {
			return false
		}
		_, hasLte := expires["$lte"]
		return m["active"] == true && m["closed"] == false && hasLte
	}), mock.MatchedBy(func(update interface{}) bool {
		m, ok := update.(bson.M)
		if !ok {
			return false
		}
		set, ok := m["$set"].(bson.M)
		return ok && set["active"] == false
	})).Return(&mongo.UpdateResult{MatchedCount: 3, ModifiedCount: 3}, nil)
	dbHelper.On("Collection", "cases").Return(conn)

	caseDB := databases.NewCaseDatabase(dbHelper)
	count, err := caseDB.DeactivateExpired(context.Background(), time.Now())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
