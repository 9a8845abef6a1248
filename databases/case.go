package databases

// go generate: mockery --name CaseDatabase

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modkeeper/mod-case-api/caseid"
	"github.com/modkeeper/mod-case-api/models"
)

const caseName = "cases"

// CaseFilter is the conjunction of predicates accepted by List. GuildID is
// mandatory; the zero value of every other field means "no constraint".
type CaseFilter struct {
	GuildID     string
	UserID      string
	ModeratorID string
	Type        models.CaseType
	Status      models.CaseStatus
}

func (f CaseFilter) query() bson.M {
	filter := bson.M{"guildId": f.GuildID}
	if f.UserID != "" {
		filter["userId"] = f.UserID
	}
	if f.ModeratorID != "" {
		filter["moderatorId"] = f.ModeratorID
	}
	if f.Type != "" {
		filter["type"] = f.Type
	}
	switch f.Status {
	case models.CaseStatusActive:
		filter["closed"] = false
	case models.CaseStatusClosed:
		filter["closed"] = true
	case models.CaseStatusAppealed:
		filter["appealed"] = true
	}
	return filter
}

// UserCaseOptions narrows a per-user case listing
type UserCaseOptions struct {
	Type       models.CaseType
	ActiveOnly bool
	Limit      int64
	Offset     int64
}

// CaseDatabase contains the methods to use with the case database
type CaseDatabase interface {
	InsertOne(ctx context.Context, c models.Case) error
	FindByCaseID(ctx context.Context, caseID string) (*models.Case, error)
	FindByCaseIDInGuild(ctx context.Context, guildID, caseID string) (*models.Case, error)
	CaseIDExists(ctx context.Context, caseID string) (bool, error)
	List(ctx context.Context, filter CaseFilter, limit, offset int64) ([]models.Case, int64, error)
	Search(ctx context.Context, guildID, query string, limit int64) ([]models.Case, error)
	Recent(ctx context.Context, guildID string, limit int64) ([]models.Case, error)
	UserCases(ctx context.Context, guildID, userID string, opts UserCaseOptions) ([]models.Case, error)
	ActivePunishments(ctx context.Context, guildID, userID string) ([]models.Case, error)
	Close(ctx context.Context, id, closedBy, closeReason string) error
	UpdateField(ctx context.Context, id string, field models.UpdatableField, newValue string) error
	Stats(ctx context.Context, guildID string) (models.CaseStats, error)
	ModeratorStats(ctx context.Context, guildID string, start, end *time.Time) (models.ModeratorStats, error)
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
}

type caseDatabase struct {
	db DatabaseHelper
}

// NewCaseDatabase initializes a new instance of case database with the provided db connection
func NewCaseDatabase(db DatabaseHelper) CaseDatabase {
	return &caseDatabase{
		db: db,
	}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// InsertOne writes a new case row. The error is returned unwrapped so the
// caller can recognize a duplicate-key failure on the caseId index and retry
// with a freshly allocated ID.
func (c *caseDatabase) InsertOne(ctx context.Context, cs models.Case) error {
	_, err := c.db.Collection(caseName).InsertOne(ctx, cs)
	return err
}

func (c *caseDatabase) findOne(ctx context.Context, filter bson.M) (*models.Case, error) {
	cs := &models.Case{}
	err := c.db.Collection(caseName).FindOne(ctx, filter).Decode(cs)
	if err == mongo.ErrNoDocuments {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return cs, nil
}

// FindByCaseID looks up a case by its display ID across all guilds. Input is
// case-insensitive; stored IDs are uppercase.
func (c *caseDatabase) FindByCaseID(ctx context.Context, caseID string) (*models.Case, error) {
	return c.findOne(ctx, bson.M{"caseId": caseid.Normalize(caseID)})
}

// FindByCaseIDInGuild looks up a case by display ID and verifies it belongs to
// the given guild before any guild-scoped mutation is allowed
func (c *caseDatabase) FindByCaseIDInGuild(ctx context.Context, guildID, caseID string) (*models.Case, error) {
	return c.findOne(ctx, bson.M{"guildId": guildID, "caseId": caseid.Normalize(caseID)})
}

// CaseIDExists reports whether any case, in any guild, already holds the given
// display ID. Store failures propagate so the allocator never treats an
// unverifiable candidate as free.
func (c *caseDatabase) CaseIDExists(ctx context.Context, caseID string) (bool, error) {
	count, err := c.db.Collection(caseName).CountDocuments(ctx, bson.M{"caseId": caseid.Normalize(caseID)})
	if err != nil {
		return false, storeErr(err)
	}
	return count > 0, nil
}

func (c *caseDatabase) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]models.Case, error) {
	curr, err := c.db.Collection(caseName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, storeErr(err)
	}
	defer curr.Close(ctx)

	var cases []models.Case
	if err := curr.All(ctx, &cases); err != nil {
		return nil, storeErr(err)
	}
	return cases, nil
}

// List returns one page of the filtered cases, most recent first, plus the
// total matching count for pagination
func (c *caseDatabase) List(ctx context.Context, filter CaseFilter, limit, offset int64) ([]models.Case, int64, error) {
	query := filter.query()

	total, err := c.db.Collection(caseName).CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, storeErr(err)
	}

	opts := options.Find().
		SetLimit(limit).
		SetSkip(offset).
		SetSort(bson.M{"createdAt": -1})

	cases, err := c.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	return cases, total, nil
}

// Search resolves a query that is either an exact display ID or free text. An
// ID-shaped query does a guild-scoped point lookup; anything else matches the
// subject user ID exactly or the reason text case-insensitively.
func (c *caseDatabase) Search(ctx context.Context, guildID, query string, limit int64) ([]models.Case, error) {
	if caseid.IsValid(query) {
		cs, err := c.FindByCaseIDInGuild(ctx, guildID, query)
		if err == ErrCaseNotFound {
			return []models.Case{}, nil
		}
		if err != nil {
			return nil, err
		}
		return []models.Case{*cs}, nil
	}

	filter := bson.M{
		"guildId": guildID,
		"$or": []bson.M{
			{"userId": query},
			{"reason": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}},
		},
	}

	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1})

	return c.find(ctx, filter, opts)
}

// Recent returns the newest cases for a guild
func (c *caseDatabase) Recent(ctx context.Context, guildID string, limit int64) ([]models.Case, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1})

	return c.find(ctx, bson.M{"guildId": guildID}, opts)
}

// UserCases returns the cases recorded against one user in a guild
func (c *caseDatabase) UserCases(ctx context.Context, guildID, userID string, userOpts UserCaseOptions) ([]models.Case, error) {
	filter := bson.M{"guildId": guildID, "userId": userID}
	if userOpts.Type != "" {
		filter["type"] = userOpts.Type
	}
	if userOpts.ActiveOnly {
		filter["closed"] = false
	}

	opts := options.Find().
		SetLimit(userOpts.Limit).
		SetSkip(userOpts.Offset).
		SetSort(bson.M{"createdAt": -1})

	return c.find(ctx, filter, opts)
}

// ActivePunishments returns a user's punishments that are active, not closed,
// and either unbounded or not yet expired
func (c *caseDatabase) ActivePunishments(ctx context.Context, guildID, userID string) ([]models.Case, error) {
	now := primitive.NewDateTimeFromTime(time.Now())
	filter := bson.M{
		"guildId": guildID,
		"userId":  userID,
		"active":  true,
		"closed":  false,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$exists": false}},
			{"expiresAt": nil},
			{"expiresAt": bson.M{"$gt": now}},
		},
	}

	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	return c.find(ctx, filter, opts)
}

// Close marks a case closed. The filter requires closed=false so a second
// close never matches; closing is one-way.
func (c *caseDatabase) Close(ctx context.Context, id, closedBy, closeReason string) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	res, err := c.db.Collection(caseName).UpdateOne(ctx,
		bson.M{"_id": id, "closed": false},
		bson.M{"$set": bson.M{
			"closed":      true,
			"closedAt":    now,
			"closedBy":    closedBy,
			"closeReason": closeReason,
			"updatedAt":   now,
		}},
	)
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return c.missingOrClosed(ctx, id)
	}
	return nil
}

// UpdateField sets one editable field on an open case
func (c *caseDatabase) UpdateField(ctx context.Context, id string, field models.UpdatableField, newValue string) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	res, err := c.db.Collection(caseName).UpdateOne(ctx,
		bson.M{"_id": id, "closed": false},
		bson.M{"$set": bson.M{
			string(field): newValue,
			"updatedAt":   now,
		}},
	)
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		return c.missingOrClosed(ctx, id)
	}
	return nil
}

// missingOrClosed decides which failure an unmatched closed=false update was
func (c *caseDatabase) missingOrClosed(ctx context.Context, id string) error {
	count, err := c.db.Collection(caseName).CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return storeErr(err)
	}
	if count == 0 {
		return ErrCaseNotFound
	}
	return ErrCaseClosed
}

type caseTypeCount struct {
	Type  models.CaseType `bson:"_id"`
	Count int64           `bson:"count"`
}

// Stats computes the aggregate counts for a guild. Types with no cases stay
// present in the by-type map at zero.
func (c *caseDatabase) Stats(ctx context.Context, guildID string) (models.CaseStats, error) {
	stats := models.NewCaseStats()
	coll := c.db.Collection(caseName)

	var err error
	stats.TotalCases, err = coll.CountDocuments(ctx, bson.M{"guildId": guildID})
	if err != nil {
		return models.NewCaseStats(), storeErr(err)
	}
	stats.ActiveCases, err = coll.CountDocuments(ctx, bson.M{"guildId": guildID, "closed": false})
	if err != nil {
		return models.NewCaseStats(), storeErr(err)
	}
	stats.ClosedCases, err = coll.CountDocuments(ctx, bson.M{"guildId": guildID, "closed": true})
	if err != nil {
		return models.NewCaseStats(), storeErr(err)
	}
	stats.AppealedCases, err = coll.CountDocuments(ctx, bson.M{"guildId": guildID, "appealed": true})
	if err != nil {
		return models.NewCaseStats(), storeErr(err)
	}

	pipeline := []bson.M{
		{"$match": bson.M{"guildId": guildID}},
		{"$group": bson.M{"_id": "$type", "count": bson.M{"$sum": 1}}},
	}
	curr, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.NewCaseStats(), storeErr(err)
	}
	defer curr.Close(ctx)

	var rows []caseTypeCount
	if err := curr.All(ctx, &rows); err != nil {
		return models.NewCaseStats(), storeErr(err)
	}
	for _, row := range rows {
		if _, ok := stats.CasesByType[row.Type]; ok {
			stats.CasesByType[row.Type] = row.Count
		}
	}
	return stats, nil
}

type moderatorTypeCount struct {
	ID struct {
		ModeratorID string          `bson:"moderatorId"`
		Type        models.CaseType `bson:"type"`
	} `bson:"_id"`
	Count int64 `bson:"count"`
}

// ModeratorStats breaks down case counts per moderator and type, optionally
// bounded to cases created inside [start, end]
func (c *caseDatabase) ModeratorStats(ctx context.Context, guildID string, start, end *time.Time) (models.ModeratorStats, error) {
	match := bson.M{"guildId": guildID}
	createdAt := bson.M{}
	if start != nil {
		createdAt["$gte"] = primitive.NewDateTimeFromTime(*start)
	}
	if end != nil {
		createdAt["$lte"] = primitive.NewDateTimeFromTime(*end)
	}
	if len(createdAt) > 0 {
		match["createdAt"] = createdAt
	}

	pipeline := []bson.M{
		{"$match": match},
		{"$group": bson.M{
			"_id":   bson.M{"moderatorId": "$moderatorId", "type": "$type"},
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id.moderatorId": 1}},
	}

	curr, err := c.db.Collection(caseName).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	defer curr.Close(ctx)

	var rows []moderatorTypeCount
	if err := curr.All(ctx, &rows); err != nil {
		return nil, storeErr(err)
	}

	stats := models.ModeratorStats{}
	for _, row := range rows {
		if stats[row.ID.ModeratorID] == nil {
			stats[row.ID.ModeratorID] = map[models.CaseType]int64{}
		}
		stats[row.ID.ModeratorID][row.ID.Type] = row.Count
	}
	return stats, nil
}

// DeactivateExpired flips active=false on open cases whose expiry has passed.
// Invoked by the scheduler, returns how many rows changed.
func (c *caseDatabase) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	ts := primitive.NewDateTimeFromTime(now)
	res, err := c.db.Collection(caseName).UpdateMany(ctx,
		bson.M{
			"active":    true,
			"closed":    false,
			"expiresAt": bson.M{"$exists": true, "$ne": nil, "$lte": ts},
		},
		bson.M{"$set": bson.M{"active": false, "updatedAt": ts}},
	)
	if err != nil {
		return 0, storeErr(err)
	}
	return res.ModifiedCount, nil
}
