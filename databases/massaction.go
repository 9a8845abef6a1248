package databases

// go generate: mockery --name MassActionDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modkeeper/mod-case-api/models"
)

const massActionName = "massActions"

// MassActionDatabase contains the methods to use with the mass action database
type MassActionDatabase interface {
	InsertOne(ctx context.Context, ma models.MassAction) error
	FindByID(ctx context.Context, id string) (*models.MassAction, error)
	FindByGuild(ctx context.Context, guildID string, limit int64) ([]models.MassAction, error)
	Complete(ctx context.Context, id string, successCount, failureCount int) error
}

type massActionDatabase struct {
	db DatabaseHelper
}

// NewMassActionDatabase initializes a new instance of mass action database with the provided db connection
func NewMassActionDatabase(db DatabaseHelper) MassActionDatabase {
	return &massActionDatabase{
		db: db,
	}
}

func (m *massActionDatabase) InsertOne(ctx context.Context, ma models.MassAction) error {
	_, err := m.db.Collection(massActionName).InsertOne(ctx, ma)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

func (m *massActionDatabase) FindByID(ctx context.Context, id string) (*models.MassAction, error) {
	ma := &models.MassAction{}
	err := m.db.Collection(massActionName).FindOne(ctx, bson.M{"_id": id}).Decode(ma)
	if err == mongo.ErrNoDocuments {
		return nil, ErrMassActionNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return ma, nil
}

func (m *massActionDatabase) FindByGuild(ctx context.Context, guildID string, limit int64) ([]models.MassAction, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.M{"createdAt": -1})

	curr, err := m.db.Collection(massActionName).Find(ctx, bson.M{"guildId": guildID}, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	defer curr.Close(ctx)

	var actions []models.MassAction
	if err := curr.All(ctx, &actions); err != nil {
		return nil, storeErr(err)
	}
	return actions, nil
}

// Complete finalizes a mass action with its outcome counts. Completion is
// one-way, mirroring case closure.
func (m *massActionDatabase) Complete(ctx context.Context, id string, successCount, failureCount int) error {
	now := primitive.NewDateTimeFromTime(time.Now())
	res, err := m.db.Collection(massActionName).UpdateOne(ctx,
		bson.M{"_id": id, "status": bson.M{"$ne": "completed"}},
		bson.M{"$set": bson.M{
			"status":       "completed",
			"successCount": successCount,
			"failureCount": failureCount,
			"completedAt":  now,
		}},
	)
	if err != nil {
		return storeErr(err)
	}
	if res.MatchedCount == 0 {
		count, err := m.db.Collection(massActionName).CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return storeErr(err)
		}
		if count == 0 {
			return ErrMassActionNotFound
		}
		return ErrMassActionCompleted
	}
	return nil
}
