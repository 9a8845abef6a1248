package databases

// go generate: mockery --name CaseUpdateDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/modkeeper/mod-case-api/models"
)

const caseUpdateName = "caseUpdates"

// CaseUpdateDatabase contains the methods to use with the case update audit log
type CaseUpdateDatabase interface {
	InsertOne(ctx context.Context, cu models.CaseUpdate) error
	FindByCase(ctx context.Context, caseID string) ([]models.CaseUpdate, error)
}

type caseUpdateDatabase struct {
	db DatabaseHelper
}

// NewCaseUpdateDatabase initializes a new instance of case update database with the provided db connection
func NewCaseUpdateDatabase(db DatabaseHelper) CaseUpdateDatabase {
	return &caseUpdateDatabase{
		db: db,
	}
}

func (c *caseUpdateDatabase) InsertOne(ctx context.Context, cu models.CaseUpdate) error {
	_, err := c.db.Collection(caseUpdateName).InsertOne(ctx, cu)
	if err != nil {
		return storeErr(err)
	}
	return nil
}

// FindByCase returns the edit history for a case, newest first. caseID is the
// internal UUID.
func (c *caseUpdateDatabase) FindByCase(ctx context.Context, caseID string) ([]models.CaseUpdate, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})

	curr, err := c.db.Collection(caseUpdateName).Find(ctx, bson.M{"caseId": caseID}, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	defer curr.Close(ctx)

	var updates []models.CaseUpdate
	if err := curr.All(ctx, &updates); err != nil {
		return nil, storeErr(err)
	}
	return updates, nil
}
