package database

import (
	"caresync-service/internal/app/contracts"
	"caresync-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

type MongoTransactionManager struct {
	Client *mongo.Client
}

func NewMongoTransactionManager(client *mongo.Client) contracts.TransactionManager {
	return &MongoTransactionManager{Client: client}
}

func (m *MongoTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.Client.StartSession()
	if err != nil {
		return exceptions.ErrMongoDBStartSession(err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessionCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessionCtx)
	})
	return err
}
