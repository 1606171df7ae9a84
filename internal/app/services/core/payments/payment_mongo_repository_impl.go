package payments

import (
	"caresync-service/internal/app/contracts"
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/constvars"
	"caresync-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PaymentMongoRepository only ever inserts and reads. Corrections to a
// mistaken payment are recorded as new transactions, not edits.
type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
	}
}

func (repo *PaymentMongoRepository) Insert(ctx context.Context, transaction *models.PaymentTransaction) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, transaction)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrMongoDBDuplicateKey(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *PaymentMongoRepository) FindByBill(ctx context.Context, billID string) ([]models.PaymentTransaction, error) {
	sort := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := repo.Collection.Find(ctx, bson.M{"bill_id": billID}, sort)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var transactions []models.PaymentTransaction
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return transactions, nil
}

func (repo *PaymentMongoRepository) FindByTransactionNumber(ctx context.Context, transactionNumber string) (*models.PaymentTransaction, error) {
	var transaction models.PaymentTransaction
	err := repo.Collection.FindOne(ctx, bson.M{"transaction_number": transactionNumber}).Decode(&transaction)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &transaction, nil
}
