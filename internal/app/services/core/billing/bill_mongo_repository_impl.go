package billing

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

type BillMongoRepository struct {
	Collection *mongo.Collection
}

func NewBillMongoRepository(db *mongo.Client, dbName string) contracts.BillRepository {
	return &BillMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionBills),
	}
}

func (repo *BillMongoRepository) Insert(ctx context.Context, bill *models.Bill) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, bill)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrMongoDBDuplicateKey(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *BillMongoRepository) Update(ctx context.Context, bill *models.Bill) error {
	filter := bson.M{"_id": bill.ID}
	update := bson.M{"$set": bill}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *BillMongoRepository) FindByID(ctx context.Context, billID string) (*models.Bill, error) {
	objectID, err := primitive.ObjectIDFromHex(billID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	return repo.findOne(ctx, bson.M{"_id": objectID})
}

func (repo *BillMongoRepository) FindByNumber(ctx context.Context, billNumber string) (*models.Bill, error) {
	return repo.findOne(ctx, bson.M{"bill_number": billNumber})
}

func (repo *BillMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Bill, error) {
	var bill models.Bill
	err := repo.Collection.FindOne(ctx, filter).Decode(&bill)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &bill, nil
}

func (repo *BillMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Bill, error) {
	sort := options.Find().SetSort(bson.D{{Key: "bill_date", Value: -1}})

	cursor, err := repo.Collection.Find(ctx, bson.M{"patient_id": patientID}, sort)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var bills []models.Bill
	if err := cursor.All(ctx, &bills); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return bills, nil
}
