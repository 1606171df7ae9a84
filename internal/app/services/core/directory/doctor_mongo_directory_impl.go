package directory

import (
	"caresync-service/internal/app/contracts"
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/constvars"
	"caresync-service/internal/pkg/exceptions"
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoDirectory struct {
	Collection *mongo.Collection
}

func NewDoctorMongoDirectory(db *mongo.Client, dbName string) contracts.DoctorDirectory {
	return &DoctorMongoDirectory{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionDoctors),
	}
}

func (repo *DoctorMongoDirectory) findByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	objectID, err := primitive.ObjectIDFromHex(doctorID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var doctor models.Doctor
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doctor)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &doctor, nil
}

func (repo *DoctorMongoDirectory) DoctorExists(ctx context.Context, doctorID string) (bool, error) {
	doctor, err := repo.findByID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	return doctor != nil, nil
}

func (repo *DoctorMongoDirectory) IsDoctorAvailable(ctx context.Context, doctorID string) (bool, error) {
	doctor, err := repo.findByID(ctx, doctorID)
	if err != nil {
		return false, err
	}
	if doctor == nil {
		return false, nil
	}
	return doctor.IsAvailable, nil
}
