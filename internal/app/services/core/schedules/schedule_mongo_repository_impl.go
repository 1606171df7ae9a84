package schedules

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

type ScheduleMongoRepository struct {
	Collection *mongo.Collection
}

func NewScheduleMongoRepository(db *mongo.Client, dbName string) contracts.ScheduleRepository {
	return &ScheduleMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSchedules),
	}
}

func (repo *ScheduleMongoRepository) Insert(ctx context.Context, schedule *models.DoctorSchedule) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, schedule)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrScheduleAlreadyExists(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *ScheduleMongoRepository) Update(ctx context.Context, schedule *models.DoctorSchedule) error {
	filter := bson.M{"_id": schedule.ID}
	update := bson.M{"$set": schedule}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *ScheduleMongoRepository) FindByID(ctx context.Context, scheduleID string) (*models.DoctorSchedule, error) {
	objectID, err := primitive.ObjectIDFromHex(scheduleID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var schedule models.DoctorSchedule
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &schedule, nil
}

func (repo *ScheduleMongoRepository) FindByDoctorAndDay(ctx context.Context, doctorID string, day models.DayOfWeek) (*models.DoctorSchedule, error) {
	var schedule models.DoctorSchedule
	filter := bson.M{
		"doctor_id":   doctorID,
		"day_of_week": day,
	}
	err := repo.Collection.FindOne(ctx, filter).Decode(&schedule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &schedule, nil
}

func (repo *ScheduleMongoRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.DoctorSchedule, error) {
	cursor, err := repo.Collection.Find(ctx, bson.M{"doctor_id": doctorID})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var schedules []models.DoctorSchedule
	if err := cursor.All(ctx, &schedules); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return schedules, nil
}
