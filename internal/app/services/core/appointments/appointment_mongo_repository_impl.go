package appointments

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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func activeStatusFilter() bson.M {
	return bson.M{"$in": models.ActiveAppointmentStatuses()}
}

func (repo *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (string, error) {
	result, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		// The partial unique index on (doctor_id, date, start_time) is the
		// backstop when two bookings race past the lock.
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrSlotAlreadyBooked(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (repo *AppointmentMongoRepository) Update(ctx context.Context, appointment *models.Appointment) error {
	filter := bson.M{"_id": appointment.ID}
	update := bson.M{"$set": appointment}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrSlotAlreadyBooked(err)
		}
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var appointment models.Appointment
	err = repo.Collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindActiveByDoctorDateTime(ctx context.Context, doctorID, date, startTime string) (*models.Appointment, error) {
	filter := bson.M{
		"doctor_id":  doctorID,
		"date":       date,
		"start_time": startTime,
		"status":     activeStatusFilter(),
	}
	var appointment models.Appointment
	err := repo.Collection.FindOne(ctx, filter).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindActiveStartTimesByDoctorAndDate(ctx context.Context, doctorID, date string) ([]string, error) {
	filter := bson.M{
		"doctor_id": doctorID,
		"date":      date,
		"status":    activeStatusFilter(),
	}
	projection := options.Find().SetProjection(bson.M{"start_time": 1})

	cursor, err := repo.Collection.Find(ctx, filter, projection)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		StartTime string `bson:"start_time"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	startTimes := make([]string, 0, len(docs))
	for _, doc := range docs {
		startTimes = append(startTimes, doc.StartTime)
	}
	return startTimes, nil
}

func (repo *AppointmentMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return repo.findAll(ctx, bson.M{"patient_id": patientID})
}

func (repo *AppointmentMongoRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return repo.findAll(ctx, bson.M{"doctor_id": doctorID})
}

func (repo *AppointmentMongoRepository) FindByDoctorAndDate(ctx context.Context, doctorID, date string) ([]models.Appointment, error) {
	return repo.findAll(ctx, bson.M{"doctor_id": doctorID, "date": date})
}

func (repo *AppointmentMongoRepository) Delete(ctx context.Context, appointmentID string) error {
	objectID, err := primitive.ObjectIDFromHex(appointmentID)
	if err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	if _, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": objectID}); err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (repo *AppointmentMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	sort := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})

	cursor, err := repo.Collection.Find(ctx, filter, sort)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
