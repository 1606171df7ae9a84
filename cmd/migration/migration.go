package main

import (
	"caresync-service/internal/app/config"
	"caresync-service/internal/app/drivers/database"
	"caresync-service/internal/app/models"
	"caresync-service/internal/pkg/constvars"
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Creates the indexes the service relies on. Safe to run repeatedly,
// CreateMany is a no-op for indexes that already exist.
func main() {
	driverConfig := config.NewDriverConfig()

	client := database.NewMongoDB(driverConfig)
	db := client.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	createScheduleIndexes(ctx, db)
	createAppointmentIndexes(ctx, db)
	createBillIndexes(ctx, db)
	createPaymentIndexes(ctx, db)

	if err := client.Disconnect(ctx); err != nil {
		log.Fatalf("Error disconnecting from MongoDB: %v", err)
	}
	log.Println("All indexes created")
}

func createScheduleIndexes(ctx context.Context, db *mongo.Database) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctor_id", Value: 1},
				{Key: "day_of_week", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_doctor_day"),
		},
	}
	mustCreate(ctx, db.Collection(constvars.MongoCollectionSchedules), indexes)
}

func createAppointmentIndexes(ctx context.Context, db *mongo.Database) {
	// Partial unique index: only non-cancelled appointments hold a slot, a
	// cancelled one must not block rebooking the same time.
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "doctor_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "start_time", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_active_doctor_slot").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": models.ActiveAppointmentStatuses()},
				}),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("patient_date"),
		},
		{
			Keys:    bson.D{{Key: "appointment_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_appointment_number"),
		},
	}
	mustCreate(ctx, db.Collection(constvars.MongoCollectionAppointments), indexes)
}

func createBillIndexes(ctx context.Context, db *mongo.Database) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bill_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_bill_number"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "bill_date", Value: -1}},
			Options: options.Index().SetName("patient_bill_date"),
		},
	}
	mustCreate(ctx, db.Collection(constvars.MongoCollectionBills), indexes)
}

func createPaymentIndexes(ctx context.Context, db *mongo.Database) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "transaction_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_transaction_number"),
		},
		{
			Keys:    bson.D{{Key: "bill_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("bill_created_at"),
		},
	}
	mustCreate(ctx, db.Collection(constvars.MongoCollectionPayments), indexes)
}

func mustCreate(ctx context.Context, collection *mongo.Collection, indexes []mongo.IndexModel) {
	names, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Fatalf("Error creating indexes on %s: %v", collection.Name(), err)
	}
	log.Printf("Created indexes on %s: %v", collection.Name(), names)
}
