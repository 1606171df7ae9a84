package main

import (
	"caresync-service/internal/app/config"
	"caresync-service/internal/app/delivery/http/controllers"
	"caresync-service/internal/app/delivery/http/middlewares"
	"caresync-service/internal/app/delivery/http/routers"
	"caresync-service/internal/app/drivers/database"
	"caresync-service/internal/app/drivers/logger"
	"caresync-service/internal/app/drivers/messaging"
	"caresync-service/internal/app/services/core/appointments"
	"caresync-service/internal/app/services/core/billing"
	"caresync-service/internal/app/services/core/directory"
	"caresync-service/internal/app/services/core/payments"
	"caresync-service/internal/app/services/core/schedules"
	"caresync-service/internal/app/services/shared/locker"
	"caresync-service/internal/app/services/shared/notifier"
	sharedredis "caresync-service/internal/app/services/shared/redis"
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	bootstrapingTheApp(&bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Error closing application resources: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) {
	// Redis
	redisRepository := sharedredis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Notification queue + background worker
	notificationService, err := notifier.NewService(
		bootstrap.RabbitMQ,
		bootstrap.Logger,
		bootstrap.InternalConfig.App.NotificationQueue,
		bootstrap.InternalConfig.App.NotificationWorkerBatch,
	)
	if err != nil {
		logrus.Fatalf("Error setting up notification queue: %v", err)
	}
	notificationWorker := notifier.NewWorker(notificationService, bootstrap.Logger, bootstrap.InternalConfig.App.NotificationWorkerBatch)
	notificationWorker.Start()
	bootstrap.WorkerStop = notificationWorker.Stop

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Directory
	patientDirectory := directory.NewPatientMongoDirectory(bootstrap.MongoDB, dbName)
	doctorDirectory := directory.NewDoctorMongoDirectory(bootstrap.MongoDB, dbName)

	// Schedules
	scheduleRepository := schedules.NewScheduleMongoRepository(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)
	scheduleUsecase := schedules.NewScheduleUsecase(
		scheduleRepository,
		appointmentRepository,
		doctorDirectory,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	scheduleController := controllers.NewScheduleController(bootstrap.Logger, scheduleUsecase)

	// Appointments
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		scheduleRepository,
		patientDirectory,
		doctorDirectory,
		lockerService,
		notificationService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, appointmentUsecase)

	// Billing
	billRepository := billing.NewBillMongoRepository(bootstrap.MongoDB, dbName)
	billingUsecase := billing.NewBillingUsecase(
		billRepository,
		appointmentRepository,
		patientDirectory,
		notificationService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	billingController := controllers.NewBillingController(bootstrap.Logger, billingUsecase)

	// Payments
	paymentRepository := payments.NewPaymentMongoRepository(bootstrap.MongoDB, dbName)
	transactionManager := database.NewMongoTransactionManager(bootstrap.MongoDB)
	paymentUsecase := payments.NewPaymentUsecase(
		paymentRepository,
		billRepository,
		transactionManager,
		lockerService,
		notificationService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	paymentController := controllers.NewPaymentController(bootstrap.Logger, paymentUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		scheduleController,
		appointmentController,
		billingController,
		paymentController,
	)
}
