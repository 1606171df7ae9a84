package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":    "is required",
	"min":         "must be at least %s characters long",
	"max":         "maximum at %s characters long",
	"numeric":     "must be a number",
	"len":         "must be %s characters long",
	"oneof":       "must be one of [%s]",
	"gt":          "must be greater than %s",
	"gte":         "must be greater than or equal to %s",
	"lt":          "must be less than %s",
	"lte":         "must be less than or equal to %s",
	"uuid":        "must be a valid UUID",
	"datetime":    "must match the %s layout",
	"clock_time":  "must be a valid HH:MM time",
	"day_of_week": "must be a valid day of week (MONDAY..SUNDAY)",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":      true,
	"max":      true,
	"len":      true,
	"gt":       true,
	"gte":      true,
	"lt":       true,
	"lte":      true,
	"oneof":    true,
	"datetime": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"

	ErrClientPatientNotFound     = "patient not found"
	ErrClientDoctorNotFound      = "doctor not found"
	ErrClientScheduleNotFound    = "doctor schedule not found"
	ErrClientAppointmentNotFound = "appointment not found"
	ErrClientBillNotFound        = "bill not found"
	ErrClientTransactionNotFound = "payment transaction not found"

	ErrClientDoctorNotAvailable    = "doctor is not available"
	ErrClientSlotAlreadyBooked     = "this time slot is already booked"
	ErrClientSlotNotOnSchedule     = "requested time is not on the doctor's schedule"
	ErrClientDateInPast            = "date must not be in the past"
	ErrClientAppointmentNotActive  = "appointment is no longer in a scheduled state"
	ErrClientBookingBusy           = "the slot is being booked by someone else, please retry"
	ErrClientScheduleAlreadyExists = "a schedule for this doctor and day already exists"

	ErrClientBillNotModifiable     = "bill can no longer be modified"
	ErrClientBillAlreadyPaid       = "bill is already fully paid"
	ErrClientBillCancelled         = "bill is cancelled"
	ErrClientBillHasPayments       = "bill already has payments recorded"
	ErrClientDiscountExceedsTotal  = "discount must not exceed the bill total"
	ErrClientPaymentExceedsBalance = "payment amount exceeds balance due"
	ErrClientPaymentAmountNotValid = "payment amount must be greater than zero"
	ErrClientBillMustHaveItems     = "bill must contain at least one item"
	ErrClientPaymentProcessingBusy = "a payment for this bill is being processed, please retry"
)

// Error messages for developers
const (
	ErrDevValidationFailed           = "request validation failed"
	ErrDevInvalidInput               = "invalid input"
	ErrDevCannotParseJSON            = "cannot parse JSON into struct or other data types"
	ErrDevCannotParseDate            = "cannot parse the requested date"
	ErrDevCannotParseClock           = "cannot parse clock time, expected HH:MM"
	ErrDevURLParamIDValidationFailed = "failed to validate URL param: %s"
	ErrDevServerDeadlineExceeded     = "server deadline exceeded while processing request"
	ErrDevServerProcess              = "server failed to process the request"
	ErrDevMissingRequestID           = "request ID missing from request context"

	ErrDevDBFailedToInsertDocument   = "failed to insert document into database"
	ErrDevDBFailedToUpdateDocument   = "failed to update document into database"
	ErrDevDBFailedToFindDocument     = "failed when do find document on database"
	ErrDevDBFailedToDeleteDocument   = "failed when do delete document on database"
	ErrDevDBFailedToIterateDocuments = "failed when iterating documents from database"
	ErrDevDBStringNotObjectID        = "given ID is not valid object ID"
	ErrDevDBDuplicateKey             = "duplicate key while inserting document"
	ErrDevDBFailedToStartSession     = "failed to start database session"

	ErrDevRedisSetData   = "failed to SET data into redis"
	ErrDevRedisGetData   = "failed to GET data from redis"
	ErrDevRedisGetNoData = "failed to GET data from redis, there is no data associated with key %s"
	ErrDevRedisDelete    = "failed to DELETE data from redis"
	ErrDevRedisUnlock    = "failed to release redis lock"

	ErrDevRabbitMQPublishMessage = "failed to publish message to queue %s"
	ErrDevCannotMarshalJSON      = "cannot marshal data into JSON"

	ErrDevAuthTokenMissing          = "authorization token is missing"
	ErrDevAuthTokenInvalidOrExpired = "authorization token is invalid or expired"

	ErrDevPatientNotFound     = "no patient document matches the given ID"
	ErrDevDoctorNotFound      = "no doctor document matches the given ID"
	ErrDevScheduleNotFound    = "no schedule document matches the given doctor and day"
	ErrDevAppointmentNotFound = "no appointment document matches the given ID"
	ErrDevBillNotFound        = "no bill document matches the given ID"
	ErrDevTransactionNotFound = "no payment transaction matches the given number"

	ErrDevSlotConflict             = "an active appointment already occupies the doctor, date and start time"
	ErrDevSlotNotOnGrid            = "requested start time does not fall on the schedule slot grid"
	ErrDevIllegalStatusTransition  = "appointment status transition is not allowed from the current state"
	ErrDevBillStateRejectsMutation = "bill state rejects this mutation"
	ErrDevOverpaymentRejected      = "recorded amount would exceed the bill balance"
	ErrDevLockNotAcquired          = "could not acquire distributed lock"
)
