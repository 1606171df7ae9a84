package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
	CONTEXT_STAFF_ID_KEY             ContextKey = "staff_id"
)

const (
	REQUEST_ID_PREFIX = "CRSYNC_SVC_"
)

const (
	MongoCollectionPatients     = "patients"
	MongoCollectionDoctors      = "doctors"
	MongoCollectionSchedules    = "doctor_schedules"
	MongoCollectionAppointments = "appointments"
	MongoCollectionBills        = "bills"
	MongoCollectionPayments     = "payment_transactions"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)
