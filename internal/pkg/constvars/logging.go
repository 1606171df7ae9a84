package constvars

const (
	LoggingRequestIDKey   = "request_id"
	LoggingDataKey        = "data"
	LoggingQueryParamsKey = "query_params"
	LoggingResponseKey    = "response"
	LoggingRequestKey     = "request"
	LoggingMethodKey      = "method"
	LoggingEndpointKey    = "endpoint"
	LoggingRemoteAddrKey  = "remote_addr"
	LoggingUserAgentKey   = "user_agent"
	LoggingQueryKey       = "query"
	LoggingStatusCodeKey  = "status_code"
	LoggingDurationKey    = "duration"
	LoggingSuccessKey     = "success"
	LoggingErrorTypeKey   = "error_type"
	LoggingQueueKey       = "queue"

	LoggingRedisKey              = "redis_key"
	LoggingLockExpirationTimeKey = "lock_expiration_time"
	LoggingLockValueKey          = "lock_value"
	LoggingLockStoredValueKey    = "lock_stored_value"
	LoggingLockExpectedValueKey  = "lock_expected_value"

	LoggingDoctorIDKey          = "doctor_id"
	LoggingPatientIDKey         = "patient_id"
	LoggingScheduleIDKey        = "schedule_id"
	LoggingAppointmentIDKey     = "appointment_id"
	LoggingAppointmentNumberKey = "appointment_number"
	LoggingBillIDKey            = "bill_id"
	LoggingBillNumberKey        = "bill_number"
	LoggingTransactionIDKey     = "transaction_id"
	LoggingTransactionNumberKey = "transaction_number"
	LoggingDateKey              = "date"
	LoggingStartTimeKey         = "start_time"
	LoggingAmountKey            = "amount"
	LoggingStatusKey            = "status"
)
