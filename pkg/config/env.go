package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvCarerAppSecret = "CARER_APP_SECRET"
	EnvShiftTokenKey  = "SHIFT_TOKEN_KEY"

	EnvAvailabilityBaseURL = "AVAILABILITY_BASE_URL"
	EnvBookingsBaseURL     = "BOOKINGS_BASE_URL"
	EnvCareServicesBaseURL = "CARE_SERVICES_BASE_URL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMaxCustomWeeks  = "MAX_CUSTOM_WEEKS"
	EnvMaxCustomMonths = "MAX_CUSTOM_MONTHS"

	EnvDefaultVisitDurationMin = "DEFAULT_VISIT_DURATION_MIN"
	EnvDefaultDayStart         = "DEFAULT_DAY_START"
	EnvDefaultDayEnd           = "DEFAULT_DAY_END"
)
