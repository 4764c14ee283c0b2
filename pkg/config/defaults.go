package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "carebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort     = "8080"
	DefaultLogLevel = "INFO"

	DefaultAvailabilityBaseURL = "http://localhost:8082"
	DefaultBookingsBaseURL     = "http://localhost:8081"
	DefaultCareServicesBaseURL = "http://localhost:8083"

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 << 20

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMaxCustomWeeks  = 24
	DefaultMaxCustomMonths = 6

	DefaultVisitDurationMin = 60
	DefaultDayStart         = "08:00"
	DefaultDayEnd           = "20:00"

	DefaultPaginationLimit = 100
)

var (
	DefaultVisitingDaysGB = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	DefaultVisitingDaysUS = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
)
