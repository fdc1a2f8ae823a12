package evt

import (
	"github.com/asaskevich/EventBus"
)

const (
	// HashingStarted fires before a table is computed. Parameter: cache key, candidate count
	HashingStarted = "hashing:started"

	// HashingProgress fires while a table is computed. Parameter: cache key, hashed count, candidate count
	HashingProgress = "hashing:progress"

	// HashingFinished fires after a table is computed. Parameter: cache key, entry count, collision count, seconds
	HashingFinished = "hashing:finished"

	// CacheFileWritten fires after an artifact was stored. Parameter: cache key, target, size in bytes
	CacheFileWritten = "cache:fileWritten"

	// CacheFileFailed fires if an artifact couldn't be stored. Parameter: cache key, error
	CacheFileFailed = "cache:fileFailed"

	// ApplicationStarted fires on start of the application. Parameter: version number, build time
	ApplicationStarted = "application:started"
)

// nolint
var evtBus = EventBus.New()

// Bus returns the global bus instance
func Bus() EventBus.Bus {
	return evtBus
}
