package constants

import (
	"os"
	"time"
)

func getenv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func GetPort() string {
	return getenv("PORT", "8080")
}

// GetCatalogURL is the base URL of the incipit search service. Empty means
// search is not configured.
func GetCatalogURL() string {
	return os.Getenv("CATALOG_URL")
}

func GetDynamoEndpoint() string {
	return getenv("DYNAMO_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getenv("DYNAMO_REGION", "localhost")
}

func GetDynamoTable() string {
	return getenv("DYNAMO_TABLE", "incipitdex-works")
}

// GetMusicFont is an optional TTF with music symbols for PDF output.
func GetMusicFont() string {
	return os.Getenv("MUSIC_FONT")
}

const DefaultThreshold = 0.3

const DefaultWindow = 48

// DynamoDB BatchGetItem accepts at most this many keys
const MaxBatchKeys = 100

// Rounds of retrying UnprocessedKeys before a batch lookup gives up
const MaxBatchRetries = 5

const BatchRetryDelay = 50 * time.Millisecond
