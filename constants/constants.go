package constants

import (
	"os"
	"time"
)

func GetStorePath() string {
	path := os.Getenv("CTRANSPOSER_DB")
	if path != "" {
		return path
	}
	return "./out/ctransposer.db"
}

// GetDynamoEndpoint is empty unless reports should go to DynamoDB.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMODB_ENDPOINT")
}

func GetDynamoTable() string {
	table := os.Getenv("DYNAMODB_TABLE")
	if table != "" {
		return table
	}
	return "ctransposer-reports"
}

func GetRegion() string {
	region := os.Getenv("AWS_REGION")
	if region != "" {
		return region
	}
	return "localhost"
}

func GetListenAddr() string {
	addr := os.Getenv("LISTEN_ADDR")
	if addr != "" {
		return addr
	}
	return ":8080"
}

// Tempo for exported progressions when none is given.
const DefaultBPM = 90

// How long /live waits for typing to settle before transposing.
const LiveDebounce = 300 * time.Millisecond

const MaxRequestBytes = 1 << 20
