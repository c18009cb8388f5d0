package db

import (
	"context"
	"errors"

	"github.com/jsphweid/ctransposer/constants"
	"github.com/jsphweid/ctransposer/logging"
	"github.com/jsphweid/ctransposer/model"
)

var ErrNotFound = errors.New("no reports for song")

// Store keeps a report for every song transposition that was recorded.
// Saving the same digest and shift again replaces the earlier report.
type Store interface {
	SaveReport(ctx context.Context, r model.Report) error
	// GetReports returns the reports for digest ordered by shift, or
	// ErrNotFound.
	GetReports(ctx context.Context, digest string) ([]model.Report, error)
	Close() error
}

// Open picks DynamoDB when DYNAMODB_ENDPOINT is set and the local sqlite
// file otherwise.
func Open(ctx context.Context) (Store, error) {
	if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
		logging.Debug("using dynamodb report store", "endpoint", endpoint, "table", constants.GetDynamoTable())
		return NewDynamoStore(endpoint, constants.GetRegion(), constants.GetDynamoTable())
	}
	path := constants.GetStorePath()
	logging.Debug("using sqlite report store", "path", path)
	return OpenSQLite(ctx, path)
}
