package sqlc

import (
	"context"
	"time"
)

const QuerierCtxTimeout = time.Second * 10

// DbManager bundles the query managers of the server. Built from
// a nil Querier it keeps every manager disabled.
type DbManager struct {
	Analytics *AnalyticsManager
}

func NewDbManager(queries Querier) DbManager {
	return DbManager{Analytics: NewAnalyticsManager(queries)}
}

// QueryCtx bounds a query that runs outside any request deadline.
func QueryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), QuerierCtxTimeout)
}
