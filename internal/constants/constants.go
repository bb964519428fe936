package constants

import "time"

const (
	FeedTimeout      = 10 * time.Second
	FeedMaxRedirects = 5
	RequestTimeout   = 30 * time.Second
	RefreshTimeout   = 30 * time.Second
)

const (
	DefaultPageSize        = 20
	DefaultRefreshInterval = 10 * time.Minute
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 1 * time.Hour

	// SnapshotKeep bounds how many raw feed snapshots are retained per feed
	// kind; older rows are pruned on save.
	SnapshotKeep = 10
)

const (
	ShutdownTimeout = 5 * time.Second
)
