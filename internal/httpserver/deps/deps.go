package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beaconbio/linkgate/internal/index"
	"github.com/beaconbio/linkgate/internal/linkwrap"
	"github.com/beaconbio/linkgate/internal/logger"
	redisstore "github.com/beaconbio/linkgate/internal/store/redis"
)

type Deps struct {
	Logger               logger.Logger
	StartTime            time.Time
	Version              string
	Commit               string
	BuildDate            string
	GoVersion            string
	TimeNow              func() time.Time // for testing, defaults to time.Now
	AdminCIDRS           []string         // IPs allowed to access admin + health endpoints
	TrustProxy           bool             // true if running behind a trusted reverse proxy
	PublicBaseURL        string           // base URL for minted wrapper links
	RedisClient          *redis.Client    // Redis client connection
	Store                *redisstore.Store
	Links                *linkwrap.Service
	Catalog              *index.CatalogIndex
	DefaultLinkTTL       time.Duration // applied when a create request has no TTL
	CatalogReloadTrigger chan struct{} // channel to trigger manual catalog reload
}
