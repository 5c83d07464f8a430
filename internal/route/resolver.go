package route

import (
	"time"

	"triptools/internal/config"
	"triptools/internal/logger"
	"triptools/internal/models"
)

// Resolver picks a routing provider and degrades to a straight line when
// it fails. Routing errors never propagate past this type.
type Resolver struct {
	router    Router
	provider  string
	legDelay  time.Duration
	log       *logger.Logger
	fallbacks int
	sleep     func(time.Duration)
}

// NewResolver creates a resolver. With an API key it routes through
// openrouteservice, otherwise through the free OSRM instance.
func NewResolver(cfg *config.RoutingConfig, apiKey string, log *logger.Logger) *Resolver {
	var router Router

	provider := "osrm"
	if apiKey != "" {
		router = NewOpenRouteService(cfg, apiKey)
		provider = "openrouteservice"
	} else {
		router = NewOSRM(cfg)
	}

	return &Resolver{
		router:   router,
		provider: provider,
		legDelay: cfg.LegDelay(),
		log:      log,
		sleep:    time.Sleep,
	}
}

// Provider names the routing provider in use.
func (r *Resolver) Provider() string {
	return r.provider
}

// Fallbacks reports how many legs degraded to a straight line.
func (r *Resolver) Fallbacks() int {
	return r.fallbacks
}

// Drive fetches a driving path between two points. On any provider
// failure it logs a warning and returns the straight two-point path with
// dashed=true. A fixed pause follows every resolution, successful or
// not, to stay polite toward the free provider.
func (r *Resolver) Drive(from, to models.LatLng) (path models.Path, dashed bool) {
	path, err := r.router.Route(from, to)

	if r.legDelay > 0 {
		r.sleep(r.legDelay)
	}

	if err != nil || len(path) < 2 {
		if err != nil {
			r.log.Warn("route lookup failed, using straight line", "provider", r.provider, "error", err)
		}

		r.fallbacks++

		return models.Path{from, to}, true
	}

	return path, false
}
