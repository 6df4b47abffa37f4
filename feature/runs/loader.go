package runs

import (
	"recon-engine/core/source"

	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	metrics *Metrics
}

// NewFeature creates the runs feature. A nil metrics leaves /metrics unmounted.
// Posted rule sets may only use sources of kinds, DefaultSourceKinds when none are given.
func NewFeature(svc *Service, metrics *Metrics, kinds ...source.Kind) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc, kinds...), metrics: metrics}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "runs"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	if f.metrics != nil {
		app.Get("/metrics", f.metrics.Handler())
	}
	return nil
}
