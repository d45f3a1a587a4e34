package middlewares

import (
	"patient-service/internal/app/config"
	"patient-service/internal/app/drivers/metrics"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	Metrics        *metrics.Metrics
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, metrics *metrics.Metrics, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		Metrics:        metrics,
		InternalConfig: internalConfig,
	}
}
