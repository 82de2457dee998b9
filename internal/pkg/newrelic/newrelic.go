package newrelic

import (
	"github.com/ekolek/ekolek/internal/pkg/logger"
	"github.com/ekolek/ekolek/internal/pkg/models"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// InitNewRelic initializes the New Relic application based on configuration
func InitNewRelic(configs *models.Config) *newrelic.Application {
	if !configs.NewRelic.Enabled || configs.NewRelic.LicenseKey == "" {
		logger.Info("New Relic is disabled or license key not provided")
		return nil
	}

	nrApp, err := newrelic.NewApplication(
		newrelic.ConfigAppName(configs.NewRelic.AppName),
		newrelic.ConfigLicense(configs.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		newrelic.ConfigAppLogForwardingEnabled(true),
	)
	if err != nil {
		logger.Warn("Failed to initialize New Relic, continuing without it",
			logger.Err(err))
		return nil
	}

	logger.Info("New Relic enabled",
		logger.String("app_name", configs.NewRelic.AppName))
	return nrApp
}
