package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"patient-service/internal/app/config"
	"patient-service/internal/app/delivery/http/controllers"
	"patient-service/internal/app/delivery/http/middlewares"
	"patient-service/internal/app/delivery/http/routers"
	"patient-service/internal/app/drivers/httpclient"
	"patient-service/internal/app/drivers/logger"
	"patient-service/internal/app/drivers/metrics"
	"patient-service/internal/app/services/core/patients"
	patientsFhir "patient-service/internal/app/services/fhir_spark/patients"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewLogrusLogger(internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bootstrap := config.Bootstrap{
		Router: chi.NewRouter(),
		Logger: logger.NewZapLogger(driverConfig, internalConfig),
		HTTPClient: httpclient.NewFhirHTTPClient(httpclient.Options{
			Timeout:              time.Duration(internalConfig.FHIR.RequestTimeoutInSeconds) * time.Second,
			MaxRequestsPerSecond: internalConfig.FHIR.MaxRequestsPerSecond,
		}),
		Registry:       registry,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}
	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Infof("Patient service listening on %s, FHIR server %s", internalConfig.App.Port, internalConfig.FHIR.BaseUrl)
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Errorf("Failed to release resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Metrics
	appMetrics := metrics.New(bootstrap.Registry)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, appMetrics, bootstrap.InternalConfig)

	// Patient
	patientFhirClient := patientsFhir.NewPatientFhirClient(
		bootstrap.InternalConfig.FHIR.BaseUrl,
		bootstrap.HTTPClient,
		appMetrics,
		bootstrap.Logger,
	)
	patientUsecase := patients.NewPatientUsecase(patientFhirClient, bootstrap.InternalConfig, bootstrap.Logger)
	patientController := controllers.NewPatientController(bootstrap.Logger, patientUsecase)

	routers.SetupRoutes(
		bootstrap.Router,
		bootstrap.InternalConfig,
		middlewares,
		metrics.Handler(bootstrap.Registry),
		patientController,
	)
}
