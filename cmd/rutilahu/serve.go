package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rutilahu/internal/auth"
	"rutilahu/internal/db"
	"rutilahu/internal/report"
	"rutilahu/internal/server"
	"rutilahu/internal/service"
	"rutilahu/internal/storage"
	"rutilahu/internal/store"
	"rutilahu/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}
	s3Client := s3.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	districtRepo := store.NewDistrictRepository(pool)
	villageRepo := store.NewVillageRepository(pool)
	userRepo := store.NewUserRepository(pool)
	housingRepo := store.NewHousingRepository(pool)
	documentRepo := store.NewDocumentRepository(pool)
	backlogRepo := store.NewBacklogRepository(pool)
	auditRepo := store.NewAuditRepository(pool)
	analyticsRepo := store.NewAnalyticsRepository(pool)
	gisRepo := store.NewGISRepository(pool)

	tokens, err := auth.NewTokenIssuer([]byte(config.TokenSecret), config.TokenIssuer, time.Duration(config.TokenTTLMin)*time.Minute)
	if err != nil {
		return err
	}

	auditSvc := service.NewAuditService(auditRepo, logger)
	authSvc := service.NewAuthService(userRepo, tokens, auditSvc, logger)
	referenceSvc := service.NewReferenceService(districtRepo, villageRepo, auditSvc, logger)
	housingSvc := service.NewHousingService(housingRepo, districtRepo, villageRepo, auditSvc, logger)
	backlogSvc := service.NewBacklogService(backlogRepo, districtRepo, villageRepo, auditSvc, logger)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, districtRepo, villageRepo)

	documentBlobs := storage.NewS3Storage(s3Client, config.DocumentBucket, awsConfig.Region)
	documentSvc := service.NewDocumentService(documentRepo, housingRepo, documentBlobs, config.DocumentKeyPrefix, auditSvc, logger)

	reportBlobs := storage.NewS3Storage(s3Client, config.ReportBucket, awsConfig.Region)
	exporters := map[types.ReportFormat]report.Exporter{
		types.ReportFormatCSV: report.NewCSVExporter(reportBlobs, config.ReportKeyPrefix),
		types.ReportFormatPDF: report.NewPDFExporter(reportBlobs, config.ReportKeyPrefix),
	}
	reportSvc := service.NewReportService(housingRepo, backlogRepo, analyticsRepo, exporters, auditSvc, logger)

	boundaries := service.NewSyntheticBoundaryProvider(districtRepo, villageRepo)
	gisSvc := service.NewGISService(gisRepo, housingRepo, boundaries, auditSvc, logger)

	srv, err := server.New(
		config,
		logger,
		tokens,
		authSvc,
		referenceSvc,
		housingSvc,
		documentSvc,
		backlogSvc,
		auditSvc,
		analyticsSvc,
		gisSvc,
		reportSvc,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
