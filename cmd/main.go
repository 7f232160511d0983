package main

import (
	"context"
	"log"
	"time"

	"backend/config"
	"backend/controllers"
	"backend/datastore"
	"backend/routes"
	"backend/scheduler"
	"backend/services"
	"backend/utils"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

func main() {
	cfg := config.Load()
	db := config.InitDB(cfg)

	ctx := context.Background()

	// AWS clients are built once here and injected everywhere.
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("AWS config load failed: %v", err)
	}

	alertRepo := datastore.NewAlertRepository(db)
	scheduleRepo := datastore.NewScheduleRepository(db)
	userRepo := datastore.NewUserRepository(db)
	monitoringRepo := datastore.NewMonitoringRepository(db)
	symptomRepo := datastore.NewSymptomReportRepository(db)

	hub := services.NewRealtimeHub()

	alertSvc := services.NewAlertService(alertRepo, userRepo)
	dispatcher := services.NewNotificationDispatcher(
		services.NewSESEmailGateway(ses.NewFromConfig(awsCfg), cfg.SESSource),
		services.NewSNSSmsGateway(sns.NewFromConfig(awsCfg), cfg.SMSSenderID),
		services.NewRealtimeAppChannel(hub),
		alertSvc,
	)
	alertSvc.SetDispatcher(dispatcher)

	uploader := utils.NewS3Uploader(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.CDNBaseURL)

	medicationSvc := services.NewMedicationService(scheduleRepo)
	reminderSvc := services.NewReminderService(scheduleRepo, alertSvc)
	routineSvc := services.NewRoutineCheckService(userRepo, alertSvc)
	monitoringSvc := services.NewMonitoringService(monitoringRepo, userRepo, alertSvc)
	assessmentSvc := services.NewAssessmentService(
		symptomRepo,
		services.NewHTTPAssessor(cfg.AssessorURL),
		services.NewRekognitionAnalyzer(rekognition.NewFromConfig(awsCfg)),
		uploader,
		alertSvc,
	)

	sched := scheduler.New()
	sched.Every("medication-reminders", time.Minute, reminderSvc.RunDueReminders)
	sched.Every("missed-dose-scan", 30*time.Minute, reminderSvc.RunMissedDoseScan)
	sched.DailyAt("routine-check", cfg.RoutineCheckHour, 0, routineSvc.RunDailyPass)
	sched.DailyAt("monitoring-reminder-morning", cfg.MorningReminderHour, 0, func(ctx context.Context) error {
		return monitoringSvc.RunReminderPass(ctx, services.WindowMorning)
	})
	sched.DailyAt("monitoring-reminder-evening", cfg.EveningReminderHour, 0, func(ctx context.Context) error {
		return monitoringSvc.RunReminderPass(ctx, services.WindowEvening)
	})
	sched.Start(ctx)

	r := routes.SetupRouter(routes.Controllers{
		Alerts:     controllers.NewAlertController(alertSvc),
		Medication: controllers.NewMedicationController(medicationSvc),
		Monitoring: controllers.NewMonitoringController(monitoringSvc),
		Symptoms:   controllers.NewSymptomController(assessmentSvc, uploader),
		Realtime:   controllers.NewRealtimeController(hub),
	}, []byte(cfg.JWTSecret))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
