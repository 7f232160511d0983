package routes

import (
    "net/http"

    "backend/controllers"
    "backend/middlewares"

    "github.com/gin-gonic/gin"
)

type Controllers struct {
    Alerts     *controllers.AlertController
    Medication *controllers.MedicationController
    Monitoring *controllers.MonitoringController
    Symptoms   *controllers.SymptomController
    Realtime   *controllers.RealtimeController
}

func SetupRouter(ctl Controllers, jwtSecret []byte) *gin.Engine {
    r := gin.Default()

    r.GET("/health", func(c *gin.Context) {
        c.JSON(http.StatusOK, gin.H{"status": "ok"})
    })

    api := r.Group("/api")
    api.Use(middlewares.AuthMiddleware(jwtSecret))
    {
        alerts := api.Group("/alerts")
        {
            alerts.POST("", ctl.Alerts.Create)
            alerts.GET("", ctl.Alerts.List)
            alerts.PATCH("/:id/status", ctl.Alerts.UpdateStatus)
            alerts.DELETE("/:id", ctl.Alerts.Delete)
        }

        meds := api.Group("/medications")
        {
            meds.POST("", ctl.Medication.Create)
            meds.GET("", ctl.Medication.List)
            meds.PUT("/:id", ctl.Medication.Update)
            meds.DELETE("/:id", ctl.Medication.Delete)
            meds.POST("/:id/adherence", ctl.Medication.RecordAdherence)
        }

        monitoring := api.Group("/monitoring")
        {
            monitoring.POST("", ctl.Monitoring.Submit)
            monitoring.GET("/today", ctl.Monitoring.Today)
        }

        symptoms := api.Group("/symptoms")
        {
            symptoms.POST("/assess", ctl.Symptoms.Assess)
            symptoms.GET("/reports", ctl.Symptoms.ListReports)
            symptoms.POST("/upload", ctl.Symptoms.Upload)
        }

        api.GET("/ws", ctl.Realtime.AlertsWS)
    }

    return r
}
