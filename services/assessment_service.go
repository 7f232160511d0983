package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"backend/models"
	"backend/utils"
)

// EscalationThreshold is the inclusive severity score at which an
// assessment triggers an immediate symptom alert.
const EscalationThreshold = 70

// ImageStore persists the uploaded symptom photo and returns its URL.
type ImageStore interface {
	UploadBase64Image(ctx context.Context, dataURI, prefix string) (string, error)
}

// AssessmentService runs a symptom through the external assessor, persists
// the report, and escalates severe results into an alert on all three
// channels. Image handling is best effort: a failed upload or label pass
// never blocks the assessment itself.
type AssessmentService struct {
	reports  SymptomReportRepository
	assessor SymptomAssessor
	analyzer ImageAnalyzer
	images   ImageStore
	alerts   AlertIntake
}

func NewAssessmentService(reports SymptomReportRepository, assessor SymptomAssessor, analyzer ImageAnalyzer, images ImageStore, alerts AlertIntake) *AssessmentService {
	return &AssessmentService{
		reports:  reports,
		assessor: assessor,
		analyzer: analyzer,
		images:   images,
		alerts:   alerts,
	}
}

// AssessSymptom scores the description (plus optional photo), stores the
// report, and fires the escalation when the score reaches the threshold.
func (s *AssessmentService) AssessSymptom(ctx context.Context, userID uint, description, imageBase64 string) (*models.SymptomReport, error) {
	if strings.TrimSpace(description) == "" {
		return nil, validationErrorf("symptom description is required")
	}

	var imageURL string
	var labels []string
	if imageBase64 != "" {
		imageURL, labels = s.analyzeImage(ctx, userID, imageBase64)
	}

	assessment, err := s.assessor.Assess(ctx, description, labels)
	if err != nil {
		return nil, fmt.Errorf("symptom assessment failed: %w", err)
	}

	report := &models.SymptomReport{
		UserID:          userID,
		Description:     description,
		ImageURL:        imageURL,
		ConditionLabel:  assessment.ConditionLabel,
		Recommendations: assessment.Recommendations,
		SeverityScore:   assessment.SeverityScore,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	if assessment.SeverityScore >= EscalationThreshold {
		s.escalate(ctx, report, assessment)
	}
	return report, nil
}

func (s *AssessmentService) analyzeImage(ctx context.Context, userID uint, imageBase64 string) (string, []string) {
	var imageURL string
	if s.images != nil {
		url, err := s.images.UploadBase64Image(ctx, imageBase64, fmt.Sprintf("symptoms/%d", userID))
		if err != nil {
			log.Printf("WARN (Assessment): image upload failed for user %d: %v", userID, err)
		} else {
			imageURL = url
		}
	}

	var labels []string
	if s.analyzer != nil {
		_, raw, err := utils.DecodeDataURI(imageBase64)
		if err == nil {
			labels, err = s.analyzer.DetectLabels(ctx, raw)
		}
		if err != nil {
			log.Printf("WARN (Assessment): label detection failed for user %d: %v", userID, err)
		}
	}
	return imageURL, labels
}

// escalate creates and dispatches the high-priority symptom alert, then
// flags the originating report so reports and dashboards can show that
// the escalation happened. A failed alert leaves the report unflagged.
func (s *AssessmentService) escalate(ctx context.Context, report *models.SymptomReport, a *Assessment) {
	msg := fmt.Sprintf("Severe symptoms detected (score %d): %s.", a.SeverityScore, a.ConditionLabel)
	if a.Recommendations != "" {
		msg += " " + a.Recommendations
	}

	_, err := s.alerts.Handle(ctx, AlertRequest{
		UserID:   report.UserID,
		Type:     models.AlertTypeSymptom,
		Severity: a.SeverityScore,
		Title:    "Urgent: Severe Symptom Alert",
		Message:  msg,
		Channels: models.ChannelList{models.ChannelEmail, models.ChannelSMS, models.ChannelApp},
	})
	if err != nil {
		log.Printf("ERROR (Assessment): escalation alert for report %d failed: %v", report.ID, err)
		return
	}

	if err := s.reports.MarkEscalated(ctx, report.ID); err != nil {
		log.Printf("ERROR (Assessment): failed to flag report %d: %v", report.ID, err)
		return
	}
	report.Escalated = true
}

// ListReports returns the user's past assessments, newest-first.
func (s *AssessmentService) ListReports(ctx context.Context, userID uint, limit int) ([]models.SymptomReport, error) {
	if limit <= 0 || limit > maxAlertPageSize {
		limit = defaultAlertPageSize
	}
	return s.reports.ListByUser(ctx, userID, limit)
}
