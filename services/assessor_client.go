package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Assessment is what the external model returns. The alerting core only
// reads SeverityScore and builds alert copy from the rest.
type Assessment struct {
	SeverityScore   int    `json:"severityScore"` // 0-100
	ConditionLabel  string `json:"conditionLabel"`
	Recommendations string `json:"recommendations"`
}

// SymptomAssessor is the external AI collaborator contract.
type SymptomAssessor interface {
	Assess(ctx context.Context, description string, imageLabels []string) (*Assessment, error)
}

// HTTPAssessor calls the assessment model over HTTP.
type HTTPAssessor struct {
	endpoint string
	client   *http.Client
}

func NewHTTPAssessor(endpoint string) *HTTPAssessor {
	return &HTTPAssessor{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type assessRequest struct {
	Description string   `json:"description"`
	ImageLabels []string `json:"imageLabels,omitempty"`
}

func (a *HTTPAssessor) Assess(ctx context.Context, description string, imageLabels []string) (*Assessment, error) {
	body, err := json.Marshal(assessRequest{Description: description, ImageLabels: imageLabels})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assessor request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assessor returned status %d", resp.StatusCode)
	}

	var out Assessment
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode assessment: %v", err)
	}
	return &out, nil
}
