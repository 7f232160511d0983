package services

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// ImageAnalyzer extracts descriptive labels from a symptom photo; they are
// forwarded to the assessor as extra context.
type ImageAnalyzer interface {
	DetectLabels(ctx context.Context, image []byte) ([]string, error)
}

type RekognitionAnalyzer struct {
	client *rekognition.Client
}

func NewRekognitionAnalyzer(client *rekognition.Client) *RekognitionAnalyzer {
	return &RekognitionAnalyzer{client: client}
}

// DetectLabels returns the top labels for raw image bytes.
func (r *RekognitionAnalyzer) DetectLabels(ctx context.Context, image []byte) ([]string, error) {
	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	return labels, nil
}
