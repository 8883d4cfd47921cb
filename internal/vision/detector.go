// Package vision wraps the image label-detection collaborator. The detector
// returns (name, confidence) pairs on the 0-100 scale, already filtered to
// the configured minimum confidence, which the damage classifier consumes.
package vision

import (
	"context"
	"fmt"

	appconfig "example.com/fleetops/config"
	"example.com/fleetops/internal/damage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	rektypes "github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// LabelDetector is an interface for image label detection
type LabelDetector interface {
	DetectLabels(ctx context.Context, bucket, key string) ([]damage.Label, error)
}

// rekognitionDetector implements LabelDetector against AWS Rekognition
type rekognitionDetector struct {
	client        *rekognition.Client
	minConfidence float32
	maxLabels     int32
}

// mockDetector is a no-op implementation for local development; it reports
// no labels, so every photo classifies as undamaged.
type mockDetector struct{}

// NewLabelDetector creates a label detector. When vision is disabled a mock
// detector is returned.
func NewLabelDetector(ctx context.Context, cfg appconfig.VisionConfig) (LabelDetector, error) {
	if !cfg.Enabled {
		return &mockDetector{}, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return &rekognitionDetector{
		client:        rekognition.NewFromConfig(awsCfg),
		minConfidence: cfg.MinConfidence,
		maxLabels:     cfg.MaxLabels,
	}, nil
}

// DetectLabels detects labels for an object stored in S3
func (d *rekognitionDetector) DetectLabels(ctx context.Context, bucket, key string) ([]damage.Label, error) {
	out, err := d.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image: &rektypes.Image{
			S3Object: &rektypes.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
		MinConfidence: aws.Float32(d.minConfidence),
		MaxLabels:     aws.Int32(d.maxLabels),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to detect labels: %w", err)
	}

	labels := make([]damage.Label, 0, len(out.Labels))
	for _, l := range out.Labels {
		labels = append(labels, damage.Label{
			Name:       aws.ToString(l.Name),
			Confidence: float64(aws.ToFloat32(l.Confidence)),
		})
	}

	return labels, nil
}

// DetectLabels implementation for the mock detector
func (m *mockDetector) DetectLabels(ctx context.Context, bucket, key string) ([]damage.Label, error) {
	return nil, nil
}
