package services

import (
	"context"
	"os"

	"backend/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

type VisionService struct {
	client *rekognition.Client
}

func NewVisionService() (*VisionService, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(os.Getenv("AWS_REGION")))
	if err != nil {
		return nil, err
	}
	return &VisionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectFoodSignals runs Rekognition label detection over raw image bytes
// and flattens the response into detections: one per label, then one per
// localized label instance (with its bounding box). Label order before
// instance order matters downstream — label-sourced duplicates win during
// food extraction. Confidence is normalized to 0–1.
func (s *VisionService) DetectFoodSignals(ctx context.Context, image []byte) ([]utils.Detection, error) {
	out, err := s.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: image},
		MaxLabels:     aws.Int32(20),
		MinConfidence: aws.Float32(50),
	})
	if err != nil {
		return nil, err
	}

	var detections []utils.Detection
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		detections = append(detections, utils.Detection{
			Name:       *l.Name,
			Confidence: float64(aws.ToFloat32(l.Confidence)) / 100,
			Source:     utils.DetectionSourceLabel,
		})
	}
	for _, l := range out.Labels {
		if l.Name == nil {
			continue
		}
		for _, inst := range l.Instances {
			d := utils.Detection{
				Name:       *l.Name,
				Confidence: float64(aws.ToFloat32(inst.Confidence)) / 100,
				Source:     utils.DetectionSourceObject,
			}
			if b := inst.BoundingBox; b != nil {
				d.Box = &utils.BoundingBox{
					Left:   float64(aws.ToFloat32(b.Left)),
					Top:    float64(aws.ToFloat32(b.Top)),
					Width:  float64(aws.ToFloat32(b.Width)),
					Height: float64(aws.ToFloat32(b.Height)),
				}
			}
			detections = append(detections, d)
		}
	}
	return detections, nil
}
