package utils

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"mime"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

var s3Client *s3.Client

func InitS3() {
	s3Region := os.Getenv("S3_REGION")
	if s3Region == "" {
		s3Region = os.Getenv("AWS_REGION") // fallback
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(s3Region))
	if err != nil {
		log.Fatalf("Unable to load AWS config for S3: %v", err)
	}

	s3Client = s3.NewFromConfig(cfg)
}

// DecodeBase64Image splits a "data:<mime>;base64,<data>" URI into raw bytes
// and content type. The same bytes feed both S3 upload and vision analysis.
func DecodeBase64Image(dataURI string) ([]byte, string, error) {
	parts := strings.Split(dataURI, ",")
	if len(parts) != 2 || !strings.HasPrefix(parts[0], "data:") {
		return nil, "", fmt.Errorf("invalid base64 image")
	}

	mediaType := strings.TrimPrefix(parts[0], "data:")     // "image/jpeg;base64"
	contentType := strings.SplitN(mediaType, ";", 2)[0]    // "image/jpeg"

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %v", err)
	}
	return data, contentType, nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	}
	if exts, _ := mime.ExtensionsByType(contentType); len(exts) > 0 {
		return exts[0]
	}
	if parts := strings.SplitN(contentType, "/", 2); len(parts) == 2 {
		return "." + parts[1]
	}
	return ""
}

// UploadImageToS3 stores raw image bytes under the given key prefix and
// returns the public URL (via CloudFront) plus the object key.
func UploadImageToS3(imageData []byte, contentType, keyPrefix string) (string, string, error) {
	key := fmt.Sprintf("%s-%d%s", keyPrefix, time.Now().UnixNano(), extensionFor(contentType))

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(os.Getenv("S3_BUCKET")),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
		ACL:         s3types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to S3: %v", err)
	}

	cfURL := os.Getenv("CLOUDFRONT_URL")
	return fmt.Sprintf("%s/%s", cfURL, key), key, nil
}

// UploadBase64ImageToS3 is the data-URI convenience wrapper used for
// profile pictures.
func UploadBase64ImageToS3(base64Data, filenamePrefix string) (string, error) {
	data, contentType, err := DecodeBase64Image(base64Data)
	if err != nil {
		return "", err
	}
	url, _, err := UploadImageToS3(data, contentType, "profile-pictures/"+filenamePrefix)
	return url, err
}

// DownloadImageFromS3 fetches stored image bytes, used for re-analysis of
// a previously uploaded meal photo.
func DownloadImageFromS3(key string) ([]byte, error) {
	out, err := s3Client.GetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(os.Getenv("S3_BUCKET")),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from S3: %v", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object: %v", err)
	}
	return data, nil
}
