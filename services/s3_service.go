package services

import (
	"context"
	"sync"
	"time"

	appconfig "amora_server/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	s3Client *s3.Client
	s3Once   sync.Once
)

func getS3Client() *s3.Client {
	s3Once.Do(func() {
		cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(appconfig.AppConfig.AWSRegion))
		if err != nil {
			panic(err)
		}
		s3Client = s3.NewFromConfig(cfg)
	})
	return s3Client
}

// GenerateUploadURL generates a presigned URL for uploading a file under the
// given key prefix (profile-photos/ or story-images/).
func GenerateUploadURL(prefix, fileName, fileType string) (string, string, error) {
	key := prefix + time.Now().Format("20060102150405") + "-" + fileName
	params := &s3.PutObjectInput{
		Bucket:      aws.String(appconfig.AppConfig.S3BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(fileType),
	}
	presigner := s3.NewPresignClient(getS3Client())
	presignedURL, err := presigner.PresignPutObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", "", err
	}
	return presignedURL.URL, key, nil
}

// GenerateReadURL generates a presigned URL for reading a file
func GenerateReadURL(key string) (string, error) {
	params := &s3.GetObjectInput{
		Bucket: aws.String(appconfig.AppConfig.S3BucketName),
		Key:    aws.String(key),
	}
	presigner := s3.NewPresignClient(getS3Client())
	presignedURL, err := presigner.PresignGetObject(context.TODO(), params, s3.WithPresignExpires(5*time.Minute))
	if err != nil {
		return "", err
	}
	return presignedURL.URL, nil
}
