package services

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// mimeDocx is the content type for generated resume artifacts.
const mimeDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// StorageService archives generated resume documents in S3. It is
// optional: when unconfigured the service is nil and artifacts are
// returned inline only.
type StorageService struct {
	s3Client *s3.S3
	bucket   string
	region   string
}

// StorageConfig carries the S3 settings from config.
type StorageConfig struct {
	AccessKey string
	SecretKey string
	Region    string
	Bucket    string
}

// Configured reports whether all required S3 settings are present.
func (c StorageConfig) Configured() bool {
	return c.AccessKey != "" && c.SecretKey != "" && c.Region != "" && c.Bucket != ""
}

func NewStorageService(cfg StorageConfig) (*StorageService, error) {
	if !cfg.Configured() {
		return nil, fmt.Errorf("S3 storage is not configured")
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		bucket:   cfg.Bucket,
		region:   cfg.Region,
	}, nil
}

// UploadDocument stores a generated DOCX under the given key and
// returns the object URL.
func (s *StorageService) UploadDocument(key string, data []byte) (string, error) {
	_, err := s.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeDocx),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key), nil
}

// PresignDownload generates a time-limited download URL for an artifact.
func (s *StorageService) PresignDownload(key string) (string, error) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(1 * time.Hour)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url, nil
}

// DeleteDocument removes an artifact, used when a history row is deleted.
func (s *StorageService) DeleteDocument(key string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
