package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Storage envoie les médias vers un bucket S3. Contrairement à ImageKit,
// S3 n'attribue pas de nom unique côté serveur : la clé est suffixée d'un
// UUID avant l'envoi pour éviter les collisions.
type S3Storage struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Storage(ctx context.Context, accessKey, secretKey, region, bucket string) (*S3Storage, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("chargement config AWS: %w", err)
	}

	return &S3Storage{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	name := opts.FileName
	if opts.UseUniqueFileName {
		name = uniqueName(name)
	}
	key := "posts/" + name

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        opts.File,
		ContentType: aws.String(opts.ContentType),
	})
	if err != nil {
		return nil, &UploadError{Backend: "s3", Reason: "upload échoué", Err: err}
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	return &UploadResult{
		FileID:   key,
		FileName: name,
		URL:      publicURL,
	}, nil
}

func (s *S3Storage) Delete(ctx context.Context, fileID string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(fileID),
	})
	if err != nil {
		return &UploadError{Backend: "s3", Reason: "suppression échouée", Err: err}
	}
	return nil
}

// uniqueName insère un suffixe UUID entre le nom et l'extension.
func uniqueName(name string) string {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s_%s%s", base, uuid.New().String(), ext)
}
