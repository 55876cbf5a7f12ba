package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	cc "github.com/dmitrijs2005/labelshop/internal/cms/config"
	"github.com/google/uuid"
)

const uploadURLValidity = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// imageExtensions lists the accepted cover content types.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Upload is a presigned PUT target for one cover image.
type Upload struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	Key       string    `json:"key"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
	// Headers must be sent with the PUT for the signature to match.
	Headers map[string]string `json:"headers"`
}

type UploadService struct {
	config *cc.Config
	now    func() time.Time

	once      sync.Once
	presigner *s3.PresignClient
	initErr   error
}

func NewUploadService(cfg *cc.Config) *UploadService {
	return &UploadService{config: cfg, now: time.Now}
}

// storageKey is covers/YYYY/MM/DD/<uuid><ext>.
func storageKey(d time.Time, ext string) string {
	return fmt.Sprintf("covers/%04d/%02d/%02d/%s%s", d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}

func (s *UploadService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	s.once.Do(func() {
		cfg, err := loadDefaultAWSConfig(ctx,
			config.WithRegion(s.config.S3Region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				s.config.S3AccessKey,
				s.config.S3SecretKey,
				"",
			)))
		if err != nil {
			s.initErr = err
			return
		}

		client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
			o.UsePathStyle = true
		})
		s.presigner = newS3PresignClient(client)
	})
	return s.presigner, s.initErr
}

// CreateUpload validates the content type and presigns a PUT for a new key.
func (s *UploadService) CreateUpload(ctx context.Context, filename, contentType string) (*Upload, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	ext, ok := imageExtensions[contentType]
	if !ok {
		return nil, invalid("content_type must be one of image/jpeg, image/png, image/webp, image/gif")
	}
	if e := strings.ToLower(path.Ext(filename)); e == ".jpeg" || e == ext {
		ext = e
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("s3 client: %w", err)
	}

	now := s.now()
	bucket := s.config.S3Bucket
	key := storageKey(now, ext)

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket:      &bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(uploadURLValidity))
	if err != nil {
		return nil, fmt.Errorf("presign put: %w", err)
	}

	return &Upload{
		URL:       req.URL,
		Method:    req.Method,
		Key:       key,
		PublicURL: strings.TrimRight(s.config.S3PublicBaseURL, "/") + "/" + key,
		ExpiresAt: now.Add(uploadURLValidity),
		Headers:   map[string]string{"Content-Type": contentType},
	}, nil
}
