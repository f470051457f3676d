package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	appconfig "github.com/hublist/hublist/hublist/config"
)

// AssetService stores listing icons and banners in DigitalOcean Spaces.
type AssetService struct {
	client    *s3.Client
	bucket    string
	region    string
	AssetRoot string
}

func NewAssetService(spacesKey, spacesSecret, region, bucket, assetRoot string) *AssetService {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.digitaloceanspaces.com", region),
		}, nil
	})

	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(spacesKey, spacesSecret, "")),
		config.WithRegion(region),
	)
	if err != nil {
		panic(fmt.Sprintf("Unable to load Spaces config: %v", err))
	}

	client := s3.NewFromConfig(cfg)

	return &AssetService{
		client:    client,
		bucket:    bucket,
		region:    region,
		AssetRoot: strings.TrimPrefix(assetRoot, "/"),
	}
}

func (s *AssetService) iconKey(listingID int64, ext string) string {
	return path.Join(s.AssetRoot, appconfig.ListingIconRoot, fmt.Sprintf("%d%s", listingID, ext))
}

func (s *AssetService) bannerKey(listingID int64, ext string) string {
	return path.Join(s.AssetRoot, appconfig.ListingBannerRoot, fmt.Sprintf("%d%s", listingID, ext))
}

// UploadListingIcon stores an icon image and returns its public URL.
func (s *AssetService) UploadListingIcon(ctx context.Context, listingID int64, data []byte, contentType string) (string, error) {
	return s.upload(ctx, s.iconKey(listingID, extForContentType(contentType)), data, contentType)
}

// UploadListingBanner stores a banner image and returns its public URL.
func (s *AssetService) UploadListingBanner(ctx context.Context, listingID int64, data []byte, contentType string) (string, error) {
	return s.upload(ctx, s.bannerKey(listingID, extForContentType(contentType)), data, contentType)
}

func (s *AssetService) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if len(data) > appconfig.MaxImageSize {
		return "", fmt.Errorf("image exceeds maximum size of %d bytes", appconfig.MaxImageSize)
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		Body:        bytes.NewReader(data),
		ContentType: &contentType,
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload asset: %w", err)
	}

	return s.PublicURL(key), nil
}

// DeleteListingAssets removes the icon and banner for a listing.
// Missing objects are not an error.
func (s *AssetService) DeleteListingAssets(ctx context.Context, listingID int64) error {
	keys := []string{
		s.iconKey(listingID, ".png"),
		s.iconKey(listingID, ".jpg"),
		s.bannerKey(listingID, ".png"),
		s.bannerKey(listingID, ".jpg"),
	}

	var errs []string
	for _, key := range keys {
		if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: &s.bucket,
			Key:    &key,
		}); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}

	if len(errs) == len(keys) {
		return fmt.Errorf("failed to delete assets: %s", strings.Join(errs, "; "))
	}
	return nil
}

// PublicURL returns the CDN URL for a stored key.
func (s *AssetService) PublicURL(key string) string {
	return fmt.Sprintf("https://%s.%s.cdn.digitaloceanspaces.com/%s", s.bucket, s.region, key)
}

func (s *AssetService) GetBucket() string {
	return s.bucket
}

func (s *AssetService) GetRegion() string {
	return s.region
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}
