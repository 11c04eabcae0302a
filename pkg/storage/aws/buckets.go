package aws

import (
	"context"
	"fmt"

	"gallerist/pkg/common"
	"gallerist/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func (s *S3Storage) DescribeBucket(ctx context.Context, bucket string) (storage.Bucket, error) {
	s.logger.Debug("Starting AWS DescribeBucket operation", "bucket", bucket)

	location, err := s.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return storage.Bucket{}, fmt.Errorf("error getting bucket location: %w", err)
	}
	// Buckets in us-east-1 report a null LocationConstraint
	region := string(location.LocationConstraint)
	if region == "" {
		region = "us-east-1"
	}

	info := storage.Bucket{
		Name:     bucket,
		Provider: common.AWS,
		Location: region,
	}

	// Creation date is only exposed through the account-wide listing
	if buckets, err := s.client.ListBuckets(ctx, &s3.ListBucketsInput{}); err != nil {
		s.logger.Warn("Failed to list buckets for creation date", "bucket", bucket, "error", err)
	} else {
		for _, b := range buckets.Buckets {
			if aws.ToString(b.Name) == bucket {
				info.CreatedAt = aws.ToTime(b.CreationDate)
				break
			}
		}
	}

	if versioning, err := s.client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		s.logger.Warn("Failed to get bucket versioning", "bucket", bucket, "error", err)
	} else {
		info.Versioning = versioning.Status == types.BucketVersioningStatusEnabled
	}

	// Tagging returns NoSuchTagSet for untagged buckets, which is not an error worth surfacing
	if tagging, err := s.client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{
		Bucket: aws.String(bucket),
	}); err != nil {
		s.logger.Debug("No bucket tagging available", "bucket", bucket, "error", err)
	} else if len(tagging.TagSet) > 0 {
		info.Labels = make(map[string]string, len(tagging.TagSet))
		for _, tag := range tagging.TagSet {
			info.Labels[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
		}
	}

	usage, err := s.bucketUsage(ctx, bucket)
	if err != nil {
		s.logger.Warn("Failed to compute bucket usage, usage will be reported as N/A", "bucket", bucket, "error", err)
		usage = -1 // Set usage to unknown on failure
	}
	info.UsageBytes = usage

	return info, nil
}

// bucketUsage sums object sizes across the whole bucket. S3 has no cheap
// aggregate equivalent to the GCS monitoring metric, so this walks the listing.
func (s *S3Storage) bucketUsage(ctx context.Context, bucket string) (int64, error) {
	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})

	var total int64
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return -1, fmt.Errorf("error listing objects for usage: %w", err)
		}
		for _, obj := range page.Contents {
			total += aws.ToInt64(obj.Size)
		}
	}
	return total, nil
}
