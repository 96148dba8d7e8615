package filestore

import (
	"io"

	"github.com/Luismorlan/chirper/utils"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

const (
	DevS3Bucket  = "chirper-dev-attachments"
	ProdS3Bucket = "chirper-attachments"

	cloudFrontPrefix = "https://d20uffqoe1h0vv.cloudfront.net/"
)

// S3FileStore uploads attachments to a bucket; the reference is the S3
// key, derived from the file name so re-uploading the same attachment
// is idempotent.
type S3FileStore struct {
	bucket   string
	uploader *s3manager.Uploader
}

func NewS3FileStore(bucket string) (*S3FileStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String("us-west-1"),
	})
	if err != nil {
		return nil, err
	}

	return &S3FileStore{
		bucket:   bucket,
		uploader: s3manager.NewUploader(sess),
	}, nil
}

func (s *S3FileStore) Store(fileName string, content io.Reader) (string, error) {
	key, err := utils.TextToMd5Hash(fileName)
	if err != nil {
		return "", err
	}
	_, err = s.uploader.Upload(&s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   content,
	})
	if err != nil {
		return "", errors.Wrapf(err, "fail to upload %s to bucket %s", fileName, s.bucket)
	}
	return key, nil
}

func (s *S3FileStore) GetUrlFromReference(reference string) string {
	return cloudFrontPrefix + reference
}
