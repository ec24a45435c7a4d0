package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/recipekeeper/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	if in.Body != nil {
		f.body, _ = io.ReadAll(in.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

var testS3Options = S3Options{
	Region:       "us-east-1",
	AccessKey:    "minioadmin",
	SecretKey:    "minioadmin",
	Bucket:       "recipes",
	BaseEndpoint: "http://127.0.0.1:9000/",
}

func stubS3(t *testing.T, putter *fakePutter) *s3.Options {
	t.Helper()

	origLoad := loadDefaultAWSConfig
	origNew := newS3ClientFromConfig
	t.Cleanup(func() {
		loadDefaultAWSConfig = origLoad
		newS3ClientFromConfig = origNew
	})

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				t.Fatalf("load options fn error: %v", err)
			}
		}
		if lo.Region != "us-east-1" {
			t.Fatalf("region not applied: %q", lo.Region)
		}
		if lo.Credentials == nil {
			t.Fatalf("credentials not applied")
		}
		return aws.Config{}, nil
	}

	captured := &s3.Options{}
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) putObjectAPI {
		for _, fn := range optFns {
			fn(captured)
		}
		return putter
	}
	return captured
}

func TestS3Store_Put(t *testing.T) {
	putter := &fakePutter{}
	opts := stubS3(t, putter)

	s, err := NewS3Store(context.Background(), testS3Options)
	require.NoError(t, err)

	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000/", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)

	url, err := s.Put(context.Background(), "20240101_120000_cake.jpg", "image/jpeg", []byte("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/recipes/uploads/20240101_120000_cake.jpg", url)

	require.NotNil(t, putter.in)
	assert.Equal(t, "recipes", aws.ToString(putter.in.Bucket))
	assert.Equal(t, "uploads/20240101_120000_cake.jpg", aws.ToString(putter.in.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(putter.in.ContentType))
	assert.Equal(t, "jpegdata", string(putter.body))
}

func TestS3Store_PutError(t *testing.T) {
	putter := &fakePutter{err: errors.New("bucket missing")}
	stubS3(t, putter)

	s, err := NewS3Store(context.Background(), testS3Options)
	require.NoError(t, err)

	_, err = s.Put(context.Background(), "a.png", "image/png", []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "uploads/a.png")
	assert.Contains(t, err.Error(), "bucket missing")
}

func TestNewS3Store_ConfigError(t *testing.T) {
	origLoad := loadDefaultAWSConfig
	t.Cleanup(func() { loadDefaultAWSConfig = origLoad })
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no profile")
	}

	_, err := NewS3Store(context.Background(), testS3Options)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile")
}

func TestKey(t *testing.T) {
	assert.Equal(t, "uploads/x.jpg", Key("x.jpg"))
	assert.Equal(t, "uploads/x.jpg", Key("a/b/x.jpg"))
}

func TestNew_S3Backend(t *testing.T) {
	stubS3(t, &fakePutter{})

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.ImageBackend = config.ImagesS3

	s, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.IsType(t, &S3Store{}, s)

	url, err := s.Put(context.Background(), "x.png", "image/png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9000/recipes/uploads/x.png", url)
}
