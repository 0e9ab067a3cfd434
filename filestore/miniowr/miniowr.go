// Package miniowr provides a MinIO implementation of the filestore.FileStore interface.
package miniowr

import (
	"context"
	"io"

	"github.com/code19m/errx"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rise-and-shine/foodcatalog/filestore"
)

const (
	codeNoSuchKey    = "NoSuchKey"
	codeNoSuchBucket = "NoSuchBucket"

	// unknownSize lets minio stream the body with multipart upload.
	unknownSize = -1
)

// Client implements the filestore.FileStore interface using MinIO.
type Client struct {
	client *minio.Client
	bucket string
	region string
}

// New creates a new MinIO filestore client.
func New(cfg Config) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, errx.Wrap(err)
	}

	return &Client{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// EnsureBucket creates the configured bucket when it does not exist yet.
func (c *Client) EnsureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.bucket)
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"bucket": c.bucket}))
	}
	if exists {
		return nil
	}

	err = c.client.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{Region: c.region})
	if err != nil {
		return errx.Wrap(err, errx.WithDetails(errx.D{"bucket": c.bucket}))
	}
	return nil
}

// Upload streams the reader to the object at path.
// Content type is taken from the path extension.
func (c *Client) Upload(ctx context.Context, path string, reader io.Reader) (*filestore.FileInfo, error) {
	contentType := filestore.ContentTypeByPath(path)

	info, err := c.client.PutObject(ctx, c.bucket, path, reader, unknownSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, c.wrapMinioError(err, path)
	}

	return &filestore.FileInfo{
		Path:         path,
		Size:         info.Size,
		ContentType:  contentType,
		ETag:         info.ETag,
		LastModified: info.LastModified,
	}, nil
}

// Get retrieves a file and its metadata from the specified path.
func (c *Client) Get(ctx context.Context, path string) (*filestore.File, error) {
	obj, err := c.client.GetObject(ctx, c.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, c.wrapMinioError(err, path)
	}

	stat, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, c.wrapMinioError(err, path)
	}

	return &filestore.File{
		Content: obj,
		Info:    toFileInfo(path, stat),
	}, nil
}

// Stat returns object metadata.
func (c *Client) Stat(ctx context.Context, path string) (*filestore.FileInfo, error) {
	stat, err := c.client.StatObject(ctx, c.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		return nil, c.wrapMinioError(err, path)
	}

	info := toFileInfo(path, stat)
	return &info, nil
}

// Delete removes the object at path. MinIO treats missing objects as deleted.
func (c *Client) Delete(ctx context.Context, path string) error {
	err := c.client.RemoveObject(ctx, c.bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return c.wrapMinioError(err, path)
	}
	return nil
}

// Exists checks if an object exists at the specified path.
func (c *Client) Exists(ctx context.Context, path string) (bool, error) {
	_, err := c.Stat(ctx, path)
	if err == nil {
		return true, nil
	}
	if errx.IsCodeIn(err, filestore.CodeFileNotFound) {
		return false, nil
	}
	return false, err
}

func toFileInfo(path string, stat minio.ObjectInfo) filestore.FileInfo {
	return filestore.FileInfo{
		Path:         path,
		Size:         stat.Size,
		ContentType:  stat.ContentType,
		ETag:         stat.ETag,
		LastModified: stat.LastModified,
	}
}

// wrapMinioError converts MinIO errors to filestore error codes.
func (c *Client) wrapMinioError(err error, path string) error {
	details := errx.D{"bucket": c.bucket, "path": path}

	switch minio.ToErrorResponse(err).Code {
	case codeNoSuchKey:
		return errx.New("file not found",
			errx.WithCode(filestore.CodeFileNotFound),
			errx.WithType(errx.T_NotFound),
			errx.WithDetails(details),
		)
	case codeNoSuchBucket:
		return errx.Wrap(err, errx.WithDetails(details), errx.WithType(errx.T_Internal))
	}
	return errx.Wrap(err, errx.WithDetails(details))
}
