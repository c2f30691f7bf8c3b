package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/mcvol/blobstore"
	minioblob "github.com/hupe1980/mcvol/blobstore/minio"
	s3blob "github.com/hupe1980/mcvol/blobstore/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// openStore resolves an -out location to a blob store.
//
//	dir, file://dir                          local directory
//	s3://bucket/prefix                       AWS S3 using the default credential chain
//	minio://host:port/bucket/prefix?secure=1 MinIO using MINIO_ACCESS_KEY and MINIO_SECRET_KEY
func openStore(ctx context.Context, uri string) (blobstore.Store, error) {
	if dir, ok := strings.CutPrefix(uri, "file://"); ok {
		return blobstore.NewLocalStore(dir), nil
	}
	if !strings.Contains(uri, "://") {
		return blobstore.NewLocalStore(uri), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid -out: %w", err)
	}

	switch u.Scheme {
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("invalid -out %q: missing bucket", uri)
		}
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return s3blob.NewStore(awss3.NewFromConfig(cfg), u.Host, strings.Trim(u.Path, "/")), nil

	case "minio":
		bucket, prefix, _ := strings.Cut(strings.Trim(u.Path, "/"), "/")
		if u.Host == "" || bucket == "" {
			return nil, fmt.Errorf("invalid -out %q: want minio://host/bucket/prefix", uri)
		}
		secure := u.Query().Get("secure")
		client, err := minio.New(u.Host, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: secure == "1" || secure == "true",
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		store := minioblob.NewStore(client, bucket, prefix)
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("minio bucket %s: %w", bucket, err)
		}
		return store, nil

	default:
		return nil, fmt.Errorf("invalid -out %q: unsupported scheme %q", uri, u.Scheme)
	}
}
