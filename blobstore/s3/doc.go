// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    return err
//	}
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "runs/2026-10-19")
//	err = store.Put(ctx, "pi/report.json", data)
//
// # Features
//
//   - Multipart uploads through the SDK upload manager
//   - Range reads
//   - Automatic pagination for listing
//   - Configurable prefix for per-run isolation
package s3
