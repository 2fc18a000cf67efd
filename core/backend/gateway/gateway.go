package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"bucket-manager/core/backend"
	"bucket-manager/core/catalog"
	"bucket-manager/core/docstore"
	"bucket-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/tinylib/msgp/msgp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Options tunes a Gateway.
type Options struct {
	// Namespace prefixes the physical bucket of every pool.
	Namespace string
	// Region is passed to every pool creation.
	Region string
	// Concurrency bounds parallel pool creations; values below 1 mean 1.
	Concurrency int
}

// Gateway implements backend.Backend over object storage, the bucket
// catalog and the document store.
type Gateway struct {
	client  storage.Client
	catalog *catalog.Catalog
	docs    *docstore.Store
	opts    Options
	logger  *zap.Logger
}

var _ backend.Backend = (*Gateway)(nil)

// New creates a Gateway.
func New(client storage.Client, cat *catalog.Catalog, docs *docstore.Store, opts Options, logger *zap.Logger) *Gateway {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	return &Gateway{
		client:  client,
		catalog: cat,
		docs:    docs,
		opts:    opts,
		logger:  logger,
	}
}

func (g *Gateway) bucketOf(pool string) string {
	return storage.PoolBucket(g.opts.Namespace, pool)
}

// CreatePools creates one storage bucket per name, a bounded number at a
// time. Per-name failures land in the result slice; the returned error is
// only set when the request could not be issued at all.
func (g *Gateway) CreatePools(ctx context.Context, owner string, names []string) ([]error, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]error, len(names))
	var eg errgroup.Group
	eg.SetLimit(g.opts.Concurrency)

	for i, name := range names {
		eg.Go(func() error {
			err := g.client.MakeBucket(ctx, g.bucketOf(name), minio.MakeBucketOptions{Region: g.opts.Region})
			results[i] = translate(err)
			return nil
		})
	}
	_ = eg.Wait()

	g.logger.Debug("Pool creation request finished",
		zap.String("owner", owner),
		zap.Int("requested", len(names)))

	return results, nil
}

// CreateBucket registers the bucket in the catalog, which assigns its id.
// System buckets realize their own pool first; pool backed buckets require
// the pool to exist.
func (g *Gateway) CreateBucket(ctx context.Context, owner string, bucket *backend.Bucket, attrs map[string][]byte, opts backend.CreateOptions) error {
	switch {
	case opts.System:
		err := translate(g.client.MakeBucket(ctx, g.bucketOf(bucket.Pool), minio.MakeBucketOptions{Region: g.opts.Region}))
		if err != nil && !isAlreadyExists(err) {
			return fmt.Errorf("failed to create system pool %s: %w", bucket.Pool, err)
		}
	case opts.PoolBacked:
		exists, err := g.PoolExists(ctx, bucket.Pool)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("pool %s: %w", bucket.Pool, backend.ErrNotFound)
		}
	}

	rec := &catalog.Record{
		Name:   bucket.Name,
		Pool:   bucket.Pool,
		Owner:  owner,
		System: opts.System,
		AUID:   opts.AUID,
		Attrs:  EncodeAttrs(attrs),
	}
	id, err := g.catalog.Insert(ctx, rec, opts.Exclusive)
	if err != nil {
		return err
	}

	bucket.BucketID = id
	return nil
}

// DeleteBucket drops the catalog entry. The pool itself is left in place.
func (g *Gateway) DeleteBucket(ctx context.Context, owner string, bucket backend.Bucket, purge bool) error {
	if err := g.catalog.Delete(ctx, bucket.Name, purge); err != nil {
		return err
	}

	g.logger.Debug("Bucket deleted",
		zap.String("owner", owner),
		zap.String("bucket", bucket.Name),
		zap.Bool("purge", purge))
	return nil
}

// GetObject reads the whole object.
func (g *Gateway) GetObject(ctx context.Context, pool, key string) ([]byte, error) {
	obj, err := g.client.GetObject(ctx, g.bucketOf(pool), key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translate(err)
	}
	defer obj.Close()

	// The minio client defers request errors to the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translate(err)
	}
	return data, nil
}

// PutObject replaces the object.
func (g *Gateway) PutObject(ctx context.Context, pool, key string, data []byte) error {
	_, err := g.client.PutObject(ctx, g.bucketOf(pool), key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return translate(err)
}

// DocGet reads a shared document.
func (g *Gateway) DocGet(ctx context.Context, ref backend.ObjectRef) ([]byte, map[string][]byte, error) {
	return g.docs.Get(ctx, ref)
}

// DocSet writes entries to a shared document. The document's pool must exist.
func (g *Gateway) DocSet(ctx context.Context, ref backend.ObjectRef, entries map[string][]byte) error {
	if err := g.requirePool(ctx, ref.Pool); err != nil {
		return err
	}
	return g.docs.Set(ctx, ref, entries)
}

// DocSetKey writes one entry to a shared document. The document's pool must exist.
func (g *Gateway) DocSetKey(ctx context.Context, ref backend.ObjectRef, key string, value []byte) error {
	if err := g.requirePool(ctx, ref.Pool); err != nil {
		return err
	}
	return g.docs.SetKey(ctx, ref, key, value)
}

// DocRemoveKeys deletes entries from a shared document.
func (g *Gateway) DocRemoveKeys(ctx context.Context, ref backend.ObjectRef, keys ...string) error {
	return g.docs.RemoveKeys(ctx, ref, keys...)
}

// PoolExists reports whether the pool's storage bucket exists.
func (g *Gateway) PoolExists(ctx context.Context, pool string) (bool, error) {
	exists, err := g.client.BucketExists(ctx, g.bucketOf(pool))
	if err != nil {
		return false, translate(err)
	}
	return exists, nil
}

// BoundPools returns which of pools back a catalog bucket.
func (g *Gateway) BoundPools(ctx context.Context, pools []string) (map[string]string, error) {
	return g.catalog.BoundPools(ctx, pools)
}

func (g *Gateway) requirePool(ctx context.Context, pool string) error {
	exists, err := g.PoolExists(ctx, pool)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("pool %s: %w", pool, backend.ErrNotFound)
	}
	return nil
}

// translate maps storage responses onto backend sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case storage.IsNotFound(err):
		return fmt.Errorf("%w: %v", backend.ErrNotFound, err)
	case storage.IsAlreadyExists(err):
		return fmt.Errorf("%w: %v", backend.ErrAlreadyExists, err)
	default:
		return err
	}
}

func isAlreadyExists(err error) bool {
	return err != nil && errors.Is(err, backend.ErrAlreadyExists)
}

// EncodeAttrs packs bucket attributes as a msgpack map with sorted keys.
func EncodeAttrs(attrs map[string][]byte) []byte {
	if len(attrs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := msgp.AppendMapHeader(nil, uint32(len(keys)))
	for _, k := range keys {
		b = msgp.AppendString(b, k)
		b = msgp.AppendBytes(b, attrs[k])
	}
	return b
}

// DecodeAttrs reverses EncodeAttrs.
func DecodeAttrs(b []byte) (map[string][]byte, error) {
	if len(b) == 0 {
		return nil, nil
	}

	n, b, err := msgp.ReadMapHeaderBytes(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrCorrupt, err)
	}

	attrs := make(map[string][]byte, n)
	for i := uint32(0); i < n; i++ {
		var (
			k string
			v []byte
		)
		k, b, err = msgp.ReadStringBytes(b)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", backend.ErrCorrupt, err)
		}
		v, b, err = msgp.ReadBytesBytes(b, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", backend.ErrCorrupt, err)
		}
		attrs[k] = v
	}
	return attrs, nil
}
