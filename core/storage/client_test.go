package storage_test

import (
	"errors"
	"testing"

	"bucket-manager/core/storage"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestPoolBucket(t *testing.T) {
	tests := []struct {
		namespace string
		pool      string
		want      string
	}{
		{"rgw", ".rgw.buckets", "rgw-sys-rgw-buckets"},
		{"rgw", "pab12cd34", "rgw-pab12cd34"},
		{"RGW", ".Pools.Avail", "rgw-sys-pools-avail"},
		{"", ".rgw.control", "sys-rgw-control"},
		{"rgw", ".pabcd1234", "rgw-sys-pabcd1234"},
		{"rgw", "a.b", "rgw-a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.pool, func(t *testing.T) {
			assert.Equal(t, tt.want, storage.PoolBucket(tt.namespace, tt.pool))
		})
	}
}

func TestPoolBucket_SystemPoolsDoNotCollide(t *testing.T) {
	pairs := [][2]string{
		{".pabcd1234", "pabcd1234"},
		{".a.b", "a.b"},
		{".rgw.buckets", "rgw.buckets"},
	}

	for _, p := range pairs {
		assert.NotEqual(t, storage.PoolBucket("rgw", p[0]), storage.PoolBucket("rgw", p[1]), p[0])
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		found  bool
		exists bool
	}{
		{"NoSuchKey", minio.ErrorResponse{Code: "NoSuchKey"}, true, false},
		{"NoSuchBucket", minio.ErrorResponse{Code: "NoSuchBucket"}, true, false},
		{"OwnedByYou", minio.ErrorResponse{Code: "BucketAlreadyOwnedByYou"}, false, true},
		{"Exists", minio.ErrorResponse{Code: "BucketAlreadyExists"}, false, true},
		{"AccessDenied", minio.ErrorResponse{Code: "AccessDenied"}, false, false},
		{"Plain", errors.New("boom"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.found, storage.IsNotFound(tt.err))
			assert.Equal(t, tt.exists, storage.IsAlreadyExists(tt.err))
		})
	}
}
