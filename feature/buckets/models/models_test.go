package models_test

import (
	"math"
	"testing"

	"bucket-manager/core/backend"
	"bucket-manager/feature/buckets/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func TestBucketInfo_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		info models.BucketInfo
	}{
		{"Zero", models.BucketInfo{}},
		{"Tenant", models.BucketInfo{Bucket: backend.Bucket{Name: "photos", Pool: "p4k2m9x0q", BucketID: 42}, Owner: "alice"}},
		{"System", models.BucketInfo{Bucket: backend.Bucket{Name: ".rgw.control", Pool: ".rgw.control"}, Owner: "rgw"}},
		{"MaxID", models.BucketInfo{Bucket: backend.Bucket{Name: "n", Pool: "p", BucketID: math.MaxUint64}, Owner: "ünïcode"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.info.MarshalMsg(nil)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(data), tt.info.Msgsize())

			var got models.BucketInfo
			rest, err := got.UnmarshalMsg(data)
			require.NoError(t, err)
			assert.Empty(t, rest)
			assert.Equal(t, tt.info, got)
		})
	}
}

func TestBucketInfo_SkipsUnknownFields(t *testing.T) {
	b := msgp.AppendMapHeader(nil, 3)
	b = msgp.AppendString(b, "v")
	b = msgp.AppendUint8(b, 2)
	b = msgp.AppendString(b, "owner")
	b = msgp.AppendString(b, "alice")
	b = msgp.AppendString(b, "placement")
	b = msgp.AppendArrayHeader(b, 2)
	b = msgp.AppendString(b, "default")
	b = msgp.AppendInt64(b, -1)

	var got models.BucketInfo
	_, err := got.UnmarshalMsg(b)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Owner)
}

func TestBucketInfo_Malformed(t *testing.T) {
	info := models.BucketInfo{Bucket: backend.Bucket{Name: "photos", Pool: "pabc", BucketID: 7}, Owner: "alice"}
	data, err := info.MarshalMsg(nil)
	require.NoError(t, err)

	tests := map[string][]byte{
		"Empty":     {},
		"NotAMap":   msgp.AppendString(nil, "photos"),
		"Truncated": data[:len(data)-3],
		"WrongType": msgp.AppendString(msgp.AppendString(msgp.AppendMapHeader(nil, 1), "bucket"), "x"),
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			var got models.BucketInfo
			_, err := got.UnmarshalMsg(payload)
			assert.Error(t, err)
		})
	}
}
