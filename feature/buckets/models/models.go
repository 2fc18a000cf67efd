package models

import (
	"bucket-manager/core/backend"

	"github.com/tinylib/msgp/msgp"
)

// InfoVersion is written into every encoded BucketInfo.
const InfoVersion = 1

// BucketInfo is the persisted record of a bucket.
type BucketInfo struct {
	Bucket backend.Bucket `json:"bucket"`
	Owner  string         `json:"owner"`
}

// MarshalMsg appends the msgpack encoding of z to b.
func (z *BucketInfo) MarshalMsg(b []byte) (o []byte, err error) {
	o = msgp.Require(b, z.Msgsize())
	// map header, size 3
	o = msgp.AppendMapHeader(o, 3)
	o = msgp.AppendString(o, "v")
	o = msgp.AppendUint8(o, InfoVersion)
	o = msgp.AppendString(o, "bucket")
	// map header, size 3
	o = msgp.AppendMapHeader(o, 3)
	o = msgp.AppendString(o, "name")
	o = msgp.AppendString(o, z.Bucket.Name)
	o = msgp.AppendString(o, "pool")
	o = msgp.AppendString(o, z.Bucket.Pool)
	o = msgp.AppendString(o, "id")
	o = msgp.AppendUint64(o, z.Bucket.BucketID)
	o = msgp.AppendString(o, "owner")
	o = msgp.AppendString(o, z.Owner)
	return
}

// UnmarshalMsg decodes z from bts. Unknown fields are skipped so older
// readers accept records written by newer ones.
func (z *BucketInfo) UnmarshalMsg(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0001 uint32
	zb0001, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		err = msgp.WrapError(err)
		return
	}
	for zb0001 > 0 {
		zb0001--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			err = msgp.WrapError(err)
			return
		}
		switch msgp.UnsafeString(field) {
		case "v":
			_, bts, err = msgp.ReadUint8Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "v")
				return
			}
		case "bucket":
			bts, err = z.unmarshalBucket(bts)
			if err != nil {
				err = msgp.WrapError(err, "bucket")
				return
			}
		case "owner":
			z.Owner, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "owner")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				err = msgp.WrapError(err)
				return
			}
		}
	}
	o = bts
	return
}

func (z *BucketInfo) unmarshalBucket(bts []byte) (o []byte, err error) {
	var field []byte
	var zb0002 uint32
	zb0002, bts, err = msgp.ReadMapHeaderBytes(bts)
	if err != nil {
		return
	}
	for zb0002 > 0 {
		zb0002--
		field, bts, err = msgp.ReadMapKeyZC(bts)
		if err != nil {
			return
		}
		switch msgp.UnsafeString(field) {
		case "name":
			z.Bucket.Name, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "name")
				return
			}
		case "pool":
			z.Bucket.Pool, bts, err = msgp.ReadStringBytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "pool")
				return
			}
		case "id":
			z.Bucket.BucketID, bts, err = msgp.ReadUint64Bytes(bts)
			if err != nil {
				err = msgp.WrapError(err, "id")
				return
			}
		default:
			bts, err = msgp.Skip(bts)
			if err != nil {
				return
			}
		}
	}
	o = bts
	return
}

// Msgsize returns an upper bound estimate of the number of bytes occupied by the serialized message
func (z *BucketInfo) Msgsize() (s int) {
	s = 1 + 2 + msgp.Uint8Size + 7 + 1 + 5 + msgp.StringPrefixSize + len(z.Bucket.Name) +
		5 + msgp.StringPrefixSize + len(z.Bucket.Pool) + 3 + msgp.Uint64Size +
		6 + msgp.StringPrefixSize + len(z.Owner)
	return
}
