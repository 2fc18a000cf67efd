// Package docstore implements shared key/payload documents on Redis.
//
// The available-pool registry is one such document: a hash whose fields are
// pool names. Gateway instances mutate it concurrently and Redis serializes
// each HSET/HDEL, which gives every publish and withdraw the single atomic
// overwrite semantics the allocator relies on. Nothing is cached client side.
package docstore
