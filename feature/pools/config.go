package pools

import (
	"errors"
	"fmt"
	"time"

	"bucket-manager/core/backend"
)

// Config holds the pool preallocation policy and the persisted layout.
type Config struct {
	// IndexPool holds bucket-info objects and the registry document.
	IndexPool string `mapstructure:"index_pool" default:".rgw.buckets"`
	// AvailKey is the registry document key inside IndexPool.
	AvailKey string `mapstructure:"avail_key" default:".pools.avail"`
	// Prefix starts every generated pool name.
	Prefix string `mapstructure:"prefix" default:"p"`
	// Owner is recorded on pools and system buckets created by this service.
	Owner string `mapstructure:"owner" default:""`
	// PreallocateMax is the registry size maintenance tops up to, and the
	// batch size of the allocation fallback.
	PreallocateMax int `mapstructure:"preallocate_max" default:"100"`
	// PreallocateThreshold triggers maintenance when the registry is smaller.
	PreallocateThreshold int `mapstructure:"preallocate_threshold" default:"70"`
	// MaintainIntervalSeconds is the period of the background maintainer; 0
	// disables it.
	MaintainIntervalSeconds int `mapstructure:"maintain_interval_seconds" default:"60"`
	// CreateConcurrency bounds parallel pool creations in one batch.
	CreateConcurrency int `mapstructure:"create_concurrency" default:"8"`
}

// SuffixLength is the number of random characters after Prefix.
const SuffixLength = 8

// Validate rejects policies the maintainer cannot satisfy.
func (c Config) Validate() error {
	var errs []error
	if c.IndexPool == "" {
		errs = append(errs, errors.New("index_pool is required"))
	} else if !backend.IsSystemBucket(c.IndexPool) {
		errs = append(errs, fmt.Errorf("index_pool %q must start with %q", c.IndexPool, backend.SystemMarker))
	}
	if c.AvailKey == "" {
		errs = append(errs, errors.New("avail_key is required"))
	}
	if c.Prefix == "" {
		errs = append(errs, errors.New("prefix is required"))
	}
	if c.PreallocateMax < 1 {
		errs = append(errs, fmt.Errorf("preallocate_max must be at least 1, got %d", c.PreallocateMax))
	}
	if c.PreallocateThreshold < 0 || c.PreallocateThreshold > c.PreallocateMax {
		errs = append(errs, fmt.Errorf("preallocate_threshold must be within [0, %d], got %d", c.PreallocateMax, c.PreallocateThreshold))
	}
	if c.MaintainIntervalSeconds < 0 {
		errs = append(errs, fmt.Errorf("maintain_interval_seconds must not be negative, got %d", c.MaintainIntervalSeconds))
	}
	return errors.Join(errs...)
}

// AvailRef addresses the registry document.
func (c Config) AvailRef() backend.ObjectRef {
	return backend.ObjectRef{Pool: c.IndexPool, Key: c.AvailKey}
}

// MaintainInterval returns the maintainer period.
func (c Config) MaintainInterval() time.Duration {
	return time.Duration(c.MaintainIntervalSeconds) * time.Second
}
