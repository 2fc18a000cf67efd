package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bucket-manager/core/backend"

	"github.com/zeebo/errs"
	"gorm.io/gorm"
)

// Error is the error class of catalog failures.
var Error = errs.Class("catalog")

// Record is one bucket row. Its primary key is the bucket id.
type Record struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"size:255;uniqueIndex;not null"`
	Pool      string `gorm:"size:255;index;not null"`
	Owner     string `gorm:"size:255;not null"`
	System    bool   `gorm:"not null;default:false"`
	AUID      uint64 `gorm:"column:auid;not null;default:0"`
	Attrs     []byte
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the pluralized default.
func (Record) TableName() string {
	return "buckets"
}

// Columns lists the columns the catalog reads and writes.
var Columns = []string{"id", "name", "pool", "owner", "system", "auid", "attrs", "created_at", "deleted_at"}

// Catalog assigns bucket ids and enforces unique bucket names.
type Catalog struct {
	db *gorm.DB
}

// New returns a Catalog over db.
func New(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Migrate creates or updates the buckets table.
func (c *Catalog) Migrate(ctx context.Context) error {
	return Error.Wrap(c.db.WithContext(ctx).AutoMigrate(&Record{}))
}

// DB exposes the underlying connection for schema inspection.
func (c *Catalog) DB() *gorm.DB {
	return c.db
}

// Insert records the bucket and returns its id. A live row with the same name
// is a conflict when exclusive is set; otherwise its id is returned unchanged.
func (c *Catalog) Insert(ctx context.Context, rec *Record, exclusive bool) (uint64, error) {
	err := c.db.WithContext(ctx).Create(rec).Error
	if err == nil {
		return rec.ID, nil
	}
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		return 0, Error.Wrap(err)
	}
	if exclusive {
		return 0, Error.Wrap(fmt.Errorf("bucket %q: %w", rec.Name, backend.ErrAlreadyExists))
	}

	existing, err := c.Get(ctx, rec.Name)
	if errors.Is(err, backend.ErrNotFound) {
		// The name is held by a soft deleted row.
		return 0, Error.Wrap(fmt.Errorf("bucket %q is reserved: %w", rec.Name, backend.ErrAlreadyExists))
	}
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

// Get returns the live record for name.
func (c *Catalog) Get(ctx context.Context, name string) (*Record, error) {
	var rec Record
	err := c.db.WithContext(ctx).Where("name = ?", name).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, Error.Wrap(fmt.Errorf("bucket %q: %w", name, backend.ErrNotFound))
	}
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &rec, nil
}

// Delete removes the bucket by name. Without purge the row is soft deleted and
// keeps its name reserved; purge drops it so the name can be reused.
func (c *Catalog) Delete(ctx context.Context, name string, purge bool) error {
	tx := c.db.WithContext(ctx)
	if purge {
		tx = tx.Unscoped()
	}

	res := tx.Where("name = ?", name).Delete(&Record{})
	if res.Error != nil {
		return Error.Wrap(res.Error)
	}
	if res.RowsAffected == 0 {
		return Error.Wrap(fmt.Errorf("bucket %q: %w", name, backend.ErrNotFound))
	}
	return nil
}

// BoundPools maps each pool in pools that backs a live bucket to that
// bucket's name.
func (c *Catalog) BoundPools(ctx context.Context, pools []string) (map[string]string, error) {
	bound := make(map[string]string)
	if len(pools) == 0 {
		return bound, nil
	}

	var recs []Record
	err := c.db.WithContext(ctx).
		Select("name", "pool").
		Where("pool IN ?", pools).
		Where(map[string]any{"system": false}).
		Find(&recs).Error
	if err != nil {
		return nil, Error.Wrap(err)
	}

	for _, rec := range recs {
		bound[rec.Pool] = rec.Name
	}
	return bound, nil
}
