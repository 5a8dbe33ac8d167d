package repositories

import (
	"gorm.io/gorm"
)

// BaseRepository holds the shared database handle embedded by the concrete
// repositories.
type BaseRepository struct {
	db *gorm.DB
}

func NewBaseRepository(db *gorm.DB) BaseRepository {
	return BaseRepository{db: db}
}

// DB exposes the raw connection for migrations and tests.
func (r *BaseRepository) DB() *gorm.DB {
	return r.db
}
