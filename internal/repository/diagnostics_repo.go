package repository

import (
	"gorm.io/gorm"
)

// TableStat is one table's storage footprint from information_schema.
// Rows is the engine's estimate, not an exact count.
type TableStat struct {
	TableName  string `gorm:"column:table_name" json:"table"`
	Rows       int64  `gorm:"column:row_estimate" json:"row_estimate"`
	DataBytes  int64  `gorm:"column:data_bytes" json:"data_bytes"`
	IndexBytes int64  `gorm:"column:index_bytes" json:"index_bytes"`
}

// DiagnosticsRepository exposes storage-level metadata for reports
type DiagnosticsRepository interface {
	TableStats() ([]TableStat, error)
}

type diagnosticsRepository struct {
	db *gorm.DB
}

// NewDiagnosticsRepository creates a new DiagnosticsRepository
func NewDiagnosticsRepository(db *gorm.DB) DiagnosticsRepository {
	return &diagnosticsRepository{db: db}
}

func (r *diagnosticsRepository) TableStats() ([]TableStat, error) {
	var rows []TableStat
	err := r.db.Raw(`SELECT table_name AS table_name,
			table_rows AS row_estimate,
			data_length AS data_bytes,
			index_length AS index_bytes
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		ORDER BY table_name`).Scan(&rows).Error
	return rows, err
}
