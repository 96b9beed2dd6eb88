package common

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EmployeeStore persists employees in a sqlite database.
type EmployeeStore struct {
	database *gorm.DB
	dsn      string
}

// OpenEmployeeStore opens (and migrates) the sqlite database at dsn.
// Use "file::memory:" for a private in-memory database.
func OpenEmployeeStore(dsn string) (*EmployeeStore, error) {
	if dir, ok := databaseDir(dsn); ok {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, WrapError(UCodeDatabase, "failed to create database directory "+dir, err, false)
		}
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, WrapError(UCodeDatabase, "failed to open employee database "+dsn, err, false)
	}
	if err = db.AutoMigrate(&EmployeeModel{}); err != nil {
		return nil, WrapError(UCodeDatabase, "failed to migrate employee database "+dsn, err, false)
	}
	return &EmployeeStore{database: db, dsn: dsn}, nil
}

// databaseDir returns the parent directory of a sqlite DSN that names a file.
func databaseDir(dsn string) (string, bool) {
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		return "", false
	}
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return "", false
	}
	return filepath.Dir(path), true
}

func (s *EmployeeStore) DSN() string {
	return s.dsn
}

// Save inserts or replaces the employee with the same ID.
func (s *EmployeeStore) Save(ctx context.Context, e Employee) error {
	if e.ID == "" || e.Email == "" {
		return NewError(UCodeMalformedRecord, "employee needs both an id and an email", false)
	}
	model := ToEmployeeModel(e)
	if err := s.database.WithContext(ctx).Save(&model).Error; err != nil {
		return WrapError(UCodeDatabase, "failed to save employee "+e.ID, err, false)
	}
	return nil
}

// Delete removes the employee with the given ID. Deleting an unknown ID is not an error.
func (s *EmployeeStore) Delete(ctx context.Context, id string) error {
	if err := s.database.WithContext(ctx).Delete(&EmployeeModel{}, "id = ?", id).Error; err != nil {
		return WrapError(UCodeDatabase, "failed to delete employee "+id, err, false)
	}
	return nil
}

// DeleteByKeys removes every employee whose ID is id or whose email is email.
func (s *EmployeeStore) DeleteByKeys(ctx context.Context, id string, email string) error {
	result := s.database.WithContext(ctx).Where("id = ? OR email = ?", id, email).Delete(&EmployeeModel{})
	if result.Error != nil {
		return WrapError(UCodeDatabase, "failed to delete employee "+id, result.Error, false)
	}
	return nil
}

// Get returns the employee with the given ID.
func (s *EmployeeStore) Get(ctx context.Context, id string) (Employee, bool, error) {
	var model EmployeeModel
	result := s.database.WithContext(ctx).Take(&model, "id = ?", id)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Employee{}, false, nil
	}
	if result.Error != nil {
		return Employee{}, false, WrapError(UCodeDatabase, "failed to get employee "+id, result.Error, false)
	}
	return model.ToEmployee(), true, nil
}

// All returns every stored employee, ordered by ID.
func (s *EmployeeStore) All(ctx context.Context) ([]Employee, error) {
	var models []EmployeeModel
	if err := s.database.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, WrapError(UCodeDatabase, "failed to list employees", err, false)
	}
	return Map(models, func(m EmployeeModel) Employee {
		return m.ToEmployee()
	}), nil
}

func (s *EmployeeStore) Close() error {
	sqlDB, err := s.database.DB()
	if err != nil {
		return WrapError(UCodeDatabase, "failed to get the underlying connection", err, false)
	}
	return sqlDB.Close()
}
