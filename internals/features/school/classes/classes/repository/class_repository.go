// file: internals/features/school/classes/classes/repository/class_repository.go
package repository

import (
	"context"
	"errors"

	"presensiku_backend/internals/features/school/classes/classes/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrClassNotFound = errors.New("kelas tidak ditemukan")

type ClassRepository struct {
	DB *gorm.DB
}

func NewClassRepository(db *gorm.DB) *ClassRepository {
	return &ClassRepository{DB: db}
}

// FindByID: kelas + subjects (urut nama)
func (r *ClassRepository) FindByID(ctx context.Context, classID uuid.UUID) (*model.ClassModel, error) {
	var m model.ClassModel
	err := r.DB.WithContext(ctx).
		Preload("Subjects", func(db *gorm.DB) *gorm.DB {
			return db.Order("class_subject_name ASC")
		}).
		Where("class_id = ?", classID).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ClassRepository) List(ctx context.Context, offset, limit int) ([]model.ClassModel, int64, error) {
	var (
		rows  []model.ClassModel
		total int64
	)
	q := r.DB.WithContext(ctx).Model(&model.ClassModel{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := q.Preload("Subjects").
		Order("class_name ASC").
		Offset(offset).Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ClassRepository) Create(ctx context.Context, m *model.ClassModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// Updates: partial update by map kolom → nilai
func (r *ClassRepository) Updates(ctx context.Context, classID uuid.UUID, updates map[string]any) error {
	res := r.DB.WithContext(ctx).Model(&model.ClassModel{}).
		Where("class_id = ?", classID).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (r *ClassRepository) Delete(ctx context.Context, classID uuid.UUID) error {
	res := r.DB.WithContext(ctx).Where("class_id = ?", classID).Delete(&model.ClassModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrClassNotFound
	}
	return nil
}

func (r *ClassRepository) AddSubject(ctx context.Context, m *model.ClassSubjectModel) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *ClassRepository) DeleteSubject(ctx context.Context, classID, subjectID uuid.UUID) error {
	res := r.DB.WithContext(ctx).
		Where("class_subject_id = ? AND class_subject_class_id = ?", subjectID, classID).
		Delete(&model.ClassSubjectModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
