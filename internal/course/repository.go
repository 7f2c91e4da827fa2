package course

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(c *Course) error
	GetByID(id string) (*Course, error)
	ListAll() ([]*Course, error)
	Update(c *Course) error
	Delete(id string) error

	AddLesson(l *Lesson) error
	ListLessonsByCourse(courseID string) ([]*Lesson, error)
	DeleteLesson(id string) error

	Enroll(e *Enrollment) error
	Unenroll(userID, courseID uuid.UUID) error
	IsEnrolled(userID, courseID uuid.UUID) (bool, error)
	ListEnrollmentsByUser(userID uuid.UUID) ([]*Enrollment, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(c *Course) error {
	return r.db.Create(c).Error
}

func (r *courseRepository) GetByID(id string) (*Course, error) {
	var c Course
	if err := r.db.Preload("Lessons", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *courseRepository) ListAll() ([]*Course, error) {
	var courses []*Course
	if err := r.db.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Update(c *Course) error {
	return r.db.Save(c).Error
}

func (r *courseRepository) Delete(id string) error {
	return r.db.Delete(&Course{}, "id = ?", id).Error
}

func (r *courseRepository) AddLesson(l *Lesson) error {
	return r.db.Create(l).Error
}

func (r *courseRepository) ListLessonsByCourse(courseID string) ([]*Lesson, error) {
	var lessons []*Lesson
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("order_index ASC").
		Find(&lessons).Error; err != nil {
		return nil, err
	}
	return lessons, nil
}

func (r *courseRepository) DeleteLesson(id string) error {
	return r.db.Delete(&Lesson{}, "id = ?", id).Error
}

func (r *courseRepository) Enroll(e *Enrollment) error {
	return r.db.Create(e).Error
}

func (r *courseRepository) Unenroll(userID, courseID uuid.UUID) error {
	return r.db.
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&Enrollment{}).Error
}

func (r *courseRepository) IsEnrolled(userID, courseID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *courseRepository) ListEnrollmentsByUser(userID uuid.UUID) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	if err := r.db.
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}
