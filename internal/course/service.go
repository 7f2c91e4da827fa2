package course

import (
	"context"
	"errors"
	"strings"

	"github.com/edustack-io/edustack/internal/config"
	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrUnauthorized   = errors.New("unauthorized")
)

type CourseService interface {
	CreateCourse(ctx context.Context, ownerID uuid.UUID, dto CreateCourseDTO) (*Course, error)
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	ListCourses(ctx context.Context, search string) ([]*Course, error)
	UpdateCourse(ctx context.Context, courseID string, ownerID uuid.UUID, dto UpdateCourseDTO) (*Course, error)
	DeleteCourse(ctx context.Context, courseID string, ownerID uuid.UUID) error

	AddLesson(ctx context.Context, courseID string, ownerID uuid.UUID, dto CreateLessonDTO) (*Lesson, error)
	ListLessons(ctx context.Context, courseID string) ([]*Lesson, error)
	RemoveLesson(ctx context.Context, lessonID string) error

	Enroll(ctx context.Context, userID, courseID uuid.UUID) error
	Unenroll(ctx context.Context, userID, courseID uuid.UUID) error
	Enrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*Enrollment, error)
}

type courseService struct {
	repo CourseRepository
}

func NewService(repo CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) CreateCourse(ctx context.Context, ownerID uuid.UUID, dto CreateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)

	c := &Course{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       dto.Title,
		Description: dto.Description,
		Subject:     dto.Subject,
	}

	if err := s.repo.Create(c); err != nil {
		log.WithError(err).Error("Failed to create course")
		return nil, err
	}

	log.Infof("Course %s created", c.ID)
	return c, nil
}

func (s *courseService) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	c, err := s.repo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	return c, nil
}

// ListCourses returns every course, fuzzy-filtered by title when search is
// non-empty.
func (s *courseService) ListCourses(ctx context.Context, search string) ([]*Course, error) {
	courses, err := s.repo.ListAll()
	if err != nil {
		return nil, err
	}

	if search == "" {
		return courses, nil
	}

	needle := strings.ToLower(search)
	return lo.Filter(courses, func(c *Course, _ int) bool {
		return fuzzy.Match(needle, strings.ToLower(c.Title)) ||
			fuzzy.Match(needle, strings.ToLower(c.Subject))
	}), nil
}

func (s *courseService) UpdateCourse(ctx context.Context, courseID string, ownerID uuid.UUID, dto UpdateCourseDTO) (*Course, error) {
	log := config.WithContext(ctx)

	c, err := s.repo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	if c.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	if dto.Title != nil {
		c.Title = *dto.Title
	}
	if dto.Description != nil {
		c.Description = *dto.Description
	}
	if dto.Subject != nil {
		c.Subject = *dto.Subject
	}

	if err := s.repo.Update(c); err != nil {
		log.WithError(err).Error("Failed to update course")
		return nil, err
	}
	return c, nil
}

func (s *courseService) DeleteCourse(ctx context.Context, courseID string, ownerID uuid.UUID) error {
	log := config.WithContext(ctx)

	c, err := s.repo.GetByID(courseID)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}
	if c.OwnerID != ownerID {
		return ErrUnauthorized
	}

	if err := s.repo.Delete(courseID); err != nil {
		log.WithError(err).Error("Failed to delete course")
		return err
	}
	return nil
}

func (s *courseService) AddLesson(ctx context.Context, courseID string, ownerID uuid.UUID, dto CreateLessonDTO) (*Lesson, error) {
	log := config.WithContext(ctx)

	c, err := s.repo.GetByID(courseID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCourseNotFound
	}
	if c.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}

	l := &Lesson{
		ID:         uuid.New(),
		CourseID:   c.ID,
		Title:      dto.Title,
		Content:    dto.Content,
		OrderIndex: dto.OrderIndex,
	}

	if err := s.repo.AddLesson(l); err != nil {
		log.WithError(err).Error("Failed to add lesson")
		return nil, err
	}
	return l, nil
}

func (s *courseService) ListLessons(ctx context.Context, courseID string) ([]*Lesson, error) {
	return s.repo.ListLessonsByCourse(courseID)
}

func (s *courseService) RemoveLesson(ctx context.Context, lessonID string) error {
	return s.repo.DeleteLesson(lessonID)
}

func (s *courseService) Enroll(ctx context.Context, userID, courseID uuid.UUID) error {
	log := config.WithContext(ctx)

	c, err := s.repo.GetByID(courseID.String())
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCourseNotFound
	}

	already, err := s.repo.IsEnrolled(userID, courseID)
	if err != nil {
		return err
	}
	if already {
		return nil
	}

	e := &Enrollment{
		ID:       uuid.New(),
		UserID:   userID,
		CourseID: courseID,
	}
	if err := s.repo.Enroll(e); err != nil {
		log.WithError(err).Error("Failed to enroll user")
		return err
	}

	log.Infof("User %s enrolled in course %s", userID, courseID)
	return nil
}

func (s *courseService) Unenroll(ctx context.Context, userID, courseID uuid.UUID) error {
	return s.repo.Unenroll(userID, courseID)
}

// Enrolled reports whether userID has an enrollment for courseID. It is the
// enrollment capability consumed by the quiz eligibility evaluator.
func (s *courseService) Enrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	return s.repo.IsEnrolled(userID, courseID)
}

func (s *courseService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*Enrollment, error) {
	return s.repo.ListEnrollmentsByUser(userID)
}
