package course

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

type fakeCourseRepo struct {
	courses     []*Course
	enrollments map[uuid.UUID]map[uuid.UUID]bool
}

func newFakeCourseRepo(courses ...*Course) *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:     courses,
		enrollments: map[uuid.UUID]map[uuid.UUID]bool{},
	}
}

func (f *fakeCourseRepo) Create(c *Course) error { f.courses = append(f.courses, c); return nil }

func (f *fakeCourseRepo) GetByID(id string) (*Course, error) {
	for _, c := range f.courses {
		if c.ID.String() == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseRepo) ListAll() ([]*Course, error) { return f.courses, nil }
func (f *fakeCourseRepo) Update(c *Course) error      { return nil }
func (f *fakeCourseRepo) Delete(id string) error      { return nil }

func (f *fakeCourseRepo) AddLesson(l *Lesson) error { return nil }
func (f *fakeCourseRepo) ListLessonsByCourse(courseID string) ([]*Lesson, error) {
	return nil, nil
}
func (f *fakeCourseRepo) DeleteLesson(id string) error { return nil }

func (f *fakeCourseRepo) Enroll(e *Enrollment) error {
	if f.enrollments[e.UserID] == nil {
		f.enrollments[e.UserID] = map[uuid.UUID]bool{}
	}
	f.enrollments[e.UserID][e.CourseID] = true
	return nil
}

func (f *fakeCourseRepo) Unenroll(userID, courseID uuid.UUID) error {
	delete(f.enrollments[userID], courseID)
	return nil
}

func (f *fakeCourseRepo) IsEnrolled(userID, courseID uuid.UUID) (bool, error) {
	return f.enrollments[userID][courseID], nil
}

func (f *fakeCourseRepo) ListEnrollmentsByUser(userID uuid.UUID) ([]*Enrollment, error) {
	return nil, nil
}

func TestListCourses(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCourseRepo(
		&Course{ID: uuid.New(), Title: "Linear Algebra", Subject: "math"},
		&Course{ID: uuid.New(), Title: "World History", Subject: "history"},
		&Course{ID: uuid.New(), Title: "Algorithms", Subject: "computer science"},
	)
	service := NewService(repo)

	t.Run("NoSearchReturnsAll", func(t *testing.T) {
		courses, err := service.ListCourses(ctx, "")
		if err != nil {
			t.Fatalf("ListCourses failed: %v", err)
		}
		if len(courses) != 3 {
			t.Errorf("expected 3 courses, got %d", len(courses))
		}
	})

	t.Run("FuzzyTitleMatch", func(t *testing.T) {
		courses, err := service.ListCourses(ctx, "algbra")
		if err != nil {
			t.Fatalf("ListCourses failed: %v", err)
		}
		if len(courses) != 1 || courses[0].Title != "Linear Algebra" {
			t.Errorf("fuzzy search should match Linear Algebra, got %v", courses)
		}
	})

	t.Run("SubjectMatch", func(t *testing.T) {
		courses, err := service.ListCourses(ctx, "history")
		if err != nil {
			t.Fatalf("ListCourses failed: %v", err)
		}
		if len(courses) != 1 || courses[0].Title != "World History" {
			t.Errorf("search should match the history course, got %v", courses)
		}
	})
}

func TestEnrollment(t *testing.T) {
	ctx := context.Background()
	c := &Course{ID: uuid.New(), Title: "Physics"}
	repo := newFakeCourseRepo(c)
	service := NewService(repo)
	userID := uuid.New()

	enrolled, err := service.Enrolled(ctx, userID, c.ID)
	if err != nil {
		t.Fatalf("Enrolled failed: %v", err)
	}
	if enrolled {
		t.Error("user should not be enrolled yet")
	}

	if err := service.Enroll(ctx, userID, c.ID); err != nil {
		t.Fatalf("Enroll failed: %v", err)
	}

	// enrolling twice is a no-op
	if err := service.Enroll(ctx, userID, c.ID); err != nil {
		t.Fatalf("second Enroll should be a no-op: %v", err)
	}

	enrolled, err = service.Enrolled(ctx, userID, c.ID)
	if err != nil {
		t.Fatalf("Enrolled failed: %v", err)
	}
	if !enrolled {
		t.Error("user should be enrolled after Enroll")
	}

	if err := service.Unenroll(ctx, userID, c.ID); err != nil {
		t.Fatalf("Unenroll failed: %v", err)
	}
	enrolled, _ = service.Enrolled(ctx, userID, c.ID)
	if enrolled {
		t.Error("user should not be enrolled after Unenroll")
	}
}
