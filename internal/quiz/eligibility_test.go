package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeEnrollments struct {
	enrolled bool
	err      error
	calls    int
}

func (f *fakeEnrollments) Enrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error) {
	f.calls++
	return f.enrolled, f.err
}

type fakeAttempts struct {
	count int64
	err   error
	calls int
}

func (f *fakeAttempts) CountByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (int64, error) {
	f.calls++
	return f.count, f.err
}

func newTestQuiz() *Quiz {
	return &Quiz{
		ID:       uuid.New(),
		CourseID: uuid.New(),
		IsActive: true,
	}
}

func newTestEvaluator(enrollments EnrollmentSource, attempts AttemptSource, policy EnrollmentPolicy, now time.Time) *Evaluator {
	e := NewEvaluator(enrollments, attempts, policy)
	e.now = func() time.Time { return now }
	return e
}

func TestCanAttempt(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("InactiveQuiz", func(t *testing.T) {
		q := newTestQuiz()
		q.IsActive = false

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{}, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Error("inactive quiz should not be attemptable")
		}
		if reason != ReasonNotAvailable {
			t.Errorf("wrong reason: %q", reason)
		}
	})

	t.Run("WindowNotYetOpen", func(t *testing.T) {
		q := newTestQuiz()
		from := now.Add(time.Hour)
		q.AvailableFrom = &from

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{}, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed || reason != ReasonNotAvailable {
			t.Errorf("quiz opening in one hour should not be attemptable, got (%v, %q)", allowed, reason)
		}

		// Same quiz after the window opens.
		later := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{}, EnrollmentFailOpen, now.Add(2*time.Hour))
		allowed, reason, err = later.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed || reason != ReasonCanTake {
			t.Errorf("quiz past its opening should be attemptable, got (%v, %q)", allowed, reason)
		}
	})

	t.Run("WindowClosed", func(t *testing.T) {
		q := newTestQuiz()
		until := now.Add(-time.Minute)
		q.AvailableUntil = &until

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{}, EnrollmentFailOpen, now)
		allowed, reason, _ := e.CanAttempt(ctx, q, userID)
		if allowed || reason != ReasonNotAvailable {
			t.Errorf("closed quiz should not be attemptable, got (%v, %q)", allowed, reason)
		}
	})

	t.Run("NotEnrolled", func(t *testing.T) {
		q := newTestQuiz()

		e := newTestEvaluator(&fakeEnrollments{enrolled: false}, &fakeAttempts{}, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed || reason != ReasonNotEnrolled {
			t.Errorf("unenrolled learner should be rejected, got (%v, %q)", allowed, reason)
		}
	})

	t.Run("EnrollmentErrorFailOpen", func(t *testing.T) {
		q := newTestQuiz()
		enrollments := &fakeEnrollments{err: errors.New("enrollment store down")}

		e := newTestEvaluator(enrollments, &fakeAttempts{}, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("fail-open policy must swallow the enrollment error, got: %v", err)
		}
		if !allowed || reason != ReasonCanTake {
			t.Errorf("fail-open policy should let the attempt through, got (%v, %q)", allowed, reason)
		}
	})

	t.Run("EnrollmentErrorFailClosed", func(t *testing.T) {
		q := newTestQuiz()
		enrollments := &fakeEnrollments{err: errors.New("enrollment store down")}

		e := newTestEvaluator(enrollments, &fakeAttempts{}, EnrollmentFailClosed, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("fail-closed policy blocks without returning an error, got: %v", err)
		}
		if allowed || reason != ReasonNotEnrolled {
			t.Errorf("fail-closed policy should block the attempt, got (%v, %q)", allowed, reason)
		}
	})

	t.Run("UnlimitedAttempts", func(t *testing.T) {
		q := newTestQuiz()
		q.AttemptsAllowed = 0
		attempts := &fakeAttempts{count: 9999}

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, attempts, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed || reason != ReasonCanTake {
			t.Errorf("unlimited quiz should always be attemptable, got (%v, %q)", allowed, reason)
		}
		if attempts.calls != 0 {
			t.Errorf("attempt source should not be queried for unlimited quizzes, got %d calls", attempts.calls)
		}
	})

	t.Run("AttemptLimitReached", func(t *testing.T) {
		q := newTestQuiz()
		q.AttemptsAllowed = 2

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{count: 2}, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if allowed {
			t.Error("attempt over the limit should be rejected")
		}
		if reason != "Maximum attempts (2) reached" {
			t.Errorf("wrong reason: %q", reason)
		}
	})

	t.Run("AttemptBelowLimit", func(t *testing.T) {
		q := newTestQuiz()
		q.AttemptsAllowed = 2

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{count: 1}, EnrollmentFailOpen, now)
		allowed, reason, err := e.CanAttempt(ctx, q, userID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !allowed || reason != ReasonCanTake {
			t.Errorf("attempt below the limit should pass, got (%v, %q)", allowed, reason)
		}
	})

	t.Run("AttemptSourceErrorPropagates", func(t *testing.T) {
		q := newTestQuiz()
		q.AttemptsAllowed = 3
		wantErr := errors.New("attempt store down")

		e := newTestEvaluator(&fakeEnrollments{enrolled: true}, &fakeAttempts{err: wantErr}, EnrollmentFailOpen, now)
		allowed, _, err := e.CanAttempt(ctx, q, userID)
		if allowed {
			t.Error("attempt must not be allowed when the attempt source fails")
		}
		if !errors.Is(err, wantErr) {
			t.Errorf("attempt source error should propagate, got: %v", err)
		}
	})
}
