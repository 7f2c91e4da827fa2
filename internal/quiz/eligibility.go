package quiz

import (
	"context"
	"fmt"
	"time"

	"github.com/edustack-io/edustack/internal/config"
	"github.com/google/uuid"
)

// EnrollmentSource reports whether a learner is enrolled in a course.
type EnrollmentSource interface {
	Enrolled(ctx context.Context, userID, courseID uuid.UUID) (bool, error)
}

// AttemptSource reports how many attempts a learner already made on a quiz.
type AttemptSource interface {
	CountByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (int64, error)
}

// EnrollmentPolicy selects what happens when the enrollment source fails.
type EnrollmentPolicy int

const (
	// EnrollmentFailOpen skips the enrollment check when it cannot be
	// determined.
	EnrollmentFailOpen EnrollmentPolicy = iota
	// EnrollmentFailClosed blocks the attempt when the enrollment source
	// fails.
	EnrollmentFailClosed
)

const (
	ReasonNotAvailable = "Quiz is not currently available"
	ReasonNotEnrolled  = "You are not enrolled in this course"
	ReasonCanTake      = "Can take quiz"
)

// Evaluator decides whether a learner may start a quiz. It holds no state of
// its own; concurrent evaluations are independent.
type Evaluator struct {
	enrollments EnrollmentSource
	attempts    AttemptSource
	policy      EnrollmentPolicy
	now         func() time.Time
}

func NewEvaluator(enrollments EnrollmentSource, attempts AttemptSource, policy EnrollmentPolicy) *Evaluator {
	return &Evaluator{
		enrollments: enrollments,
		attempts:    attempts,
		policy:      policy,
		now:         time.Now,
	}
}

// CanAttempt runs the eligibility checks in order and short-circuits on the
// first failing one. The returned reason is safe to show to the learner.
// Failures of the attempt source are returned as errors; failures of the
// enrollment source follow the configured policy.
func (e *Evaluator) CanAttempt(ctx context.Context, q *Quiz, userID uuid.UUID) (bool, string, error) {
	log := config.WithContext(ctx)

	if !q.IsActive {
		return false, ReasonNotAvailable, nil
	}

	now := e.now()
	if q.AvailableFrom != nil && now.Before(*q.AvailableFrom) {
		return false, ReasonNotAvailable, nil
	}
	if q.AvailableUntil != nil && now.After(*q.AvailableUntil) {
		return false, ReasonNotAvailable, nil
	}

	enrolled, err := e.enrollments.Enrolled(ctx, userID, q.CourseID)
	if err != nil {
		if e.policy == EnrollmentFailClosed {
			log.WithError(err).Warnf("Enrollment source failed, blocking attempt on quiz %s", q.ID)
			return false, ReasonNotEnrolled, nil
		}
		log.WithError(err).Warnf("Enrollment source failed, skipping enrollment check for quiz %s", q.ID)
	} else if !enrolled {
		return false, ReasonNotEnrolled, nil
	}

	if q.AttemptsAllowed > 0 {
		count, err := e.attempts.CountByUserAndQuiz(ctx, userID, q.ID)
		if err != nil {
			return false, "", err
		}
		if count >= int64(q.AttemptsAllowed) {
			return false, fmt.Sprintf("Maximum attempts (%d) reached", q.AttemptsAllowed), nil
		}
	}

	return true, ReasonCanTake, nil
}
