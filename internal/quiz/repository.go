package quiz

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRepository interface {
	Create(q *Quiz) error
	GetByID(id string) (*Quiz, error)
	ListByCourse(courseID string) ([]*Quiz, error)
	Update(q *Quiz) error
	Delete(id string) error

	AddQuestions(questions []*QuizQuestion) error
	ListQuestionsByQuiz(quizID string) ([]*QuizQuestion, error)
	DeleteQuestion(id string) error

	CreateAttempt(a *QuizAttempt) error
	CountByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (int64, error)
	ListAttemptsByUser(userID uuid.UUID) ([]*QuizAttempt, error)
}

type quizRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) QuizRepository {
	return &quizRepository{db: db}
}

func (r *quizRepository) Create(q *Quiz) error {
	return r.db.Create(q).Error
}

func (r *quizRepository) GetByID(id string) (*Quiz, error) {
	var quiz Quiz
	if err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index ASC")
	}).First(&quiz, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) ListByCourse(courseID string) ([]*Quiz, error) {
	var quizzes []*Quiz
	if err := r.db.
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&quizzes).Error; err != nil {
		return nil, err
	}
	return quizzes, nil
}

func (r *quizRepository) Update(q *Quiz) error {
	return r.db.Save(q).Error
}

func (r *quizRepository) Delete(id string) error {
	res := r.db.Delete(&Quiz{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quizRepository) AddQuestions(questions []*QuizQuestion) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(&questions).Error
}

func (r *quizRepository) ListQuestionsByQuiz(quizID string) ([]*QuizQuestion, error) {
	var questions []*QuizQuestion
	if err := r.db.
		Where("quiz_id = ?", quizID).
		Order("order_index ASC").
		Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *quizRepository) DeleteQuestion(id string) error {
	res := r.db.Delete(&QuizQuestion{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *quizRepository) CreateAttempt(a *QuizAttempt) error {
	return r.db.Create(a).Error
}

// CountByUserAndQuiz satisfies AttemptSource for the eligibility evaluator.
func (r *quizRepository) CountByUserAndQuiz(ctx context.Context, userID, quizID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *quizRepository) ListAttemptsByUser(userID uuid.UUID) ([]*QuizAttempt, error) {
	var attempts []*QuizAttempt
	if err := r.db.
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}
