package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/edustack-io/edustack/internal/aitutor"
	"github.com/edustack-io/edustack/internal/auth"
	"github.com/edustack-io/edustack/internal/course"
	"github.com/edustack-io/edustack/internal/middlewares"
	"github.com/edustack-io/edustack/internal/quiz"
	"github.com/edustack-io/edustack/internal/user"
)

type RouterConfig struct {
	UserHandler    *user.Handler
	CourseHandler  *course.Handler
	QuizHandler    *quiz.Handler
	AITutorHandler *aitutor.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/courses", course.Routes(cfg.CourseHandler))
		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/ai", aitutor.Routes(cfg.AITutorHandler))
	})

	return r
}
