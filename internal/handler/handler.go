package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	zh_translations "github.com/go-playground/validator/v10/translations/zh"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/dgzx-dev/schedule-board/backend/internal/config"
	"github.com/dgzx-dev/schedule-board/backend/internal/repository"
	"github.com/dgzx-dev/schedule-board/backend/internal/schedule"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	engine      *schedule.Engine
	translator  ut.Translator
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, engine *schedule.Engine, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	zh := zh.New()
	uni := ut.New(zh, zh)
	trans, _ := uni.GetTranslator("zh")
	if err := zh_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		engine:      engine,
		translator:  trans,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	// 展示页轮询的公开接口
	h.Mux.Get("/schedule", h.GetSchedule)
	h.Mux.Get("/header", h.GetHeader)

	// 认证相关
	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
	})

	// 以下 API 必须要在管理员登录后才允许调用
	h.Mux.Route("/admin", func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.settings)

		r.Patch("/school-info", h.UpdateSchoolInfo)
		r.Patch("/password", h.UpdateAdminPassword)
		r.Patch("/day-type", h.UpdateDayType)
		r.Patch("/auto-day-type", h.UpdateAutoDayType)

		r.Put("/periods", h.ReplacePeriods)

		r.Route("/terms", func(r chi.Router) {
			r.Get("/", h.GetAllTerms)
			r.Put("/", h.ReplaceTerms)
		})
	})
}
