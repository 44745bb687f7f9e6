package service

import (
	"sync"

	"github.com/emzola/critica/config"
	"github.com/emzola/critica/internal/jsonlog"
	"github.com/emzola/critica/repository"
)

type Service interface {
	categories
	genres
	titles
	reviews
	comments
	users
	tokens
}

// service defines the app's service layer.
type service struct {
	config config.Config
	wg     *sync.WaitGroup
	logger *jsonlog.Logger
	repo   repository.Repository
}

// New creates a new instance of Service.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository) *service {
	return &service{
		config: cfg,
		wg:     wg,
		logger: logger,
		repo:   repo,
	}
}
