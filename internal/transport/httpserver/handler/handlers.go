package handler

import (
	"time"

	"money-tracker-go/internal/domain/prices"
	profiledomain "money-tracker-go/internal/domain/profile"
	trackerdomain "money-tracker-go/internal/domain/tracker"
	"money-tracker-go/internal/integrations/mail"
	"money-tracker-go/pkg/logger"
)

type Handlers struct {
	Profiles *profiledomain.Service
	Tokens   *profiledomain.TokenManager
	Tracker  *trackerdomain.Service
	Prices   *prices.Service
	Mail     *mail.Sender
	log      logger.Logger
	now      func() time.Time
}

func New(profiles *profiledomain.Service, tokens *profiledomain.TokenManager, tracker *trackerdomain.Service, priceService *prices.Service, mailer *mail.Sender, log logger.Logger) *Handlers {
	return &Handlers{
		Profiles: profiles,
		Tokens:   tokens,
		Tracker:  tracker,
		Prices:   priceService,
		Mail:     mailer,
		log:      log,
		now:      time.Now,
	}
}
