package worker

import (
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/mail"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/notify"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/hibiken/asynq"
)

// Queue names, highest priority first
const (
	HIGH_IMPACT   = "high_impact"
	MEDIUM_IMPACT = "medium_impact"
	LOW_IMPACT    = "low_impact"
)

// Task processor interface
type TaskProcessor interface {
	Start() error
}

// Redis task processor
type RedisTaskProcessor struct {
	// Asynq server
	server *asynq.Server

	// Dependencies
	queries     *db.Queries
	coreAPI     *core.API
	ablyService *notify.AblyService
	mailService mail.MailService
	policy      stats.Policy
}

// Constructor method for Redis task processor
func NewRedisTaskProcessor(
	redisOpts asynq.RedisClientOpt,
	queries *db.Queries,
	coreAPI *core.API,
	ablyService *notify.AblyService,
	mailService mail.MailService,
	policy stats.Policy,
) *RedisTaskProcessor {
	return &RedisTaskProcessor{
		server: asynq.NewServer(redisOpts, asynq.Config{
			Queues: map[string]int{
				HIGH_IMPACT:   6,
				MEDIUM_IMPACT: 3,
				LOW_IMPACT:    1,
			},
		}),
		queries:     queries,
		coreAPI:     coreAPI,
		ablyService: ablyService,
		mailService: mailService,
		policy:      policy,
	}
}

// Method to start the worker server
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(RefreshEventStats, processor.HandleRefreshEventStats)
	mux.HandleFunc(SendNotification, processor.HandleSendNotification)

	return processor.server.Start(mux)
}
