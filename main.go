package main

import (
	"context"
	"os"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/api"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/core"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/db"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/live"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/mail"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/notify"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/payment"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/security"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/uploader"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/worker"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load config
	config := util.LoadConfig(".env")

	// Connect to database
	queries := db.NewQueries()
	if err := queries.ConnectDB(config.DbConn); err != nil {
		util.LOGGER.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// Run auto migration
	if err := queries.AutoMigration(); err != nil {
		util.LOGGER.Error("Failed to run auto migration", "error", err)
		os.Exit(1)
	}

	// Connect to Redis
	if err := queries.ConnectRedis(context.Background(), &redis.Options{Addr: config.RedisAddr}); err != nil {
		util.LOGGER.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}

	// Stripe runs on a process-wide key
	payment.InitStripe(config.StripeSecretKey)

	// Revenue-counting policy shared by the API and the workers
	policy := stats.Policy{CountExpired: config.CountExpiredRevenue}

	// Core ticketing API client
	coreAPI := core.NewAPI(config.CoreAddr, config.CoreStaticToken, queries)

	// JWT service
	jwtService := security.NewJWTService([]byte(config.SecretKey), config.TokenExpiration, config.RefreshTokenExpiration)

	// Ably: REST side publishes, realtime side listens on the core API's order channels
	ablyService, err := notify.NewAblyService(config.AblyApiKey)
	if err != nil {
		util.LOGGER.Error("Failed to create Ably service", "error", err)
		os.Exit(1)
	}

	realtime, err := live.NewAblyRealtime(config.AblyApiKey)
	if err != nil {
		util.LOGGER.Error("Failed to connect Ably realtime", "error", err)
		os.Exit(1)
	}
	defer realtime.Close()

	hub := live.NewHub(live.NewSubscriptionManager(realtime), coreAPI, ablyService, queries, policy)

	// Cloudinary service for event artwork
	uploadService, err := uploader.NewCld(config.CloudName, config.CloudKey, config.CloudSecret)
	if err != nil {
		util.LOGGER.Error("Failed to create Cloudinary service", "error", err)
		os.Exit(1)
	}

	// Task distributor
	redisOpts := asynq.RedisClientOpt{Addr: config.RedisAddr}
	distributor := worker.NewRedisTaskDistributor(redisOpts)

	// Mail service
	mailService := mail.NewEmailService(config.SmtpHost, config.SmtpPort, config.Email, config.AppPassword)

	// Start background worker
	go StartBackgroundProcessor(redisOpts, queries, coreAPI, ablyService, mailService, policy)

	// Open a live view for every event already running so their stats stay warm
	// from boot instead of from the first dashboard visit
	go openLiveViews(coreAPI, hub)

	// Start API server
	server := api.NewServer(queries, coreAPI, jwtService, distributor, uploadService, hub, policy, config.Port)
	if err := server.Start(); err != nil {
		util.LOGGER.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}

// Helper method for starting background worker
func StartBackgroundProcessor(
	redisOpts asynq.RedisClientOpt,
	queries *db.Queries,
	coreAPI *core.API,
	ablyService *notify.AblyService,
	mailService mail.MailService,
	policy stats.Policy,
) {
	processor := worker.NewRedisTaskProcessor(redisOpts, queries, coreAPI, ablyService, mailService, policy)
	if err := processor.Start(); err != nil {
		util.LOGGER.Error("Failed to start task processor", "error", err)
		os.Exit(1)
	}
}

func openLiveViews(coreAPI *core.API, hub *live.Hub) {
	ctx := context.Background()

	events, err := coreAPI.GetEvents(ctx)
	if err != nil {
		util.LOGGER.Warn("Failed to fetch events for live view warmup", "error", err)
		return
	}

	for _, event := range events {
		if event.Status != core.EventLive {
			continue
		}
		if err := hub.Open(ctx, event.ID, event.Orders); err != nil {
			util.LOGGER.Warn("Failed to open live view", "event_id", event.ID, "error", err)
		}
	}
}
