package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/live"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/service/notify"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/stats"
	"github.com/Futura-Tickets/monorepo-futuratickets-sub000/util"
	"github.com/hibiken/asynq"
)

const RefreshEventStats = "refresh-event-stats"

type RefreshEventStatsPayload struct {
	EventID string `json:"event_id"`
}

// Recompute an event's summary from a fresh snapshot and push it to the cache and
// the stats channel. Scheduled when a view wants warm stats without holding a live
// subscription (closed events, the dashboard's background refresh)
func (processor *RedisTaskProcessor) HandleRefreshEventStats(ctx context.Context, task *asynq.Task) error {
	var payload RefreshEventStatsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	event, err := processor.coreAPI.GetEvent(ctx, payload.EventID)
	if err != nil {
		return fmt.Errorf("failed to fetch event %s: %w", payload.EventID, err)
	}

	summary := stats.Aggregate(event.Orders, processor.policy)

	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	processor.queries.SetCache(ctx, live.StatsCacheKey(payload.EventID), string(data), 10*time.Minute)

	if err := processor.ablyService.Publish(ctx, notify.StatsChannel(payload.EventID), notify.StatsUpdated, summary); err != nil {
		// The cache refresh already landed, a dropped publish only delays clients until the next one
		util.LOGGER.Warn("failed to publish refreshed stats", "event_id", payload.EventID, "error", err)
	}

	util.LOGGER.Info("refreshed event stats",
		"event_id", payload.EventID,
		"tickets_sold", summary.TicketsSold,
		"total_revenue", summary.TotalRevenue,
	)

	return nil
}
