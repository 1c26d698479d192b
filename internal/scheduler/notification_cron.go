package cron

import (
	"context"

	"github.com/pawhub/pawhub-server/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartNotificationCronJobs schedules the hourly cleanup of expired
// notifications.
func StartNotificationCronJobs(notificationService *services.NotificationService) {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		err := notificationService.DeleteExpiredNotifications(context.Background())
		if err != nil {
			logrus.WithError(err).Error("DeleteExpiredNotifications failed")
		}
	})

	c.Start()
}
