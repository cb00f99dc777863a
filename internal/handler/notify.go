package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

const notificationQueue = "notification_queue"

// notifyDayTypeChanged 把上课方式变更投递到消息队列，由 mail worker 发送邮件。
// 通知失败不影响请求本身，只记录日志
func (h *Handler) notifyDayTypeChanged(r *http.Request, settings *domain.Settings, automatic bool) {
	if h.config.Notification.ManagerEmail == "" {
		return
	}

	mailMessage := domain.MailMessage{
		Type: "day_type_changed",
		To:   h.config.Notification.ManagerEmail,
		Data: domain.DayTypeChangedMailData{
			SchoolName:  settings.SchoolName,
			ManagerName: settings.ManagerName,
			DayType:     string(settings.CurrentDayType),
			ChangedAt:   time.Now().In(h.engine.Location()).Format("2006-01-02 15:04"),
			Automatic:   automatic,
		},
	}

	mailData, err := json.Marshal(mailMessage)
	if err != nil {
		slog.Error("无法序列化通知邮件", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		notificationQueue,
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        mailData,
		},
	); err != nil {
		slog.Error("无法投递通知邮件", "path", r.URL.Path, "error", err)
	}
}
