package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/exp/rand"

	"github.com/sushihentaime/cmsblog/internal/common"
)

const (
	notificationTemplate = "comment_notification.html"

	maxRetries = 5
	baseDelay  = 500 * time.Millisecond
)

// NewMailService returns a consumer that emails moderator about every
// submitted comment. siteURL is used to link to the post and may be empty.
func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, moderator, siteURL string, logger *slog.Logger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:        mb,
		m:         NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:    logger,
		moderator: moderator,
		siteURL:   strings.TrimRight(siteURL, "/"),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *MailService) SendCommentNotifications() {
	msgs, err := s.mb.Consume(common.CommentSubmittedKey, common.CommentExchange, common.CommentSubmittedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendCommentNotifications due to context cancellation")
				return
			}
		}
	}()
}

func (s *MailService) handle(msg amqp.Delivery) {
	var data struct {
		Name    string
		Email   string
		Comment string
		Slug    string
	}

	err := json.Unmarshal(msg.Body, &data)
	if err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		msg.Ack(false)
		return
	}

	payload := Notification{
		Name:    data.Name,
		Email:   data.Email,
		Comment: data.Comment,
		Slug:    data.Slug,
	}
	if s.siteURL != "" {
		payload.PostURL = s.siteURL + "/post/" + data.Slug
	}

	// using exponential backoff with jitter
	var attempt int
	for attempt = 0; attempt < maxRetries; attempt++ {
		err = s.m.send(s.moderator, payload, notificationTemplate)
		if err == nil {
			s.logger.Info("comment notification sent", slog.String("slug", data.Slug))
			break
		}

		delay := time.Duration(rand.Int63n(int64(baseDelay) << uint(attempt)))
		s.logger.Info("delaying comment notification", slog.String("slug", data.Slug), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return
		}
	}

	if attempt == maxRetries {
		s.logger.Error("could not send comment notification", slog.String("slug", data.Slug), slog.String("error", err.Error()))
	}

	msg.Ack(false)
}

func (s *MailService) Close() {
	s.cancel()
}
