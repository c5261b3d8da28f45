package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/sushihentaime/bloglist/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, cfg MailConfig, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(cfg.Host, cfg.Port, cfg.Username, cfg.Password, cfg.Sender, NewTemplate()),
		logger:     logger,
		recipient:  cfg.Recipient,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SendBlogNotifications consumes blog.created events in the background and mails a
// notification for each one to the configured recipient.
func (s *MailService) SendBlogNotifications() error {
	msgs, err := s.mb.Consume(common.BlogCreatedKey, common.BlogExchange, common.BlogCreatedQueue)
	if err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var event common.BlogCreatedEvent
				err := json.Unmarshal(msg.Body, &event)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Nack(false, false)
					continue
				}

				if s.sendWithRetry(event) {
					s.logger.Info("new blog email sent", slog.Int("blog_id", event.ID), slog.String("recipient", s.recipient))
				} else {
					s.logger.Error("could not send new blog email", slog.Int("blog_id", event.ID))
				}
				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping SendBlogNotifications due to context cancellation")
				return
			}
		}
	}()

	return nil
}

// sendWithRetry uses exponential backoff with jitter and gives up early when the service is closed.
func (s *MailService) sendWithRetry(event common.BlogCreatedEvent) bool {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(s.recipient, event, newBlogTemplate)
		if err == nil {
			return true
		}

		delay := time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		s.logger.Info("delaying new blog email", slog.Int("blog_id", event.ID), slog.Int("attempt", attempt), slog.Duration("delay", delay), slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return false
		}
	}

	return false
}

// Close stops the consumer and waits for the in-flight message to finish.
func (s *MailService) Close() {
	s.cancel()
	s.wg.Wait()
}
