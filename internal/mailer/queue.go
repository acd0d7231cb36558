package mailer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leadintake/internal/model"
)

var ErrQueueFull = errors.New("mailer: queue full, message not queued")

type queuedMessage struct {
	msg     Message
	retries int
}

// Queue sends messages in the background at a fixed rate.
type Queue struct {
	mailer   *Mailer
	ch       chan queuedMessage
	rate     time.Duration
	maxRetry int
	backoff  time.Duration
}

func NewQueue(m *Mailer, rate time.Duration, bufferSize, maxRetry int) *Queue {
	return &Queue{
		mailer:   m,
		ch:       make(chan queuedMessage, bufferSize),
		rate:     rate,
		maxRetry: maxRetry,
		backoff:  5 * time.Second,
	}
}

// Start processes queued messages at the configured rate until ctx is cancelled.
// On shutdown it drains any remaining messages before returning.
func (q *Queue) Start(ctx context.Context) {
	ticker := time.NewTicker(q.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			q.drain()
			return
		case <-ticker.C:
			select {
			case item := <-q.ch:
				q.attempt(ctx, item)
			default:
				// no message ready; wait for next tick
			}
		}
	}
}

// Enqueue adds a message to the queue without blocking.
func (q *Queue) Enqueue(msg Message) error {
	select {
	case q.ch <- queuedMessage{msg: msg}:
		return nil
	default:
		return ErrQueueFull
	}
}

// attempt sends a message, scheduling a context-aware retry with backoff on failure.
func (q *Queue) attempt(ctx context.Context, item queuedMessage) {
	err := q.mailer.send(item.msg)
	if err == nil {
		return
	}

	log := q.mailer.logger
	if item.retries >= q.maxRetry {
		log.Error("mailer: message dropped after max retries", "to", item.msg.To, "subject", item.msg.Subject, "err", err)
		return
	}

	item.retries++
	backoff := time.Duration(item.retries) * q.backoff
	log.Warn("mailer: send failed, retrying with backoff", "to", item.msg.To, "subject", item.msg.Subject, "retry", item.retries, "backoff", backoff)

	go func() {
		select {
		case <-time.After(backoff):
			select {
			case q.ch <- item:
			default:
				log.Error("mailer: requeue failed, queue full, message dropped", "to", item.msg.To)
			}
		case <-ctx.Done():
			log.Warn("mailer: retry cancelled during shutdown", "to", item.msg.To)
		}
	}()
}

// drain flushes remaining queued messages on shutdown, best-effort.
func (q *Queue) drain() {
	for {
		select {
		case item := <-q.ch:
			if err := q.mailer.send(item.msg); err != nil {
				q.mailer.logger.Error("mailer: drain send failed", "to", item.msg.To, "err", err)
			}
		default:
			return
		}
	}
}

// LeadSubmitted queues a notice to the configured staff recipients and a
// confirmation to the applicant.
func (q *Queue) LeadSubmitted(l model.Lead) error {
	cfg := q.mailer.config()

	var msgs []Message
	if len(cfg.To) > 0 {
		body, err := render(staffNoticeTmpl, l)
		if err != nil {
			return fmt.Errorf("render staff notice: %w", err)
		}
		msgs = append(msgs, Message{To: cfg.To, Subject: "New lead: " + l.FullName(), Body: body})
	}

	body, err := render(confirmationTmpl, l)
	if err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	msgs = append(msgs, Message{To: []string{l.Email}, Subject: "We received your case assessment request", Body: body})

	for _, msg := range msgs {
		if err := q.Enqueue(msg); err != nil {
			return err
		}
	}
	return nil
}
