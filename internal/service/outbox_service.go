package service

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/config"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/email"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/model"
	"github.com/launchpitch/Pitch-Marketplace-Backend/internal/repository"
)

// Dispatch concurrency and the base delay for the retry backoff.
const (
	dispatchConcurrency = 5
	retryBaseDelay      = time.Minute
)

// OutboxService delivers pending outbox entries. State transitions write
// entries transactionally; this service drains them on a schedule, so a
// provider outage delays side effects instead of losing them or failing the
// operation that caused them.
type OutboxService struct {
	outboxRepo  *repository.OutboxRepository
	mailer      email.Mailer
	batchSize   int
	maxAttempts int
}

// NewOutboxService creates a new OutboxService with the provided dependencies.
func NewOutboxService(outboxRepo *repository.OutboxRepository, mailer email.Mailer, cfg config.OutboxConfig) *OutboxService {
	return &OutboxService{
		outboxRepo:  outboxRepo,
		mailer:      mailer,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
	}
}

// DispatchDue claims one batch of due pending entries and delivers them
// concurrently. Each delivery is marked sent on success; on failure the
// entry's attempt count is recorded and its next attempt backs off
// exponentially, flipping to failed once the attempt budget is exhausted.
// Returns the number of entries delivered.
func (s *OutboxService) DispatchDue(ctx context.Context) (int, error) {
	entries, err := s.outboxRepo.GetDueEntries(ctx, time.Now(), s.batchSize)
	if err != nil {
		return 0, err
	}
	if len(entries) == 0 {
		return 0, nil
	}

	sent := make(chan string, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dispatchConcurrency)

	for _, entry := range entries {
		g.Go(func() error {
			if err := s.deliver(gctx, entry); err != nil {
				s.recordFailure(gctx, entry, err)
				return nil
			}
			if err := s.outboxRepo.MarkSent(gctx, entry.ID, time.Now()); err != nil {
				log.Printf("outbox: mark sent %s: %v", entry.ID, err)
				return nil
			}
			sent <- entry.ID
			return nil
		})
	}

	g.Wait()
	close(sent)

	delivered := 0
	for range sent {
		delivered++
	}
	return delivered, nil
}

func (s *OutboxService) deliver(ctx context.Context, entry model.OutboxEntry) error {
	return s.mailer.Send(ctx, email.Message{
		To:      entry.Recipient,
		Subject: entry.Subject,
		Body:    entry.Body,
	})
}

func (s *OutboxService) recordFailure(ctx context.Context, entry model.OutboxEntry, cause error) {
	attempts := entry.Attempts + 1
	exhausted := attempts >= s.maxAttempts

	// 1m, 2m, 4m, 8m, ... from the base delay.
	backoff := retryBaseDelay << (attempts - 1)
	nextAttempt := time.Now().Add(backoff)

	if err := s.outboxRepo.RecordFailure(ctx, entry.ID, attempts, nextAttempt, cause.Error(), exhausted); err != nil {
		log.Printf("outbox: record failure %s: %v", entry.ID, err)
		return
	}

	if exhausted {
		log.Printf("outbox: entry %s failed permanently after %d attempts: %v", entry.ID, attempts, cause)
	}
}
