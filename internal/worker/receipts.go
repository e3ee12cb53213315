package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kamp-aid/backend/config"
	"github.com/kamp-aid/backend/internal/emaillog"
	"github.com/kamp-aid/backend/internal/models"
	"github.com/kamp-aid/backend/internal/projects"
	"github.com/kamp-aid/backend/pkg/queue"
)

// ReceiptProcessor processes donation receipt jobs: compose the receipt and
// record the delivery attempt in email_logs.
type ReceiptProcessor struct {
	emailRepo   *emaillog.Repository
	projectRepo *projects.Repository
	queue       *queue.Queue
	email       config.EmailConfig
	logger      *zap.Logger
}

// NewReceiptProcessor creates a donation receipt processor.
func NewReceiptProcessor(emailRepo *emaillog.Repository, projectRepo *projects.Repository, q *queue.Queue, email config.EmailConfig, logger *zap.Logger) *ReceiptProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptProcessor{emailRepo: emailRepo, projectRepo: projectRepo, queue: q, email: email, logger: logger}
}

// Process executes one receipt job.
func (p *ReceiptProcessor) Process(ctx context.Context, job *queue.Job) error {
	if job.Type != queue.JobTypeReceipt {
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
	var payload queue.ReceiptPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	projectName := "a KAMP project"
	if proj, err := p.projectRepo.GetByID(ctx, payload.ProjectID); err == nil {
		projectName = proj.Name
	}

	el := &models.EmailLog{
		DonationID:     payload.DonationID,
		RecipientEmail: payload.RecipientEmail,
		Subject:        fmt.Sprintf("Thank you for supporting %s", projectName),
	}
	if err := p.emailRepo.Create(ctx, el); err != nil {
		return fmt.Errorf("create email log: %w", err)
	}

	if err := p.send(ctx, el, &payload); err != nil {
		if mErr := p.emailRepo.MarkFailed(ctx, el.ID, err.Error()); mErr != nil {
			p.logger.Error("mark email failed", zap.Error(mErr), zap.String("email_log_id", el.ID.String()))
		}
		return fmt.Errorf("send receipt: %w", err)
	}

	if err := p.emailRepo.MarkSent(ctx, el.ID); err != nil {
		p.logger.Error("mark email sent failed", zap.Error(err), zap.String("email_log_id", el.ID.String()))
	}
	p.logger.Info("receipt sent",
		zap.String("donation_id", payload.DonationID.String()),
		zap.String("recipient", payload.RecipientEmail))
	return nil
}

// send delivers the receipt. No SMTP provider is wired yet, so delivery is a
// structured log entry from the configured sender identity.
// TODO: plug in an SMTP/SES sender once credentials are provisioned.
func (p *ReceiptProcessor) send(_ context.Context, el *models.EmailLog, payload *queue.ReceiptPayload) error {
	p.logger.Info("delivering receipt",
		zap.String("from", fmt.Sprintf("%s <%s>", p.email.FromName, p.email.FromAddress)),
		zap.String("to", el.RecipientEmail),
		zap.String("subject", el.Subject),
		zap.String("donor", payload.DonorName),
		zap.Float64("amount", payload.Amount))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *ReceiptProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("receipt worker stopping")
			return
		default:
		}

		job, _, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			time.Sleep(queue.RetryBackoff)
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
			time.Sleep(queue.RetryBackoff)
			continue
		}
	}
}
