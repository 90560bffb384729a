package listener

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/printfleet/supply-service/internal/pkg/broker"
	"github.com/printfleet/supply-service/internal/pkg/logger"
	"github.com/printfleet/supply-service/internal/printjob"
)

// PrintJobListener consumes job-completed events published by printer agents
// and records them through the usecase, which also deducts paper stock.
type PrintJobListener struct {
	consumer *broker.KafkaConsumer
	uc       printjob.UseCase
	logger   logger.Logger
}

func NewPrintJobListener(consumer *broker.KafkaConsumer, uc printjob.UseCase, logger logger.Logger) *PrintJobListener {
	return &PrintJobListener{
		consumer: consumer,
		uc:       uc,
		logger:   logger,
	}
}

func (l *PrintJobListener) Start(ctx context.Context) {
	l.logger.Info("Starting print job Kafka listener")
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("Stopping print job Kafka listener")
			return
		default:
			msg, err := l.consumer.ReadMessage(ctx)
			if err != nil {
				// Don't log context canceled error as error
				if ctx.Err() != nil {
					return
				}
				l.logger.Error("Failed to read kafka message", zap.Error(err))
				time.Sleep(1 * time.Second)
				continue
			}
			l.processMessage(ctx, msg.Value)
		}
	}
}

type JobCompletedEvent struct {
	EventID   string     `json:"event_id"`
	EventType string     `json:"event_type"`
	Payload   JobPayload `json:"payload"`
	Timestamp time.Time  `json:"timestamp"`
}

type JobPayload struct {
	CompanyID    string    `json:"company_id"`
	PrinterID    *string   `json:"printer_id"`
	PaperTypeID  *string   `json:"paper_type_id"`
	DocumentName *string   `json:"document_name"`
	PageCount    int       `json:"page_count"`
	ColorMode    string    `json:"color_mode"`
	PrintedAt    time.Time `json:"printed_at"`
}

func (l *PrintJobListener) processMessage(ctx context.Context, value []byte) {
	var event JobCompletedEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return
	}

	if event.EventType != "JobCompleted" {
		return
	}

	_, err := l.uc.RecordJob(ctx, &printjob.RecordJobInput{
		CompanyID:    event.Payload.CompanyID,
		PrinterID:    event.Payload.PrinterID,
		PaperTypeID:  event.Payload.PaperTypeID,
		DocumentName: event.Payload.DocumentName,
		PageCount:    event.Payload.PageCount,
		ColorMode:    event.Payload.ColorMode,
		PrintedAt:    event.Payload.PrintedAt,
	})
	if err != nil {
		l.logger.Error("Failed to record job from event",
			zap.String("event_id", event.EventID),
			zap.String("company_id", event.Payload.CompanyID),
			zap.Error(err),
		)
	}
}
