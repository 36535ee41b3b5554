package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/smart-library/library/config"
	"github.com/Astemirdum/smart-library/library/internal/handler"
	"github.com/Astemirdum/smart-library/library/internal/repository"
	"github.com/Astemirdum/smart-library/library/internal/server"
	"github.com/Astemirdum/smart-library/library/internal/service"
	"github.com/Astemirdum/smart-library/library/migrations"
	"github.com/Astemirdum/smart-library/pkg/auth"
	"github.com/Astemirdum/smart-library/pkg/circuit_breaker"
	"github.com/Astemirdum/smart-library/pkg/kafka"
	"github.com/Astemirdum/smart-library/pkg/logger"
	"github.com/Astemirdum/smart-library/pkg/postgres"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	defer log.Sync() //nolint:errcheck

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}

	pub, err := newPublisher(cfg, log)
	if err != nil {
		return errors.Wrap(err, "kafka.NewProducer")
	}
	defer pub.Close() //nolint:errcheck

	svc := service.NewService(repo, log,
		service.WithPolicy(cfg.Loan),
		service.WithPublisher(pub),
	)

	consumeCtx, stopConsume := context.WithCancel(context.Background())
	defer stopConsume()
	var group sarama.ConsumerGroup
	if cfg.Kafka.Enabled() {
		group, err = kafka.NewConsumer(cfg.Kafka, kafka.LoanEventsConsumerGroup)
		if err != nil {
			return errors.Wrap(err, "kafka.NewConsumer")
		}
		go func() {
			if err := kafka.Consume(consumeCtx, group, handler.NewConsumer(svc.RecordLoanEvent, log), kafka.LoanEventsTopic); err != nil {
				log.Error("kafka.Consume", zap.Error(err))
			}
		}()
	}

	h := handler.New(svc, auth.NewIssuer(cfg.Auth), log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	stopConsume()
	if group != nil {
		if err = group.Close(); err != nil {
			log.Error("consumer group close", zap.Error(err))
		}
	}
	log.Info("Graceful shutdown finished")
	return nil
}

// newPublisher returns a no-op publisher when no brokers are configured.
func newPublisher(cfg config.Config, log *zap.Logger) (publisher, error) {
	if !cfg.Kafka.Enabled() {
		log.Info("kafka disabled, loan events are not published")
		return kafka.NopPublisher{}, nil
	}
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return nil, err
	}
	cb := circuit_breaker.New(
		cfg.Breaker.RecordLength,
		cfg.Breaker.Timeout,
		cfg.Breaker.Percentile,
		cfg.Breaker.RecoveryRequests,
	)
	return kafka.NewPublisher(producer, cb, kafka.LoanEventsTopic), nil
}
