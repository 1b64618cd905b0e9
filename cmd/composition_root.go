package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"production/api"
	httpin "production/internal/adapters/in/http"
	"production/internal/adapters/out/kafka"
	"production/internal/adapters/out/postgres"
	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/ports"
	"production/internal/jobs"
	"production/internal/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	metrics    *metrics.ProductionMetrics
	bus        ports.MessageBus
	closers    []func() error
	logger     *slog.Logger
}

// NewCompositionRoot connects the message bus: Kafka when brokers are configured, the log otherwise.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	root := &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		metrics:    metrics.NewProductionMetrics(),
		logger:     logger,
	}

	if brokers := config.KafkaBrokers(); len(brokers) > 0 {
		bus, err := kafka.NewMessageBus(brokers, config.KafkaPieceEventsTopic, logger)
		if err != nil {
			return nil, err
		}
		root.bus = bus
		root.closers = append(root.closers, bus.Close)
		logger.Info("Kafka message bus initialized", "brokers", brokers, "topic", config.KafkaPieceEventsTopic)
	} else {
		root.bus = kafka.NewLogBus(logger)
		logger.Warn("KAFKA_HOST is not set, integration events are only logged")
	}

	return root, nil
}

// Close releases the message bus.
func (c *CompositionRoot) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) stationUoWFactory() commands.StationUoWFactory {
	return FuncStationUoWFactory(func() commands.StationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) pieceUoWFactory() commands.PieceUoWFactory {
	return FuncPieceUoWFactory(func() commands.PieceUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoWFactory() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) outboxUoWFactory() commands.OutboxUoWFactory {
	return FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:       commands.NewCreateOrderCommandHandler(c.orderUoWFactory()),
		ActivateOrder:     commands.NewActivateOrderCommandHandler(c.pieceUoWFactory()),
		ChangeOrderStatus: commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory()),
		AddStation:        commands.NewAddStationCommandHandler(c.stationUoWFactory()),
		UpdateStation:     commands.NewUpdateStationCommandHandler(c.stationUoWFactory()),
		ReorderStations:   commands.NewReorderStationsCommandHandler(c.stationUoWFactory()),
		RecordPass:        commands.NewRecordPassCommandHandler(c.pieceUoWFactory()),
		RecordBroken:      commands.NewRecordBrokenCommandHandler(c.pieceUoWFactory()),
		CreateReplacement: commands.NewCreateReplacementCommandHandler(c.pieceUoWFactory()),
		ConfirmDelivery:   commands.NewConfirmDeliveryCommandHandler(c.deliveryUoWFactory()),

		GetOrder:     queries.NewGetOrderQueryHandler(c.gormDB),
		ListStations: queries.NewListStationsQueryHandler(c.gormDB),
		StationQueue: queries.NewStationQueueQueryHandler(c.gormDB),
		ListBroken:   queries.NewListBrokenPiecesQueryHandler(c.gormDB),
		PieceHistory: queries.NewPieceHistoryQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateRouter(ctx context.Context) (*echo.Echo, error) {
	doc, err := api.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("openapi document: %w", err)
	}

	server := httpin.NewServer(c.CreateHandlers(), c.logger)
	return httpin.NewRouter(server, httpin.RouterConfig{
		Metrics:  c.metrics,
		Gatherer: prometheus.DefaultGatherer,
		OpenAPI:  doc,
		Logger:   c.logger,
	}), nil
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		jobs.NewOutboxPublisherJob(
			commands.NewPublishOutboxCommandHandler(c.outboxUoWFactory(), c.bus),
			c.config.OutboxSchedule,
			c.config.OutboxBatchSize,
			c.metrics,
			c.logger,
		),
		jobs.NewPieceAuditJob(
			commands.NewRebuildPieceStateCommandHandler(c.pieceUoWFactory()),
			c.config.AuditSchedule,
			c.config.AuditBatchSize,
			c.metrics,
			c.logger,
		),
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncStationUoWFactory func() commands.StationUoW

func (f FuncStationUoWFactory) Create() commands.StationUoW {
	return f()
}

type FuncPieceUoWFactory func() commands.PieceUoW

func (f FuncPieceUoWFactory) Create() commands.PieceUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
