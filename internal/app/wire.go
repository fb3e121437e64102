//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	forwarderGateway "samudra/internal/gateway/grpc/forwarder"
	"samudra/internal/gateway/kafka/shipment_status"
	"samudra/internal/handlers/rest/org_unit_ancestors_get"
	"samudra/internal/handlers/rest/org_unit_descendants_get"
	"samudra/internal/handlers/rest/org_unit_get"
	"samudra/internal/handlers/rest/org_unit_hierarchy_get"
	"samudra/internal/handlers/rest/org_unit_post"
	"samudra/internal/handlers/rest/org_unit_put"
	"samudra/internal/handlers/rest/pricing_rule_get"
	"samudra/internal/handlers/rest/pricing_rule_post"
	"samudra/internal/handlers/rest/pricing_rules_get"
	"samudra/internal/handlers/rest/shipment_cancel_post"
	"samudra/internal/handlers/rest/shipment_document_get"
	"samudra/internal/handlers/rest/shipment_get"
	"samudra/internal/handlers/rest/shipment_post"
	"samudra/internal/handlers/rest/shipment_status_post"
	"samudra/internal/handlers/rest/shipments_calculate_price_post"
	"samudra/internal/handlers/tasks/discount_expiry"
	"samudra/internal/pkg/cache"
	"samudra/internal/pkg/config"
	"samudra/internal/pkg/document"
	"samudra/internal/pkg/factory/delivery_deadline"
	"samudra/internal/pkg/factory/tracking_status"
	"samudra/internal/pkg/kafka"
	"samudra/internal/pkg/waybill"

	orgUnitRepo "samudra/internal/repository/org_unit"
	pricingCacheRepo "samudra/internal/repository/pricing_cache"
	pricingRuleRepo "samudra/internal/repository/pricing_rule"
	shipmentRepo "samudra/internal/repository/shipment"
	organizationService "samudra/internal/service/organization"
	pricingService "samudra/internal/service/pricing"
	shipmentService "samudra/internal/service/shipment"
	trackingService "samudra/internal/service/tracking"

	"samudra/pkg/background"
	"samudra/pkg/logger"
	"samudra/pkg/querier"
	"samudra/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
)

type (
	DiscountExpiryInterval time.Duration
)

type Application struct {
	ServicePricing      ServicePricing
	ServiceShipment     ServiceShipment
	ServiceOrganization ServiceOrganization
	BackgroundWorkers   *background.Worker
}

type ServicePricing interface {
	shipments_calculate_price_post.Service
	pricing_rule_post.Service
	pricing_rule_get.Service
	pricing_rules_get.Service
}

type ServiceShipment interface {
	shipment_post.Service
	shipment_get.Service
	shipment_status_post.Service
	shipment_cancel_post.Service
	shipment_document_get.Service
}

type ServiceOrganization interface {
	org_unit_post.Service
	org_unit_put.Service
	org_unit_get.Service
	org_unit_hierarchy_get.Service
	org_unit_descendants_get.Service
	org_unit_ancestors_get.Service
}

var pricingSet = wire.NewSet(
	providePricingRuleRepository,
	providePricingCache,
	provideForwarderGateway,
	provideServicePricing,

	wire.Bind(new(pricingService.Repository), new(*pricingRuleRepo.Repository)),
	wire.Bind(new(pricingService.RuleCache), new(*pricingCacheRepo.Repository)),
	wire.Bind(new(pricingService.ForwarderGateway), new(*forwarderGateway.Gateway)),
	wire.Bind(new(pricingService.TxManager), new(*tx.Manager)),
)

var shipmentSet = wire.NewSet(
	provideShipmentRepository,
	provideStatusPublisher,
	provideServiceShipment,
	delivery_deadline.New,
	waybill.New,
	document.New,

	wire.Bind(new(shipmentService.Repository), new(*shipmentRepo.Repository)),
	wire.Bind(new(shipmentService.PricingService), new(*pricingService.Pricing)),
	wire.Bind(new(shipmentService.EventPublisher), new(*shipment_status.Publisher)),
	wire.Bind(new(shipmentService.DeliveryEstimator), new(*delivery_deadline.DeliveryTimeFactory)),
	wire.Bind(new(shipmentService.WaybillGenerator), new(*waybill.Generator)),
	wire.Bind(new(shipmentService.DocumentRenderer), new(*document.Renderer)),
	wire.Bind(new(shipmentService.TxManager), new(*tx.Manager)),
	wire.Bind(new(shipment_status.Producer), new(*kafka.Producer)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	ruleCache cache.Cache,
	producer *kafka.Producer,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideDiscountExpiryInterval,

		pricingSet,
		shipmentSet,

		provideOrgUnitRepository,
		provideServiceOrganization,

		provideDiscountExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServicePricing), new(*pricingService.Pricing)),
		wire.Bind(new(ServiceShipment), new(*shipmentService.Service)),
		wire.Bind(new(ServiceOrganization), new(*organizationService.Organization)),

		wire.Bind(new(organizationService.Repository), new(*orgUnitRepo.Repository)),
		wire.Bind(new(organizationService.TxManager), new(*tx.Manager)),

		wire.Bind(new(discount_expiry.Service), new(*pricingService.Pricing)),
	)
	return &Application{}, nil
}

type KafkaWorkerApp struct {
	TrackingService *trackingService.Service
}

// InitializeKafkaWorkerApp для Kafka воркера (cmd/worker-forwarder-tracking)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	conn *grpc.ClientConn,
	ruleCache cache.Cache,
	producer *kafka.Producer,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,

		pricingSet,
		shipmentSet,

		provideStatusHandlerFactory,
		trackingService.New,

		wire.Bind(new(tracking_status.ShipmentService), new(*shipmentService.Service)),
		wire.Bind(new(trackingService.HandlerFactory), new(*tracking_status.StatusHandlerFactory)),

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func providePricingRuleRepository(querier *querier.Querier) *pricingRuleRepo.Repository {
	return pricingRuleRepo.New(querier)
}

func provideShipmentRepository(querier *querier.Querier) *shipmentRepo.Repository {
	return shipmentRepo.New(querier)
}

func provideOrgUnitRepository(querier *querier.Querier) *orgUnitRepo.Repository {
	return orgUnitRepo.New(querier)
}

func providePricingCache(ruleCache cache.Cache, cfg *config.Config) *pricingCacheRepo.Repository {
	return pricingCacheRepo.New(ruleCache, cfg.Redis)
}

// provideForwarderGateway: без соединения шлюз отвечает ErrForwarderUnavailable.
func provideForwarderGateway(conn *grpc.ClientConn, cfg *config.Config) *forwarderGateway.Gateway {
	if conn == nil {
		return forwarderGateway.New(nil, cfg.Forwarder)
	}
	return forwarderGateway.New(conn, cfg.Forwarder)
}

func provideStatusPublisher(producer shipment_status.Producer, cfg *config.Config) *shipment_status.Publisher {
	return shipment_status.New(producer, cfg.Kafka)
}

func provideServicePricing(
	repository pricingService.Repository,
	ruleCache pricingService.RuleCache,
	forwarder pricingService.ForwarderGateway,
	txManager pricingService.TxManager,
	log logger.Logger,
	cfg *config.Config,
) *pricingService.Pricing {
	return pricingService.New(
		repository,
		ruleCache,
		forwarder,
		txManager,
		log,
		cfg.Pricing,
		cfg.Forwarder,
	)
}

func provideServiceShipment(
	repository shipmentService.Repository,
	pricing shipmentService.PricingService,
	publisher shipmentService.EventPublisher,
	estimator shipmentService.DeliveryEstimator,
	waybills shipmentService.WaybillGenerator,
	documents shipmentService.DocumentRenderer,
	txManager shipmentService.TxManager,
	log logger.Logger,
) *shipmentService.Service {
	return shipmentService.New(
		repository,
		pricing,
		publisher,
		estimator,
		waybills,
		documents,
		txManager,
		log,
	)
}

func provideServiceOrganization(
	repository organizationService.Repository,
	txManager organizationService.TxManager,
	log logger.Logger,
) *organizationService.Organization {
	return organizationService.New(repository, txManager, log)
}

func provideStatusHandlerFactory(shipmentService tracking_status.ShipmentService) *tracking_status.StatusHandlerFactory {
	return tracking_status.NewStatusHandlerFactory(shipmentService)
}

func provideDiscountExpiryInterval(cfg *config.Config) DiscountExpiryInterval {
	return DiscountExpiryInterval(cfg.Tasks.DiscountExpiryInterval)
}

func provideDiscountExpiryTask(
	log logger.Logger,
	pricingService discount_expiry.Service,
	interval DiscountExpiryInterval,
) *discount_expiry.DiscountExpiry {
	return discount_expiry.NewDiscountExpiry(log, pricingService, time.Duration(interval))
}

func provideTaskList(
	discountExpiryTask *discount_expiry.DiscountExpiry,
) []background.Task {
	return []background.Task{
		discountExpiryTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
