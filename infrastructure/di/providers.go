package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"nasab-backend/application/ports"
	"nasab-backend/application/services"
	"nasab-backend/domain/family"
	"nasab-backend/infrastructure/config"
	"nasab-backend/infrastructure/messaging/eventbridge"
	"nasab-backend/infrastructure/persistence/dynamodb"
	"nasab-backend/infrastructure/persistence/seed"
	"nasab-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideFamilyRepository creates the DynamoDB-backed family repository
func ProvideFamilyRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.FamilyRepository {
	return dynamodb.NewFamilyRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates an event publisher, or a no-op when event
// publication is disabled
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return eventbridge.NoopPublisher{}
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideMetrics creates a metrics recorder, or a no-op when metrics are
// disabled
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config, logger *zap.Logger) ports.MetricsRecorder {
	if !cfg.EnableMetrics {
		return observability.NoopMetrics{}
	}
	namespace := fmt.Sprintf("Nasab/%s", cfg.Environment)
	return observability.NewCloudWatchMetrics(client, namespace, logger)
}

// ProvideCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideGraph loads the configured family from the backing store and
// builds the in-memory graph from it. When the store has no data or is
// unreachable, the built-in seed family is used instead; the service stays
// up either way.
func ProvideGraph(ctx context.Context, repo ports.FamilyRepository, cfg *config.Config, logger *zap.Logger) *family.Graph {
	data, err := repo.Load(ctx, cfg.FamilyID)
	if err != nil {
		logger.Warn("could not load family from backing store; starting from seed data",
			zap.String("familyID", cfg.FamilyID),
			zap.Error(err),
		)
		data = seed.Family(cfg.FamilyID, cfg.FamilyName)
	}
	return family.NewGraphFromData(data, logger)
}

// ProvideFamilyService creates the family service
func ProvideFamilyService(
	graph *family.Graph,
	repo ports.FamilyRepository,
	publisher ports.EventPublisher,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *services.FamilyService {
	return services.NewFamilyService(graph, repo, publisher, cache, metrics, logger)
}

// ProvideHierarchyService creates the hierarchy service
func ProvideHierarchyService(
	graph *family.Graph,
	cache ports.Cache,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *services.HierarchyService {
	return services.NewHierarchyService(graph, cache, metrics, logger)
}

// ProvideExtractionService creates the Claude-backed extraction service
func ProvideExtractionService(cfg *config.Config, logger *zap.Logger) *services.ExtractionService {
	return services.NewExtractionService(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger)
}
