package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"nasab-backend/application/ports"
	"nasab-backend/domain/family"
	pkgerrors "nasab-backend/pkg/errors"
	"nasab-backend/pkg/utils"
)

// familyRecord is the stored item shape: one item per family aggregate.
// MemberCount is denormalized so listings never have to pull the people map.
type familyRecord struct {
	ID          string                    `dynamodbav:"id"`
	FamilyName  string                    `dynamodbav:"familyName"`
	RootID      string                    `dynamodbav:"rootId,omitempty"`
	People      map[string]*family.Person `dynamodbav:"people"`
	MemberCount int                       `dynamodbav:"memberCount"`
	UpdatedAt   string                    `dynamodbav:"updatedAt"`
}

// FamilyRepository persists family aggregates as single DynamoDB items.
// Whole-item replacement matches the advisory persistence policy: the
// in-memory graph is authoritative and every Save ships a full snapshot.
type FamilyRepository struct {
	client    *awsdynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewFamilyRepository creates a DynamoDB-backed family repository.
func NewFamilyRepository(client *awsdynamodb.Client, tableName string, logger *zap.Logger) ports.FamilyRepository {
	return &FamilyRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// Load fetches the aggregate for the given family id.
func (r *FamilyRepository) Load(ctx context.Context, familyID string) (*family.FamilyData, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": familyID})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("marshal key", err)
	}

	out, err := r.client.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get family", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("family " + familyID)
	}

	var record familyRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal family", err)
	}

	data := &family.FamilyData{
		ID:         record.ID,
		FamilyName: record.FamilyName,
		RootID:     record.RootID,
		People:     record.People,
	}
	if data.People == nil {
		data.People = make(map[string]*family.Person)
	}

	r.logger.Debug("loaded family",
		zap.String("familyID", familyID),
		zap.Int("members", len(data.People)),
	)
	return data, nil
}

// Save replaces the stored aggregate with the given snapshot.
func (r *FamilyRepository) Save(ctx context.Context, data *family.FamilyData) error {
	record := familyRecord{
		ID:          data.ID,
		FamilyName:  data.FamilyName,
		RootID:      data.RootID,
		People:      data.People,
		MemberCount: len(data.People),
		UpdatedAt:   utils.NowRFC3339(),
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal family", err)
	}

	if _, err := r.client.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	}); err != nil {
		return pkgerrors.NewDatabaseError("put family", err)
	}

	return nil
}

// List scans summaries of every stored family, projecting only the summary
// attributes.
func (r *FamilyRepository) List(ctx context.Context) ([]ports.FamilySummary, error) {
	proj := expression.NamesList(
		expression.Name("id"),
		expression.Name("familyName"),
		expression.Name("rootId"),
		expression.Name("memberCount"),
	)
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build projection", err)
	}

	var summaries []ports.FamilySummary
	var startKey map[string]types.AttributeValue

	for {
		out, err := r.client.Scan(ctx, &awsdynamodb.ScanInput{
			TableName:                aws.String(r.tableName),
			ProjectionExpression:     expr.Projection(),
			ExpressionAttributeNames: expr.Names(),
			ExclusiveStartKey:        startKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("scan families", err)
		}

		var page []struct {
			ID          string `dynamodbav:"id"`
			FamilyName  string `dynamodbav:"familyName"`
			RootID      string `dynamodbav:"rootId"`
			MemberCount int    `dynamodbav:"memberCount"`
		}
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, pkgerrors.NewDatabaseError("unmarshal families", err)
		}
		for _, rec := range page {
			summaries = append(summaries, ports.FamilySummary{
				ID:         rec.ID,
				FamilyName: rec.FamilyName,
				RootID:     rec.RootID,
				Members:    rec.MemberCount,
			})
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return summaries, nil
}
