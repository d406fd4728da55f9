package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	appconfig "github.com/stratacloud/careers-backend/internal/config"
	"github.com/stratacloud/careers-backend/internal/models"
)

// DynamoAPI is the subset of the DynamoDB client the store uses.
type DynamoAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

var _ DynamoAPI = (*dynamodb.Client)(nil)

var (
	_ Store = (*DynamoStore)(nil)

	loadDefaultAWSConfig = config.LoadDefaultConfig
)

type DynamoStore struct {
	client DynamoAPI
	table  string
}

func NewDynamoStore(client DynamoAPI, table string) *DynamoStore {
	return &DynamoStore{client: client, table: table}
}

// NewDynamoClient builds a client from the default credential chain, pointed
// at DYNAMODB_ENDPOINT when set (DynamoDB Local).
func NewDynamoClient(ctx context.Context, cfg *appconfig.Config) (*dynamodb.Client, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx, config.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	}), nil
}

func (s *DynamoStore) Ping(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	return err
}

func (s *DynamoStore) CreateUser(ctx context.Context, user *models.UserRecord) error {
	lookup := models.NewEmailLookupRecord(user.Email, user.UserID, user.CreatedAt)

	lookupItem, err := attributevalue.MarshalMap(lookup)
	if err != nil {
		return fmt.Errorf("failed to marshal email lookup: %w", err)
	}
	userItem, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = s.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:           aws.String(s.table),
				Item:                lookupItem,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
			{Put: &types.Put{
				TableName:           aws.String(s.table),
				Item:                userItem,
				ConditionExpression: aws.String("attribute_not_exists(PK)"),
			}},
		},
	})
	if err != nil {
		// The user id is fresh, so a transaction conflict can only come from
		// a concurrent registration of the same email.
		if isConditionFailure(err) || hasCancellationReason(err, "TransactionConflict") {
			return ErrConflict
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	item, err := s.getItem(ctx, models.UserPK(userID), models.UserSK())
	if err != nil {
		return nil, err
	}
	return decode[models.UserRecord](item)
}

func (s *DynamoStore) GetUserByEmail(ctx context.Context, email string) (*models.UserRecord, error) {
	item, err := s.getItem(ctx, models.EmailLookupPK(email), models.EmailLookupSK())
	if err != nil {
		return nil, err
	}
	lookup, err := decode[models.EmailLookupRecord](item)
	if err != nil {
		return nil, err
	}
	return s.GetUser(ctx, lookup.UserID)
}

func (s *DynamoStore) SaveUser(ctx context.Context, user *models.UserRecord) error {
	return s.putItem(ctx, user)
}

func (s *DynamoStore) ListUsersByRole(ctx context.Context, role string) ([]*models.UserRecord, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(models.IndexGSI1),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.RoleGSI1PK(role)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query users by role: %w", err)
	}
	return decodeAll[models.UserRecord](items), nil
}

func (s *DynamoStore) CreateApplication(ctx context.Context, app *models.ApplicationRecord) error {
	item, err := attributevalue.MarshalMap(app)
	if err != nil {
		return fmt.Errorf("failed to marshal application: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		if isConditionFailure(err) {
			return ErrConflict
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (s *DynamoStore) GetApplication(ctx context.Context, applicationID string) (*models.ApplicationRecord, error) {
	item, err := s.getItem(ctx, models.ApplicationPK(applicationID), models.ApplicationSK())
	if err != nil {
		return nil, err
	}
	return decode[models.ApplicationRecord](item)
}

func (s *DynamoStore) SaveApplication(ctx context.Context, app *models.ApplicationRecord) error {
	return s.putItem(ctx, app)
}

func (s *DynamoStore) ApplicationsByApplicant(ctx context.Context, email string) ([]*models.ApplicationRecord, error) {
	items, err := s.queryAll(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(models.IndexGSI2),
		KeyConditionExpression: aws.String("GSI2PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.ApplicantGSI2PK(email)},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query applications by applicant: %w", err)
	}
	return decodeAll[models.ApplicationRecord](items), nil
}

func (s *DynamoStore) ScanApplications(ctx context.Context) ([]*models.ApplicationRecord, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName:                aws.String(s.table),
		FilterExpression:         aws.String("#type = :type"),
		ExpressionAttributeNames: map[string]string{"#type": "Type"},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":type": &types.AttributeValueMemberS{Value: models.TypeApplication},
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan applications: %w", err)
		}
		items = append(items, page.Items...)
	}
	return decodeAll[models.ApplicationRecord](items), nil
}

func (s *DynamoStore) CountApplicationsByJob(ctx context.Context, jobID string) (int, error) {
	total := 0
	p := dynamodb.NewQueryPaginator(s.client, &dynamodb.QueryInput{
		TableName:              aws.String(s.table),
		IndexName:              aws.String(models.IndexGSI1),
		KeyConditionExpression: aws.String("GSI1PK = :pk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: models.JobGSI1PK(jobID)},
		},
		Select: types.SelectCount,
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count applications for job %s: %w", jobID, err)
		}
		total += int(page.Count)
	}
	return total, nil
}

// --- Internal helpers ---

func (s *DynamoStore) getItem(ctx context.Context, pk, sk string) (map[string]types.AttributeValue, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: pk},
			"SK": &types.AttributeValueMemberS{Value: sk},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", pk, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	return out.Item, nil
}

func (s *DynamoStore) putItem(ctx context.Context, v any) error {
	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to put item: %w", err)
	}
	return nil
}

func (s *DynamoStore) queryAll(ctx context.Context, in *dynamodb.QueryInput) ([]map[string]types.AttributeValue, error) {
	var items []map[string]types.AttributeValue
	p := dynamodb.NewQueryPaginator(s.client, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	return hasCancellationReason(err, "ConditionalCheckFailed")
}

// hasCancellationReason reports whether err is a cancelled transaction with
// at least one item cancelled for code.
func hasCancellationReason(err error, code string) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, r := range tce.CancellationReasons {
		if aws.ToString(r.Code) == code {
			return true
		}
	}
	return false
}

type record[T any] interface {
	*T
	Validate() error
}

// decode unmarshals one item into its tagged record and validates it.
func decode[T any, P record[T]](item map[string]types.AttributeValue) (*T, error) {
	var v T
	if err := attributevalue.UnmarshalMap(item, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrCorruptRecord, err)
	}
	if err := P(&v).Validate(); err != nil {
		return nil, err
	}
	return &v, nil
}

// decodeAll skips items that fail validation so one bad item does not hide
// the rest of a listing.
func decodeAll[T any, P record[T]](items []map[string]types.AttributeValue) []*T {
	result := make([]*T, 0, len(items))
	for _, item := range items {
		v, err := decode[T, P](item)
		if err != nil {
			slog.Warn("skipping corrupt item", "pk", pkOf(item), "error", err)
			continue
		}
		result = append(result, v)
	}
	return result
}

func pkOf(item map[string]types.AttributeValue) string {
	if s, ok := item["PK"].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
