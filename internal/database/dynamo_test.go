package database

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratacloud/careers-backend/internal/models"
)

type item = map[string]types.AttributeValue

// fakeDynamo records inputs and replays canned outputs.
type fakeDynamo struct {
	getItems map[string]item
	getErr   error

	putInputs []*dynamodb.PutItemInput
	putErr    error

	queryInputs []*dynamodb.QueryInput
	queryPages  []*dynamodb.QueryOutput

	scanInputs []*dynamodb.ScanInput
	scanPages  []*dynamodb.ScanOutput

	txInputs []*dynamodb.TransactWriteItemsInput
	txErr    error

	describeErr error
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	pk := in.Key["PK"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.getItems[pk]}, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putInputs = append(f.putInputs, in)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, in)
	if len(f.queryPages) == 0 {
		return &dynamodb.QueryOutput{}, nil
	}
	page := f.queryPages[0]
	f.queryPages = f.queryPages[1:]
	return page, nil
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.scanInputs = append(f.scanInputs, in)
	if len(f.scanPages) == 0 {
		return &dynamodb.ScanOutput{}, nil
	}
	page := f.scanPages[0]
	f.scanPages = f.scanPages[1:]
	return page, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.txInputs = append(f.txInputs, in)
	if f.txErr != nil {
		return nil, f.txErr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

func (f *fakeDynamo) DescribeTable(context.Context, *dynamodb.DescribeTableInput, ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	return &dynamodb.DescribeTableOutput{}, f.describeErr
}

func marshal(t *testing.T, v any) item {
	t.Helper()
	m, err := attributevalue.MarshalMap(v)
	require.NoError(t, err)
	return m
}

func lastKey(pk string) item {
	return item{"PK": &types.AttributeValueMemberS{Value: pk}}
}

func TestDynamoStore_CreateUser_WritesLookupAndUser(t *testing.T) {
	fake := &fakeDynamo{}
	s := NewDynamoStore(fake, "careers")
	user := models.NewUserRecord("u1", "Ada@X.com", "Ada", "L", models.RoleConsultant, "t0")

	require.NoError(t, s.CreateUser(context.Background(), user))

	require.Len(t, fake.txInputs, 1)
	items := fake.txInputs[0].TransactItems
	require.Len(t, items, 2)

	lookup := items[0].Put
	assert.Equal(t, "careers", aws.ToString(lookup.TableName))
	assert.Equal(t, "attribute_not_exists(PK)", aws.ToString(lookup.ConditionExpression))
	assert.Equal(t, "EMAIL#ada@x.com", lookup.Item["PK"].(*types.AttributeValueMemberS).Value)
	assert.Equal(t, "u1", lookup.Item["UserId"].(*types.AttributeValueMemberS).Value)

	assert.Equal(t, "USER#u1", items[1].Put.Item["PK"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoStore_CreateUser_ConflictOnTakenEmail(t *testing.T) {
	fake := &fakeDynamo{txErr: &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		},
	}}
	s := NewDynamoStore(fake, "careers")

	err := s.CreateUser(context.Background(), models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0"))

	assert.ErrorIs(t, err, ErrConflict)
}

func TestDynamoStore_CreateUser_ConcurrentRegistrationIsConflict(t *testing.T) {
	fake := &fakeDynamo{txErr: &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("TransactionConflict")},
			{Code: aws.String("None")},
		},
	}}
	s := NewDynamoStore(fake, "careers")

	err := s.CreateUser(context.Background(), models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0"))

	assert.ErrorIs(t, err, ErrConflict)
}

func TestDynamoStore_CreateUser_OtherCancellationsWrapped(t *testing.T) {
	fake := &fakeDynamo{txErr: &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{
			{Code: aws.String("ThrottlingError")},
			{Code: aws.String("None")},
		},
	}}
	s := NewDynamoStore(fake, "careers")

	err := s.CreateUser(context.Background(), models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0"))

	assert.NotErrorIs(t, err, ErrConflict)
	assert.Error(t, err)
}

func TestDynamoStore_CreateUser_OtherFailuresWrapped(t *testing.T) {
	boom := errors.New("throttled")
	s := NewDynamoStore(&fakeDynamo{txErr: boom}, "careers")

	err := s.CreateUser(context.Background(), models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0"))

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestDynamoStore_GetUser(t *testing.T) {
	user := models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleStaffer, "t0")
	user.Resumes = []models.ResumeRecord{{ResumeID: "r1", FileName: "cv.pdf", IsDefault: true}}
	corrupt := models.NewUserRecord("u2", "b@x.com", "A", "B", models.RoleStaffer, "t0")
	corrupt.Type = "SOMETHING"

	fake := &fakeDynamo{getItems: map[string]item{
		"USER#u1": marshal(t, user),
		"USER#u2": marshal(t, corrupt),
	}}
	s := NewDynamoStore(fake, "careers")

	got, err := s.GetUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	require.Len(t, got.Resumes, 1)
	assert.True(t, got.Resumes[0].IsDefault)

	_, err = s.GetUser(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.GetUser(context.Background(), "u2")
	assert.ErrorIs(t, err, models.ErrCorruptRecord)
}

func TestDynamoStore_GetUserByEmail_FollowsLookup(t *testing.T) {
	user := models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleStaffer, "t0")
	fake := &fakeDynamo{getItems: map[string]item{
		"EMAIL#a@x.com": marshal(t, models.NewEmailLookupRecord("a@x.com", "u1", "t0")),
		"USER#u1":       marshal(t, user),
	}}
	s := NewDynamoStore(fake, "careers")

	got, err := s.GetUserByEmail(context.Background(), "A@X.COM")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)

	_, err = s.GetUserByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDynamoStore_SaveUser_IsUnconditional(t *testing.T) {
	fake := &fakeDynamo{}
	s := NewDynamoStore(fake, "careers")

	require.NoError(t, s.SaveUser(context.Background(), models.NewUserRecord("u1", "a@x.com", "A", "B", models.RoleAdmin, "t0")))

	require.Len(t, fake.putInputs, 1)
	assert.Nil(t, fake.putInputs[0].ConditionExpression)
}

func TestDynamoStore_ApplicationsByApplicant_PaginatesNewestFirst(t *testing.T) {
	a1 := models.NewApplicationRecord("a1", "j1", "a@x.com", "2026-05-02T00:00:00Z")
	a2 := models.NewApplicationRecord("a2", "j2", "a@x.com", "2026-05-01T00:00:00Z")
	bad := models.NewApplicationRecord("a3", "", "a@x.com", "2026-04-01T00:00:00Z")

	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Items: []item{marshal(t, a1)}, LastEvaluatedKey: lastKey("APPLICATION#a1")},
		{Items: []item{marshal(t, a2), marshal(t, bad)}},
	}}
	s := NewDynamoStore(fake, "careers")

	got, err := s.ApplicationsByApplicant(context.Background(), "A@x.com")
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ApplicationID)
	assert.Equal(t, "a2", got[1].ApplicationID)

	require.Len(t, fake.queryInputs, 2)
	in := fake.queryInputs[0]
	assert.Equal(t, models.IndexGSI2, aws.ToString(in.IndexName))
	assert.False(t, aws.ToBool(in.ScanIndexForward))
	assert.Equal(t, "APPLICANT#a@x.com", in.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoStore_ScanApplications_FiltersByType(t *testing.T) {
	a1 := models.NewApplicationRecord("a1", "j1", "a@x.com", "t1")
	a2 := models.NewApplicationRecord("a2", "j1", "b@x.com", "t2")
	fake := &fakeDynamo{scanPages: []*dynamodb.ScanOutput{
		{Items: []item{marshal(t, a1)}, LastEvaluatedKey: lastKey("APPLICATION#a1")},
		{Items: []item{}, LastEvaluatedKey: lastKey("USER#zzz")},
		{Items: []item{marshal(t, a2)}},
	}}
	s := NewDynamoStore(fake, "careers")

	got, err := s.ScanApplications(context.Background())
	require.NoError(t, err)

	assert.Len(t, got, 2)
	require.Len(t, fake.scanInputs, 3)
	assert.Equal(t, "#type = :type", aws.ToString(fake.scanInputs[0].FilterExpression))
	assert.Equal(t, "Type", fake.scanInputs[0].ExpressionAttributeNames["#type"])
}

func TestDynamoStore_CountApplicationsByJob_SumsPages(t *testing.T) {
	fake := &fakeDynamo{queryPages: []*dynamodb.QueryOutput{
		{Count: 3, LastEvaluatedKey: lastKey("APPLICATION#x")},
		{Count: 2},
	}}
	s := NewDynamoStore(fake, "careers")

	n, err := s.CountApplicationsByJob(context.Background(), "j1")
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, types.SelectCount, fake.queryInputs[0].Select)
	assert.Equal(t, "JOB#j1", fake.queryInputs[0].ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS).Value)
}

func TestDynamoStore_CreateApplication_Conflict(t *testing.T) {
	fake := &fakeDynamo{putErr: &types.ConditionalCheckFailedException{}}
	s := NewDynamoStore(fake, "careers")

	err := s.CreateApplication(context.Background(), models.NewApplicationRecord("a1", "j1", "a@x.com", "t"))

	assert.ErrorIs(t, err, ErrConflict)
}

func TestDynamoStore_Ping(t *testing.T) {
	s := NewDynamoStore(&fakeDynamo{describeErr: errors.New("no table")}, "careers")
	assert.Error(t, s.Ping(context.Background()))
}
