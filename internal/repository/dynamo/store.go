package dynamo

import (
	"context"
	"errors"
	"reflect"

	apperrors "invoice-service/pkg/errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/aws/aws-sdk-go/service/dynamodb/expression"
	"go.uber.org/zap"
)

// Store executes item primitives against DynamoDB tables and converts
// between typed records and attribute maps. It holds no state besides the
// injected client, so one Store is shared by every repository.
type Store struct {
	db     dynamodbiface.DynamoDBAPI
	logger *zap.Logger
}

func NewStore(db dynamodbiface.DynamoDBAPI, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{db: db, logger: logger}
}

// QueryInput describes a list operation. Without a KeyCondition the table is
// scanned; Filter is applied server side after key matching in both cases.
type QueryInput struct {
	Table        string
	Index        string
	KeyCondition *Predicate
	Filter       Predicates
}

// Get loads the item with the given key into out. A missing item is reported
// as found == false with a nil error.
func (s *Store) Get(ctx context.Context, table string, key Key, out interface{}) (bool, error) {
	result, err := s.db.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key.attributeValues(),
	})
	if err != nil {
		return false, translateError(opGetItem, err)
	}

	if len(result.Item) == 0 {
		return false, nil
	}

	if err := dynamodbattribute.UnmarshalMap(result.Item, out); err != nil {
		return false, errFailedUnmarshalItem(err)
	}

	return true, nil
}

// Put writes record unconditionally, replacing any item with the same key.
func (s *Store) Put(ctx context.Context, table string, record interface{}) error {
	item, err := dynamodbattribute.MarshalMap(record)
	if err != nil {
		return errFailedMarshalItem(err)
	}

	_, err = s.db.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	if err != nil {
		return translateError(opPutItem, err)
	}

	return nil
}

// Update assigns only the fields in updates. When cond is non-empty the store
// rejects the write unless it holds, reported as ErrConditionFailed. The
// post-update item is unmarshalled into out when out is non-nil.
func (s *Store) Update(ctx context.Context, table string, key Key, updates FieldUpdates, cond Predicates, out interface{}) error {
	if len(updates) == 0 {
		return apperrors.Validation(errEmptyUpdate)
	}

	builder := expression.NewBuilder().WithUpdate(updateBuilder(updates))
	if len(cond) > 0 {
		builder = builder.WithCondition(conditionBuilder(cond))
	}

	expr, err := builder.Build()
	if err != nil {
		return errFailedBuildExpression("update", err)
	}

	s.logger.Debug("dynamodb update",
		zap.String("table", table),
		zap.String("key", key.Value),
		zap.Strings("fields", updates.Fields()),
		zap.Int("conditions", len(cond)))

	result, err := s.db.UpdateItemWithContext(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(table),
		Key:                       key.attributeValues(),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              aws.String(dynamodb.ReturnValueAllNew),
	})
	if err != nil {
		return translateError(opUpdateItem, err)
	}

	if out != nil {
		if err := dynamodbattribute.UnmarshalMap(result.Attributes, out); err != nil {
			return errFailedUnmarshalItem(err)
		}
	}

	return nil
}

// Delete removes the item with the given key, conditionally when cond is
// non-empty. Deleting a missing item without a condition succeeds.
func (s *Store) Delete(ctx context.Context, table string, key Key, cond Predicates) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key.attributeValues(),
	}

	if len(cond) > 0 {
		expr, err := expression.NewBuilder().WithCondition(conditionBuilder(cond)).Build()
		if err != nil {
			return errFailedBuildExpression("condition", err)
		}
		input.ConditionExpression = expr.Condition()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	if _, err := s.db.DeleteItemWithContext(ctx, input); err != nil {
		return translateError(opDeleteItem, err)
	}

	return nil
}

// Query collects every matching item into out, which must point to a slice.
// When the store answers without any result collection the error is
// apperrors.ErrNoResults; an empty collection yields an empty slice.
func (s *Store) Query(ctx context.Context, in QueryInput, out interface{}) error {
	if rv := reflect.ValueOf(out); rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Slice {
		return errors.New(errQueryOutputNotSlice)
	}

	var (
		items     []map[string]*dynamodb.AttributeValue
		collected bool
		err       error
	)

	if in.KeyCondition != nil {
		items, collected, err = s.query(ctx, in)
	} else {
		items, collected, err = s.scan(ctx, in)
	}
	if err != nil {
		return err
	}

	if !collected {
		return apperrors.ErrNoResults
	}

	if err := dynamodbattribute.UnmarshalListOfMaps(items, out); err != nil {
		return errFailedUnmarshalItem(err)
	}

	// UnmarshalListOfMaps leaves the slice nil for zero items.
	if rv := reflect.ValueOf(out).Elem(); rv.IsNil() {
		rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	}

	return nil
}

func (s *Store) query(ctx context.Context, in QueryInput) ([]map[string]*dynamodb.AttributeValue, bool, error) {
	builder := expression.NewBuilder().WithKeyCondition(keyConditionBuilder(*in.KeyCondition))
	if len(in.Filter) > 0 {
		builder = builder.WithFilter(conditionBuilder(in.Filter))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, false, errFailedBuildExpression("query", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(in.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if in.Index != "" {
		input.IndexName = aws.String(in.Index)
	}

	s.logger.Debug("dynamodb query",
		zap.String("table", in.Table),
		zap.String("index", in.Index),
		zap.Int("filters", len(in.Filter)))

	var (
		items     []map[string]*dynamodb.AttributeValue
		collected bool
	)
	for {
		page, err := s.db.QueryWithContext(ctx, input)
		if err != nil {
			return nil, false, translateError(opQuery, err)
		}

		if page.Items != nil {
			collected = true
			items = append(items, page.Items...)
		}

		if len(page.LastEvaluatedKey) == 0 {
			return items, collected, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (s *Store) scan(ctx context.Context, in QueryInput) ([]map[string]*dynamodb.AttributeValue, bool, error) {
	input := &dynamodb.ScanInput{
		TableName: aws.String(in.Table),
	}
	if in.Index != "" {
		input.IndexName = aws.String(in.Index)
	}

	if len(in.Filter) > 0 {
		expr, err := expression.NewBuilder().WithFilter(conditionBuilder(in.Filter)).Build()
		if err != nil {
			return nil, false, errFailedBuildExpression("filter", err)
		}
		input.FilterExpression = expr.Filter()
		input.ExpressionAttributeNames = expr.Names()
		input.ExpressionAttributeValues = expr.Values()
	}

	s.logger.Debug("dynamodb scan",
		zap.String("table", in.Table),
		zap.Int("filters", len(in.Filter)))

	var (
		items     []map[string]*dynamodb.AttributeValue
		collected bool
	)
	for {
		page, err := s.db.ScanWithContext(ctx, input)
		if err != nil {
			return nil, false, translateError(opScan, err)
		}

		if page.Items != nil {
			collected = true
			items = append(items, page.Items...)
		}

		if len(page.LastEvaluatedKey) == 0 {
			return items, collected, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}

func (k Key) attributeValues() map[string]*dynamodb.AttributeValue {
	return map[string]*dynamodb.AttributeValue{
		k.Attribute: {S: aws.String(k.Value)},
	}
}

func updateBuilder(updates FieldUpdates) expression.UpdateBuilder {
	var update expression.UpdateBuilder
	for i, f := range updates {
		if i == 0 {
			update = expression.Set(expression.Name(f.Field), expression.Value(f.Value))
			continue
		}
		update = update.Set(expression.Name(f.Field), expression.Value(f.Value))
	}
	return update
}

func conditionBuilder(preds Predicates) expression.ConditionBuilder {
	conds := make([]expression.ConditionBuilder, 0, len(preds))
	for _, p := range preds {
		switch p.Kind {
		case PredicateExists:
			conds = append(conds, expression.AttributeExists(expression.Name(p.Field)))
		default:
			conds = append(conds, expression.Name(p.Field).Equal(expression.Value(p.Value)))
		}
	}

	if len(conds) == 1 {
		return conds[0]
	}
	return expression.And(conds[0], conds[1], conds[2:]...)
}

func keyConditionBuilder(p Predicate) expression.KeyConditionBuilder {
	return expression.Key(p.Field).Equal(expression.Value(p.Value))
}

// translateError separates rejected conditional writes from every other
// store fault.
func translateError(op string, err error) error {
	var aerr awserr.Error
	if errors.As(err, &aerr) && aerr.Code() == dynamodb.ErrCodeConditionalCheckFailedException {
		return apperrors.ConditionFailed(op + ": " + aerr.Message())
	}
	return apperrors.Store(op, err)
}
