package dynamo

import (
	"context"
	"reflect"
	"regexp"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
)

var (
	assignmentPattern = regexp.MustCompile(`(#\w+)\s*=\s*(:\w+)`)
	existsPattern     = regexp.MustCompile(`attribute_exists\s*\(\s*(#\w+)\s*\)`)
)

type fakeTable struct {
	hashKey string
	order   []string
	items   map[string]map[string]*dynamodb.AttributeValue
}

// fakeDynamo is an in-memory table set that understands the equality,
// attribute_exists and SET forms produced by the expression builder.
type fakeDynamo struct {
	dynamodbiface.DynamoDBAPI

	mu     sync.Mutex
	tables map[string]*fakeTable

	err        error
	omitItems  bool
	pageSize   int
	queries    []*dynamodb.QueryInput
	scans      []*dynamodb.ScanInput
	updates    []*dynamodb.UpdateItemInput
	deletes    []*dynamodb.DeleteItemInput
	putCount   int
	getCount   int
	lastFilter *string
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{
		tables: map[string]*fakeTable{
			clientsTable:  {hashKey: attrClientID, items: map[string]map[string]*dynamodb.AttributeValue{}},
			invoicesTable: {hashKey: attrInvoiceID, items: map[string]map[string]*dynamodb.AttributeValue{}},
		},
	}
}

func (f *fakeDynamo) table(name string) *fakeTable {
	t, ok := f.tables[name]
	if !ok {
		panic("unknown table " + name)
	}
	return t
}

func (f *fakeDynamo) GetItemWithContext(_ aws.Context, in *dynamodb.GetItemInput, _ ...request.Option) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCount++

	if f.err != nil {
		return nil, f.err
	}

	t := f.table(aws.StringValue(in.TableName))
	item := t.items[aws.StringValue(in.Key[t.hashKey].S)]
	return &dynamodb.GetItemOutput{Item: copyItem(item)}, nil
}

func (f *fakeDynamo) PutItemWithContext(_ aws.Context, in *dynamodb.PutItemInput, _ ...request.Option) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCount++

	if f.err != nil {
		return nil, f.err
	}

	t := f.table(aws.StringValue(in.TableName))
	id := aws.StringValue(in.Item[t.hashKey].S)
	if _, ok := t.items[id]; !ok {
		t.order = append(t.order, id)
	}
	t.items[id] = copyItem(in.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) UpdateItemWithContext(_ aws.Context, in *dynamodb.UpdateItemInput, _ ...request.Option) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, in)

	if f.err != nil {
		return nil, f.err
	}

	t := f.table(aws.StringValue(in.TableName))
	id := aws.StringValue(in.Key[t.hashKey].S)
	current := t.items[id]

	if !matches(current, in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, conditionalCheckFailed()
	}

	next := copyItem(current)
	if next == nil {
		next = copyItem(in.Key)
		t.order = append(t.order, id)
	}
	for _, m := range assignmentPattern.FindAllStringSubmatch(aws.StringValue(in.UpdateExpression), -1) {
		next[aws.StringValue(in.ExpressionAttributeNames[m[1]])] = in.ExpressionAttributeValues[m[2]]
	}
	t.items[id] = next

	return &dynamodb.UpdateItemOutput{Attributes: copyItem(next)}, nil
}

func (f *fakeDynamo) DeleteItemWithContext(_ aws.Context, in *dynamodb.DeleteItemInput, _ ...request.Option) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, in)

	if f.err != nil {
		return nil, f.err
	}

	t := f.table(aws.StringValue(in.TableName))
	id := aws.StringValue(in.Key[t.hashKey].S)

	if !matches(t.items[id], in.ConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues) {
		return nil, conditionalCheckFailed()
	}

	delete(t.items, id)
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeDynamo) QueryWithContext(_ aws.Context, in *dynamodb.QueryInput, _ ...request.Option) (*dynamodb.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, in)
	f.lastFilter = in.FilterExpression

	if f.err != nil {
		return nil, f.err
	}

	items, last := f.collect(aws.StringValue(in.TableName), in.ExclusiveStartKey, func(item map[string]*dynamodb.AttributeValue) bool {
		return matches(item, in.KeyConditionExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues) &&
			matches(item, in.FilterExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	})
	if f.omitItems {
		items = nil
	}
	return &dynamodb.QueryOutput{Items: items, LastEvaluatedKey: last}, nil
}

func (f *fakeDynamo) ScanWithContext(_ aws.Context, in *dynamodb.ScanInput, _ ...request.Option) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans = append(f.scans, in)
	f.lastFilter = in.FilterExpression

	if f.err != nil {
		return nil, f.err
	}

	items, last := f.collect(aws.StringValue(in.TableName), in.ExclusiveStartKey, func(item map[string]*dynamodb.AttributeValue) bool {
		return matches(item, in.FilterExpression, in.ExpressionAttributeNames, in.ExpressionAttributeValues)
	})
	if f.omitItems {
		items = nil
	}
	return &dynamodb.ScanOutput{Items: items, LastEvaluatedKey: last}, nil
}

// collect walks the table in insertion order. With pageSize set it returns at
// most pageSize examined items per call, mimicking the 1 MB page limit.
func (f *fakeDynamo) collect(table string, start map[string]*dynamodb.AttributeValue, keep func(map[string]*dynamodb.AttributeValue) bool) ([]map[string]*dynamodb.AttributeValue, map[string]*dynamodb.AttributeValue) {
	t := f.table(table)

	begin := 0
	if start != nil {
		startID := aws.StringValue(start[t.hashKey].S)
		for i, id := range t.order {
			if id == startID {
				begin = i + 1
				break
			}
		}
	}

	items := []map[string]*dynamodb.AttributeValue{}
	examined := 0
	for i := begin; i < len(t.order); i++ {
		item, ok := t.items[t.order[i]]
		if !ok {
			continue
		}
		examined++
		if keep(item) {
			items = append(items, copyItem(item))
		}
		if f.pageSize > 0 && examined == f.pageSize && i < len(t.order)-1 {
			return items, map[string]*dynamodb.AttributeValue{t.hashKey: {S: aws.String(t.order[i])}}
		}
	}
	return items, nil
}

func (f *fakeDynamo) stored(table, id string) map[string]*dynamodb.AttributeValue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyItem(f.table(table).items[id])
}

func matches(item map[string]*dynamodb.AttributeValue, expr *string, names map[string]*string, values map[string]*dynamodb.AttributeValue) bool {
	if expr == nil {
		return true
	}

	for _, m := range existsPattern.FindAllStringSubmatch(*expr, -1) {
		if item[aws.StringValue(names[m[1]])] == nil {
			return false
		}
	}

	for _, m := range assignmentPattern.FindAllStringSubmatch(*expr, -1) {
		got := item[aws.StringValue(names[m[1]])]
		if got == nil || !reflect.DeepEqual(got, values[m[2]]) {
			return false
		}
	}

	return true
}

func copyItem(item map[string]*dynamodb.AttributeValue) map[string]*dynamodb.AttributeValue {
	if item == nil {
		return nil
	}
	out := make(map[string]*dynamodb.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func conditionalCheckFailed() error {
	return awserr.New(dynamodb.ErrCodeConditionalCheckFailedException, "The conditional request failed", nil)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []statusEvent
	err    error
}

type statusEvent struct {
	InvoiceID string
	Status    string
}

func (n *recordingNotifier) PublishStatusChanged(ctx context.Context, invoiceID, status string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, statusEvent{InvoiceID: invoiceID, Status: status})
	return n.err
}

func (n *recordingNotifier) published() []statusEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]statusEvent(nil), n.events...)
}

const (
	clientsTable  = "ClientsTable"
	invoicesTable = "InvoicesTable"
	ownerIndex    = "createdBy-index"
)
