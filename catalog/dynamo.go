package catalog

import (
	"context"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbiface"
	"github.com/jsphweid/incipitdex/constants"
	"github.com/jsphweid/incipitdex/logger"
	"github.com/jsphweid/incipitdex/model"
	"github.com/pkg/errors"
)

type WorkStore interface {
	GetWorks(ctx context.Context, ids []string) (map[string]model.Work, error)
}

// DynamoStore looks works up by id in a table keyed on PK, with Title, PAE
// and an optional numeric Year.
type DynamoStore struct {
	Client dynamodbiface.DynamoDBAPI
	Table  string
	// first pause before retrying unprocessed keys, doubled each round
	RetryDelay time.Duration
}

func NewDynamoStore() (*DynamoStore, error) {
	endpoint := constants.GetDynamoEndpoint()
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(constants.GetDynamoRegion()),
		Endpoint: &endpoint,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating DynamoDB session")
	}
	return &DynamoStore{
		Client:     dynamodb.New(sess),
		Table:      constants.GetDynamoTable(),
		RetryDelay: constants.BatchRetryDelay,
	}, nil
}

func stringAttr(item map[string]*dynamodb.AttributeValue, name string) string {
	if v, ok := item[name]; ok && v.S != nil {
		return *v.S
	}
	return ""
}

func toWork(item map[string]*dynamodb.AttributeValue) model.Work {
	w := model.Work{
		ID:    model.WorkID(stringAttr(item, "PK")),
		Title: stringAttr(item, "Title"),
		PAE:   stringAttr(item, "PAE"),
	}
	if v, ok := item["Year"]; ok && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		w.Year = uint(year)
	}
	return w
}

func (s *DynamoStore) wait(ctx context.Context, attempt int) error {
	d := s.RetryDelay << (attempt - 1)
	if d <= 0 {
		return nil
	}
	logger.CAT.Printf("retrying unprocessed keys in %v", d)
	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting to retry unprocessed keys")
	case <-time.After(d):
		return nil
	}
}

// GetWorks returns the works found for ids, keyed by id. Missing ids are
// simply absent.
func (s *DynamoStore) GetWorks(ctx context.Context, ids []string) (map[string]model.Work, error) {
	res := make(map[string]model.Work)
	seen := make(map[string]bool)
	var keys []map[string]*dynamodb.AttributeValue
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		})
	}

	for start := 0; start < len(keys); start += constants.MaxBatchKeys {
		end := start + constants.MaxBatchKeys
		if end > len(keys) {
			end = len(keys)
		}
		request := map[string]*dynamodb.KeysAndAttributes{
			s.Table: {Keys: keys[start:end]},
		}
		// unprocessed keys come back to be retried
		for attempt := 0; len(request) > 0; attempt++ {
			if attempt > constants.MaxBatchRetries {
				return nil, errors.Errorf("%d key(s) still unprocessed after %d retries", len(request[s.Table].Keys), constants.MaxBatchRetries)
			}
			if attempt > 0 {
				if err := s.wait(ctx, attempt); err != nil {
					return nil, err
				}
			}
			out, err := s.Client.BatchGetItemWithContext(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
			if err != nil {
				return nil, errors.Wrap(err, "error from DynamoDB")
			}
			for _, item := range out.Responses[s.Table] {
				w := toWork(item)
				res[string(w.ID)] = w
			}
			request = out.UnprocessedKeys
		}
	}
	return res, nil
}
