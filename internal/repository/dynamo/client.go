package dynamo

import (
	"context"
	"errors"

	"invoice-service/internal/domain/client"
	apperrors "invoice-service/pkg/errors"
)

// ClientRepository persists clients. Clients are shared by every
// authenticated user, so no operation is owner scoped.
type ClientRepository struct {
	store *Store
	table string
	opts  repositoryOptions
}

func NewClientRepository(store *Store, table string, opts ...RepositoryOption) *ClientRepository {
	return &ClientRepository{
		store: store,
		table: table,
		opts:  applyOptions(opts),
	}
}

func (r *ClientRepository) List(ctx context.Context, filter client.Filter) ([]*client.Client, error) {
	clients := []*client.Client{}

	err := r.store.Query(ctx, QueryInput{
		Table:  r.table,
		Filter: clientFilterPredicates(filter),
	}, &clients)
	if errors.Is(err, apperrors.ErrNoResults) {
		if r.opts.strictListResults {
			return nil, apperrors.NoResults(entityClients)
		}
		return []*client.Client{}, nil
	}
	if err != nil {
		return nil, errFailedListClients(err)
	}

	return clients, nil
}

// Create stores c as given. An existing client with the same id is replaced.
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) (*client.Client, error) {
	if err := r.store.Put(ctx, r.table, c); err != nil {
		return nil, errFailedCreateClient(err)
	}
	return c, nil
}

// Get returns nil, nil when no client has the id.
func (r *ClientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	var c client.Client
	found, err := r.store.Get(ctx, r.table, clientKey(id), &c)
	if err != nil {
		return nil, errFailedGetClient(err)
	}
	if !found {
		return nil, nil
	}
	return &c, nil
}

// Update never creates a client: a missing id yields ConditionFailed.
func (r *ClientRepository) Update(ctx context.Context, id string, update client.Update) (*client.Client, error) {
	if update.IsEmpty() {
		return nil, apperrors.Validation(errNoClientFields)
	}

	var updates FieldUpdates
	if update.Name != nil {
		updates.Set(attrName, *update.Name)
	}
	if update.Email != nil {
		updates.Set(attrEmail, *update.Email)
	}

	cond := Predicates{Exists(attrClientID)}

	var updated client.Client
	if err := r.store.Update(ctx, r.table, clientKey(id), updates, cond, &updated); err != nil {
		if errors.Is(err, apperrors.ErrConditionFailed) {
			return nil, apperrors.ConditionFailed(errClientNotFound)
		}
		return nil, errFailedUpdateClient(err)
	}

	return &updated, nil
}

// Delete is unconditional; deleting a missing client succeeds.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, r.table, clientKey(id), nil); err != nil {
		return errFailedDeleteClient(err)
	}
	return nil
}

func clientKey(id string) Key {
	return Key{Attribute: attrClientID, Value: id}
}

func clientFilterPredicates(filter client.Filter) Predicates {
	var preds Predicates
	preds.EqualIfSet(attrName, filter.Name)
	preds.EqualIfSet(attrEmail, filter.Email)
	return preds
}
