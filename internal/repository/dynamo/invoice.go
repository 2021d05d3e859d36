package dynamo

import (
	"context"
	"errors"

	"invoice-service/internal/domain/invoice"
	apperrors "invoice-service/pkg/errors"

	"go.uber.org/zap"
)

// StatusNotifier announces invoice status changes.
type StatusNotifier interface {
	PublishStatusChanged(ctx context.Context, invoiceID, status string) error
}

// InvoiceRepository persists invoices. Every operation except Create is
// scoped to the owning user; an invoice owned by someone else behaves exactly
// like a missing one.
type InvoiceRepository struct {
	store      *Store
	table      string
	ownerIndex string
	notifier   StatusNotifier
	opts       repositoryOptions
}

func NewInvoiceRepository(store *Store, table, ownerIndex string, notifier StatusNotifier, opts ...RepositoryOption) *InvoiceRepository {
	return &InvoiceRepository{
		store:      store,
		table:      table,
		ownerIndex: ownerIndex,
		notifier:   notifier,
		opts:       applyOptions(opts),
	}
}

func (r *InvoiceRepository) List(ctx context.Context, userID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	owner := Equal(attrCreatedBy, userID)
	invoices := []*invoice.Invoice{}

	err := r.store.Query(ctx, QueryInput{
		Table:        r.table,
		Index:        r.ownerIndex,
		KeyCondition: &owner,
		Filter:       invoiceFilterPredicates(filter),
	}, &invoices)
	if errors.Is(err, apperrors.ErrNoResults) {
		if r.opts.strictListResults {
			return nil, apperrors.NoResults(entityInvoices)
		}
		return []*invoice.Invoice{}, nil
	}
	if err != nil {
		return nil, errFailedListInvoices(err)
	}

	return invoices, nil
}

// Create stores inv as given. CreatedBy must already hold the caller identity.
func (r *InvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) (*invoice.Invoice, error) {
	if err := r.store.Put(ctx, r.table, inv); err != nil {
		return nil, errFailedCreateInvoice(err)
	}
	return inv, nil
}

// Get returns nil, nil when the invoice is missing or owned by another user.
func (r *InvoiceRepository) Get(ctx context.Context, id, userID string) (*invoice.Invoice, error) {
	var inv invoice.Invoice
	found, err := r.store.Get(ctx, r.table, invoiceKey(id), &inv)
	if err != nil {
		return nil, errFailedGetInvoice(err)
	}
	if !found || !inv.OwnedBy(userID) {
		return nil, nil
	}
	return &inv, nil
}

// Update applies the supplied fields when userID owns the invoice. An empty
// status counts as absent. A status change is announced after the write;
// notification failures are logged only.
func (r *InvoiceRepository) Update(ctx context.Context, id, userID string, update invoice.Update) (*invoice.Invoice, error) {
	if update.Status != nil && *update.Status == "" {
		update.Status = nil
	}
	if update.IsEmpty() {
		return nil, apperrors.Validation(errNoInvoiceFields)
	}

	var updates FieldUpdates
	if update.Status != nil {
		updates.Set(attrStatus, *update.Status)
	}
	if update.InvoiceNumber != nil {
		updates.Set(attrInvoiceNumber, *update.InvoiceNumber)
	}
	if update.DueDate != nil {
		updates.Set(attrDueDate, *update.DueDate)
	}
	if update.Items != nil {
		items := *update.Items
		if items == nil {
			items = []invoice.Item{}
		}
		updates.Set(attrItems, items)
	}

	var updated invoice.Invoice
	if err := r.store.Update(ctx, r.table, invoiceKey(id), updates, ownerCondition(userID), &updated); err != nil {
		if errors.Is(err, apperrors.ErrConditionFailed) {
			return nil, apperrors.ConditionFailed(errInvoiceNotFound)
		}
		return nil, errFailedUpdateInvoice(err)
	}

	if update.Status != nil {
		r.notifyStatusChanged(ctx, id, *update.Status)
	}

	return &updated, nil
}

func (r *InvoiceRepository) Delete(ctx context.Context, id, userID string) error {
	if err := r.store.Delete(ctx, r.table, invoiceKey(id), ownerCondition(userID)); err != nil {
		if errors.Is(err, apperrors.ErrConditionFailed) {
			return apperrors.ConditionFailed(errInvoiceNotFound)
		}
		return errFailedDeleteInvoice(err)
	}
	return nil
}

func (r *InvoiceRepository) notifyStatusChanged(ctx context.Context, id, status string) {
	if r.notifier == nil {
		return
	}

	// The write already succeeded; a client disconnect must not drop the event.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.publishTimeout)
	defer cancel()

	if err := r.notifier.PublishStatusChanged(publishCtx, id, status); err != nil {
		r.opts.logger.Warn("failed to publish invoice status change",
			zap.String("invoice_id", id),
			zap.String("status", status),
			zap.Error(err))
	}
}

func invoiceKey(id string) Key {
	return Key{Attribute: attrInvoiceID, Value: id}
}

func ownerCondition(userID string) Predicates {
	return Predicates{Equal(attrCreatedBy, userID)}
}

func invoiceFilterPredicates(filter invoice.Filter) Predicates {
	var preds Predicates
	preds.EqualIfSet(attrStatus, filter.Status)
	preds.EqualIfSet(attrClientID, filter.ClientID)
	return preds
}
