package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/rfarias/meibooks/internal/database/repository"
)

var (
	ErrAmountNotPositive = errors.New("amount must be positive")
	ErrUnknownCategory   = errors.New("unknown subcategory for transaction type")
)

// Ledger owns the thin mutation operations over the transaction collection.
type Ledger struct {
	Transactions *repository.TransactionRepo
	Products     *repository.ProductRepo
	Categories   *repository.CategoryRepo
}

// Create validates and inserts a new transaction. The subcategory must be a
// member of its type's category set at creation time (membership is not
// re-checked on later renames). A revenue transaction referencing a product
// inherits the product's activity type when none is set explicitly.
func (l *Ledger) Create(ctx context.Context, t repository.Transaction) (repository.Transaction, error) {
	if t.Amount <= 0 {
		return repository.Transaction{}, ErrAmountNotPositive
	}
	if err := l.checkCategory(ctx, t.Type, t.Subcategory); err != nil {
		return repository.Transaction{}, err
	}
	if t.Type == repository.TypeRevenue && t.ProductID != nil && t.ActivityType == nil {
		p, err := l.Products.Get(ctx, *t.ProductID)
		if err != nil {
			return repository.Transaction{}, err
		}
		if p != nil {
			act := p.ActivityType
			t.ActivityType = &act
		}
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.DueDate == "" {
		t.DueDate = t.Date
	}
	if err := l.Transactions.Insert(ctx, t); err != nil {
		return repository.Transaction{}, err
	}
	return t, nil
}

// Update replaces the transaction with the given id, keeping the id.
func (l *Ledger) Update(ctx context.Context, id string, t repository.Transaction) error {
	if t.Amount <= 0 {
		return ErrAmountNotPositive
	}
	t.ID = id
	return l.Transactions.Update(ctx, t)
}

// Delete removes by id. Confirmation is the caller's concern.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	return l.Transactions.Delete(ctx, id)
}

// Liquidate settles a pending title with the real payment date and method.
// No check is made that the settlement date is on or after the due date.
func (l *Ledger) Liquidate(ctx context.Context, id, settlementDate, method string) error {
	return l.Transactions.Liquidate(ctx, id, settlementDate, method)
}

func (l *Ledger) checkCategory(ctx context.Context, typ repository.TransactionType, name string) error {
	if name == "" {
		return nil
	}
	cats, err := l.Categories.List(ctx, typ)
	if err != nil {
		return err
	}
	for _, c := range cats {
		if c == name {
			return nil
		}
	}
	return ErrUnknownCategory
}
