package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// TxnRunner executes fn inside a MongoDB transaction so the multi-document
// writes of one workflow transition apply together or not at all.
type TxnRunner struct {
	client *mongo.Client
}

func NewTxnRunner(db *mongo.Database) *TxnRunner {
	return &TxnRunner{client: db.Client()}
}

// WithTransaction runs fn in a session transaction. Any error from fn aborts
// the transaction.
func (t *TxnRunner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
