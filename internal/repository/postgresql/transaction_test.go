package postgresql

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/staffloom/attendance-backend-go/internal/pkg/database"
	"github.com/stretchr/testify/assert"
)

type stubTx struct {
	pgx.Tx
}

func TestGetQuerierPrefersBoundTransaction(t *testing.T) {
	db := &database.DB{}
	tx := stubTx{}

	ctx := context.WithValue(context.Background(), txKey{}, pgx.Tx(tx))
	assert.Equal(t, pgx.Tx(tx), GetQuerier(ctx, db))
}

func TestGetQuerierFallsBackToPool(t *testing.T) {
	db := &database.DB{}
	assert.Equal(t, db.Pool, GetQuerier(context.Background(), db))
}
