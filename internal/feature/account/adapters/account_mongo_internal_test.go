package adapters

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"tuishare_backend/internal/feature/account/domain"
)

func TestTranslateMongoError(t *testing.T) {
	t.Parallel()

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}}}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"duplicate key", dup, domain.ErrDuplicateKey},
		{"no documents", mongo.ErrNoDocuments, domain.ErrNotFound},
		{"deadline", context.DeadlineExceeded, domain.ErrUnavailable},
		{"other", errors.New("server selection error"), domain.ErrUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, translateMongoError(tt.err), tt.want)
		})
	}

	assert.NoError(t, translateMongoError(nil))
}
