package adapters_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tuishare_backend/internal/feature/account/adapters"
	"tuishare_backend/internal/feature/account/domain/entity"
	platformmongo "tuishare_backend/internal/platform/mongo"
)

func TestCollectionName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "students", adapters.CollectionName(entity.KindStudent))
	assert.Equal(t, "schools", adapters.CollectionName(entity.KindSchool))
	assert.Equal(t, "supporters", adapters.CollectionName(entity.KindSupporter))
}

// TestAccountMongo_Contract はMONGO_TEST_URIが設定されている場合のみ実行します。
func TestAccountMongo_Contract(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	client, err := platformmongo.NewMongoClient(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	dbName := "tuishare_test_" + time.Now().UTC().Format("20060102150405.000000000")
	database := client.Database(dbName)
	t.Cleanup(func() { _ = database.Drop(context.Background()) })

	repo := adapters.NewAccountMongo[*entity.Student](database, 5*time.Second)
	require.NoError(t, repo.EnsureIndexes(ctx))
	require.NoError(t, repo.EnsureIndexes(ctx), "index creation is idempotent")

	runRepositoryContract(t, repo)
}
