package queries

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_UnknownQueryType(t *testing.T) {
	res, err := Execute(context.Background(), nil, QueryType("drop_everything"), nil)

	assert.Nil(t, res)
	assert.True(t, errors.Is(err, ErrUnknownQueryType))
	assert.Contains(t, err.Error(), "drop_everything")
}

func TestListingsByCategory_MissingParam(t *testing.T) {
	for _, params := range []map[string]interface{}{nil, {"category": ""}, {"category": 7}} {
		_, err := Execute(context.Background(), nil, QueryTypeListingsByCategory, params)
		assert.True(t, errors.Is(err, ErrMissingParam), "params %v", params)
	}
}

func TestExecute_ReportsRowCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"unique_id", "category_name", "parent_category"}).
			AddRow("cat-1", "Yoga College", "").
			AddRow("cat-2", "College", "").
			AddRow("cat-3", "Music School", ""))

	res, err := Execute(context.Background(), db, QueryTypeCategories, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, res.RowCount)
	assert.GreaterOrEqual(t, res.ExecTimeMs, int64(0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry_CoversAllQueryTypes(t *testing.T) {
	for _, qt := range []QueryType{QueryTypeCategories, QueryTypeActiveListings, QueryTypeListingsByCategory} {
		_, ok := Registry[qt]
		assert.True(t, ok, string(qt))
	}
}
