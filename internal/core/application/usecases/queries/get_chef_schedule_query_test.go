package queries_test

import (
	"testing"
	"time"

	"gharkakhana/internal/core/application/usecases/queries"
	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetChefScheduleQuery_ValidInput(t *testing.T) {
	chefID := kernel.NewUUID()
	date := time.Date(2025, 3, 10, 14, 23, 5, 0, time.UTC)

	query, err := queries.NewGetChefScheduleQuery(chefID, date)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.True(t, query.ChefID().IsEqual(chefID))
	// time component is discarded
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), query.Date())
}

func TestNewGetChefScheduleQuery_MissingDate(t *testing.T) {
	_, err := queries.NewGetChefScheduleQuery(kernel.NewUUID(), time.Time{})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetChefScheduleQuery_InvalidChefID(t *testing.T) {
	_, err := queries.NewGetChefScheduleQuery(kernel.UUID{}, time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestGetChefScheduleQuery_Validate_NotConstructed(t *testing.T) {
	query := queries.GetChefScheduleQuery{}
	require.ErrorIs(t, query.Validate(), queries.ErrGetChefScheduleQueryIsNotConstructed)
}
