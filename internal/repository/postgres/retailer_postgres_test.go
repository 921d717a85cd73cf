package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

var retailerCols = []string{"id", "auth_id", "owner_name", "organization_name", "username", "phone_number", "date_of_establishment", "country", "profile_picture", "created_at", "updated_at"}

func TestRetailerPostgres_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRetailerPostgres(db)
	now := time.Now().UTC()

	rt := &model.Retailer{
		ID:               "r-1",
		AuthID:           "u-9",
		OwnerName:        "Owner",
		OrganizationName: "Acme",
		Username:         "acme",
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	mock.ExpectQuery("INSERT INTO retailers").
		WithArgs(rt.ID, rt.AuthID, rt.OwnerName, rt.OrganizationName, rt.Username, "", "", "", "", now, now).
		WillReturnRows(sqlmock.NewRows(retailerCols).
			AddRow(rt.ID, rt.AuthID, rt.OwnerName, rt.OrganizationName, rt.Username, "", "", "", "", now, now))

	got, err := repo.Create(context.Background(), rt)

	require.NoError(t, err)
	assert.Equal(t, "Acme", got.OrganizationName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRetailerPostgres_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRetailerPostgres(db)
	now := time.Now()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM retailers").
		WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT (.+) FROM retailers (.+) LIMIT \\$2 OFFSET \\$3").
		WithArgs("", 10, 10).
		WillReturnRows(sqlmock.NewRows(retailerCols))

	res, err := repo.List(context.Background(), repository.RetailerQuery{PageQuery: repository.PageQuery{Limit: 10, Offset: 10}})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Empty(t, res.Items)

	mock.ExpectQuery("SELECT (.+) FROM retailers WHERE username = \\$1").
		WithArgs("acme").
		WillReturnRows(sqlmock.NewRows(retailerCols).
			AddRow("r-1", "u-9", "Owner", "Acme", "acme", "", "", "", "", now, now))

	got, err := repo.FindByUsername(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, "u-9", got.AuthID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
