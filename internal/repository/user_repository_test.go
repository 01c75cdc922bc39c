package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestGormUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	_, err := repo.FindByUsername("ghost")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_FindByUsername_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	driverErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT \\* FROM `users`").
		WithArgs("alice", 1).
		WillReturnError(driverErr)

	_, err := repo.FindByUsername("alice")
	require.ErrorIs(t, err, driverErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Delete_RunsInTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `team_members`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(42))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGormUserRepository_Delete_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	driverErr := errors.New("deadlock")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `tasks` SET").
		WillReturnError(driverErr)
	mock.ExpectRollback()

	require.ErrorIs(t, repo.Delete(42), driverErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
