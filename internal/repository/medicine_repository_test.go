package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/medicine-service/internal/domain"
)

var medicineCols = []string{
	"id", "name", "description", "category", "manufacturer",
	"price", "stock", "expiry_date", "created_at", "updated_at",
}

func TestMedicineRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	expiry := now.AddDate(1, 0, 0)
	mock.ExpectQuery(`INSERT INTO medicines`).
		WithArgs("Paracetamol", "500mg tablets", "analgesic", "Acme Pharma", 4.50, 120, &expiry).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("med-1", now, now))

	repo := NewMedicineRepository(mock)
	med := &domain.Medicine{
		Name:         "Paracetamol",
		Description:  "500mg tablets",
		Category:     "analgesic",
		Manufacturer: "Acme Pharma",
		Price:        4.50,
		Stock:        120,
		ExpiryDate:   &expiry,
	}
	require.NoError(t, repo.Create(context.Background(), med))

	assert.Equal(t, "med-1", med.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_GetByID_NoRows(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`FROM medicines WHERE id=\$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	repo := NewMedicineRepository(mock)
	_, err = repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_List_SearchAndCategory(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM medicines WHERE \(name ILIKE \$1 OR category ILIKE \$1\) AND category = \$2 ORDER BY name ASC LIMIT \$3`).
		WithArgs("%para%", "analgesic", 20).
		WillReturnRows(pgxmock.NewRows(medicineCols).
			AddRow("med-1", "Paracetamol", "", "analgesic", "", 4.50, 120, nil, now, now))

	repo := NewMedicineRepository(mock)
	meds, err := repo.List(context.Background(), MedicineFilter{
		Search:   "para",
		Category: "analgesic",
		Limit:    20,
	})
	require.NoError(t, err)

	require.Len(t, meds, 1)
	assert.Equal(t, "Paracetamol", meds[0].Name)
	assert.Nil(t, meds[0].ExpiryDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_List_NoFilter(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM medicines ORDER BY name ASC$`).
		WillReturnRows(pgxmock.NewRows(medicineCols).
			AddRow("med-1", "Amoxicillin", "", "antibiotic", "", 9.90, 40, nil, now, now).
			AddRow("med-2", "Paracetamol", "", "analgesic", "", 4.50, 120, nil, now, now))

	repo := NewMedicineRepository(mock)
	meds, err := repo.List(context.Background(), MedicineFilter{})
	require.NoError(t, err)

	require.Len(t, meds, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Update_MissingRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE medicines`).
		WithArgs("Paracetamol", "", "", "", 4.50, 120, (*time.Time)(nil), "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewMedicineRepository(mock)
	err = repo.Update(context.Background(), &domain.Medicine{
		ID:    "missing",
		Name:  "Paracetamol",
		Price: 4.50,
		Stock: 120,
	})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Delete(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM medicines WHERE id=\$1`).
		WithArgs("med-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	repo := NewMedicineRepository(mock)
	require.NoError(t, repo.Delete(context.Background(), "med-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_Delete_MissingRow(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM medicines WHERE id=\$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewMedicineRepository(mock)
	err = repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineRepository_ListRecent(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`FROM medicines ORDER BY updated_at DESC LIMIT \$1`).
		WithArgs(10).
		WillReturnRows(pgxmock.NewRows(medicineCols).
			AddRow("med-2", "Paracetamol", "", "analgesic", "", 4.50, 120, nil, now, now).
			AddRow("med-1", "Amoxicillin", "", "antibiotic", "", 9.90, 40, nil, now, now.Add(-time.Minute)))

	repo := NewMedicineRepository(mock)
	meds, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, meds, 2)
	assert.Equal(t, "med-2", meds[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
