package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/medicine-service/internal/domain"
)

// MedicineFilter narrows List results.
type MedicineFilter struct {
	Search   string
	Category string
	Limit    int
	Offset   int
}

// MedicineRepository defines persistence access for inventory records.
type MedicineRepository interface {
	Create(ctx context.Context, med *domain.Medicine) error
	Update(ctx context.Context, med *domain.Medicine) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Medicine, error)
	List(ctx context.Context, filter MedicineFilter) ([]domain.Medicine, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Medicine, error)
}

type medicineRepository struct {
	db DB
}

// NewMedicineRepository returns a Postgres-backed implementation.
func NewMedicineRepository(db DB) MedicineRepository {
	return &medicineRepository{db: db}
}

const medicineColumns = `id, name, description, category, manufacturer, price, stock, expiry_date, created_at, updated_at`

func (r *medicineRepository) Create(ctx context.Context, med *domain.Medicine) error {
	const query = `
        INSERT INTO medicines (name, description, category, manufacturer, price, stock, expiry_date)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		med.Name,
		med.Description,
		med.Category,
		med.Manufacturer,
		med.Price,
		med.Stock,
		med.ExpiryDate,
	).Scan(&med.ID, &med.CreatedAt, &med.UpdatedAt)
}

func (r *medicineRepository) Update(ctx context.Context, med *domain.Medicine) error {
	const query = `
        UPDATE medicines
        SET name=$1, description=$2, category=$3, manufacturer=$4,
            price=$5, stock=$6, expiry_date=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.db.Exec(ctx, query,
		med.Name,
		med.Description,
		med.Category,
		med.Manufacturer,
		med.Price,
		med.Stock,
		med.ExpiryDate,
		med.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicineRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM medicines WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *medicineRepository) GetByID(ctx context.Context, id string) (*domain.Medicine, error) {
	var med domain.Medicine
	if err := scanMedicine(r.db.QueryRow(ctx, `SELECT `+medicineColumns+` FROM medicines WHERE id=$1`, id), &med); err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *medicineRepository) List(ctx context.Context, filter MedicineFilter) ([]domain.Medicine, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR category ILIKE $%d)", len(args), len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}

	query := `SELECT ` + medicineColumns + ` FROM medicines`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY name ASC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	return r.queryMedicines(ctx, query, args...)
}

func (r *medicineRepository) ListRecent(ctx context.Context, limit int) ([]domain.Medicine, error) {
	const query = `SELECT ` + medicineColumns + ` FROM medicines ORDER BY updated_at DESC LIMIT $1`
	return r.queryMedicines(ctx, query, limit)
}

func (r *medicineRepository) queryMedicines(ctx context.Context, query string, args ...any) ([]domain.Medicine, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meds []domain.Medicine
	for rows.Next() {
		var med domain.Medicine
		if err := scanMedicine(rows, &med); err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	return meds, rows.Err()
}

func scanMedicine(row pgx.Row, med *domain.Medicine) error {
	return row.Scan(
		&med.ID,
		&med.Name,
		&med.Description,
		&med.Category,
		&med.Manufacturer,
		&med.Price,
		&med.Stock,
		&med.ExpiryDate,
		&med.CreatedAt,
		&med.UpdatedAt,
	)
}
