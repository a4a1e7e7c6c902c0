//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const (
	DefaultTenantSlug = "sunnyvale-pets"
	SecondTenantSlug  = "harbor-hounds"
)

func TenantIDBySlug(t *testing.T, db DBLike, slug string) uuid.UUID {
	t.Helper()

	var tenantID uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM tenants WHERE slug = $1", slug).Scan(&tenantID)
	require.NoError(t, err)

	return tenantID
}

func CreateTestCustomer(t *testing.T, db DBLike, tenantID uuid.UUID, name, email string) uuid.UUID {
	t.Helper()

	customerID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO customers (id, tenant_id, name, email) VALUES ($1, $2, $3, $4) ON CONFLICT (tenant_id, email) DO NOTHING",
		customerID, tenantID, name, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM customers WHERE tenant_id = $1 AND email = $2", tenantID, email).Scan(&customerID)
	}

	return customerID
}

func CreateTestPet(t *testing.T, db DBLike, tenantID, customerID uuid.UUID, name, species string) uuid.UUID {
	t.Helper()

	petID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO pets (id, tenant_id, customer_id, name, species) VALUES ($1, $2, $3, $4, $5)",
		petID, tenantID, customerID, name, species)
	require.NoError(t, err)

	return petID
}

func CreateTestService(t *testing.T, db DBLike, tenantID uuid.UUID, name, category string) uuid.UUID {
	t.Helper()

	serviceID := uuid.New()
	_, err := db.Exec(context.Background(), "INSERT INTO services (id, tenant_id, name, category) VALUES ($1, $2, $3, $4)",
		serviceID, tenantID, name, category)
	require.NoError(t, err)

	return serviceID
}

func CreateTestResource(t *testing.T, db DBLike, tenantID uuid.UUID, name, suiteType string) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO resources (id, tenant_id, name, suite_type) VALUES ($1, $2, $3, $4) ON CONFLICT (tenant_id, name) DO NOTHING",
		resourceID, tenantID, name, suiteType)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM resources WHERE tenant_id = $1 AND name = $2", tenantID, name).Scan(&resourceID)
	}

	return resourceID
}

func CreateTestReservation(t *testing.T, db DBLike, tenantID, customerID, petID, serviceID uuid.UUID, resourceID *uuid.UUID, start, end time.Time, status, orderNumber string) uuid.UUID {
	t.Helper()

	reservationID := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO reservations (id, tenant_id, customer_id, pet_id, service_id, resource_id, start_at, end_at, status, order_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		reservationID, tenantID, customerID, petID, serviceID, resourceID, start, end, status, orderNumber)
	require.NoError(t, err)

	return reservationID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO tenants (id, slug, name) VALUES
		    (gen_random_uuid(), 'sunnyvale-pets', 'Sunnyvale Pet Resort'),
		    (gen_random_uuid(), 'harbor-hounds', 'Harbor Hounds Daycare')
		ON CONFLICT (slug) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
