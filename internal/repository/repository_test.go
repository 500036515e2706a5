package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/otcheredev/hospital-console/internal/database"
	"github.com/otcheredev/hospital-console/internal/features"
	"github.com/otcheredev/hospital-console/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := database.Open(postgres.New(postgres.Config{Conn: sqlDB}), "silent")
	require.NoError(t, err)
	return db, mock
}

var tenantColumns = []string{"id", "domain", "tenant_id", "tier", "name", "short_name", "logo_url", "primary_color", "is_active"}

func TestTenantRepository_ListActive(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(tenantColumns).
		AddRow("6b0c1a52-0a44-4c4e-9b7e-1c0f6f0d0a01", "korlebu.org", "korlebu", "big_hospital", "Korle Bu Teaching Hospital", "KBTH", "", "#7c3aed", true).
		AddRow("6b0c1a52-0a44-4c4e-9b7e-1c0f6f0d0a02", "WWW.Korlebu.org", "korlebu", "big_hospital", "Korle Bu Teaching Hospital", "KBTH", "", "#7c3aed", true).
		AddRow("6b0c1a52-0a44-4c4e-9b7e-1c0f6f0d0a03", "stmary.clinic", "stmary", "clinic", "", "", "", "", true)
	mock.ExpectQuery(`SELECT \* FROM "tenant_domains" WHERE is_active = \$1 ORDER BY tenant_id, domain`).
		WithArgs(true).
		WillReturnRows(rows)

	tenants, err := NewTenantRepository(db).ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 2)

	assert.Equal(t, "korlebu", tenants[0].ID)
	assert.Equal(t, features.TierBigHospital, tenants[0].Tier)
	assert.Equal(t, []string{"korlebu.org", "www.korlebu.org"}, tenants[0].Domains)
	assert.Equal(t, "KBTH", tenants[0].Branding.ShortName)

	assert.Equal(t, "stmary", tenants[1].ID)
	assert.Equal(t, features.TierClinic, tenants[1].Tier)
	assert.Equal(t, "MediCare Clinic", tenants[1].Branding.Name, "empty branding falls back to the tier default")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTenantRepository_ListActive_RejectsBadRows(t *testing.T) {
	tests := []struct {
		name string
		rows *sqlmock.Rows
		want string
	}{
		{
			name: "unknown tier",
			rows: sqlmock.NewRows(tenantColumns).
				AddRow("6b0c1a52-0a44-4c4e-9b7e-1c0f6f0d0a01", "a.org", "a", "mega", "A", "A", "", "", true),
			want: "unknown tier",
		},
		{
			name: "conflicting tiers",
			rows: sqlmock.NewRows(tenantColumns).
				AddRow("6b0c1a52-0a44-4c4e-9b7e-1c0f6f0d0a01", "a.org", "a", "clinic", "A", "A", "", "", true).
				AddRow("6b0c1a52-0a44-4c4e-9b7e-1c0f6f0d0a02", "b.org", "a", "hospital", "A", "A", "", "", true),
			want: "conflicting tiers",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			mock.ExpectQuery(`SELECT \* FROM "tenant_domains"`).WillReturnRows(tt.rows)

			_, err := NewTenantRepository(db).ListActive(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTenantRepository_ListActive_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "tenant_domains"`).WillReturnError(errors.New("connection reset"))

	_, err := NewTenantRepository(db).ListActive(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list tenant domains")
}

func TestTenantRepository_Seed_NothingToDo(t *testing.T) {
	db, mock := newMockDB(t)

	require.NoError(t, NewTenantRepository(db).Seed(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsoleAuditRepository_ListByTenant(t *testing.T) {
	db, mock := newMockDB(t)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "tenant_id", "user_id", "role", "action", "resource_type", "resource_id", "status", "duration", "created_at"}).
		AddRow("0f8a7c1e-3c1e-4b7a-8d6e-2a1b3c4d5e60", "korlebu", "u1", "admin", "delete", "patients", "p1", "success", 12, now)
	mock.ExpectQuery(`SELECT \* FROM "console_audit_logs" WHERE tenant_id = \$1 ORDER BY created_at DESC`).
		WillReturnRows(rows)

	logs, err := NewConsoleAuditRepository(db).ListByTenant(context.Background(), "korlebu", 20, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "delete", logs[0].Action)
	assert.Equal(t, "p1", logs[0].ResourceID)
	assert.Equal(t, int64(12), logs[0].Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsoleAuditRepository_CreateError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("database is down"))

	err := NewConsoleAuditRepository(db).Create(context.Background(), &models.ConsoleAuditLog{
		TenantID: "korlebu",
		Action:   "create",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create audit log")
}
