package pgroute

import (
	"context"
	"testing"
	"time"

	"github.com/BearBump/RouteBox/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *Storage {
	t.Helper()
	return startPostgresWithParams(t, "")
}

// startPostgresWithParams appends extra connection parameters to the DSN.
func startPostgresWithParams(t *testing.T, params string) *Storage {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "admin",
			"POSTGRES_PASSWORD": "admin",
			"POSTGRES_DB":       "routebox_test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dsn := "postgres://admin:admin@" + host + ":" + port.Port() + "/routebox_test?sslmode=disable" + params
	st, err := New(dsn)
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return st
}

func seedFleet(t *testing.T, st *Storage) (*models.Driver, *models.Vehicle) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	d := &models.Driver{
		ID: uuid.NewString(), Name: "Ana Souza", CPF: "52998224725", LicenseNumber: "02650306461",
		LicenseCategory: "D", Status: models.DriverStatusAvailable, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.CreateDriver(ctx, d))

	capKg := 1000.0
	v := &models.Vehicle{
		ID: uuid.NewString(), LicensePlate: "ABC1D23", Model: "Sprinter", Status: models.VehicleStatusActive,
		LoadCapacityKg: &capKg, IsActive: true, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, st.CreateVehicle(ctx, v))
	return d, v
}

func newRoute(d *models.Driver, v *models.Vehicle, code string, day time.Time) *models.Route {
	now := time.Now().UTC().Truncate(time.Microsecond)
	end := "10:00"
	return &models.Route{
		ID: uuid.NewString(), RouteCode: code, Name: "Centro", DriverID: d.ID, VehicleID: v.ID,
		Status: models.RouteStatusPlanned, Type: models.RouteTypeUrban,
		PlannedDate: day, PlannedEndTime: &end, CreatedAt: now, UpdatedAt: now,
	}
}

func TestPGRoute_RepoFlow(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()
	d, v := seedFleet(t, st)

	gotD, err := st.GetDriver(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "52998224725", gotD.CPF)
	missing, err := st.GetDriver(ctx, uuid.NewString())
	require.NoError(t, err)
	require.Nil(t, missing)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	r := newRoute(d, v, "RT-20240115-001", day)
	r.Stops = []*models.RouteStop{
		{ID: uuid.NewString(), RouteID: r.ID, CustomerAddressID: "addr-1", SequenceOrder: 1,
			Status: models.StopStatusPending, DeliveryType: models.DeliveryTypeDelivery, CreatedAt: r.CreatedAt, UpdatedAt: r.CreatedAt},
		{ID: uuid.NewString(), RouteID: r.ID, CustomerAddressID: "addr-2", SequenceOrder: 2,
			Status: models.StopStatusPending, DeliveryType: models.DeliveryTypePickup, CreatedAt: r.CreatedAt, UpdatedAt: r.CreatedAt},
	}

	err = st.InTx(ctx, func(ctx context.Context) error {
		if err := st.CreateRoute(ctx, r); err != nil {
			return err
		}
		prev := models.RouteStatusPlanned
		return st.AppendHistory(ctx, &models.RouteHistory{
			ID: uuid.NewString(), RouteID: r.ID, EventType: models.HistoryRouteCreated, Description: "created",
			NewStatus: &prev, CreatedAt: r.CreatedAt,
		})
	})
	require.NoError(t, err)

	got, err := st.GetRoute(ctx, r.ID)
	require.NoError(t, err)
	require.Equal(t, "RT-20240115-001", got.RouteCode)
	require.True(t, day.Equal(got.PlannedDate))
	require.Len(t, got.Stops, 2)
	require.Equal(t, "addr-1", got.Stops[0].CustomerAddressID)

	seq, err := st.NextRouteCodeSeq(ctx, "RT-20240115-")
	require.NoError(t, err)
	require.Equal(t, 2, seq)

	exists, err := st.RouteCodeExists(ctx, "RT-20240115-001", "")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = st.RouteCodeExists(ctx, "RT-20240115-001", r.ID)
	require.NoError(t, err)
	require.False(t, exists)

	active, err := st.FindActiveRouteByDriver(ctx, d.ID, "")
	require.NoError(t, err)
	require.Equal(t, r.ID, active.ID)
	active, err = st.FindActiveRouteByVehicle(ctx, v.ID, r.ID)
	require.NoError(t, err)
	require.Nil(t, active)

	// a second active route for the same driver hits the partial unique index
	dup := newRoute(d, v, "RT-20240115-002", day)
	require.ErrorIs(t, st.CreateRoute(ctx, dup), models.ErrConflict)

	// status CAS
	start := time.Now().UTC().Truncate(time.Microsecond)
	got.Status = models.RouteStatusInProgress
	got.ActualStartTime = &start
	ok, err := st.UpdateRouteStatus(ctx, got, models.RouteStatusPlanned)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = st.UpdateRouteStatus(ctx, got, models.RouteStatusPlanned)
	require.NoError(t, err)
	require.False(t, ok)

	// stop update
	stop := got.Stops[0]
	stop.Status = models.StopStatusCompleted
	stop.ActualArrivalTime = &start
	require.NoError(t, st.UpdateStop(ctx, stop))

	status := models.RouteStatusInProgress
	list, err := st.ListRoutes(ctx, models.RouteFilter{Status: &status, DriverID: &d.ID, PlannedDate: &day, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)

	hist, err := st.ListHistory(ctx, r.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	require.Equal(t, models.HistoryRouteCreated, hist[0].EventType)

	// history is append-only
	_, err = st.db.Exec(ctx, `DELETE FROM route_history WHERE route_id = $1`, r.ID)
	require.Error(t, err)

	require.NoError(t, st.SoftDeleteRoute(ctx, r.ID, time.Now().UTC()))
	gone, err := st.GetRoute(ctx, r.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	// soft-deleted codes still count for the sequence
	seq, err = st.NextRouteCodeSeq(ctx, "RT-20240115-")
	require.NoError(t, err)
	require.Equal(t, 2, seq)
}

func TestPGRoute_ClaimDelayedRoutes(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()
	d, v := seedFleet(t, st)

	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	r := newRoute(d, v, "RT-20240115-001", day)
	require.NoError(t, st.CreateRoute(ctx, r))

	before := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	picked, err := st.ClaimDelayedRoutes(ctx, before, 10)
	require.NoError(t, err)
	require.Empty(t, picked)

	after := time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC)
	picked, err = st.ClaimDelayedRoutes(ctx, after, 10)
	require.NoError(t, err)
	require.Len(t, picked, 1)
	require.NotNil(t, picked[0].DelayNotifiedAt)

	picked, err = st.ClaimDelayedRoutes(ctx, after, 10)
	require.NoError(t, err)
	require.Empty(t, picked)

	require.NoError(t, st.ReleaseDelayNotice(ctx, r.ID))
	picked, err = st.ClaimDelayedRoutes(ctx, after, 10)
	require.NoError(t, err)
	require.Len(t, picked, 1)
}

func TestPGRoute_ClaimDelayedRoutes_NonUTCSession(t *testing.T) {
	st := startPostgresWithParams(t, "&timezone=Asia/Tokyo")
	ctx := context.Background()
	d, v := seedFleet(t, st)

	var tz string
	require.NoError(t, st.db.QueryRow(ctx, `SHOW TimeZone`).Scan(&tz))
	require.Equal(t, "Asia/Tokyo", tz)

	r := newRoute(d, v, "RT-20240115-001", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, st.CreateRoute(ctx, r))

	// 09:00 UTC is 18:00 in Tokyo; the 10:00 end is read as UTC
	picked, err := st.ClaimDelayedRoutes(ctx, time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC), 10)
	require.NoError(t, err)
	require.Empty(t, picked)

	picked, err = st.ClaimDelayedRoutes(ctx, time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC), 10)
	require.NoError(t, err)
	require.Len(t, picked, 1)
	require.Equal(t, r.ID, picked[0].ID)
}

func TestPGRoute_FleetStatus(t *testing.T) {
	st := startPostgres(t)
	ctx := context.Background()
	d, v := seedFleet(t, st)
	now := time.Now().UTC()

	ok, err := st.UpdateDriverStatus(ctx, d.ID, models.DriverStatusInactive, false, now)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = st.UpdateVehicleStatus(ctx, v.ID, models.VehicleStatusMaintenance, true, now)
	require.NoError(t, err)
	require.True(t, ok)

	gotV, err := st.GetVehicle(ctx, v.ID)
	require.NoError(t, err)
	require.Equal(t, models.VehicleStatusMaintenance, gotV.Status)

	// duplicate plate
	dupV := *v
	dupV.ID = uuid.NewString()
	require.ErrorIs(t, st.CreateVehicle(ctx, &dupV), models.ErrConflict)

	drivers, err := st.ListDrivers(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.False(t, drivers[0].IsActive)

	vehicles, err := st.ListVehicles(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
}
