package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/RouteBox/internal/audit"
	"github.com/BearBump/RouteBox/internal/geo"
	"github.com/BearBump/RouteBox/internal/models"
	"github.com/stretchr/testify/suite"
)

const (
	saoPaulo = "POINT(-23.561414 -46.656250)"
	rio      = "POINT(-22.906847 -43.172896)"
)

func ptr[T any](v T) *T { return &v }

type ServiceSuite struct {
	suite.Suite

	repo  *memRepo
	now   time.Time
	svc   *Service
	actor audit.Actor
}

func (s *ServiceSuite) SetupTest() {
	s.repo = newMemRepo()
	s.repo.addDriver(&models.Driver{ID: "D1", Name: "Ana", Status: models.DriverStatusAvailable, IsActive: true})
	s.repo.addDriver(&models.Driver{ID: "D2", Name: "Bruno", Status: models.DriverStatusAvailable, IsActive: true})
	s.repo.addDriver(&models.Driver{ID: "D3", Name: "Caio", Status: models.DriverStatusInactive, IsActive: false})
	s.repo.addVehicle(&models.Vehicle{ID: "V1", LicensePlate: "ABC1D23", Status: models.VehicleStatusActive, IsActive: true, LoadCapacityKg: ptr(1000.0), VolumeCapacityM3: ptr(12.0)})
	s.repo.addVehicle(&models.Vehicle{ID: "V2", LicensePlate: "XYZ9K87", Status: models.VehicleStatusActive, IsActive: true, LoadCapacityKg: ptr(500.0)})
	s.repo.addVehicle(&models.Vehicle{ID: "V3", LicensePlate: "MNT0A00", Status: models.VehicleStatusMaintenance, IsActive: true})

	s.now = time.Date(2024, 1, 14, 10, 0, 0, 0, time.UTC)
	s.svc = New(s.repo).WithClock(func() time.Time { return s.now })
	s.actor = audit.Actor{UserID: "u1", UserName: "dispatcher", UserType: audit.UserTypeUser, RequestID: "req-1"}
}

func (s *ServiceSuite) tomorrow() time.Time {
	return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
}

func (s *ServiceSuite) input(driverID, vehicleID string) models.RouteCreateInput {
	return models.RouteCreateInput{
		Name:        "Downtown deliveries",
		DriverID:    driverID,
		VehicleID:   vehicleID,
		Type:        models.RouteTypeUrban,
		PlannedDate: s.tomorrow(),
	}
}

func (s *ServiceSuite) create(driverID, vehicleID string) *models.Route {
	r, err := s.svc.Create(context.Background(), s.input(driverID, vehicleID), s.actor)
	s.Require().NoError(err)
	return r
}

func (s *ServiceSuite) TestCreateThenCancel() {
	ctx := context.Background()
	in := s.input("D1", "V1")
	in.RouteCode = ptr("RT-20240115-001")

	r, err := s.svc.Create(ctx, in, s.actor)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusPlanned, r.Status)
	s.Require().Equal("RT-20240115-001", r.RouteCode)

	hist := s.repo.historyFor(r.ID)
	s.Require().Len(hist, 1)
	s.Require().Equal(models.HistoryRouteCreated, hist[0].EventType)
	s.Require().Equal("u1", *hist[0].UserID)

	r, err = s.svc.Cancel(ctx, r.ID, "Vehicle broke down", s.actor)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusCancelled, r.Status)
	s.Require().Equal("Vehicle broke down", *r.CancellationReason)
	s.Require().NotNil(r.CancelledAt)

	hist = s.repo.historyFor(r.ID)
	s.Require().Len(hist, 2)
	s.Require().Equal(models.HistoryStatusChanged, hist[1].EventType)
	s.Require().Equal(models.RouteStatusPlanned, *hist[1].PreviousStatus)
	s.Require().Equal(models.RouteStatusCancelled, *hist[1].NewStatus)
}

func (s *ServiceSuite) TestCancel_ReasonRequired() {
	r := s.create("D1", "V1")

	_, err := s.svc.Cancel(context.Background(), r.ID, "   ", s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	_, err = s.svc.Cancel(context.Background(), r.ID, "no", s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)
	s.Require().Len(s.repo.historyFor(r.ID), 1)
}

func (s *ServiceSuite) TestStartTwice_SecondIsInvalidTransition() {
	ctx := context.Background()
	r := s.create("D1", "V1")

	started, err := s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusInProgress, started.Status)
	s.Require().Equal(s.now, *started.ActualStartTime)

	_, err = s.svc.Start(ctx, r.ID, s.actor)
	s.Require().ErrorIs(err, ErrInvalidTransition)
	s.Require().ErrorIs(err, models.ErrBadRequest)
	s.Require().Len(s.repo.historyFor(r.ID), 2)
}

func (s *ServiceSuite) TestStart_RejectedOnPausedRoute() {
	ctx := context.Background()
	r := s.create("D1", "V1")
	_, err := s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)
	_, err = s.svc.Pause(ctx, r.ID, "lunch", s.actor)
	s.Require().NoError(err)

	_, err = s.svc.Start(ctx, r.ID, s.actor)
	s.Require().ErrorIs(err, ErrInvalidTransition)

	resumed, err := s.svc.Resume(ctx, r.ID, s.actor)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusInProgress, resumed.Status)
}

func (s *ServiceSuite) TestPauseResumeComplete_KeepsFirstStartAndDerivesDuration() {
	ctx := context.Background()
	r := s.create("D1", "V1")
	start := s.now

	_, err := s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)

	s.now = start.Add(30 * time.Minute)
	paused, err := s.svc.Pause(ctx, r.ID, "", s.actor)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusPaused, paused.Status)

	s.now = start.Add(45 * time.Minute)
	resumed, err := s.svc.Resume(ctx, r.ID, s.actor)
	s.Require().NoError(err)
	s.Require().Equal(start, *resumed.ActualStartTime)

	s.now = start.Add(90 * time.Minute)
	done, err := s.svc.Complete(ctx, r.ID, ptr(42.5), s.actor)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusCompleted, done.Status)
	s.Require().Equal(s.now, *done.ActualEndTime)
	s.Require().Equal(90, *done.ActualDurationMinutes)
	s.Require().Equal(42.5, *done.ActualDistanceKm)

	_, err = s.svc.Cancel(ctx, r.ID, "too late", s.actor)
	s.Require().ErrorIs(err, ErrInvalidTransition)
	s.Require().Len(s.repo.historyFor(r.ID), 5)
}

func (s *ServiceSuite) TestComplete_OnlyFromInProgress() {
	r := s.create("D1", "V1")
	_, err := s.svc.Complete(context.Background(), r.ID, nil, s.actor)
	s.Require().ErrorIs(err, ErrInvalidTransition)
}

func (s *ServiceSuite) TestTransition_UnknownRoute() {
	_, err := s.svc.Start(context.Background(), "nope", s.actor)
	s.Require().ErrorIs(err, models.ErrNotFound)
}

func (s *ServiceSuite) TestCreate_CapacityExceeded_NotPersisted() {
	in := s.input("D1", "V1")
	in.TotalLoadKg = ptr(1500.0)

	_, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)
	s.Require().Contains(err.Error(), "capacity")
	s.Require().Empty(s.repo.routes)
	s.Require().Empty(s.repo.history)
}

func (s *ServiceSuite) TestCreate_VolumeExceeded() {
	in := s.input("D1", "V1")
	in.TotalVolumeM3 = ptr(12.5)
	_, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)
}

func (s *ServiceSuite) TestCreate_DriverConflictRegardlessOfDate() {
	ctx := context.Background()
	first := s.create("D1", "V1")
	_, err := s.svc.Start(ctx, first.ID, s.actor)
	s.Require().NoError(err)

	in := s.input("D1", "V2")
	in.PlannedDate = s.tomorrow().AddDate(0, 0, 30)
	_, err = s.svc.Create(ctx, in, s.actor)
	s.Require().ErrorIs(err, models.ErrConflict)
	s.Require().Len(s.repo.routes, 1)
}

func (s *ServiceSuite) TestCreate_VehicleConflict() {
	s.create("D1", "V1")
	_, err := s.svc.Create(context.Background(), s.input("D2", "V1"), s.actor)
	s.Require().ErrorIs(err, models.ErrConflict)
}

func (s *ServiceSuite) TestCreate_FinishedRouteReleasesDriver() {
	ctx := context.Background()
	first := s.create("D1", "V1")
	_, err := s.svc.Cancel(ctx, first.ID, "customer called off", s.actor)
	s.Require().NoError(err)

	second := s.create("D1", "V1")
	s.Require().NotEqual(first.ID, second.ID)
}

func (s *ServiceSuite) TestCreate_ExistenceAndAvailability() {
	ctx := context.Background()

	_, err := s.svc.Create(ctx, s.input("ghost", "V1"), s.actor)
	s.Require().ErrorIs(err, models.ErrNotFound)

	_, err = s.svc.Create(ctx, s.input("D1", "ghost"), s.actor)
	s.Require().ErrorIs(err, models.ErrNotFound)

	_, err = s.svc.Create(ctx, s.input("D3", "V1"), s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	_, err = s.svc.Create(ctx, s.input("D1", "V3"), s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)
	s.Require().Contains(err.Error(), "MAINTENANCE")
}

func (s *ServiceSuite) TestCreate_DatesValidated() {
	ctx := context.Background()

	in := s.input("D1", "V1")
	in.PlannedDate = s.now.AddDate(0, 0, -1)
	_, err := s.svc.Create(ctx, in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	in = s.input("D1", "V1")
	in.PlannedDate = s.now
	in.PlannedStartTime = ptr("09:00")
	in.PlannedEndTime = ptr("08:30")
	_, err = s.svc.Create(ctx, in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	in.PlannedEndTime = ptr("17:00")
	_, err = s.svc.Create(ctx, in, s.actor)
	s.Require().NoError(err)
}

func (s *ServiceSuite) TestCreate_RouteCodes() {
	ctx := context.Background()

	in := s.input("D1", "V1")
	in.RouteCode = ptr("RT-1")
	_, err := s.svc.Create(ctx, in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	a := s.create("D1", "V1")
	b := s.create("D2", "V2")
	s.Require().Equal("RT-20240115-001", a.RouteCode)
	s.Require().Equal("RT-20240115-002", b.RouteCode)

	_, err = s.svc.Cancel(ctx, a.ID, "reassigning", s.actor)
	s.Require().NoError(err)
	in = s.input("D1", "V1")
	in.RouteCode = ptr("rt-20240115-002")
	_, err = s.svc.Create(ctx, in, s.actor)
	s.Require().ErrorIs(err, models.ErrConflict)
}

func (s *ServiceSuite) TestCreate_EstimatesFromCoordinates() {
	in := s.input("D1", "V1")
	in.OriginCoordinates = ptr(saoPaulo)
	in.DestinationCoordinates = ptr(rio)

	r, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().NoError(err)

	dist := geo.CalculateDistance(saoPaulo, rio)
	s.Require().Equal(dist, *r.EstimatedDistanceKm)
	s.Require().Equal(geo.CalculateEstimatedDuration(dist, 40, 1.3), *r.EstimatedDurationMinutes)
	s.Require().Equal(geo.EstimateCost(dist, models.RouteTypeUrban), *r.EstimatedCost)
}

func (s *ServiceSuite) TestCreate_ExplicitEstimatesWin() {
	in := s.input("D1", "V1")
	in.OriginCoordinates = ptr(saoPaulo)
	in.DestinationCoordinates = ptr(rio)
	in.EstimatedDistanceKm = ptr(400.0)
	in.EstimatedDurationMinutes = ptr(420)

	r, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().NoError(err)
	s.Require().Equal(400.0, *r.EstimatedDistanceKm)
	s.Require().Equal(420, *r.EstimatedDurationMinutes)
	s.Require().Equal(1000.0, *r.EstimatedCost)
}

func (s *ServiceSuite) TestCreate_MalformedCoordinatesDegradeToZero() {
	in := s.input("D1", "V1")
	in.OriginCoordinates = ptr("somewhere")
	in.DestinationCoordinates = ptr(rio)

	r, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().NoError(err)
	s.Require().Equal(0.0, *r.EstimatedDistanceKm)
	s.Require().Equal(0, *r.EstimatedDurationMinutes)
}

func (s *ServiceSuite) TestCreate_StopsValidated() {
	in := s.input("D1", "V1")
	in.Stops = []models.RouteStopInput{
		{CustomerAddressID: "A1", SequenceOrder: 1},
		{CustomerAddressID: "A2", SequenceOrder: 1},
	}
	_, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	in.Stops[1].SequenceOrder = 0
	_, err = s.svc.Create(context.Background(), in, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	in.Stops[1].SequenceOrder = 2
	r, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().NoError(err)
	s.Require().Len(r.Stops, 2)
	s.Require().Equal(models.StopStatusPending, r.Stops[0].Status)
	s.Require().Equal(models.DeliveryTypeDelivery, r.Stops[0].DeliveryType)
}

func (s *ServiceSuite) TestUpdate_DiffRecordedOnlyWhenChanged() {
	ctx := context.Background()
	r := s.create("D1", "V1")

	_, err := s.svc.Update(ctx, r.ID, models.RouteUpdateInput{Name: ptr("Downtown deliveries")}, s.actor)
	s.Require().NoError(err)
	s.Require().Len(s.repo.historyFor(r.ID), 1)

	up, err := s.svc.Update(ctx, r.ID, models.RouteUpdateInput{Name: ptr("Harbor loop"), DriverID: ptr("D2")}, s.actor)
	s.Require().NoError(err)
	s.Require().Equal("Harbor loop", up.Name)
	s.Require().Equal("D2", up.DriverID)

	hist := s.repo.historyFor(r.ID)
	s.Require().Len(hist, 2)
	s.Require().Equal(models.HistoryRouteUpdated, hist[1].EventType)
	s.Require().Equal([]models.FieldChange{
		{Field: "driver_id", OldValue: ptr("D1"), NewValue: ptr("D2")},
		{Field: "name", OldValue: ptr("Downtown deliveries"), NewValue: ptr("Harbor loop")},
	}, hist[1].Changes)
}

func (s *ServiceSuite) TestUpdate_OnlyWhilePlanned() {
	ctx := context.Background()
	r := s.create("D1", "V1")
	_, err := s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)

	_, err = s.svc.Update(ctx, r.ID, models.RouteUpdateInput{Name: ptr("x")}, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)
}

func (s *ServiceSuite) TestUpdate_ExclusivityExcludesSelf() {
	ctx := context.Background()
	r := s.create("D1", "V1")
	other := s.create("D2", "V2")

	_, err := s.svc.Update(ctx, r.ID, models.RouteUpdateInput{VehicleID: ptr("V1"), DriverID: ptr("D1")}, s.actor)
	s.Require().NoError(err)

	_, err = s.svc.Update(ctx, other.ID, models.RouteUpdateInput{DriverID: ptr("D1")}, s.actor)
	s.Require().ErrorIs(err, models.ErrConflict)
}

func (s *ServiceSuite) TestUpdate_VehicleSwapRechecksCapacity() {
	in := s.input("D1", "V1")
	in.TotalLoadKg = ptr(800.0)
	r, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().NoError(err)

	_, err = s.svc.Update(context.Background(), r.ID, models.RouteUpdateInput{VehicleID: ptr("V2")}, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	got, err := s.svc.Get(context.Background(), r.ID)
	s.Require().NoError(err)
	s.Require().Equal("V1", got.VehicleID)
}

func (s *ServiceSuite) TestUpdate_ReplacesStopsAndRecomputesEstimate() {
	ctx := context.Background()
	r := s.create("D1", "V1")

	up, err := s.svc.Update(ctx, r.ID, models.RouteUpdateInput{
		Stops: []models.RouteStopInput{
			{CustomerAddressID: "A1", SequenceOrder: 2, Coordinates: ptr(rio)},
			{CustomerAddressID: "A2", SequenceOrder: 1, Coordinates: ptr(saoPaulo)},
		},
	}, s.actor)
	s.Require().NoError(err)
	s.Require().Len(up.Stops, 2)
	s.Require().Equal("A2", up.Stops[0].CustomerAddressID)
	s.Require().Equal(geo.CalculateDistance(saoPaulo, rio), *up.EstimatedDistanceKm)

	stored, err := s.repo.GetRoute(ctx, r.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Stops, 2)
}

func (s *ServiceSuite) TestUpdate_StopFieldEditIsPersistedAndAudited() {
	ctx := context.Background()
	in := s.input("D1", "V1")
	in.Stops = []models.RouteStopInput{
		{CustomerAddressID: "A1", SequenceOrder: 1, DeliveryType: models.DeliveryTypeDelivery},
	}
	r, err := s.svc.Create(ctx, in, s.actor)
	s.Require().NoError(err)

	up, err := s.svc.Update(ctx, r.ID, models.RouteUpdateInput{
		Stops: []models.RouteStopInput{
			{CustomerAddressID: "A1", SequenceOrder: 1, DeliveryType: models.DeliveryTypePickup, Notes: ptr("ring twice")},
		},
	}, s.actor)
	s.Require().NoError(err)
	s.Require().Len(up.Stops, 1)
	s.Require().Equal(models.DeliveryTypePickup, up.Stops[0].DeliveryType)

	stored, err := s.repo.GetRoute(ctx, r.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Stops, 1)
	s.Require().Equal(models.DeliveryTypePickup, stored.Stops[0].DeliveryType)
	s.Require().Equal("ring twice", *stored.Stops[0].Notes)

	hist := s.repo.historyFor(r.ID)
	s.Require().Len(hist, 2)
	s.Require().Equal([]models.FieldChange{
		{Field: "stop.1.delivery_type", OldValue: ptr(models.DeliveryTypeDelivery), NewValue: ptr(models.DeliveryTypePickup)},
		{Field: "stop.1.notes", OldValue: nil, NewValue: ptr("ring twice")},
	}, hist[1].Changes)
}

func (s *ServiceSuite) TestRemove() {
	ctx := context.Background()
	r := s.create("D1", "V1")
	_, err := s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)

	err = s.svc.Remove(ctx, r.ID, s.actor)
	s.Require().ErrorIs(err, models.ErrBadRequest)

	_, err = s.svc.Pause(ctx, r.ID, "", s.actor)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.Remove(ctx, r.ID, s.actor))

	_, err = s.svc.Get(ctx, r.ID)
	s.Require().ErrorIs(err, models.ErrNotFound)

	hist := s.repo.historyFor(r.ID)
	s.Require().Equal(models.HistoryRouteDeleted, hist[len(hist)-1].EventType)

	// soft-deleted routes no longer hold the driver
	s.create("D1", "V1")
}

func (s *ServiceSuite) TestApplyStopUpdate() {
	ctx := context.Background()
	in := s.input("D1", "V1")
	in.Stops = []models.RouteStopInput{
		{CustomerAddressID: "A1", SequenceOrder: 1},
		{CustomerAddressID: "A2", SequenceOrder: 2},
	}
	r, err := s.svc.Create(ctx, in, s.actor)
	s.Require().NoError(err)
	stopID := r.Stops[0].ID

	upd := models.StopUpdateInput{RouteID: r.ID, StopID: stopID, Status: models.StopStatusCompleted, ActualArrivalTime: ptr(s.now)}
	_, err = s.svc.ApplyStopUpdate(ctx, upd, audit.System("kafka"))
	s.Require().ErrorIs(err, models.ErrBadRequest)

	_, err = s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)

	st, err := s.svc.ApplyStopUpdate(ctx, upd, audit.System("kafka"))
	s.Require().NoError(err)
	s.Require().Equal(models.StopStatusCompleted, st.Status)

	view, err := s.svc.GetView(ctx, r.ID)
	s.Require().NoError(err)
	s.Require().Equal(50.0, view.ProgressPercentage)

	hist := s.repo.historyFor(r.ID)
	last := hist[len(hist)-1]
	s.Require().Equal(models.HistoryStopUpdated, last.EventType)
	s.Require().Equal(audit.UserTypeSystem, *last.UserType)

	_, err = s.svc.ApplyStopUpdate(ctx, models.StopUpdateInput{RouteID: r.ID, StopID: "missing", Status: models.StopStatusCompleted}, audit.System(""))
	s.Require().ErrorIs(err, models.ErrNotFound)

	_, err = s.svc.ApplyStopUpdate(ctx, models.StopUpdateInput{RouteID: r.ID, StopID: stopID, Status: "LOST"}, audit.System(""))
	s.Require().ErrorIs(err, models.ErrBadRequest)
}

func (s *ServiceSuite) TestGetView_Metrics() {
	in := s.input("D1", "V1")
	in.TotalLoadKg = ptr(250.0)
	in.PlannedEndTime = ptr("18:00")
	r, err := s.svc.Create(context.Background(), in, s.actor)
	s.Require().NoError(err)

	v, err := s.svc.GetView(context.Background(), r.ID)
	s.Require().NoError(err)
	s.Require().Equal(25.0, v.CapacityUtilization)
	s.Require().False(v.Delayed)

	s.now = time.Date(2024, 1, 15, 18, 1, 0, 0, time.UTC)
	v, err = s.svc.GetView(context.Background(), r.ID)
	s.Require().NoError(err)
	s.Require().True(v.Delayed)
}

func (s *ServiceSuite) TestList_NormalizesPaging() {
	s.create("D1", "V1")
	s.create("D2", "V2")

	out, err := s.svc.List(context.Background(), models.RouteFilter{DriverID: ptr("D2"), Limit: -1})
	s.Require().NoError(err)
	s.Require().Len(out, 1)

	bad := models.RouteStatus("LOST")
	_, err = s.svc.List(context.Background(), models.RouteFilter{Status: &bad})
	s.Require().ErrorIs(err, models.ErrBadRequest)
}

func (s *ServiceSuite) TestListHistory_UnknownRoute() {
	_, err := s.svc.ListHistory(context.Background(), "nope", 10, 0)
	s.Require().ErrorIs(err, models.ErrNotFound)
}

func (s *ServiceSuite) TestHooks() {
	ctx := context.Background()
	var after []Mutation
	veto := errors.New("frozen")
	frozen := true

	s.svc.WithHook(HookFuncs{
		Before: func(_ context.Context, m Mutation) error {
			if frozen && m.Event == models.HistoryStatusChanged {
				return veto
			}
			return nil
		},
		After: func(_ context.Context, m Mutation) error {
			after = append(after, m)
			return errors.New("ignored")
		},
	})

	r := s.create("D1", "V1")
	s.Require().Len(after, 1)
	s.Require().Equal(models.HistoryRouteCreated, after[0].Event)
	s.Require().Equal("u1", after[0].Actor.UserID)

	_, err := s.svc.Start(ctx, r.ID, s.actor)
	s.Require().ErrorIs(err, veto)
	got, err := s.svc.Get(ctx, r.ID)
	s.Require().NoError(err)
	s.Require().Equal(models.RouteStatusPlanned, got.Status)
	s.Require().Len(s.repo.historyFor(r.ID), 1)

	frozen = false
	_, err = s.svc.Start(ctx, r.ID, s.actor)
	s.Require().NoError(err)
	s.Require().Len(after, 2)
	s.Require().Equal(models.RouteStatusPlanned, after[1].PreviousStatus)
}

func (s *ServiceSuite) TestEstimate() {
	est, err := s.svc.Estimate("", []string{saoPaulo, rio})
	s.Require().NoError(err)
	s.Require().Equal(geo.EstimateRoute(models.RouteTypeUrban, []string{saoPaulo, rio}), est)

	_, err = s.svc.Estimate(models.RouteTypeExpress, []string{saoPaulo})
	s.Require().ErrorIs(err, models.ErrBadRequest)

	_, err = s.svc.Estimate("SPACE", []string{saoPaulo, rio})
	s.Require().ErrorIs(err, models.ErrBadRequest)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}
