package usecase

import (
	"context"
	"testing"
	"time"

	"campus-resources/internal/data/entity"
	"campus-resources/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeMaintenanceRepo struct {
	requests map[uuid.UUID]*entity.MaintenanceRequest
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{requests: make(map[uuid.UUID]*entity.MaintenanceRequest)}
}

func (f *fakeMaintenanceRepo) Create(_ context.Context, req *entity.MaintenanceRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MaintenanceRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeMaintenanceRepo) FindAll(_ context.Context) ([]*entity.MaintenanceRequest, error) {
	var out []*entity.MaintenanceRequest
	for _, r := range f.requests {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.MaintenanceRequest, error) {
	var out []*entity.MaintenanceRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) FindByAssignee(_ context.Context, assigneeID uuid.UUID) ([]*entity.MaintenanceRequest, error) {
	var out []*entity.MaintenanceRequest
	for _, r := range f.requests {
		if r.AssignedTo != nil && *r.AssignedTo == assigneeID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeMaintenanceRepo) Update(_ context.Context, req *entity.MaintenanceRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeMaintenanceRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.requests, id)
	return nil
}

func newMaintenanceTestService() (MaintenanceService, *fakeMaintenanceRepo) {
	store := newFakeMaintenanceRepo()
	return NewMaintenanceService(store, zap.NewNop()), store
}

func seedMaintenance(store *fakeMaintenanceRepo, userID uuid.UUID, assignee *uuid.UUID, status entity.MaintenanceStatus) *entity.MaintenanceRequest {
	now := time.Now()
	r := &entity.MaintenanceRequest{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:      userID,
		Title:       "Broken projector",
		Description: "No signal on HDMI input",
		Location:    "Room 204",
		Priority:    entity.PriorityMedium,
		Status:      status,
		AssignedTo:  assignee,
	}
	store.Create(context.Background(), r)
	return r
}

func TestMaintenanceCreate_Defaults(t *testing.T) {
	service, _ := newMaintenanceTestService()
	actor := studentActor()

	record, err := service.Create(context.Background(), actor, &request.CreateMaintenanceRequest{
		Title:       "Leaking faucet",
		Description: "Dripping since Monday",
		Location:    "Dorm B kitchen",
	})

	require.NoError(t, err)
	assert.Equal(t, string(entity.PriorityMedium), record.Priority)
	assert.Equal(t, string(entity.MaintenanceStatusPending), record.Status)
	assert.Equal(t, actor.ID.String(), record.UserID)
}

func TestMaintenanceCreate_AnonymousForbidden(t *testing.T) {
	service, _ := newMaintenanceTestService()

	_, err := service.Create(context.Background(), entity.Actor{}, &request.CreateMaintenanceRequest{
		Title:       "x",
		Description: "y",
		Location:    "z",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMaintenanceList_RoleScoping(t *testing.T) {
	service, store := newMaintenanceTestService()

	requester := studentActor()
	worker := entity.Actor{ID: uuid.New(), Role: entity.RoleMaintenance}

	seedMaintenance(store, requester.ID, nil, entity.MaintenanceStatusPending)
	seedMaintenance(store, uuid.New(), &worker.ID, entity.MaintenanceStatusInProgress)
	seedMaintenance(store, uuid.New(), nil, entity.MaintenanceStatusPending)

	own, err := service.List(context.Background(), requester)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	assigned, err := service.List(context.Background(), worker)
	require.NoError(t, err)
	assert.Len(t, assigned, 1)

	all, err := service.List(context.Background(), staffActor())
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestMaintenanceGet_Visibility(t *testing.T) {
	service, store := newMaintenanceTestService()
	requester := studentActor()
	worker := entity.Actor{ID: uuid.New(), Role: entity.RoleMaintenance}
	r := seedMaintenance(store, requester.ID, &worker.ID, entity.MaintenanceStatusInProgress)

	for _, actor := range []entity.Actor{requester, worker, staffActor()} {
		_, err := service.Get(context.Background(), actor, r.ID.String())
		assert.NoError(t, err)
	}

	_, err := service.Get(context.Background(), studentActor(), r.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMaintenanceSetStatus_Permissions(t *testing.T) {
	service, store := newMaintenanceTestService()
	requester := studentActor()
	r := seedMaintenance(store, requester.ID, nil, entity.MaintenanceStatusPending)

	// the requester cannot progress their own ticket
	_, err := service.SetStatus(context.Background(), requester, r.ID.String(),
		&request.UpdateMaintenanceStatusRequest{Status: "in_progress"})
	assert.ErrorIs(t, err, ErrForbidden)

	worker := entity.Actor{ID: uuid.New(), Role: entity.RoleMaintenance}
	workerID := worker.ID.String()

	resp, err := service.SetStatus(context.Background(), staffActor(), r.ID.String(),
		&request.UpdateMaintenanceStatusRequest{Status: "in_progress", AssignedTo: &workerID})
	require.NoError(t, err)
	assert.Equal(t, string(entity.MaintenanceStatusInProgress), resp.Status)
	require.NotNil(t, resp.AssignedTo)
	assert.Equal(t, workerID, *resp.AssignedTo)

	// the assigned worker can close it out
	resp, err = service.SetStatus(context.Background(), worker, r.ID.String(),
		&request.UpdateMaintenanceStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.MaintenanceStatusCompleted), resp.Status)
}

func TestMaintenanceUpdate_ClosedTicketLocked(t *testing.T) {
	service, store := newMaintenanceTestService()
	requester := studentActor()
	r := seedMaintenance(store, requester.ID, nil, entity.MaintenanceStatusCompleted)

	title := "still broken"
	_, err := service.Update(context.Background(), requester, r.ID.String(),
		&request.UpdateMaintenanceRequest{Title: &title})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMaintenanceDelete_RequesterOrAdmin(t *testing.T) {
	service, store := newMaintenanceTestService()
	requester := studentActor()
	admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

	r1 := seedMaintenance(store, requester.ID, nil, entity.MaintenanceStatusPending)
	assert.NoError(t, service.Delete(context.Background(), requester, r1.ID.String()))

	r2 := seedMaintenance(store, requester.ID, nil, entity.MaintenanceStatusPending)
	assert.ErrorIs(t, service.Delete(context.Background(), studentActor(), r2.ID.String()), ErrForbidden)
	assert.NoError(t, service.Delete(context.Background(), admin, r2.ID.String()))
}
