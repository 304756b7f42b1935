package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"campus-resources/internal/data/entity"
	"campus-resources/internal/data/repository"
	"campus-resources/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBookingRepo keeps bookings in memory and mirrors the repository's
// conflict semantics: live statuses only, strict half-open interval overlap.
type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]*entity.Booking
	conflictCalls int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) FindAll(_ context.Context) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.OwnerID == ownerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindByStatus(_ context.Context, status entity.BookingStatus) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.Status == status {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *booking
	f.bookings[booking.ID] = &cp
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[id].Status = status
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) FindConflicts(_ context.Context, resourceName string, start, end time.Time, excludeID *uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conflictCalls++
	var out []*entity.Booking
	for _, b := range f.bookings {
		if b.ResourceName != resourceName || !b.Status.Live() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if entity.Overlaps(b.StartTime, b.EndTime, start, end) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByRole(_ context.Context, role entity.UserRole) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func newBookingTestService() (BookingService, *fakeBookingRepo, *fakeUserRepo) {
	bookings := newFakeBookingRepo()
	users := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	repo := &repository.Repository{Booking: bookings, User: users}
	return NewBookingService(repo, zap.NewNop()), bookings, users
}

func studentActor() entity.Actor {
	return entity.Actor{ID: uuid.New(), Role: entity.RoleStudent}
}

func staffActor() entity.Actor {
	return entity.Actor{ID: uuid.New(), Role: entity.RoleStaff}
}

func createReq(resource string, start, end time.Time) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		ResourceType: "room",
		ResourceName: resource,
		StartTime:    start,
		EndTime:      end,
	}
}

var testDay = time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

func hour(h int) time.Time { return testDay.Add(time.Duration(h) * time.Hour) }

func TestBookingCreate_StartsPending(t *testing.T) {
	service, _, _ := newBookingTestService()
	actor := studentActor()

	booking, err := service.Create(context.Background(), actor, createReq("Room 101", hour(9), hour(11)))

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusPending), booking.Status)
	assert.Equal(t, actor.ID.String(), booking.OwnerID)
}

func TestBookingCreate_AnonymousForbidden(t *testing.T) {
	service, _, _ := newBookingTestService()

	_, err := service.Create(context.Background(), entity.Actor{}, createReq("Room 101", hour(9), hour(11)))

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookingCreate_InvalidWindow(t *testing.T) {
	service, _, _ := newBookingTestService()
	actor := studentActor()

	for _, tt := range []struct {
		name       string
		start, end time.Time
	}{
		{"reversed", hour(11), hour(9)},
		{"zero length", hour(9), hour(9)},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), actor, createReq("Room 101", tt.start, tt.end))
			assert.ErrorIs(t, err, ErrInvalidWindow)
		})
	}
}

func TestBookingCreate_OverlapRejected(t *testing.T) {
	service, store, _ := newBookingTestService()

	first, err := service.Create(context.Background(), studentActor(), createReq("Room 101", hour(9), hour(11)))
	require.NoError(t, err)

	_, err = service.Create(context.Background(), studentActor(), createReq("Room 101", hour(10), hour(12)))

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "Room 101", conflictErr.ResourceName)
	require.Len(t, conflictErr.Conflicts, 1)
	assert.Equal(t, first.ID, conflictErr.Conflicts[0].ID.String())

	// the losing request must not have been persisted
	all, _ := store.FindAll(context.Background())
	assert.Len(t, all, 1)
}

func TestBookingCreate_BoundaryTouchAllowed(t *testing.T) {
	service, _, _ := newBookingTestService()

	_, err := service.Create(context.Background(), studentActor(), createReq("Room 101", hour(9), hour(11)))
	require.NoError(t, err)

	// back-to-back on the same resource is fine
	_, err = service.Create(context.Background(), studentActor(), createReq("Room 101", hour(11), hour(13)))
	assert.NoError(t, err)
}

func TestBookingCreate_SameWindowDifferentResource(t *testing.T) {
	service, _, _ := newBookingTestService()

	_, err := service.Create(context.Background(), studentActor(), createReq("Room 101", hour(9), hour(11)))
	require.NoError(t, err)

	_, err = service.Create(context.Background(), studentActor(), createReq("Room 102", hour(9), hour(11)))
	assert.NoError(t, err)
}

func TestBookingCreate_OnBehalfOf(t *testing.T) {
	service, _, users := newBookingTestService()

	target := &entity.User{Base: entity.Base{ID: uuid.New()}, Email: "prof@campus.edu", Role: entity.RoleFaculty}
	users.users[target.ID] = target
	targetID := target.ID.String()

	t.Run("privileged actor books for the target", func(t *testing.T) {
		req := createReq("Room 201", hour(9), hour(10))
		req.OnBehalfOfUserID = &targetID

		booking, err := service.Create(context.Background(), staffActor(), req)

		require.NoError(t, err)
		assert.Equal(t, targetID, booking.OwnerID)
	})

	t.Run("unknown target is rejected", func(t *testing.T) {
		unknown := uuid.New().String()
		req := createReq("Room 202", hour(9), hour(10))
		req.OnBehalfOfUserID = &unknown

		_, err := service.Create(context.Background(), staffActor(), req)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("non-privileged actor keeps ownership", func(t *testing.T) {
		actor := studentActor()
		req := createReq("Room 203", hour(9), hour(10))
		req.OnBehalfOfUserID = &targetID

		booking, err := service.Create(context.Background(), actor, req)

		require.NoError(t, err)
		assert.Equal(t, actor.ID.String(), booking.OwnerID)
	})
}

func TestBookingCreate_ConcurrentSameSlot(t *testing.T) {
	service, store, _ := newBookingTestService()

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = service.Create(context.Background(), studentActor(), createReq("Auditorium", hour(14), hour(16)))
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var conflictErr *ConflictError
		assert.ErrorAs(t, err, &conflictErr)
	}
	assert.Equal(t, 1, succeeded)

	all, _ := store.FindAll(context.Background())
	assert.Len(t, all, 1)
}

func seedBooking(store *fakeBookingRepo, owner uuid.UUID, resource string, start, end time.Time, status entity.BookingStatus) *entity.Booking {
	b := &entity.Booking{
		BaseSimple:   entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		OwnerID:      owner,
		ResourceType: "room",
		ResourceName: resource,
		StartTime:    start,
		EndTime:      end,
		Status:       status,
	}
	store.Create(context.Background(), b)
	return b
}

func TestBookingSetStatus_ApproveHappyPath(t *testing.T) {
	service, store, _ := newBookingTestService()
	b := seedBooking(store, uuid.New(), "Room 101", hour(9), hour(11), entity.BookingStatusPending)

	resp, err := service.SetStatus(context.Background(), staffActor(), b.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "approved"})

	require.NoError(t, err)
	assert.Equal(t, string(entity.BookingStatusApproved), resp.Status)
}

func TestBookingSetStatus_RequiresPrivilege(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()
	b := seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusPending)

	// not even the owner may approve their own booking
	_, err := service.SetStatus(context.Background(), owner, b.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "approved"})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookingSetStatus_ApprovalRechecksConflicts(t *testing.T) {
	service, store, _ := newBookingTestService()

	// two overlapping pendings can coexist only by direct seeding; approval
	// must then admit at most one of them
	first := seedBooking(store, uuid.New(), "Room 101", hour(9), hour(11), entity.BookingStatusPending)
	second := seedBooking(store, uuid.New(), "Room 101", hour(10), hour(12), entity.BookingStatusPending)

	_, err := service.SetStatus(context.Background(), staffActor(), first.ID.String(),
		&request.UpdateBookingStatusRequest{Status: "approved"})
	require.Error(t, err)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, second.ID, conflictErr.Conflicts[0].ID)
}

func TestBookingSetStatus_TransitionGraph(t *testing.T) {
	service, store, _ := newBookingTestService()
	admin := entity.Actor{ID: uuid.New(), Role: entity.RoleAdmin}

	tests := []struct {
		name    string
		from    entity.BookingStatus
		to      string
		allowed bool
	}{
		{"pending to approved", entity.BookingStatusPending, "approved", true},
		{"pending to rejected", entity.BookingStatusPending, "rejected", true},
		{"pending to completed", entity.BookingStatusPending, "completed", false},
		{"approved to completed", entity.BookingStatusApproved, "completed", true},
		{"approved to rejected", entity.BookingStatusApproved, "rejected", true},
		{"rejected is terminal", entity.BookingStatusRejected, "pending", false},
		{"completed is terminal", entity.BookingStatusCompleted, "approved", false},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resource := "Transition Room " + string(rune('A'+i))
			b := seedBooking(store, uuid.New(), resource, hour(9), hour(11), tt.from)

			_, err := service.SetStatus(context.Background(), admin, b.ID.String(),
				&request.UpdateBookingStatusRequest{Status: tt.to})

			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestBookingUpdate_ReasonEditSkipsConflictCheck(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()
	b := seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusPending)

	store.conflictCalls = 0
	reason := "weekly seminar"

	resp, err := service.Update(context.Background(), owner, b.ID.String(),
		&request.UpdateBookingRequest{Reason: &reason})

	require.NoError(t, err)
	assert.Equal(t, &reason, resp.Reason)
	assert.Zero(t, store.conflictCalls)
}

func TestBookingUpdate_WindowChangeChecksConflictsExcludingSelf(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()
	b := seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusPending)

	// shifting within the booking's own old window must not self-conflict
	newStart, newEnd := hour(10), hour(12)
	resp, err := service.Update(context.Background(), owner, b.ID.String(),
		&request.UpdateBookingRequest{StartTime: &newStart, EndTime: &newEnd})

	require.NoError(t, err)
	assert.Equal(t, newStart, resp.StartTime)

	// but colliding with someone else still fails
	seedBooking(store, uuid.New(), "Room 101", hour(13), hour(15), entity.BookingStatusApproved)
	clashStart, clashEnd := hour(14), hour(16)

	_, err = service.Update(context.Background(), owner, b.ID.String(),
		&request.UpdateBookingRequest{StartTime: &clashStart, EndTime: &clashEnd})

	var conflictErr *ConflictError
	assert.ErrorAs(t, err, &conflictErr)
}

func TestBookingUpdate_ApprovedLockedForOwner(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()
	b := seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusApproved)

	reason := "changed my mind"
	_, err := service.Update(context.Background(), owner, b.ID.String(),
		&request.UpdateBookingRequest{Reason: &reason})
	assert.ErrorIs(t, err, ErrForbidden)

	// a privileged actor can still edit
	_, err = service.Update(context.Background(), staffActor(), b.ID.String(),
		&request.UpdateBookingRequest{Reason: &reason})
	assert.NoError(t, err)
}

func TestBookingUpdate_StrangerForbidden(t *testing.T) {
	service, store, _ := newBookingTestService()
	b := seedBooking(store, uuid.New(), "Room 101", hour(9), hour(11), entity.BookingStatusPending)

	reason := "not mine"
	_, err := service.Update(context.Background(), studentActor(), b.ID.String(),
		&request.UpdateBookingRequest{Reason: &reason})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookingDelete_Rules(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()

	t.Run("owner deletes pending", func(t *testing.T) {
		b := seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusPending)
		assert.NoError(t, service.Delete(context.Background(), owner, b.ID.String()))
	})

	t.Run("owner cannot delete approved", func(t *testing.T) {
		b := seedBooking(store, owner.ID, "Room 102", hour(9), hour(11), entity.BookingStatusApproved)
		err := service.Delete(context.Background(), owner, b.ID.String())
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("staff deletes approved", func(t *testing.T) {
		b := seedBooking(store, owner.ID, "Room 103", hour(9), hour(11), entity.BookingStatusApproved)
		assert.NoError(t, service.Delete(context.Background(), staffActor(), b.ID.String()))
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		b := seedBooking(store, owner.ID, "Room 104", hour(9), hour(11), entity.BookingStatusPending)
		err := service.Delete(context.Background(), studentActor(), b.ID.String())
		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestBookingGet_OwnerOrPrivileged(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()
	b := seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusPending)

	_, err := service.Get(context.Background(), owner, b.ID.String())
	assert.NoError(t, err)

	_, err = service.Get(context.Background(), staffActor(), b.ID.String())
	assert.NoError(t, err)

	_, err = service.Get(context.Background(), studentActor(), b.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestBookingGet_NotFoundAndBadID(t *testing.T) {
	service, _, _ := newBookingTestService()

	_, err := service.Get(context.Background(), staffActor(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = service.Get(context.Background(), staffActor(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestBookingListPublic_ApprovedOnly(t *testing.T) {
	service, store, _ := newBookingTestService()
	seedBooking(store, uuid.New(), "Room 101", hour(9), hour(11), entity.BookingStatusApproved)
	seedBooking(store, uuid.New(), "Room 101", hour(11), hour(13), entity.BookingStatusPending)
	seedBooking(store, uuid.New(), "Room 101", hour(13), hour(15), entity.BookingStatusRejected)

	summaries, err := service.ListPublic(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, string(entity.BookingStatusApproved), summaries[0].Status)
}

func TestBookingList_ScopedByActor(t *testing.T) {
	service, store, _ := newBookingTestService()
	owner := studentActor()
	seedBooking(store, owner.ID, "Room 101", hour(9), hour(11), entity.BookingStatusPending)
	seedBooking(store, uuid.New(), "Room 102", hour(9), hour(11), entity.BookingStatusPending)

	own, err := service.List(context.Background(), owner)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := service.List(context.Background(), staffActor())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCheckAvailability(t *testing.T) {
	service, store, _ := newBookingTestService()
	seedBooking(store, uuid.New(), "Room 101", hour(9), hour(11), entity.BookingStatusApproved)

	t.Run("busy window", func(t *testing.T) {
		resp, err := service.CheckAvailability(context.Background(), "Room 101", hour(10), hour(12))
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Len(t, resp.Busy, 1)
	})

	t.Run("free window", func(t *testing.T) {
		resp, err := service.CheckAvailability(context.Background(), "Room 101", hour(11), hour(13))
		require.NoError(t, err)
		assert.True(t, resp.Available)
		assert.Empty(t, resp.Busy)
	})

	t.Run("read-only and repeatable", func(t *testing.T) {
		before, _ := store.FindAll(context.Background())
		for i := 0; i < 3; i++ {
			resp, err := service.CheckAvailability(context.Background(), "Room 101", hour(10), hour(12))
			require.NoError(t, err)
			assert.False(t, resp.Available)
		}
		after, _ := store.FindAll(context.Background())
		assert.Len(t, after, len(before))
	})

	t.Run("invalid window", func(t *testing.T) {
		_, err := service.CheckAvailability(context.Background(), "Room 101", hour(12), hour(10))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})

	t.Run("missing resource name", func(t *testing.T) {
		_, err := service.CheckAvailability(context.Background(), "", hour(9), hour(10))
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}
