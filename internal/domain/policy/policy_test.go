package policy

import (
	"context"
	"testing"
	"time"

	"doggywalk/internal/domain/entity"
	domainerrors "doggywalk/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pair struct{ owner, walker uuid.UUID }

type fakeGraph struct {
	connected map[pair]bool
	err       error
	calls     int
}

func (g *fakeGraph) IsConnected(_ context.Context, ownerID, walkerID uuid.UUID) (bool, error) {
	g.calls++
	if g.err != nil {
		return false, g.err
	}

	return g.connected[pair{ownerID, walkerID}], nil
}

type policyFixtures struct {
	engine        *Engine
	graph         *fakeGraph
	owner         *entity.AuthenticatedPrincipal
	otherOwner    *entity.AuthenticatedPrincipal
	walker        *entity.AuthenticatedPrincipal // connected to owner
	strangeWalker *entity.AuthenticatedPrincipal // never messaged by owner
}

func createPolicyFixtures() policyFixtures {
	f := policyFixtures{
		owner:         &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindOwner},
		otherOwner:    &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindOwner},
		walker:        &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindWalker},
		strangeWalker: &entity.AuthenticatedPrincipal{ID: uuid.New(), Kind: entity.KindWalker},
	}
	f.graph = &fakeGraph{connected: map[pair]bool{{f.owner.ID, f.walker.ID}: true}}
	f.engine = NewEngine(f.graph)

	return f
}

func TestEngine_OwnerVisibility(t *testing.T) {
	f := createPolicyFixtures()
	ctx := context.Background()
	dog := &entity.Dog{ID: uuid.New(), OwnerID: f.owner.ID}

	tests := []struct {
		name   string
		actor  *entity.AuthenticatedPrincipal
		action Action
		target Target
		want   bool
	}{
		{"owner views own profile", f.owner, ViewOwner, OwnerTarget(f.owner.ID), true},
		{"connected walker views owner", f.walker, ViewOwner, OwnerTarget(f.owner.ID), true},
		{"unconnected walker cannot view owner", f.strangeWalker, ViewOwner, OwnerTarget(f.owner.ID), false},
		{"other owner cannot view owner", f.otherOwner, ViewOwner, OwnerTarget(f.owner.ID), false},
		{"anonymous cannot view owner", nil, ViewOwner, OwnerTarget(f.owner.ID), false},
		{"connected walker views dog list", f.walker, ViewOwnerDogs, OwnerTarget(f.owner.ID), true},
		{"connected walker views dog", f.walker, ViewDog, DogTarget(dog), true},
		{"unconnected walker cannot view dog", f.strangeWalker, ViewDog, DogTarget(dog), false},
		{"owner edits own dog", f.owner, EditDog, DogTarget(dog), true},
		{"connected walker cannot edit dog", f.walker, EditDog, DogTarget(dog), false},
		{"other owner cannot edit owner", f.otherOwner, EditOwner, OwnerTarget(f.owner.ID), false},
		{"walker sharing the owner's id is not the owner", &entity.AuthenticatedPrincipal{ID: f.owner.ID, Kind: entity.KindWalker}, EditOwner, OwnerTarget(f.owner.ID), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.engine.CanAccess(ctx, tt.actor, tt.action, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_WalkerProfile(t *testing.T) {
	f := createPolicyFixtures()
	ctx := context.Background()

	for _, actor := range []*entity.AuthenticatedPrincipal{f.owner, f.otherOwner, f.strangeWalker} {
		ok, err := f.engine.CanAccess(ctx, actor, ViewWalker, WalkerTarget(f.walker.ID))
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, _ := f.engine.CanAccess(ctx, nil, ViewWalker, WalkerTarget(f.walker.ID))
	assert.False(t, ok)

	ok, _ = f.engine.CanAccess(ctx, f.walker, EditWalker, WalkerTarget(f.walker.ID))
	assert.True(t, ok)

	ok, _ = f.engine.CanAccess(ctx, f.strangeWalker, EditWalker, WalkerTarget(f.walker.ID))
	assert.False(t, ok)

	ok, _ = f.engine.CanAccess(ctx, f.owner, EditWalker, WalkerTarget(f.walker.ID))
	assert.False(t, ok)
}

func TestEngine_Messaging(t *testing.T) {
	f := createPolicyFixtures()
	ctx := context.Background()

	tests := []struct {
		name   string
		actor  *entity.AuthenticatedPrincipal
		action Action
		target Target
		want   bool
	}{
		{"owner opens a thread with anyone", f.owner, SendMessage, ThreadTarget(f.owner.ID, f.strangeWalker.ID), true},
		{"walker replies once connected", f.walker, SendMessage, ThreadTarget(f.owner.ID, f.walker.ID), true},
		{"walker cannot originate a thread", f.strangeWalker, SendMessage, ThreadTarget(f.owner.ID, f.strangeWalker.ID), false},
		{"walker cannot send as another walker", f.strangeWalker, SendMessage, ThreadTarget(f.owner.ID, f.walker.ID), false},
		{"other owner cannot send into thread", f.otherOwner, SendMessage, ThreadTarget(f.owner.ID, f.walker.ID), false},
		{"party views thread", f.strangeWalker, ViewThread, ThreadTarget(f.owner.ID, f.strangeWalker.ID), true},
		{"third party cannot view thread", f.otherOwner, ViewThread, ThreadTarget(f.owner.ID, f.walker.ID), false},
		{"own inbox", f.walker, ViewInbox, ListTarget(entity.KindWalker, f.walker.ID), true},
		{"someone else's inbox", f.owner, ViewInbox, ListTarget(entity.KindWalker, f.walker.ID), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.engine.CanAccess(ctx, tt.actor, tt.action, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_Booking(t *testing.T) {
	f := createPolicyFixtures()
	ctx := context.Background()

	pending := &entity.Appointment{ID: uuid.New(), OwnerID: f.owner.ID, WalkerID: f.walker.ID, Date: time.Now()}
	completed := &entity.Appointment{ID: uuid.New(), OwnerID: f.owner.ID, WalkerID: f.walker.ID, Date: time.Now(), Completed: true}

	tests := []struct {
		name   string
		actor  *entity.AuthenticatedPrincipal
		action Action
		target Target
		want   bool
	}{
		{"connected walker books owner", f.walker, CreateAppointment, OwnerTarget(f.owner.ID), true},
		{"unconnected walker cannot book", f.strangeWalker, CreateAppointment, OwnerTarget(f.owner.ID), false},
		{"owner cannot book", f.owner, CreateAppointment, OwnerTarget(f.owner.ID), false},
		{"walker completes own appointment", f.walker, CompleteAppt, AppointmentTarget(pending, false), true},
		{"completing twice is allowed", f.walker, CompleteAppt, AppointmentTarget(completed, false), true},
		{"other walker cannot complete", f.strangeWalker, CompleteAppt, AppointmentTarget(pending, false), false},
		{"owner cannot complete", f.owner, CompleteAppt, AppointmentTarget(pending, false), false},
		{"walker deletes pending appointment", f.walker, DeleteAppt, AppointmentTarget(pending, false), true},
		{"completed appointment cannot be deleted", f.walker, DeleteAppt, AppointmentTarget(completed, false), false},
		{"owner reviews completed appointment", f.owner, CreateReview, AppointmentTarget(completed, false), true},
		{"pending appointment cannot be reviewed", f.owner, CreateReview, AppointmentTarget(pending, false), false},
		{"second review denied", f.owner, CreateReview, AppointmentTarget(completed, true), false},
		{"walker cannot review", f.walker, CreateReview, AppointmentTarget(completed, false), false},
		{"other owner cannot review", f.otherOwner, CreateReview, AppointmentTarget(completed, false), false},
		{"walker reads review", f.walker, ViewReview, AppointmentTarget(completed, true), true},
		{"stranger cannot read review", f.strangeWalker, ViewReview, AppointmentTarget(completed, true), false},
		{"own appointment list", f.owner, ViewAppointments, ListTarget(entity.KindOwner, f.owner.ID), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.engine.CanAccess(ctx, tt.actor, tt.action, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngine_OwnerNeverHitsGraph(t *testing.T) {
	f := createPolicyFixtures()

	ok, err := f.engine.CanAccess(context.Background(), f.otherOwner, ViewOwner, OwnerTarget(f.owner.ID))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, f.graph.calls)
}

func TestEngine_Authorize(t *testing.T) {
	f := createPolicyFixtures()
	ctx := context.Background()

	err := f.engine.Authorize(ctx, f.strangeWalker, CreateAppointment, OwnerTarget(f.owner.ID))
	assert.True(t, errors.Is(err, domainerrors.ErrAccessDenied))

	assert.NoError(t, f.engine.Authorize(ctx, f.walker, CreateAppointment, OwnerTarget(f.owner.ID)))
}

func TestEngine_GraphFailure(t *testing.T) {
	f := createPolicyFixtures()
	f.graph.err = errors.New("connection reset")

	ok, err := f.engine.CanAccess(context.Background(), f.walker, ViewOwner, OwnerTarget(f.owner.ID))
	assert.False(t, ok)
	assert.Error(t, err)

	err = f.engine.Authorize(context.Background(), f.walker, ViewOwner, OwnerTarget(f.owner.ID))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrAccessDenied), "graph failures are not denials")
}
