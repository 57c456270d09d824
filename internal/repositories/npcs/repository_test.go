package npcs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/npc-world-api/internal/entities/world"
	"github.com/KirkDiggler/npc-world-api/internal/errors"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/clock"
	"github.com/KirkDiggler/npc-world-api/internal/pkg/idgen"
	idgenmock "github.com/KirkDiggler/npc-world-api/internal/pkg/idgen/mock"
	"github.com/KirkDiggler/npc-world-api/internal/repositories/npcs"
	"github.com/KirkDiggler/npc-world-api/internal/testutils"
)

// RegistryContractTestSuite exercises the Repository contract; both backends
// run the same suite.
type RegistryContractTestSuite struct {
	suite.Suite
	newRepo func(s *RegistryContractTestSuite) npcs.Repository
	repo    npcs.Repository
	ctx     context.Context
	cleanup func()
}

func (s *RegistryContractTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo(s)
}

func (s *RegistryContractTestSuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

func (s *RegistryContractTestSuite) spawn(templateID, name string, loc world.Location) *world.NpcInstance {
	output, err := s.repo.Spawn(s.ctx, npcs.SpawnInput{
		TemplateExternalID: templateID,
		Name:               name,
		Location:           loc,
	})
	s.Require().NoError(err)
	return output.Instance
}

func (s *RegistryContractTestSuite) TestSpawnAndGet() {
	loc := world.NewLocation(10, 64, -5)
	instance := s.spawn("npc1", "Guard", loc)

	s.NotEmpty(instance.EntityID)
	s.Equal(loc, instance.CurrentLocation)
	s.Equal(loc, instance.SpawnLocation)
	s.Require().NotNil(instance.Template)
	s.Equal("npc1", instance.Template.ExternalID)
	s.Equal("Guard", instance.Template.Name)
	s.NotEmpty(instance.Template.Personality)
	s.NotEmpty(instance.Template.Greeting)

	output, err := s.repo.Get(s.ctx, npcs.GetInput{EntityID: instance.EntityID})
	s.NoError(err)
	s.Equal(instance.EntityID, output.Instance.EntityID)
	s.Equal(loc, output.Instance.CurrentLocation)
}

func (s *RegistryContractTestSuite) TestSpawnValidation() {
	_, err := s.repo.Spawn(s.ctx, npcs.SpawnInput{Name: "Guard"})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Spawn(s.ctx, npcs.SpawnInput{TemplateExternalID: "npc1"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryContractTestSuite) TestIsValidLifecycle() {
	instance := s.spawn("npc1", "Guard", world.NewLocation(0, 0, 0))

	valid, err := s.repo.IsValid(s.ctx, npcs.IsValidInput{EntityID: instance.EntityID})
	s.NoError(err)
	s.True(valid.Valid)

	removed, err := s.repo.Remove(s.ctx, npcs.RemoveInput{EntityID: instance.EntityID})
	s.NoError(err)
	s.True(removed.Removed)

	valid, err = s.repo.IsValid(s.ctx, npcs.IsValidInput{EntityID: instance.EntityID})
	s.NoError(err)
	s.False(valid.Valid)

	// Second remove signals "nothing to remove", not an error.
	removed, err = s.repo.Remove(s.ctx, npcs.RemoveInput{EntityID: instance.EntityID})
	s.NoError(err)
	s.False(removed.Removed)
}

func (s *RegistryContractTestSuite) TestRemoveUnknownLeavesRegistryUnchanged() {
	s.spawn("npc1", "Guard", world.NewLocation(0, 0, 0))

	removed, err := s.repo.Remove(s.ctx, npcs.RemoveInput{EntityID: "npc_nope"})
	s.NoError(err)
	s.False(removed.Removed)

	output, err := s.repo.List(s.ctx, npcs.ListInput{})
	s.NoError(err)
	s.Len(output.Instances, 1)
}

func (s *RegistryContractTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, npcs.GetInput{EntityID: "npc_nope"})
	s.True(errors.IsNotFound(err))
}

func (s *RegistryContractTestSuite) TestList() {
	s.spawn("npc1", "Guard", world.NewLocation(0, 0, 0))
	s.spawn("npc2", "Merchant", world.NewLocation(5, 0, 0))

	output, err := s.repo.List(s.ctx, npcs.ListInput{})
	s.NoError(err)
	s.Len(output.Instances, 2)
}

func (s *RegistryContractTestSuite) TestDiscoverByTemplate() {
	guard1 := s.spawn("npc1", "Guard A", world.NewLocation(0, 0, 0))
	guard2 := s.spawn("npc1", "Guard B", world.NewLocation(1, 0, 0))
	s.spawn("npc2", "Merchant", world.NewLocation(2, 0, 0))

	output, err := s.repo.DiscoverByTemplate(s.ctx, npcs.DiscoverInput{TemplateExternalID: "npc1"})
	s.NoError(err)
	s.ElementsMatch([]string{guard1.EntityID, guard2.EntityID}, output.EntityIDs)

	// Removal drops the instance from discovery.
	_, err = s.repo.Remove(s.ctx, npcs.RemoveInput{EntityID: guard1.EntityID})
	s.Require().NoError(err)

	output, err = s.repo.DiscoverByTemplate(s.ctx, npcs.DiscoverInput{TemplateExternalID: "npc1"})
	s.NoError(err)
	s.ElementsMatch([]string{guard2.EntityID}, output.EntityIDs)

	output, err = s.repo.DiscoverByTemplate(s.ctx, npcs.DiscoverInput{TemplateExternalID: "npc99"})
	s.NoError(err)
	s.Empty(output.EntityIDs)
}

func (s *RegistryContractTestSuite) TestMoveToPersistsLocation() {
	instance := s.spawn("npc1", "Guard", world.NewLocation(0, 0, 0))
	target := world.NewLocation(10, 0, 0)

	output, err := s.repo.MoveTo(s.ctx, npcs.MoveToInput{EntityID: instance.EntityID, Location: target})
	s.Require().NoError(err)

	final, err := output.Result.Wait(s.ctx)
	s.NoError(err)
	s.Equal(target, final)

	stored, err := s.repo.Get(s.ctx, npcs.GetInput{EntityID: instance.EntityID})
	s.Require().NoError(err)
	s.Equal(target, stored.Instance.CurrentLocation)
	s.Equal(world.NewLocation(0, 0, 0), stored.Instance.SpawnLocation)
}

func (s *RegistryContractTestSuite) TestMoveToUnknownInstance() {
	_, err := s.repo.MoveTo(s.ctx, npcs.MoveToInput{EntityID: "npc_nope", Location: world.NewLocation(1, 2, 3)})
	s.True(errors.IsNotFound(err))
}

func (s *RegistryContractTestSuite) TestConcurrentSpawnsProduceUniqueIDs() {
	const spawns = 50

	ids := make(chan string, spawns)
	var wg sync.WaitGroup
	for i := 0; i < spawns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			output, err := s.repo.Spawn(s.ctx, npcs.SpawnInput{
				TemplateExternalID: "npc1",
				Name:               "Guard",
				Location:           world.NewLocation(0, 0, 0),
			})
			s.NoError(err)
			ids <- output.Instance.EntityID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]struct{}, spawns)
	for id := range ids {
		_, dup := seen[id]
		s.False(dup, "duplicate entity id %s", id)
		seen[id] = struct{}{}
	}
	s.Len(seen, spawns)
}

func TestInMemoryRegistrySuite(t *testing.T) {
	s := &RegistryContractTestSuite{
		newRepo: func(s *RegistryContractTestSuite) npcs.Repository {
			repo, err := npcs.NewInMemory(&npcs.InMemoryConfig{
				IDGenerator: idgen.NewUUID("npc"),
				Clock:       clock.New(),
			})
			s.Require().NoError(err)
			return repo
		},
	}
	suite.Run(t, s)
}

func TestRedisRegistrySuite(t *testing.T) {
	s := &RegistryContractTestSuite{}
	s.newRepo = func(s *RegistryContractTestSuite) npcs.Repository {
		client, cleanup := testutils.CreateTestRedisClient(t)
		s.cleanup = cleanup

		repo, err := npcs.NewRedis(&npcs.RedisConfig{
			Client:      client,
			IDGenerator: idgen.NewUUID("npc"),
			Clock:       clock.New(),
		})
		s.Require().NoError(err)
		return repo
	}
	suite.Run(t, s)
}

func TestNewInMemoryValidation(t *testing.T) {
	_, err := npcs.NewInMemory(nil)
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}

	_, err = npcs.NewInMemory(&npcs.InMemoryConfig{Clock: clock.New()})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestNewRedisValidation(t *testing.T) {
	_, err := npcs.NewRedis(&npcs.RedisConfig{})
	if !errors.IsInvalidArgument(err) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestSpawnUsesGeneratedID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGen := idgenmock.NewMockGenerator(ctrl)
	mockGen.EXPECT().Generate().Return("npc_fixed_001")

	repo, err := npcs.NewInMemory(&npcs.InMemoryConfig{
		IDGenerator: mockGen,
		Clock:       clock.NewFixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatal(err)
	}

	output, err := repo.Spawn(context.Background(), npcs.SpawnInput{
		TemplateExternalID: "npc1",
		Name:               "Guard",
		Location:           world.NewLocation(0, 0, 0),
	})
	if err != nil {
		t.Fatal(err)
	}
	if output.Instance.EntityID != "npc_fixed_001" {
		t.Fatalf("expected generated id to be used, got %s", output.Instance.EntityID)
	}
}

func TestMoveResultWaitHonorsContext(t *testing.T) {
	repo, err := npcs.NewInMemory(&npcs.InMemoryConfig{
		IDGenerator: idgen.NewSequential("npc"),
		Clock:       clock.NewFixed(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	spawned, err := repo.Spawn(ctx, npcs.SpawnInput{
		TemplateExternalID: "npc1",
		Name:               "Guard",
		Location:           world.NewLocation(0, 0, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	output, err := repo.MoveTo(ctx, npcs.MoveToInput{
		EntityID: spawned.Instance.EntityID,
		Location: world.NewLocation(1, 0, 0),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Already resolved: even a canceled context returns the outcome.
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := output.Result.Wait(canceled); err != nil {
		t.Fatalf("resolved future should win over canceled context, got %v", err)
	}
}
