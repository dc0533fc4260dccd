package postgres_test

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/adapters/persistence/postgres"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/platform/migrations"
)

// repositorySuite exercises the adapter against whichever database openDB provides.
type repositorySuite struct {
	suite.Suite
	openDB  func() (*gorm.DB, func())
	db      *gorm.DB
	cleanup func()
	repo    *postgres.Repository
	ctx     context.Context
}

func (s *repositorySuite) SetupTest() {
	s.db, s.cleanup = s.openDB()
	s.Require().NoError(migrations.Run(s.db))
	s.Require().NoError(s.db.Exec("DELETE FROM pedidos").Error)
	s.repo = postgres.NewRepository(s.db)
	s.ctx = context.Background()
}

func (s *repositorySuite) TearDownTest() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

var orderDiffOpts = cmp.Options{cmpopts.EquateApproxTime(time.Millisecond)}

func (s *repositorySuite) fakeOrder(placedAt time.Time) *domain.Order {
	order, err := domain.NewOrder(
		gofakeit.Name(),
		int32(gofakeit.Number(1, 20)),
		gofakeit.RandomString([]string{"PIX", "Dinheiro", "Cartão", ""}),
		placedAt.UTC().Truncate(time.Microsecond),
	)
	s.Require().NoError(err)
	return order
}

func (s *repositorySuite) save(order *domain.Order) *domain.Order {
	saved, err := s.repo.Save(s.ctx, order)
	s.Require().NoError(err)
	return saved
}

func (s *repositorySuite) TestSaveAndFindByID() {
	order := s.fakeOrder(time.Now())

	saved := s.save(order)
	s.NotZero(saved.ID)

	found, err := s.repo.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	fetched, ok := found.Get()
	s.Require().True(ok)

	want := *order
	want.ID = saved.ID
	s.Empty(cmp.Diff(&want, fetched, orderDiffOpts))
}

func (s *repositorySuite) TestFindByIDMissing() {
	found, err := s.repo.FindByID(s.ctx, 424242)
	s.Require().NoError(err)
	s.False(found.IsPresent())
}

func (s *repositorySuite) TestSaveUpdatesExisting() {
	saved := s.save(s.fakeOrder(time.Now()))

	s.Require().NoError(saved.Revise("Maria Souza", 9, "Dinheiro", true))
	updated := s.save(saved)
	s.Empty(cmp.Diff(saved, updated, orderDiffOpts))

	count, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *repositorySuite) TestSaveRejectsInvalid() {
	_, err := s.repo.Save(s.ctx, &domain.Order{PersonName: " ", Quantity: 1})
	s.ErrorIs(err, domain.ErrBlankPersonName)
}

func (s *repositorySuite) TestFindAllOrderedByDateDesc() {
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for _, offset := range []int{2, 7, 1, 5} {
		s.save(s.fakeOrder(base.Add(time.Duration(offset) * time.Hour)))
	}

	list, err := s.repo.FindAllOrderedByDateDesc(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 4)
	s.True(list[0].OrderDate.Equal(base.Add(7 * time.Hour)))
	for i := 1; i < len(list); i++ {
		s.False(list[i].OrderDate.After(list[i-1].OrderDate))
	}

	all, err := s.repo.FindAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 4)
}

func (s *repositorySuite) TestDeliveredFiltersAndCounts() {
	delivered := s.fakeOrder(time.Now())
	delivered.MarkDelivered()
	s.save(delivered)
	s.save(s.fakeOrder(time.Now()))
	s.save(s.fakeOrder(time.Now()))

	done, err := s.repo.FindByDelivered(s.ctx, true)
	s.Require().NoError(err)
	s.Len(done, 1)

	pending, err := s.repo.FindByDelivered(s.ctx, false)
	s.Require().NoError(err)
	s.Len(pending, 2)

	pendingCount, err := s.repo.CountByDelivered(s.ctx, false)
	s.Require().NoError(err)
	s.Equal(int64(2), pendingCount)

	total, err := s.repo.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(int64(3), total)
}

func (s *repositorySuite) TestFindByNameContaining() {
	for _, name := range []string{"Joao Silva", "JOAO PEDRO", "Maria", "100%_real"} {
		order := s.fakeOrder(time.Now())
		order.PersonName = name
		s.save(order)
	}

	lower, err := s.repo.FindByNameContaining(s.ctx, "joao")
	s.Require().NoError(err)
	upper, err := s.repo.FindByNameContaining(s.ctx, "JOAO")
	s.Require().NoError(err)
	s.Len(lower, 2)
	s.Empty(cmp.Diff(lower, upper, orderDiffOpts))

	literal, err := s.repo.FindByNameContaining(s.ctx, "%_")
	s.Require().NoError(err)
	s.Require().Len(literal, 1)
	s.Equal("100%_real", literal[0].PersonName)

	none, err := s.repo.FindByNameContaining(s.ctx, "_x")
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *repositorySuite) TestUnicodeNameSearch() {
	order := s.fakeOrder(time.Now())
	order.PersonName = "João"
	s.save(order)

	lower, err := s.repo.FindByNameContaining(s.ctx, "joão")
	s.Require().NoError(err)
	upper, err := s.repo.FindByNameContaining(s.ctx, "JOÃO")
	s.Require().NoError(err)
	s.Len(lower, 1)
	s.Empty(cmp.Diff(lower, upper, orderDiffOpts))
}

func (s *repositorySuite) TestExistsAndDelete() {
	saved := s.save(s.fakeOrder(time.Now()))

	exists, err := s.repo.ExistsByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.True(exists)

	s.Require().NoError(s.repo.DeleteByID(s.ctx, saved.ID))

	exists, err = s.repo.ExistsByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.False(exists)

	found, err := s.repo.FindByID(s.ctx, saved.ID)
	s.Require().NoError(err)
	s.False(found.IsPresent())

	s.NoError(s.repo.DeleteByID(s.ctx, saved.ID))
}
