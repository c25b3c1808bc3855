package services_test

import (
	"context"
	"testing"

	impl "github.com/afishaclub/afisha/internal/application/services"
	"github.com/afishaclub/afisha/internal/core/domain/favorites"
	"github.com/afishaclub/afisha/test/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const visitor = "visitor-1"

func TestAdd_SecondAddForSameEventIsNoOp(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{}
	svc := impl.NewFavoritesService(repo, logrus.New())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, visitor, 42, "msk"))
	require.NoError(t, svc.Add(ctx, visitor, 42, "spb"))

	list, err := svc.List(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 42, list[0].EventID())
	// The city from the first add is retained.
	require.Equal(t, "msk", list[0].City)
	require.Equal(t, 1, repo.SaveCalls)
}

func TestToggle_TwiceRestoresOriginalState(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{}
	svc := impl.NewFavoritesService(repo, logrus.New())
	ctx := context.Background()

	on, err := svc.Toggle(ctx, visitor, 7, "msk")
	require.NoError(t, err)
	require.True(t, on)

	off, err := svc.Toggle(ctx, visitor, 7, "msk")
	require.NoError(t, err)
	require.False(t, off)

	count, err := svc.Count(ctx, visitor)
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestHas_MatchesLegacyShapeEntries(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{LoadFn: func(ctx context.Context, visitorID string) (favorites.List, error) {
		return favorites.List{favorites.Legacy(5), favorites.Tagged(6, "spb")}, nil
	}}
	svc := impl.NewFavoritesService(repo, logrus.New())
	ctx := context.Background()

	has, err := svc.Has(ctx, visitor, 5)
	require.NoError(t, err)
	require.True(t, has)

	// An add for an id already present as a legacy entry is a no-op.
	require.NoError(t, svc.Add(ctx, visitor, 5, "msk"))
	count, err := svc.Count(ctx, visitor)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Equal(t, 0, repo.SaveCalls)
}

func TestRemove_DropsLegacyEntryByID(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{LoadFn: func(ctx context.Context, visitorID string) (favorites.List, error) {
		return favorites.List{favorites.Legacy(5), favorites.Tagged(6, "spb")}, nil
	}}
	svc := impl.NewFavoritesService(repo, logrus.New())
	ctx := context.Background()

	require.NoError(t, svc.Remove(ctx, visitor, 5))
	list, err := svc.List(ctx, visitor)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 6, list[0].EventID())
	require.Equal(t, 1, repo.SaveCalls)
}

func TestRemove_AbsentIDIsNoOpWithoutPersist(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{}
	svc := impl.NewFavoritesService(repo, logrus.New())

	require.NoError(t, svc.Remove(context.Background(), visitor, 404))
	require.Equal(t, 0, repo.SaveCalls)
}

func TestList_PreservesInsertionOrder(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{}
	svc := impl.NewFavoritesService(repo, logrus.New())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, visitor, 3, "msk"))
	require.NoError(t, svc.Add(ctx, visitor, 1, "msk"))
	require.NoError(t, svc.Add(ctx, visitor, 2, "spb"))

	list, err := svc.List(ctx, visitor)
	require.NoError(t, err)
	ids := []int{list[0].EventID(), list[1].EventID(), list[2].EventID()}
	require.Equal(t, []int{3, 1, 2}, ids)
}

func TestFavorites_VisitorsAreIsolated(t *testing.T) {
	repo := &mocks.FavoritesRepositoryMock{}
	svc := impl.NewFavoritesService(repo, logrus.New())
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, "a", 1, "msk"))
	has, err := svc.Has(ctx, "b", 1)
	require.NoError(t, err)
	require.False(t, has)
}
