package services_test

import (
	"context"
	"fmt"
	"testing"

	impl "github.com/afishaclub/afisha/internal/application/services"
	"github.com/afishaclub/afisha/internal/core/domain/city"
	"github.com/afishaclub/afisha/test/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadCities_PopulatesOnceAndSkipsRefetch(t *testing.T) {
	catalog := &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return []city.City{
			{ID: 1, Name: "Москва", Slug: "msk"},
			{ID: 2, Name: "Санкт-Петербург", Slug: "spb"},
		}, nil
	}}
	svc := impl.NewCityService(catalog, logrus.New())

	require.NoError(t, svc.LoadCities(context.Background()))
	require.Len(t, svc.Cities(), 2)

	require.NoError(t, svc.LoadCities(context.Background()))
	require.Equal(t, 1, catalog.FetchLocationsCalls)
}

func TestLoadCities_FetchFailureSubstitutesFallback(t *testing.T) {
	catalog := &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return nil, fmt.Errorf("upstream down")
	}}
	svc := impl.NewCityService(catalog, logrus.New())

	require.NoError(t, svc.LoadCities(context.Background()))
	cities := svc.Cities()
	require.Len(t, cities, 5)
	require.NotNil(t, svc.GetCityBySlug("msk"))
	require.NotNil(t, svc.GetCityBySlug("spb"))
}

func TestLoadCities_EmptyUpstreamSubstitutesFallback(t *testing.T) {
	catalog := &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return []city.City{}, nil
	}}
	svc := impl.NewCityService(catalog, logrus.New())

	require.NoError(t, svc.LoadCities(context.Background()))
	require.Len(t, svc.Cities(), 5)
	require.NotNil(t, svc.GetCityBySlug("msk"))
}

func TestLoadCities_FiltersInvalidAndAssignsSyntheticIDs(t *testing.T) {
	catalog := &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return []city.City{
			{Name: "Москва", Slug: "msk"},       // missing id -> synthetic
			{Name: "", Slug: "ghost"},           // missing name -> dropped
			{Name: "Казань", Slug: ""},          // missing slug -> dropped
			{ID: 7, Name: "Сочи", Slug: "sochi"},
		}, nil
	}}
	svc := impl.NewCityService(catalog, logrus.New())

	require.NoError(t, svc.LoadCities(context.Background()))
	cities := svc.Cities()
	require.Len(t, cities, 2)
	require.Equal(t, 1, cities[0].ID)
	require.Equal(t, "msk", cities[0].Slug)
	require.Equal(t, 7, cities[1].ID)
}

func TestCityLookups_ExactMatchOnly(t *testing.T) {
	catalog := &mocks.CatalogServiceMock{FetchLocationsFn: func(ctx context.Context) ([]city.City, error) {
		return []city.City{{ID: 1, Name: "Москва", Slug: "msk"}}, nil
	}}
	svc := impl.NewCityService(catalog, logrus.New())
	require.NoError(t, svc.LoadCities(context.Background()))

	require.NotNil(t, svc.GetCityBySlug("msk"))
	require.Nil(t, svc.GetCityBySlug("MSK"))
	require.Nil(t, svc.GetCityBySlug("ms"))
	require.NotNil(t, svc.GetCityByID(1))
	require.Nil(t, svc.GetCityByID(2))
}
