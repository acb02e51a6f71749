package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/NovaSyntax753/promptmaster/internal/repository"
)

func TestChallengeServiceListAndGet(t *testing.T) {
	db := setupServiceDB(t)
	seeded := seedChallenge(t, db, "catalog-read")

	svc := NewChallengeService(repository.NewChallengeRepository(db), zerolog.Nop())

	category := "catalog-read"
	listed, err := svc.List(context.Background(), &category, nil)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, seeded.Title, listed[0].Title)

	fetched, err := svc.GetByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Equal(t, seeded.Goal, fetched.Goal)

	random, err := svc.Random(context.Background(), &category)
	require.NoError(t, err)
	require.Equal(t, "catalog-read", random.Category)
}

func TestChallengeServiceNotFound(t *testing.T) {
	db := setupServiceDB(t)
	svc := NewChallengeService(repository.NewChallengeRepository(db), zerolog.Nop())

	_, err := svc.GetByID(context.Background(), 987654)
	require.ErrorIs(t, err, ErrChallengeNotFound)

	category := "catalog-empty"
	_, err = svc.Random(context.Background(), &category)
	require.ErrorIs(t, err, ErrChallengeNotFound)
}
