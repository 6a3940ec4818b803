package repository_test

import (
	"context"
	"testing"

	"frontdesk/internal/domains/guest/model"
	"frontdesk/internal/domains/guest/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_UniqueNationalID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemory()

	first, err := repo.Create(ctx, model.Guest{Name: "Sari", NationalID: "3174"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, model.Guest{Name: "Sari W.", NationalID: "3174"})
	assert.ErrorIs(t, err, repository.ErrDuplicateNationalID)

	second, err := repo.Create(ctx, model.Guest{Name: "Budi", NationalID: "3175"})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, second, map[string]any{model.FieldNationalID: "3174"})
	assert.ErrorIs(t, err, repository.ErrDuplicateNationalID)
	assert.False(t, updated)

	updated, err = repo.Update(ctx, first, map[string]any{model.FieldNationalID: "3174", model.FieldPhone: "0811"})
	require.NoError(t, err)
	assert.True(t, updated)

	guest, found, err := repo.GetByNationalID(ctx, "3174")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, first, guest.ID)
	assert.Equal(t, "0811", guest.Phone)

	guests, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, guests, 2)
}
