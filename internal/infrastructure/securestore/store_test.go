package securestore_test

import (
	"testing"

	"github.com/mutinywallet/mutinyd/internal/infrastructure/securestore"
	dbbadger "github.com/mutinywallet/mutinyd/internal/infrastructure/storage/badger"
	"github.com/stretchr/testify/require"
)

const nsec = "nsec1vl029mgpspedva04g90vltkh6fvh240zqtv9k0t9af8935ke9laqsnlfe5"

func TestSecureStorage(t *testing.T) {
	db, err := dbbadger.NewStore("", "secure", nil)
	require.NoError(t, err)

	store := securestore.NewSecureStorage(db)
	defer store.Close()

	require.True(t, store.IsLocked())

	_, err = store.Get("nsec")
	require.ErrorIs(t, err, securestore.ErrStoreLocked)

	err = store.Set("nsec", nsec)
	require.ErrorIs(t, err, securestore.ErrStoreLocked)

	err = store.Unlock("password")
	require.NoError(t, err)
	require.False(t, store.IsLocked())

	_, err = store.Get("nsec")
	require.ErrorIs(t, err, securestore.ErrDataNotFound)

	err = store.Set("nsec", nsec)
	require.NoError(t, err)

	value, err := store.Get("nsec")
	require.NoError(t, err)
	require.Equal(t, nsec, value)

	err = store.Set("enckey", "whatever")
	require.ErrorIs(t, err, securestore.ErrForbiddenDataKey)

	store.Lock()
	require.True(t, store.IsLocked())

	err = store.Unlock("wrong password")
	require.ErrorIs(t, err, securestore.ErrInvalidPassword)
	require.True(t, store.IsLocked())

	err = store.Unlock("password")
	require.NoError(t, err)

	value, err = store.Get("nsec")
	require.NoError(t, err)
	require.Equal(t, nsec, value)

	err = store.Delete("nsec")
	require.NoError(t, err)

	_, err = store.Get("nsec")
	require.ErrorIs(t, err, securestore.ErrDataNotFound)
}
