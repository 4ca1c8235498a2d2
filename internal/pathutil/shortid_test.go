package pathutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDShortenerFloorsAtThree(t *testing.T) {
	t.Parallel()

	ids := []string{
		"11111111-0000-0000-0000-000000000000",
		"12222222-0000-0000-0000-000000000000",
	}
	shorten, err := IDShortener(ids)
	require.NoError(t, err)
	require.Equal(t, "111", shorten(ids[0]))
	require.Equal(t, "122", shorten(ids[1]))
}

func TestIDShortenerGrowsPastFloorWhenNeeded(t *testing.T) {
	t.Parallel()

	ids := []string{
		"aaaaaaaa-0000-0000-0000-000000000000",
		"aaaaabbb-0000-0000-0000-000000000000",
	}
	shorten, err := IDShortener(ids)
	require.NoError(t, err)
	require.NotEqual(t, shorten(ids[0]), shorten(ids[1]))
	require.GreaterOrEqual(t, len(shorten(ids[0])), 6)
}

func TestIDShortenerRejectsInvalidUUID(t *testing.T) {
	t.Parallel()

	_, err := IDShortener([]string{"not-a-uuid"})
	var invalid *InvalidUUIDError
	require.ErrorAs(t, err, &invalid)
}

func TestIDShortenerRejectsDuplicates(t *testing.T) {
	t.Parallel()

	id := "11111111-0000-0000-0000-000000000000"
	_, err := IDShortener([]string{id, id})
	var dup *DuplicateUUIDError
	require.ErrorAs(t, err, &dup)
}
