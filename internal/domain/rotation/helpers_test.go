package rotation

import (
	"testing"

	"github.com/societyhub/backend/internal/domain/shared"
	"github.com/stretchr/testify/require"
)

func mustPeriod(t *testing.T, month, year int) shared.Period {
	t.Helper()
	p, err := shared.NewPeriod(month, year)
	require.NoError(t, err)
	return p
}

func periodOf(month, year int) shared.Period {
	return shared.Period{Month: month, Year: year}
}
