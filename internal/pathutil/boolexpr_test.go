package pathutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEvaluateBoolExprOperatorPrecedence(t *testing.T) {
	t.Parallel()

	vars := map[string]bool{"A": true, "B": false, "C": true}

	cases := []struct {
		expr string
		want bool
	}{
		{"A && B", false},
		{"A || B", true},
		{"!A || B", false},
		{"A && !B", true},
		{"(A || B) && C", true},
		{"A && B || C", true},
	}

	for _, tc := range cases {
		t.Run(tc.expr, func(t *testing.T) {
			t.Parallel()
			got, err := EvaluateBoolExpr(tc.expr, vars)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestEvaluateBoolExprUndefinedVariable(t *testing.T) {
	t.Parallel()

	_, err := EvaluateBoolExpr("X && A", map[string]bool{"A": true})
	require.ErrorContains(t, err, "undefined variable")
}

func TestEvaluateBoolExprAllowsHyphenatedIdentifiers(t *testing.T) {
	t.Parallel()

	got, err := EvaluateBoolExpr("voice-enabled && !needs-review", map[string]bool{
		"voice-enabled": true,
		"needs-review":  false,
	})
	require.NoError(t, err)
	require.True(t, got)
}

func TestEvaluateBoolExprUnbalancedParens(t *testing.T) {
	t.Parallel()

	_, err := EvaluateBoolExpr("(A && B", map[string]bool{"A": true, "B": true})
	require.Error(t, err)
}
