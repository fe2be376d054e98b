package role_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/careerpath/role"
)

func TestParse(t *testing.T) {
	cases := map[string]role.Role{
		"student":     role.Student,
		"Parent":      role.Parent,
		" GOVERNMENT": role.Government,
	}
	for in, want := range cases {
		got, err := role.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
}

func TestParse_Unknown(t *testing.T) {
	for _, in := range []string{"", "admin", "principal"} {
		_, err := role.Parse(in)
		assert.ErrorIs(t, err, role.ErrUnknownRole, in)
	}
}

func TestRole_JSONRoundTrip(t *testing.T) {
	type payload struct {
		Role role.Role `json:"role"`
	}

	data, err := json.Marshal(payload{Role: role.Parent})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"parent"}`, string(data))

	var back payload
	require.NoError(t, json.Unmarshal([]byte(`{"role":"government"}`), &back))
	assert.Equal(t, role.Government, back.Role)

	assert.Error(t, json.Unmarshal([]byte(`{"role":"janitor"}`), &back))
}

func TestRole_ZeroValueInvalid(t *testing.T) {
	var r role.Role
	assert.False(t, r.Valid())
	_, err := r.MarshalText()
	assert.ErrorIs(t, err, role.ErrUnknownRole)
}
