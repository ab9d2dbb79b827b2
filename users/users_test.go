package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/wengro/greenhouse/users"
)

func TestNormalizeHandle(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"FooBar", "foobar"},
		{"@FooBar", "foobar"},
		{"  Alice  ", "alice"},
		{"@bob", "bob"},
		{"CHARLIE", "charlie"},
		{"", ""},
		{"@", ""},
	}

	for _, c := range cases {
		require.Equal(t, c.want, users.NormalizeHandle(c.input), "input %q", c.input)
	}
}

func TestNormalizeContactHandle(t *testing.T) {
	require.Equal(t, "@alicebot", users.NormalizeContactHandle("AliceBot"))
	require.Equal(t, "@alicebot", users.NormalizeContactHandle("@alicebot"))
	require.Equal(t, "@bob", users.NormalizeContactHandle("  @Bob "))
	require.Equal(t, "", users.NormalizeContactHandle("  "))
}

func TestValidWalletAddress(t *testing.T) {
	require.True(t, users.ValidWalletAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
	require.True(t, users.ValidWalletAddress("0xde709f2102306220921060314715629080e2fb77"))
	require.False(t, users.ValidWalletAddress("52908400098527886E0F7030069857D2E4169EE7"))
	require.False(t, users.ValidWalletAddress("0x123"))
	require.False(t, users.ValidWalletAddress(""))
	require.False(t, users.ValidWalletAddress("0xZZ08400098527886E0F7030069857D2E4169EE7"))
}

func TestValidate(t *testing.T) {
	u := users.User{XHandle: "alice", TelegramHandle: "@alicebot"}
	require.NoError(t, u.Validate())

	require.Error(t, (&users.User{TelegramHandle: "@x"}).Validate())
	require.Error(t, (&users.User{XHandle: "alice"}).Validate())
}
