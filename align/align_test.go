package align_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/basilisk-io/logref/align"
)

func TestQGramRecoversTarget(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		target    string
	}{
		{
			"ssh auth failure",
			"Jun 11 09:46:15 combo sshd: authentication failure; logname= uid=0 euid=0 tty=NODEVssh ruser= rhost=unknown.sagonet.net  user=root",
			"Jun 11 09:46:18 combo sshd(pam_unix)[6488]: authentication failure; logname= uid=0 euid=0 tty=NODEVssh ruser= rhost=unknown.sagonet.net  user=rst",
		},
		{
			"anacron vs atd",
			"Jun  9 06:06:51 combo anacron: anacron startup succeeded",
			"Jun  9 06:06:51 combo atd: atd startup succeeded",
		},
		{"identical lines", "same line here", "same line here"},
		{"empty reference", "", "new content"},
		{"empty target", "old content", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops, cost := align.QGram([]byte(tc.reference), []byte(tc.target), 3)
			require.GreaterOrEqual(t, cost, 0.0)

			recovered := align.Recover(ops, []byte(tc.reference))
			require.Equal(t, tc.target, string(recovered))
		})
	}
}

func TestSubstitutionRecoversTarget(t *testing.T) {
	cases := []struct {
		name      string
		reference string
		target    string
	}{
		{"single char change", "status=200", "status=404"},
		{"identical lines", "no change at all", "no change at all"},
		{"empty reference", "", "brand new line"},
		{"empty target", "line to delete", ""},
		{"length change", "request id=1 done", "request id=123456 done, ok"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops, cost := align.Substitution([]byte(tc.reference), []byte(tc.target))
			require.GreaterOrEqual(t, cost, 0.0)

			recovered := align.Recover(ops, []byte(tc.reference))
			require.Equal(t, tc.target, string(recovered))
		})
	}
}

func TestSubstitutionIdenticalHasZeroCost(t *testing.T) {
	ops, cost := align.Substitution([]byte("identical"), []byte("identical"))
	require.Empty(t, ops)
	require.Zero(t, cost)
}

func TestSubstitutionBoundaryCosts(t *testing.T) {
	_, insCost := align.Substitution([]byte(""), []byte("ab"))
	require.Equal(t, 1.0+2.0+2.0, insCost) // positionCost + lengthCost*2 + charCost*len(target)

	_, delCost := align.Substitution([]byte("ab"), []byte(""))
	require.Equal(t, 1.0+2.0, delCost) // positionCost + lengthCost*2
}
