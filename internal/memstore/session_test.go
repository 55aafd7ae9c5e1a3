package memstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atom_video/internal/common"
)

func TestIssueTokenAndResolve(t *testing.T) {
	sessions := NewSessionRegistry(nil)

	token := sessions.IssueToken("usr_1")
	require.NotEmpty(t, token)
	assert.NotContains(t, token, "-", "token là chuỗi mờ, không còn dấu gạch của uuid")
	assert.NotContains(t, token, "usr_1", "token không được chứa ID của identity")

	userID, err := sessions.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", userID)
}

func TestIssueTokenGrantsIndependentTokens(t *testing.T) {
	sessions := NewSessionRegistry(nil)

	first := sessions.IssueToken("usr_1")
	second := sessions.IssueToken("usr_1")
	assert.NotEqual(t, first, second, "mỗi lần đăng nhập cấp một token riêng")
	assert.Equal(t, 2, sessions.Count())

	// Thu hồi token này không ảnh hưởng token kia
	sessions.Revoke(first)
	_, err := sessions.Resolve(first)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
	_, err = sessions.Resolve(second)
	assert.NoError(t, err)
}

func TestResolveUnknownToken(t *testing.T) {
	sessions := NewSessionRegistry(nil)

	_, err := sessions.Resolve(strings.Repeat("x", 64))
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestResolveEvictsTokenOfDeadIdentity(t *testing.T) {
	dead := map[string]bool{}
	sessions := NewSessionRegistry(func(userID string) bool {
		return !dead[userID]
	})

	token := sessions.IssueToken("usr_1")
	_, err := sessions.Resolve(token)
	require.NoError(t, err)

	// Identity biến mất: token hết hiệu lực và bị thu hồi luôn
	dead["usr_1"] = true
	_, err = sessions.Resolve(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
	assert.Equal(t, 0, sessions.Count(), "token của identity đã mất phải bị thu hồi")

	// Identity sống lại cũng không cứu được token đã thu hồi
	dead["usr_1"] = false
	_, err = sessions.Resolve(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestRevokeAll(t *testing.T) {
	sessions := NewSessionRegistry(nil)

	a1 := sessions.IssueToken("usr_a")
	a2 := sessions.IssueToken("usr_a")
	b1 := sessions.IssueToken("usr_b")

	sessions.RevokeAll("usr_a")

	_, err := sessions.Resolve(a1)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
	_, err = sessions.Resolve(a2)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)

	userID, err := sessions.Resolve(b1)
	require.NoError(t, err)
	assert.Equal(t, "usr_b", userID, "RevokeAll không được đụng tới token của identity khác")
}
