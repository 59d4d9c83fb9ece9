package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionLoggedIn(t *testing.T) {
	assert.False(t, Session{}.LoggedIn(), "zero session is logged out")
	assert.True(t, Session{Role: RoleTeacher}.LoggedIn())
}

func TestSessionPermits(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		childID int64
		want    bool
	}{
		{name: "teacher sees any child", session: Session{Role: RoleTeacher}, childID: 42, want: true},
		{name: "parent sees permitted child", session: Session{Role: RoleParent, PermittedIDs: []int64{1, 2}}, childID: 2, want: true},
		{name: "parent does not see other child", session: Session{Role: RoleParent, PermittedIDs: []int64{1, 2}}, childID: 3, want: false},
		{name: "logged out sees nothing", session: Session{}, childID: 1, want: false},
		{name: "unknown role sees nothing", session: Session{Role: "janitor"}, childID: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.Permits(tt.childID))
		})
	}
}
