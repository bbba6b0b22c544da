package professional

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAccountStatusValid(t *testing.T) {
	for _, s := range []AccountStatus{StatusPendingVerification, StatusActive, StatusSuspended, StatusInactive} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, AccountStatus("").Valid())
	assert.False(t, AccountStatus("DELETED").Valid())
	assert.False(t, AccountStatus("active").Valid())
}

func TestChangeStatusUpdatesTriple(t *testing.T) {
	p := &Professional{
		AccountStatus:      StatusPendingVerification,
		StatusChangeReason: ReasonAwaitingVerification,
		StatusChangeDate:   time.Now().Add(-48 * time.Hour),
	}

	before := time.Now()
	p.ChangeStatus(StatusActive, ReasonAccountActivated)
	after := time.Now()

	assert.Equal(t, StatusActive, p.AccountStatus)
	assert.Equal(t, ReasonAccountActivated, p.StatusChangeReason)
	assert.False(t, p.StatusChangeDate.Before(before))
	assert.False(t, p.StatusChangeDate.After(after))
}

func TestChangeStatusSameStatusStillRestamps(t *testing.T) {
	old := time.Now().Add(-time.Hour)
	p := &Professional{AccountStatus: StatusActive, StatusChangeDate: old}

	p.ChangeStatus(StatusActive, "manual re-activation")

	assert.Equal(t, StatusActive, p.AccountStatus)
	assert.Equal(t, "manual re-activation", p.StatusChangeReason)
	assert.True(t, p.StatusChangeDate.After(old))
}

func TestIsActive(t *testing.T) {
	cases := map[AccountStatus]bool{
		StatusActive:              true,
		StatusPendingVerification: false,
		StatusSuspended:           false,
		StatusInactive:            false,
	}
	for status, want := range cases {
		p := &Professional{AccountStatus: status}
		assert.Equal(t, want, p.IsActive(), string(status))
	}
}

func TestFullName(t *testing.T) {
	p := &Professional{FirstName: "Awa", LastName: "Diop"}
	assert.Equal(t, "Awa Diop", p.FullName())
}
