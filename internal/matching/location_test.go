package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bridges-advising/scheduler/internal/model"
)

func TestDetermineLocationRemoteOverride(t *testing.T) {
	student := model.User{ID: 1, Role: model.RoleStudent}
	remoteStaff := model.User{ID: 10, Role: model.RoleProfessionalStaff, IsRemote: true}

	// Удалённый сотрудник — встреча виртуальная, места из окон игнорируются
	placement := DetermineLocation(student, remoteStaff,
		[]model.Availability{window(1, "09:00", "10:00", "Library")},
		[]model.Availability{window(1, "09:00", "10:00", "Office 214")},
	)
	assert.True(t, placement.IsVirtual)
	assert.Equal(t, LocationVirtual, placement.Location)

	// Удалённый студент — то же самое
	remoteStudent := model.User{ID: 1, Role: model.RoleStudent, IsRemote: true}
	staff := model.User{ID: 10, Role: model.RoleProfessionalStaff}
	placement = DetermineLocation(remoteStudent, staff, nil, nil)
	assert.True(t, placement.IsVirtual)
	assert.Equal(t, LocationVirtual, placement.Location)
}

func TestDetermineLocationPreference(t *testing.T) {
	student := model.User{ID: 1, Role: model.RoleStudent}
	staff := model.User{ID: 10, Role: model.RoleProfessionalStaff}

	placement := DetermineLocation(student, staff,
		[]model.Availability{window(1, "09:00", "10:00", "Library")},
		[]model.Availability{window(1, "09:00", "10:00", "Office 214")},
	)
	assert.False(t, placement.IsVirtual)
	assert.Equal(t, "Office 214", placement.Location)

	placement = DetermineLocation(student, staff,
		[]model.Availability{window(1, "09:00", "10:00", "Library")},
		[]model.Availability{window(1, "09:00", "10:00", "")},
	)
	assert.Equal(t, "Library", placement.Location)

	placement = DetermineLocation(student, staff, nil, nil)
	assert.Equal(t, LocationTBD, placement.Location)
}
