package driver_test

import (
	"testing"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/resource"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDriver(t *testing.T) {
	t.Run("should create an active available driver", func(t *testing.T) {
		id := kernel.NewUUID()

		d, err := driver.NewDriver(id, "Anna Weber", "B-123456")

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.ID().IsEqual(id))
		assert.Equal(t, "Anna Weber", d.Name())
		assert.Equal(t, "B-123456", d.LicenseNumber())
		assert.Equal(t, resource.Available, d.Status())
		assert.True(t, d.IsActive())
		assert.Zero(t, d.Version())
		require.NoError(t, d.CanBeAllocated())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		d, err := driver.NewDriver(kernel.UUID{}, "", "")

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
		require.ErrorIs(t, err, driver.ErrLicenseNumberIsRequired)
	})
}

func TestRestoreDriver(t *testing.T) {
	t.Run("should restore an on tour driver", func(t *testing.T) {
		d, err := driver.RestoreDriver(kernel.NewUUID(), "Jo", "L-1", resource.Allocated, true, 7)

		require.NoError(t, err)
		assert.Equal(t, resource.Allocated, d.Status())
		assert.Equal(t, 7, d.Version())
		require.ErrorIs(t, d.CanBeAllocated(), errs.ErrConflict)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := driver.RestoreDriver(kernel.NewUUID(), "Jo", "L-1", resource.Unknown, true, 0)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDriver_Availability(t *testing.T) {
	t.Run("off duty driver cannot be allocated", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Jo", "L-1")

		require.NoError(t, d.SetAvailability(resource.Resting))

		assert.Equal(t, "off_duty", d.Status().Label(resource.Driver))
		require.ErrorIs(t, d.CanBeAllocated(), errs.ErrConflict)
	})

	t.Run("inactive driver cannot be allocated", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Jo", "L-1")

		require.NoError(t, d.SetActive(false))

		require.ErrorIs(t, d.CanBeAllocated(), errs.ErrConflict)
	})

	t.Run("bump version increments", func(t *testing.T) {
		d, _ := driver.NewDriver(kernel.NewUUID(), "Jo", "L-1")

		d.BumpVersion()

		assert.Equal(t, 1, d.Version())
	})
}

func TestDriver_Validate(t *testing.T) {
	var nilDriver *driver.Driver
	require.ErrorIs(t, nilDriver.Validate(), driver.ErrDriverIsNotConstructed)

	zero := &driver.Driver{}
	require.ErrorIs(t, zero.Validate(), driver.ErrDriverIsNotConstructed)
}
