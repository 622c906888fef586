package shipment_test

import (
	"regexp"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/shipment"
	"dispatch/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 3, 14, 8, 0, 0, 0, time.UTC)

func note(minutes int) shipment.Note {
	return shipment.Note{At: t0.Add(time.Duration(minutes) * time.Minute), Actor: "user-1"}
}

func newPending(t *testing.T) *shipment.Shipment {
	t.Helper()
	s, err := shipment.NewShipment(kernel.NewUUID(), "", "ACME GmbH", "Hafenstr. 1, Hamburg", decimal.NewFromFloat(2.5), note(0))
	require.NoError(t, err)
	return s
}

func moveTo(t *testing.T, s *shipment.Shipment, path ...shipment.Status) {
	t.Helper()
	for i, next := range path {
		require.NoError(t, s.Transition(next, note(i+1)))
	}
}

func TestNewShipment(t *testing.T) {
	t.Run("should register a pending shipment with a created entry", func(t *testing.T) {
		s := newPending(t)

		require.NoError(t, s.Validate())
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Regexp(t, regexp.MustCompile(`^SHP[A-Z0-9]{10}$`), s.TrackingNumber())
		require.Len(t, s.History(), 1)
		entry := s.History()[0]
		assert.Equal(t, shipment.EventCreated, entry.Event())
		assert.Equal(t, shipment.Pending, entry.Status())
		assert.Equal(t, "user-1", entry.Actor())
		assert.Nil(t, s.TourID())
		assert.False(t, s.IsInvoiced())
	})

	t.Run("should keep a supplied tracking number", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "EXT-42", "Jo", "Main St 1", decimal.NewFromInt(1), note(0))

		require.NoError(t, err)
		assert.Equal(t, "EXT-42", s.TrackingNumber())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.UUID{}, "", "", " ", decimal.Zero, note(0))

		require.Error(t, err)
		assert.Nil(t, s)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, shipment.ErrRecipientNameIsRequired)
		require.ErrorIs(t, err, shipment.ErrDestinationIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestGenerateTrackingNumber(t *testing.T) {
	seen := map[string]bool{}
	for range 100 {
		number := shipment.GenerateTrackingNumber()
		assert.Regexp(t, `^SHP[A-Z0-9]{10}$`, number)
		seen[number] = true
	}
	assert.Greater(t, len(seen), 95)
}

func TestShipment_Transition(t *testing.T) {
	t.Run("legal edge appends an entry", func(t *testing.T) {
		s := newPending(t)

		err := s.Transition(shipment.PickedUp, shipment.Note{At: t0, Location: "Depot A", Actor: "u"})

		require.NoError(t, err)
		assert.Equal(t, shipment.PickedUp, s.Status())
		history := s.History()
		require.Len(t, history, 2)
		assert.Equal(t, shipment.EventStatusChanged, history[1].Event())
		assert.Equal(t, "Depot A", history[1].Location())
		assert.Equal(t, "status changed from pending to picked_up", history[1].Description())
	})

	t.Run("illegal edge is rejected and changes nothing", func(t *testing.T) {
		s := newPending(t)
		before := s.History()

		err := s.Transition(shipment.Delivered, note(1))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, shipment.Pending, s.Status())
		assert.Equal(t, before, s.History())
	})

	t.Run("terminal status has no way out", func(t *testing.T) {
		s := newPending(t)
		moveTo(t, s, shipment.Cancelled)

		require.Error(t, s.Transition(shipment.Pending, note(5)))
		assert.Empty(t, s.AllowedTransitions())
	})

	t.Run("history never shrinks and earlier entries stay intact", func(t *testing.T) {
		s := newPending(t)
		first := s.History()[0]

		moveTo(t, s, shipment.PickedUp, shipment.InTransit, shipment.OutForDelivery, shipment.FailedDelivery, shipment.Returned)

		history := s.History()
		assert.Len(t, history, 6)
		assert.Equal(t, first, history[0])
	})
}

func TestShipment_AssignToTour(t *testing.T) {
	tourID := kernel.NewUUID()

	t.Run("binds an eligible shipment and moves it to in transit", func(t *testing.T) {
		s := newPending(t)

		require.NoError(t, s.AssignToTour(tourID, "TR-20250314-ABCDEF12", note(1)))

		assert.Equal(t, shipment.InTransit, s.Status())
		require.NotNil(t, s.TourID())
		assert.True(t, s.TourID().IsEqual(tourID))
		last := s.History()[len(s.History())-1]
		assert.Equal(t, shipment.EventTourAssigned, last.Event())
		assert.Contains(t, last.Description(), "TR-20250314-ABCDEF12")
	})

	t.Run("rejects a shipment already bound", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))

		err := s.AssignToTour(kernel.NewUUID(), "TR-2", note(2))

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.True(t, s.TourID().IsEqual(tourID))
	})

	t.Run("rejects an invoiced shipment", func(t *testing.T) {
		s := newPending(t)
		s.MarkInvoiced()

		require.ErrorIs(t, s.AssignToTour(tourID, "TR-1", note(1)), errs.ErrConflict)
	})

	t.Run("rejects an ineligible status", func(t *testing.T) {
		s := newPending(t)
		moveTo(t, s, shipment.PickedUp, shipment.InTransit, shipment.OutForDelivery)

		require.ErrorIs(t, s.AssignToTour(tourID, "TR-1", note(9)), errs.ErrConflict)
		assert.Nil(t, s.TourID())
	})
}

func TestShipment_ReleaseFromTour(t *testing.T) {
	tourID := kernel.NewUUID()

	t.Run("restores the status held before assignment", func(t *testing.T) {
		s := newPending(t)
		moveTo(t, s, shipment.PickedUp)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(2)))

		require.NoError(t, s.ReleaseFromTour(tourID, "TR-1", note(3)))

		assert.Equal(t, shipment.PickedUp, s.Status())
		assert.Nil(t, s.TourID())
		last := s.History()[len(s.History())-1]
		assert.Equal(t, shipment.EventTourReleased, last.Event())
		assert.Len(t, s.History(), 4)
	})

	t.Run("keeps a status set manually after assignment", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))
		moveTo(t, s, shipment.AtSortingCenter)

		require.NoError(t, s.ReleaseFromTour(tourID, "TR-1", note(5)))

		assert.Equal(t, shipment.AtSortingCenter, s.Status())
		assert.Nil(t, s.TourID())
	})

	t.Run("rejects a foreign tour", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))

		require.ErrorIs(t, s.ReleaseFromTour(kernel.NewUUID(), "TR-2", note(2)), errs.ErrConflict)
		assert.NotNil(t, s.TourID())
	})
}

func TestShipment_Settle(t *testing.T) {
	tourID := kernel.NewUUID()

	t.Run("out for delivery becomes delivered with a delivery date", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))
		moveTo(t, s, shipment.OutForDelivery)

		outcome, settled, err := s.Settle("TR-1", note(30))

		require.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, shipment.Delivered, outcome)
		assert.Equal(t, shipment.Delivered, s.Status())
		require.NotNil(t, s.ActualDeliveryDate())
		assert.Equal(t, t0.Add(30*time.Minute), *s.ActualDeliveryDate())
		assert.Equal(t, shipment.EventTourSettled, s.History()[len(s.History())-1].Event())
	})

	t.Run("anything else becomes failed delivery", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))

		outcome, settled, err := s.Settle("TR-1", note(30))

		require.NoError(t, err)
		assert.True(t, settled)
		assert.Equal(t, shipment.FailedDelivery, outcome)
		assert.Nil(t, s.ActualDeliveryDate())
	})

	t.Run("delivered shipment is skipped", func(t *testing.T) {
		s := newPending(t)
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))
		moveTo(t, s, shipment.OutForDelivery, shipment.Delivered)
		length := len(s.History())

		outcome, settled, err := s.Settle("TR-1", note(30))

		require.NoError(t, err)
		assert.False(t, settled)
		assert.Equal(t, shipment.Delivered, outcome)
		assert.Len(t, s.History(), length)
	})

	for _, final := range []shipment.Status{shipment.Returned, shipment.Cancelled} {
		t.Run(final.String()+" shipment becomes failed delivery", func(t *testing.T) {
			s := newPending(t)
			require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))
			moveTo(t, s, shipment.OutForDelivery, shipment.FailedDelivery, final)
			length := len(s.History())

			outcome, settled, err := s.Settle("TR-1", note(30))

			require.NoError(t, err)
			assert.True(t, settled)
			assert.Equal(t, shipment.FailedDelivery, outcome)
			assert.Equal(t, shipment.FailedDelivery, s.Status())
			assert.Nil(t, s.ActualDeliveryDate())
			require.Len(t, s.History(), length+1)
			assert.Equal(t, final, s.History()[length-1].Status())
			assert.Equal(t, shipment.EventTourSettled, s.History()[length].Event())
		})
	}
}

func TestShipment_ForceFailedDelivery(t *testing.T) {
	t.Run("overrides a non terminal status outside the edge table", func(t *testing.T) {
		s := newPending(t)

		applied, err := s.ForceFailedDelivery(note(1))

		require.NoError(t, err)
		assert.True(t, applied)
		assert.Equal(t, shipment.FailedDelivery, s.Status())
		assert.Equal(t, shipment.EventIncidentOverride, s.History()[1].Event())
	})

	t.Run("leaves a terminal shipment unchanged", func(t *testing.T) {
		s := newPending(t)
		moveTo(t, s, shipment.Cancelled)

		applied, err := s.ForceFailedDelivery(note(5))

		require.NoError(t, err)
		assert.False(t, applied)
		assert.Equal(t, shipment.Cancelled, s.Status())
		assert.Len(t, s.History(), 2)
	})
}

func TestShipment_CanBeDeleted(t *testing.T) {
	t.Run("free shipment can be deleted", func(t *testing.T) {
		require.NoError(t, newPending(t).CanBeDeleted())
	})

	t.Run("invoiced shipment cannot be deleted", func(t *testing.T) {
		s := newPending(t)
		s.MarkInvoiced()

		require.ErrorIs(t, s.CanBeDeleted(), errs.ErrConflict)
	})

	t.Run("tour assigned shipment cannot be deleted until the reference is cleared", func(t *testing.T) {
		s := newPending(t)
		tourID := kernel.NewUUID()
		require.NoError(t, s.AssignToTour(tourID, "TR-1", note(1)))

		require.ErrorIs(t, s.CanBeDeleted(), errs.ErrConflict)

		s.ClearTourReference(tourID)
		require.NoError(t, s.CanBeDeleted())
		assert.Equal(t, shipment.InTransit, s.Status())
	})
}

func TestRestoreShipment(t *testing.T) {
	entry, err := shipment.NewTrackingEntry(shipment.Pending, shipment.EventCreated, note(0))
	require.NoError(t, err)

	t.Run("should restore with history and tour", func(t *testing.T) {
		tourID := kernel.NewUUID()

		s, err := shipment.RestoreShipment(kernel.NewUUID(), "SHP1", "Jo", "Main 1", decimal.NewFromInt(3),
			shipment.Pending, []shipment.TrackingEntry{entry}, &tourID, true, nil, 4)

		require.NoError(t, err)
		assert.True(t, s.TourID().IsEqual(tourID))
		assert.True(t, s.IsInvoiced())
		assert.Equal(t, 4, s.Version())
	})

	t.Run("should require history", func(t *testing.T) {
		_, err := shipment.RestoreShipment(kernel.NewUUID(), "SHP1", "Jo", "Main 1", decimal.NewFromInt(3),
			shipment.Pending, nil, nil, false, nil, 0)

		require.ErrorIs(t, err, shipment.ErrHistoryIsRequired)
	})
}
