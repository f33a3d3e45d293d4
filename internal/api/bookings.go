package api

import (
	"fmt"
	"net/http"

	"github.com/agisilaos/skydesk/internal/model"
)

func (c *Client) Bookings() ([]model.Booking, error) {
	var out []model.Booking
	if err := c.get("/bookings/allBooking", nil, &out, "Failed to fetch bookings."); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ConfirmBooking(id int64) error {
	path := fmt.Sprintf("/bookings/confirmBooking/%d", id)
	return c.send(http.MethodPut, path, nil, nil, nil, "Failed to confirm booking.")
}

func (c *Client) CancelBooking(id int64) error {
	path := fmt.Sprintf("/bookings/cancelBooking/%d", id)
	return c.send(http.MethodPut, path, nil, nil, nil, "Failed to cancel booking.")
}

// DeleteCancelledBookings purges every CANCELLED record. Repeating it when
// none remain is a successful no-op on the backend.
func (c *Client) DeleteCancelledBookings() error {
	return c.send(http.MethodDelete, "/bookings/deleteCancelled", nil, nil, nil, "Failed to delete cancelled bookings.")
}
