package api

import (
	"net/http"
	"strconv"

	"table-booking/internal/domain/reservation"
	reqdto "table-booking/internal/handler/dto/request"
	resdto "table-booking/internal/handler/dto/response"
	"table-booking/internal/handler/httperr"
	"table-booking/internal/pkg/errs"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
	policy   reservation.Policy
}

func NewReservationHandler(
	reservationCommands commands.ReservationCommands,
	reservationQueries queries.ReservationQueries,
	policy reservation.Policy,
) *ReservationHandler {
	return &ReservationHandler{
		commands: reservationCommands,
		queries:  reservationQueries,
		policy:   policy,
	}
}

// @Summary Create reservation
// @Description Book a table. When the table cannot hold the party, responds 409 with a suggested time and free tables.
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/v1/reservations [post]
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithAppError(c, reqdto.BindingError(err))
		return
	}

	in, err := req.ToCommand(h.policy)
	if err != nil {
		httperr.AbortWithAppError(c, reqdto.DomainError(err))
		return
	}

	created, err := h.commands.MakeReservation(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(created))
}

// @Summary List reservations
// @Description List reservations whose time falls in [start, end], ordered by time
// @Tags reservations
// @Produce json
// @Param start query string true "Range start, RFC 3339 UTC"
// @Param end query string true "Range end, RFC 3339 UTC"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10)
// @Param tableNumber query int false "Restrict to one table"
// @Success 200 {object} resdto.ReservationListResponse
// @Failure 400 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/v1/reservations [get]
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithAppError(c, reqdto.BindingError(err))
		return
	}

	in, err := q.ToInput(h.policy.Layout)
	if err != nil {
		httperr.AbortWithAppError(c, reqdto.DomainError(err))
		return
	}

	page, err := h.queries.ListReservations(c.Request.Context(), in)
	if err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Cancel reservation
// @Tags reservations
// @Param id path int true "Reservation ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /api/v1/reservations/{id} [delete]
func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.AbortWithAppError(c, errs.FromCause(errs.CodeGeneralValidationFailed, err).
			WithDetails("The reservation id must be a positive integer."))
		return
	}

	if err := h.commands.CancelReservation(c.Request.Context(), id); err != nil {
		httperr.AbortWithAppError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, strconv.ErrRange
	}
	return id, nil
}
