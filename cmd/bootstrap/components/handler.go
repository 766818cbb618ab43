package components

import (
	"table-booking/internal/handler"
	"table-booking/internal/handler/api"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		NewEngine,
		api.NewReservationHandler,
		api.NewUserHandler,
	),
	fx.Invoke(handler.NewRouter),
)

// NewEngine returns a bare engine; NewRouter installs every middleware. Unknown
// JSON fields are rejected so a misspelled "numberOfSeats" is a 400, not a
// silent zero.
func NewEngine() *gin.Engine {
	gin.EnableJsonDecoderDisallowUnknownFields()
	engine := gin.New()
	engine.HandleMethodNotAllowed = false
	return engine
}
