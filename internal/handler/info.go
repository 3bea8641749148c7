package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/lostyu/test-vercel-phonebook-depo/internal/server"
	"github.com/lostyu/test-vercel-phonebook-depo/internal/service"
)

// InfoDateLayout renders the server time in the shape of a JavaScript Date
// string, e.g. "Wed Oct 14 2026 09:30:00 GMT+0300 (EEST)". The zone in
// parentheses is the abbreviation, not the long name a browser prints.
const InfoDateLayout = "Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"

// InfoHandler serves the /info summary page.
type InfoHandler struct {
	Handler
	persons *service.PersonService
}

// NewInfoHandler constructs an InfoHandler.
func NewInfoHandler(s *server.Server, persons *service.PersonService) *InfoHandler {
	return &InfoHandler{
		Handler: NewHandler(s),
		persons: persons,
	}
}

// Info renders the record count and the current server time.
func (h *InfoHandler) Info(c echo.Context, _ *EmptyRequest) (string, error) {
	info := h.persons.Info(c.Request().Context())
	return RenderInfo(info), nil
}

// RenderInfo formats info as the two-paragraph HTML fragment.
func RenderInfo(info service.Info) string {
	return fmt.Sprintf(
		"<p>Phonebook has info for %d people</p><p>%s</p>",
		info.Count,
		info.Time.Format(InfoDateLayout),
	)
}
