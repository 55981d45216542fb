package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/iliyamo/flight-seat-ledger/internal/handler"    // handlers implementing the endpoints
	"github.com/iliyamo/flight-seat-ledger/internal/middleware" // JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication.
// Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers account endpoints.  Unauthenticated operations
// live under /v1/auth; /v1/me requires a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated ledger projections:
// roster, flights, seats, tokens and boarding passes.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler) {
	e.GET("/v1/airlines", p.GetAirlines)
	e.GET("/v1/airlines/:address/flights", p.GetAirlineFlights)
	// The id derivation route must precede /v1/flights/:id so "id" is
	// not captured as a flight id.
	e.GET("/v1/flights/id", p.DeriveFlightID)
	e.GET("/v1/flights/:id", p.GetFlight)
	e.GET("/v1/flights/:id/seats", p.GetFlightSeats)
	e.GET("/v1/seats/:id", p.GetSeat)
	e.GET("/v1/seats/:id/barcode-parameters", p.GetBarcodeParameters)
	e.GET("/v1/seats/:id/boarding-pass", p.GetBoardingPass)
	e.GET("/v1/tokens/:id", p.GetToken)
}

// RegisterAirline registers the airline-side ledger operations.  Flight
// creation accepts any authenticated account because authorization is
// proven by the airline signature, allowing relayed submissions; seat
// inventory and escrow operations are airline-only (the ledger enforces
// the caller identity on top of the role gate).
func RegisterAirline(e *echo.Echo, h *handler.AirlineHandler, jwtSecret string) {
	relay := e.Group("/v1/airline")
	relay.Use(middleware.JWTAuth(jwtSecret))
	relay.Use(middleware.RequireRole("AIRLINE", "PASSENGER"))
	relay.POST("/flights", h.CreateFlight)

	own := e.Group("/v1/airline")
	own.Use(middleware.JWTAuth(jwtSecret))
	own.Use(middleware.RequireRole("AIRLINE"))
	own.POST("/flights/seats", h.AddSeats)
	own.GET("/escrow", h.EscrowBalance)
	own.POST("/escrow/withdraw", h.Withdraw)
}

// RegisterPassenger registers the passenger-side ledger operations.
func RegisterPassenger(e *echo.Echo, h *handler.PassengerHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole("PASSENGER", "AIRLINE"))
	g.POST("/seats/:id/book", h.BookSeat)
	g.POST("/seats/:id/checkin", h.Checkin)
	g.POST("/tokens/:id/approve", h.Approve)
}
