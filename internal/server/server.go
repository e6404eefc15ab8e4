package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/hunter-yen/hunter-server/internal/crafting"
	"github.com/hunter-yen/hunter-server/internal/drop"
	"github.com/hunter-yen/hunter-server/internal/encounter"
	"github.com/hunter-yen/hunter-server/internal/eventlog"
	"github.com/hunter-yen/hunter-server/internal/handler"
	"github.com/hunter-yen/hunter-server/internal/itemuse"
	"github.com/hunter-yen/hunter-server/internal/leaderboard"
	"github.com/hunter-yen/hunter-server/internal/metrics"
	"github.com/hunter-yen/hunter-server/internal/mission"
	"github.com/hunter-yen/hunter-server/internal/player"
	"github.com/hunter-yen/hunter-server/internal/sse"
	"github.com/hunter-yen/hunter-server/internal/wordle"
)

// Server owns the HTTP listener
type Server struct {
	httpServer *http.Server
}

// Services groups everything the HTTP layer dispatches to
type Services struct {
	Players     player.Service
	Missions    mission.Service
	Catalog     handler.ItemLister
	ItemUse     itemuse.Service
	Crafting    crafting.Service
	Drops       drop.Service
	Encounters  encounter.Service
	Wordle      wordle.Service
	Leaderboard leaderboard.Service
	History     eventlog.Service
	Stream      *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, store handler.Pinger, svc Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, store, svc),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// NewRouter builds the full middleware stack and route table
func NewRouter(apiKey string, trustedProxies []string, store handler.Pinger, svc Services) http.Handler {
	r := chi.NewRouter()

	proxies := NewTrustedProxies(trustedProxies)
	tracker := NewClientTracker(ClientWindow, MaxRequestsPerWindow)

	// outermost first
	r.Use(SecurityHeadersMiddleware)
	r.Use(RateLimitMiddleware(proxies, tracker))
	r.Use(AuthMiddleware(apiKey, proxies, tracker))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(RequestLoggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	players := handler.NewPlayerHandler(svc.Players, svc.History)
	missions := handler.NewMissionHandler(svc.Missions)
	items := handler.NewItemHandler(svc.Catalog, svc.ItemUse)
	crafter := handler.NewCraftingHandler(svc.Crafting)
	drops := handler.NewDropHandler(svc.Drops)
	encounters := handler.NewEncounterHandler(svc.Encounters)
	wordleGame := handler.NewWordleHandler(svc.Wordle)
	board := handler.NewLeaderboardHandler(svc.Leaderboard)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/players", func(r chi.Router) {
			r.Post("/", players.HandleRegister)
			r.Get("/{userId}", players.HandleGet)
			r.Get("/{userId}/events", players.HandleHistory)
			r.Post("/{userId}/craft", crafter.HandleCraft)
		})

		r.Route("/missions/{userId}", func(r chi.Router) {
			r.Get("/", missions.HandleList)
			r.Post("/refresh", missions.HandleRefresh)
			r.Post("/generated", missions.HandleCreateGenerated)
			r.Post("/{taskId}/check", missions.HandleCheckPlace)
			r.Post("/{taskId}/{action}", missions.HandleAction)
		})

		r.Get("/items", items.HandleList)
		r.Post("/items/use/{userId}/{itemId}", items.HandleUse)

		r.Post("/drop/{userId}/{difficulty}", drops.HandleClaim)

		r.Route("/events", func(r chi.Router) {
			r.Post("/treasurebox/open", encounters.HandleOpenChest)
			r.Post("/trade", encounters.HandleTrade)
			r.Post("/bless", encounters.HandleBless)
			r.Post("/slime/attack", encounters.HandleSlimeAttack)
			r.Post("/stonepile", encounters.HandleStonePile)
			r.Get("/{kind}/options", encounters.HandleOptions)
		})

		r.Get("/supply-stations", encounters.HandleListStations)
		r.Post("/supply-stations/{stationId}/claim", encounters.HandleClaimSupply)

		r.Route("/wordle/{userId}/{taskId}", func(r chi.Router) {
			r.Post("/start", wordleGame.HandleStart)
			r.Post("/guess", wordleGame.HandleGuess)
		})

		r.Get("/leaderboard", board.HandleTop)

		if svc.Stream != nil {
			r.Get("/stream", sse.Handler(svc.Stream))
		}
	})

	return r
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
